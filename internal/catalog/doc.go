// Package catalog implements the client for the remote music catalog API.
//
// The catalog is a read-only JSON interface (Jamendo v3 layout): track
// listings parameterized by limit, offset, sort order, free-text search, and
// genre tags, authenticated with a client id query parameter. Every result
// maps to a [models.Track] carrying both a stream URL and a download URL.
package catalog
