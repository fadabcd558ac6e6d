// Package repositories provides the persistence layer: four independent
// key-value collections over SQLite (downloads, uploads, playlists, settings).
//
// Each collection supports Put (upsert), Get, GetAll, and Delete keyed by an
// identifier string. Entity payloads are stored as JSON documents; audio blobs
// go in a dedicated column. A single Put is atomic with respect to its key;
// nothing is transactional across collections.
package repositories
