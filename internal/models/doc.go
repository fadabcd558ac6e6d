// Package models defines the data model for the harmony music library:
// catalog tracks, locally uploaded and downloaded tracks, playlists, and the
// persisted theme configuration.
//
// All types are plain structs with JSON tags; the repositories layer persists
// them as JSON documents.
package models
