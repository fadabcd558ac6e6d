// Package library manages the user's music collection: playlists,
// uploaded files, and tracks saved for offline listening. All three are
// persisted through [repositories] stores and mirrored in memory so
// reads never touch the database. Audio bytes are handed to the blob
// server so every local track has a streamable URL.
package library
