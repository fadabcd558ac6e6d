// Package server hosts the local blob server.
//
// Tracks the library owns outright (uploads and offline downloads) exist as
// raw audio bytes, not as network resources. The playback sink, however, only
// speaks URLs. The blob server bridges the two: registering a blob yields a
// loopback URL (http://127.0.0.1:<port>/blobs/<id>) that serves the owned
// bytes with their content type, the process-local equivalent of a browser
// object-URL. Blobs are released when their owning track is deleted or when
// the session ends; registrations are never persisted.
package server
