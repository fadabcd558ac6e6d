package library

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/repositories"
	"github.com/desertthunder/harmony/internal/server"
	"github.com/desertthunder/harmony/internal/shared"
)

func setupManager(t *testing.T) *Manager {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	m := NewManager(ManagerOpts{
		Playlists: repositories.NewPlaylistRepository(db),
		Uploads:   repositories.NewUploadRepository(db),
		Downloads: repositories.NewDownloadRepository(db),
	})
	if err := m.Refresh(); err != nil {
		t.Fatalf("failed to load library: %v", err)
	}
	return m
}

func TestPlaylistLifecycle(t *testing.T) {
	t.Run("create and read back", func(t *testing.T) {
		m := setupManager(t)

		created, err := m.CreatePlaylist("Late Night", "after hours")
		if err != nil {
			t.Fatalf("CreatePlaylist failed: %v", err)
		}
		if created.ID == "" {
			t.Error("expected a generated playlist id")
		}

		got := m.Playlist(created.ID)
		if got == nil {
			t.Fatal("playlist missing from snapshot")
		}
		if got.Name != "Late Night" || got.Description != "after hours" {
			t.Errorf("got %q / %q", got.Name, got.Description)
		}
		if len(got.Tracks) != 0 {
			t.Errorf("new playlist has %d tracks, want 0", len(got.Tracks))
		}
	})

	t.Run("update fields", func(t *testing.T) {
		m := setupManager(t)
		created, _ := m.CreatePlaylist("Draft", "")

		name := "Morning Run"
		if err := m.UpdatePlaylist(created.ID, PlaylistUpdate{Name: &name}); err != nil {
			t.Fatalf("UpdatePlaylist failed: %v", err)
		}

		got := m.Playlist(created.ID)
		if got.Name != "Morning Run" {
			t.Errorf("name = %q, want Morning Run", got.Name)
		}
		if !got.UpdatedAt.After(created.UpdatedAt) {
			t.Error("expected updated-at to advance")
		}
	})

	t.Run("update unknown playlist", func(t *testing.T) {
		m := setupManager(t)

		name := "x"
		err := m.UpdatePlaylist("missing", PlaylistUpdate{Name: &name})
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		m := setupManager(t)
		created, _ := m.CreatePlaylist("Temp", "")

		if err := m.DeletePlaylist(created.ID); err != nil {
			t.Fatalf("DeletePlaylist failed: %v", err)
		}
		if err := m.DeletePlaylist(created.ID); err != nil {
			t.Fatalf("second DeletePlaylist failed: %v", err)
		}
		if m.Playlist(created.ID) != nil {
			t.Error("playlist still present after delete")
		}
	})
}

func TestPlaylistTracks(t *testing.T) {
	track := models.Track{ID: "cat1", Name: "One More Time", Artist: "Daft Punk"}

	t.Run("add is deduplicated", func(t *testing.T) {
		m := setupManager(t)
		p, _ := m.CreatePlaylist("House", "")

		if err := m.AddTrackToPlaylist(p.ID, track); err != nil {
			t.Fatalf("AddTrackToPlaylist failed: %v", err)
		}
		if err := m.AddTrackToPlaylist(p.ID, track); err != nil {
			t.Fatalf("duplicate add failed: %v", err)
		}

		got := m.Playlist(p.ID)
		if len(got.Tracks) != 1 {
			t.Errorf("playlist has %d tracks, want 1", len(got.Tracks))
		}
	})

	t.Run("add to unknown playlist", func(t *testing.T) {
		m := setupManager(t)

		err := m.AddTrackToPlaylist("missing", track)
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("remove track", func(t *testing.T) {
		m := setupManager(t)
		p, _ := m.CreatePlaylist("House", "")
		other := models.Track{ID: "cat2", Name: "Aerodynamic", Artist: "Daft Punk"}

		m.AddTrackToPlaylist(p.ID, track)
		m.AddTrackToPlaylist(p.ID, other)

		if err := m.RemoveTrackFromPlaylist(p.ID, track.ID); err != nil {
			t.Fatalf("RemoveTrackFromPlaylist failed: %v", err)
		}

		got := m.Playlist(p.ID)
		if len(got.Tracks) != 1 || got.Tracks[0].ID != "cat2" {
			t.Errorf("unexpected tracks after removal: %+v", got.Tracks)
		}

		// removing an id that is not there is a no-op
		if err := m.RemoveTrackFromPlaylist(p.ID, "nope"); err != nil {
			t.Fatalf("removal of absent track failed: %v", err)
		}
	})
}

func TestUpload(t *testing.T) {
	writeFile := func(t *testing.T, name string, data []byte) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		return path
	}

	t.Run("parses artist and title", func(t *testing.T) {
		m := setupManager(t)
		audio := []byte("ID3fakeaudio")
		path := writeFile(t, "Daft Punk - One More Time.mp3", audio)

		track, err := m.Upload(path)
		if err != nil {
			t.Fatalf("Upload failed: %v", err)
		}
		if track == nil {
			t.Fatal("expected an uploaded track")
		}
		if track.Artist != "Daft Punk" || track.Name != "One More Time" {
			t.Errorf("parsed %q / %q", track.Artist, track.Name)
		}
		if !track.IsLocal {
			t.Error("uploaded track should be marked local")
		}
		if track.MIME != "audio/mpeg" {
			t.Errorf("mime = %q", track.MIME)
		}

		uploads := m.Uploads()
		if len(uploads) != 1 {
			t.Fatalf("snapshot has %d uploads, want 1", len(uploads))
		}
		if !bytes.Equal(uploads[0].Audio, audio) {
			t.Error("stored audio differs from file contents")
		}
	})

	t.Run("rejects unsupported format", func(t *testing.T) {
		m := setupManager(t)
		path := writeFile(t, "album.flac", []byte("fLaC"))

		_, err := m.Upload(path)
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
		if len(m.Uploads()) != 0 {
			t.Error("rejected file ended up in the library")
		}
	})

	t.Run("unreadable file yields no track and no error", func(t *testing.T) {
		m := setupManager(t)

		track, err := m.Upload(filepath.Join(t.TempDir(), "missing.mp3"))
		if err != nil {
			t.Fatalf("expected failure to be swallowed, got %v", err)
		}
		if track != nil {
			t.Error("expected no track for unreadable file")
		}
	})

	t.Run("delete upload keeps playlist entries", func(t *testing.T) {
		m := setupManager(t)
		path := writeFile(t, "Justice - Genesis.mp3", []byte("audio"))

		track, err := m.Upload(path)
		if err != nil || track == nil {
			t.Fatalf("Upload failed: %v", err)
		}

		p, _ := m.CreatePlaylist("Electro", "")
		m.AddTrackToPlaylist(p.ID, track.Track)

		if err := m.DeleteUpload(track.ID); err != nil {
			t.Fatalf("DeleteUpload failed: %v", err)
		}
		if len(m.Uploads()) != 0 {
			t.Error("upload still present after delete")
		}

		got := m.Playlist(p.ID)
		if !got.Contains(track.ID) {
			t.Error("playlist entry should survive the upload's deletion")
		}
	})
}

func TestAttachBlobServer(t *testing.T) {
	m := setupManager(t)

	path := filepath.Join(t.TempDir(), "Daft Punk - One More Time.mp3")
	if err := os.WriteFile(path, []byte("ID3fakeaudio"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := m.Upload(path); err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	blobs := server.NewBlobServer("127.0.0.1", 0, nil)
	if err := m.AttachBlobServer(blobs); err != nil {
		t.Fatalf("AttachBlobServer failed: %v", err)
	}

	uploads := m.Uploads()
	if len(uploads) != 1 || uploads[0].BlobURL == "" {
		t.Fatalf("expected a blob URL on the upload, got %+v", uploads)
	}

	// Attaching races against concurrent refreshes; both sides go
	// through the manager lock for the server handle.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 25; i++ {
			if err := m.Refresh(); err != nil {
				t.Errorf("Refresh failed: %v", err)
				return
			}
		}
	}()
	for i := 0; i < 25; i++ {
		if err := m.AttachBlobServer(blobs); err != nil {
			t.Fatalf("AttachBlobServer failed: %v", err)
		}
	}
	<-done
}

func TestDownload(t *testing.T) {
	audio := []byte("fake-mp3-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.mp3":
			w.Header().Set("Content-Type", "audio/mpeg")
			w.Write(audio)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	track := models.Track{
		ID:          "cat1",
		Name:        "One More Time",
		Artist:      "Daft Punk",
		AudioURL:    srv.URL + "/stream.mp3",
		DownloadURL: srv.URL + "/ok.mp3",
	}

	t.Run("saves audio and flips status", func(t *testing.T) {
		m := setupManager(t)

		if m.IsDownloaded(track.ID) {
			t.Fatal("track reported downloaded before fetch")
		}
		if !m.Download(context.Background(), track) {
			t.Fatal("Download reported failure")
		}
		if !m.IsDownloaded(track.ID) {
			t.Error("track not reported downloaded after fetch")
		}

		downloads := m.Downloads()
		if len(downloads) != 1 {
			t.Fatalf("snapshot has %d downloads, want 1", len(downloads))
		}
		if !bytes.Equal(downloads[0].Audio, audio) {
			t.Error("stored audio differs from served bytes")
		}
		if downloads[0].MIME != "audio/mpeg" {
			t.Errorf("mime = %q", downloads[0].MIME)
		}
	})

	t.Run("fetch failure reports false", func(t *testing.T) {
		m := setupManager(t)
		broken := track
		broken.DownloadURL = srv.URL + "/gone.mp3"
		broken.AudioURL = ""

		if m.Download(context.Background(), broken) {
			t.Error("expected failure for 404 source")
		}
		if m.IsDownloaded(broken.ID) {
			t.Error("failed download should not be stored")
		}
	})

	t.Run("no source reports false", func(t *testing.T) {
		m := setupManager(t)

		if m.Download(context.Background(), models.Track{ID: "bare"}) {
			t.Error("expected failure for track without urls")
		}
	})

	t.Run("delete keeps playlist entries", func(t *testing.T) {
		m := setupManager(t)
		m.Download(context.Background(), track)

		p, _ := m.CreatePlaylist("Offline", "")
		m.AddTrackToPlaylist(p.ID, track)

		if err := m.DeleteDownload(track.ID); err != nil {
			t.Fatalf("DeleteDownload failed: %v", err)
		}
		if m.IsDownloaded(track.ID) {
			t.Error("track still reported downloaded")
		}
		if !m.Playlist(p.ID).Contains(track.ID) {
			t.Error("playlist entry should survive the download's deletion")
		}
	})

	t.Run("resolve prefers local copy", func(t *testing.T) {
		m := setupManager(t)
		m.Download(context.Background(), track)

		resolved := m.Resolve(track)
		if !resolved.IsDownloaded {
			t.Error("resolved track should carry the downloaded flag")
		}
	})
}
