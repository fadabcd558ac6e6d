package library

import "testing"

func TestIsSupportedAudio(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		mimeType string
		want     bool
	}{
		{"mp3 by mime", "song.bin", "audio/mpeg", true},
		{"mp3 by extension", "song.mp3", "", true},
		{"m4a by mime", "song", "audio/x-m4a", true},
		{"wav by extension", "take 1.WAV", "", true},
		{"ogg by extension", "song.ogg", "application/octet-stream", true},
		{"flac rejected", "song.flac", "audio/flac", false},
		{"text rejected", "notes.txt", "text/plain", false},
		{"no hints", "song", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsSupportedAudio(tc.filename, tc.mimeType); got != tc.want {
				t.Errorf("IsSupportedAudio(%q, %q) = %v, want %v", tc.filename, tc.mimeType, got, tc.want)
			}
		})
	}
}

func TestMIMEForExtension(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"song.mp3", "audio/mpeg"},
		{"song.wav", "audio/wav"},
		{"song.ogg", "audio/ogg"},
		{"song.aac", "audio/aac"},
		{"song.m4a", "audio/mp4"},
		{"song", "audio/mpeg"},
	}

	for _, tc := range cases {
		if got := MIMEForExtension(tc.filename); got != tc.want {
			t.Errorf("MIMEForExtension(%q) = %q, want %q", tc.filename, got, tc.want)
		}
	}
}

func TestParseFilename(t *testing.T) {
	cases := []struct {
		name       string
		filename   string
		wantArtist string
		wantTitle  string
	}{
		{"artist dash title", "Daft Punk - One More Time.mp3", "Daft Punk", "One More Time"},
		{"no separator", "Around the World.mp3", "Unknown Artist", "Around the World"},
		{"multiple separators", "A - B - C.mp3", "A", "B - C"},
		{"extra whitespace", "  Justice  -  D.A.N.C.E .mp3", "Justice", "D.A.N.C.E"},
		{"hyphen without spaces", "twenty-one.mp3", "Unknown Artist", "twenty-one"},
		{"path is stripped", "/music/inbox/M83 - Midnight City.m4a", "M83", "Midnight City"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			artist, title := ParseFilename(tc.filename)
			if artist != tc.wantArtist || title != tc.wantTitle {
				t.Errorf("ParseFilename(%q) = (%q, %q), want (%q, %q)",
					tc.filename, artist, title, tc.wantArtist, tc.wantTitle)
			}
		})
	}
}
