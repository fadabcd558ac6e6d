package ui

import (
	"strings"
	"testing"

	"github.com/desertthunder/harmony/internal/models"
)

func TestTrackItemDescription(t *testing.T) {
	cases := []struct {
		name  string
		track models.Track
		want  []string
	}{
		{
			name: "catalog track",
			track: models.Track{
				Name: "One More Time", Artist: "Daft Punk",
				Album: "Discovery", Duration: 320,
			},
			want: []string{"Daft Punk", "Discovery", "5 min 20 sec"},
		},
		{
			name:  "local upload",
			track: models.Track{Name: "Demo", Artist: "Unknown Artist", IsLocal: true},
			want:  []string{"Unknown Artist", "local"},
		},
		{
			name:  "offline copy",
			track: models.Track{Name: "Saved", Artist: "A", IsDownloaded: true},
			want:  []string{"offline"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			desc := trackItem{track: tc.track}.Description()
			for _, want := range tc.want {
				if !strings.Contains(desc, want) {
					t.Errorf("description %q missing %q", desc, want)
				}
			}
		})
	}
}

func TestNewPaletteFallsBackToRose(t *testing.T) {
	known := NewPalette(models.AccentCyan)
	unknown := NewPalette("no-such-color")
	rose := NewPalette(models.AccentRose)

	if unknown.playing.GetForeground() != rose.playing.GetForeground() {
		t.Error("unknown accent should fall back to the rose palette")
	}
	if known.playing.GetForeground() == rose.playing.GetForeground() {
		t.Error("cyan palette should differ from rose")
	}
}
