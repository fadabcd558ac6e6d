package shared

import (
	"strings"
	"testing"
)

func TestGenerateEntityID(t *testing.T) {
	id := GenerateEntityID("playlist")
	if !strings.HasPrefix(id, "playlist-") {
		t.Errorf("expected playlist- prefix, got %s", id)
	}

	other := GenerateEntityID("playlist")
	if id == other {
		t.Error("consecutive ids should differ")
	}
}

func TestFormatTime(t *testing.T) {
	tc := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "negative", seconds: -4, want: "0:00"},
		{name: "under a minute", seconds: 42, want: "0:42"},
		{name: "minute boundary", seconds: 60, want: "1:00"},
		{name: "padded seconds", seconds: 125.8, want: "2:05"},
		{name: "long track", seconds: 3671, want: "61:11"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.seconds); got != tt.want {
				t.Errorf("FormatTime(%v) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tc := []struct {
		name    string
		seconds int
		want    string
	}{
		{name: "zero", seconds: 0, want: "0 sec"},
		{name: "seconds only", seconds: 45, want: "45 sec"},
		{name: "exact minutes", seconds: 180, want: "3 min"},
		{name: "minutes and seconds", seconds: 225, want: "3 min 45 sec"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.seconds); got != tt.want {
				t.Errorf("FormatDuration(%d) = %v, want %v", tt.seconds, got, tt.want)
			}
		})
	}
}
