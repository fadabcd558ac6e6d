package tasks

import (
	"fmt"

	"github.com/desertthunder/harmony/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SyncStart Phase = iota
	FetchTrack
)

func (p Phase) String() string {
	switch p {
	case SyncStart:
		return "sync_start"
	case FetchTrack:
		return "fetch_track"
	default:
		return ""
	}
}

func syncStartedUpdate(total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncStart,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Syncing %q (%d tracks) for offline playback...", name, total),
	}
}

func trackSavedUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, tr.Artist, tr.Name),
	}
}

func trackSkippedUpdate(step, total int, tr models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s - %s (already saved)", step, total, tr.Artist, tr.Name),
	}
}

func trackFailedUpdate(step, total int, tr models.Track, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTrack,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, tr.Artist, tr.Name, err),
	}
}
