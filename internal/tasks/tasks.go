// Package tasks implements long-running library operations, currently
// bulk offline sync of playlists. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/harmony/internal/models"
	"github.com/desertthunder/harmony/internal/shared"
	"golang.org/x/time/rate"
)

// Downloader saves a single track for offline playback and reports
// whether it ended up stored. The library manager satisfies this.
type Downloader interface {
	Download(ctx context.Context, track models.Track) bool
	IsDownloaded(id string) bool
}

// TrackSyncResult records the outcome for one track of a sync run.
type TrackSyncResult struct {
	Track   models.Track
	Saved   bool
	Skipped bool // already stored before the run
	Error   error
}

// SyncRunResult aggregates a bulk sync.
type SyncRunResult struct {
	TotalTracks int
	Saved       int
	Skipped     int
	Failed      int
	Results     []TrackSyncResult
}

// SyncOpts configures a bulk sync run.
type SyncOpts struct {
	NumWorkers int     // concurrent downloads (default 3, capped at 8)
	RateLimit  float64 // fetches per second (default 2)
	Force      bool    // re-fetch tracks that are already stored
}

// SyncEngine orchestrates bulk downloads against a Downloader.
type SyncEngine struct {
	library Downloader
}

func NewSyncEngine(library Downloader) *SyncEngine {
	return &SyncEngine{library: library}
}

// SyncPlaylist saves every track of a playlist for offline playback,
// using a bounded worker pool behind a shared rate limiter. Tracks
// already stored are skipped unless opts.Force is set; individual
// failures are collected rather than aborting the run.
func (e *SyncEngine) SyncPlaylist(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	playlist *models.Playlist,
	opts SyncOpts,
) (*SyncRunResult, error) {
	if e.library == nil {
		return nil, fmt.Errorf("%w: library not initialized", shared.ErrServiceUnavailable)
	}
	if playlist == nil {
		return nil, shared.ErrPlaylistNotFound
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 3
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2.0
	}

	total := len(playlist.Tracks)
	result := &SyncRunResult{
		TotalTracks: total,
		Results:     make([]TrackSyncResult, 0, total),
	}
	if total == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan models.Track, total)
	results := make(chan TrackSyncResult, total)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.syncWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	e.sendProgress(prog, syncStartedUpdate(total, playlist.Name))
	for _, track := range playlist.Tracks {
		jobs <- track
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		switch {
		case res.Skipped:
			result.Skipped++
			e.sendProgress(prog, trackSkippedUpdate(completed, total, res.Track))
		case res.Saved:
			result.Saved++
			e.sendProgress(prog, trackSavedUpdate(completed, total, res.Track))
		default:
			result.Failed++
			e.sendProgress(prog, trackFailedUpdate(completed, total, res.Track, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// syncWorker pulls tracks off the jobs channel and downloads them.
func (e *SyncEngine) syncWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan models.Track,
	results chan<- TrackSyncResult,
	opts SyncOpts,
) {
	defer wg.Done()

	for track := range jobs {
		select {
		case <-ctx.Done():
			results <- TrackSyncResult{Track: track, Error: ctx.Err()}
			continue
		default:
		}

		if !opts.Force && e.library.IsDownloaded(track.ID) {
			results <- TrackSyncResult{Track: track, Skipped: true}
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			results <- TrackSyncResult{Track: track, Error: err}
			continue
		}

		if e.library.Download(ctx, track) {
			results <- TrackSyncResult{Track: track, Saved: true}
		} else {
			results <- TrackSyncResult{
				Track: track,
				Error: fmt.Errorf("%w: %s", shared.ErrDownloadFailed, track.Name),
			}
		}
	}
}

func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
