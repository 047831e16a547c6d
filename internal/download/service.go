package download

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ytget/yt-playlist-downloader/internal/model"
)

// Service walks the playlist sequentially, downloading one item at a time
// and relaying per-item and overall progress to the UI callbacks.
type Service struct {
	dl     VideoDownloader
	logger *log.Logger

	mu       sync.Mutex
	playlist *model.Playlist
	running  bool
	stopAll  bool

	onItem    func(*model.VideoItem)
	onOverall func(completed, total int, percent float64)
}

// NewService creates a download service using the given per-video downloader
func NewService(dl VideoDownloader, logger *log.Logger) *Service {
	return &Service{dl: dl, logger: logger}
}

// SetItemCallback sets the callback invoked on every per-item state change.
// The callback runs on the download goroutine; the UI must marshal it.
func (s *Service) SetItemCallback(cb func(*model.VideoItem)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onItem = cb
}

// SetOverallCallback sets the callback invoked when overall progress changes
func (s *Service) SetOverallCallback(cb func(completed, total int, percent float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOverall = cb
}

// SetPlaylist replaces the current playlist. Rejected while a run is active.
func (s *Service) SetPlaylist(playlist *model.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("downloads are in progress")
	}
	s.playlist = playlist
	return nil
}

// Playlist returns the current playlist, or nil
func (s *Service) Playlist() *model.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist
}

// Running reports whether a download run is active
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// DownloadAll starts downloading every non-completed item in playlist order.
// Items run strictly one at a time. Returns an error if no playlist is set
// or a run is already active.
func (s *Service) DownloadAll(opts Options) error {
	s.mu.Lock()
	if s.playlist == nil || s.playlist.Len() == 0 {
		s.mu.Unlock()
		return fmt.Errorf("no playlist to download")
	}
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("downloads already in progress")
	}
	s.running = true
	s.stopAll = false
	playlist := s.playlist
	s.mu.Unlock()

	go s.run(playlist, opts)
	return nil
}

// run is the sequential download loop
func (s *Service) run(playlist *model.Playlist, opts Options) {
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		s.notifyOverall(playlist)
	}()

	s.logger.Info("starting playlist download", "items", playlist.Len(), "dir", opts.Directory)

	for _, item := range playlist.Items {
		if s.stopRequested() {
			s.cancelRemaining(playlist)
			break
		}

		// Completed and failed items are never retried within a run
		status := item.Status()
		if status == model.StatusCompleted || status == model.StatusFailed {
			continue
		}

		s.startItem(item, opts)
		s.notifyOverall(playlist)
	}

	s.logger.Info("playlist download finished",
		"completed", playlist.CompletedCount(),
		"total", playlist.Len(),
		"errors", playlist.HasErrors())
}

// startItem downloads one item, bridging its control gate to a context
func (s *Service) startItem(item *model.VideoItem, opts Options) {
	ctl := item.Control()
	ctl.Reset()
	item.SetStatus(model.StatusDownloading)
	s.notifyItem(item)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancellation flows from the gate into the downloader's context
	go func() {
		select {
		case <-ctl.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	s.logger.Info("downloading", "id", item.ID, "title", item.DisplayTitle())

	outputPath, err := s.dl.Download(ctx, item.URL, opts, s.hookFor(item))

	switch {
	case err == nil:
		item.Complete(outputPath)
		s.logger.Info("download complete", "id", item.ID, "output", outputPath)
	case errors.Is(err, ErrCanceled):
		item.SetStatus(model.StatusCancelled)
		s.logger.Info("download cancelled", "id", item.ID)
	default:
		item.Fail(err.Error())
		s.logger.Error("download failed", "id", item.ID, "err", err)
	}
	s.notifyItem(item)
}

// hookFor returns the progress hook for one item. The hook enforces the
// pause gate and cancellation before applying any progress update.
func (s *Service) hookFor(item *model.VideoItem) Hook {
	ctl := item.Control()
	return func(event Event) error {
		if ctl.Cancelled() {
			return ErrCanceled
		}
		if ctl.Paused() {
			item.SetStatus(model.StatusPaused)
			s.notifyItem(item)
			if cancelled := ctl.AwaitResume(); cancelled {
				return ErrCanceled
			}
			item.SetStatus(model.StatusDownloading)
			s.notifyItem(item)
		}
		if event.Phase == PhaseDownloading {
			item.UpdateTransfer(event.Downloaded, event.Total, event.SpeedBPS, event.ETASec)
			s.notifyItem(item)
		}
		return nil
	}
}

// PauseItem requests a pause for a downloading item
func (s *Service) PauseItem(id string) error {
	item, err := s.activeItem(id)
	if err != nil {
		return err
	}
	if item.Status() != model.StatusDownloading {
		return fmt.Errorf("item is not downloading: %s", item.Status())
	}
	item.Control().Pause()
	item.SetStatus(model.StatusPaused)
	s.notifyItem(item)
	return nil
}

// ResumeItem releases a paused item
func (s *Service) ResumeItem(id string) error {
	item, err := s.activeItem(id)
	if err != nil {
		return err
	}
	if item.Status() != model.StatusPaused {
		return fmt.Errorf("item is not paused: %s", item.Status())
	}
	item.Control().Resume()
	item.SetStatus(model.StatusDownloading)
	s.notifyItem(item)
	return nil
}

// CancelItem cancels a downloading or paused item
func (s *Service) CancelItem(id string) error {
	item, err := s.activeItem(id)
	if err != nil {
		return err
	}
	if !item.Status().IsActive() {
		return fmt.Errorf("item is not active: %s", item.Status())
	}
	item.Control().Cancel()
	return nil
}

// PauseAll pauses every downloading item
func (s *Service) PauseAll() {
	s.forEachItem(func(item *model.VideoItem) {
		if item.Status() == model.StatusDownloading {
			item.Control().Pause()
			item.SetStatus(model.StatusPaused)
			s.notifyItem(item)
		}
	})
}

// ResumeAll releases every paused item
func (s *Service) ResumeAll() {
	s.forEachItem(func(item *model.VideoItem) {
		if item.Status() == model.StatusPaused {
			item.Control().Resume()
			item.SetStatus(model.StatusDownloading)
			s.notifyItem(item)
		}
	})
}

// CancelAll cancels the active item and stops the run; pending items are
// marked cancelled by the loop instead of starting.
func (s *Service) CancelAll() {
	s.mu.Lock()
	s.stopAll = true
	s.mu.Unlock()

	s.forEachItem(func(item *model.VideoItem) {
		if item.Status().IsActive() {
			item.Control().Cancel()
		}
	})
}

// stopRequested reports whether CancelAll was called during this run
func (s *Service) stopRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopAll
}

// cancelRemaining marks still-pending items cancelled after a CancelAll
func (s *Service) cancelRemaining(playlist *model.Playlist) {
	for _, item := range playlist.Items {
		if item.Status() == model.StatusPending {
			item.SetStatus(model.StatusCancelled)
			s.notifyItem(item)
		}
	}
}

// activeItem looks up an item by ID in the current playlist
func (s *Service) activeItem(id string) (*model.VideoItem, error) {
	s.mu.Lock()
	playlist := s.playlist
	s.mu.Unlock()

	if playlist == nil {
		return nil, fmt.Errorf("no playlist loaded")
	}
	item := playlist.ItemByID(id)
	if item == nil {
		return nil, fmt.Errorf("item not found: %s", id)
	}
	return item, nil
}

// forEachItem applies fn to every item of the current playlist
func (s *Service) forEachItem(fn func(*model.VideoItem)) {
	s.mu.Lock()
	playlist := s.playlist
	s.mu.Unlock()

	if playlist == nil {
		return
	}
	for _, item := range playlist.Items {
		fn(item)
	}
}

// notifyItem calls the item callback if set
func (s *Service) notifyItem(item *model.VideoItem) {
	s.mu.Lock()
	cb := s.onItem
	s.mu.Unlock()
	if cb != nil {
		cb(item)
	}
}

// notifyOverall recomputes and publishes overall progress
func (s *Service) notifyOverall(playlist *model.Playlist) {
	s.mu.Lock()
	cb := s.onOverall
	s.mu.Unlock()
	if cb != nil {
		cb(playlist.CompletedCount(), playlist.Len(), playlist.Progress())
	}
}
