package download

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/ytget/yt-playlist-downloader/internal/model"
)

func testLogger() *log.Logger {
	return log.New(os.Stderr)
}

// fakeDownloader records call order and returns canned results per URL
type fakeDownloader struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error
}

func (f *fakeDownloader) Download(_ context.Context, url string, _ Options, hook Hook) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	err := f.errs[url]
	f.mu.Unlock()

	if err != nil {
		return "", err
	}
	if err := hook(Event{Phase: PhaseDownloading, Downloaded: 50, Total: 100}); err != nil {
		return "", err
	}
	out := "/tmp/out.mp4"
	if err := hook(Event{Phase: PhaseFinished, Filename: out}); err != nil {
		return "", err
	}
	return out, nil
}

func (f *fakeDownloader) callOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// gatedDownloader blocks until the test releases each download
type gatedDownloader struct {
	started chan string
	proceed chan struct{}
}

func newGatedDownloader() *gatedDownloader {
	return &gatedDownloader{
		started: make(chan string, 10),
		proceed: make(chan struct{}, 10),
	}
}

func (g *gatedDownloader) Download(_ context.Context, url string, _ Options, hook Hook) (string, error) {
	g.started <- url
	<-g.proceed
	if err := hook(Event{Phase: PhaseDownloading, Downloaded: 10, Total: 100}); err != nil {
		return "", err
	}
	if err := hook(Event{Phase: PhaseFinished}); err != nil {
		return "", err
	}
	return "/out.mp4", nil
}

func testPlaylist(urls ...string) *model.Playlist {
	playlist := model.NewPlaylist("https://www.youtube.com/playlist?list=PLtest")
	for i, url := range urls {
		playlist.Add(model.NewVideoItem(url, "Video "+string(rune('A'+i)), url))
	}
	return playlist
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDownloadAllSequentialOrder(t *testing.T) {
	dl := &fakeDownloader{}
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1", "url2", "url3")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{Directory: "/tmp"}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	order := dl.callOrder()
	if len(order) != 3 {
		t.Fatalf("Expected 3 downloads, got %d", len(order))
	}
	for i, want := range []string{"url1", "url2", "url3"} {
		if order[i] != want {
			t.Errorf("Expected download %d to be %s, got %s", i, want, order[i])
		}
	}
	for _, item := range playlist.Items {
		if item.Status() != model.StatusCompleted {
			t.Errorf("Expected item %s completed, got %s", item.ID, item.Status())
		}
	}
}

func TestDownloadAllSkipsCompletedAndFailed(t *testing.T) {
	dl := &fakeDownloader{}
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1", "url2", "url3")
	playlist.Items[0].Complete("/done.mp4")
	playlist.Items[1].Fail("previous error")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	order := dl.callOrder()
	if len(order) != 1 || order[0] != "url3" {
		t.Errorf("Expected only url3 to download, got %v", order)
	}
}

func TestDownloadAllContinuesPastFailure(t *testing.T) {
	dl := &fakeDownloader{errs: map[string]error{"url2": errors.New("network error")}}
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1", "url2", "url3")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	if got := playlist.Items[1].Status(); got != model.StatusFailed {
		t.Errorf("Expected url2 failed, got %s", got)
	}
	if playlist.Items[1].LastError() == "" {
		t.Error("Expected failed item to record an error message")
	}
	if got := playlist.Items[2].Status(); got != model.StatusCompleted {
		t.Errorf("Expected url3 completed after url2 failure, got %s", got)
	}
}

func TestDownloadAllRejectsConcurrentRun(t *testing.T) {
	dl := newGatedDownloader()
	service := NewService(dl, testLogger())
	if err := service.SetPlaylist(testPlaylist("url1")); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	<-dl.started

	if err := service.DownloadAll(Options{}); err == nil {
		t.Error("Expected error for second DownloadAll while running")
	}
	if err := service.SetPlaylist(testPlaylist("url2")); err == nil {
		t.Error("Expected error for SetPlaylist while running")
	}

	dl.proceed <- struct{}{}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })
}

func TestPauseAndResumeItem(t *testing.T) {
	dl := newGatedDownloader()
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	<-dl.started

	if err := service.PauseItem("url1"); err != nil {
		t.Fatalf("PauseItem failed: %v", err)
	}
	if got := playlist.Items[0].Status(); got != model.StatusPaused {
		t.Errorf("Expected paused, got %s", got)
	}

	// Let the worker hit its checkpoint; it must stay paused there
	dl.proceed <- struct{}{}
	time.Sleep(50 * time.Millisecond)
	if got := playlist.Items[0].Status(); got != model.StatusPaused {
		t.Errorf("Expected item to remain paused, got %s", got)
	}
	if !service.Running() {
		t.Error("Expected run to remain active while paused")
	}

	if err := service.ResumeItem("url1"); err != nil {
		t.Fatalf("ResumeItem failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	if got := playlist.Items[0].Status(); got != model.StatusCompleted {
		t.Errorf("Expected completed after resume, got %s", got)
	}
}

func TestCancelWhilePaused(t *testing.T) {
	dl := newGatedDownloader()
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	<-dl.started

	if err := service.PauseItem("url1"); err != nil {
		t.Fatalf("PauseItem failed: %v", err)
	}
	dl.proceed <- struct{}{}

	if err := service.CancelItem("url1"); err != nil {
		t.Fatalf("CancelItem failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	if got := playlist.Items[0].Status(); got != model.StatusCancelled {
		t.Errorf("Expected cancelled, got %s", got)
	}
	if playlist.Items[0].LastError() != "" {
		t.Error("Expected cancellation to leave no error message")
	}
}

func TestCancelAllStopsPendingItems(t *testing.T) {
	dl := newGatedDownloader()
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1", "url2", "url3")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	<-dl.started

	service.CancelAll()
	dl.proceed <- struct{}{}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	if got := playlist.Items[0].Status(); got != model.StatusCancelled {
		t.Errorf("Expected active item cancelled, got %s", got)
	}
	for _, item := range playlist.Items[1:] {
		if got := item.Status(); got != model.StatusCancelled {
			t.Errorf("Expected pending item %s cancelled, got %s", item.ID, got)
		}
	}
}

func TestControlGuards(t *testing.T) {
	service := NewService(&fakeDownloader{}, testLogger())
	playlist := testPlaylist("url1")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	if err := service.PauseItem("url1"); err == nil {
		t.Error("Expected error pausing a pending item")
	}
	if err := service.ResumeItem("url1"); err == nil {
		t.Error("Expected error resuming a pending item")
	}
	if err := service.CancelItem("url1"); err == nil {
		t.Error("Expected error cancelling a pending item")
	}
	if err := service.PauseItem("missing"); err == nil {
		t.Error("Expected error for unknown item ID")
	}
}

func TestOverallProgressCountsOnlyCompleted(t *testing.T) {
	dl := &fakeDownloader{errs: map[string]error{"url2": errors.New("boom")}}
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1", "url2")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	var mu sync.Mutex
	var lastCompleted, lastTotal int
	var lastPercent float64
	service.SetOverallCallback(func(completed, total int, percent float64) {
		mu.Lock()
		lastCompleted, lastTotal, lastPercent = completed, total, percent
		mu.Unlock()
	})

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	mu.Lock()
	defer mu.Unlock()
	if lastCompleted != 1 || lastTotal != 2 {
		t.Errorf("Expected 1/2 completed, got %d/%d", lastCompleted, lastTotal)
	}
	if lastPercent != 50 {
		t.Errorf("Expected 50%% overall, got %.1f", lastPercent)
	}
}

func TestItemCallbackReceivesProgress(t *testing.T) {
	dl := &fakeDownloader{}
	service := NewService(dl, testLogger())
	playlist := testPlaylist("url1")
	if err := service.SetPlaylist(playlist); err != nil {
		t.Fatalf("SetPlaylist failed: %v", err)
	}

	var mu sync.Mutex
	sawDownloading := false
	service.SetItemCallback(func(item *model.VideoItem) {
		mu.Lock()
		if item.Status() == model.StatusDownloading && item.Progress() > 0 {
			sawDownloading = true
		}
		mu.Unlock()
	})

	if err := service.DownloadAll(Options{}); err != nil {
		t.Fatalf("DownloadAll failed: %v", err)
	}
	waitFor(t, 5*time.Second, func() bool { return !service.Running() })

	mu.Lock()
	defer mu.Unlock()
	if !sawDownloading {
		t.Error("Expected a downloading progress callback")
	}
}
