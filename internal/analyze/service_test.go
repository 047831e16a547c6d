package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/charmbracelet/log"
)

// fakeFetcher returns a canned result or error
type fakeFetcher struct {
	result *Result
	err    error

	lastURL  string
	lastFast bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, fast bool) (*Result, error) {
	f.lastURL = url
	f.lastFast = fast
	return f.result, f.err
}

func testLogger() *log.Logger {
	return log.New(os.Stderr)
}

func TestAnalyzePlaylist(t *testing.T) {
	fetcher := &fakeFetcher{result: &Result{
		Playlist: true,
		ID:       "PLtest",
		Title:    "Test Playlist",
		Entries: []Entry{
			{ID: "vid1", Title: "First", URL: "https://www.youtube.com/watch?v=vid1"},
			{ID: "vid2", Title: "Second", URL: "https://www.youtube.com/watch?v=vid2"},
			{ID: "vid3", Title: "Third", URL: "https://www.youtube.com/watch?v=vid3"},
		},
	}}
	service := NewService(fetcher, testLogger())

	playlist, err := service.Analyze(context.Background(), "https://www.youtube.com/playlist?list=PLtest", false)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if playlist.Len() != 3 {
		t.Errorf("Expected 3 items, got %d", playlist.Len())
	}
	if playlist.Title != "Test Playlist" {
		t.Errorf("Expected title 'Test Playlist', got %q", playlist.Title)
	}
	if playlist.Single {
		t.Error("Expected playlist, got single video")
	}

	// Order must match the source
	wantTitles := []string{"First", "Second", "Third"}
	for i, item := range playlist.Items {
		if item.Title != wantTitles[i] {
			t.Errorf("Expected item %d title %q, got %q", i, wantTitles[i], item.Title)
		}
	}
}

func TestAnalyzeSingleVideo(t *testing.T) {
	fetcher := &fakeFetcher{result: &Result{
		Playlist: false,
		ID:       "vid1",
		Title:    "Lone Video",
		Entries: []Entry{
			{ID: "vid1", Title: "Lone Video", URL: "https://www.youtube.com/watch?v=vid1"},
		},
	}}
	service := NewService(fetcher, testLogger())

	playlist, err := service.Analyze(context.Background(), "https://www.youtube.com/watch?v=vid1", false)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if playlist.Len() != 1 {
		t.Errorf("Expected 1 item, got %d", playlist.Len())
	}
	if !playlist.Single {
		t.Error("Expected single-video playlist")
	}
}

func TestAnalyzeItemCountMatchesEntries(t *testing.T) {
	// Entries without IDs must still become items
	entries := []Entry{
		{ID: "vid1", Title: "Has ID"},
		{ID: "", Title: "No ID"},
		{ID: "vid1", Title: "Duplicate ID"},
	}
	fetcher := &fakeFetcher{result: &Result{Playlist: true, Entries: entries}}
	service := NewService(fetcher, testLogger())

	playlist, err := service.Analyze(context.Background(), "https://www.youtube.com/playlist?list=PLx", false)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if playlist.Len() != len(entries) {
		t.Errorf("Expected %d items, got %d", len(entries), playlist.Len())
	}

	seen := make(map[string]bool)
	for _, item := range playlist.Items {
		if item.ID == "" {
			t.Error("Expected every item to have an ID")
		}
		if seen[item.ID] {
			t.Errorf("Expected unique item IDs, got duplicate %q", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestAnalyzeFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("network unreachable")}
	service := NewService(fetcher, testLogger())

	playlist, err := service.Analyze(context.Background(), "https://www.youtube.com/playlist?list=PLx", false)
	if err == nil {
		t.Error("Expected error, got nil")
	}
	if playlist != nil {
		t.Error("Expected no playlist on failure")
	}
}

func TestAnalyzeEmptyResult(t *testing.T) {
	fetcher := &fakeFetcher{result: &Result{Playlist: true, Entries: nil}}
	service := NewService(fetcher, testLogger())

	if _, err := service.Analyze(context.Background(), "https://www.youtube.com/playlist?list=PLx", false); err == nil {
		t.Error("Expected error for empty playlist, got nil")
	}
}

func TestAnalyzeInvalidURL(t *testing.T) {
	service := NewService(&fakeFetcher{}, testLogger())

	tests := []string{"", "   ", "not a url", "ftp://example.com/file"}
	for _, url := range tests {
		if _, err := service.Analyze(context.Background(), url, false); err == nil {
			t.Errorf("Expected error for URL %q, got nil", url)
		}
	}
}

func TestAnalyzeTrimsURL(t *testing.T) {
	fetcher := &fakeFetcher{result: &Result{
		Playlist: false,
		Entries:  []Entry{{ID: "vid1", Title: "Video"}},
	}}
	service := NewService(fetcher, testLogger())

	if _, err := service.Analyze(context.Background(), "  https://www.youtube.com/watch?v=vid1  ", true); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if fetcher.lastURL != "https://www.youtube.com/watch?v=vid1" {
		t.Errorf("Expected trimmed URL, got %q", fetcher.lastURL)
	}
	if !fetcher.lastFast {
		t.Error("Expected fast flag to reach the fetcher")
	}
}

func TestAnalyzeFallbackVideoURL(t *testing.T) {
	fetcher := &fakeFetcher{result: &Result{
		Playlist: true,
		Entries:  []Entry{{ID: "abc123", Title: "Video"}},
	}}
	service := NewService(fetcher, testLogger())

	playlist, err := service.Analyze(context.Background(), "https://www.youtube.com/playlist?list=PLx", false)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	want := fmt.Sprintf(YouTubeVideoURLTemplate, "abc123")
	if playlist.Items[0].URL != want {
		t.Errorf("Expected URL %q, got %q", want, playlist.Items[0].URL)
	}
}
