package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/ytget/yt-playlist-downloader/internal/model"
)

// Timeout constants
const (
	DefaultAnalyzeTimeout = 60 * time.Second
)

// Playlist size limits
const (
	MaxPlaylistItems     = 1000
	MaxFastPlaylistItems = 500
)

// Default values
const (
	DefaultPlaylistName = "Unknown Playlist"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Entry is one video discovered during analysis
type Entry struct {
	ID        string
	Title     string
	URL       string
	Duration  string
	Thumbnail string
}

// Result is the raw outcome of fetching metadata for a URL
type Result struct {
	Playlist bool
	ID       string
	Title    string
	Entries  []Entry
}

// Fetcher retrieves metadata for a URL. fast requests a flat listing
// without per-video detail.
type Fetcher interface {
	Fetch(ctx context.Context, url string, fast bool) (*Result, error)
}

// Service turns URLs into playlists ready for downloading
type Service struct {
	fetcher Fetcher
	logger  *log.Logger
	timeout time.Duration
}

// NewService creates an analysis service backed by the given fetcher
func NewService(fetcher Fetcher, logger *log.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		timeout: DefaultAnalyzeTimeout,
	}
}

// SetTimeout sets the timeout for analysis operations
func (s *Service) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// Analyze fetches metadata for url and builds a playlist. A playlist URL
// yields one item per entry in playlist order; a single-video URL yields a
// one-item playlist. Every entry gets a usable unique ID even when the
// source omits or repeats one.
func (s *Service) Analyze(ctx context.Context, url string, fast bool) (*model.Playlist, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("URL is empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("invalid URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.logger.Info("analyzing URL", "url", url, "fast", fast)
	start := time.Now()

	result, err := s.fetcher.Fetch(ctx, url, fast)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", url, err)
	}
	if len(result.Entries) == 0 {
		return nil, fmt.Errorf("no videos found at %s", url)
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = result.ID
	playlist.Title = result.Title
	playlist.Single = !result.Playlist
	if playlist.Title == "" {
		playlist.Title = DefaultPlaylistName
	}

	seen := make(map[string]bool, len(result.Entries))
	for _, entry := range result.Entries {
		id := entry.ID
		if id == "" {
			id = uuid.NewString()
		}
		// Duplicate IDs would make per-item control ambiguous
		if seen[id] {
			id = id + "-" + uuid.NewString()
		}
		seen[id] = true

		videoURL := entry.URL
		if videoURL == "" {
			videoURL = fmt.Sprintf(YouTubeVideoURLTemplate, entry.ID)
		}

		item := model.NewVideoItem(id, entry.Title, videoURL)
		item.Duration = entry.Duration
		item.Thumbnail = entry.Thumbnail
		playlist.Add(item)
	}

	s.logger.Info("analysis complete",
		"title", playlist.Title,
		"items", playlist.Len(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return playlist, nil
}
