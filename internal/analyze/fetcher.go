package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	goytdlp "github.com/lrstanley/go-ytdlp"
	ytdlpv2 "github.com/ytget/ytdlp/v2"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// YTDLPFetcher fetches metadata with two backends: a flat playlist listing
// for fast analysis and the yt-dlp binary for full metadata.
type YTDLPFetcher struct{}

// NewYTDLPFetcher creates a fetcher
func NewYTDLPFetcher() *YTDLPFetcher {
	return &YTDLPFetcher{}
}

// Fetch retrieves metadata for url. Fast mode only applies to playlist
// URLs; single videos always take the full path.
func (f *YTDLPFetcher) Fetch(ctx context.Context, url string, fast bool) (*Result, error) {
	isPlaylist := strings.Contains(url, PlaylistParam)

	if fast && isPlaylist {
		return f.fetchFlat(ctx, url)
	}
	return f.fetchFull(ctx, url, isPlaylist)
}

// fetchFlat lists playlist entries without per-video detail
func (f *YTDLPFetcher) fetchFlat(ctx context.Context, url string) (*Result, error) {
	playlistID := extractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	d := ytdlpv2.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	if len(items) > MaxFastPlaylistItems {
		items = items[:MaxFastPlaylistItems]
	}

	result := &Result{
		Playlist: true,
		ID:       playlistID,
		Entries:  make([]Entry, 0, len(items)),
	}
	for _, it := range items {
		result.Entries = append(result.Entries, Entry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	if len(result.Entries) > 0 {
		result.Title = result.Entries[0].Title + " Playlist"
	}
	return result, nil
}

// fetchFull runs yt-dlp to dump metadata as a single JSON document
func (f *YTDLPFetcher) fetchFull(ctx context.Context, url string, isPlaylist bool) (*Result, error) {
	dl := goytdlp.New().
		DumpSingleJSON().
		SkipDownload().
		IgnoreErrors().
		Quiet().
		NoWarnings()

	if isPlaylist {
		dl = dl.FlatPlaylist().PlaylistEnd(MaxPlaylistItems)
	} else {
		dl = dl.NoPlaylist()
	}

	out, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp metadata fetch failed: %w", err)
	}

	return parseMetadataJSON(out.Stdout)
}

// metadataDocument mirrors the fields of yt-dlp's -J output that analysis
// needs. A playlist document carries entries; a video document carries its
// own id/title/duration.
type metadataDocument struct {
	Type     string          `json:"_type"`
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Duration float64         `json:"duration"`
	Thumb    string          `json:"thumbnail"`
	PageURL  string          `json:"webpage_url"`
	Entries  []metadataEntry `json:"entries"`
}

type metadataEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
	Thumb    string  `json:"thumbnail"`
}

// parseMetadataJSON converts yt-dlp JSON output into a Result
func parseMetadataJSON(output string) (*Result, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, fmt.Errorf("yt-dlp returned no output")
	}

	var doc metadataDocument
	if err := json.Unmarshal([]byte(output), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}

	if doc.Type == "playlist" {
		result := &Result{
			Playlist: true,
			ID:       doc.ID,
			Title:    doc.Title,
			Entries:  make([]Entry, 0, len(doc.Entries)),
		}
		for _, e := range doc.Entries {
			result.Entries = append(result.Entries, Entry{
				ID:        e.ID,
				Title:     e.Title,
				URL:       e.URL,
				Duration:  formatDuration(int(e.Duration)),
				Thumbnail: e.Thumb,
			})
		}
		return result, nil
	}

	videoURL := doc.PageURL
	if videoURL == "" && doc.ID != "" {
		videoURL = fmt.Sprintf(YouTubeVideoURLTemplate, doc.ID)
	}
	return &Result{
		Playlist: false,
		ID:       doc.ID,
		Title:    doc.Title,
		Entries: []Entry{{
			ID:        doc.ID,
			Title:     doc.Title,
			URL:       videoURL,
			Duration:  formatDuration(int(doc.Duration)),
			Thumbnail: doc.Thumb,
		}},
	}, nil
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// formatDuration formats seconds into HH:MM:SS or MM:SS
func formatDuration(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
