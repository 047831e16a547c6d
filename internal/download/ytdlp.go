package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Progress reporting interval
const progressInterval = 500 * time.Millisecond

// Output filename template
const outputTemplate = "/%(title)s.%(ext)s"

// YTDLPDownloader downloads videos through the yt-dlp binary
type YTDLPDownloader struct{}

// NewYTDLPDownloader creates a downloader
func NewYTDLPDownloader() *YTDLPDownloader {
	return &YTDLPDownloader{}
}

// Download runs yt-dlp for a single video. Progress events flow through
// hook; a hook error cancels the run and is returned unchanged.
func (d *YTDLPDownloader) Download(ctx context.Context, url string, opts Options, hook Hook) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		NoPlaylist().
		Output(opts.Directory + outputTemplate)

	if opts.Format != "" {
		dl = dl.Format(opts.Format)
	}
	if opts.MergeFormat != "" {
		dl = dl.MergeOutputFormat(opts.MergeFormat)
	}

	var hookMu sync.Mutex
	var hookErr error
	dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		event := Event{
			Phase:      PhaseDownloading,
			Downloaded: int64(update.DownloadedBytes),
			Total:      int64(update.TotalBytes),
			ETASec:     -1,
		}
		if !update.Started.IsZero() {
			elapsed := time.Since(update.Started)
			if elapsed.Seconds() > 0 {
				event.SpeedBPS = float64(update.DownloadedBytes) / elapsed.Seconds()
			}
		}
		if eta := update.ETA(); eta > 0 {
			event.ETASec = int(eta.Seconds())
		}

		if err := hook(event); err != nil {
			hookMu.Lock()
			if hookErr == nil {
				hookErr = err
			}
			hookMu.Unlock()
			cancel()
		}
	})

	result, err := dl.Run(ctx, url)

	hookMu.Lock()
	aborted := hookErr
	hookMu.Unlock()
	if aborted != nil {
		return "", aborted
	}
	if err != nil {
		if ctx.Err() == context.Canceled {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("yt-dlp failed: %w", err)
	}

	outputPath := extractOutputPath(result)
	if err := hook(Event{Phase: PhaseFinished, Filename: outputPath}); err != nil {
		return "", err
	}
	return outputPath, nil
}

// extractOutputPath pulls the downloaded filename from the yt-dlp result
func extractOutputPath(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	info, err := result.GetExtractedInfo()
	if err != nil || len(info) == 0 {
		return ""
	}
	if info[0].Filename != nil {
		return *info[0].Filename
	}
	return ""
}

// Install ensures the yt-dlp binary is available, downloading it if needed
func Install(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{})
	return err
}
