package download

import (
	"context"
	"errors"
)

// ErrCanceled signals that a download was stopped on purpose. It is never
// treated as a failure.
var ErrCanceled = errors.New("download canceled")

// Phase identifies the stage a progress event belongs to
type Phase string

const (
	PhaseDownloading Phase = "downloading"
	PhaseFinished    Phase = "finished"
)

// Event is one progress report from a running download
type Event struct {
	Phase      Phase
	Downloaded int64
	Total      int64
	SpeedBPS   float64
	ETASec     int
	Filename   string
}

// Hook receives progress events during a download. Returning a non-nil
// error aborts the download with that error.
type Hook func(Event) error

// Options configures a single video download
type Options struct {
	Directory   string
	Format      string
	MergeFormat string
}

// VideoDownloader downloads one video, reporting progress through hook
type VideoDownloader interface {
	Download(ctx context.Context, url string, opts Options, hook Hook) (outputPath string, err error)
}
