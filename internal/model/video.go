package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
)

// VideoItem is the in-memory record of one playlist entry and its download
// state. Identity and metadata fields are set by the analyzer and never
// change afterwards; the download state is guarded by a mutex because the
// download worker writes it while the UI thread reads it.
type VideoItem struct {
	ID        string
	Title     string
	URL       string
	Duration  string
	Thumbnail string

	ctl *Control

	mu              sync.RWMutex
	status          Status
	progress        float64 // 0 to 100
	speed           string  // human readable, e.g. "1.2 MB/s"
	etaSec          int     // -1 if unknown
	totalBytes      int64
	downloadedBytes int64
	lastError       string
	outputPath      string
}

// VideoState is a consistent snapshot of an item's download state for display
type VideoState struct {
	Status          Status
	Progress        float64
	Speed           string
	ETASec          int
	DownloadedBytes int64
	TotalBytes      int64
	LastError       string
	OutputPath      string
}

// NewVideoItem creates a pending item with a fresh control gate
func NewVideoItem(id, title, url string) *VideoItem {
	return &VideoItem{
		ID:     id,
		Title:  title,
		URL:    url,
		ctl:    NewControl(),
		status: StatusPending,
		etaSec: -1,
	}
}

// Control returns the item's pause/cancel gate
func (v *VideoItem) Control() *Control {
	return v.ctl
}

// Status returns the current status
func (v *VideoItem) Status() Status {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.status
}

// SetStatus sets the status. Transitions are caller-driven; the item does
// not validate them.
func (v *VideoItem) SetStatus(s Status) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = s
}

// Progress returns the current percentage (0 to 100)
func (v *VideoItem) Progress() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.progress
}

// UpdateTransfer records byte counters and rate telemetry from a progress
// event. The percentage is recomputed only when the total size is known;
// otherwise it keeps its last value.
func (v *VideoItem) UpdateTransfer(downloaded, total int64, speedBPS float64, etaSec int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.downloadedBytes = downloaded
	if total > 0 {
		v.totalBytes = total
		v.progress = float64(downloaded) / float64(total) * 100
	}
	if speedBPS > 0 {
		v.speed = humanize.Bytes(uint64(speedBPS)) + "/s"
	}
	if etaSec > 0 {
		v.etaSec = etaSec
	}
}

// Complete marks the item completed and records the output filename
func (v *VideoItem) Complete(outputPath string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = StatusCompleted
	v.progress = 100
	v.speed = ""
	v.etaSec = -1
	if outputPath != "" {
		v.outputPath = outputPath
	}
}

// Fail marks the item failed and stores the error message
func (v *VideoItem) Fail(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = StatusFailed
	v.lastError = msg
}

// OutputPath returns the recorded output filename, empty until completion
func (v *VideoItem) OutputPath() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.outputPath
}

// LastError returns the stored error message, empty unless the item failed
func (v *VideoItem) LastError() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastError
}

// Snapshot returns a consistent copy of the download state for the UI
func (v *VideoItem) Snapshot() VideoState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return VideoState{
		Status:          v.status,
		Progress:        v.progress,
		Speed:           v.speed,
		ETASec:          v.etaSec,
		DownloadedBytes: v.downloadedBytes,
		TotalBytes:      v.totalBytes,
		LastError:       v.lastError,
		OutputPath:      v.outputPath,
	}
}

// DisplayTitle returns the title, or the URL when no title is known
func (v *VideoItem) DisplayTitle() string {
	if t := strings.TrimSpace(v.Title); t != "" {
		return t
	}
	return v.URL
}

// ETAString returns the snapshot's ETA formatted as mm:ss or hh:mm:ss, or
// "—" if unknown
func (s VideoState) ETAString() string {
	if s.ETASec <= 0 {
		return "—"
	}
	hours := s.ETASec / 3600
	minutes := (s.ETASec % 3600) / 60
	seconds := s.ETASec % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// SizeString returns "downloaded of total" using human readable units, or
// just the downloaded count when the total is unknown
func (s VideoState) SizeString() string {
	if s.DownloadedBytes <= 0 {
		return ""
	}
	if s.TotalBytes > 0 {
		return fmt.Sprintf("%s of %s", humanize.Bytes(uint64(s.DownloadedBytes)), humanize.Bytes(uint64(s.TotalBytes)))
	}
	return humanize.Bytes(uint64(s.DownloadedBytes))
}
