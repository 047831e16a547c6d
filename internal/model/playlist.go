package model

// Playlist holds the analyzed items in source order. A new analysis replaces
// the whole playlist; items are never removed individually.
type Playlist struct {
	ID     string
	Title  string
	URL    string
	Single bool // true when the URL denoted one video, not a playlist
	Items  []*VideoItem
}

// NewPlaylist creates an empty playlist for the given source URL
func NewPlaylist(url string) *Playlist {
	return &Playlist{URL: url}
}

// Add appends an item, preserving source order
func (p *Playlist) Add(item *VideoItem) {
	p.Items = append(p.Items, item)
}

// Len returns the number of items
func (p *Playlist) Len() int {
	return len(p.Items)
}

// ItemByID returns the item with the given ID, or nil
func (p *Playlist) ItemByID(id string) *VideoItem {
	for _, item := range p.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// CompletedCount returns the number of completed items
func (p *Playlist) CompletedCount() int {
	completed := 0
	for _, item := range p.Items {
		if item.Status() == StatusCompleted {
			completed++
		}
	}
	return completed
}

// Progress returns overall completion as completed/total in percent. This is
// the single place overall progress is computed; callers must not rederive it
// from per-item percentages.
func (p *Playlist) Progress() float64 {
	if len(p.Items) == 0 {
		return 0
	}
	return float64(p.CompletedCount()) / float64(len(p.Items)) * 100
}

// HasErrors reports whether any item failed
func (p *Playlist) HasErrors() bool {
	for _, item := range p.Items {
		if item.Status() == StatusFailed {
			return true
		}
	}
	return false
}
