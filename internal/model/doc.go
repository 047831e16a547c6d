// Package model contains the domain types for playlist downloads: the
// per-video item with its mutable download state, the playlist aggregate,
// and the pause/cancel control gate shared with the download worker.
package model
