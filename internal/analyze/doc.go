// Package analyze resolves a YouTube URL into a playlist of video items.
// Single videos are wrapped into a one-item playlist so downstream code
// handles both uniformly. Analysis is all-or-nothing: a failure returns an
// error and no partial playlist.
package analyze
