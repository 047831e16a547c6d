// Package ui builds the Fyne desktop interface: the URL/settings panel,
// the playlist item list with per-item controls, and the overall progress
// footer. Worker callbacks are marshaled onto the UI thread with fyne.Do.
package ui
