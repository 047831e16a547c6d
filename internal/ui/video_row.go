package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-playlist-downloader/internal/model"
)

// VideoRow is a compact list row showing one playlist item with its
// progress and per-item controls.
type VideoRow struct {
	widget.BaseWidget

	item *model.VideoItem

	titleLabel  *widget.Label
	statusLabel *widget.Label
	detailLabel *widget.Label
	progressBar *widget.ProgressBar

	toggleBtn *widget.Button
	cancelBtn *widget.Button

	onToggle func(itemID string, paused bool)
	onCancel func(itemID string)
}

// NewVideoRow creates an empty row; Bind attaches it to an item
func NewVideoRow(onToggle func(itemID string, paused bool), onCancel func(itemID string)) *VideoRow {
	vr := &VideoRow{
		onToggle: onToggle,
		onCancel: onCancel,
	}
	vr.ExtendBaseWidget(vr)
	vr.createUI()
	return vr
}

// createUI creates the row widgets
func (vr *VideoRow) createUI() {
	vr.titleLabel = widget.NewLabel("")
	vr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	vr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	vr.statusLabel = widget.NewLabel("")
	vr.statusLabel.Alignment = fyne.TextAlignTrailing

	vr.detailLabel = widget.NewLabel("")
	vr.detailLabel.TextStyle = fyne.TextStyle{Monospace: true}

	vr.progressBar = widget.NewProgressBar()

	vr.toggleBtn = widget.NewButton(LabelPause, func() {
		if vr.item == nil || vr.onToggle == nil {
			return
		}
		vr.onToggle(vr.item.ID, vr.item.Status() == model.StatusPaused)
	})
	vr.toggleBtn.Importance = widget.MediumImportance

	vr.cancelBtn = widget.NewButton(LabelCancel, func() {
		if vr.item == nil || vr.onCancel == nil {
			return
		}
		vr.onCancel(vr.item.ID)
	})
	vr.cancelBtn.Importance = widget.LowImportance
}

// Bind attaches the row to an item and refreshes the display
func (vr *VideoRow) Bind(item *model.VideoItem) {
	vr.item = item
	vr.Refresh()
}

// Refresh redraws the row from the bound item's snapshot
func (vr *VideoRow) Refresh() {
	if vr.item != nil {
		state := vr.item.Snapshot()

		vr.titleLabel.SetText(vr.item.DisplayTitle())
		vr.statusLabel.SetText(statusText(state))
		vr.detailLabel.SetText(detailText(state))
		vr.progressBar.SetValue(state.Progress / 100)

		switch state.Status {
		case model.StatusDownloading:
			vr.toggleBtn.SetText(LabelPause)
			vr.toggleBtn.Enable()
			vr.cancelBtn.Enable()
		case model.StatusPaused:
			vr.toggleBtn.SetText(LabelResume)
			vr.toggleBtn.Enable()
			vr.cancelBtn.Enable()
		default:
			vr.toggleBtn.SetText(LabelPause)
			vr.toggleBtn.Disable()
			vr.cancelBtn.Disable()
		}
	}
	vr.BaseWidget.Refresh()
}

// CreateRenderer builds the row layout
func (vr *VideoRow) CreateRenderer() fyne.WidgetRenderer {
	top := container.NewBorder(nil, nil, nil, vr.statusLabel, vr.titleLabel)
	bottom := container.NewBorder(nil, nil, nil,
		container.NewHBox(vr.toggleBtn, vr.cancelBtn),
		container.NewBorder(nil, nil, nil, vr.detailLabel, vr.progressBar),
	)
	content := container.NewVBox(top, bottom)
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps rows tall enough for two lines plus controls
func (vr *VideoRow) MinSize() fyne.Size {
	size := vr.BaseWidget.MinSize()
	if size.Height < RowMinHeight {
		size.Height = RowMinHeight
	}
	return size
}

// statusText renders the status cell, including the error for failed items
func statusText(state model.VideoState) string {
	if state.Status == model.StatusFailed && state.LastError != "" {
		return fmt.Sprintf("%s: %s", state.Status, state.LastError)
	}
	return state.Status.String()
}

// detailText renders the speed/size/ETA cell for active items
func detailText(state model.VideoState) string {
	if !state.Status.IsActive() {
		return ""
	}
	parts := ""
	if state.Speed != "" {
		parts = state.Speed
	}
	if size := state.SizeString(); size != "" {
		if parts != "" {
			parts += MiddleDotSeparator
		}
		parts += size
	}
	if eta := state.ETAString(); eta != DashPlaceholder {
		if parts != "" {
			parts += MiddleDotSeparator
		}
		parts += "ETA " + eta
	}
	if parts == "" {
		return DashPlaceholder
	}
	return parts
}
