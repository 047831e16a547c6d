package ui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/charmbracelet/log"

	"github.com/ytget/yt-playlist-downloader/internal/analyze"
	"github.com/ytget/yt-playlist-downloader/internal/config"
	"github.com/ytget/yt-playlist-downloader/internal/download"
	"github.com/ytget/yt-playlist-downloader/internal/model"
	"github.com/ytget/yt-playlist-downloader/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window
	logger *log.Logger

	store      *config.Store
	analyzer   *analyze.Service
	downloader *download.Service

	playlist *model.Playlist // UI-thread only

	urlEntry    *widget.Entry
	analyzeBtn  *widget.Button
	analyzeSpin *widget.ProgressBarInfinite

	pathEntry  *widget.Entry
	qualitySel *widget.Select
	formatSel  *widget.Select
	fastCheck  *widget.Check

	playlistLabel *widget.Label
	itemList      *widget.List

	downloadAllBtn *widget.Button
	pauseAllBtn    *widget.Button
	resumeAllBtn   *widget.Button
	cancelAllBtn   *widget.Button

	overallLabel *widget.Label
	overallBar   *widget.ProgressBar
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, store *config.Store, analyzer *analyze.Service, downloader *download.Service, logger *log.Logger) *RootUI {
	ui := &RootUI{
		window:     window,
		logger:     logger,
		store:      store,
		analyzer:   analyzer,
		downloader: downloader,
	}

	downloader.SetItemCallback(ui.onItemUpdate)
	downloader.SetOverallCallback(ui.onOverallUpdate)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	cfg := ui.store.Config()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder("Enter a YouTube playlist or video URL")
	ui.urlEntry.OnSubmitted = func(string) { ui.onAnalyze() }

	ui.analyzeBtn = widget.NewButton(LabelAnalyze, ui.onAnalyze)
	ui.analyzeBtn.Importance = widget.HighImportance

	ui.analyzeSpin = widget.NewProgressBarInfinite()
	ui.analyzeSpin.Hide()

	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetText(cfg.DownloadPath)
	ui.pathEntry.OnChanged = func(path string) {
		if strings.TrimSpace(path) != "" {
			ui.store.SetDownloadPath(path)
		}
	}
	browseBtn := widget.NewButton(LabelBrowse, ui.onBrowse)
	openBtn := widget.NewButton(LabelOpenFolder, ui.onOpenFolder)

	ui.qualitySel = widget.NewSelect(QualityOptions, func(quality string) {
		ui.store.SetQuality(quality)
	})
	ui.qualitySel.SetSelected(cfg.Quality)

	ui.formatSel = widget.NewSelect(FormatOptions, func(format string) {
		ui.store.SetFormat(format)
	})
	ui.formatSel.SetSelected(cfg.Format)

	ui.fastCheck = widget.NewCheck("Fast analysis", func(fast bool) {
		ui.store.SetFastAnalysis(fast)
	})
	ui.fastCheck.SetChecked(cfg.FastAnalysis)

	ui.playlistLabel = widget.NewLabel("")
	ui.playlistLabel.TextStyle = fyne.TextStyle{Bold: true}

	ui.itemList = widget.NewList(
		func() int {
			if ui.playlist == nil {
				return 0
			}
			return ui.playlist.Len()
		},
		func() fyne.CanvasObject {
			return NewVideoRow(ui.onToggleItem, ui.onCancelItem)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if ui.playlist == nil || id >= ui.playlist.Len() {
				return
			}
			obj.(*VideoRow).Bind(ui.playlist.Items[id])
		},
	)

	ui.downloadAllBtn = widget.NewButton(LabelDownloadAll, ui.onDownloadAll)
	ui.downloadAllBtn.Importance = widget.HighImportance
	ui.pauseAllBtn = widget.NewButton(LabelPauseAll, ui.downloader.PauseAll)
	ui.resumeAllBtn = widget.NewButton(LabelResumeAll, ui.downloader.ResumeAll)
	ui.cancelAllBtn = widget.NewButton(LabelCancelAll, ui.downloader.CancelAll)

	ui.overallLabel = widget.NewLabel("")
	ui.overallBar = widget.NewProgressBar()

	urlRow := container.NewBorder(nil, nil, nil, ui.analyzeBtn, ui.urlEntry)
	pathRow := container.NewBorder(nil, nil, widget.NewLabel("Save to"),
		container.NewHBox(browseBtn, openBtn), ui.pathEntry)
	optionsRow := container.NewHBox(
		widget.NewLabel("Quality"), ui.qualitySel,
		widget.NewLabel("Format"), ui.formatSel,
		ui.fastCheck,
	)
	topPanel := container.NewVBox(urlRow, pathRow, optionsRow, ui.analyzeSpin, ui.playlistLabel)

	controlRow := container.NewHBox(ui.downloadAllBtn, ui.pauseAllBtn, ui.resumeAllBtn, ui.cancelAllBtn)
	bottomPanel := container.NewVBox(controlRow, ui.overallBar, ui.overallLabel)

	content := container.NewBorder(topPanel, bottomPanel, nil, nil, ui.itemList)
	ui.window.SetContent(content)
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// onAnalyze resolves the entered URL into a playlist on a worker goroutine
func (ui *RootUI) onAnalyze() {
	url := ui.urlEntry.Text
	fast := ui.store.Config().FastAnalysis

	ui.analyzeBtn.Disable()
	ui.analyzeSpin.Show()
	ui.analyzeSpin.Start()

	go func() {
		playlist, err := ui.analyzer.Analyze(context.Background(), url, fast)

		fyne.Do(func() {
			ui.analyzeSpin.Stop()
			ui.analyzeSpin.Hide()
			ui.analyzeBtn.Enable()

			if err != nil {
				ui.logger.Error("analysis failed", "url", url, "err", err)
				dialog.ShowError(err, ui.window)
				return
			}
			if err := ui.downloader.SetPlaylist(playlist); err != nil {
				dialog.ShowError(err, ui.window)
				return
			}

			ui.playlist = playlist
			ui.playlistLabel.SetText(fmt.Sprintf("%s (%d videos)", playlist.Title, playlist.Len()))
			ui.overallBar.SetValue(0)
			ui.overallLabel.SetText("")
			ui.itemList.Refresh()
		})
	}()
}

// onDownloadAll starts the sequential download run
func (ui *RootUI) onDownloadAll() {
	cfg := ui.store.Config()

	if err := platform.EnsureDir(cfg.DownloadPath); err != nil {
		dialog.ShowError(fmt.Errorf("cannot create download directory: %w", err), ui.window)
		return
	}

	opts := download.Options{
		Directory:   cfg.DownloadPath,
		Format:      download.FormatSelector(cfg.Quality),
		MergeFormat: download.MergeFormat(cfg.Quality, cfg.Format),
	}
	if err := ui.downloader.DownloadAll(opts); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onToggleItem pauses or resumes one item from its row button
func (ui *RootUI) onToggleItem(itemID string, paused bool) {
	var err error
	if paused {
		err = ui.downloader.ResumeItem(itemID)
	} else {
		err = ui.downloader.PauseItem(itemID)
	}
	if err != nil {
		ui.logger.Warn("item control rejected", "id", itemID, "err", err)
	}
}

// onCancelItem cancels one item from its row button
func (ui *RootUI) onCancelItem(itemID string) {
	if err := ui.downloader.CancelItem(itemID); err != nil {
		ui.logger.Warn("item cancel rejected", "id", itemID, "err", err)
	}
}

// onBrowse opens the folder picker for the download directory
func (ui *RootUI) onBrowse() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		path := uri.Path()
		ui.store.SetDownloadPath(path)
		ui.pathEntry.SetText(path)
	}, ui.window)
}

// onOpenFolder reveals the download directory in the system file manager
func (ui *RootUI) onOpenFolder() {
	dir := ui.store.Config().DownloadPath
	if err := platform.OpenFolder(dir); err != nil {
		ui.logger.Warn("failed to open folder", "dir", dir, "err", err)
		dialog.ShowError(err, ui.window)
	}
}

// onItemUpdate runs on the download goroutine; marshal to the UI thread
func (ui *RootUI) onItemUpdate(_ *model.VideoItem) {
	fyne.Do(func() {
		ui.itemList.Refresh()
	})
}

// onOverallUpdate runs on the download goroutine; marshal to the UI thread
func (ui *RootUI) onOverallUpdate(completed, total int, percent float64) {
	fyne.Do(func() {
		ui.overallBar.SetValue(percent / 100)
		ui.overallLabel.SetText(fmt.Sprintf("%d of %d completed", completed, total))
	})
}
