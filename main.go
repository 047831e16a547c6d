package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-playlist-downloader/internal/analyze"
	"github.com/ytget/yt-playlist-downloader/internal/config"
	"github.com/ytget/yt-playlist-downloader/internal/download"
	"github.com/ytget/yt-playlist-downloader/internal/logging"
	"github.com/ytget/yt-playlist-downloader/internal/platform"
	"github.com/ytget/yt-playlist-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-playlist-downloader"
	AppName = "YT Playlist Downloader"
)

func main() {
	logger := logging.New(os.Stderr, "ytpd")
	logger.Info("starting", "version", version)

	myApp := app.NewWithID(AppID)

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)

	// Initialize services
	store := config.NewStore(config.DefaultFileName, logger)
	if err := platform.EnsureDir(store.Config().DownloadPath); err != nil {
		logger.Warn("failed to ensure download dir", "err", err)
	}

	// Make sure yt-dlp is available without blocking startup
	go func() {
		report := platform.Dependencies()
		logger.Info("dependency check",
			"yt-dlp", report.YTDLPFound, "ffmpeg", report.FFmpegFound)
		if err := download.Install(context.Background()); err != nil {
			logger.Error("yt-dlp install failed", "err", err)
		}
	}()

	analyzer := analyze.NewService(analyze.NewYTDLPFetcher(), logger)
	downloader := download.NewService(download.NewYTDLPDownloader(), logger)

	// Create and setup UI
	ui.NewRootUI(myWindow, store, analyzer, downloader, logger)

	// Closing the window cancels active downloads and persists settings
	myWindow.SetCloseIntercept(func() {
		downloader.CancelAll()
		if err := store.Save(); err != nil {
			logger.Warn("failed to save config on exit", "err", err)
		}
		myApp.Quit()
	})

	myWindow.ShowAndRun()
}
