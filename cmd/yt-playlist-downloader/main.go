package main

import (
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-playlist-downloader/internal/analyze"
	"github.com/ytget/yt-playlist-downloader/internal/config"
	"github.com/ytget/yt-playlist-downloader/internal/download"
	"github.com/ytget/yt-playlist-downloader/internal/logging"
	"github.com/ytget/yt-playlist-downloader/internal/ui"
)

func main() {
	logger := logging.New(os.Stderr, "ytpd")

	myApp := app.NewWithID("com.ytget.yt-playlist-downloader")
	myWindow := myApp.NewWindow("YT Playlist Downloader")

	store := config.NewStore(config.DefaultFileName, logger)
	analyzer := analyze.NewService(analyze.NewYTDLPFetcher(), logger)
	downloader := download.NewService(download.NewYTDLPDownloader(), logger)

	ui.NewRootUI(myWindow, store, analyzer, downloader, logger)

	myWindow.ShowAndRun()
}
