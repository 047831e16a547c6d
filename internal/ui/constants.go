package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Window sizing
const (
	WindowWidth  float32 = 1000
	WindowHeight float32 = 700
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Button labels
const (
	LabelAnalyze     = "Analyze"
	LabelDownloadAll = "Download All"
	LabelPauseAll    = "Pause All"
	LabelResumeAll   = "Resume All"
	LabelCancelAll   = "Cancel All"
	LabelPause       = "Pause"
	LabelResume      = "Resume"
	LabelCancel      = "Cancel"
	LabelBrowse      = "Browse"
	LabelOpenFolder  = "Open Folder"
)

// Layout sizing (item rows / lists)
const (
	RowMinHeight float32 = 64
)

// Selector options
var (
	QualityOptions = []string{"best", "1080p", "720p", "480p", "360p", "audio"}
	FormatOptions  = []string{"mp4", "mkv", "webm", "mp3"}
)
