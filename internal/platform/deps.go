package platform

import "os/exec"

// DependencyReport describes which external tools were found on PATH
type DependencyReport struct {
	YTDLPFound  bool
	YTDLPPath   string
	FFmpegFound bool
	FFmpegPath  string
}

// Dependencies probes PATH for the external tools the downloader uses.
// Neither tool is required at startup, yt-dlp can be installed on demand,
// but the report is logged so missing ffmpeg is easy to diagnose.
func Dependencies() DependencyReport {
	report := DependencyReport{}
	if path, err := exec.LookPath("yt-dlp"); err == nil {
		report.YTDLPFound = true
		report.YTDLPPath = path
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		report.FFmpegFound = true
		report.FFmpegPath = path
	}
	return report
}
