package download

// Quality presets offered in the UI
const (
	QualityBest  = "best"
	Quality1080p = "1080p"
	Quality720p  = "720p"
	Quality480p  = "480p"
	Quality360p  = "360p"
	QualityAudio = "audio"
)

// FormatAudio is the audio-only container
const FormatAudio = "mp3"

// FormatSelector maps a quality preset to a yt-dlp format selector
func FormatSelector(quality string) string {
	switch quality {
	case Quality1080p:
		return "best[height<=1080]"
	case Quality720p:
		return "best[height<=720]"
	case Quality480p:
		return "best[height<=480]"
	case Quality360p:
		return "best[height<=360]"
	case QualityAudio:
		return "bestaudio/best"
	default:
		return "best"
	}
}

// MergeFormat returns the output container to merge into, or "" when no
// merging applies (audio-only downloads).
func MergeFormat(quality, format string) string {
	if quality == QualityAudio || format == FormatAudio {
		return ""
	}
	return format
}
