package model

// Status represents the download state of a single video item
type Status string

const (
	// StatusPending means the item has been analyzed but not yet downloaded
	StatusPending Status = "pending"

	// StatusDownloading means the transfer is in progress
	StatusDownloading Status = "downloading"

	// StatusPaused means the user paused the item; the worker is blocked on
	// the item's control gate
	StatusPaused Status = "paused"

	// StatusCompleted means the transfer finished successfully
	StatusCompleted Status = "completed"

	// StatusFailed means the transfer failed with an error
	StatusFailed Status = "failed"

	// StatusCancelled means the user cancelled the item
	StatusCancelled Status = "cancelled"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive returns true if the item currently owns a download worker
func (s Status) IsActive() bool {
	return s == StatusDownloading || s == StatusPaused
}

// IsTerminal returns true if the download loop will not touch the item again
// during the current run
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}
