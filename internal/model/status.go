package model

// Status represents the state of the form and its single download
type Status string

const (
	// StatusIdle means nothing downloadable has been entered yet
	StatusIdle Status = "Idle"

	// StatusReady means the form holds a URL that can be downloaded
	StatusReady Status = "Ready"

	// StatusStarting means the subprocess is being launched
	StatusStarting Status = "Starting"

	// StatusDownloading means the tool reports transfer progress
	StatusDownloading Status = "Downloading"

	// StatusPostprocessing means the transfer is done and the tool runs ffmpeg steps
	StatusPostprocessing Status = "Postprocessing"

	// StatusCompleted means the subprocess exited with code 0
	StatusCompleted Status = "Completed"

	// StatusError means the subprocess failed or could not be started
	StatusError Status = "Error"

	// StatusCancelled means the subprocess was terminated on request
	StatusCancelled Status = "Cancelled"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsActive returns true while a subprocess is running
func (s Status) IsActive() bool {
	return s == StatusStarting || s == StatusDownloading || s == StatusPostprocessing
}

// IsFinished returns true if the last download ended (completed, cancelled, or error)
func (s Status) IsFinished() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusError
}
