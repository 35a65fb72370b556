package download

import (
	"context"

	"github.com/ytget/youtube-dl-gui/internal/model"
)

// Downloader runs one request to completion, reporting events as they happen.
// Download blocks; cancelling ctx terminates the subprocess.
type Downloader interface {
	Download(ctx context.Context, req *model.Request, onEvent func(Event)) (*Result, error)
}
