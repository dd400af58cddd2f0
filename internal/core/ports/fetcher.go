package ports

import (
	"context"
	"io"
)

// Fetcher is the streamed HTTP GET primitive used by the download engine and
// the registry clients. Implementations classify transport failures by
// joining domain.ErrTransientNetwork into errors that are safe to retry.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch opens a streaming GET to the URL. The caller owns the returned
	// body and must close it.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}
