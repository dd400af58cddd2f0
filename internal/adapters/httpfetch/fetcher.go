// Package httpfetch implements the streamed GET primitive used by the
// download engine and the registry clients.
package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
)

const userAgent = "github.com/funny233-github/mcpack"

// requestTimeout bounds a single request including body transfer. Artifact
// bodies stream, so this only covers connection and header exchange.
const requestTimeout = 30 * time.Second

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher implements ports.Fetcher on net/http.
type Fetcher struct {
	client *http.Client
}

// New creates a Fetcher with a default client.
func New() *Fetcher {
	return NewWithClient(&http.Client{
		Transport: &http.Transport{
			ResponseHeaderTimeout: requestTimeout,
		},
	})
}

// NewWithClient creates a Fetcher with a custom http client (used for testing).
func NewWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch opens a streaming GET to the URL. Timeouts, connection resets, and
// 5xx responses come back joined with domain.ErrTransientNetwork so callers
// know a retry is safe; other non-2xx statuses are terminal.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid request"), "url", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if isTransient(err) {
			return nil, zerr.With(errors.Join(domain.ErrTransientNetwork, err), "url", url)
		}
		return nil, zerr.With(zerr.Wrap(err, "request failed"), "url", url)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp.Body, nil
	}

	_ = resp.Body.Close()
	statusErr := fmt.Errorf("unexpected status %d", resp.StatusCode)
	if resp.StatusCode >= 500 {
		return nil, zerr.With(errors.Join(domain.ErrTransientNetwork, statusErr), "url", url)
	}
	return nil, zerr.With(statusErr, "url", url)
}

// isTransient reports whether a transport error is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
