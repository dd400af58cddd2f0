// Package download fetches resolved artifacts into the content store with a
// bounded worker pool, per-source failover, and retry on transient failures.
package download

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/funny233-github/mcpack/internal/core/domain"
	"github.com/funny233-github/mcpack/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency = 8
	maxAttempts        = 3
	backoffBase        = 500 * time.Millisecond
)

// Engine downloads artifact batches into the content store.
type Engine struct {
	fetcher     ports.Fetcher
	store       ports.ContentStore
	telemetry   ports.Telemetry
	logger      ports.Logger
	concurrency int
}

// New creates a download engine with the default concurrency.
func New(fetcher ports.Fetcher, store ports.ContentStore, telemetry ports.Telemetry, logger ports.Logger) *Engine {
	return &Engine{
		fetcher:     fetcher,
		store:       store,
		telemetry:   telemetry,
		logger:      logger,
		concurrency: defaultConcurrency,
	}
}

// WithConcurrency returns a copy of the engine with another pool size.
func (e *Engine) WithConcurrency(n int) *Engine {
	out := *e
	if n > 0 {
		out.concurrency = n
	}
	return &out
}

// Failure is one artifact the batch could not fetch.
type Failure struct {
	Name string
	Err  error
}

// Report summarizes one batch. A batch runs to completion even when some
// artifacts fail, so callers always learn the fate of every artifact.
type Report struct {
	Fetched  int
	Cached   int
	Failures []Failure
}

// Err folds the batch's failures into a single error, or nil when every
// artifact landed in the store.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, zerr.With(f.Err, "artifact", f.Name))
	}
	return errors.Join(errs...)
}

// Fetch downloads every artifact of the batch into the content store.
// Artifacts sharing a content hash are fetched once. Cancelling the context
// stops the batch; the report then covers the artifacts attempted so far.
func (e *Engine) Fetch(ctx context.Context, artifacts []domain.Artifact) Report {
	// One fetch per distinct content hash. Duplicate entries differ only in
	// destination path, which the materializer handles.
	byKey := map[string]domain.Artifact{}
	keys := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		key := a.CacheKey()
		if _, ok := byKey[key]; ok {
			continue
		}
		byKey[key] = a
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var (
		mu     sync.Mutex
		report Report
	)
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(e.concurrency)
	for _, key := range keys {
		a := byKey[key]
		group.Go(func() error {
			cached, err := e.fetchOne(gctx, a)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				report.Failures = append(report.Failures, Failure{Name: a.Name, Err: err})
			case cached:
				report.Cached++
			default:
				report.Fetched++
			}
			// Failures are reported, not propagated: the rest of the batch
			// still runs.
			return nil
		})
	}
	group.Wait() //nolint:errcheck // workers never return errors

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Name < report.Failures[j].Name
	})
	return report
}

// fetchOne lands one artifact in the store, trying each source in order and
// retrying transient failures with exponential backoff. Reports whether it
// was already present.
func (e *Engine) fetchOne(ctx context.Context, a domain.Artifact) (cached bool, err error) {
	ctx, vertex := e.telemetry.Record(ctx, fmt.Sprintf("fetch %s", a.Name))
	defer func() { vertex.Complete(err) }()

	if e.store.Has(a.Hash) {
		vertex.Cached()
		return true, nil
	}

	var last error
	for _, url := range a.URLs {
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := e.tryFetch(ctx, url, a.Hash)
			if err == nil {
				return false, nil
			}
			last = zerr.With(err, "url", url)

			// Integrity mismatches mean this source serves the wrong bytes;
			// retrying it cannot help. Move on to the next source.
			if !errors.Is(err, domain.ErrTransientNetwork) {
				break
			}
			if attempt < maxAttempts {
				e.logger.Warn(fmt.Sprintf("retrying %s (attempt %d): %v", a.Name, attempt, err))
				if err := sleep(ctx, backoffBase<<(attempt-1)); err != nil {
					return false, err
				}
			}
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
	}
	return false, errors.Join(domain.ErrDownloadFailed, last)
}

func (e *Engine) tryFetch(ctx context.Context, url string, expect domain.HashRef) error {
	body, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck // read-only close
	return e.store.Put(ctx, body, expect)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
