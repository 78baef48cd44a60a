package failover

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/regionfailover/internal/logging"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Dispatcher notifies a single address.
type Dispatcher interface {
	Notify(ctx context.Context, address string) error
}

// DirectoryWalker enumerates the directory page by page and dispatches a
// notification for every identity with a contact address.
type DirectoryWalker struct {
	directory   Directory
	poolRef     string
	dispatcher  Dispatcher
	logger      logging.Logger
	callTimeout time.Duration
	concurrency int
}

type WalkerOption func(*DirectoryWalker)

// WithConcurrency notifies up to n identities of a page at once. Values
// below 2 keep the walk sequential, which is the default.
func WithConcurrency(n int) WalkerOption {
	return func(w *DirectoryWalker) { w.concurrency = n }
}

// WithCallTimeout bounds each listing call.
func WithCallTimeout(d time.Duration) WalkerOption {
	return func(w *DirectoryWalker) { w.callTimeout = d }
}

func NewDirectoryWalker(directory Directory, poolRef string, dispatcher Dispatcher,
	logger logging.Logger, opts ...WalkerOption) *DirectoryWalker {
	w := &DirectoryWalker{
		directory:   directory,
		poolRef:     poolRef,
		dispatcher:  dispatcher,
		logger:      logger,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WalkAndNotify runs the walk to completion and returns the final counts.
// Per-identity failures are counted and never stop the walk. A failed page
// fetch or an expired context stops it early; the counts gathered up to that
// point are kept and the outcome is marked Terminated.
func (w *DirectoryWalker) WalkAndNotify(ctx context.Context) RunOutcome {
	var out RunOutcome
	w.walk(ctx, &out)
	return out
}

// walk counts into out as it goes, so a caller recovering from a panic
// still reads what was done before it.
func (w *DirectoryWalker) walk(ctx context.Context, out *RunOutcome) {
	ctx, span := tracer.Start(ctx, "Failover.DirectoryWalker.WalkAndNotify")
	defer span.End()

	cursor := ""

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			w.terminate(ctx, out, &DirectoryFetchError{Page: page, Cause: err})
			break
		}

		p, err := w.fetch(ctx, cursor)
		if err != nil {
			w.terminate(ctx, out, &DirectoryFetchError{Page: page, Cause: err})
			break
		}
		out.Pages++

		w.logger.Debug(ctx, "directory page fetched", "page", page, "identities", len(p.Identities))

		if err := w.processPage(ctx, p.Identities, out); err != nil {
			w.terminate(ctx, out, fmt.Errorf("walk interrupted on page %d: %w", page, err))
			break
		}

		if p.NextCursor == "" {
			break
		}
		cursor = p.NextCursor
	}

	span.SetAttributes(
		attribute.Int("processed", out.Processed),
		attribute.Int("skipped", out.Skipped),
		attribute.Int("failed", out.Failed),
		attribute.Int("pages", out.Pages),
		attribute.Bool("terminated", out.Terminated),
	)
	if out.FetchErr != nil {
		recordSpanError(span, out.FetchErr)
	}

	w.logger.Info(ctx, "directory walk finished",
		"processed", out.Processed,
		"skipped", out.Skipped,
		"failed", out.Failed,
		"pages", out.Pages,
		"terminated", out.Terminated,
	)
}

func (w *DirectoryWalker) fetch(ctx context.Context, cursor string) (*Page, error) {
	ctx, cancel := withCallTimeout(ctx, w.callTimeout)
	defer cancel()

	p, err := w.directory.ListIdentities(ctx, w.poolRef, cursor)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.New("directory returned no page")
	}
	return p, nil
}

func (w *DirectoryWalker) terminate(ctx context.Context, out *RunOutcome, err error) {
	out.Terminated = true
	out.FetchErr = err
	w.logger.Error(ctx, "directory walk terminated early", "error", err,
		"processed", out.Processed, "skipped", out.Skipped, "failed", out.Failed)
}

// itemResult is the accounting class of one identity.
type itemResult int

const (
	itemProcessed itemResult = iota
	itemSkipped
	itemFailed
)

func (w *DirectoryWalker) processPage(ctx context.Context, identities []IdentityRecord, out *RunOutcome) error {
	if w.concurrency < 2 {
		for _, id := range identities {
			if err := ctx.Err(); err != nil {
				return err
			}
			out.add(w.processIdentity(ctx, id))
		}
		return nil
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(w.concurrency)

	for _, id := range identities {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res := w.processIdentity(ctx, id)
			mu.Lock()
			out.add(res)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return ctx.Err()
}

func (w *DirectoryWalker) processIdentity(ctx context.Context, id IdentityRecord) itemResult {
	address, ok := id.ContactAddress()
	if !ok {
		w.logger.Info(ctx, "skipping identity", "username", id.Username, "reason", ErrMissingContact.Error())
		return itemSkipped
	}

	if err := w.notify(ctx, address); err != nil {
		w.logger.Warn(ctx, "notification failed", "username", id.Username, "error", err)
		return itemFailed
	}

	w.logger.Info(ctx, "identity notified", "username", id.Username)
	return itemProcessed
}

// notify turns a panicking dispatch into an error so it is counted like any
// other failure, whichever goroutine it runs on.
func (w *DirectoryWalker) notify(ctx context.Context, address string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch panicked: %v", r)
		}
	}()
	return w.dispatcher.Notify(ctx, address)
}

func (o *RunOutcome) add(r itemResult) {
	switch r {
	case itemProcessed:
		o.Processed++
	case itemSkipped:
		o.Skipped++
	case itemFailed:
		o.Failed++
	}
}
