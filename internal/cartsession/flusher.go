package cartsession

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"go.uber.org/multierr"

	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/logger"
	"github.com/giftnest/giftnest-backend/pkg/metrics"
)

// FlushTrigger labels why a flush cycle ran.
type FlushTrigger string

const (
	TriggerInterval FlushTrigger = "interval"
	TriggerTeardown FlushTrigger = "teardown"
)

// FlushResult reports the outcome of one flush cycle. Failed changes are not
// re-queued; the next local mutation on the same product records a fresh
// pending entry.
type FlushResult struct {
	Trigger  FlushTrigger
	Pending  int
	Applied  int
	Failed   []uuid.UUID
	Err      error
	Duration time.Duration
}

// Flusher drains the change tracker to the remote store on a fixed interval
// and once more on teardown. Each remote call is retried with exponential
// backoff before its failure is recorded.
type Flusher struct {
	session Session
	tracker *Tracker
	remote  Remote
	logg    *logger.Logger
	metrics *metrics.FlushMetrics

	interval        time.Duration
	teardownTimeout time.Duration
	retryAttempts   uint64
	retryBaseDelay  time.Duration

	results chan FlushResult
	stop    chan struct{}
	done    chan struct{}

	started      atomic.Bool
	startOnce    sync.Once
	stopOnce     sync.Once
	teardownOnce sync.Once
}

// FlusherParams carries the dependencies for NewFlusher.
type FlusherParams struct {
	Session Session
	Tracker *Tracker
	Remote  Remote
	Logger  *logger.Logger
	Metrics *metrics.FlushMetrics
	Config  config.CartSyncConfig
}

// NewFlusher validates dependencies and returns a stopped flusher.
func NewFlusher(params FlusherParams) (*Flusher, error) {
	if params.Tracker == nil {
		return nil, errors.New("flusher requires a tracker")
	}
	if params.Remote == nil {
		return nil, errors.New("flusher requires a remote")
	}
	if params.Logger == nil {
		return nil, errors.New("flusher requires a logger")
	}
	if params.Config.FlushInterval <= 0 {
		return nil, errors.New("flusher requires a positive flush interval")
	}
	if params.Config.RetryBaseDelay <= 0 {
		return nil, errors.New("flusher requires a positive retry base delay")
	}
	return &Flusher{
		session:         params.Session,
		tracker:         params.Tracker,
		remote:          params.Remote,
		logg:            params.Logger,
		metrics:         params.Metrics,
		interval:        params.Config.FlushInterval,
		teardownTimeout: params.Config.TeardownTimeout,
		retryAttempts:   params.Config.RetryAttempts,
		retryBaseDelay:  params.Config.RetryBaseDelay,
		results:         make(chan FlushResult, 16),
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}, nil
}

// Results exposes flush outcomes. The channel is buffered; results are
// dropped rather than blocking the flush loop when nobody is reading.
func (f *Flusher) Results() <-chan FlushResult {
	return f.results
}

// Start launches the periodic flush loop. It returns immediately; the loop
// tears down, with one final flush, when Stop is called or ctx is cancelled.
func (f *Flusher) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		f.started.Store(true)
		go f.run(ctx)
	})
}

func (f *Flusher) run(ctx context.Context) {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.Flush(ctx, TriggerInterval)
		case <-f.stop:
			f.teardown()
			return
		case <-ctx.Done():
			f.teardown()
			return
		}
	}
}

// teardown runs the final best-effort flush on a fresh context bounded by the
// configured timeout, then closes the results channel. Runs at most once, no
// matter how the loop exits.
func (f *Flusher) teardown() {
	f.teardownOnce.Do(func() {
		ctx := context.Background()
		if f.teardownTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.teardownTimeout)
			defer cancel()
		}
		f.Flush(ctx, TriggerTeardown)
		close(f.results)
	})
}

// Stop halts the loop and waits for its teardown flush. Safe to call more
// than once; a no-op on a flusher that was never started.
func (f *Flusher) Stop() {
	if !f.started.Load() {
		return
	}
	f.stopOnce.Do(func() {
		close(f.stop)
		<-f.done
	})
}

// Flush drains all pending changes and applies each to the remote: a delete
// when the line is empty and unfavourited, an upsert otherwise. The pending
// set is cleared regardless of individual outcomes.
func (f *Flusher) Flush(ctx context.Context, trigger FlushTrigger) FlushResult {
	pending := f.tracker.Drain()
	if len(pending) == 0 {
		return FlushResult{Trigger: trigger}
	}

	start := time.Now()
	result := FlushResult{Trigger: trigger, Pending: len(pending)}

	for _, item := range pending {
		if err := f.apply(ctx, item); err != nil {
			result.Failed = append(result.Failed, item.ProductID)
			result.Err = multierr.Append(result.Err, fmt.Errorf("product %s: %w", item.ProductID, err))
			itemCtx := f.logg.WithProductID(ctx, item.ProductID.String())
			f.logg.Error(itemCtx, "flushing cart change", err)
			continue
		}
		result.Applied++
	}
	result.Duration = time.Since(start)

	f.metrics.ObserveCycle(string(trigger), result.Pending, result.Duration, result.Err != nil)
	f.emit(result)
	return result
}

func (f *Flusher) apply(ctx context.Context, item LineItem) error {
	backoff := retry.WithMaxRetries(f.retryAttempts, retry.NewExponential(f.retryBaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		if item.deletable() {
			err = f.remote.Delete(ctx, f.session.UserID, item.ProductID)
		} else {
			err = f.remote.Upsert(ctx, f.session.UserID, item)
		}
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (f *Flusher) emit(result FlushResult) {
	select {
	case f.results <- result:
	default:
	}
}
