// Package reward hands committed joins to the external point system.
package reward

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
	"ad-rewards/internal/metrics"
)

// Options tune a Dispatcher. Zero values take the defaults below.
type Options struct {
	Workers     int
	QueueSize   int
	CallTimeout time.Duration
	// RatePerSecond paces RewardClient calls across all workers. Zero
	// means unlimited.
	RatePerSecond float64
}

const (
	defaultWorkers     = 4
	defaultQueueSize   = 1024
	defaultCallTimeout = 3 * time.Second
)

// Dispatcher implements port.JoinedEventPublisher. Events are queued and
// turned into RewardClient calls by a fixed pool of workers. A failed call
// is logged and counted but never retried; the join it belongs to stays
// committed.
type Dispatcher struct {
	client      port.RewardClient
	logger      *slog.Logger
	limiter     *rate.Limiter
	callTimeout time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan domain.JoinedEvent
	group  errgroup.Group
}

var _ port.JoinedEventPublisher = (*Dispatcher)(nil)

// NewDispatcher starts the workers. Call Close to drain them.
func NewDispatcher(client port.RewardClient, logger *slog.Logger, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = defaultCallTimeout
	}

	d := &Dispatcher{
		client:      client,
		logger:      logger,
		callTimeout: opts.CallTimeout,
		queue:       make(chan domain.JoinedEvent, opts.QueueSize),
	}
	if opts.RatePerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), max(1, int(opts.RatePerSecond)))
	}

	for range opts.Workers {
		d.group.Go(d.work)
	}
	return d
}

// PublishJoined queues event. It waits for queue space only while ctx is
// alive; events arriving after Close are dropped.
func (d *Dispatcher) PublishJoined(ctx context.Context, event domain.JoinedEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(event, "dispatcher closed")
		return
	}
	select {
	case d.queue <- event:
		metrics.RewardQueueDepth.Inc()
	case <-ctx.Done():
		d.drop(event, "context done")
	}
}

// Close stops intake and waits until every queued event has been handed
// to the client or ctx ends.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- d.group.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) work() error {
	for event := range d.queue {
		metrics.RewardQueueDepth.Dec()
		d.dispatch(event)
	}
	return nil
}

func (d *Dispatcher) dispatch(event domain.JoinedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.callTimeout)
	defer cancel()

	cmd := event.RewardCommand()
	logger := d.logger.With(
		slog.Int64("join_record_id", event.JoinRecordID),
		slog.Int64("user_id", cmd.UserID),
		slog.Int64("amount", cmd.Amount),
		slog.String("idempotency_key", cmd.IdempotencyKey),
	)

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			metrics.RecordRewardDispatch("failure")
			logger.Error("reward rate limit wait failed", slog.Any("error", err))
			return
		}
	}

	if err := d.client.Reward(ctx, cmd); err != nil {
		metrics.RecordRewardDispatch("failure")
		logger.Error("reward disbursement failed", slog.Any("error", err))
		return
	}
	metrics.RecordRewardDispatch("success")
	logger.Debug("reward disbursed")
}

func (d *Dispatcher) drop(event domain.JoinedEvent, reason string) {
	metrics.RecordRewardDispatch("dropped")
	d.logger.Warn("reward event dropped",
		slog.Int64("join_record_id", event.JoinRecordID),
		slog.String("reason", reason),
	)
}
