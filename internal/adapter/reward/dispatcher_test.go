package reward

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-rewards/internal/core/domain"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []domain.RewardCommand
	fn    func(ctx context.Context, cmd domain.RewardCommand) error
}

func (f *fakeClient) Reward(ctx context.Context, cmd domain.RewardCommand) error {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	fn := f.fn
	f.mu.Unlock()
	if fn != nil {
		return fn(ctx, cmd)
	}
	return nil
}

func (f *fakeClient) Calls() []domain.RewardCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RewardCommand(nil), f.calls...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func joinedEvent(id int64) domain.JoinedEvent {
	return domain.JoinedEvent{
		JoinRecordID: id,
		CampaignID:   1,
		UserID:       100 + id,
		RewardAmount: 500,
		JoinedAt:     time.Now(),
	}
}

func TestDispatcherDeliversEveryEventOnClose(t *testing.T) {
	client := &fakeClient{}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 3, QueueSize: 4})

	for i := int64(1); i <= 20; i++ {
		d.PublishJoined(context.Background(), joinedEvent(i))
	}
	require.NoError(t, d.Close(context.Background()))

	calls := client.Calls()
	require.Len(t, calls, 20)
	keys := make(map[string]bool, len(calls))
	for _, c := range calls {
		assert.Equal(t, int64(500), c.Amount)
		keys[c.IdempotencyKey] = true
	}
	assert.Len(t, keys, 20, "each join has its own idempotency key")
}

func TestDispatcherDoesNotRetryFailures(t *testing.T) {
	client := &fakeClient{fn: func(context.Context, domain.RewardCommand) error {
		return errors.New("point service down")
	}}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 1})

	d.PublishJoined(context.Background(), joinedEvent(1))
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, client.Calls(), 1)
}

func TestDispatcherBoundsEachCall(t *testing.T) {
	var gotErr error
	client := &fakeClient{fn: func(ctx context.Context, _ domain.RewardCommand) error {
		<-ctx.Done()
		gotErr = ctx.Err()
		return gotErr
	}}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 1, CallTimeout: 20 * time.Millisecond})

	d.PublishJoined(context.Background(), joinedEvent(1))
	require.NoError(t, d.Close(context.Background()))

	assert.ErrorIs(t, gotErr, context.DeadlineExceeded)
}

func TestDispatcherDropsAfterClose(t *testing.T) {
	client := &fakeClient{}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 1})
	require.NoError(t, d.Close(context.Background()))
	require.NoError(t, d.Close(context.Background()), "close is idempotent")

	d.PublishJoined(context.Background(), joinedEvent(1))
	assert.Empty(t, client.Calls())
}

func TestDispatcherPublishDoesNotWaitForClient(t *testing.T) {
	release := make(chan struct{})
	client := &fakeClient{fn: func(context.Context, domain.RewardCommand) error {
		<-release
		return nil
	}}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 1, QueueSize: 8, CallTimeout: time.Minute})

	done := make(chan struct{})
	go func() {
		for i := int64(1); i <= 5; i++ {
			d.PublishJoined(context.Background(), joinedEvent(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow client")
	}
	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, client.Calls(), 5)
}

func TestDispatcherPublishGivesUpWhenContextDone(t *testing.T) {
	release := make(chan struct{})
	client := &fakeClient{fn: func(context.Context, domain.RewardCommand) error {
		<-release
		return nil
	}}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 1, QueueSize: 1, CallTimeout: time.Minute})

	// one event in flight, one queued
	d.PublishJoined(context.Background(), joinedEvent(1))
	require.Eventually(t, func() bool { return len(client.Calls()) == 1 }, time.Second, time.Millisecond)
	d.PublishJoined(context.Background(), joinedEvent(2))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	d.PublishJoined(ctx, joinedEvent(3))

	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.Len(t, client.Calls(), 2)
}

func TestDispatcherRateLimit(t *testing.T) {
	client := &fakeClient{}
	d := NewDispatcher(client, discardLogger(), Options{Workers: 4, RatePerSecond: 50})

	start := time.Now()
	for i := int64(1); i <= 10; i++ {
		d.PublishJoined(context.Background(), joinedEvent(i))
	}
	require.NoError(t, d.Close(context.Background()))

	assert.Len(t, client.Calls(), 10)
	// burst of 50 covers all ten calls; the limiter must not stall them
	assert.Less(t, time.Since(start), time.Second)
}
