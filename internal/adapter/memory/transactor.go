package memory

import (
	"context"
	"fmt"

	"ad-rewards/internal/core/domain"
)

type txKey struct{}

// tx holds row locks and staged writes of one transaction. It is owned by
// the goroutine running WithinTx.
type tx struct {
	locks     map[int64]chan struct{}
	campaigns map[int64]domain.Campaign
	records   []domain.JoinRecord
}

func txFrom(ctx context.Context) *tx {
	t, _ := ctx.Value(txKey{}).(*tx)
	return t
}

func (t *tx) holds(id int64) bool {
	_, ok := t.locks[id]
	return ok
}

func (t *tx) hasCampaign(id int64) bool {
	_, ok := t.campaigns[id]
	return ok
}

// WithinTx implements port.Transactor. A nested call joins the outer
// transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}

	t := &tx{
		locks:     make(map[int64]chan struct{}),
		campaigns: make(map[int64]domain.Campaign),
	}
	defer t.release()

	if err := fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		return err
	}
	return s.commit(t)
}

func (s *Store) commit(t *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, c := range t.campaigns {
		if s.nameTakenLocked(c.Name, id) {
			return fmt.Errorf("commit: %w", domain.NewValidationError("duplicate name"))
		}
	}
	for id, c := range t.campaigns {
		s.campaigns[id] = c
	}
	s.records = append(s.records, t.records...)
	return nil
}

// release frees every row lock. Staged writes of an uncommitted
// transaction are dropped with t.
func (t *tx) release() {
	for id, l := range t.locks {
		<-l
		delete(t.locks, id)
	}
}
