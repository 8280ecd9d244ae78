// Package memory implements the repository ports and the transaction port
// in process memory. Campaign rows are locked with one-slot semaphores held
// for the lifetime of the transaction, and writes are staged per
// transaction and applied on commit.
package memory

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"ad-rewards/internal/core/domain"
)

// Store is a concurrency-safe in-memory database.
type Store struct {
	mu        sync.RWMutex
	campaigns map[int64]domain.Campaign
	records   []domain.JoinRecord
	users     map[int64]domain.User
	rowLocks  map[int64]chan struct{}

	lastCampaignID int64
	lastRecordID   int64

	lockTimeout time.Duration
	now         func() time.Time
}

// NewStore returns an empty store. lockTimeout bounds how long
// FindByIDWithLock waits for a row held by another transaction; zero waits
// until the context is done.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		campaigns:   make(map[int64]domain.Campaign),
		users:       make(map[int64]domain.User),
		rowLocks:    make(map[int64]chan struct{}),
		lockTimeout: lockTimeout,
		now:         time.Now,
	}
}

// PutUser registers u so joins can resolve it.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Campaigns returns the repository view for campaigns.
func (s *Store) Campaigns() *CampaignRepository { return &CampaignRepository{s: s} }

// Ledger returns the repository view for join records.
func (s *Store) Ledger() *LedgerRepository { return &LedgerRepository{s: s} }

// Users returns the repository view for users.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// rowLock returns the semaphore guarding campaign id.
func (s *Store) rowLock(id int64) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.rowLocks[id] = l
	}
	return l
}

// acquire blocks until the row lock is taken, ctx is done or the lock
// timeout elapses.
func (s *Store) acquire(ctx context.Context, l chan struct{}) error {
	var timeout <-chan time.Time
	if s.lockTimeout > 0 {
		t := time.NewTimer(s.lockTimeout)
		defer t.Stop()
		timeout = t.C
	}
	select {
	case l <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", domain.ErrLockTimeout, ctx.Err())
	case <-timeout:
		return domain.ErrLockTimeout
	}
}

func (s *Store) nameTakenLocked(name string, except int64) bool {
	for id, c := range s.campaigns {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

// CampaignRepository implements port.CampaignRepository.
type CampaignRepository struct {
	s *Store
}

func (r *CampaignRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.nameTakenLocked(name, 0) {
		return true, nil
	}
	if t := txFrom(ctx); t != nil {
		for _, c := range t.campaigns {
			if c.Name == name {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *CampaignRepository) Save(ctx context.Context, c *domain.Campaign) error {
	s := r.s
	t := txFrom(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if c.ID == 0 {
		if s.nameTakenLocked(c.Name, 0) {
			return domain.NewValidationError("duplicate name")
		}
		s.lastCampaignID++
		c.ID = s.lastCampaignID
		c.CreatedAt = now
	} else if _, ok := s.campaigns[c.ID]; !ok {
		if t == nil || !t.hasCampaign(c.ID) {
			return fmt.Errorf("save campaign %d: %w", c.ID, domain.NewNotFoundError("campaign"))
		}
	}
	c.UpdatedAt = now

	if t != nil {
		t.campaigns[c.ID] = *c
		return nil
	}
	s.campaigns[c.ID] = *c
	return nil
}

func (r *CampaignRepository) FindJoinableCandidates(_ context.Context, asOf time.Time) ([]domain.Campaign, error) {
	r.s.mu.RLock()
	out := make([]domain.Campaign, 0, len(r.s.campaigns))
	for _, c := range r.s.campaigns {
		if c.RemainingSlots > 0 && c.Displayable(asOf) {
			out = append(out, c)
		}
	}
	r.s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.Campaign) int {
		if a.RewardAmount != b.RewardAmount {
			return cmp.Compare(b.RewardAmount, a.RewardAmount)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *CampaignRepository) FindByIDWithLock(ctx context.Context, id int64) (*domain.Campaign, error) {
	t := txFrom(ctx)
	if t == nil {
		return nil, errors.New("find campaign with lock: no transaction in context")
	}

	r.s.mu.RLock()
	_, exists := r.s.campaigns[id]
	r.s.mu.RUnlock()
	if !exists && !t.hasCampaign(id) {
		return nil, nil
	}

	if !t.holds(id) {
		l := r.s.rowLock(id)
		if err := r.s.acquire(ctx, l); err != nil {
			return nil, err
		}
		t.locks[id] = l
	}

	if c, ok := t.campaigns[id]; ok {
		return &c, nil
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// LedgerRepository implements port.LedgerRepository.
type LedgerRepository struct {
	s *Store
}

func (r *LedgerRepository) Save(ctx context.Context, rec *domain.JoinRecord) error {
	r.s.mu.Lock()
	r.s.lastRecordID++
	rec.ID = r.s.lastRecordID
	if t := txFrom(ctx); t != nil {
		r.s.mu.Unlock()
		t.records = append(t.records, *rec)
		return nil
	}
	r.s.records = append(r.s.records, *rec)
	r.s.mu.Unlock()
	return nil
}

func (r *LedgerRepository) FindAllByUser(ctx context.Context, userID int64) ([]domain.JoinRecord, error) {
	return r.byUser(ctx, userID), nil
}

func (r *LedgerRepository) FindPageByUser(ctx context.Context, userID int64, pageIndex, pageSize int) ([]domain.JoinRecord, error) {
	if pageIndex < 0 || pageSize <= 0 {
		return nil, fmt.Errorf("invalid page %d/%d", pageIndex, pageSize)
	}
	if pageIndex > (math.MaxInt-pageSize)/pageSize {
		return []domain.JoinRecord{}, nil
	}
	all := r.byUser(ctx, userID)
	slices.SortStableFunc(all, func(a, b domain.JoinRecord) int {
		if c := a.JoinedAt.Compare(b.JoinedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	from := pageIndex * pageSize
	if from >= len(all) {
		return []domain.JoinRecord{}, nil
	}
	return all[from:min(from+pageSize, len(all))], nil
}

func (r *LedgerRepository) byUser(ctx context.Context, userID int64) []domain.JoinRecord {
	var out []domain.JoinRecord
	r.s.mu.RLock()
	for _, rec := range r.s.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	r.s.mu.RUnlock()

	if t := txFrom(ctx); t != nil {
		for _, rec := range t.records {
			if rec.UserID == userID {
				out = append(out, rec)
			}
		}
	}
	return out
}

// UserRepository implements port.UserRepository.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
