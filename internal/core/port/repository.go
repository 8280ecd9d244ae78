package port

import (
	"context"
	"time"

	"ad-rewards/internal/core/domain"
)

// CampaignRepository persists campaigns. It is an outbound port in
// hexagonal architecture. Implementations must honour the transaction
// carried in ctx by a Transactor.
type CampaignRepository interface {
	// ExistsByName reports whether a campaign already uses name.
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Save inserts c when c.ID is zero and assigns its ID; otherwise it
	// writes the remaining slot count back.
	Save(ctx context.Context, c *domain.Campaign) error
	// FindJoinableCandidates returns campaigns with slots left whose
	// display window contains asOf, ordered by reward amount descending.
	FindJoinableCandidates(ctx context.Context, asOf time.Time) ([]domain.Campaign, error)
	// FindByIDWithLock loads a campaign and holds an exclusive lock on it
	// until the surrounding transaction ends. It returns nil when the
	// campaign does not exist and domain.ErrLockTimeout when the lock wait
	// expires.
	FindByIDWithLock(ctx context.Context, id int64) (*domain.Campaign, error)
}

// LedgerRepository persists the append-only join ledger.
type LedgerRepository interface {
	// Save appends r and assigns its ID.
	Save(ctx context.Context, r *domain.JoinRecord) error
	// FindAllByUser returns every join of the user across all campaigns,
	// in no particular order.
	FindAllByUser(ctx context.Context, userID int64) ([]domain.JoinRecord, error)
	// FindPageByUser returns one page ordered by join time ascending.
	// pageIndex is 0-based.
	FindPageByUser(ctx context.Context, userID int64, pageIndex, pageSize int) ([]domain.JoinRecord, error)
}

// UserRepository resolves users owned by the identity service.
type UserRepository interface {
	// FindByID returns nil when the user does not exist.
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// Transactor runs fn as one atomic unit. The transaction travels in the
// context passed to fn; repositories called with that context join it.
// WithinTx returns nil only after a successful commit. Any error from fn
// rolls back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
