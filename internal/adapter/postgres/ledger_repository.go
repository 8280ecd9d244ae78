package postgres

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ad-rewards/internal/core/domain"
)

// LedgerRepository implements port.LedgerRepository on the join_records
// table. Rows are never updated or deleted.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository returns a new repository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

func (r *LedgerRepository) Save(ctx context.Context, rec *domain.JoinRecord) error {
	return conn(ctx, r.pool).QueryRow(ctx, `INSERT INTO join_records
    (campaign_id, user_id, campaign_name, reward_amount, joined_at)
VALUES ($1,$2,$3,$4,$5)
RETURNING id`,
		rec.CampaignID, rec.UserID, rec.CampaignName, rec.RewardAmount, rec.JoinedAt,
	).Scan(&rec.ID)
}

func (r *LedgerRepository) FindAllByUser(ctx context.Context, userID int64) ([]domain.JoinRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
        SELECT id, campaign_id, user_id, campaign_name, reward_amount, joined_at
        FROM join_records
        WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanJoinRecord)
}

func (r *LedgerRepository) FindPageByUser(ctx context.Context, userID int64, pageIndex, pageSize int) ([]domain.JoinRecord, error) {
	if pageIndex < 0 || pageSize <= 0 {
		return nil, fmt.Errorf("invalid page %d/%d", pageIndex, pageSize)
	}
	if pageIndex > (math.MaxInt-pageSize)/pageSize {
		return []domain.JoinRecord{}, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `
        SELECT id, campaign_id, user_id, campaign_name, reward_amount, joined_at
        FROM join_records
        WHERE user_id = $1
        ORDER BY joined_at, id
        LIMIT $2 OFFSET $3`, userID, pageSize, pageIndex*pageSize)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanJoinRecord)
}

func scanJoinRecord(row pgx.CollectableRow) (domain.JoinRecord, error) {
	var rec domain.JoinRecord
	err := row.Scan(&rec.ID, &rec.CampaignID, &rec.UserID, &rec.CampaignName, &rec.RewardAmount, &rec.JoinedAt)
	return rec, err
}
