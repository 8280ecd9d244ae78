package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ad-rewards/internal/core/domain"
)

const campaignColumns = `
            id,
            name,
            reward_amount,
            remaining_slots,
            description,
            image_url,
            started_at,
            ended_at,
            condition_kind,
            COALESCE(condition_config::text, ''),
            created_at,
            updated_at`

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func (r *CampaignRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := conn(ctx, r.pool).
		QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaigns WHERE name = $1)`, name).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Save inserts a new campaign or writes back the remaining slots of an
// existing one. Other columns are immutable after creation.
func (r *CampaignRepository) Save(ctx context.Context, c *domain.Campaign) error {
	q := conn(ctx, r.pool)
	if c.ID != 0 {
		err := q.QueryRow(ctx,
			`UPDATE campaigns SET remaining_slots = $1, updated_at = now() WHERE id = $2 RETURNING updated_at`,
			c.RemainingSlots, c.ID,
		).Scan(&c.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewNotFoundError("campaign")
		}
		return translateError(err)
	}

	err := q.QueryRow(ctx, `INSERT INTO campaigns
    (name, reward_amount, remaining_slots, description, image_url, started_at, ended_at,
     condition_kind, condition_config, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now(),now())
RETURNING id, created_at, updated_at`,
		c.Name, c.RewardAmount, c.RemainingSlots, c.Description, c.ImageURL, c.StartAt, c.EndAt,
		c.ConditionKind.String(), jsonParam(c.ConditionConfig),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return translateError(err)
}

func (r *CampaignRepository) FindJoinableCandidates(ctx context.Context, asOf time.Time) ([]domain.Campaign, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT`+campaignColumns+`
        FROM campaigns
        WHERE remaining_slots > 0
          AND $1 BETWEEN started_at AND ended_at
        ORDER BY reward_amount DESC, id`, asOf)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

// FindByIDWithLock must run inside a transaction; the row lock is held
// until it ends.
func (r *CampaignRepository) FindByIDWithLock(ctx context.Context, id int64) (*domain.Campaign, error) {
	if !inTx(ctx) {
		return nil, errors.New("find campaign with lock: no transaction in context")
	}
	c, err := scanCampaign(conn(ctx, r.pool).QueryRow(ctx,
		`SELECT`+campaignColumns+` FROM campaigns WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lock campaign %d: %w", id, translateError(err))
	}
	return &c, nil
}

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c      domain.Campaign
		kind   string
		config string
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.RewardAmount,
		&c.RemainingSlots,
		&c.Description,
		&c.ImageURL,
		&c.StartAt,
		&c.EndAt,
		&kind,
		&config,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	c.ConditionKind = domain.ConditionKind(kind)
	if config != "" {
		c.ConditionConfig = json.RawMessage(config)
	}
	return c, nil
}

// jsonParam passes an absent config as SQL NULL.
func jsonParam(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
