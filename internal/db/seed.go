package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo users and one campaign per condition kind. Rerunning
// it is harmless.
func Seed(ctx context.Context, db *pgxpool.Pool, users int) error {
	for i := 1; i <= users; i++ {
		_, err := db.Exec(ctx, `INSERT INTO users (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			i, fmt.Sprintf("user-%d", i))
		if err != nil {
			return err
		}
	}

	start := time.Now().AddDate(0, 0, -1)
	end := time.Now().AddDate(0, 1, 0)
	campaigns := []struct {
		name   string
		reward int64
		slots  int
		kind   string
		config any
	}{
		{"Welcome bonus", 500, 100, "FIRST_JOIN", nil},
		{"Regulars", 1_500, 50, "COUNT_OVER", `{"minimumJoinCount":2}`},
		{"Follow-up", 1_000, 20, "SPECIFIC_CAMPAIGN", nil},
	}

	var welcomeID int64
	for _, c := range campaigns {
		config := c.config
		if c.kind == "SPECIFIC_CAMPAIGN" {
			config = fmt.Sprintf(`{"requiredCampaignId":%d}`, welcomeID)
		}
		var id int64
		err := db.QueryRow(ctx, `INSERT INTO campaigns
    (name, reward_amount, remaining_slots, description, image_url, started_at, ended_at,
     condition_kind, condition_config, created_at, updated_at)
VALUES ($1,$2,$3,$4,'',$5,$6,$7,$8,now(),now())
ON CONFLICT (name) DO UPDATE SET updated_at = campaigns.updated_at
RETURNING id`,
			c.name, c.reward, c.slots, c.name+" campaign", start, end, c.kind, config).Scan(&id)
		if err != nil {
			return err
		}
		if c.kind == "FIRST_JOIN" {
			welcomeID = id
		}
	}
	return nil
}
