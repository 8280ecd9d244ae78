package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ad-rewards/internal/core/domain"
)

// SeedDemo registers demo users and one campaign per condition kind.
func SeedDemo(ctx context.Context, s *Store, users int) error {
	for i := 1; i <= users; i++ {
		s.PutUser(domain.User{ID: int64(i), Name: fmt.Sprintf("user-%d", i)})
	}

	start := time.Now().AddDate(0, 0, -1)
	end := time.Now().AddDate(0, 1, 0)
	cmds := []domain.CreateCampaignCommand{
		{Name: "Welcome bonus", RewardAmount: 500, JoinSlots: 100, ConditionKind: domain.ConditionFirstJoin},
		{Name: "Regulars", RewardAmount: 1_500, JoinSlots: 50, ConditionKind: domain.ConditionCountOver, ConditionConfig: json.RawMessage(`{"minimumJoinCount":2}`)},
		{Name: "Follow-up", RewardAmount: 1_000, JoinSlots: 20, ConditionKind: domain.ConditionSpecificCampaign, ConditionConfig: json.RawMessage(`{"requiredCampaignId":1}`)},
	}
	repo := s.Campaigns()
	for _, cmd := range cmds {
		cmd.StartAt, cmd.EndAt = start, end
		cmd.Description = cmd.Name + " campaign"
		c, err := domain.NewCampaign(cmd)
		if err != nil {
			return err
		}
		if err = repo.Save(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
