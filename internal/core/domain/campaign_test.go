package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCommand() CreateCampaignCommand {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return CreateCampaignCommand{
		Name:          "Spring promo",
		RewardAmount:  1_000,
		JoinSlots:     10,
		Description:   "desc",
		ImageURL:      "https://example.com/a.png",
		StartAt:       start,
		EndAt:         start.Add(24 * time.Hour),
		ConditionKind: ConditionFirstJoin,
	}
}

func TestNewCampaign(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c, err := NewCampaign(validCommand())
		require.NoError(t, err)
		assert.Equal(t, 10, c.RemainingSlots)
		assert.Equal(t, int64(0), c.ID)
	})

	tests := []struct {
		name   string
		mutate func(*CreateCampaignCommand)
		reason string
	}{
		{"empty name", func(c *CreateCampaignCommand) { c.Name = "" }, "name required"},
		{"blank name", func(c *CreateCampaignCommand) { c.Name = "  \t" }, "name required"},
		{"negative reward", func(c *CreateCampaignCommand) { c.RewardAmount = -1 }, "invalid reward"},
		{"reward over max", func(c *CreateCampaignCommand) { c.RewardAmount = 1_000_001 }, "invalid reward"},
		{"zero slots", func(c *CreateCampaignCommand) { c.JoinSlots = 0 }, "invalid slot count"},
		{"too many slots", func(c *CreateCampaignCommand) { c.JoinSlots = 101 }, "invalid slot count"},
		{"missing start", func(c *CreateCampaignCommand) { c.StartAt = time.Time{} }, "window required"},
		{"end before start", func(c *CreateCampaignCommand) { c.EndAt = c.StartAt.Add(-time.Second) }, "invalid window"},
		{"first failure wins", func(c *CreateCampaignCommand) { c.Name = ""; c.JoinSlots = 0 }, "name required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			_, err := NewCampaign(cmd)
			require.ErrorIs(t, err, ErrValidation)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.reason, verr.Reason)
		})
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		cmd := validCommand()
		cmd.RewardAmount = MaxRewardAmount
		cmd.JoinSlots = MaxJoinSlots
		cmd.EndAt = cmd.StartAt
		_, err := NewCampaign(cmd)
		assert.NoError(t, err)
	})
}

func TestCampaignJoin(t *testing.T) {
	c := &Campaign{ID: 1, RemainingSlots: 1}

	require.NoError(t, c.Join())
	assert.Equal(t, 0, c.RemainingSlots)

	assert.ErrorIs(t, c.Join(), ErrCapacityExhausted)
	assert.Equal(t, 0, c.RemainingSlots, "slots never go negative")
}

func TestCampaignDisplayable(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &Campaign{StartAt: start, EndAt: start.Add(time.Hour)}

	assert.True(t, c.Displayable(start))
	assert.True(t, c.Displayable(start.Add(time.Hour)))
	assert.False(t, c.Displayable(start.Add(-time.Nanosecond)))
	assert.False(t, c.Displayable(start.Add(time.Hour+time.Nanosecond)))
}
