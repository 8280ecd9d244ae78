package domain

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	MaxRewardAmount = 1_000_000
	MaxJoinSlots    = 100
)

// Campaign is a promotional offer users can join while it has slots left.
// Reward amounts are stored in integer point units.
type Campaign struct {
	ID              int64
	Name            string
	RewardAmount    int64
	RemainingSlots  int
	Description     string
	ImageURL        string
	StartAt         time.Time
	EndAt           time.Time
	ConditionKind   ConditionKind
	ConditionConfig json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreateCampaignCommand carries the raw input for a new campaign.
type CreateCampaignCommand struct {
	Name            string
	RewardAmount    int64
	JoinSlots       int
	Description     string
	ImageURL        string
	StartAt         time.Time
	EndAt           time.Time
	ConditionKind   ConditionKind
	ConditionConfig json.RawMessage
}

// NewCampaign validates cmd and builds an unsaved campaign. Rules are
// checked in order and the first failure is returned.
func NewCampaign(cmd CreateCampaignCommand) (*Campaign, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, NewValidationError("name required")
	}
	if cmd.RewardAmount < 0 || cmd.RewardAmount > MaxRewardAmount {
		return nil, NewValidationError("invalid reward")
	}
	if cmd.JoinSlots < 1 || cmd.JoinSlots > MaxJoinSlots {
		return nil, NewValidationError("invalid slot count")
	}
	if cmd.StartAt.IsZero() || cmd.EndAt.IsZero() {
		return nil, NewValidationError("window required")
	}
	if cmd.EndAt.Before(cmd.StartAt) {
		return nil, NewValidationError("invalid window")
	}

	return &Campaign{
		Name:            cmd.Name,
		RewardAmount:    cmd.RewardAmount,
		RemainingSlots:  cmd.JoinSlots,
		Description:     cmd.Description,
		ImageURL:        cmd.ImageURL,
		StartAt:         cmd.StartAt,
		EndAt:           cmd.EndAt,
		ConditionKind:   cmd.ConditionKind,
		ConditionConfig: cmd.ConditionConfig,
	}, nil
}

// Join takes one slot. The caller must hold the campaign row lock.
func (c *Campaign) Join() error {
	if c.RemainingSlots <= 0 {
		return ErrCapacityExhausted
	}
	c.RemainingSlots--
	return nil
}

// Displayable reports whether asOf falls inside the display window.
func (c *Campaign) Displayable(asOf time.Time) bool {
	return !asOf.Before(c.StartAt) && !asOf.After(c.EndAt)
}
