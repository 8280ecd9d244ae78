package condition

import (
	"encoding/json"

	"ad-rewards/internal/core/domain"
)

// CountOverConfig is the COUNT_OVER payload.
type CountOverConfig struct {
	MinimumJoinCount int `json:"minimumJoinCount"`
}

// CountOver admits users with at least MinimumJoinCount prior joins across
// all campaigns.
type CountOver struct{}

func (CountOver) Kind() domain.ConditionKind { return domain.ConditionCountOver }

func (c CountOver) IsValid(config json.RawMessage) bool {
	_, ok := c.parse(config)
	return ok
}

func (c CountOver) IsSatisfied(ledger []domain.JoinRecord, config json.RawMessage) (bool, error) {
	cfg, ok := c.parse(config)
	if !ok {
		return false, domain.ErrInvalidConditionConfig
	}
	return len(ledger) >= cfg.MinimumJoinCount, nil
}

func (CountOver) parse(config json.RawMessage) (CountOverConfig, bool) {
	var cfg CountOverConfig
	if !decodeConfig(config, &cfg) {
		return cfg, false
	}
	return cfg, cfg.MinimumJoinCount > 0
}
