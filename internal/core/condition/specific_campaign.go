package condition

import (
	"encoding/json"
	"slices"

	"ad-rewards/internal/core/domain"
)

// SpecificCampaignConfig is the SPECIFIC_CAMPAIGN payload.
type SpecificCampaignConfig struct {
	RequiredCampaignID *int64 `json:"requiredCampaignId"`
}

// SpecificCampaign admits users who have joined RequiredCampaignID before.
type SpecificCampaign struct{}

func (SpecificCampaign) Kind() domain.ConditionKind { return domain.ConditionSpecificCampaign }

func (c SpecificCampaign) IsValid(config json.RawMessage) bool {
	_, ok := c.parse(config)
	return ok
}

func (c SpecificCampaign) IsSatisfied(ledger []domain.JoinRecord, config json.RawMessage) (bool, error) {
	required, ok := c.parse(config)
	if !ok {
		return false, domain.ErrInvalidConditionConfig
	}
	return slices.ContainsFunc(ledger, func(r domain.JoinRecord) bool {
		return r.BelongsToCampaign(required)
	}), nil
}

func (SpecificCampaign) parse(config json.RawMessage) (int64, bool) {
	var cfg SpecificCampaignConfig
	if !decodeConfig(config, &cfg) || cfg.RequiredCampaignID == nil {
		return 0, false
	}
	return *cfg.RequiredCampaignID, *cfg.RequiredCampaignID > 0
}
