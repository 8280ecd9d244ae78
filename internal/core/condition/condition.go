// Package condition holds the pluggable join eligibility rules and the
// registry that dispatches to them by kind.
package condition

import (
	"encoding/json"
	"fmt"

	"ad-rewards/internal/core/domain"
)

// Condition is one eligibility rule. Implementations own the shape of their
// configuration payload.
type Condition interface {
	Kind() domain.ConditionKind
	// IsValid reports whether config is acceptable for this kind.
	IsValid(config json.RawMessage) bool
	// IsSatisfied evaluates the rule against the user's full join ledger.
	// It returns domain.ErrInvalidConditionConfig when config fails
	// validation at evaluation time.
	IsSatisfied(ledger []domain.JoinRecord, config json.RawMessage) (bool, error)
}

// Registry maps condition kinds to their implementation.
type Registry struct {
	conditions map[domain.ConditionKind]Condition
}

// NewRegistry indexes conditions by kind. A later condition with the same
// kind replaces an earlier one.
func NewRegistry(conditions ...Condition) *Registry {
	r := &Registry{conditions: make(map[domain.ConditionKind]Condition, len(conditions))}
	for _, c := range conditions {
		r.conditions[c.Kind()] = c
	}
	return r
}

// Default returns a registry holding every built-in condition.
func Default() *Registry {
	return NewRegistry(
		FirstJoin{},
		CountOver{},
		SpecificCampaign{},
	)
}

// ValidateConfig reports whether kind is registered and accepts config.
// Unknown kinds are invalid rather than an error.
func (r *Registry) ValidateConfig(kind domain.ConditionKind, config json.RawMessage) bool {
	c, ok := r.conditions[kind]
	if !ok {
		return false
	}
	return c.IsValid(config)
}

// IsSatisfied evaluates the campaign's condition against ledger.
func (r *Registry) IsSatisfied(campaign *domain.Campaign, ledger []domain.JoinRecord) (bool, error) {
	c, ok := r.conditions[campaign.ConditionKind]
	if !ok {
		return false, fmt.Errorf("%w: %q", domain.ErrUnsupportedCondition, campaign.ConditionKind)
	}
	return c.IsSatisfied(ledger, campaign.ConditionConfig)
}

// decodeConfig unmarshals a JSON object config into dst. Absent, null or
// malformed payloads report false.
func decodeConfig(config json.RawMessage, dst any) bool {
	if len(config) == 0 {
		return false
	}
	if err := json.Unmarshal(config, dst); err != nil {
		return false
	}
	return true
}
