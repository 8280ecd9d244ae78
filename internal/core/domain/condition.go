package domain

import "strings"

// ConditionKind selects the eligibility rule a campaign is gated by.
type ConditionKind string

const (
	ConditionFirstJoin        ConditionKind = "FIRST_JOIN"
	ConditionCountOver        ConditionKind = "COUNT_OVER"
	ConditionSpecificCampaign ConditionKind = "SPECIFIC_CAMPAIGN"
)

// ParseConditionKind normalises s. Unknown kinds are returned as-is; the
// condition registry decides whether they are usable.
func ParseConditionKind(s string) ConditionKind {
	return ConditionKind(strings.ToUpper(strings.TrimSpace(s)))
}

func (k ConditionKind) String() string { return string(k) }
