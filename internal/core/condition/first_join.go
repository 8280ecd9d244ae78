package condition

import (
	"encoding/json"

	"ad-rewards/internal/core/domain"
)

// FirstJoin admits users who have never joined any campaign. It takes no
// configuration.
type FirstJoin struct{}

func (FirstJoin) Kind() domain.ConditionKind { return domain.ConditionFirstJoin }

func (FirstJoin) IsValid(json.RawMessage) bool { return true }

func (FirstJoin) IsSatisfied(ledger []domain.JoinRecord, _ json.RawMessage) (bool, error) {
	return len(ledger) == 0, nil
}
