package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// rewardNamespace scopes idempotency keys derived from join record ids.
var rewardNamespace = uuid.MustParse("6f1c2a8e-3b4d-4f0a-9c51-7d2e8b9a0c13")

// JoinedEvent is emitted once a join has committed.
type JoinedEvent struct {
	JoinRecordID int64
	CampaignID   int64
	UserID       int64
	RewardAmount int64
	JoinedAt     time.Time
}

func NewJoinedEvent(r *JoinRecord) JoinedEvent {
	return JoinedEvent{
		JoinRecordID: r.ID,
		CampaignID:   r.CampaignID,
		UserID:       r.UserID,
		RewardAmount: r.RewardAmount,
		JoinedAt:     r.JoinedAt,
	}
}

// RewardCommand asks the point system to credit a user.
type RewardCommand struct {
	UserID         int64  `json:"userId"`
	Amount         int64  `json:"amount"`
	IdempotencyKey string `json:"idempotencyKey"`
}

// RewardCommand derives the credit request for e. The idempotency key is
// stable for a given join record so downstream deduplication works across
// redeliveries.
func (e JoinedEvent) RewardCommand() RewardCommand {
	return RewardCommand{
		UserID:         e.UserID,
		Amount:         e.RewardAmount,
		IdempotencyKey: uuid.NewSHA1(rewardNamespace, []byte(strconv.FormatInt(e.JoinRecordID, 10))).String(),
	}
}
