package port

import (
	"context"

	"ad-rewards/internal/core/domain"
)

// RewardClient credits points to a user in the external point system.
type RewardClient interface {
	Reward(ctx context.Context, cmd domain.RewardCommand) error
}

// JoinedEventPublisher hands committed joins to reward disbursement. It
// must not block on the downstream call and reports no delivery outcome.
type JoinedEventPublisher interface {
	PublishJoined(ctx context.Context, event domain.JoinedEvent)
}
