package reward

import (
	"context"
	"log/slog"

	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
)

// LogClient only logs the credit. It stands in for the point system in
// local runs.
type LogClient struct {
	logger *slog.Logger
}

var _ port.RewardClient = (*LogClient)(nil)

func NewLogClient(logger *slog.Logger) *LogClient {
	return &LogClient{logger: logger}
}

func (c *LogClient) Reward(ctx context.Context, cmd domain.RewardCommand) error {
	c.logger.InfoContext(ctx, "reward granted",
		slog.Int64("user_id", cmd.UserID),
		slog.Int64("amount", cmd.Amount),
		slog.String("idempotency_key", cmd.IdempotencyKey),
	)
	return nil
}
