package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
	"ad-rewards/internal/metrics"
)

// CampaignUseCase is the thin orchestration layer above CampaignService.
// It resolves users, publishes reward events after commit and shapes
// results for the inbound adapters.
type CampaignUseCase struct {
	campaigns *CampaignService
	users     port.UserRepository
	publisher port.JoinedEventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

var _ port.CampaignUseCase = (*CampaignUseCase)(nil)

// NewCampaignUseCase creates the facade. publisher receives exactly one
// event per committed join.
func NewCampaignUseCase(
	campaigns *CampaignService,
	users port.UserRepository,
	publisher port.JoinedEventPublisher,
	logger *slog.Logger,
) *CampaignUseCase {
	return &CampaignUseCase{
		campaigns: campaigns,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *CampaignUseCase) CreateCampaign(ctx context.Context, cmd domain.CreateCampaignCommand) (*domain.Campaign, error) {
	c, err := u.campaigns.Create(ctx, cmd)
	if err != nil {
		return nil, err
	}
	u.logger.Info("campaign created",
		slog.Int64("campaign_id", c.ID),
		slog.String("condition", c.ConditionKind.String()),
		slog.Int("slots", c.RemainingSlots),
	)
	return c, nil
}

// Join resolves the user before any lock is taken, joins the campaign and
// hands the reward to the publisher once the transaction has committed. A
// failed or rolled-back join publishes nothing.
func (u *CampaignUseCase) Join(ctx context.Context, campaignID, userID int64) (record *domain.JoinRecord, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordJoinDuration(joinOutcome(err), time.Since(start).Seconds())
	}()

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user")
	}

	record, err = u.campaigns.Join(ctx, campaignID, user)
	if err != nil {
		return nil, err
	}

	// The caller's context may be cancelled as soon as we return.
	u.publisher.PublishJoined(context.WithoutCancel(ctx), domain.NewJoinedEvent(record))
	return record, nil
}

// ListJoinable takes the first port.JoinableLimit campaigns from the lazy
// joinable sequence. An unknown user simply has an empty ledger.
func (u *CampaignUseCase) ListJoinable(ctx context.Context, userID int64) ([]domain.Campaign, error) {
	result := make([]domain.Campaign, 0, port.JoinableLimit)
	for c, err := range u.campaigns.Joinable(ctx, userID, u.now()) {
		if err != nil {
			return nil, err
		}
		result = append(result, c)
		if len(result) == port.JoinableLimit {
			break
		}
	}
	return result, nil
}

func (u *CampaignUseCase) JoinHistory(ctx context.Context, q domain.HistoryQuery) (*port.HistoryPage, error) {
	pageIndex, size := q.Normalize()
	records, err := u.campaigns.History(ctx, q.UserID, pageIndex, size)
	if err != nil {
		return nil, err
	}
	return &port.HistoryPage{
		UserID:  q.UserID,
		Page:    pageIndex + 1,
		Size:    size,
		Records: records,
	}, nil
}

func joinOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeJoined
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrConditionUnsatisfied):
		return metrics.OutcomeUnsatisfied
	case errors.Is(err, domain.ErrCapacityExhausted):
		return metrics.OutcomeExhausted
	case errors.Is(err, domain.ErrLockTimeout):
		return metrics.OutcomeLockTimeout
	default:
		return metrics.OutcomeError
	}
}
