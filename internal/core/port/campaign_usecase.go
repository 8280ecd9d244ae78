package port

import (
	"context"

	"ad-rewards/internal/core/domain"
)

// CampaignUseCase defines the business operations exposed by the campaign
// service. It is the primary port into the application domain.
type CampaignUseCase interface {
	// CreateCampaign validates and stores a new campaign.
	CreateCampaign(ctx context.Context, cmd domain.CreateCampaignCommand) (*domain.Campaign, error)

	// Join resolves the user, joins the campaign under its row lock and,
	// once committed, hands the reward off asynchronously.
	Join(ctx context.Context, campaignID, userID int64) (*domain.JoinRecord, error)

	// ListJoinable returns at most JoinableLimit campaigns the user could
	// join right now, highest reward first.
	ListJoinable(ctx context.Context, userID int64) ([]domain.Campaign, error)

	// JoinHistory returns one page of the user's joins, oldest first.
	JoinHistory(ctx context.Context, q domain.HistoryQuery) (*HistoryPage, error)
}

// JoinableLimit caps ListJoinable results.
const JoinableLimit = 10

// HistoryPage is the DTO returned by JoinHistory. Page is 1-based.
type HistoryPage struct {
	UserID  int64
	Page    int
	Size    int
	Records []domain.JoinRecord
}
