package usecase

import (
	"context"
	"fmt"
	"iter"
	"time"

	"ad-rewards/internal/core/condition"
	"ad-rewards/internal/core/domain"
	"ad-rewards/internal/core/port"
)

// CampaignService owns the campaign invariants and the capacity-safe join
// transaction. It does not resolve users or publish events; see
// CampaignUseCase for that.
type CampaignService struct {
	campaigns  port.CampaignRepository
	ledger     port.LedgerRepository
	tx         port.Transactor
	conditions *condition.Registry
	now        func() time.Time
}

// NewCampaignService wires the service. conditions must contain every kind
// stored campaigns may reference.
func NewCampaignService(
	campaigns port.CampaignRepository,
	ledger port.LedgerRepository,
	tx port.Transactor,
	conditions *condition.Registry,
) *CampaignService {
	return &CampaignService{
		campaigns:  campaigns,
		ledger:     ledger,
		tx:         tx,
		conditions: conditions,
		now:        time.Now,
	}
}

// Create validates cmd, checks its condition configuration and name
// uniqueness, then stores the campaign.
func (s *CampaignService) Create(ctx context.Context, cmd domain.CreateCampaignCommand) (*domain.Campaign, error) {
	c, err := domain.NewCampaign(cmd)
	if err != nil {
		return nil, err
	}
	if !s.conditions.ValidateConfig(c.ConditionKind, c.ConditionConfig) {
		return nil, domain.NewValidationError("invalid join condition")
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.campaigns.ExistsByName(ctx, c.Name)
		if err != nil {
			return fmt.Errorf("check campaign name: %w", err)
		}
		if exists {
			return domain.NewValidationError("duplicate name")
		}
		return s.campaigns.Save(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Join takes one slot of campaignID for user. The campaign row stays locked
// from the first read until commit or rollback, so concurrent joiners of
// the same campaign are serialised while other campaigns proceed in
// parallel. The returned record is committed.
func (s *CampaignService) Join(ctx context.Context, campaignID int64, user *domain.User) (*domain.JoinRecord, error) {
	var joined *domain.JoinRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.campaigns.FindByIDWithLock(ctx, campaignID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewNotFoundError("campaign")
		}

		ledger, err := s.ledger.FindAllByUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("load join ledger: %w", err)
		}
		ok, err := s.conditions.IsSatisfied(c, ledger)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrConditionUnsatisfied
		}

		if err = c.Join(); err != nil {
			return err
		}
		if err = s.campaigns.Save(ctx, c); err != nil {
			return fmt.Errorf("save campaign: %w", err)
		}

		record, err := domain.NewJoinRecord(c, user, s.now())
		if err != nil {
			return err
		}
		if err = s.ledger.Save(ctx, record); err != nil {
			return fmt.Errorf("save join record: %w", err)
		}
		joined = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return joined, nil
}

// Joinable yields campaigns userID could join at asOf, highest reward
// first. The user's ledger is loaded once when iteration starts. An error
// is yielded once and ends the sequence. Callers decide how many to take.
func (s *CampaignService) Joinable(ctx context.Context, userID int64, asOf time.Time) iter.Seq2[domain.Campaign, error] {
	return func(yield func(domain.Campaign, error) bool) {
		ledger, err := s.ledger.FindAllByUser(ctx, userID)
		if err != nil {
			yield(domain.Campaign{}, fmt.Errorf("load join ledger: %w", err))
			return
		}
		candidates, err := s.campaigns.FindJoinableCandidates(ctx, asOf)
		if err != nil {
			yield(domain.Campaign{}, fmt.Errorf("load joinable campaigns: %w", err))
			return
		}

		for i := range candidates {
			ok, err := s.conditions.IsSatisfied(&candidates[i], ledger)
			if err != nil {
				yield(domain.Campaign{}, fmt.Errorf("campaign %d: %w", candidates[i].ID, err))
				return
			}
			if ok && !yield(candidates[i], nil) {
				return
			}
		}
	}
}

// History returns one page of userID's joins, oldest first. pageIndex is
// 0-based and pageSize already capped by the caller.
func (s *CampaignService) History(ctx context.Context, userID int64, pageIndex, pageSize int) ([]domain.JoinRecord, error) {
	records, err := s.ledger.FindPageByUser(ctx, userID, pageIndex, pageSize)
	if err != nil {
		return nil, fmt.Errorf("load join history: %w", err)
	}
	return records, nil
}
