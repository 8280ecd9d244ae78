package domain

import (
	"math"
	"time"
)

// JoinRecord is an immutable ledger entry written once per successful join.
// Campaign name and reward are copied at join time so later campaign edits
// do not rewrite history.
type JoinRecord struct {
	ID           int64
	CampaignID   int64
	UserID       int64
	CampaignName string
	RewardAmount int64
	JoinedAt     time.Time
}

// NewJoinRecord snapshots c and u into a new record.
func NewJoinRecord(c *Campaign, u *User, joinedAt time.Time) (*JoinRecord, error) {
	if c == nil || c.ID == 0 {
		return nil, NewValidationError("campaign not found")
	}
	if u == nil || u.ID == 0 {
		return nil, NewValidationError("user not found")
	}
	return &JoinRecord{
		CampaignID:   c.ID,
		UserID:       u.ID,
		CampaignName: c.Name,
		RewardAmount: c.RewardAmount,
		JoinedAt:     joinedAt,
	}, nil
}

func (r JoinRecord) BelongsToCampaign(campaignID int64) bool {
	return r.CampaignID == campaignID
}

// HistoryQuery selects one page of a user's join history. Page is 1-based
// as received from clients; Normalize converts it.
type HistoryQuery struct {
	UserID int64
	Page   int
	Size   int
}

const (
	DefaultHistoryPageSize = 20
	MaxHistoryPageSize     = 50
	// MaxHistoryPageIndex keeps pageIndex*size within int.
	MaxHistoryPageIndex = math.MaxInt / MaxHistoryPageSize
)

// Normalize returns the 0-based page index and a size clamped to
// [1, MaxHistoryPageSize]. Non-positive pages map to the first page and
// the index never exceeds MaxHistoryPageIndex.
func (q HistoryQuery) Normalize() (pageIndex, size int) {
	if q.Page > 1 {
		pageIndex = min(q.Page-1, MaxHistoryPageIndex)
	}
	size = q.Size
	if size <= 0 {
		size = DefaultHistoryPageSize
	}
	return pageIndex, min(size, MaxHistoryPageSize)
}
