package condition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-rewards/internal/core/domain"
)

func ledgerOf(campaignIDs ...int64) []domain.JoinRecord {
	out := make([]domain.JoinRecord, 0, len(campaignIDs))
	for i, id := range campaignIDs {
		out = append(out, domain.JoinRecord{ID: int64(i + 1), CampaignID: id, UserID: 1})
	}
	return out
}

func TestFirstJoin(t *testing.T) {
	c := FirstJoin{}

	assert.True(t, c.IsValid(nil))
	assert.True(t, c.IsValid(json.RawMessage(`{"anything":1}`)))

	ok, err := c.IsSatisfied(nil, nil)
	require.NoError(t, err)
	assert.True(t, ok, "empty ledger is a first join")

	// Any prior join, even in an unrelated campaign, disqualifies.
	ok, err = c.IsSatisfied(ledgerOf(42), nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountOver(t *testing.T) {
	c := CountOver{}

	t.Run("validates config", func(t *testing.T) {
		assert.True(t, c.IsValid(json.RawMessage(`{"minimumJoinCount":3}`)))
		assert.False(t, c.IsValid(json.RawMessage(`{"minimumJoinCount":0}`)))
		assert.False(t, c.IsValid(json.RawMessage(`{"minimumJoinCount":-2}`)))
		assert.False(t, c.IsValid(json.RawMessage(`{}`)))
		assert.False(t, c.IsValid(json.RawMessage(`null`)))
		assert.False(t, c.IsValid(json.RawMessage(`not json`)))
		assert.False(t, c.IsValid(nil))
	})

	t.Run("boundary", func(t *testing.T) {
		cfg := json.RawMessage(`{"minimumJoinCount":3}`)

		ok, err := c.IsSatisfied(ledgerOf(1, 2, 3), cfg)
		require.NoError(t, err)
		assert.True(t, ok, "exactly the minimum satisfies")

		ok, err = c.IsSatisfied(ledgerOf(1, 2), cfg)
		require.NoError(t, err)
		assert.False(t, ok, "one below the minimum does not")
	})

	t.Run("counts joins across all campaigns", func(t *testing.T) {
		ok, err := c.IsSatisfied(ledgerOf(7, 8), json.RawMessage(`{"minimumJoinCount":2}`))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("corrupt stored config", func(t *testing.T) {
		_, err := c.IsSatisfied(ledgerOf(1), json.RawMessage(`{"minimumJoinCount":"x"}`))
		assert.ErrorIs(t, err, domain.ErrInvalidConditionConfig)
	})
}

func TestSpecificCampaign(t *testing.T) {
	c := SpecificCampaign{}
	cfg := json.RawMessage(`{"requiredCampaignId":5}`)

	t.Run("validates config", func(t *testing.T) {
		assert.True(t, c.IsValid(cfg))
		assert.False(t, c.IsValid(json.RawMessage(`{}`)))
		assert.False(t, c.IsValid(json.RawMessage(`{"requiredCampaignId":null}`)))
		assert.False(t, c.IsValid(json.RawMessage(`{"requiredCampaignId":0}`)))
		assert.False(t, c.IsValid(nil))
	})

	t.Run("matching entry", func(t *testing.T) {
		ok, err := c.IsSatisfied(ledgerOf(3, 5), cfg)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no matching entry", func(t *testing.T) {
		ok, err := c.IsSatisfied(ledgerOf(3, 4), cfg)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = c.IsSatisfied(nil, cfg)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt stored config", func(t *testing.T) {
		_, err := c.IsSatisfied(ledgerOf(5), json.RawMessage(`[]`))
		assert.ErrorIs(t, err, domain.ErrInvalidConditionConfig)
	})
}
