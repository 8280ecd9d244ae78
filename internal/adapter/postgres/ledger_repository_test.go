package postgres

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A page whose offset does not fit in int is empty and never reaches the
// database.
func TestFindPageByUserFarPage(t *testing.T) {
	repo := NewLedgerRepository(nil)

	page, err := repo.FindPageByUser(context.Background(), 1, math.MaxInt/20, 20)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestFindPageByUserInvalidPage(t *testing.T) {
	repo := NewLedgerRepository(nil)

	_, err := repo.FindPageByUser(context.Background(), 1, -1, 20)
	require.Error(t, err)
	_, err = repo.FindPageByUser(context.Background(), 1, 0, 0)
	require.Error(t, err)
}
