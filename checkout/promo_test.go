package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPromoCodeCaseInsensitive(t *testing.T) {
	table := PromoTable{"SAVE10": 10}

	discount, err := table.Apply("save10")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, discount, 1e-9)
}

func TestApplyPromoCodeTrimsWhitespace(t *testing.T) {
	discount, err := DefaultPromoTable.Apply("  discount5  ")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, discount, 1e-9)
}

func TestApplyPromoCodeNotFound(t *testing.T) {
	discount, err := DefaultPromoTable.Apply("bogus")

	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.Zero(t, discount)
}

func TestApplyPromoCodeEmptyTable(t *testing.T) {
	discount, err := PromoTable{}.Apply("SAVE10")

	assert.ErrorIs(t, err, ErrPromoNotFound)
	assert.Zero(t, discount)
}
