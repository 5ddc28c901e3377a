package catalog_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, start, end string) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.ParseTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestNewCategory(t *testing.T) {
	t.Run("should normalize name", func(t *testing.T) {
		c, err := catalog.NewCategory(kernel.NewUUID(), kernel.NewUUID(), "  BreakFast ", window(t, "07:00", "11:00"))

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "breakfast", c.Name())
		assert.Equal(t, "07:00-11:00", c.Window().String())
	})

	t.Run("should reject blank name and missing window", func(t *testing.T) {
		c, err := catalog.NewCategory(kernel.NewUUID(), kernel.NewUUID(), "   ", kernel.TimeWindow{})

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.ErrorIs(t, err, kernel.ErrTimeWindowIsNotConstructed)
	})
}

func TestCategory_ChangeWindow(t *testing.T) {
	c, err := catalog.NewCategory(kernel.NewUUID(), kernel.NewUUID(), "dinner", window(t, "19:00", "22:00"))
	require.NoError(t, err)

	late, err := kernel.ParseTimeOfDay("23:30")
	require.NoError(t, err)
	assert.False(t, c.IsOpenAt(late))

	require.NoError(t, c.ChangeWindow(window(t, "19:00", "01:00")))
	assert.True(t, c.IsOpenAt(late))

	assert.Error(t, c.ChangeWindow(kernel.TimeWindow{}))
	assert.True(t, c.IsOpenAt(late))
}

func TestNewMenuItem(t *testing.T) {
	restaurantID := kernel.NewUUID()

	t.Run("should create available item", func(t *testing.T) {
		m, err := catalog.NewMenuItem(kernel.NewUUID(), restaurantID, kernel.NewUUID(), " Idli ", decimal.NewFromInt(30))

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.Equal(t, "Idli", m.Name())
		assert.True(t, m.IsAvailable())
		assert.True(t, m.BelongsTo(restaurantID))
		assert.False(t, m.BelongsTo(kernel.NewUUID()))
	})

	t.Run("should reject negative price and blank name", func(t *testing.T) {
		_, err := catalog.NewMenuItem(kernel.NewUUID(), restaurantID, kernel.NewUUID(), "", decimal.NewFromInt(-5))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should bound price by MaxPrice", func(t *testing.T) {
		_, err := catalog.NewMenuItem(kernel.NewUUID(), restaurantID, kernel.NewUUID(), "Thali", catalog.MaxPrice)
		require.NoError(t, err)

		_, err = catalog.NewMenuItem(kernel.NewUUID(), restaurantID, kernel.NewUUID(), "Thali",
			catalog.MaxPrice.Add(decimal.RequireFromString("0.01")))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
	})
}

func TestMenuItem_Mutations(t *testing.T) {
	m, err := catalog.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "Dosa", decimal.NewFromInt(50))
	require.NoError(t, err)

	require.NoError(t, m.ChangePrice(decimal.RequireFromString("55.50")))
	assert.True(t, decimal.RequireFromString("55.5").Equal(m.Price()))

	assert.Error(t, m.ChangePrice(decimal.NewFromInt(-1)))
	assert.True(t, decimal.RequireFromString("55.5").Equal(m.Price()))

	require.NoError(t, m.ChangePrice(decimal.Zero))

	assert.ErrorIs(t, m.ChangePrice(decimal.NewFromInt(1_000_000)), errs.ErrValueIsOutOfRange)
	assert.True(t, m.Price().IsZero())

	m.SetAvailable(false)
	assert.False(t, m.IsAvailable())
}
