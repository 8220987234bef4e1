package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly/internal/seatmap"
)

func testCatalog() *Catalog {
	return NewCatalog(
		TicketType{ID: "vip", Name: "VIP", Price: decimal.NewFromInt(199), MaxPerOrder: 5, Available: 3},
		TicketType{ID: "premium", Name: "Premium", Price: decimal.NewFromInt(149), MaxPerOrder: 4},
		TicketType{ID: "regular", Name: "Regular", Price: decimal.NewFromInt(99)},
	)
}

func TestCart_ChangeQuantity(t *testing.T) {
	cart := NewCart(testCatalog(), 10)

	require.NoError(t, cart.ChangeQuantity("vip", 2))
	assert.Equal(t, 2, cart.Quantity("vip"))

	require.NoError(t, cart.ChangeQuantity("vip", -1))
	assert.Equal(t, 1, cart.Quantity("vip"))

	// Decrement below zero clamps at zero.
	require.NoError(t, cart.ChangeQuantity("vip", -5))
	assert.Zero(t, cart.Quantity("vip"))
}

func TestCart_ChangeQuantityGuards(t *testing.T) {
	t.Run("unknown ticket id", func(t *testing.T) {
		cart := NewCart(testCatalog(), 10)
		assert.ErrorIs(t, cart.ChangeQuantity("backstage", 1), ErrUnknownTicket)
	})

	t.Run("exceeds available stock", func(t *testing.T) {
		// vip has available=3, current quantity 3; one more must fail.
		cart := NewCart(testCatalog(), 10)
		require.NoError(t, cart.ChangeQuantity("vip", 3))
		assert.ErrorIs(t, cart.ChangeQuantity("vip", 1), ErrInsufficientStock)
		assert.Equal(t, 3, cart.Quantity("vip"))
	})

	t.Run("exceeds per-order cap", func(t *testing.T) {
		cart := NewCart(testCatalog(), 20)
		require.NoError(t, cart.ChangeQuantity("premium", 4))
		assert.ErrorIs(t, cart.ChangeQuantity("premium", 1), ErrPerOrderLimit)
	})

	t.Run("default per-order cap applies when unset", func(t *testing.T) {
		cart := NewCart(testCatalog(), 50)
		require.NoError(t, cart.ChangeQuantity("regular", DefaultMaxPerOrder))
		assert.ErrorIs(t, cart.ChangeQuantity("regular", 1), ErrPerOrderLimit)
	})

	t.Run("exceeds global order cap across tiers", func(t *testing.T) {
		cart := NewCart(testCatalog(), 5)
		require.NoError(t, cart.ChangeQuantity("vip", 3))
		require.NoError(t, cart.ChangeQuantity("premium", 2))
		assert.ErrorIs(t, cart.ChangeQuantity("regular", 1), ErrOrderLimit)
		assert.Equal(t, 5, cart.TotalQuantity())
	})

	t.Run("rejection leaves quantities untouched", func(t *testing.T) {
		cart := NewCart(testCatalog(), 10)
		require.NoError(t, cart.ChangeQuantity("vip", 2))
		before := cart.Quantities()
		assert.Error(t, cart.ChangeQuantity("vip", 5))
		assert.Equal(t, before, cart.Quantities())
	})
}

func TestCart_Subtotal(t *testing.T) {
	cart := NewCart(testCatalog(), 10)
	require.NoError(t, cart.ChangeQuantity("vip", 2))
	require.NoError(t, cart.ChangeQuantity("regular", 3))

	// 2*199 + 3*99 = 695
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(695)))
}

func TestCart_SubtotalEmptyIsZero(t *testing.T) {
	cart := NewCart(testCatalog(), 10)
	assert.True(t, cart.Subtotal().IsZero())
}

func TestCart_SubtotalWithSeats(t *testing.T) {
	cart := NewCart(testCatalog(), 10)
	require.NoError(t, cart.ChangeQuantity("regular", 1))
	cart.SetSeats([]seatmap.Seat{
		{ID: "A1", Price: 199},
		{ID: "C5", Price: 99},
	})

	// 99 + 199 + 99 = 397
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(397)))

	// Each SetSeats call fully replaces the previous seat list.
	cart.SetSeats(nil)
	assert.True(t, cart.Subtotal().Equal(decimal.NewFromInt(99)))
}
