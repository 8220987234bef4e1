package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableSeat(id string) Seat {
	return Seat{ID: id, Status: SeatStatusAvailable, Type: SeatTypeRegular, Price: SeatTypeRegular.Price()}
}

func TestSelection_ToggleFlow(t *testing.T) {
	// Mirrors the booking walkthrough: maxSeats=2, A3 occupied.
	sel := NewSelection(2)

	action, err := sel.Toggle(availableSeat("A1"))
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, action)
	assert.Equal(t, []string{"A1"}, selectedIDs(sel))

	_, err = sel.Toggle(Seat{ID: "A3", Status: SeatStatusOccupied})
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Equal(t, []string{"A1"}, selectedIDs(sel))

	action, err = sel.Toggle(availableSeat("B2"))
	require.NoError(t, err)
	assert.Equal(t, ActionSelected, action)
	assert.Equal(t, []string{"A1", "B2"}, selectedIDs(sel))

	_, err = sel.Toggle(availableSeat("C1"))
	assert.ErrorIs(t, err, ErrSelectionFull)
	assert.Equal(t, []string{"A1", "B2"}, selectedIDs(sel))

	action, err = sel.Toggle(availableSeat("A1"))
	require.NoError(t, err)
	assert.Equal(t, ActionDeselected, action)
	assert.Equal(t, []string{"B2"}, selectedIDs(sel))
}

func TestSelection_ReservedSeatRejected(t *testing.T) {
	sel := NewSelection(4)
	_, err := sel.Toggle(Seat{ID: "D4", Status: SeatStatusReserved})
	assert.ErrorIs(t, err, ErrSeatUnavailable)
	assert.Zero(t, sel.Len())
}

func TestSelection_DeselectionAlwaysAllowedAtCapacity(t *testing.T) {
	sel := NewSelection(1)
	_, err := sel.Toggle(availableSeat("A1"))
	require.NoError(t, err)

	action, err := sel.Toggle(availableSeat("A1"))
	require.NoError(t, err)
	assert.Equal(t, ActionDeselected, action)
	assert.Zero(t, sel.Len())
}

func TestSelection_CapacityInvariantUnderToggleSequences(t *testing.T) {
	sel := NewSelection(3)
	ids := []string{"A1", "A2", "A3", "A4", "A2", "A5", "A1", "A6", "A7"}

	for _, id := range ids {
		sel.Toggle(availableSeat(id))
		assert.LessOrEqual(t, sel.Len(), 3)
	}
}

func TestSelection_TotalPrice(t *testing.T) {
	sel := NewSelection(3)
	sel.Toggle(Seat{ID: "A1", Status: SeatStatusAvailable, Type: SeatTypeVIP, Price: SeatTypeVIP.Price()})
	sel.Toggle(Seat{ID: "C5", Status: SeatStatusAvailable, Type: SeatTypeRegular, Price: SeatTypeRegular.Price()})

	assert.Equal(t, float64(199+99), sel.TotalPrice())
}

func TestSelection_SeatsReturnsSnapshot(t *testing.T) {
	sel := NewSelection(2)
	sel.Toggle(availableSeat("A1"))

	snapshot := sel.Seats()
	snapshot[0].ID = "mutated"

	assert.Equal(t, "A1", sel.Seats()[0].ID)
}

func TestDisplayStatus(t *testing.T) {
	sel := NewSelection(2)
	seat := availableSeat("B3")
	sel.Toggle(seat)

	assert.Equal(t, SeatStatusSelected, DisplayStatus(seat, sel))
	assert.Equal(t, SeatStatusAvailable, DisplayStatus(availableSeat("B4"), sel))
	assert.Equal(t, SeatStatusOccupied, DisplayStatus(Seat{ID: "B5", Status: SeatStatusOccupied}, sel))
}

func TestSelection_Clear(t *testing.T) {
	sel := NewSelection(2)
	sel.Toggle(availableSeat("A1"))
	sel.Clear()

	assert.Zero(t, sel.Len())
	assert.Empty(t, sel.Seats())
}

func selectedIDs(sel *Selection) []string {
	seats := sel.Seats()
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = seat.ID
	}
	return ids
}
