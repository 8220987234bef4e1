package seatmap

import "errors"

var (
	// ErrSeatUnavailable is returned when toggling a seat whose stored
	// status is occupied or reserved.
	ErrSeatUnavailable = errors.New("seat is not available for selection")

	// ErrSelectionFull is returned when selecting a seat would exceed the
	// selection capacity. Deselection is never blocked by capacity.
	ErrSelectionFull = errors.New("selection capacity reached")
)

// Action reports what a Toggle call did to the selection.
type Action string

const (
	ActionSelected   Action = "SELECTED"
	ActionDeselected Action = "DESELECTED"
)

// Selection is the bounded set of seats a single booking session intends to
// purchase. Invariants held after every operation: no duplicate seat ids,
// no occupied or reserved seats, length never exceeds the capacity.
type Selection struct {
	maxSeats int
	seats    []Seat
}

// NewSelection creates an empty selection with the given capacity.
func NewSelection(maxSeats int) *Selection {
	return &Selection{maxSeats: maxSeats}
}

// MaxSeats returns the selection capacity.
func (s *Selection) MaxSeats() int {
	return s.maxSeats
}

// Toggle selects the seat if absent and deselects it if present, matched by
// id. Removing is always permitted; adding requires the seat to be
// selectable and the selection below capacity.
func (s *Selection) Toggle(seat Seat) (Action, error) {
	for i, cur := range s.seats {
		if cur.ID == seat.ID {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return ActionDeselected, nil
		}
	}

	if !seat.Selectable() {
		return "", ErrSeatUnavailable
	}
	if len(s.seats) >= s.maxSeats {
		return "", ErrSelectionFull
	}

	s.seats = append(s.seats, seat)
	return ActionSelected, nil
}

// Contains reports whether a seat id is currently selected.
func (s *Selection) Contains(seatID string) bool {
	for _, seat := range s.seats {
		if seat.ID == seatID {
			return true
		}
	}
	return false
}

// Len returns the number of selected seats.
func (s *Selection) Len() int {
	return len(s.seats)
}

// Seats returns a snapshot of the current selection. Callers receive a full
// replacement slice, never a delta, so each report fully supersedes the
// previous one.
func (s *Selection) Seats() []Seat {
	snapshot := make([]Seat, len(s.seats))
	copy(snapshot, s.seats)
	return snapshot
}

// TotalPrice sums the prices of all selected seats.
func (s *Selection) TotalPrice() float64 {
	var total float64
	for _, seat := range s.seats {
		total += seat.Price
	}
	return total
}

// Clear empties the selection, used when the booking flow resets or
// completes.
func (s *Selection) Clear() {
	s.seats = nil
}

// DisplayStatus resolves the status to render for a seat: "SELECTED" when
// the seat is in the current selection, otherwise the stored status. The
// result is never persisted.
func DisplayStatus(seat Seat, selection *Selection) SeatStatus {
	if selection != nil && selection.Contains(seat.ID) {
		return SeatStatusSelected
	}
	return seat.Status
}
