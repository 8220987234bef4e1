package seatmap

import (
	"fmt"
)

// Default layout dimensions, matching the standard theater template.
const (
	DefaultRows        = 10
	DefaultSeatsPerRow = 12
)

// LayoutConfig describes how a venue seating grid is generated. All fields
// are optional; zero values fall back to the defaults below. Distinguish
// "not set" (nil slice) from "explicitly empty" for the list fields.
type LayoutConfig struct {
	Rows          int      `json:"rows"`
	SeatsPerRow   int      `json:"seats_per_row"`
	AisleAfter    []int    `json:"aisle_after"`    // seat numbers after which a gap renders
	VIPRows       []int    `json:"vip_rows"`       // zero-based row indices
	PremiumRows   []int    `json:"premium_rows"`   // zero-based row indices
	OccupiedSeats []string `json:"occupied_seats"` // seat ids pre-marked occupied
}

// DefaultLayoutConfig returns the standard 10x12 theater configuration with
// two VIP rows, two premium rows and aisles after seats 3 and 8.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Rows:        DefaultRows,
		SeatsPerRow: DefaultSeatsPerRow,
		AisleAfter:  []int{3, 8},
		VIPRows:     []int{0, 1},
		PremiumRows: []int{2, 3},
	}
}

// withDefaults fills unset fields from DefaultLayoutConfig. Defaulted row
// and aisle lists are trimmed to the configured grid so a small custom grid
// with defaulted tier rows still validates; explicit values are not trimmed.
func (c LayoutConfig) withDefaults() LayoutConfig {
	def := DefaultLayoutConfig()
	if c.Rows == 0 {
		c.Rows = def.Rows
	}
	if c.SeatsPerRow == 0 {
		c.SeatsPerRow = def.SeatsPerRow
	}
	if c.AisleAfter == nil {
		c.AisleAfter = trimToRange(def.AisleAfter, 1, c.SeatsPerRow)
	}
	if c.VIPRows == nil {
		c.VIPRows = trimToRange(def.VIPRows, 0, c.Rows-1)
	}
	if c.PremiumRows == nil {
		c.PremiumRows = trimToRange(def.PremiumRows, 0, c.Rows-1)
	}
	return c
}

func trimToRange(nums []int, lo, hi int) []int {
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if n >= lo && n <= hi {
			out = append(out, n)
		}
	}
	return out
}

// Validate rejects malformed configurations before generation.
func (c LayoutConfig) Validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("rows must not be negative, got %d", c.Rows)
	}
	if c.SeatsPerRow < 0 {
		return fmt.Errorf("seats per row must not be negative, got %d", c.SeatsPerRow)
	}
	for _, n := range c.AisleAfter {
		if n < 1 || n > c.SeatsPerRow {
			return fmt.Errorf("aisle break %d is outside seat range 1..%d", n, c.SeatsPerRow)
		}
	}
	for _, idx := range c.VIPRows {
		if idx < 0 || idx >= c.Rows {
			return fmt.Errorf("vip row index %d is outside row range 0..%d", idx, c.Rows-1)
		}
	}
	for _, idx := range c.PremiumRows {
		if idx < 0 || idx >= c.Rows {
			return fmt.Errorf("premium row index %d is outside row range 0..%d", idx, c.Rows-1)
		}
	}
	return nil
}

// Layout is the generated seating grid: ordered rows, each an ordered slice
// of seats in seat-number order.
type Layout struct {
	Rows [][]Seat `json:"rows"`

	byID map[string]Seat
}

// GenerateLayout deterministically builds the seating grid for a
// configuration. Row tier precedence is VIP over premium: a row index listed
// in both sets resolves to VIP.
func GenerateLayout(cfg LayoutConfig) (*Layout, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}

	vipRows := toIndexSet(cfg.VIPRows)
	premiumRows := toIndexSet(cfg.PremiumRows)
	aisles := toIndexSet(cfg.AisleAfter)
	occupied := make(map[string]bool, len(cfg.OccupiedSeats))
	for _, id := range cfg.OccupiedSeats {
		occupied[id] = true
	}

	layout := &Layout{
		Rows: make([][]Seat, 0, cfg.Rows),
		byID: make(map[string]Seat, cfg.Rows*cfg.SeatsPerRow),
	}

	for rowIdx := 0; rowIdx < cfg.Rows; rowIdx++ {
		label := RowLabel(rowIdx)

		seatType := SeatTypeRegular
		if vipRows[rowIdx] {
			seatType = SeatTypeVIP
		} else if premiumRows[rowIdx] {
			seatType = SeatTypePremium
		}

		row := make([]Seat, 0, cfg.SeatsPerRow)
		for num := 1; num <= cfg.SeatsPerRow; num++ {
			id := fmt.Sprintf("%s%d", label, num)
			status := SeatStatusAvailable
			if occupied[id] {
				status = SeatStatusOccupied
			}
			row = append(row, Seat{
				ID:            id,
				Row:           label,
				Number:        num,
				Type:          seatType,
				Status:        status,
				Price:         seatType.Price(),
				HasAisleAfter: aisles[num],
			})
		}
		layout.Rows = append(layout.Rows, row)
		for _, seat := range row {
			layout.byID[seat.ID] = seat
		}
	}

	return layout, nil
}

// RowLabel converts a zero-based row index into a stable human-readable
// label: A..Z, then AA, AB, ... so layouts beyond 26 rows never collide.
func RowLabel(index int) string {
	label := ""
	for index >= 0 {
		label = string(rune('A'+index%26)) + label
		index = index/26 - 1
	}
	return label
}

// Seat looks up a generated seat by id.
func (l *Layout) Seat(id string) (Seat, bool) {
	seat, ok := l.byID[id]
	return seat, ok
}

// TotalSeats returns the number of seats in the layout.
func (l *Layout) TotalSeats() int {
	total := 0
	for _, row := range l.Rows {
		total += len(row)
	}
	return total
}

func toIndexSet(nums []int) map[int]bool {
	set := make(map[int]bool, len(nums))
	for _, n := range nums {
		set[n] = true
	}
	return set
}
