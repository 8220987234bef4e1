package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLayout_Defaults(t *testing.T) {
	layout, err := GenerateLayout(LayoutConfig{})
	require.NoError(t, err)

	assert.Len(t, layout.Rows, DefaultRows)
	assert.Equal(t, DefaultRows*DefaultSeatsPerRow, layout.TotalSeats())

	// First two rows VIP, next two premium, rest regular.
	assert.Equal(t, SeatTypeVIP, layout.Rows[0][0].Type)
	assert.Equal(t, SeatTypeVIP, layout.Rows[1][5].Type)
	assert.Equal(t, SeatTypePremium, layout.Rows[2][0].Type)
	assert.Equal(t, SeatTypePremium, layout.Rows[3][11].Type)
	assert.Equal(t, SeatTypeRegular, layout.Rows[4][0].Type)
	assert.Equal(t, SeatTypeRegular, layout.Rows[9][0].Type)
}

func TestGenerateLayout_Deterministic(t *testing.T) {
	cfg := LayoutConfig{Rows: 6, SeatsPerRow: 8, OccupiedSeats: []string{"B2", "C7"}}

	first, err := GenerateLayout(cfg)
	require.NoError(t, err)
	second, err := GenerateLayout(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
}

func TestGenerateLayout_TypesAndOccupancy(t *testing.T) {
	layout, err := GenerateLayout(LayoutConfig{
		Rows:          10,
		SeatsPerRow:   12,
		VIPRows:       []int{0, 1},
		PremiumRows:   []int{},
		OccupiedSeats: []string{"A3"},
	})
	require.NoError(t, err)

	a3, ok := layout.Seat("A3")
	require.True(t, ok)
	assert.Equal(t, SeatTypeVIP, a3.Type)
	assert.Equal(t, SeatStatusOccupied, a3.Status)
	assert.Equal(t, float64(199), a3.Price)

	c5, ok := layout.Seat("C5")
	require.True(t, ok)
	assert.Equal(t, SeatTypeRegular, c5.Type)
	assert.Equal(t, SeatStatusAvailable, c5.Status)
	assert.Equal(t, float64(99), c5.Price)
}

func TestGenerateLayout_VIPWinsOverPremium(t *testing.T) {
	layout, err := GenerateLayout(LayoutConfig{
		Rows:        4,
		SeatsPerRow: 4,
		VIPRows:     []int{1},
		PremiumRows: []int{1, 2},
	})
	require.NoError(t, err)

	assert.Equal(t, SeatTypeVIP, layout.Rows[1][0].Type)
	assert.Equal(t, SeatTypePremium, layout.Rows[2][0].Type)
}

func TestGenerateLayout_AisleBreaks(t *testing.T) {
	layout, err := GenerateLayout(LayoutConfig{Rows: 1, SeatsPerRow: 12, AisleAfter: []int{3, 8}})
	require.NoError(t, err)

	row := layout.Rows[0]
	assert.True(t, row[2].HasAisleAfter)  // seat 3
	assert.True(t, row[7].HasAisleAfter)  // seat 8
	assert.False(t, row[0].HasAisleAfter) // seat 1
	assert.False(t, row[11].HasAisleAfter)
}

func TestGenerateLayout_UniqueIDs(t *testing.T) {
	layout, err := GenerateLayout(LayoutConfig{Rows: 30, SeatsPerRow: 10, VIPRows: []int{}, PremiumRows: []int{}, AisleAfter: []int{}})
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, row := range layout.Rows {
		for _, seat := range row {
			assert.False(t, seen[seat.ID], "duplicate seat id %s", seat.ID)
			seen[seat.ID] = true
		}
	}
	assert.Len(t, seen, 300)
}

func TestGenerateLayout_InvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  LayoutConfig
	}{
		{"negative rows", LayoutConfig{Rows: -1}},
		{"negative seats per row", LayoutConfig{SeatsPerRow: -3}},
		{"aisle outside row", LayoutConfig{Rows: 2, SeatsPerRow: 4, AisleAfter: []int{5}}},
		{"vip row out of range", LayoutConfig{Rows: 2, SeatsPerRow: 4, VIPRows: []int{7}, PremiumRows: []int{}, AisleAfter: []int{}}},
		{"premium row negative", LayoutConfig{Rows: 2, SeatsPerRow: 4, VIPRows: []int{}, PremiumRows: []int{-1}, AisleAfter: []int{}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateLayout(tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "A", RowLabel(0))
	assert.Equal(t, "Z", RowLabel(25))
	assert.Equal(t, "AA", RowLabel(26))
	assert.Equal(t, "AB", RowLabel(27))
	assert.Equal(t, "AZ", RowLabel(51))
	assert.Equal(t, "BA", RowLabel(52))
}
