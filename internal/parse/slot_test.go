package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  string
		expectErr bool
	}{
		{name: "Canonical", raw: "09:00", expected: "09:00"},
		{name: "Bare hour", raw: "9", expected: "09:00"},
		{name: "Padded hour", raw: "09", expected: "09:00"},
		{name: "Midnight", raw: "00:00", expected: "00:00"},
		{name: "Last slot", raw: "23:00", expected: "23:00"},
		{name: "Surrounding spaces", raw: "  14:00 ", expected: "14:00"},
		{name: "Hour out of range", raw: "24:00", expectErr: true},
		{name: "Half hour", raw: "09:30", expectErr: true},
		{name: "Empty", raw: "", expectErr: true},
		{name: "Garbage", raw: "noon", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Slot(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)

	d, err := Date("2026-10-15", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, loc), d)

	_, err = Date("15/10/2026", loc)
	assert.Error(t, err)
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("EDT", -4*3600)

	// 02:30 UTC on the 16th is still the 15th in Montreal.
	instant := time.Date(2026, time.October, 16, 2, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.October, 15, 0, 0, 0, 0, loc), Midnight(instant, loc))
}
