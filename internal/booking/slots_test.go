package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFreeSlots(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2026, 2, 8, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		open   string
		close  string
		booked []Interval
		want   []Slot
	}{
		{
			name:   "no bookings, full day available",
			open:   "09:00",
			close:  "18:00",
			booked: nil,
			want:   []Slot{{Start: at(9, 0), End: at(18, 0)}},
		},
		{
			name:  "one booking in the middle",
			open:  "09:00",
			close: "18:00",
			booked: []Interval{
				{Start: at(12, 0), End: at(13, 0)},
			},
			want: []Slot{
				{Start: at(9, 0), End: at(12, 0)},
				{Start: at(13, 0), End: at(18, 0)},
			},
		},
		{
			name:  "accepts HH:MM:SS clock values",
			open:  "09:00:00",
			close: "18:00:00",
			booked: []Interval{
				{Start: at(9, 0), End: at(10, 30)},
			},
			want: []Slot{{Start: at(10, 30), End: at(18, 0)}},
		},
		{
			name:  "booking spilling past close is clamped",
			open:  "09:00",
			close: "18:00",
			booked: []Interval{
				{Start: at(17, 0), End: at(20, 0)},
			},
			want: []Slot{{Start: at(9, 0), End: at(17, 0)}},
		},
		{
			name:  "booking entirely outside open hours is ignored",
			open:  "09:00",
			close: "18:00",
			booked: []Interval{
				{Start: at(6, 0), End: at(8, 0)},
			},
			want: []Slot{{Start: at(9, 0), End: at(18, 0)}},
		},
		{
			name:  "overlapping bookings merge",
			open:  "09:00",
			close: "18:00",
			booked: []Interval{
				{Start: at(10, 0), End: at(12, 0)},
				{Start: at(11, 0), End: at(13, 0)},
			},
			want: []Slot{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(13, 0), End: at(18, 0)},
			},
		},
		{
			name:  "unsorted input",
			open:  "09:00",
			close: "18:00",
			booked: []Interval{
				{Start: at(15, 0), End: at(16, 0)},
				{Start: at(10, 0), End: at(11, 0)},
			},
			want: []Slot{
				{Start: at(9, 0), End: at(10, 0)},
				{Start: at(11, 0), End: at(15, 0)},
				{Start: at(16, 0), End: at(18, 0)},
			},
		},
		{
			name:  "fully booked day",
			open:  "09:00",
			close: "18:00",
			booked: []Interval{
				{Start: at(9, 0), End: at(18, 0)},
			},
			want: []Slot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFreeSlots(day, tt.open, tt.close, tt.booked)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeFreeSlotsInvalidClock(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	_, err := ComputeFreeSlots(day, "nonsense", "18:00", nil)
	assert.Error(t, err)

	_, err = ComputeFreeSlots(day, "09:00", "25:00", nil)
	assert.Error(t, err)
}
