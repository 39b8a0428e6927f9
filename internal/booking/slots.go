package booking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Interval is a half-open [Start, End) time range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is a free interval within a court's bookable day.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// parseClock accepts "HH:MM" or "HH:MM:SS" and returns minutes from midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

// ComputeFreeSlots returns the gaps between booked intervals inside the
// court's open hours on the given day. dayStart must be midnight UTC of the
// day in question. Booked intervals are clamped to the open window; intervals
// entirely outside it are ignored.
func ComputeFreeSlots(dayStart time.Time, openClock, closeClock string, booked []Interval) ([]Slot, error) {
	openMins, err := parseClock(openClock)
	if err != nil {
		return nil, err
	}
	closeMins, err := parseClock(closeClock)
	if err != nil {
		return nil, err
	}

	open := dayStart.Add(time.Duration(openMins) * time.Minute)
	close := dayStart.Add(time.Duration(closeMins) * time.Minute)
	if !open.Before(close) {
		return []Slot{}, nil
	}

	clamped := make([]Interval, 0, len(booked))
	for _, iv := range booked {
		start, end := iv.Start, iv.End
		if start.Before(open) {
			start = open
		}
		if end.After(close) {
			end = close
		}
		if start.Before(end) {
			clamped = append(clamped, Interval{Start: start, End: end})
		}
	}
	sort.Slice(clamped, func(i, j int) bool {
		return clamped[i].Start.Before(clamped[j].Start)
	})

	slots := []Slot{}
	cursor := open
	for _, iv := range clamped {
		if iv.Start.After(cursor) {
			slots = append(slots, Slot{Start: cursor, End: iv.Start})
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if cursor.Before(close) {
		slots = append(slots, Slot{Start: cursor, End: close})
	}
	return slots, nil
}
