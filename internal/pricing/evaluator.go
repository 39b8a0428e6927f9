package pricing

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Evaluate applies the given rules to a court's base price for a booking
// starting at start. Rules are evaluated in priority-descending order (stable
// for ties) and compound sequentially: each rule sees the price produced by
// the rules before it. The caller passes every candidate rule; inactive and
// out-of-scope rules are skipped here so the preview and commit paths share
// one filter.
//
// Pure function: no I/O, deterministic for identical inputs.
func Evaluate(basePrice float64, courtID, courtType string, start time.Time, rules []Rule) Quote {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})

	startMins := start.UTC().Hour()*60 + start.UTC().Minute()

	price := basePrice
	adjustments := make([]Adjustment, 0)

	for _, r := range ordered {
		if !r.Active {
			continue
		}
		if len(r.CourtTypes) > 0 && !contains(r.CourtTypes, courtType) {
			continue
		}
		if len(r.CourtIDs) > 0 && !contains(r.CourtIDs, courtID) {
			continue
		}
		if r.Window != nil {
			ws := clockToMinutes(r.Window.Start)
			we := clockToMinutes(r.Window.End)
			// Window end is exclusive; windows never wrap midnight.
			if startMins < ws || startMins >= we {
				continue
			}
		}

		var applied float64
		switch r.Kind {
		case KindMultiplier:
			applied = price * (r.Value - 1)
			price = price * r.Value
		case KindFixed:
			applied = r.Value
			price = price + r.Value
		default:
			continue
		}

		adjustments = append(adjustments, Adjustment{
			RuleName:      r.Name,
			Kind:          r.Kind,
			Value:         r.Value,
			AppliedAmount: Round2(applied),
		})
	}

	return Quote{
		BasePrice:       basePrice,
		PriceAfterRules: Round2(price),
		Adjustments:     adjustments,
	}
}

// Round2 rounds to 2 decimal places, the precision of every persisted amount.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// clockToMinutes parses "HH:MM" into minutes since midnight. Malformed parts
// count as zero, matching lenient parsing of stored rule windows.
func clockToMinutes(clock string) int {
	hh, mm, _ := strings.Cut(clock, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
