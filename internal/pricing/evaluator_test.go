package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(start, end string) *TimeWindow {
	return &TimeWindow{Start: start, End: end}
}

func TestEvaluatePeakHourMultiplier(t *testing.T) {
	rules := []Rule{
		{
			Name:     "peak hours",
			Active:   true,
			Kind:     KindMultiplier,
			Value:    1.2,
			Window:   window("18:00", "21:00"),
			Priority: 100,
		},
	}

	t.Run("inside window", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC)
		q := Evaluate(1000, "court-1", "Indoor", start, rules)

		assert.Equal(t, 1000.0, q.BasePrice)
		assert.Equal(t, 1200.0, q.PriceAfterRules)
		require.Len(t, q.Adjustments, 1)
		assert.Equal(t, "peak hours", q.Adjustments[0].RuleName)
		assert.Equal(t, KindMultiplier, q.Adjustments[0].Kind)
		assert.Equal(t, 200.0, q.Adjustments[0].AppliedAmount)
	})

	t.Run("outside window", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		q := Evaluate(1000, "court-1", "Indoor", start, rules)

		assert.Equal(t, 1000.0, q.PriceAfterRules)
		assert.Empty(t, q.Adjustments)
	})

	t.Run("window end is exclusive", func(t *testing.T) {
		start := time.Date(2026, 3, 2, 21, 0, 0, 0, time.UTC)
		q := Evaluate(1000, "court-1", "Indoor", start, rules)
		assert.Empty(t, q.Adjustments)

		start = time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
		q = Evaluate(1000, "court-1", "Indoor", start, rules)
		assert.Len(t, q.Adjustments, 1)
	})
}

func TestEvaluateScoping(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("court type scope", func(t *testing.T) {
		rules := []Rule{
			{Name: "indoor surcharge", Active: true, Kind: KindFixed, Value: 50,
				CourtTypes: []string{"Indoor"}, Priority: 100},
		}
		q := Evaluate(100, "c1", "Indoor", start, rules)
		assert.Equal(t, 150.0, q.PriceAfterRules)

		q = Evaluate(100, "c1", "Outdoor", start, rules)
		assert.Equal(t, 100.0, q.PriceAfterRules)
	})

	t.Run("court id scope", func(t *testing.T) {
		rules := []Rule{
			{Name: "premium court", Active: true, Kind: KindMultiplier, Value: 2,
				CourtIDs: []string{"c1"}, Priority: 100},
		}
		q := Evaluate(100, "c1", "Indoor", start, rules)
		assert.Equal(t, 200.0, q.PriceAfterRules)

		q = Evaluate(100, "c2", "Indoor", start, rules)
		assert.Equal(t, 100.0, q.PriceAfterRules)
	})

	t.Run("inactive rules are skipped", func(t *testing.T) {
		rules := []Rule{
			{Name: "disabled", Active: false, Kind: KindFixed, Value: 999, Priority: 100},
		}
		q := Evaluate(100, "c1", "Indoor", start, rules)
		assert.Equal(t, 100.0, q.PriceAfterRules)
		assert.Empty(t, q.Adjustments)
	})
}

func TestEvaluatePriorityOrderAndCompounding(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	rules := []Rule{
		{Name: "late fixed", Active: true, Kind: KindFixed, Value: 10, Priority: 10},
		{Name: "early double", Active: true, Kind: KindMultiplier, Value: 2, Priority: 200},
	}

	// Higher priority first: (100 * 2) + 10, not (100 + 10) * 2.
	q := Evaluate(100, "c1", "Indoor", start, rules)
	assert.Equal(t, 210.0, q.PriceAfterRules)
	require.Len(t, q.Adjustments, 2)
	assert.Equal(t, "early double", q.Adjustments[0].RuleName)
	assert.Equal(t, 100.0, q.Adjustments[0].AppliedAmount)
	assert.Equal(t, "late fixed", q.Adjustments[1].RuleName)
	assert.Equal(t, 10.0, q.Adjustments[1].AppliedAmount)
}

func TestEvaluateDeterministic(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	rules := []Rule{
		{Name: "a", Active: true, Kind: KindMultiplier, Value: 1.1, Priority: 100},
		{Name: "b", Active: true, Kind: KindFixed, Value: 25, Priority: 100},
		{Name: "c", Active: true, Kind: KindMultiplier, Value: 0.9, Priority: 50},
	}

	first := Evaluate(300, "c1", "Indoor", start, rules)
	for i := 0; i < 10; i++ {
		q := Evaluate(300, "c1", "Indoor", start, rules)
		assert.Equal(t, first, q)
	}
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	start := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	rules := []Rule{
		{Name: "low", Active: true, Kind: KindFixed, Value: 1, Priority: 1},
		{Name: "high", Active: true, Kind: KindFixed, Value: 2, Priority: 2},
	}

	Evaluate(100, "c1", "Indoor", start, rules)
	assert.Equal(t, "low", rules[0].Name)
	assert.Equal(t, "high", rules[1].Name)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1200.0, Round2(1199.999999))
	assert.Equal(t, 10.55, Round2(10.554))
	assert.Equal(t, 10.56, Round2(10.556))
	assert.Equal(t, -2.5, Round2(-2.5))
}
