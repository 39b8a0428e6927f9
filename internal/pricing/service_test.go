package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playcourt/booking-backend/internal/court"
)

type memRuleRepo struct {
	rules  map[string]*Rule
	nextID int
}

func newMemRuleRepo() *memRuleRepo {
	return &memRuleRepo{rules: map[string]*Rule{}}
}

func (r *memRuleRepo) Create(_ context.Context, rule *Rule) error {
	r.nextID++
	rule.ID = string(rune('a' + r.nextID))
	rule.CreatedAt = time.Now()
	clone := *rule
	r.rules[rule.ID] = &clone
	return nil
}

func (r *memRuleRepo) GetByID(_ context.Context, id string) (*Rule, error) {
	if rule, ok := r.rules[id]; ok {
		clone := *rule
		return &clone, nil
	}
	return nil, ErrRuleNotFound
}

func (r *memRuleRepo) List(_ context.Context) ([]*Rule, error) {
	var out []*Rule
	for _, rule := range r.rules {
		clone := *rule
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memRuleRepo) Update(_ context.Context, rule *Rule) error {
	if _, ok := r.rules[rule.ID]; !ok {
		return ErrRuleNotFound
	}
	clone := *rule
	r.rules[rule.ID] = &clone
	return nil
}

func (r *memRuleRepo) Delete(_ context.Context, id string) error {
	delete(r.rules, id)
	return nil
}

func (r *memRuleRepo) ListActive(_ context.Context) ([]*Rule, error) {
	var out []*Rule
	for _, rule := range r.rules {
		if rule.Active {
			clone := *rule
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubCourtRepo struct {
	courts map[string]*court.Court
}

func (r *stubCourtRepo) Create(_ context.Context, _ *court.Court) error     { return nil }
func (r *stubCourtRepo) Update(_ context.Context, _ *court.Court) error     { return nil }
func (r *stubCourtRepo) Delete(_ context.Context, _ string) error           { return nil }
func (r *stubCourtRepo) TouchLastBooking(_ context.Context, _ string) error { return nil }
func (r *stubCourtRepo) List(_ context.Context, _ court.Filter) ([]*court.Court, int, error) {
	return nil, 0, nil
}

func (r *stubCourtRepo) GetByID(_ context.Context, id string) (*court.Court, error) {
	if c, ok := r.courts[id]; ok {
		return c, nil
	}
	return nil, court.ErrNotFound
}

func newTestService() (Service, *memRuleRepo) {
	repo := newMemRuleRepo()
	courts := &stubCourtRepo{courts: map[string]*court.Court{
		"court-1": {ID: "court-1", Type: "Indoor", BasePrice: 1000, Active: true},
	}}
	return NewService(repo, courts), repo
}

func TestCreateRuleValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, CreateRuleRequest{Name: "  ", Kind: KindFixed, Value: 10})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.CreateRule(ctx, CreateRuleRequest{Name: "x", Kind: "percentage", Value: 10})
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = svc.CreateRule(ctx, CreateRuleRequest{Name: "x", Kind: KindMultiplier, Value: 0})
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = svc.CreateRule(ctx, CreateRuleRequest{
		Name:   "x",
		Kind:   KindFixed,
		Value:  10,
		Window: &TimeWindow{Start: "20:00", End: "18:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	// Negative fixed adjustments are discounts and are allowed.
	rule, err := svc.CreateRule(ctx, CreateRuleRequest{Name: "member discount", Kind: KindFixed, Value: -50})
	require.NoError(t, err)
	assert.True(t, rule.Active)
	assert.Equal(t, defaultPriority, rule.Priority)
}

func TestUpdateRule(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rule, err := svc.CreateRule(ctx, CreateRuleRequest{
		Name:   "peak",
		Kind:   KindMultiplier,
		Value:  1.2,
		Window: &TimeWindow{Start: "18:00", End: "21:00"},
	})
	require.NoError(t, err)

	inactive := false
	newValue := 1.5
	updated, err := svc.UpdateRule(ctx, rule.ID, UpdateRuleRequest{
		Active: &inactive,
		Value:  &newValue,
	})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, 1.5, updated.Value)
	assert.NotNil(t, updated.Window)

	updated, err = svc.UpdateRule(ctx, rule.ID, UpdateRuleRequest{ClearWindow: true})
	require.NoError(t, err)
	assert.Nil(t, updated.Window)

	_, err = svc.UpdateRule(ctx, "missing", UpdateRuleRequest{})
	assert.ErrorIs(t, err, ErrRuleNotFound)
}

func TestQuoteForCourtUsesActiveRulesOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateRule(ctx, CreateRuleRequest{Name: "always on", Kind: KindFixed, Value: 100})
	require.NoError(t, err)

	off := false
	_, err = svc.CreateRule(ctx, CreateRuleRequest{Name: "switched off", Active: &off, Kind: KindFixed, Value: 9999})
	require.NoError(t, err)

	quote, err := svc.QuoteForCourt(ctx, "court-1", time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1100.0, quote.PriceAfterRules)
	require.Len(t, quote.Adjustments, 1)
	assert.Equal(t, "always on", quote.Adjustments[0].RuleName)

	_, err = svc.QuoteForCourt(ctx, "missing", time.Now())
	assert.ErrorIs(t, err, court.ErrNotFound)
}
