package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playcourt/booking-backend/internal/coach"
	"github.com/playcourt/booking-backend/internal/court"
	"github.com/playcourt/booking-backend/internal/equipment"
	"github.com/playcourt/booking-backend/internal/pricing"
)

// --- fakes ---

type fakeStore struct {
	mu       sync.Mutex
	bookings []*Booking
	nextID   int
}

func (s *fakeStore) Create(_ context.Context, b *Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = fmt.Sprintf("booking-%d", s.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	s.bookings = append(s.bookings, &clone)
	return nil
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			clone := *b
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Booking
	for _, b := range s.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.CourtID != "" && b.CourtID != filter.CourtID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			b.Status = status
			return nil
		}
	}
	return ErrNotFound
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func overlaps(b *Booking, start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

func (s *fakeStore) HasCourtOverlap(_ context.Context, courtID string, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.CourtID == courtID && b.Status == StatusConfirmed && overlaps(b, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) HasCoachOverlap(_ context.Context, coachID string, start, end time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.CoachID != nil && *b.CoachID == coachID && b.Status == StatusConfirmed && overlaps(b, start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) EquipmentReservedQty(_ context.Context, equipmentID string, start, end time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	used := 0
	for _, b := range s.bookings {
		if b.Status != StatusConfirmed || !overlaps(b, start, end) {
			continue
		}
		for _, line := range b.Equipment {
			if line.EquipmentID == equipmentID {
				used += line.Quantity
			}
		}
	}
	return used, nil
}

func (s *fakeStore) ListConfirmedForCourtBetween(_ context.Context, courtID string, from, to time.Time) ([]*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Booking
	for _, b := range s.bookings {
		if b.CourtID == courtID && b.Status == StatusConfirmed && overlaps(b, from, to) {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

type fakeCourtRepo struct {
	mu      sync.Mutex
	courts  map[string]*court.Court
	touched int
}

func (r *fakeCourtRepo) Create(_ context.Context, _ *court.Court) error { return nil }
func (r *fakeCourtRepo) Update(_ context.Context, _ *court.Court) error { return nil }
func (r *fakeCourtRepo) Delete(_ context.Context, _ string) error       { return nil }
func (r *fakeCourtRepo) List(_ context.Context, _ court.Filter) ([]*court.Court, int, error) {
	return nil, 0, nil
}

func (r *fakeCourtRepo) GetByID(_ context.Context, id string) (*court.Court, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courts[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, court.ErrNotFound
}

func (r *fakeCourtRepo) TouchLastBooking(_ context.Context, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched++
	return nil
}

func (r *fakeCourtRepo) touchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touched
}

type fakeCoachRepo struct {
	coaches map[string]*coach.Coach
}

func (r *fakeCoachRepo) Create(_ context.Context, _ *coach.Coach) error { return nil }
func (r *fakeCoachRepo) Update(_ context.Context, _ *coach.Coach) error { return nil }
func (r *fakeCoachRepo) Delete(_ context.Context, _ string) error       { return nil }
func (r *fakeCoachRepo) List(_ context.Context, _ coach.Filter) ([]*coach.Coach, int, error) {
	return nil, 0, nil
}

func (r *fakeCoachRepo) GetByID(_ context.Context, id string) (*coach.Coach, error) {
	if c, ok := r.coaches[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, coach.ErrNotFound
}

type fakeEquipmentRepo struct {
	items map[string]*equipment.Equipment
}

func (r *fakeEquipmentRepo) Create(_ context.Context, _ *equipment.Equipment) error { return nil }
func (r *fakeEquipmentRepo) Update(_ context.Context, _ *equipment.Equipment) error { return nil }
func (r *fakeEquipmentRepo) Delete(_ context.Context, _ string) error               { return nil }
func (r *fakeEquipmentRepo) List(_ context.Context, _ equipment.Filter) ([]*equipment.Equipment, int, error) {
	return nil, 0, nil
}

func (r *fakeEquipmentRepo) GetByID(_ context.Context, id string) (*equipment.Equipment, error) {
	if e, ok := r.items[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, equipment.ErrNotFound
}

type fakeRuleRepo struct {
	rules []*pricing.Rule
}

func (r *fakeRuleRepo) Create(_ context.Context, _ *pricing.Rule) error { return nil }
func (r *fakeRuleRepo) Update(_ context.Context, _ *pricing.Rule) error { return nil }
func (r *fakeRuleRepo) Delete(_ context.Context, _ string) error        { return nil }
func (r *fakeRuleRepo) GetByID(_ context.Context, _ string) (*pricing.Rule, error) {
	return nil, pricing.ErrRuleNotFound
}

func (r *fakeRuleRepo) List(_ context.Context) ([]*pricing.Rule, error) { return r.rules, nil }

func (r *fakeRuleRepo) ListActive(_ context.Context) ([]*pricing.Rule, error) {
	var active []*pricing.Rule
	for _, rule := range r.rules {
		if rule.Active {
			active = append(active, rule)
		}
	}
	return active, nil
}

// lockingTx serializes transaction bodies under one mutex, the in-memory
// stand-in for SERIALIZABLE isolation: no two bodies ever interleave.
type lockingTx struct {
	mu sync.Mutex
}

func (t *lockingTx) RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

// failingTx rejects every transaction with a fixed error.
type failingTx struct {
	err error
}

func (t *failingTx) RunSerializable(_ context.Context, _ func(ctx context.Context) error) error {
	return t.err
}

// --- fixture ---

type fixture struct {
	service   Service
	store     *fakeStore
	courtRepo *fakeCourtRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	courtRepo := &fakeCourtRepo{courts: map[string]*court.Court{
		"court-1": {
			ID:        "court-1",
			Name:      "Center Court",
			Type:      "Indoor",
			Active:    true,
			BasePrice: 1000,
			OpenTime:  "08:00",
			CloseTime: "22:00",
		},
		"court-2": {
			ID:        "court-2",
			Name:      "Side Court",
			Type:      "Outdoor",
			Active:    true,
			BasePrice: 600,
			OpenTime:  "08:00",
			CloseTime: "22:00",
		},
		"court-3": {
			ID:        "court-3",
			Name:      "Back Court",
			Type:      "Outdoor",
			Active:    true,
			BasePrice: 600,
			OpenTime:  "08:00",
			CloseTime: "22:00",
		},
		"court-closed": {
			ID:        "court-closed",
			Name:      "Closed Court",
			Type:      "Indoor",
			Active:    false,
			BasePrice: 1000,
			OpenTime:  "08:00",
			CloseTime: "22:00",
		},
	}}
	coachRepo := &fakeCoachRepo{coaches: map[string]*coach.Coach{
		"coach-1": {
			ID:         "coach-1",
			Name:       "Alex",
			HourlyRate: 500,
			Active:     true,
		},
		"coach-retired": {
			ID:         "coach-retired",
			Name:       "Sam",
			HourlyRate: 500,
			Active:     false,
		},
	}}
	equipmentRepo := &fakeEquipmentRepo{items: map[string]*equipment.Equipment{
		"racket": {
			ID:           "racket",
			Name:         "Racket",
			TotalCount:   2,
			PricePerUnit: 100,
			Active:       true,
		},
		"balls": {
			ID:           "balls",
			Name:         "Ball Tube",
			TotalCount:   10,
			PricePerUnit: 20,
			Active:       true,
		},
		"broken": {
			ID:           "broken",
			Name:         "Retired Net",
			TotalCount:   5,
			PricePerUnit: 10,
			Active:       false,
		},
	}}
	ruleRepo := &fakeRuleRepo{rules: []*pricing.Rule{
		{
			ID:       "r1",
			Name:     "peak hours",
			Active:   true,
			Kind:     pricing.KindMultiplier,
			Value:    1.2,
			Window:   &pricing.TimeWindow{Start: "18:00", End: "21:00"},
			Priority: 100,
		},
	}}

	store := &fakeStore{}
	pricingSvc := pricing.NewService(ruleRepo, courtRepo)
	svc := NewService(store, courtRepo, coachRepo, equipmentRepo, pricingSvc, &lockingTx{})

	return &fixture{service: svc, store: store, courtRepo: courtRepo}
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC)
}

// --- tests ---

func TestCreateBookingSuccess(t *testing.T) {
	f := newFixture(t)
	coachID := "coach-1"

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(19, 0),
		EndTime:   at(20, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.Equal(t, "Center Court", b.CourtName)

	// 1000 * 1.2 peak = 1200, rackets 2*100 = 200, coach 1h * 500 = 500.
	assert.Equal(t, 1000.0, b.Breakdown.BasePrice)
	assert.Equal(t, 1200.0, b.Breakdown.PriceAfterRules)
	require.Len(t, b.Breakdown.RuleAdjustments, 1)
	assert.Equal(t, "peak hours", b.Breakdown.RuleAdjustments[0].RuleName)
	assert.Equal(t, 200.0, b.Breakdown.RuleAdjustments[0].AppliedAmount)
	assert.Equal(t, 200.0, b.Breakdown.EquipmentFee)
	assert.Equal(t, 500.0, b.Breakdown.CoachFee)
	assert.Equal(t, 1900.0, b.Breakdown.Total)

	require.Len(t, b.Equipment, 1)
	assert.Equal(t, "Racket", b.Equipment[0].EquipmentName)
	assert.Equal(t, 100.0, b.Equipment[0].UnitPrice)

	stored, err := f.service.GetByID(context.Background(), b.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, b.Breakdown.Total, stored.Breakdown.Total)

	// The advisory court touch happens after commit, off the request path.
	assert.Eventually(t, func() bool {
		return f.courtRepo.touchCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCreateOffPeakSkipsRules(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(9, 0),
		EndTime:   at(10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, b.Breakdown.PriceAfterRules)
	assert.Empty(t, b.Breakdown.RuleAdjustments)
	assert.Equal(t, 1000.0, b.Breakdown.Total)
}

func TestCreateInvalidTimeRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(12, 0),
		EndTime:   at(11, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(12, 0),
		EndTime:   at(12, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestCreateInactiveCourt(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-closed",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	assert.ErrorIs(t, err, court.ErrCourtInactive)
}

func TestCreateCourtConflict(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(12, 0),
	})
	require.NoError(t, err)

	// Partial overlap is still a conflict.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-1",
		StartTime: at(11, 0),
		EndTime:   at(13, 0),
	})
	assert.ErrorIs(t, err, ErrCourtNotAvailable)

	// Back-to-back bookings touch but do not overlap.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-1",
		StartTime: at(12, 0),
		EndTime:   at(13, 0),
	})
	assert.NoError(t, err)

	// A different court is unaffected.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-2",
		StartTime: at(10, 0),
		EndTime:   at(12, 0),
	})
	assert.NoError(t, err)
}

func TestCreateCoachConflict(t *testing.T) {
	f := newFixture(t)
	coachID := "coach-1"

	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	require.NoError(t, err)

	// Same coach on a different court at the same time.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-2",
		CoachID:   &coachID,
		StartTime: at(10, 30),
		EndTime:   at(11, 30),
	})
	assert.ErrorIs(t, err, ErrCoachNotAvailable)
}

func TestCreateInactiveCoach(t *testing.T) {
	f := newFixture(t)
	coachID := "coach-retired"

	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	assert.ErrorIs(t, err, ErrCoachNotAvailable)

	_, total, err := f.service.List(context.Background(), Filter{}, "admin", true)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateEquipmentCapacity(t *testing.T) {
	f := newFixture(t)

	// First booking holds 1 of the 2 rackets for 10:00-12:00.
	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(12, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 1}},
	})
	require.NoError(t, err)

	// 2 more would exceed the stock of 2 while the window overlaps.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-2",
		StartTime: at(11, 0),
		EndTime:   at(13, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrEquipmentNotAvailable)

	// The remaining single racket is fine.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-2",
		StartTime: at(11, 0),
		EndTime:   at(13, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 1}},
	})
	assert.NoError(t, err)

	// Both rackets are now held over 11:00-12:00; a third booking on yet
	// another court overlapping that window cannot get even one.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-3",
		CourtID:   "court-3",
		StartTime: at(11, 0),
		EndTime:   at(12, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrEquipmentNotAvailable)

	// Outside the held window the full stock is available again.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-3",
		CourtID:   "court-1",
		StartTime: at(14, 0),
		EndTime:   at(15, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	assert.NoError(t, err)
}

func TestCreateEquipmentAllOrNothing(t *testing.T) {
	f := newFixture(t)

	// "balls" would fit, "racket" would not: the whole booking is rejected
	// and nothing is persisted.
	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Equipment: []EquipmentRequest{
			{EquipmentID: "balls", Quantity: 3},
			{EquipmentID: "racket", Quantity: 5},
		},
	})
	assert.ErrorIs(t, err, ErrEquipmentNotAvailable)

	_, total, err := f.service.List(context.Background(), Filter{}, "admin", true)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateInactiveEquipment(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "broken", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrEquipmentNotAvailable)
}

func TestCoachFeeMinimumOneHour(t *testing.T) {
	f := newFixture(t)
	coachID := "coach-1"

	// 45 minutes bills as a full hour.
	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(10, 0),
		EndTime:   at(10, 45),
	})
	require.NoError(t, err)
	assert.Equal(t, 500.0, b.Breakdown.CoachFee)

	// 90 minutes bills pro rata.
	b, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(14, 0),
		EndTime:   at(15, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, 750.0, b.Breakdown.CoachFee)
}

func TestCreateSerializationFailureMapsToConflict(t *testing.T) {
	f := newFixture(t)

	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	svc := NewService(f.store, f.courtRepo, &fakeCoachRepo{}, &fakeEquipmentRepo{},
		pricing.NewService(&fakeRuleRepo{}, f.courtRepo), &failingTx{err: pgErr})

	_, err := svc.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	assert.ErrorIs(t, err, ErrTxConflict)

	svc = NewService(f.store, f.courtRepo, &fakeCoachRepo{}, &fakeEquipmentRepo{},
		pricing.NewService(&fakeRuleRepo{}, f.courtRepo), &failingTx{err: context.DeadlineExceeded})
	_, err = svc.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	assert.ErrorIs(t, err, ErrTxConflict)
}

func TestCancelFreesCapacity(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(context.Background(), b.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// The court and the full racket stock are available again.
	_, err = f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-2",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	assert.NoError(t, err)
}

func TestCancelPermissions(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	require.NoError(t, err)

	_, err = f.service.Cancel(context.Background(), b.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Admins may cancel anyone's booking, and cancelling twice is a no-op.
	cancelled, err := f.service.Cancel(context.Background(), b.ID, "admin-user", true)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	again, err := f.service.Cancel(context.Background(), b.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, again.Status)
}

func TestCreateSkipsZeroQuantityItems(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
		Equipment: []EquipmentRequest{
			{EquipmentID: "racket", Quantity: 0},
			{EquipmentID: "balls", Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, b.Equipment, 1)
	assert.Equal(t, "balls", b.Equipment[0].EquipmentID)
	assert.Equal(t, 40.0, b.Breakdown.EquipmentFee)
}

func TestDeleteOwnership(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	require.NoError(t, err)

	err = f.service.Delete(context.Background(), b.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, f.service.Delete(context.Background(), b.ID, "user-1", false))

	_, err = f.service.GetByID(context.Background(), b.ID, "user-1", false)
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.service.Delete(context.Background(), "missing", "user-1", true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByIDOwnership(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(10, 0),
		EndTime:   at(11, 0),
	})
	require.NoError(t, err)

	_, err = f.service.GetByID(context.Background(), b.ID, "user-2", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	got, err := f.service.GetByID(context.Background(), b.ID, "user-2", true)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestListScopesToOwnerUnlessAdmin(t *testing.T) {
	f := newFixture(t)

	for i, user := range []string{"user-1", "user-2"} {
		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:    user,
			CourtID:   "court-1",
			StartTime: at(10+i, 0),
			EndTime:   at(11+i, 0),
		})
		require.NoError(t, err)
	}

	mine, total, err := f.service.List(context.Background(), Filter{}, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "user-1", mine[0].UserID)

	_, total, err = f.service.List(context.Background(), Filter{}, "user-1", true)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestQuoteMatchesCreate(t *testing.T) {
	f := newFixture(t)
	coachID := "coach-1"

	quote, err := f.service.Quote(context.Background(), QuoteRequest{
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(19, 0),
		EndTime:   at(20, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	require.NoError(t, err)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		CoachID:   &coachID,
		StartTime: at(19, 0),
		EndTime:   at(20, 0),
		Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, *quote, b.Breakdown)
}

func TestConcurrentCreatesExactlyOneWins(t *testing.T) {
	f := newFixture(t)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Create(context.Background(), CreateRequest{
				UserID:    fmt.Sprintf("user-%d", i),
				CourtID:   "court-1",
				StartTime: at(10, 0),
				EndTime:   at(11, 0),
				Equipment: []EquipmentRequest{{EquipmentID: "racket", Quantity: 2}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCourtNotAvailable)
		}
	}
	assert.Equal(t, 1, succeeded)

	_, total, err := f.service.List(context.Background(), Filter{}, "admin", true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestFreeSlotsExcludeCancelled(t *testing.T) {
	f := newFixture(t)

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:    "user-1",
		CourtID:   "court-1",
		StartTime: at(12, 0),
		EndTime:   at(13, 0),
	})
	require.NoError(t, err)

	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := f.service.FreeSlots(context.Background(), "court-1", day)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, at(12, 0), slots[0].End)
	assert.Equal(t, at(13, 0), slots[1].Start)

	_, err = f.service.Cancel(context.Background(), b.ID, "user-1", false)
	require.NoError(t, err)

	slots, err = f.service.FreeSlots(context.Background(), "court-1", day)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(22, 0), slots[0].End)
}
