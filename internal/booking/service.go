package booking

import (
	"context"
	"log"
	"time"

	"github.com/playcourt/booking-backend/internal/coach"
	"github.com/playcourt/booking-backend/internal/court"
	"github.com/playcourt/booking-backend/internal/db"
	"github.com/playcourt/booking-backend/internal/equipment"
	"github.com/playcourt/booking-backend/internal/pricing"
)

// TxRunner executes a function inside a serializable transaction carried by
// the context. Satisfied by db.TxManager.
type TxRunner interface {
	RunSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EquipmentRequest is one requested equipment item on a new booking.
type EquipmentRequest struct {
	EquipmentID string
	Quantity    int
}

type CreateRequest struct {
	UserID    string
	CourtID   string
	CoachID   *string
	StartTime time.Time
	EndTime   time.Time
	Equipment []EquipmentRequest
}

// QuoteRequest mirrors CreateRequest without a user: it prices a hypothetical
// booking without reserving anything.
type QuoteRequest struct {
	CourtID   string
	CoachID   *string
	StartTime time.Time
	EndTime   time.Time
	Equipment []EquipmentRequest
}

type Service interface {
	// Create atomically validates court, coach and equipment availability,
	// prices the booking and persists it. Either the whole booking commits
	// or nothing does. Concurrent conflicting requests surface as
	// ErrTxConflict and are safe to retry.
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// Quote prices a prospective booking with the same engine the commit
	// path uses, without checking availability or writing anything.
	Quote(ctx context.Context, req QuoteRequest) (*Breakdown, error)

	GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter, requesterID string, isAdmin bool) ([]*Booking, int, error)

	// Cancel marks the booking cancelled, releasing its court, coach and
	// equipment holds for the window.
	Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error)

	// Delete removes the booking row entirely, equipment lines included.
	Delete(ctx context.Context, id, requesterID string, isAdmin bool) error

	// FreeSlots returns the unbooked intervals of a court's bookable day.
	FreeSlots(ctx context.Context, courtID string, day time.Time) ([]Slot, error)
}

type service struct {
	repo          Repository
	courtRepo     court.Repository
	coachRepo     coach.Repository
	equipmentRepo equipment.Repository
	pricingSvc    pricing.Service
	tx            TxRunner
}

func NewService(
	repo Repository,
	courtRepo court.Repository,
	coachRepo coach.Repository,
	equipmentRepo equipment.Repository,
	pricingSvc pricing.Service,
	tx TxRunner,
) Service {
	return &service{
		repo:          repo,
		courtRepo:     courtRepo,
		coachRepo:     coachRepo,
		equipmentRepo: equipmentRepo,
		pricingSvc:    pricingSvc,
		tx:            tx,
	}
}

// dropEmptyItems removes requests with a non-positive quantity; they count
// as not requested at all.
func dropEmptyItems(items []EquipmentRequest) []EquipmentRequest {
	kept := items[:0]
	for _, item := range items {
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	return kept
}

func validateTimeRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() || !start.Before(end) {
		return ErrInvalidTimeRange
	}
	return nil
}

// coachFee charges the hourly rate over the booked duration with a one hour
// minimum. A 45 minute session bills as a full hour; 90 minutes bills 1.5.
func coachFee(rate float64, start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	if hours < 1 {
		hours = 1
	}
	return pricing.Round2(rate * hours)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	req.Equipment = dropEmptyItems(req.Equipment)

	var created *Booking

	err := s.tx.RunSerializable(ctx, func(ctx context.Context) error {
		ct, err := s.courtRepo.GetByID(ctx, req.CourtID)
		if err != nil {
			return err
		}
		if !ct.Active {
			return court.ErrCourtInactive
		}

		busy, err := s.repo.HasCourtOverlap(ctx, ct.ID, req.StartTime, req.EndTime)
		if err != nil {
			return err
		}
		if busy {
			return ErrCourtNotAvailable
		}

		var coachCharge float64
		if req.CoachID != nil {
			co, err := s.coachRepo.GetByID(ctx, *req.CoachID)
			if err != nil {
				return err
			}
			if !co.Active {
				return ErrCoachNotAvailable
			}
			busy, err := s.repo.HasCoachOverlap(ctx, co.ID, req.StartTime, req.EndTime)
			if err != nil {
				return err
			}
			if busy {
				return ErrCoachNotAvailable
			}
			coachCharge = coachFee(co.HourlyRate, req.StartTime, req.EndTime)
		}

		// All-or-nothing: every requested item must fit within the stock
		// left over from overlapping confirmed bookings, otherwise the
		// whole booking is rejected.
		lines := make([]EquipmentLine, 0, len(req.Equipment))
		var equipmentCharge float64
		for _, item := range req.Equipment {
			eq, err := s.equipmentRepo.GetByID(ctx, item.EquipmentID)
			if err != nil {
				return err
			}
			if !eq.Active {
				return ErrEquipmentNotAvailable
			}
			used, err := s.repo.EquipmentReservedQty(ctx, eq.ID, req.StartTime, req.EndTime)
			if err != nil {
				return err
			}
			if item.Quantity > eq.TotalCount-used {
				return ErrEquipmentNotAvailable
			}
			lines = append(lines, EquipmentLine{
				EquipmentID:   eq.ID,
				EquipmentName: eq.Name,
				Quantity:      item.Quantity,
				UnitPrice:     eq.PricePerUnit,
			})
			equipmentCharge += float64(item.Quantity) * eq.PricePerUnit
		}
		equipmentCharge = pricing.Round2(equipmentCharge)

		quote, err := s.pricingSvc.QuoteForCourt(ctx, ct.ID, req.StartTime)
		if err != nil {
			return err
		}

		b := &Booking{
			UserID:    req.UserID,
			CourtID:   ct.ID,
			CourtName: ct.Name,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Status:    StatusConfirmed,
			CoachID:   req.CoachID,
			Equipment: lines,
			Breakdown: Breakdown{
				BasePrice:       quote.BasePrice,
				PriceAfterRules: quote.PriceAfterRules,
				RuleAdjustments: quote.Adjustments,
				EquipmentFee:    equipmentCharge,
				CoachFee:        coachCharge,
				Total:           pricing.Round2(quote.PriceAfterRules + equipmentCharge + coachCharge),
			},
		}
		if err := s.repo.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		if db.IsSerializationFailure(err) {
			return nil, ErrTxConflict
		}
		return nil, err
	}

	// Advisory bookkeeping only: the booking already committed, so a failed
	// touch must not fail the request.
	go func(courtID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.courtRepo.TouchLastBooking(ctx, courtID); err != nil {
			log.Printf("touch court last booking failed: court=%s err=%v", courtID, err)
		}
	}(created.CourtID)

	return created, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*Breakdown, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	quote, err := s.pricingSvc.QuoteForCourt(ctx, req.CourtID, req.StartTime)
	if err != nil {
		return nil, err
	}

	var equipmentCharge float64
	for _, item := range dropEmptyItems(req.Equipment) {
		eq, err := s.equipmentRepo.GetByID(ctx, item.EquipmentID)
		if err != nil {
			return nil, err
		}
		equipmentCharge += float64(item.Quantity) * eq.PricePerUnit
	}
	equipmentCharge = pricing.Round2(equipmentCharge)

	var coachCharge float64
	if req.CoachID != nil {
		co, err := s.coachRepo.GetByID(ctx, *req.CoachID)
		if err != nil {
			return nil, err
		}
		coachCharge = coachFee(co.HourlyRate, req.StartTime, req.EndTime)
	}

	return &Breakdown{
		BasePrice:       quote.BasePrice,
		PriceAfterRules: quote.PriceAfterRules,
		RuleAdjustments: quote.Adjustments,
		EquipmentFee:    equipmentCharge,
		CoachFee:        coachCharge,
		Total:           pricing.Round2(quote.PriceAfterRules + equipmentCharge + coachCharge),
	}, nil
}

func (s *service) GetByID(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter, requesterID string, isAdmin bool) ([]*Booking, int, error) {
	if !isAdmin {
		filter.UserID = requesterID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id, requesterID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && b.UserID != requesterID {
		return nil, ErrPermissionDenied
	}
	if b.Status == StatusCancelled {
		return b, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	return b, nil
}

func (s *service) Delete(ctx context.Context, id, requesterID string, isAdmin bool) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && b.UserID != requesterID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) FreeSlots(ctx context.Context, courtID string, day time.Time) ([]Slot, error) {
	ct, err := s.courtRepo.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := s.repo.ListConfirmedForCourtBetween(ctx, courtID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	intervals := make([]Interval, len(booked))
	for i, b := range booked {
		intervals[i] = Interval{Start: b.StartTime, End: b.EndTime}
	}
	return ComputeFreeSlots(dayStart, ct.OpenTime, ct.CloseTime, intervals)
}
