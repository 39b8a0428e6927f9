package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playcourt/booking-backend/internal/db"
)

type Repository interface {
	// Create persists the booking and its equipment lines. When the context
	// carries a transaction, all inserts run on it.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// HasCourtOverlap reports whether a confirmed booking on the court
	// overlaps [start, end).
	HasCourtOverlap(ctx context.Context, courtID string, start, end time.Time) (bool, error)

	// HasCoachOverlap is the same half-open overlap test scoped to bookings
	// holding the coach.
	HasCoachOverlap(ctx context.Context, coachID string, start, end time.Time) (bool, error)

	// EquipmentReservedQty sums the quantities of an equipment item held by
	// confirmed bookings overlapping [start, end). The sum is recomputed
	// fresh on every call.
	EquipmentReservedQty(ctx context.Context, equipmentID string, start, end time.Time) (int, error)

	// ListConfirmedForCourtBetween returns confirmed bookings on the court
	// intersecting [from, to), ordered by start time. Used for the free-slot
	// calculation.
	ListConfirmedForCourtBetween(ctx context.Context, courtID string, from, to time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	exec := db.ExecutorFrom(ctx, r.pool)

	adjustments, err := json.Marshal(b.Breakdown.RuleAdjustments)
	if err != nil {
		return fmt.Errorf("marshal rule adjustments failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "court_id", "coach_id", "start_time", "end_time",
			"status", "base_price", "price_after_rules", "rule_adjustments",
			"equipment_fee", "coach_fee", "total").
		Values(b.UserID, b.CourtID, b.CoachID, b.StartTime, b.EndTime,
			b.Status, b.Breakdown.BasePrice, b.Breakdown.PriceAfterRules,
			adjustments, b.Breakdown.EquipmentFee, b.Breakdown.CoachFee,
			b.Breakdown.Total).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := exec.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	for i := range b.Equipment {
		line := &b.Equipment[i]
		const lineQuery = `
			INSERT INTO public.booking_equipment (booking_id, equipment_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := exec.Exec(ctx, lineQuery,
			b.ID, line.EquipmentID, line.Quantity, line.UnitPrice); err != nil {
			return fmt.Errorf("create booking equipment line failed: %w", err)
		}
	}

	return nil
}

const bookingSelect = `
	SELECT b.id, b.user_id, b.court_id, c.name, b.coach_id,
		b.start_time, b.end_time, b.status,
		b.base_price, b.price_after_rules, b.rule_adjustments,
		b.equipment_fee, b.coach_fee, b.total,
		b.created_at, b.updated_at
	FROM public.bookings b
	JOIN public.courts c ON b.court_id = c.id
`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var adjustments []byte
	if err := row.Scan(
		&b.ID, &b.UserID, &b.CourtID, &b.CourtName, &b.CoachID,
		&b.StartTime, &b.EndTime, &b.Status,
		&b.Breakdown.BasePrice, &b.Breakdown.PriceAfterRules, &adjustments,
		&b.Breakdown.EquipmentFee, &b.Breakdown.CoachFee, &b.Breakdown.Total,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	if err := json.Unmarshal(adjustments, &b.Breakdown.RuleAdjustments); err != nil {
		return nil, fmt.Errorf("unmarshal rule adjustments failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) loadEquipmentLines(ctx context.Context, b *Booking) error {
	const query = `
		SELECT be.equipment_id, e.name, be.quantity, be.unit_price
		FROM public.booking_equipment be
		JOIN public.equipment e ON be.equipment_id = e.id
		WHERE be.booking_id = $1
		ORDER BY e.name
	`
	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, query, b.ID)
	if err != nil {
		return fmt.Errorf("list booking equipment failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line EquipmentLine
		if err := rows.Scan(&line.EquipmentID, &line.EquipmentName,
			&line.Quantity, &line.UnitPrice); err != nil {
			return fmt.Errorf("scan booking equipment failed: %w", err)
		}
		b.Equipment = append(b.Equipment, line)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, bookingSelect+" WHERE b.id = $1", id)
	b, err := scanBooking(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadEquipmentLines(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "b.court_id", "c.name", "b.coach_id",
		"b.start_time", "b.end_time", "b.status",
		"b.base_price", "b.price_after_rules", "b.rule_adjustments",
		"b.equipment_fee", "b.coach_fee", "b.total",
		"b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.courts c ON b.court_id = c.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"b.court_id": filter.CourtID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("b.start_time DESC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		var adjustments []byte
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CourtID, &b.CourtName, &b.CoachID,
			&b.StartTime, &b.EndTime, &b.Status,
			&b.Breakdown.BasePrice, &b.Breakdown.PriceAfterRules, &adjustments,
			&b.Breakdown.EquipmentFee, &b.Breakdown.CoachFee, &b.Breakdown.Total,
			&b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		if err := json.Unmarshal(adjustments, &b.Breakdown.RuleAdjustments); err != nil {
			return nil, 0, fmt.Errorf("unmarshal rule adjustments failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	rows.Close()

	for _, b := range bookings {
		if err := r.loadEquipmentLines(ctx, b); err != nil {
			return nil, 0, err
		}
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
	`
	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.bookings WHERE id = $1`
	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Overlap test: storedStart < end AND storedEnd > start, confirmed only.

func (r *pgxRepository) HasCourtOverlap(ctx context.Context, courtID string, start, end time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE court_id = $1
			  AND status = 'confirmed'
			  AND start_time < $3
			  AND end_time > $2
		)
	`
	var exists bool
	err := db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, courtID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check court overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) HasCoachOverlap(ctx context.Context, coachID string, start, end time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE coach_id = $1
			  AND status = 'confirmed'
			  AND start_time < $3
			  AND end_time > $2
		)
	`
	var exists bool
	err := db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, coachID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check coach overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) EquipmentReservedQty(ctx context.Context, equipmentID string, start, end time.Time) (int, error) {
	const query = `
		SELECT COALESCE(SUM(be.quantity), 0)
		FROM public.booking_equipment be
		JOIN public.bookings b ON be.booking_id = b.id
		WHERE be.equipment_id = $1
		  AND b.status = 'confirmed'
		  AND b.start_time < $3
		  AND b.end_time > $2
	`
	var used int
	err := db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, equipmentID, start, end).Scan(&used)
	if err != nil {
		return 0, fmt.Errorf("sum reserved equipment failed: %w", err)
	}
	return used, nil
}

func (r *pgxRepository) ListConfirmedForCourtBetween(ctx context.Context, courtID string, from, to time.Time) ([]*Booking, error) {
	const query = `
		SELECT id, start_time, end_time, status
		FROM public.bookings
		WHERE court_id = $1
		  AND status = 'confirmed'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time ASC
	`
	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, query, courtID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list court bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.StartTime, &b.EndTime, &b.Status); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}
