package court

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playcourt/booking-backend/internal/db"
)

type Repository interface {
	Create(ctx context.Context, court *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, court *Court) error
	Delete(ctx context.Context, id string) error

	// TouchLastBooking updates the advisory last-booking timestamp. Callers
	// treat failures as non-fatal.
	TouchLastBooking(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const courtColumns = `id, name, short, type, active, base_price, rating, dims,
	image_path, open_time, close_time, last_booking_at, created_at, updated_at`

func scanCourt(row pgx.Row) (*Court, error) {
	var ct Court
	if err := row.Scan(
		&ct.ID, &ct.Name, &ct.Short, &ct.Type, &ct.Active, &ct.BasePrice,
		&ct.Rating, &ct.Dims, &ct.ImagePath, &ct.OpenTime, &ct.CloseTime,
		&ct.LastBookingAt, &ct.CreatedAt, &ct.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan court failed: %w", err)
	}
	return &ct, nil
}

func (r *pgxRepository) Create(ctx context.Context, court *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courts").
		Columns("name", "short", "type", "active", "base_price", "rating",
			"dims", "open_time", "close_time").
		Values(court.Name, court.Short, court.Type, court.Active,
			court.BasePrice, court.Rating, court.Dims, court.OpenTime, court.CloseTime).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	return db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&court.ID, &court.CreatedAt, &court.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query := fmt.Sprintf("SELECT %s FROM public.courts WHERE id = $1", courtColumns)
	return scanCourt(db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "short", "type", "active", "base_price", "rating",
		"dims", "image_path", "open_time", "close_time", "last_booking_at",
		"created_at", "updated_at", "count(*) OVER() as total_count",
	).From("public.courts")

	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"type": filter.Type})
	}
	if filter.Active != nil {
		query = query.Where(squirrel.Eq{"active": *filter.Active})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("name ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var ct Court
		if err := rows.Scan(
			&ct.ID, &ct.Name, &ct.Short, &ct.Type, &ct.Active, &ct.BasePrice,
			&ct.Rating, &ct.Dims, &ct.ImagePath, &ct.OpenTime, &ct.CloseTime,
			&ct.LastBookingAt, &ct.CreatedAt, &ct.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		courts = append(courts, &ct)
	}

	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, court *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courts").
		Set("name", court.Name).
		Set("short", court.Short).
		Set("type", court.Type).
		Set("active", court.Active).
		Set("base_price", court.BasePrice).
		Set("rating", court.Rating).
		Set("dims", court.Dims).
		Set("image_path", court.ImagePath).
		Set("open_time", court.OpenTime).
		Set("close_time", court.CloseTime).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": court.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.courts WHERE id = $1`
	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) TouchLastBooking(ctx context.Context, id string) error {
	const query = `UPDATE public.courts SET last_booking_at = now() WHERE id = $1`
	_, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, id)
	return err
}
