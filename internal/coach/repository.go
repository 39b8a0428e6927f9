package coach

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
	Create(ctx context.Context, coach *Coach) error
	GetByID(ctx context.Context, id string) (*Coach, error)
	List(ctx context.Context, filter Filter) ([]*Coach, int, error)
	Update(ctx context.Context, coach *Coach) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, coach *Coach) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.coaches").
		Columns("name", "experience_years", "hourly_rate", "active", "notes").
		Values(coach.Name, coach.ExperienceYears, coach.HourlyRate, coach.Active, coach.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create coach query failed: %w", err)
	}

	return db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&coach.ID, &coach.CreatedAt, &coach.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Coach, error) {
	const query = `
		SELECT id, name, experience_years, hourly_rate, active, notes, created_at, updated_at
		FROM public.coaches
		WHERE id = $1
	`
	row := db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, id)

	var co Coach
	if err := row.Scan(
		&co.ID, &co.Name, &co.ExperienceYears, &co.HourlyRate, &co.Active,
		&co.Notes, &co.CreatedAt, &co.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get coach failed: %w", err)
	}
	return &co, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Coach, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "experience_years", "hourly_rate", "active", "notes",
		"created_at", "updated_at", "count(*) OVER() as total_count",
	).From("public.coaches")

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
		return nil, 0, fmt.Errorf("build list coaches query failed: %w", err)
	}

	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list coaches failed: %w", err)
	}
	defer rows.Close()

	var coaches []*Coach
	var total int

	for rows.Next() {
		var co Coach
		if err := rows.Scan(
			&co.ID, &co.Name, &co.ExperienceYears, &co.HourlyRate, &co.Active,
			&co.Notes, &co.CreatedAt, &co.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan coach failed: %w", err)
		}
		coaches = append(coaches, &co)
	}

	return coaches, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, coach *Coach) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.coaches").
		Set("name", coach.Name).
		Set("experience_years", coach.ExperienceYears).
		Set("hourly_rate", coach.HourlyRate).
		Set("active", coach.Active).
		Set("notes", coach.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": coach.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update coach query failed: %w", err)
	}

	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update coach failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.coaches WHERE id = $1`
	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete coach failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
