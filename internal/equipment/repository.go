package equipment

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
	Create(ctx context.Context, eq *Equipment) error
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, eq *Equipment) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, eq *Equipment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.equipment").
		Columns("name", "sku", "total_count", "price_per_unit", "active").
		Values(eq.Name, eq.SKU, eq.TotalCount, eq.PricePerUnit, eq.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create equipment query failed: %w", err)
	}

	return db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&eq.ID, &eq.CreatedAt, &eq.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Equipment, error) {
	const query = `
		SELECT id, name, sku, total_count, price_per_unit, active, created_at, updated_at
		FROM public.equipment
		WHERE id = $1
	`
	row := db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, id)

	var eq Equipment
	if err := row.Scan(
		&eq.ID, &eq.Name, &eq.SKU, &eq.TotalCount, &eq.PricePerUnit,
		&eq.Active, &eq.CreatedAt, &eq.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get equipment failed: %w", err)
	}
	return &eq, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "sku", "total_count", "price_per_unit", "active",
		"created_at", "updated_at", "count(*) OVER() as total_count_rows",
	).From("public.equipment")

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
		return nil, 0, fmt.Errorf("build list equipment query failed: %w", err)
	}

	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment failed: %w", err)
	}
	defer rows.Close()

	var result []*Equipment
	var total int

	for rows.Next() {
		var eq Equipment
		if err := rows.Scan(
			&eq.ID, &eq.Name, &eq.SKU, &eq.TotalCount, &eq.PricePerUnit,
			&eq.Active, &eq.CreatedAt, &eq.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan equipment failed: %w", err)
		}
		result = append(result, &eq)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, eq *Equipment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.equipment").
		Set("name", eq.Name).
		Set("sku", eq.SKU).
		Set("total_count", eq.TotalCount).
		Set("price_per_unit", eq.PricePerUnit).
		Set("active", eq.Active).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": eq.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update equipment query failed: %w", err)
	}

	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.equipment WHERE id = $1`
	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
