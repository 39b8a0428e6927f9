package pricing

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
	Create(ctx context.Context, rule *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context) ([]*Rule, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error

	// ListActive returns active rules ordered by priority descending, the
	// order the evaluator consumes them in.
	ListActive(ctx context.Context) ([]*Rule, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const ruleColumns = `id, name, active, kind, value, court_types, court_ids,
	window_start, window_end, priority, created_at, updated_at`

func scanRule(row pgx.Row) (*Rule, error) {
	var r Rule
	var windowStart, windowEnd *string
	if err := row.Scan(
		&r.ID, &r.Name, &r.Active, &r.Kind, &r.Value, &r.CourtTypes,
		&r.CourtIDs, &windowStart, &windowEnd, &r.Priority,
		&r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("scan pricing rule failed: %w", err)
	}
	if windowStart != nil && windowEnd != nil {
		r.Window = &TimeWindow{Start: *windowStart, End: *windowEnd}
	}
	return &r, nil
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	var windowStart, windowEnd *string
	if rule.Window != nil {
		windowStart = &rule.Window.Start
		windowEnd = &rule.Window.End
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.pricing_rules").
		Columns("name", "active", "kind", "value", "court_types", "court_ids",
			"window_start", "window_end", "priority").
		Values(rule.Name, rule.Active, rule.Kind, rule.Value, rule.CourtTypes,
			rule.CourtIDs, windowStart, windowEnd, rule.Priority).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create pricing rule query failed: %w", err)
	}

	return db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Rule, error) {
	query := fmt.Sprintf("SELECT %s FROM public.pricing_rules WHERE id = $1", ruleColumns)
	return scanRule(db.ExecutorFrom(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *pgxRepository) List(ctx context.Context) ([]*Rule, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.pricing_rules ORDER BY priority DESC, created_at ASC",
		ruleColumns,
	)
	return r.queryRules(ctx, query)
}

func (r *pgxRepository) ListActive(ctx context.Context) ([]*Rule, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM public.pricing_rules WHERE active ORDER BY priority DESC, created_at ASC",
		ruleColumns,
	)
	return r.queryRules(ctx, query)
}

func (r *pgxRepository) queryRules(ctx context.Context, query string) ([]*Rule, error) {
	rows, err := db.ExecutorFrom(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *pgxRepository) Update(ctx context.Context, rule *Rule) error {
	var windowStart, windowEnd *string
	if rule.Window != nil {
		windowStart = &rule.Window.Start
		windowEnd = &rule.Window.End
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.pricing_rules").
		Set("name", rule.Name).
		Set("active", rule.Active).
		Set("kind", rule.Kind).
		Set("value", rule.Value).
		Set("court_types", rule.CourtTypes).
		Set("court_ids", rule.CourtIDs).
		Set("window_start", windowStart).
		Set("window_end", windowEnd).
		Set("priority", rule.Priority).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update pricing rule query failed: %w", err)
	}

	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.pricing_rules WHERE id = $1`
	ct, err := db.ExecutorFrom(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}
