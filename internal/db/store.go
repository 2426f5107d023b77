package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/infortic/infortic/internal/models"
)

// Store reads and writes listing rows in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// FetchAll returns every row of kind, oldest first.
func (s *Store) FetchAll(ctx context.Context, kind models.Kind) ([]models.Opportunity, error) {
	t, err := TableFor(kind)
	if err != nil {
		return nil, err
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at, slug`, t.SelectList(), t.Name)
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.Name, err)
	}
	defer rows.Close()

	var out []models.Opportunity
	for rows.Next() {
		var o models.Opportunity
		if err := t.ScanInto(&o, rows.Scan, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.Name, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.Name, err)
	}
	return out, nil
}

// FindBySlug returns the row of kind with slug, or models.ErrNotFound.
func (s *Store) FindBySlug(ctx context.Context, kind models.Kind, slug string) (models.Opportunity, error) {
	t, err := TableFor(kind)
	if err != nil {
		return models.Opportunity{}, err
	}

	sql := fmt.Sprintf(`SELECT %s FROM %s WHERE slug = $1`, t.SelectList(), t.Name)
	row := s.pool.QueryRow(ctx, sql, slug)

	var o models.Opportunity
	if err := t.ScanInto(&o, row.Scan, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Opportunity{}, fmt.Errorf("%s %q: %w", kind, slug, models.ErrNotFound)
		}
		return models.Opportunity{}, fmt.Errorf("find %s %q: %w", kind, slug, err)
	}
	return o, nil
}

// Upsert inserts o or updates the row with the same slug. A zero ID or
// CreatedAt is filled in before insert.
func (s *Store) Upsert(ctx context.Context, o models.Opportunity) error {
	t, err := TableFor(o.Kind)
	if err != nil {
		return err
	}
	if o.Slug == "" {
		return fmt.Errorf("upsert %s: empty slug", o.Kind)
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	sql := t.UpsertSQL(func(n int) string { return fmt.Sprintf("$%d", n) })
	args := append([]any{o.ID, o.CreatedAt}, t.Values(o)...)
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("upsert %s %q: %w", o.Kind, o.Slug, err)
	}
	return nil
}

// Count returns the number of rows of kind.
func (s *Store) Count(ctx context.Context, kind models.Kind) (int, error) {
	t, err := TableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.pool.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, t.Name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.Name, err)
	}
	return n, nil
}
