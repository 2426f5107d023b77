// Package sqlite is a single-file row source for local development and
// tests. It shares the table layout of the Postgres store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/infortic/infortic/internal/db"
	"github.com/infortic/infortic/internal/models"
)

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements the listing row source on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at path with WAL enabled and creates the
// listing tables if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	if err := initSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates one table per kind from db.Tables. Timestamps are kept
// as RFC 3339 text.
func initSchema(ctx context.Context, conn *sql.DB) error {
	for _, kind := range models.Kinds {
		t := db.Tables[kind]
		cols := []string{"id TEXT PRIMARY KEY", "created_at TEXT NOT NULL"}
		for _, c := range t.Columns {
			if c.Name == "slug" {
				cols = append(cols, "slug TEXT NOT NULL UNIQUE")
				continue
			}
			cols = append(cols, c.Name+" TEXT")
		}
		stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", t.Name, strings.Join(cols, ",\n\t"))
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", t.Name, err)
		}
	}
	return nil
}

func scanRow(t db.Table, scan func(dest ...any) error) (models.Opportunity, error) {
	var (
		o       models.Opportunity
		created string
	)
	if err := t.ScanInto(&o, scan, &created); err != nil {
		return o, err
	}
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return o, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	o.CreatedAt = ts
	return o, nil
}

// FetchAll returns every row of kind, oldest first.
func (s *Store) FetchAll(ctx context.Context, kind models.Kind) ([]models.Opportunity, error) {
	t, err := db.TableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at, slug", t.SelectList(), t.Name))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.Name, err)
	}
	defer rows.Close()

	var out []models.Opportunity
	for rows.Next() {
		o, err := scanRow(t, rows.Scan)
		if err != nil {
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
	t, err := db.TableFor(kind)
	if err != nil {
		return models.Opportunity{}, err
	}

	row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT %s FROM %s WHERE slug = ?", t.SelectList(), t.Name), slug)
	o, err := scanRow(t, row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Opportunity{}, fmt.Errorf("%s %q: %w", kind, slug, models.ErrNotFound)
	}
	if err != nil {
		return models.Opportunity{}, fmt.Errorf("find %s %q: %w", kind, slug, err)
	}
	return o, nil
}

// Upsert inserts o or updates the row with the same slug.
func (s *Store) Upsert(ctx context.Context, o models.Opportunity) error {
	t, err := db.TableFor(o.Kind)
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
		o.CreatedAt = time.Now()
	}

	stmt := t.UpsertSQL(func(int) string { return "?" })
	args := append([]any{o.ID.String(), o.CreatedAt.UTC().Format(timeLayout)}, t.Values(o)...)
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert %s %q: %w", o.Kind, o.Slug, err)
	}
	return nil
}

// Count returns the number of rows of kind.
func (s *Store) Count(ctx context.Context, kind models.Kind) (int, error) {
	t, err := db.TableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.Name).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", t.Name, err)
	}
	return n, nil
}
