package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
)

func TestTables_CoverEveryKind(t *testing.T) {
	for _, kind := range models.Kinds {
		tbl, err := TableFor(kind)
		require.NoError(t, err, kind)
		assert.Equal(t, string(kind), tbl.Name)
		assert.Equal(t, "slug", tbl.Columns[0].Name)
	}

	_, err := TableFor(models.Kind("event"))
	assert.Error(t, err)
}

func TestSelectList(t *testing.T) {
	tbl := Tables[models.KindInternship]
	list := tbl.SelectList()

	assert.True(t, strings.HasPrefix(list, "id, created_at, slug, intern_position, company"))
	assert.Contains(t, list, "logo_image_url")
}

func TestUpsertSQL(t *testing.T) {
	tbl := Tables[models.KindScholarship]
	sql := tbl.UpsertSQL(func(n int) string { return fmt.Sprintf("$%d", n) })

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO beasiswa (id, created_at, slug, title"))
	assert.Contains(t, sql, fmt.Sprintf("$%d)", len(tbl.Columns)+2))
	assert.Contains(t, sql, "ON CONFLICT (slug) DO UPDATE SET title = excluded.title")
	assert.Contains(t, sql, "deadline_date = excluded.deadline_date")
	assert.NotContains(t, sql, "slug = excluded.slug")
	assert.NotContains(t, sql, "id = excluded.id")
}

func TestScanInto_NullableColumns(t *testing.T) {
	tbl := Tables[models.KindCompetition]
	id := uuid.New()
	created := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)

	scan := func(dest ...any) error {
		require.Len(t, dest, len(tbl.Columns)+2)
		*(dest[0].(*uuid.UUID)) = id
		*(dest[1].(*time.Time)) = created
		for i, c := range tbl.Columns {
			p := dest[i+2].(**string)
			switch c.Name {
			case "slug":
				v := "lomba-esai"
				*p = &v
			case "date_text":
				v := "01 Mar 2025"
				*p = &v
			default:
				*p = nil
			}
		}
		return nil
	}

	var o models.Opportunity
	require.NoError(t, tbl.ScanInto(&o, scan, &o.CreatedAt))
	assert.Equal(t, id, o.ID)
	assert.Equal(t, created, o.CreatedAt)
	assert.Equal(t, models.KindCompetition, o.Kind)
	assert.Equal(t, "lomba-esai", o.Slug)
	assert.Equal(t, "01 Mar 2025", o.DeadlineText)
	assert.Empty(t, o.Organizer)
}

func TestScanInto_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	var o models.Opportunity
	err := Tables[models.KindCompetition].ScanInto(&o, func(...any) error { return boom }, &o.CreatedAt)
	assert.ErrorIs(t, err, boom)
}

func TestValues_FollowColumnOrder(t *testing.T) {
	tbl := Tables[models.KindInternship]
	o := models.Opportunity{Slug: "be-intern", Title: "Backend Intern", Organizer: "Gojek", SourceURL: "https://example.com/be"}

	values := tbl.Values(o)
	require.Len(t, values, len(tbl.Columns))
	assert.Equal(t, "be-intern", values[0])
	assert.Equal(t, "Backend Intern", values[1])
	assert.Equal(t, "Gojek", values[2])
	assert.Equal(t, "https://example.com/be", values[len(values)-2])
}

// TestStore_Postgres runs against a live database and is skipped otherwise.
func TestStore_Postgres(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("database unreachable: %v", err)
	}
	defer pool.Close()

	require.NoError(t, ApplyMigrations(ctx, pool, logger.NewNop()))
	store := NewStore(pool)

	slug := "test-" + uuid.NewString()
	defer func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM lomba WHERE slug = $1", slug)
	}()

	o := models.Opportunity{Kind: models.KindCompetition, Slug: slug, Title: "Lomba Uji", DeadlineText: "01 Mar 2030"}
	require.NoError(t, store.Upsert(ctx, o))

	o.Title = "Lomba Uji Ulang"
	require.NoError(t, store.Upsert(ctx, o))

	got, err := store.FindBySlug(ctx, models.KindCompetition, slug)
	require.NoError(t, err)
	assert.Equal(t, "Lomba Uji Ulang", got.Title)
	assert.Equal(t, "01 Mar 2030", got.DeadlineText)

	_, err = store.FindBySlug(ctx, models.KindCompetition, slug+"-missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	rows, err := store.FetchAll(ctx, models.KindCompetition)
	require.NoError(t, err)
	found := false
	for _, r := range rows {
		found = found || r.Slug == slug
	}
	assert.True(t, found)
}
