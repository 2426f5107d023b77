package listing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infortic/infortic/internal/models"
)

type partialSource struct {
	rows   map[models.Kind][]models.Opportunity
	failed models.Kind
}

func (p *partialSource) FetchAll(_ context.Context, kind models.Kind) ([]models.Opportunity, error) {
	if kind == p.failed {
		return nil, errors.New("relation does not exist")
	}
	return p.rows[kind], nil
}

func TestSitemapEntries(t *testing.T) {
	created := time.Date(2025, time.January, 10, 8, 0, 0, 0, time.UTC)
	src := &partialSource{
		rows: map[models.Kind][]models.Opportunity{
			models.KindCompetition: {{Slug: "lomba-a", CreatedAt: created}, {Slug: ""}},
			models.KindInternship:  {{Slug: "magang-b", CreatedAt: created.Add(time.Hour)}},
		},
		failed: models.KindScholarship,
	}
	svc := newTestService(t, src)

	entries := svc.SitemapEntries(context.Background(), "https://infortic.id/")
	require.Len(t, entries, len(staticPages)+2)

	assert.Equal(t, "https://infortic.id", entries[0].URL)
	assert.Equal(t, 1.0, entries[0].Priority)
	assert.Equal(t, fixedNow, entries[0].LastModified)
	assert.Equal(t, "https://infortic.id/kontak", entries[len(staticPages)-1].URL)

	detail := entries[len(staticPages):]
	assert.Equal(t, "https://infortic.id/lomba/lomba-a", detail[0].URL)
	assert.Equal(t, created, detail[0].LastModified)
	assert.Equal(t, "https://infortic.id/magang/magang-b", detail[1].URL)
	assert.Empty(t, detail[1].ChangeFrequency)
}
