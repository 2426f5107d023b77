package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/models"
)

type fakeSource struct {
	rows map[models.Kind][]models.Opportunity
	err  error
}

func (f *fakeSource) FetchAll(_ context.Context, kind models.Kind) ([]models.Opportunity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[kind], nil
}

var today = time.Date(2025, time.February, 1, 5, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, src listing.Source) *Server {
	t.Helper()
	svc, err := listing.NewService(src, nil, listing.WithClock(func() time.Time { return today }))
	require.NoError(t, err)
	return NewServer(svc, Options{SiteURL: "https://infortic.id"})
}

func do(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func competitionRows(n int) []models.Opportunity {
	rows := make([]models.Opportunity, n)
	for i := range rows {
		rows[i] = models.Opportunity{
			Kind:         models.KindCompetition,
			Slug:         fmt.Sprintf("lomba-%02d", i+1),
			Title:        fmt.Sprintf("Lomba %02d", i+1),
			Participant:  "Mahasiswa",
			PriceText:    "Gratis",
			DeadlineText: fmt.Sprintf("%d Mar 2025", i+1),
		}
	}
	return rows
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(t, &fakeSource{}), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestList(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindCompetition: competitionRows(13),
	}})

	rec := do(t, s, "/api/v1/lomba?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[listResponse](t, rec)
	assert.Equal(t, 13, body.Total)
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 12, body.PageSize)
	assert.Equal(t, 2, body.TotalPages)
	assert.Equal(t, []string{"1", "2"}, body.Pages)
	require.Len(t, body.Items, 1)

	item := body.Items[0]
	assert.Equal(t, "lomba-13", item.Slug)
	require.NotNil(t, item.DaysLeft)
	assert.Equal(t, 40, *item.DaysLeft)
	require.NotNil(t, item.Expired)
	assert.False(t, *item.Expired)
	assert.Equal(t, "13 Maret 2025", item.DeadlineLabel)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestList_PageDefaultsToOne(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindCompetition: competitionRows(3),
	}})

	for _, target := range []string{"/api/v1/lomba", "/api/v1/lomba?page=0", "/api/v1/lomba?page=abc"} {
		body := decode[listResponse](t, do(t, s, target))
		assert.Equal(t, 1, body.Page, target)
		assert.Len(t, body.Items, 3, target)
	}
}

func TestList_HugePageIsEmpty(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindCompetition: competitionRows(5),
	}})

	rec := do(t, s, "/api/v1/lomba?page=4611686018427387904")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[listResponse](t, rec)
	assert.Empty(t, body.Items)
	assert.Equal(t, 5, body.Total)
}

func TestList_FiltersAndQuery(t *testing.T) {
	rows := competitionRows(3)
	rows[1].Participant = "Siswa SMA"
	rows[2].Title = "Hackathon Nasional"

	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{models.KindCompetition: rows}})

	body := decode[listResponse](t, do(t, s, "/api/v1/lomba?participant=Mahasiswa&price=gratis"))
	assert.Equal(t, 2, body.Total)

	body = decode[listResponse](t, do(t, s, "/api/v1/lomba?q=hackaton"))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "lomba-03", body.Items[0].Slug)

	// Parameters of other kinds are ignored.
	body = decode[listResponse](t, do(t, s, "/api/v1/lomba?education=S1"))
	assert.Equal(t, 3, body.Total)
}

func TestList_EmptyIsNotAnError(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	rec := do(t, s, "/api/v1/beasiswa")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0,"page":1,"page_size":12,"total_pages":0,"pages":[]}`, rec.Body.String())
}

func TestUnknownKind(t *testing.T) {
	s := newTestServer(t, &fakeSource{})

	for _, target := range []string{"/api/v1/event", "/api/v1/event/count", "/api/v1/event/slug-a"} {
		rec := do(t, s, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
	}
}

func TestSourceUnavailable(t *testing.T) {
	s := newTestServer(t, &fakeSource{err: errors.New("dial tcp: connection refused")})

	for _, target := range []string{"/api/v1/lomba", "/api/v1/lomba/count", "/api/v1/magang/slugs", "/api/v1/magang/some-slug", "/api/v1/beasiswa/filters/education"} {
		rec := do(t, s, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.JSONEq(t, `{"error":"source unavailable"}`, rec.Body.String(), target)
	}
}

func TestCount(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindCompetition: competitionRows(25),
	}})

	body := decode[countResponse](t, do(t, s, "/api/v1/lomba/count"))
	assert.Equal(t, countResponse{Count: 25, TotalPages: 3}, body)
}

func TestSlugs(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindCompetition: competitionRows(2),
	}})

	body := decode[slugsResponse](t, do(t, s, "/api/v1/lomba/slugs"))
	assert.Equal(t, []string{"lomba-01", "lomba-02"}, body.Slugs)
}

func TestFilterOptions(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindInternship: {{Field: "Data"}, {Field: "Desain"}},
	}})

	rec := do(t, s, "/api/v1/magang/filters/field")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[filterOptionsResponse](t, rec)
	assert.Equal(t, "field", body.Dimension)
	assert.Equal(t, []listing.FilterOption{{Value: "Data", Label: "Data"}, {Value: "Desain", Label: "Desain"}}, body.Options)

	rec = do(t, s, "/api/v1/magang/filters/price")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetail(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindScholarship: {{
			Kind:         models.KindScholarship,
			Slug:         "beasiswa-lama",
			Title:        "Beasiswa Lama",
			Description:  `<p onclick="steal()">Dana penuh</p><script>alert(1)</script>`,
			DeadlineText: "2025-01-29",
		}},
		models.KindInternship: {{Kind: models.KindInternship, Slug: "be-intern", Title: "Backend Intern"}},
	}})

	rec := do(t, s, "/api/v1/beasiswa/beasiswa-lama")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[opportunityDTO](t, rec)
	assert.Equal(t, "Beasiswa Lama", body.Title)
	require.NotNil(t, body.DaysLeft)
	assert.Equal(t, -3, *body.DaysLeft)
	assert.True(t, *body.Expired)
	assert.Equal(t, "29 Januari 2025", body.DeadlineLabel)
	assert.Equal(t, "<p>Dana penuh</p>", body.DescriptionHTML)

	rec = do(t, s, "/api/v1/magang/be-intern")
	require.Equal(t, http.StatusOK, rec.Code)
	intern := decode[opportunityDTO](t, rec)
	assert.Nil(t, intern.DaysLeft)
	assert.Nil(t, intern.Expired)

	rec = do(t, s, "/api/v1/magang/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestSitemap(t *testing.T) {
	s := newTestServer(t, &fakeSource{rows: map[models.Kind][]models.Opportunity{
		models.KindCompetition: competitionRows(1),
	}})

	rec := do(t, s, "/api/v1/sitemap")
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decode[[]listing.SitemapEntry](t, rec)
	require.NotEmpty(t, entries)
	assert.Equal(t, "https://infortic.id", entries[0].URL)
	assert.Equal(t, "https://infortic.id/lomba/lomba-01", entries[len(entries)-1].URL)
}
