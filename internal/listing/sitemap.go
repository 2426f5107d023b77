package listing

import (
	"context"
	"strings"
	"time"

	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
)

// SitemapEntry is one URL of the public site.
type SitemapEntry struct {
	URL             string    `json:"url"`
	LastModified    time.Time `json:"last_modified"`
	ChangeFrequency string    `json:"change_frequency,omitempty"`
	Priority        float64   `json:"priority,omitempty"`
}

type staticPage struct {
	path      string
	frequency string
	priority  float64
}

var staticPages = []staticPage{
	{"", "daily", 1.0},
	{"/lomba", "daily", 0.9},
	{"/beasiswa", "daily", 0.9},
	{"/magang", "daily", 0.9},
	{"/tentang-kami", "monthly", 0.7},
	{"/kontak", "monthly", 0.6},
}

// SitemapEntries lists the static pages followed by every record detail page
// under siteURL. A kind whose fetch fails is logged and left out so the rest
// of the sitemap is still served.
func (s *Service) SitemapEntries(ctx context.Context, siteURL string) []SitemapEntry {
	base := strings.TrimRight(siteURL, "/")
	now := s.now().UTC()

	entries := make([]SitemapEntry, 0, len(staticPages))
	for _, p := range staticPages {
		entries = append(entries, SitemapEntry{
			URL:             base + p.path,
			LastModified:    now,
			ChangeFrequency: p.frequency,
			Priority:        p.priority,
		})
	}

	for _, kind := range models.Kinds {
		if _, ok := s.pipelines[kind]; !ok {
			continue
		}
		rows, err := s.source.FetchAll(ctx, kind)
		if err != nil {
			s.log.Warn("sitemap: skipping kind", logger.String("kind", string(kind)), logger.Error(err))
			continue
		}
		for _, o := range rows {
			if o.Slug == "" {
				continue
			}
			entries = append(entries, SitemapEntry{
				URL:          base + "/" + string(kind) + "/" + o.Slug,
				LastModified: o.CreatedAt.UTC(),
			})
		}
	}
	return entries
}
