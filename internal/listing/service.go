// Package listing runs the filter, search and pagination pipeline over the
// records of one entity kind.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/dates"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
	"github.com/infortic/infortic/internal/search"
)

// ListParams selects a page of one kind. Filters maps dimension names to the
// requested value; empty values and "all" are ignored.
type ListParams struct {
	Query   string
	Filters map[string]string
	Page    int
}

// ListResult is one page window.
type ListResult struct {
	Items      []models.Opportunity `json:"items"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

type pipeline struct {
	spec    KindSpec
	matcher *search.Matcher[models.Opportunity]
}

// Service answers listing queries. Every call fetches the full record set
// from the source and recomputes the result; it keeps no state between calls.
type Service struct {
	source    Source
	pipelines map[models.Kind]*pipeline
	now       func() time.Time
	loc       *time.Location
	log       logger.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone in which "today" is observed.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithKindSpecs replaces DefaultKindSpecs.
func WithKindSpecs(specs ...KindSpec) Option {
	return func(s *Service) {
		s.pipelines = make(map[models.Kind]*pipeline, len(specs))
		for _, spec := range specs {
			s.pipelines[spec.Kind] = &pipeline{spec: spec}
		}
	}
}

// NewService wires a source to the kind pipelines. listings may be nil, in
// which case every kind uses the default search keys and threshold.
func NewService(source Source, listings *config.Listings, opts ...Option) (*Service, error) {
	s := &Service{
		source: source,
		now:    time.Now,
		loc:    time.UTC,
		log:    logger.NewNop(),
	}
	WithKindSpecs(DefaultKindSpecs()...)(s)
	for _, opt := range opts {
		opt(s)
	}

	for kind, p := range s.pipelines {
		m, err := newMatcher(kind, p.spec.SearchKeys, listings)
		if err != nil {
			return nil, err
		}
		p.matcher = m
	}
	return s, nil
}

func newMatcher(kind models.Kind, defaults []search.Key[models.Opportunity], listings *config.Listings) (*search.Matcher[models.Opportunity], error) {
	settings, ok := listings.Kind(string(kind))
	if !ok || len(settings.Keys) == 0 {
		if len(defaults) == 0 {
			defaults = defaultSearchKeys
		}
		return search.NewMatcher(settings.Threshold, defaults...), nil
	}

	keys := make([]search.Key[models.Opportunity], 0, len(settings.Keys))
	for _, k := range settings.Keys {
		get, ok := searchFields[k.Field]
		if !ok {
			return nil, fmt.Errorf("listings config: %s: unknown search field %q", kind, k.Field)
		}
		keys = append(keys, search.Key[models.Opportunity]{Name: k.Field, Weight: k.Weight, Value: get})
	}
	return search.NewMatcher(settings.Threshold, keys...), nil
}

// Spec returns the configuration of kind.
func (s *Service) Spec(kind models.Kind) (KindSpec, error) {
	p, err := s.pipeline(kind)
	if err != nil {
		return KindSpec{}, err
	}
	return p.spec, nil
}

func (s *Service) pipeline(kind models.Kind) (*pipeline, error) {
	p, ok := s.pipelines[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return p, nil
}

// Today returns the current calendar day in the service's location.
func (s *Service) Today() time.Time {
	return dates.Today(s.now(), s.loc)
}

// Deadline parses the closing date of o under its kind's rules. ok is false
// for kinds without deadlines and for unparseable text.
func (s *Service) Deadline(kind models.Kind, o models.Opportunity) (time.Time, bool) {
	p, err := s.pipeline(kind)
	if err != nil || p.spec.Deadline == nil {
		return time.Time{}, false
	}
	return p.spec.Deadline(o)
}

// ListPage returns the requested page of matching records.
func (s *Service) ListPage(ctx context.Context, kind models.Kind, params ListParams) (*ListResult, error) {
	rows, err := s.matching(ctx, kind, params.Query, params.Filters)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Items:      window(rows, params.Page),
		Total:      len(rows),
		Page:       params.Page,
		PageSize:   PageSize,
		TotalPages: TotalPagesFor(len(rows)),
	}, nil
}

// CountMatching returns how many records pass the filters, search and expiry.
func (s *Service) CountMatching(ctx context.Context, kind models.Kind, query string, filters map[string]string) (int, error) {
	rows, err := s.matching(ctx, kind, query, filters)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// TotalPages returns ceil(CountMatching / PageSize).
func (s *Service) TotalPages(ctx context.Context, kind models.Kind, query string, filters map[string]string) (int, error) {
	n, err := s.CountMatching(ctx, kind, query, filters)
	if err != nil {
		return 0, err
	}
	return TotalPagesFor(n), nil
}

// matching runs the pipeline up to, but excluding, pagination: category
// filters, then fuzzy search, then expiry, then ordering.
func (s *Service) matching(ctx context.Context, kind models.Kind, query string, filters map[string]string) ([]models.Opportunity, error) {
	p, err := s.pipeline(kind)
	if err != nil {
		return nil, err
	}
	preds, err := p.predicates(filters)
	if err != nil {
		return nil, err
	}

	rows, err := s.fetchAll(ctx, kind)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Opportunity, 0, len(rows))
	for _, o := range rows {
		if matchesAll(o, preds) {
			filtered = append(filtered, o)
		}
	}

	query = strings.TrimSpace(query)
	searching := query != ""
	if searching {
		filtered = p.matcher.Search(query, filtered)
	}

	if p.spec.Deadline == nil {
		if !searching {
			sort.SliceStable(filtered, func(i, j int) bool {
				return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
			})
		}
		return filtered, nil
	}

	type dated struct {
		o        models.Opportunity
		deadline time.Time
	}
	today := s.Today()
	open := make([]dated, 0, len(filtered))
	for _, o := range filtered {
		d, ok := p.spec.Deadline(o)
		if !ok || dates.Expired(d, today) {
			continue
		}
		open = append(open, dated{o: o, deadline: d})
	}

	if !searching {
		sort.SliceStable(open, func(i, j int) bool {
			return open[i].deadline.Before(open[j].deadline)
		})
	}

	out := make([]models.Opportunity, len(open))
	for i, d := range open {
		out[i] = d.o
	}
	return out, nil
}

type predicate struct {
	match func(models.Opportunity, string) bool
	value string
}

func (p *pipeline) predicates(filters map[string]string) ([]predicate, error) {
	var preds []predicate
	for name, value := range filters {
		value = strings.TrimSpace(value)
		if value == "" || strings.EqualFold(value, "all") {
			continue
		}
		d, ok := p.spec.Dimension(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no %q filter", ErrUnknownDimension, p.spec.Kind, name)
		}
		preds = append(preds, predicate{match: d.Match, value: value})
	}
	return preds, nil
}

func matchesAll(o models.Opportunity, preds []predicate) bool {
	for _, p := range preds {
		if !p.match(o, p.value) {
			return false
		}
	}
	return true
}

func (s *Service) fetchAll(ctx context.Context, kind models.Kind) ([]models.Opportunity, error) {
	rows, err := s.source.FetchAll(ctx, kind)
	if err != nil {
		s.log.Error("row source fetch failed", logger.String("kind", string(kind)), logger.Error(err))
		return nil, asSourceError(kind, "fetch", err)
	}
	return rows, nil
}

func asSourceError(kind models.Kind, op string, err error) error {
	var se *SourceError
	if errors.As(err, &se) {
		return err
	}
	return &SourceError{Kind: kind, Op: op, Err: err}
}

// GetBySlug returns the record of kind with slug, or models.ErrNotFound.
func (s *Service) GetBySlug(ctx context.Context, kind models.Kind, slug string) (models.Opportunity, error) {
	if _, err := s.pipeline(kind); err != nil {
		return models.Opportunity{}, err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return models.Opportunity{}, models.ErrNotFound
	}

	if finder, ok := s.source.(SlugFinder); ok {
		o, err := finder.FindBySlug(ctx, kind, slug)
		if errors.Is(err, models.ErrNotFound) {
			return models.Opportunity{}, err
		}
		if err != nil {
			s.log.Error("row source lookup failed", logger.String("kind", string(kind)), logger.String("slug", slug), logger.Error(err))
			return models.Opportunity{}, asSourceError(kind, "find", err)
		}
		return o, nil
	}

	rows, err := s.fetchAll(ctx, kind)
	if err != nil {
		return models.Opportunity{}, err
	}
	for _, o := range rows {
		if o.Slug == slug {
			return o, nil
		}
	}
	return models.Opportunity{}, models.ErrNotFound
}

// ListAllSlugs returns every non-empty slug of kind in source order.
func (s *Service) ListAllSlugs(ctx context.Context, kind models.Kind) ([]string, error) {
	if _, err := s.pipeline(kind); err != nil {
		return nil, err
	}
	rows, err := s.fetchAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(rows))
	for _, o := range rows {
		if o.Slug != "" {
			slugs = append(slugs, o.Slug)
		}
	}
	return slugs, nil
}

// ListDistinctCategoryValues returns the sorted options of one filter
// dimension of kind, derived from all records regardless of expiry.
func (s *Service) ListDistinctCategoryValues(ctx context.Context, kind models.Kind, dimension string) ([]FilterOption, error) {
	p, err := s.pipeline(kind)
	if err != nil {
		return nil, err
	}
	d, ok := p.spec.Dimension(dimension)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %q filter", ErrUnknownDimension, kind, dimension)
	}
	if d.Static != nil {
		out := make([]FilterOption, len(d.Static))
		copy(out, d.Static)
		return out, nil
	}

	rows, err := s.fetchAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return d.Options(rows), nil
}
