package listing

import (
	"strings"
	"time"

	"github.com/infortic/infortic/internal/classify"
	"github.com/infortic/infortic/internal/dates"
	"github.com/infortic/infortic/internal/models"
	"github.com/infortic/infortic/internal/search"
)

// FilterOption is one selectable value of a filter control.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Dimension is a category filter of an entity kind.
type Dimension struct {
	Name  string
	Match func(o models.Opportunity, value string) bool
	// Options derives the selectable values from the current records.
	// Dimensions with a fixed value list set Static instead.
	Options func(rows []models.Opportunity) []FilterOption
	Static  []FilterOption
}

// KindSpec configures the listing pipeline for one entity kind.
type KindSpec struct {
	Kind       models.Kind
	Dimensions []Dimension
	// Deadline parses the closing date of a record. Kinds without one
	// (nil) skip expiry filtering and list newest first.
	Deadline func(o models.Opportunity) (time.Time, bool)
	// SearchKeys apply when the listings config does not cover the kind.
	SearchKeys []search.Key[models.Opportunity]
}

// Dimension looks up a filter by name.
func (k KindSpec) Dimension(name string) (Dimension, bool) {
	for _, d := range k.Dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// DefaultKindSpecs returns the configuration of competitions, scholarships
// and internships.
func DefaultKindSpecs() []KindSpec {
	return []KindSpec{
		{
			Kind: models.KindCompetition,
			Dimensions: []Dimension{
				{
					Name:  "participant",
					Match: func(o models.Opportunity, v string) bool { return classify.HasParticipantCategory(o.Participant, v) },
					Options: func(rows []models.Opportunity) []FilterOption {
						return valueOptions(classify.ParticipantLabels(collect(rows, participantOf)))
					},
				},
				{
					Name:   "price",
					Match:  func(o models.Opportunity, v string) bool { return classify.PriceInBracket(o.PriceText, v) },
					Static: priceOptions(),
				},
			},
			Deadline:   func(o models.Opportunity) (time.Time, bool) { return dates.ParseRangeEnd(o.DeadlineText) },
			SearchKeys: searchKeys(0.6, 0.3, 0.1),
		},
		{
			Kind: models.KindScholarship,
			Dimensions: []Dimension{
				{
					Name:  "education",
					Match: func(o models.Opportunity, v string) bool { return classify.MatchesCategory(o.EducationLevel, v) },
					Options: func(rows []models.Opportunity) []FilterOption {
						return valueOptions(classify.CategoryTokens(collect(rows, educationOf)))
					},
				},
				{
					Name:  "location",
					Match: func(o models.Opportunity, v string) bool { return classify.MatchesCategory(o.Location, v) },
					Options: func(rows []models.Opportunity) []FilterOption {
						return valueOptions(classify.SortedDistinct(collect(rows, locationOf)))
					},
				},
			},
			Deadline:   func(o models.Opportunity) (time.Time, bool) { return dates.ParseDeadline(o.DeadlineText) },
			SearchKeys: searchKeys(0.6, 0.3, 0.1),
		},
		{
			Kind: models.KindInternship,
			Dimensions: []Dimension{
				{
					Name:  "field",
					Match: func(o models.Opportunity, v string) bool { return classify.MatchesCategory(o.Field, v) },
					Options: func(rows []models.Opportunity) []FilterOption {
						return valueOptions(classify.SortedDistinct(collect(rows, fieldOf)))
					},
				},
				{
					Name:  "location",
					Match: func(o models.Opportunity, v string) bool { return classify.MatchesCategory(o.Location, v) },
					Options: func(rows []models.Opportunity) []FilterOption {
						return provinceOptions(classify.MatchingProvinces(collect(rows, locationOf)))
					},
				},
			},
			SearchKeys: searchKeys(0.5, 0.3, 0.2),
		},
	}
}

func participantOf(o models.Opportunity) string { return o.Participant }
func educationOf(o models.Opportunity) string   { return o.EducationLevel }
func locationOf(o models.Opportunity) string    { return o.Location }
func fieldOf(o models.Opportunity) string       { return o.Field }

func collect(rows []models.Opportunity, get func(models.Opportunity) string) []string {
	out := make([]string, 0, len(rows))
	for _, o := range rows {
		out = append(out, get(o))
	}
	return out
}

func valueOptions(values []string) []FilterOption {
	out := make([]FilterOption, len(values))
	for i, v := range values {
		out[i] = FilterOption{Value: v, Label: v}
	}
	return out
}

// provinceOptions keeps the upper-case province as value and shows it title
// cased, "DKI JAKARTA" as "DKI Jakarta".
func provinceOptions(provinces []string) []FilterOption {
	out := make([]FilterOption, len(provinces))
	for i, p := range provinces {
		out[i] = FilterOption{Value: p, Label: provinceLabel(p)}
	}
	return out
}

func provinceLabel(p string) string {
	words := strings.Fields(strings.ToLower(p))
	for i, w := range words {
		if w == "dki" || w == "di" {
			words[i] = strings.ToUpper(w)
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func priceOptions() []FilterOption {
	out := make([]FilterOption, len(classify.PriceBrackets))
	for i, b := range classify.PriceBrackets {
		out[i] = FilterOption{Value: b.Key, Label: b.Label}
	}
	return out
}

// searchFields maps the field names usable as search keys to accessors.
var searchFields = map[string]func(models.Opportunity) string{
	"title":           func(o models.Opportunity) string { return o.Title },
	"organizer":       func(o models.Opportunity) string { return o.Organizer },
	"description":     func(o models.Opportunity) string { return search.PlainText(o.Description) },
	"participant":     participantOf,
	"education_level": educationOf,
	"location":        locationOf,
	"field":           fieldOf,
}

// searchKeys weighs title, organizer and description.
func searchKeys(title, organizer, description float64) []search.Key[models.Opportunity] {
	return []search.Key[models.Opportunity]{
		{Name: "title", Weight: title, Value: searchFields["title"]},
		{Name: "organizer", Weight: organizer, Value: searchFields["organizer"]},
		{Name: "description", Weight: description, Value: searchFields["description"]},
	}
}

// defaultSearchKeys serves kinds with neither config nor SearchKeys.
var defaultSearchKeys = searchKeys(0.6, 0.3, 0.1)
