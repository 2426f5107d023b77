package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a slug lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Kind identifies one of the listed record sets. The value doubles as the
// table name and the public route segment.
type Kind string

const (
	KindCompetition Kind = "lomba"
	KindScholarship Kind = "beasiswa"
	KindInternship  Kind = "magang"
)

// Kinds lists every entity kind in display order.
var Kinds = []Kind{KindCompetition, KindScholarship, KindInternship}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind: %q", s)
}

// Opportunity is a single listed item. Competitions, scholarships and
// internships share this record; fields that do not apply to a kind stay empty.
type Opportunity struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`     // intern_position for internships
	Organizer string    `json:"organizer"` // company for internships
	// Description may contain markup and is stored verbatim.
	Description string `json:"description"`

	// Free-text classification fields.
	Participant    string `json:"participant,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`
	Location       string `json:"location,omitempty"`
	Field          string `json:"field,omitempty"`
	PriceText      string `json:"price_text,omitempty"`

	// DeadlineText is date_text for competitions and deadline_date for
	// scholarships. Internships have none.
	DeadlineText string `json:"deadline_text,omitempty"`

	RegistrationURL string `json:"registration_url,omitempty"`
	SourceURL       string `json:"source_url,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	BookletURL      string `json:"booklet_url,omitempty"`

	// Internship detail fields.
	Responsibilities string `json:"responsibilities,omitempty"`
	Criteria         string `json:"criteria,omitempty"`
	LearningOutcome  string `json:"learning_outcome,omitempty"`
	CompanyLocation  string `json:"company_location,omitempty"`
	CompanyPageURL   string `json:"company_page_url,omitempty"`
	ContactEmail     string `json:"contact_email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
