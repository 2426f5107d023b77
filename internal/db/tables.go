package db

import (
	"fmt"
	"strings"

	"github.com/infortic/infortic/internal/models"
)

// Column is a nullable text column and the record field it fills.
type Column struct {
	Name  string
	Field func(o *models.Opportunity) *string
}

// Table describes how one entity kind is stored. Every table also has
// id, created_at and a unique slug.
type Table struct {
	Kind    models.Kind
	Name    string
	Columns []Column
}

func col(name string, field func(o *models.Opportunity) *string) Column {
	return Column{Name: name, Field: field}
}

var (
	slugCol        = col("slug", func(o *models.Opportunity) *string { return &o.Slug })
	descriptionCol = col("description", func(o *models.Opportunity) *string { return &o.Description })
	locationCol    = col("location", func(o *models.Opportunity) *string { return &o.Location })
	sourceURLCol   = col("source_url", func(o *models.Opportunity) *string { return &o.SourceURL })
)

// Tables maps each kind to its table layout. Column names follow the
// existing site schema, so internships keep intern_position and company.
var Tables = map[models.Kind]Table{
	models.KindCompetition: {
		Kind: models.KindCompetition,
		Name: "lomba",
		Columns: []Column{
			slugCol,
			col("title", func(o *models.Opportunity) *string { return &o.Title }),
			col("organizer", func(o *models.Opportunity) *string { return &o.Organizer }),
			descriptionCol,
			col("participant", func(o *models.Opportunity) *string { return &o.Participant }),
			locationCol,
			col("price_text", func(o *models.Opportunity) *string { return &o.PriceText }),
			col("date_text", func(o *models.Opportunity) *string { return &o.DeadlineText }),
			col("registration_url", func(o *models.Opportunity) *string { return &o.RegistrationURL }),
			sourceURLCol,
			col("poster_url", func(o *models.Opportunity) *string { return &o.ImageURL }),
		},
	},
	models.KindScholarship: {
		Kind: models.KindScholarship,
		Name: "beasiswa",
		Columns: []Column{
			slugCol,
			col("title", func(o *models.Opportunity) *string { return &o.Title }),
			col("organizer", func(o *models.Opportunity) *string { return &o.Organizer }),
			descriptionCol,
			col("education_level", func(o *models.Opportunity) *string { return &o.EducationLevel }),
			locationCol,
			col("deadline_date", func(o *models.Opportunity) *string { return &o.DeadlineText }),
			sourceURLCol,
			col("image_url", func(o *models.Opportunity) *string { return &o.ImageURL }),
			col("booklet_url", func(o *models.Opportunity) *string { return &o.BookletURL }),
		},
	},
	models.KindInternship: {
		Kind: models.KindInternship,
		Name: "magang",
		Columns: []Column{
			slugCol,
			col("intern_position", func(o *models.Opportunity) *string { return &o.Title }),
			col("company", func(o *models.Opportunity) *string { return &o.Organizer }),
			descriptionCol,
			col("field", func(o *models.Opportunity) *string { return &o.Field }),
			locationCol,
			col("company_location", func(o *models.Opportunity) *string { return &o.CompanyLocation }),
			col("company_page_url", func(o *models.Opportunity) *string { return &o.CompanyPageURL }),
			col("contact_email", func(o *models.Opportunity) *string { return &o.ContactEmail }),
			col("criteria", func(o *models.Opportunity) *string { return &o.Criteria }),
			col("responsibilities", func(o *models.Opportunity) *string { return &o.Responsibilities }),
			col("learning_outcome", func(o *models.Opportunity) *string { return &o.LearningOutcome }),
			col("detail_page_url", func(o *models.Opportunity) *string { return &o.SourceURL }),
			col("logo_image_url", func(o *models.Opportunity) *string { return &o.ImageURL }),
		},
	},
}

// TableFor returns the layout of kind.
func TableFor(kind models.Kind) (Table, error) {
	t, ok := Tables[kind]
	if !ok {
		return Table{}, fmt.Errorf("no table for kind %q", kind)
	}
	return t, nil
}

// SelectList is the column list matching ScanInto.
func (t Table) SelectList() string {
	names := make([]string, 0, len(t.Columns)+2)
	names = append(names, "id", "created_at")
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// ScanInto reads a row selected with SelectList into o. created receives the
// created_at column, whose Go representation depends on the driver.
func (t Table) ScanInto(o *models.Opportunity, scan func(dest ...any) error, created any) error {
	text := make([]*string, len(t.Columns))
	dest := make([]any, 0, len(t.Columns)+2)
	dest = append(dest, &o.ID, created)
	for i := range text {
		dest = append(dest, &text[i])
	}

	if err := scan(dest...); err != nil {
		return err
	}

	// Assign nullable strings
	for i, c := range t.Columns {
		if text[i] != nil {
			*c.Field(o) = *text[i]
		}
	}
	o.Kind = t.Kind
	return nil
}

// Values returns the text column values of o in Columns order.
func (t Table) Values(o models.Opportunity) []any {
	out := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = *c.Field(&o)
	}
	return out
}

// UpsertSQL builds an insert keyed on slug. placeholder renders the n-th
// (1-based) bind parameter. id, slug and created_at are never overwritten.
func (t Table) UpsertSQL(placeholder func(n int) string) string {
	names := []string{"id", "created_at"}
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}

	params := make([]string, len(names))
	for i := range names {
		params[i] = placeholder(i + 1)
	}

	var updates []string
	for _, c := range t.Columns {
		if c.Name == "slug" {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c.Name, c.Name))
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (slug) DO UPDATE SET %s",
		t.Name, strings.Join(names, ", "), strings.Join(params, ", "), strings.Join(updates, ", "))
}
