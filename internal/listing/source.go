package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/infortic/infortic/internal/models"
)

// ErrSourceUnavailable matches every failure of the row source.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrUnknownKind is returned for a kind the service has no pipeline for.
var ErrUnknownKind = errors.New("unknown kind")

// ErrUnknownDimension is returned for a filter name the kind does not define.
var ErrUnknownDimension = errors.New("unknown filter dimension")

// Source returns the complete current record set of one kind. It does no
// filtering, ordering or paging.
type Source interface {
	FetchAll(ctx context.Context, kind models.Kind) ([]models.Opportunity, error)
}

// SlugFinder is implemented by sources that can look a record up directly.
// It must return models.ErrNotFound when no row has the slug.
type SlugFinder interface {
	FindBySlug(ctx context.Context, kind models.Kind, slug string) (models.Opportunity, error)
}

// SourceError wraps a row source failure with the kind and operation.
type SourceError struct {
	Kind models.Kind
	Op   string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSourceUnavailable) hold for every SourceError.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}
