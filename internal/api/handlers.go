package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// kindParam resolves the :kind segment. It writes the 404 itself and
// returns ok=false when the kind is unknown.
func (s *Server) kindParam(c echo.Context) (models.Kind, listing.KindSpec, bool) {
	kind, err := models.ParseKind(c.Param("kind"))
	if err != nil {
		return "", listing.KindSpec{}, false
	}
	spec, err := s.Listings.Spec(kind)
	if err != nil {
		return "", listing.KindSpec{}, false
	}
	return kind, spec, true
}

// filtersFrom reads one query parameter per filter dimension of the kind.
func filtersFrom(c echo.Context, spec listing.KindSpec) map[string]string {
	filters := make(map[string]string, len(spec.Dimensions))
	for _, d := range spec.Dimensions {
		if v := c.QueryParam(d.Name); v != "" {
			filters[d.Name] = v
		}
	}
	return filters
}

// pageParam defaults missing, malformed and non-positive pages to 1.
func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Server) handleList(c echo.Context) error {
	kind, spec, ok := s.kindParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown kind"})
	}

	result, err := s.Listings.ListPage(c.Request().Context(), kind, listing.ListParams{
		Query:   c.QueryParam("q"),
		Filters: filtersFrom(c, spec),
		Page:    pageParam(c),
	})
	if err != nil {
		return s.fail(c, kind, err)
	}

	items := make([]opportunityDTO, len(result.Items))
	for i, o := range result.Items {
		items[i] = s.toDTO(kind, o)
	}

	return c.JSON(http.StatusOK, listResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		Pages:      listing.PageLabels(result.Page, result.TotalPages),
	})
}

func (s *Server) handleCount(c echo.Context) error {
	kind, spec, ok := s.kindParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown kind"})
	}

	n, err := s.Listings.CountMatching(c.Request().Context(), kind, c.QueryParam("q"), filtersFrom(c, spec))
	if err != nil {
		return s.fail(c, kind, err)
	}
	return c.JSON(http.StatusOK, countResponse{Count: n, TotalPages: listing.TotalPagesFor(n)})
}

func (s *Server) handleSlugs(c echo.Context) error {
	kind, _, ok := s.kindParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown kind"})
	}

	slugs, err := s.Listings.ListAllSlugs(c.Request().Context(), kind)
	if err != nil {
		return s.fail(c, kind, err)
	}
	return c.JSON(http.StatusOK, slugsResponse{Slugs: slugs})
}

func (s *Server) handleFilterOptions(c echo.Context) error {
	kind, _, ok := s.kindParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown kind"})
	}

	dimension := c.Param("dimension")
	opts, err := s.Listings.ListDistinctCategoryValues(c.Request().Context(), kind, dimension)
	if err != nil {
		return s.fail(c, kind, err)
	}
	return c.JSON(http.StatusOK, filterOptionsResponse{Dimension: dimension, Options: opts})
}

func (s *Server) handleDetail(c echo.Context) error {
	kind, _, ok := s.kindParam(c)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown kind"})
	}

	o, err := s.Listings.GetBySlug(c.Request().Context(), kind, c.Param("slug"))
	if err != nil {
		return s.fail(c, kind, err)
	}
	return c.JSON(http.StatusOK, s.toDetailDTO(kind, o))
}

func (s *Server) handleSitemap(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Listings.SitemapEntries(c.Request().Context(), s.siteURL))
}

// fail maps pipeline errors to responses. Not-found and bad filters are
// expected outcomes; source failures are logged with their cause.
func (s *Server) fail(c echo.Context, kind models.Kind, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, listing.ErrUnknownKind):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "unknown kind"})
	case errors.Is(err, listing.ErrUnknownDimension):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, listing.ErrSourceUnavailable):
		s.log.Error("listing source unavailable",
			logger.String("kind", string(kind)),
			logger.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			logger.Error(err),
		)
		return c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "source unavailable"})
	default:
		s.log.Error("listing request failed", logger.String("kind", string(kind)), logger.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
