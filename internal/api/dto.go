package api

import (
	"github.com/infortic/infortic/internal/dates"
	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/models"
)

// opportunityDTO adds the display fields derived at read time.
type opportunityDTO struct {
	models.Opportunity
	DaysLeft        *int   `json:"days_left,omitempty"`
	Expired         *bool  `json:"expired,omitempty"`
	DeadlineLabel   string `json:"deadline_label,omitempty"`
	DescriptionHTML string `json:"description_html,omitempty"`
}

type listResponse struct {
	Items      []opportunityDTO `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Pages      []string         `json:"pages"`
}

type countResponse struct {
	Count      int `json:"count"`
	TotalPages int `json:"total_pages"`
}

type slugsResponse struct {
	Slugs []string `json:"slugs"`
}

type filterOptionsResponse struct {
	Dimension string                 `json:"dimension"`
	Options   []listing.FilterOption `json:"options"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) toDTO(kind models.Kind, o models.Opportunity) opportunityDTO {
	dto := opportunityDTO{Opportunity: o}
	if deadline, ok := s.Listings.Deadline(kind, o); ok {
		today := s.Listings.Today()
		days := dates.DaysLeft(deadline, today)
		expired := dates.Expired(deadline, today)
		dto.DaysLeft = &days
		dto.Expired = &expired
		dto.DeadlineLabel = dates.FormatLong(deadline)
	}
	return dto
}

func (s *Server) toDetailDTO(kind models.Kind, o models.Opportunity) opportunityDTO {
	dto := s.toDTO(kind, o)
	if o.Description != "" {
		dto.DescriptionHTML = s.sanitizer.Sanitize(o.Description)
	}
	return dto
}
