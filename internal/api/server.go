// Package api exposes the listing pipeline as a JSON HTTP API.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/logger"
)

type Server struct {
	Listings *listing.Service
	Echo     *echo.Echo

	log       logger.Logger
	siteURL   string
	sanitizer *bluemonday.Policy
}

// Options configures NewServer.
type Options struct {
	// CORSOrigins are the allowed browser origins.
	CORSOrigins []string
	// SiteURL is the public site root used for sitemap URLs.
	SiteURL string
	Logger  logger.Logger
}

func NewServer(svc *listing.Service, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return ulid.Make().String() },
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []logger.Field{
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.Duration("latency", v.Latency),
				logger.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Error("request", append(fields, logger.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	s := &Server{
		Listings:  svc,
		Echo:      e,
		log:       log,
		siteURL:   opts.SiteURL,
		sanitizer: bluemonday.UGCPolicy(),
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.GET("/sitemap", s.handleSitemap)
	api.GET("/:kind", s.handleList)
	api.GET("/:kind/count", s.handleCount)
	api.GET("/:kind/slugs", s.handleSlugs)
	api.GET("/:kind/filters/:dimension", s.handleFilterOptions)
	api.GET("/:kind/:slug", s.handleDetail)
}

func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.Echo.Shutdown(ctx)
}
