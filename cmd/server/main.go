package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/infortic/infortic/internal/api"
	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/rowsource"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: cfg.Development()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := rowsource.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open row source", logger.Error(err))
	}
	defer closeStore()

	listings, err := config.LoadListings(cfg.ListingsPath)
	if err != nil {
		log.Fatal("Failed to load listings config", logger.Error(err))
	}

	svc, err := listing.NewService(store, listings,
		listing.WithLocation(cfg.Location),
		listing.WithLogger(log),
	)
	if err != nil {
		log.Fatal("Failed to build listing service", logger.Error(err))
	}

	srv := api.NewServer(svc, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		SiteURL:     cfg.SiteURL,
		Logger:      log,
	})

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Shutdown failed", logger.Error(err))
		}
	}()

	log.Info("Server starting",
		logger.String("port", cfg.Port),
		logger.String("row_source", cfg.RowSource),
		logger.Strings("cors_origins", cfg.CORSOrigins),
		logger.Bool("development", cfg.Development()),
	)
	if err := srv.Start(cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server stopped", logger.Error(err))
	}
}
