package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
	"github.com/infortic/infortic/internal/rowsource"
)

// verify_db reports, per kind, how many rows exist and how many of them the
// listing pages can actually show.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewNop()

	ctx := context.Background()
	store, closeStore, err := rowsource.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open row source: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	svc, err := listing.NewService(store, nil, listing.WithLocation(cfg.Location))
	if err != nil {
		fmt.Fprintf(os.Stderr, "listing service: %v\n", err)
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Kind", "Rows", "Parseable Deadline", "Listed"})

	for _, kind := range models.Kinds {
		rows, err := store.FetchAll(ctx, kind)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Query %s failed: %v\n", kind, err)
			os.Exit(1)
		}

		parseable := "-"
		if spec, _ := svc.Spec(kind); spec.Deadline != nil {
			n := 0
			for _, o := range rows {
				if _, ok := svc.Deadline(kind, o); ok {
					n++
				}
			}
			parseable = fmt.Sprint(n)
		}

		listed, err := svc.CountMatching(ctx, kind, "", nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count %s failed: %v\n", kind, err)
			os.Exit(1)
		}

		t.AppendRow(table.Row{kind, len(rows), parseable, listed})
	}
	t.Render()
}
