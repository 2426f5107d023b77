package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/dates"
	"github.com/infortic/infortic/internal/listing"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
	"github.com/infortic/infortic/internal/rowsource"
)

// filterFlags collects repeated -filter name=value arguments.
type filterFlags map[string]string

func (f filterFlags) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	f[name] = value
	return nil
}

func main() {
	filters := filterFlags{}
	kindFlag := flag.String("kind", "lomba", "Entity kind: lomba, beasiswa or magang")
	query := flag.String("q", "", "Search query")
	page := flag.Int("page", 1, "Page number (1-based)")
	flag.Var(filters, "filter", "Category filter as name=value, repeatable (e.g. participant=Mahasiswa)")
	flag.Parse()

	kind, err := models.ParseKind(*kindFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := rowsource.Open(ctx, cfg, logger.NewNop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open row source: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()

	listings, err := config.LoadListings(cfg.ListingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listings config: %v\n", err)
		os.Exit(1)
	}
	svc, err := listing.NewService(store, listings, listing.WithLocation(cfg.Location))
	if err != nil {
		fmt.Fprintf(os.Stderr, "listing service: %v\n", err)
		os.Exit(1)
	}

	res, err := svc.ListPage(ctx, kind, listing.ListParams{Query: *query, Filters: filters, Page: *page})
	if err != nil {
		fmt.Fprintf(os.Stderr, "list %s: %v\n", kind, err)
		os.Exit(1)
	}

	today := svc.Today()
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Slug", "Title", "Organizer", "Deadline", "Days Left"})
	for i, o := range res.Items {
		deadline, daysLeft := "-", "-"
		if d, ok := svc.Deadline(kind, o); ok {
			deadline = dates.FormatLong(d)
			daysLeft = fmt.Sprint(dates.DaysLeft(d, today))
		}
		t.AppendRow(table.Row{(res.Page-1)*res.PageSize + i + 1, o.Slug, o.Title, o.Organizer, deadline, daysLeft})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("Total %d", res.Total), "", "Pages", strings.Join(listing.PageLabels(res.Page, res.TotalPages), " ")})
	t.Render()
}
