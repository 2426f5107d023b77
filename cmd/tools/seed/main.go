package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/infortic/infortic/internal/config"
	"github.com/infortic/infortic/internal/logger"
	"github.com/infortic/infortic/internal/models"
	"github.com/infortic/infortic/internal/rowsource"
)

var monthAbbrev = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// dateText renders t as "D MMM YYYY", the format used by date_text.
func dateText(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), monthAbbrev[t.Month()-1], t.Year())
}

// seeds builds a development dataset with deadlines relative to now so that
// most rows are listed and a few are already expired.
func seeds(now time.Time) []models.Opportunity {
	day := func(n int) time.Time { return now.AddDate(0, 0, n) }

	return []models.Opportunity{
		{
			Kind:            models.KindCompetition,
			Slug:            "hackathon-nasional-inovasi-digital",
			Title:           "Hackathon Nasional Inovasi Digital",
			Organizer:       "Kementerian Komunikasi dan Digital",
			Description:     "<p>Bangun solusi digital untuk layanan publik dalam 48 jam.</p>",
			Participant:     "Mahasiswa D3/D4/S1 seluruh Indonesia",
			Location:        "DKI Jakarta",
			PriceText:       "Gratis",
			DeadlineText:    dateText(day(-10)) + " - " + dateText(day(14)),
			RegistrationURL: "https://example.com/hackathon/daftar",
		},
		{
			Kind:         models.KindCompetition,
			Slug:         "lomba-karya-tulis-ilmiah-sma",
			Title:        "Lomba Karya Tulis Ilmiah Tingkat SMA",
			Organizer:    "Universitas Gadjah Mada",
			Description:  "<p>Tema: ketahanan pangan berkelanjutan.</p>",
			Participant:  "Siswa SMA/SMK sederajat",
			PriceText:    "Rp 75.000 / tim",
			DeadlineText: dateText(day(3)),
		},
		{
			Kind:         models.KindCompetition,
			Slug:         "kompetisi-desain-poster-umum",
			Title:        "Kompetisi Desain Poster",
			Organizer:    "Komunitas Kreatif Bandung",
			Description:  "Desain poster bertema lingkungan.",
			Participant:  "Umum",
			PriceText:    "Rp 25.000 - Rp 50.000",
			DeadlineText: dateText(day(30)),
		},
		{
			Kind:         models.KindCompetition,
			Slug:         "olimpiade-sains-smp-2024",
			Title:        "Olimpiade Sains SMP",
			Organizer:    "Dinas Pendidikan",
			Participant:  "Siswa SMP/MTs",
			PriceText:    "Rp 150.000",
			DeadlineText: dateText(day(-5)),
		},
		{
			Kind:           models.KindScholarship,
			Slug:           "beasiswa-lpdp-reguler",
			Title:          "Beasiswa LPDP Reguler",
			Organizer:      "Lembaga Pengelola Dana Pendidikan",
			Description:    "<p>Pendanaan penuh studi magister dan doktoral.</p>",
			EducationLevel: "S2, S3",
			Location:       "Dalam Negeri, Luar Negeri",
			DeadlineText:   day(21).Format("2006-01-02"),
			SourceURL:      "https://example.com/lpdp",
		},
		{
			Kind:           models.KindScholarship,
			Slug:           "beasiswa-unggulan-s1",
			Title:          "Beasiswa Unggulan",
			Organizer:      "Kemendikbudristek",
			EducationLevel: "S1 dan D4",
			Location:       "Dalam Negeri",
			DeadlineText:   dateText(day(7)),
		},
		{
			Kind:            models.KindInternship,
			Slug:            "backend-engineer-intern-gojek",
			Title:           "Backend Engineer Intern",
			Organizer:       "Gojek",
			Description:     "Membangun layanan Go berskala besar.",
			Field:           "Teknologi Informasi",
			Location:        "DKI Jakarta",
			CompanyLocation: "Jakarta Selatan",
			Criteria:        "Mahasiswa tingkat akhir jurusan Informatika",
			SourceURL:       "https://example.com/gojek/backend-intern",
			CreatedAt:       day(-1),
		},
		{
			Kind:      models.KindInternship,
			Slug:      "data-analyst-intern-tokopedia",
			Title:     "Data Analyst Intern",
			Organizer: "Tokopedia",
			Field:     "Data",
			Location:  "Bandung, Jawa Barat",
			CreatedAt: day(-3),
		},
	}
}

func main() {
	dryRun := flag.Bool("dry-run", false, "Print the dataset without writing it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	rows := seeds(time.Now().In(cfg.Location))
	if *dryRun {
		for _, o := range rows {
			fmt.Printf("%-8s %-40s %s\n", o.Kind, o.Slug, o.DeadlineText)
		}
		return
	}

	ctx := context.Background()
	store, closeStore, err := rowsource.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Unable to open row source", logger.Error(err))
	}
	defer closeStore()

	saved := 0
	for _, o := range rows {
		o.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(o.Kind)+"/"+o.Slug))
		if err := store.Upsert(ctx, o); err != nil {
			log.Error("Seed failed", logger.String("slug", o.Slug), logger.Error(err))
			continue
		}
		saved++
	}
	log.Info("Seed finished", logger.Int("saved", saved), logger.Int("total", len(rows)))
}
