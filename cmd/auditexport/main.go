package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"

	"github.com/SachinASIET26/Neethi-sub000/internal/config"
	registrypg "github.com/SachinASIET26/Neethi-sub000/internal/infrastructure/registry/postgres"
)

const sheetName = "Verification"

// auditexport dumps a window of the verification audit trail to a
// spreadsheet for compliance review.
func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	var (
		fromFlag  = flag.String("from", "", "window start, RFC3339 (default: 24h ago)")
		toFlag    = flag.String("to", "", "window end, RFC3339 (default: now)")
		outFlag   = flag.String("out", "audit_events.xlsx", "output file path")
		limitFlag = flag.Int("limit", 10000, "maximum events to export")
	)
	flag.Parse()

	from, to, err := parseWindow(*fromFlag, *toFlag)
	if err != nil {
		log.Fatalf("invalid window: %v", err)
	}

	cfg := config.Load()
	db, err := registrypg.OpenDB(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	events, err := registrypg.NewAuditStore(db).ListEvents(ctx, from, to, *limitFlag)
	if err != nil {
		log.Fatalf("list audit events: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Fatalf("rename sheet: %v", err)
	}

	headers := []string{
		"ID", "Request ID", "Query Type", "Candidate", "Source",
		"Act", "Section", "Case Citation", "Existence", "Relevance",
		"Retained", "Primary", "Checked At",
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			log.Fatalf("header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			log.Fatalf("write header: %v", err)
		}
	}

	for i, event := range events {
		values := []any{
			event.ID, event.RequestID, string(event.QueryType), event.CandidateID, string(event.SourceType),
			event.ActCode, event.SectionNumber, event.CaseCitation, string(event.Existence), string(event.Relevance),
			event.Retained, event.Primary, event.CheckedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				log.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				log.Fatalf("write row %d: %v", i+2, err)
			}
		}
	}

	if err := f.SaveAs(*outFlag); err != nil {
		log.Fatalf("save %s: %v", *outFlag, err)
	}
	log.Printf("exported %d events (%s to %s) to %s", len(events), from.Format(time.RFC3339), to.Format(time.RFC3339), *outFlag)
}

func parseWindow(fromRaw, toRaw string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.Add(-24 * time.Hour)
	to := now

	var err error
	if fromRaw != "" {
		from, err = time.Parse(time.RFC3339, fromRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse -from: %w", err)
		}
	}
	if toRaw != "" {
		to, err = time.Parse(time.RFC3339, toRaw)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse -to: %w", err)
		}
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("-to must be after -from")
	}
	return from, to, nil
}
