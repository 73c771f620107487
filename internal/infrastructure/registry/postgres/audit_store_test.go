package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

func newAuditStoreWithMock(t *testing.T) (*AuditStore, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &AuditStore{db: db}, mock, func() { _ = db.Close() }
}

func TestInsertEventWritesFullOutcome(t *testing.T) {
	store, mock, done := newAuditStoreWithMock(t)
	defer done()

	checked := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs("evt-1", "req-1", "section_lookup", "bns-103", "statute_section",
			"BNS", "103", "", "VERIFIED", "RELEVANT", true, true, checked).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.InsertEvent(context.Background(), domain.AuditEvent{
		ID:            "evt-1",
		RequestID:     "req-1",
		QueryType:     domain.QuerySectionLookup,
		CandidateID:   "bns-103",
		SourceType:    domain.SourceStatuteSection,
		ActCode:       "BNS",
		SectionNumber: "103",
		Existence:     domain.ExistenceVerified,
		Relevance:     domain.RelevanceRelevant,
		Retained:      true,
		Primary:       true,
		CheckedAt:     checked,
	})
	if err != nil {
		t.Fatalf("InsertEvent() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListEventsScansRange(t *testing.T) {
	store, mock, done := newAuditStoreWithMock(t)
	defer done()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	checked := from.Add(36 * time.Hour)

	columns := []string{
		"id", "request_id", "query_type", "candidate_id", "source_type",
		"act_code", "section_number", "case_citation",
		"existence", "relevance", "retained", "is_primary", "checked_at",
	}
	mock.ExpectQuery("SELECT id, request_id, query_type").
		WithArgs(from, to, 500).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("evt-1", "req-1", "criminal_offence", "bns-103", "statute_section",
				"BNS", "103", "", "VERIFIED", "RELEVANT", true, true, checked).
			AddRow("evt-2", "req-1", "criminal_offence", "fake-99", "statute_section",
				"BNS", "999", "", "NOT_FOUND", "", false, false, checked))

	events, err := store.ListEvents(context.Background(), from, to, 500)
	if err != nil {
		t.Fatalf("ListEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Existence != domain.ExistenceVerified || !events[0].Primary {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Existence != domain.ExistenceNotFound || events[1].Retained {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
