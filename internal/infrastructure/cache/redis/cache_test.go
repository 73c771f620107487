package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/SachinASIET26/Neethi-sub000/internal/core/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := New(mr.Addr(), "", 0, time.Minute)
	defer cache.Close()

	bundle := &domain.ResponseBundle{
		RequestID: "req-1",
		Query:     "BNS 103",
		QueryType: domain.QuerySectionLookup,
		Status:    domain.StatusVerified,
		Citations: []domain.Citation{
			{Candidate: domain.Candidate{ID: "bns-103"}, Primary: true},
		},
	}
	if err := cache.Set(context.Background(), "neethi:response:abc", bundle); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, hit, err := cache.Get(context.Background(), "neethi:response:abc")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !hit {
		t.Fatalf("expected a hit")
	}
	if got.Status != domain.StatusVerified || len(got.Citations) != 1 || got.Citations[0].Candidate.ID != "bns-103" {
		t.Fatalf("bundle did not survive the round trip: %+v", got)
	}
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := New(mr.Addr(), "", 0, time.Minute)
	defer cache.Close()

	_, hit, err := cache.Get(context.Background(), "neethi:response:absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Fatalf("expected a miss")
	}
}

func TestCacheEntriesExpire(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := New(mr.Addr(), "", 0, time.Minute)
	defer cache.Close()

	if err := cache.Set(context.Background(), "k", &domain.ResponseBundle{RequestID: "r"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	_, hit, err := cache.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Fatalf("expected entry to expire")
	}
}

func TestCacheDropsUndecodableEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := New(mr.Addr(), "", 0, time.Minute)
	defer cache.Close()

	if err := mr.Set("k", "not json"); err != nil {
		t.Fatalf("seed key: %v", err)
	}

	_, hit, err := cache.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if hit {
		t.Fatalf("expected a miss for undecodable entry")
	}
	if mr.Exists("k") {
		t.Fatalf("undecodable entry must be evicted")
	}
}
