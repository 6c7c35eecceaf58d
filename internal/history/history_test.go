// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, topic := range []string{"graph neural networks", "Quantum Computing", "protein folding"} {
		e := Entry{
			Topic:      topic,
			Slug:       topic,
			Requested:  5,
			Returned:   i + 1,
			SearchedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Topic != "protein folding" {
		t.Errorf("newest topic = %q, want %q", entries[0].Topic, "protein folding")
	}
	if entries[0].Returned != 3 || entries[0].Requested != 5 {
		t.Errorf("counts = %d/%d, want 3/5", entries[0].Returned, entries[0].Requested)
	}
	if !entries[0].SearchedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("SearchedAt = %v", entries[0].SearchedAt)
	}
	if entries[0].ID == "" {
		t.Error("ID should be assigned")
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < defaultRecentLimit+5; i++ {
		if err := s.Record(ctx, Entry{Topic: "t", Slug: "t", Requested: 1}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != defaultRecentLimit {
		t.Errorf("len(entries) = %d, want %d", len(entries), defaultRecentLimit)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), Entry{ID: "fixed", Topic: "a", Slug: "a"}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	entries, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].ID != "fixed" {
		t.Errorf("entries = %+v, want one entry with ID fixed", entries)
	}
}
