package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aidanlsb/onenotestats/internal/stats"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "runs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	viewed := "true"
	records := []stats.PageRecord{
		{
			ID:               "p-1",
			Name:             "Today",
			DateTime:         time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			LastModifiedTime: time.Date(2024, 1, 2, 10, 30, 0, 0, time.UTC),
			Location:         `\Work\Tasks`,
		},
		{
			ID:                "p-2",
			Name:              "Kickoff",
			DateTime:          time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
			LastModifiedTime:  time.Date(2024, 2, 3, 17, 15, 0, 0, time.UTC),
			PageLevel:         1,
			IsCurrentlyViewed: &viewed,
			Location:          `\Work\Projects\Alpha`,
		},
	}
	summary := stats.Summary{Notebook: "Work", SectionGroupCount: 1, SectionCount: 2, PageCount: 2}

	runID, err := s.SaveRun(ctx, summary, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Pages(ctx, runID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}

	for i := 1; i <= 2; i++ {
		if _, err := s.SaveRun(ctx, stats.Summary{Notebook: "Work", PageCount: i}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, err := s.SaveRun(ctx, stats.Summary{Notebook: "Other"}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	runs, err := s.Runs(ctx, "Work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Summary.PageCount != 2 || runs[1].Summary.PageCount != 1 {
		t.Errorf("expected newest first, got %+v", runs)
	}
	if !runs[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("unexpected created_at %v", runs[0].CreatedAt)
	}
}
