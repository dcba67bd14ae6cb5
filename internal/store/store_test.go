package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/uxlog/interlog/internal/model"
)

func TestInsertAndListRuns(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "interlog.db")
	st, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	base := time.Unix(1714560000, 0).UTC()
	var ids []int64
	for i := 0; i < 3; i++ {
		stats := model.SummaryStatistics{
			SessionDurationSeconds:   float64(60 * (i + 1)),
			SessionDurationFormatted: "0:01:00",
			TotalEvents:              100 * (i + 1),
			TotalInteractions:        40 * (i + 1),
			TotalClicks:              10,
			ClicksPerMinute:          10,
			RageClicksDetected:       i,
			AveragePauseSeconds:      0.123,
		}
		id, err := st.InsertRun(ctx, "session_events.csv", base.Add(time.Duration(i)*time.Minute), stats)
		if err != nil {
			t.Fatalf("insert run: %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := st.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first.
	if runs[0].ID != ids[2] || runs[1].ID != ids[1] {
		t.Fatalf("unexpected run order: %d, %d", runs[0].ID, runs[1].ID)
	}
	if runs[0].Summary.TotalEvents != 300 {
		t.Fatalf("expected 300 events on newest run, got %d", runs[0].Summary.TotalEvents)
	}
	if runs[0].Summary.RageClicksDetected != 2 {
		t.Fatalf("expected 2 rage clicks, got %d", runs[0].Summary.RageClicksDetected)
	}
	if runs[0].Summary.AveragePauseSeconds != 0.123 {
		t.Fatalf("expected average pause 0.123, got %v", runs[0].Summary.AveragePauseSeconds)
	}
	if !runs[0].AnalyzedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected analyzed_at: %v", runs[0].AnalyzedAt)
	}

	all, err := st.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list all runs: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}
