package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/uxlog/interlog/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Start", "Interactions"}
	rows := [][]string{
		{"0.00", "12"},
		{"5.00", "3"},
	}
	rightAlign := map[int]bool{0: true, 1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Start Interactions" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != " 0.00           12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != " 5.00            3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{0, 5, 10})
	if len(line) != 3 {
		t.Fatalf("expected 3 chars, got %d", len(line))
	}
	if line[0] != ' ' || line[2] != '@' {
		t.Fatalf("unexpected sparkline %q", line)
	}
	flat := Sparkline([]float64{4, 4, 4, 4})
	if flat != "++++" {
		t.Fatalf("expected flat sparkline, got %q", flat)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline for no values")
	}
}

func TestResample(t *testing.T) {
	values := []float64{1, 1, 3, 3, 5, 5}
	out := resample(values, 3)
	if len(out) != 3 {
		t.Fatalf("expected 3 points, got %d", len(out))
	}
	if out[0] != 1 || out[1] != 3 || out[2] != 5 {
		t.Fatalf("unexpected resampled values: %v", out)
	}
	same := resample(values, 10)
	if len(same) != len(values) {
		t.Fatalf("expected unchanged length, got %d", len(same))
	}
}

func TestRenderSummary(t *testing.T) {
	stats := model.SummaryStatistics{
		SessionDurationFormatted: "0:01:30",
		TotalEvents:              120,
		TotalInteractions:        40,
		TotalMouseMoves:          80,
		TotalClicks:              12,
		ClicksPerMinute:          8,
		RageClicksDetected:       2,
		AveragePauseSeconds:      0.125,
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, stats); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Session Duration: 0:01:30",
		"Total Events: 120",
		"Clicks/min: 8.00",
		"Rage Clicks: 2",
		"Average Pause: 0.125s",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderIntensity(t *testing.T) {
	buckets := []model.IntensityBucket{
		{TimeStart: 0, TimeEnd: 5, TotalInteractions: 4, Clicks: 2},
		{TimeStart: 5, TimeEnd: 10, TotalInteractions: 1, Scrolls: 1},
	}
	var buf bytes.Buffer
	if err := RenderIntensity(&buf, buckets, 40); err != nil {
		t.Fatalf("render intensity: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Interaction Intensity") {
		t.Fatalf("missing title:\n%s", out)
	}
	if !strings.Contains(out, "Intensity: ") {
		t.Fatalf("missing sparkline:\n%s", out)
	}

	buf.Reset()
	if err := RenderIntensity(&buf, nil, 40); err != nil {
		t.Fatalf("render empty intensity: %v", err)
	}
	if !strings.Contains(buf.String(), "No intensity data.") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}
