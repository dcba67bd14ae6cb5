package eventlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/uxlog/interlog/internal/model"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadEvents(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"timestamp,event_type,x,y,button,dx,dy,key,start_x,start_y,end_x,end_y",
		"0.0,pointer_move,10,20,,,,,,,,",
		"0.5,button_down,10,20,Button.left,,,,,,,",
		"1.0,scroll,10,20,,0,-3,,,,,",
		"1.5,key_down,,,,,,a,,,,",
		"2.0,drag,,,,,,,10,20,50,60",
	}, "\n") + "\n")

	events, skipped, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("expected no skipped rows, got %d", skipped)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}
	if events[0].Type != model.PointerMove || events[0].X == nil || *events[0].X != 10 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Button == nil || *events[1].Button != "Button.left" {
		t.Fatalf("expected button field, got %+v", events[1])
	}
	if events[2].DY == nil || *events[2].DY != -3 {
		t.Fatalf("expected dy=-3, got %+v", events[2])
	}
	if events[2].Key != nil {
		t.Fatalf("expected absent key on scroll, got %q", *events[2].Key)
	}
	if events[3].Key == nil || *events[3].Key != "a" {
		t.Fatalf("expected key=a, got %+v", events[3])
	}
	if events[4].StartX == nil || *events[4].StartX != 10 || events[4].EndY == nil || *events[4].EndY != 60 {
		t.Fatalf("unexpected drag fields: %+v", events[4])
	}
}

func TestReadEventsSkipsMalformedRows(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"timestamp,event_type,x,y,button,dx,dy,key,start_x,start_y,end_x,end_y",
		",button_down,1,1,,,,,,,,",           // missing timestamp
		"abc,button_down,1,1,,,,,,,,",        // unparseable timestamp
		"1.0,,1,1,,,,,,,,",                   // missing type
		"2.0,teleport,1,1,,,,,,,,",           // unknown type
		"3.0,button_down,oops,1,,,,,,,,",     // bad x becomes absent
		"4.0,key_down,,,,,,Key.enter,,,,",    // fine
	}, "\n") + "\n")

	events, skipped, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if skipped != 4 {
		t.Fatalf("expected 4 skipped rows, got %d", skipped)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].X != nil {
		t.Fatalf("expected unparseable x to be absent, got %d", *events[0].X)
	}
	if events[0].Y == nil || *events[0].Y != 1 {
		t.Fatalf("expected y=1, got %+v", events[0])
	}
}

func TestReadEventsLegacyTypeNames(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"timestamp,event_type,x,y,button,dx,dy,key,start_x,start_y,end_x,end_y",
		"0.0,mouse_move,5,5,,,,,,,,",
		"0.5,mouse_down,5,5,Button.left,,,,,,,",
		"1.0,key_press,,,,,,x,,,,",
		"1.5,key_release,,,,,,x,,,,",
	}, "\n") + "\n")

	events, skipped, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("expected no skipped rows, got %d", skipped)
	}
	want := []model.EventType{model.PointerMove, model.ButtonDown, model.KeyDown, model.KeyUp}
	for i, w := range want {
		if events[i].Type != w {
			t.Fatalf("event %d: expected %s, got %s", i, w, events[i].Type)
		}
	}
}

func TestReadEventsFloatPositions(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"timestamp,event_type,x,y,button,dx,dy,key,start_x,start_y,end_x,end_y",
		"0.0,button_down,10.7,20.2,,,,,,,,",
	}, "\n") + "\n")

	events, _, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if *events[0].X != 10 || *events[0].Y != 20 {
		t.Fatalf("expected truncated positions 10,20, got %d,%d", *events[0].X, *events[0].Y)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	x, y, dy := 42, 17, -2
	key := "a"
	batch := []model.InteractionEvent{
		{Timestamp: 0.25, Type: model.ButtonDown, X: &x, Y: &y},
		{Timestamp: 0.5, Type: model.Scroll, X: &x, Y: &y, DY: &dy},
		{Timestamp: 0.75, Type: model.KeyDown, Key: &key},
	}
	if err := w.Append(batch); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	events, skipped, err := ReadEvents(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if skipped != 0 || len(events) != 3 {
		t.Fatalf("expected 3 events and no skips, got %d/%d", len(events), skipped)
	}
	if events[0].Timestamp != 0.25 || *events[0].X != 42 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if *events[1].DY != -2 {
		t.Fatalf("expected dy=-2, got %+v", events[1])
	}
	if *events[2].Key != "a" {
		t.Fatalf("expected key=a, got %+v", events[2])
	}
}

func TestWriteSummaryAndIntensity(t *testing.T) {
	dir := t.TempDir()
	stats := model.SummaryStatistics{
		SessionDurationSeconds:   12.5,
		SessionDurationFormatted: "0:00:12",
		TotalEvents:              4,
		TotalInteractions:        3,
		ClicksPerMinute:          4.8,
	}
	summaryPath := filepath.Join(dir, "summary.csv")
	if err := WriteSummary(summaryPath, stats); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "metric,value" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines) != 17 {
		t.Fatalf("expected header plus 16 metrics, got %d lines", len(lines))
	}
	if lines[1] != "session_duration_seconds,12.5" {
		t.Fatalf("unexpected first metric: %q", lines[1])
	}

	buckets := []model.IntensityBucket{
		{TimeStart: 0, TimeEnd: 5, TotalInteractions: 2, Clicks: 1},
		{TimeStart: 5, TimeEnd: 10, TotalInteractions: 1, Scrolls: 1},
	}
	intensityPath := filepath.Join(dir, "intensity.csv")
	if err := WriteIntensity(intensityPath, buckets); err != nil {
		t.Fatalf("write intensity: %v", err)
	}
	data, err = os.ReadFile(intensityPath)
	if err != nil {
		t.Fatalf("read intensity: %v", err)
	}
	lines = strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "time_start,time_end,total_interactions,clicks,scrolls,keypresses" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "0,5,2,1,0,0" {
		t.Fatalf("unexpected bucket row: %q", lines[1])
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	meta := Metadata{
		SessionName: "study_p1",
		StartTime:   "2024-05-01T10:00:00Z",
		PrivacyMode: true,
		OutputDir:   "/tmp/sessions",
	}
	if err := WriteMetadata(path, meta); err != nil {
		t.Fatalf("write metadata: %v", err)
	}
	got, err := ReadMetadata(path)
	if err != nil {
		t.Fatalf("read metadata: %v", err)
	}
	if got.SessionName != meta.SessionName || !got.PrivacyMode {
		t.Fatalf("unexpected metadata: %+v", got)
	}
}
