// Package eventlog reads and writes interaction session files.
package eventlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/uxlog/interlog/internal/model"
)

// Columns of an events CSV file, in order.
var eventColumns = []string{
	"timestamp", "event_type", "x", "y", "button",
	"dx", "dy", "key", "start_x", "start_y", "end_x", "end_y",
}

// Older session files use the original InterLog type names.
var legacyTypes = map[string]model.EventType{
	"mouse_move":  model.PointerMove,
	"mouse_down":  model.ButtonDown,
	"mouse_up":    model.ButtonUp,
	"key_press":   model.KeyDown,
	"key_release": model.KeyUp,
}

// ReadEvents loads a session events CSV. Rows missing a timestamp or a
// recognizable event type are skipped and counted, never fatal; a
// malformed optional field becomes an absent field. The returned
// events keep file order.
func ReadEvents(path string) ([]model.InteractionEvent, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open events file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of a read-only file.
			_ = cerr
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["timestamp"]; !ok {
		return nil, 0, fmt.Errorf("events file has no timestamp column")
	}
	if _, ok := cols["event_type"]; !ok {
		return nil, 0, fmt.Errorf("events file has no event_type column")
	}

	var events []model.InteractionEvent
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Treat an unparseable row like any other malformed record.
			skipped++
			continue
		}
		ev, ok := parseEvent(record, cols)
		if !ok {
			skipped++
			continue
		}
		events = append(events, ev)
	}
	return events, skipped, nil
}

func parseEvent(record []string, cols map[string]int) (model.InteractionEvent, bool) {
	tsField := field(record, cols, "timestamp")
	typeField := field(record, cols, "event_type")
	if tsField == "" || typeField == "" {
		return model.InteractionEvent{}, false
	}
	ts, err := strconv.ParseFloat(tsField, 64)
	if err != nil {
		return model.InteractionEvent{}, false
	}
	eventType, ok := resolveType(typeField)
	if !ok {
		return model.InteractionEvent{}, false
	}

	ev := model.InteractionEvent{Timestamp: ts, Type: eventType}
	ev.X = optionalInt(field(record, cols, "x"))
	ev.Y = optionalInt(field(record, cols, "y"))
	ev.DX = optionalInt(field(record, cols, "dx"))
	ev.DY = optionalInt(field(record, cols, "dy"))
	ev.Button = optionalString(field(record, cols, "button"))
	ev.Key = optionalString(field(record, cols, "key"))
	ev.StartX = optionalInt(field(record, cols, "start_x"))
	ev.StartY = optionalInt(field(record, cols, "start_y"))
	ev.EndX = optionalInt(field(record, cols, "end_x"))
	ev.EndY = optionalInt(field(record, cols, "end_y"))
	return ev, true
}

func resolveType(raw string) (model.EventType, bool) {
	t := model.EventType(raw)
	if t.Known() {
		return t, true
	}
	if mapped, ok := legacyTypes[raw]; ok {
		return mapped, true
	}
	return "", false
}

func field(record []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// optionalInt accepts float syntax, truncates to int, and is absent
// on anything unparseable.
func optionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	v := int(f)
	return &v
}

func optionalString(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
