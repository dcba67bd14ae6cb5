package eventlog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/uxlog/interlog/internal/model"
)

// Writer appends interaction events to a session CSV file. The header
// is written on creation; Append flushes each batch so a crashed
// session keeps everything flushed so far.
type Writer struct {
	file *os.File
	csv  *csv.Writer
}

// NewWriter creates the events file and writes its header.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create events file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(eventColumns); err != nil {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &Writer{file: f, csv: w}, nil
}

// Append writes a batch of events and flushes them to disk.
func (w *Writer) Append(events []model.InteractionEvent) error {
	for _, ev := range events {
		if err := w.csv.Write(eventRecord(ev)); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}
	return nil
}

// Close flushes and closes the events file.
func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		if cerr := w.file.Close(); cerr != nil {
			_ = cerr
		}
		return fmt.Errorf("failed to flush events: %w", err)
	}
	return w.file.Close()
}

func eventRecord(ev model.InteractionEvent) []string {
	return []string{
		strconv.FormatFloat(ev.Timestamp, 'f', -1, 64),
		string(ev.Type),
		intField(ev.X),
		intField(ev.Y),
		stringField(ev.Button),
		intField(ev.DX),
		intField(ev.DY),
		stringField(ev.Key),
		intField(ev.StartX),
		intField(ev.StartY),
		intField(ev.EndX),
		intField(ev.EndY),
	}
}

func intField(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func stringField(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// WriteSummary writes the metric,value summary table.
func WriteSummary(path string, stats model.SummaryStatistics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"metric", "value"}); err != nil {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
		return fmt.Errorf("failed to write summary: %w", err)
	}
	for _, row := range stats.Rows() {
		if err := w.Write([]string{row.Metric, row.Value}); err != nil {
			if cerr := f.Close(); cerr != nil {
				_ = cerr
			}
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return f.Close()
}

// WriteSummaryJSON writes the summary as a JSON object.
func WriteSummaryJSON(path string, stats model.SummaryStatistics) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write summary json: %w", err)
	}
	return nil
}

// WriteIntensity writes the per-bucket intensity table.
func WriteIntensity(path string, buckets []model.IntensityBucket) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create intensity file: %w", err)
	}
	w := csv.NewWriter(f)
	header := []string{"time_start", "time_end", "total_interactions", "clicks", "scrolls", "keypresses"}
	if err := w.Write(header); err != nil {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
		return fmt.Errorf("failed to write intensity: %w", err)
	}
	for _, b := range buckets {
		record := []string{
			strconv.FormatFloat(b.TimeStart, 'f', -1, 64),
			strconv.FormatFloat(b.TimeEnd, 'f', -1, 64),
			strconv.Itoa(b.TotalInteractions),
			strconv.Itoa(b.Clicks),
			strconv.Itoa(b.Scrolls),
			strconv.Itoa(b.Keypresses),
		}
		if err := w.Write(record); err != nil {
			if cerr := f.Close(); cerr != nil {
				_ = cerr
			}
			return fmt.Errorf("failed to write intensity: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		if cerr := f.Close(); cerr != nil {
			_ = cerr
		}
		return fmt.Errorf("failed to write intensity: %w", err)
	}
	return f.Close()
}
