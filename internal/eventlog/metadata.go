package eventlog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata is the JSON sidecar written next to a session events file.
// It is written when recording starts and completed when it stops.
type Metadata struct {
	SessionName     string  `json:"session_name"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time,omitempty"`
	PrivacyMode     bool    `json:"privacy_mode"`
	OutputDir       string  `json:"output_dir"`
	TotalEvents     int     `json:"total_events"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// WriteMetadata writes the metadata file, replacing any previous one.
func WriteMetadata(path string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// ReadMetadata loads a session metadata file.
func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse metadata: %w", err)
	}
	return meta, nil
}
