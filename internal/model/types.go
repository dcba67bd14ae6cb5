// Package model defines shared data structures.
package model

// EventType identifies the kind of an interaction event. The set is
// closed; per-type tallies index a fixed array rather than a map.
type EventType string

// Interaction event types.
const (
	PointerMove EventType = "pointer_move"
	ButtonDown  EventType = "button_down"
	ButtonUp    EventType = "button_up"
	Scroll      EventType = "scroll"
	KeyDown     EventType = "key_down"
	KeyUp       EventType = "key_up"
	Drag        EventType = "drag"
)

// EventTypes lists every known event type in a stable order.
var EventTypes = []EventType{
	PointerMove, ButtonDown, ButtonUp, Scroll, KeyDown, KeyUp, Drag,
}

// Known reports whether t is one of the fixed event types.
func (t EventType) Known() bool {
	for _, known := range EventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// RedactedKey marks key identity removed by privacy mode.
const RedactedKey = "[REDACTED]"

// InteractionEvent is a single captured interaction. Timestamp is in
// seconds relative to session start. Optional fields are pointers so
// that absence stays distinct from zero.
type InteractionEvent struct {
	Timestamp float64
	Type      EventType

	X, Y   *int    // pointer position
	DX, DY *int    // scroll deltas
	Button *string // pointer button name
	Key    *string // key identity or RedactedKey

	StartX, StartY *int // drag origin
	EndX, EndY     *int // drag destination
}

// ClickPoint is a button press reduced to time and place. X/Y may be
// nil when the press carried no position.
type ClickPoint struct {
	Timestamp float64
	X, Y      *int
}

// RageClickEvent reports a burst of rapid clicks in the same area,
// anchored at the first click of the burst.
type RageClickEvent struct {
	Timestamp  float64
	X, Y       *int
	ClickCount int
}

// SummaryStatistics is the flat metrics record produced by one
// analysis run. Time and rate values are rounded to two decimals,
// the average pause to three.
type SummaryStatistics struct {
	SessionDurationSeconds   float64 `json:"session_duration_seconds"`
	SessionDurationFormatted string  `json:"session_duration_formatted"`
	TotalEvents              int     `json:"total_events"`
	TotalInteractions        int     `json:"total_interactions"`
	TotalMouseMoves          int     `json:"total_mouse_moves"`
	TotalClicks              int     `json:"total_clicks"`
	TotalScrolls             int     `json:"total_scrolls"`
	TotalKeypresses          int     `json:"total_keypresses"`
	TotalDrags               int     `json:"total_drags"`
	ClicksPerMinute          float64 `json:"clicks_per_minute"`
	ActionsPerMinute         float64 `json:"actions_per_minute"`
	KeypressesPerMinute      float64 `json:"keypresses_per_minute"`
	RageClicksDetected       int     `json:"rage_clicks_detected"`
	LongestPauseSeconds      float64 `json:"longest_pause_seconds"`
	AveragePauseSeconds      float64 `json:"average_pause_seconds"`
	TotalScrollDistance      int     `json:"total_scroll_distance"`
}

// MetricRow is one row of the metric,value summary table.
type MetricRow struct {
	Metric string
	Value  string
}

// IntensityBucket counts interactions inside one fixed-width,
// half-open time interval. Boundaries are stored rounded for display.
type IntensityBucket struct {
	TimeStart         float64
	TimeEnd           float64
	TotalInteractions int
	Clicks            int
	Scrolls           int
	Keypresses        int
}
