package model

import "strconv"

// Rows flattens the summary into the metric,value table in its
// documented order, formatting numbers without trailing zeros.
func (s SummaryStatistics) Rows() []MetricRow {
	return []MetricRow{
		{"session_duration_seconds", formatFloat(s.SessionDurationSeconds)},
		{"session_duration_formatted", s.SessionDurationFormatted},
		{"total_events", strconv.Itoa(s.TotalEvents)},
		{"total_interactions", strconv.Itoa(s.TotalInteractions)},
		{"total_mouse_moves", strconv.Itoa(s.TotalMouseMoves)},
		{"total_clicks", strconv.Itoa(s.TotalClicks)},
		{"total_scrolls", strconv.Itoa(s.TotalScrolls)},
		{"total_keypresses", strconv.Itoa(s.TotalKeypresses)},
		{"total_drags", strconv.Itoa(s.TotalDrags)},
		{"clicks_per_minute", formatFloat(s.ClicksPerMinute)},
		{"actions_per_minute", formatFloat(s.ActionsPerMinute)},
		{"keypresses_per_minute", formatFloat(s.KeypressesPerMinute)},
		{"rage_clicks_detected", strconv.Itoa(s.RageClicksDetected)},
		{"longest_pause_seconds", formatFloat(s.LongestPauseSeconds)},
		{"average_pause_seconds", formatFloat(s.AveragePauseSeconds)},
		{"total_scroll_distance", strconv.Itoa(s.TotalScrollDistance)},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
