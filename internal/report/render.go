package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/uxlog/interlog/internal/model"
	"github.com/uxlog/interlog/internal/store"
)

// RenderSummary prints the session summary block.
func RenderSummary(w io.Writer, stats model.SummaryStatistics) error {
	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"", [][2]string{
			{"Session Duration", stats.SessionDurationFormatted},
			{"Total Events", strconv.Itoa(stats.TotalEvents)},
			{"Total Interactions", strconv.Itoa(stats.TotalInteractions)},
		}},
		{"Event Counts", [][2]string{
			{"Mouse Moves", strconv.Itoa(stats.TotalMouseMoves)},
			{"Clicks", strconv.Itoa(stats.TotalClicks)},
			{"Scrolls", strconv.Itoa(stats.TotalScrolls)},
			{"Keypresses", strconv.Itoa(stats.TotalKeypresses)},
			{"Drags", strconv.Itoa(stats.TotalDrags)},
		}},
		{"Rates (per minute)", [][2]string{
			{"Clicks/min", fmt.Sprintf("%.2f", stats.ClicksPerMinute)},
			{"Actions/min", fmt.Sprintf("%.2f", stats.ActionsPerMinute)},
			{"Keypresses/min", fmt.Sprintf("%.2f", stats.KeypressesPerMinute)},
		}},
		{"Behavioral Patterns", [][2]string{
			{"Rage Clicks", strconv.Itoa(stats.RageClicksDetected)},
			{"Longest Pause", fmt.Sprintf("%.2fs", stats.LongestPauseSeconds)},
			{"Average Pause", fmt.Sprintf("%.3fs", stats.AveragePauseSeconds)},
			{"Total Scroll Distance", fmt.Sprintf("%d pixels", stats.TotalScrollDistance)},
		}},
	}

	if _, err := fmt.Fprintln(w, "Interaction Log Summary"); err != nil {
		return err
	}
	for _, section := range sections {
		if section.title != "" {
			if _, err := fmt.Fprintf(w, "\n--- %s ---\n", section.title); err != nil {
				return err
			}
		}
		for _, row := range section.rows {
			if _, err := fmt.Fprintf(w, "%s: %s\n", row[0], row[1]); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderIntensity prints the per-bucket table followed by a sparkline
// of interaction counts sized to totalWidth.
func RenderIntensity(w io.Writer, buckets []model.IntensityBucket, totalWidth int) error {
	if len(buckets) == 0 {
		_, err := fmt.Fprintln(w, "No intensity data.")
		return err
	}

	headers := []string{"Start", "End", "Interactions", "Clicks", "Scrolls", "Keypresses"}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			fmt.Sprintf("%.2f", b.TimeStart),
			fmt.Sprintf("%.2f", b.TimeEnd),
			strconv.Itoa(b.TotalInteractions),
			strconv.Itoa(b.Clicks),
			strconv.Itoa(b.Scrolls),
			strconv.Itoa(b.Keypresses),
		})
	}
	rightAlign := map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}

	if _, err := fmt.Fprintln(w, "Interaction Intensity"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = float64(b.TotalInteractions)
	}
	if totalWidth > 0 {
		values = resample(values, totalWidth)
	}
	if _, err := fmt.Fprintf(w, "\nIntensity: %s\n\n", Sparkline(values)); err != nil {
		return err
	}
	return nil
}

// RenderRuns prints the analysis history table, newest first.
func RenderRuns(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No analysis runs recorded.")
		return err
	}
	headers := []string{"Analyzed", "Source", "Events", "Interactions", "Rage", "Duration"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.AnalyzedAt.Local().Format(time.DateTime),
			run.SourcePath,
			strconv.Itoa(run.Summary.TotalEvents),
			strconv.Itoa(run.Summary.TotalInteractions),
			strconv.Itoa(run.Summary.RageClicksDetected),
			run.Summary.SessionDurationFormatted,
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
