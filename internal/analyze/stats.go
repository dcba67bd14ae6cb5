// Package analyze computes behavioral statistics over interaction logs.
package analyze

import (
	"errors"
	"fmt"
	"math"

	"github.com/uxlog/interlog/internal/model"
)

// Default detector and bucketizer parameters, overridable by the caller.
const (
	DefaultRageWindowSeconds = 1.0
	DefaultRageDistancePx    = 50.0
	DefaultBucketSeconds     = 5.0
)

// ErrNoEvents signals an empty session. An empty session is a valid
// outcome, so callers should report "no data" rather than fail.
var ErrNoEvents = errors.New("no events to analyze")

// Options tunes the rage-click detector used by Calculate.
type Options struct {
	RageWindowSeconds float64
	RageDistancePx    float64
}

// DefaultOptions returns the standard detector parameters.
func DefaultOptions() Options {
	return Options{
		RageWindowSeconds: DefaultRageWindowSeconds,
		RageDistancePx:    DefaultRageDistancePx,
	}
}

func (o Options) validate() error {
	if o.RageWindowSeconds <= 0 {
		return fmt.Errorf("rage window must be > 0, got %v", o.RageWindowSeconds)
	}
	if o.RageDistancePx <= 0 {
		return fmt.Errorf("rage distance must be > 0, got %v", o.RageDistancePx)
	}
	return nil
}

// Calculate produces the summary statistics record for a session.
// It is a pure function of its inputs; repeated calls over the same
// sequence yield identical results.
func Calculate(events []model.InteractionEvent, opts Options) (model.SummaryStatistics, error) {
	if err := opts.validate(); err != nil {
		return model.SummaryStatistics{}, err
	}
	if len(events) == 0 {
		return model.SummaryStatistics{}, ErrNoEvents
	}

	var counts typeCounts
	for _, ev := range events {
		counts.add(ev.Type)
	}

	minTS, maxTS := events[0].Timestamp, events[0].Timestamp
	for _, ev := range events[1:] {
		if ev.Timestamp < minTS {
			minTS = ev.Timestamp
		}
		if ev.Timestamp > maxTS {
			maxTS = ev.Timestamp
		}
	}
	duration := maxTS - minTS

	var longestPause, pauseSum float64
	pauseCount := 0
	for i := 1; i < len(events); i++ {
		gap := events[i].Timestamp - events[i-1].Timestamp
		if pauseCount == 0 || gap > longestPause {
			longestPause = gap
		}
		pauseSum += gap
		pauseCount++
	}
	avgPause := 0.0
	if pauseCount > 0 {
		avgPause = pauseSum / float64(pauseCount)
	}

	scrollDistance := 0
	for _, ev := range events {
		if ev.Type != model.Scroll || ev.DY == nil {
			continue
		}
		if *ev.DY < 0 {
			scrollDistance -= *ev.DY
		} else {
			scrollDistance += *ev.DY
		}
	}

	totalInteractions := len(events) - counts.get(model.PointerMove)

	rageClicks := DetectRageClicks(ExtractClicks(events), opts.RageWindowSeconds, opts.RageDistancePx)

	return model.SummaryStatistics{
		SessionDurationSeconds:   duration,
		SessionDurationFormatted: formatDuration(int(duration)),
		TotalEvents:              len(events),
		TotalInteractions:        totalInteractions,
		TotalMouseMoves:          counts.get(model.PointerMove),
		TotalClicks:              counts.get(model.ButtonDown),
		TotalScrolls:             counts.get(model.Scroll),
		TotalKeypresses:          counts.get(model.KeyDown),
		TotalDrags:               counts.get(model.Drag),
		ClicksPerMinute:          round2(ratePerMinute(counts.get(model.ButtonDown), duration)),
		ActionsPerMinute:         round2(ratePerMinute(totalInteractions, duration)),
		KeypressesPerMinute:      round2(ratePerMinute(counts.get(model.KeyDown), duration)),
		RageClicksDetected:       len(rageClicks),
		LongestPauseSeconds:      round2(longestPause),
		AveragePauseSeconds:      round3(avgPause),
		TotalScrollDistance:      scrollDistance,
	}, nil
}

// ExtractClicks reduces a session to its button presses in order.
func ExtractClicks(events []model.InteractionEvent) []model.ClickPoint {
	var clicks []model.ClickPoint
	for _, ev := range events {
		if ev.Type != model.ButtonDown {
			continue
		}
		clicks = append(clicks, model.ClickPoint{Timestamp: ev.Timestamp, X: ev.X, Y: ev.Y})
	}
	return clicks
}

// typeCounts tallies events over the closed event-type set.
type typeCounts [7]int

func typeIndex(t model.EventType) int {
	switch t {
	case model.PointerMove:
		return 0
	case model.ButtonDown:
		return 1
	case model.ButtonUp:
		return 2
	case model.Scroll:
		return 3
	case model.KeyDown:
		return 4
	case model.KeyUp:
		return 5
	case model.Drag:
		return 6
	default:
		return -1
	}
}

func (c *typeCounts) add(t model.EventType) {
	if i := typeIndex(t); i >= 0 {
		c[i]++
	}
}

func (c *typeCounts) get(t model.EventType) int {
	if i := typeIndex(t); i >= 0 {
		return c[i]
	}
	return 0
}

// ratePerMinute is 0 for zero-duration sessions, never NaN or Inf.
func ratePerMinute(count int, durationSeconds float64) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	return float64(count) / (durationSeconds / 60.0)
}

func formatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
