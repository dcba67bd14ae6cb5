package analyze

import (
	"fmt"

	"github.com/uxlog/interlog/internal/model"
)

// Bucketize aggregates a session into consecutive half-open intervals
// [t, t+bucketSeconds) starting at the earliest timestamp. Pointer
// moves are excluded from the counts. The final bucket may extend past
// the last event; it is emitted in full, never truncated. Bucket
// boundaries are stored rounded to two decimals for display while the
// membership comparisons use unrounded values.
func Bucketize(events []model.InteractionEvent, bucketSeconds float64) ([]model.IntensityBucket, error) {
	if bucketSeconds <= 0 {
		return nil, fmt.Errorf("bucket size must be > 0, got %v", bucketSeconds)
	}
	if len(events) == 0 {
		return nil, nil
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

	var buckets []model.IntensityBucket
	for start := minTS; start <= maxTS; start += bucketSeconds {
		end := start + bucketSeconds
		bucket := model.IntensityBucket{
			TimeStart: round2(start),
			TimeEnd:   round2(end),
		}
		for _, ev := range events {
			if ev.Timestamp < start || ev.Timestamp >= end {
				continue
			}
			switch ev.Type {
			case model.PointerMove:
				continue
			case model.ButtonDown:
				bucket.Clicks++
			case model.Scroll:
				bucket.Scrolls++
			case model.KeyDown:
				bucket.Keypresses++
			}
			bucket.TotalInteractions++
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}
