package analyze

import (
	"math"

	"github.com/uxlog/interlog/internal/model"
)

// Minimum presses for a burst to count as a rage click.
const rageMinClicks = 3

// DetectRageClicks scans ordered button presses for bursts of three or
// more clicks close together in time and space.
//
// A window is anchored at every click index and extends through the
// contiguous run of later clicks within windowSeconds of the anchor;
// the scan stops at the first click outside the window. A qualifying
// window additionally requires every click to lie within distancePx
// (Euclidean) of the anchor click. Clicks without a position fail that
// test. Each qualifying anchor produces its own report, so one
// physical burst may be reported more than once from overlapping
// anchors.
func DetectRageClicks(clicks []model.ClickPoint, windowSeconds, distancePx float64) []model.RageClickEvent {
	var bursts []model.RageClickEvent

	for i := 0; i+rageMinClicks <= len(clicks); i++ {
		end := i
		for j := i; j < len(clicks); j++ {
			if clicks[j].Timestamp-clicks[i].Timestamp > windowSeconds {
				break
			}
			end = j + 1
		}
		if end-i < rageMinClicks {
			continue
		}
		if !sameArea(clicks[i:end], distancePx) {
			continue
		}
		bursts = append(bursts, model.RageClickEvent{
			Timestamp:  clicks[i].Timestamp,
			X:          clicks[i].X,
			Y:          clicks[i].Y,
			ClickCount: end - i,
		})
	}
	return bursts
}

// sameArea reports whether every click lies within distancePx of the
// first. The boundary is inclusive.
func sameArea(window []model.ClickPoint, distancePx float64) bool {
	first := window[0]
	if first.X == nil || first.Y == nil {
		return false
	}
	for _, click := range window[1:] {
		if click.X == nil || click.Y == nil {
			return false
		}
		dx := float64(*click.X - *first.X)
		dy := float64(*click.Y - *first.Y)
		if math.Sqrt(dx*dx+dy*dy) > distancePx {
			return false
		}
	}
	return true
}
