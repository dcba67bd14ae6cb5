package analyze

import (
	"testing"

	"github.com/uxlog/interlog/internal/model"
)

func click(ts float64, x, y int) model.ClickPoint {
	return model.ClickPoint{Timestamp: ts, X: &x, Y: &y}
}

func TestDetectRageClicksBurst(t *testing.T) {
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		click(0.3, 100, 100),
		click(0.6, 100, 100),
	}
	bursts := DetectRageClicks(clicks, 1.0, 50)
	if len(bursts) != 1 {
		t.Fatalf("expected 1 burst, got %d", len(bursts))
	}
	if bursts[0].ClickCount != 3 {
		t.Fatalf("expected click count 3, got %d", bursts[0].ClickCount)
	}
	if bursts[0].Timestamp != 0.0 {
		t.Fatalf("expected anchor at 0.0, got %v", bursts[0].Timestamp)
	}
	if bursts[0].X == nil || *bursts[0].X != 100 {
		t.Fatalf("expected anchor position x=100, got %+v", bursts[0].X)
	}
}

func TestDetectRageClicksFewerThanThree(t *testing.T) {
	clicks := []model.ClickPoint{
		click(0.0, 10, 10),
		click(0.1, 10, 10),
	}
	if bursts := DetectRageClicks(clicks, 1.0, 50); len(bursts) != 0 {
		t.Fatalf("expected no bursts for 2 clicks, got %d", len(bursts))
	}
	if bursts := DetectRageClicks(nil, 1.0, 50); len(bursts) != 0 {
		t.Fatalf("expected no bursts for empty input, got %d", len(bursts))
	}
}

func TestDetectRageClicksSpreadOutInTime(t *testing.T) {
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		click(1.5, 100, 100),
		click(3.0, 100, 100),
	}
	if bursts := DetectRageClicks(clicks, 1.0, 50); len(bursts) != 0 {
		t.Fatalf("expected no bursts for spread-out clicks, got %d", len(bursts))
	}
}

func TestDetectRageClicksSpatialCohesionFails(t *testing.T) {
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		click(0.3, 100, 100),
		click(0.6, 160, 100), // 60px from the anchor
	}
	if bursts := DetectRageClicks(clicks, 1.0, 50); len(bursts) != 0 {
		t.Fatalf("expected no bursts when a click leaves the area, got %d", len(bursts))
	}
}

func TestDetectRageClicksBoundariesInclusive(t *testing.T) {
	// Third click exactly at the time window and exactly at the
	// distance threshold: both boundaries are inclusive.
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		click(0.5, 100, 100),
		click(1.0, 150, 100),
	}
	bursts := DetectRageClicks(clicks, 1.0, 50)
	if len(bursts) != 1 {
		t.Fatalf("expected 1 burst at inclusive boundaries, got %d", len(bursts))
	}
}

func TestDetectRageClicksMissingPosition(t *testing.T) {
	noPos := model.ClickPoint{Timestamp: 0.3}
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		noPos,
		click(0.6, 100, 100),
	}
	if bursts := DetectRageClicks(clicks, 1.0, 50); len(bursts) != 0 {
		t.Fatalf("expected no bursts when a click lacks position, got %d", len(bursts))
	}
}

func TestDetectRageClicksWindowIsContiguous(t *testing.T) {
	// The gap at 2.0 ends the window anchored at 0.0 even though a
	// later click (2.1) would pair with clicks after the gap.
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		click(0.2, 100, 100),
		click(2.0, 100, 100),
		click(2.1, 100, 100),
		click(2.2, 100, 100),
	}
	bursts := DetectRageClicks(clicks, 1.0, 50)
	if len(bursts) != 1 {
		t.Fatalf("expected 1 burst, got %d", len(bursts))
	}
	if bursts[0].Timestamp != 2.0 {
		t.Fatalf("expected burst anchored at 2.0, got %v", bursts[0].Timestamp)
	}
}

func TestDetectRageClicksOverlappingAnchors(t *testing.T) {
	// Four clicks inside one second: anchors 0 and 1 both qualify and
	// both are reported. Overlap is not deduplicated.
	clicks := []model.ClickPoint{
		click(0.0, 100, 100),
		click(0.2, 100, 100),
		click(0.4, 100, 100),
		click(0.6, 100, 100),
	}
	bursts := DetectRageClicks(clicks, 1.0, 50)
	if len(bursts) != 2 {
		t.Fatalf("expected 2 overlapping reports, got %d", len(bursts))
	}
	if bursts[0].ClickCount != 4 || bursts[1].ClickCount != 3 {
		t.Fatalf("unexpected click counts: %d, %d", bursts[0].ClickCount, bursts[1].ClickCount)
	}
}
