package capture

import (
	"context"
	"time"

	"github.com/uxlog/interlog/internal/model"
)

// ReplaySource re-emits a previously recorded session, sleeping out
// the gaps between events scaled by speed (2.0 replays twice as
// fast). It stands in for an OS-level hook, which this tool does not
// ship.
func ReplaySource(events []model.InteractionEvent, speed float64) Source {
	if speed <= 0 {
		speed = 1
	}
	return SourceFunc(func(ctx context.Context, emit func(RawEvent) error) error {
		prev := 0.0
		first := true
		for _, ev := range events {
			// Drags were synthesized on the original run; the
			// recorder will synthesize them again.
			if ev.Type == model.Drag {
				continue
			}
			if !first {
				gap := ev.Timestamp - prev
				if gap > 0 {
					select {
					case <-ctx.Done():
						return ctx.Err()
					case <-time.After(time.Duration(gap / speed * float64(time.Second))):
					}
				}
			}
			prev = ev.Timestamp
			first = false
			if err := emit(rawFromEvent(ev)); err != nil {
				return err
			}
		}
		return nil
	})
}

// rawFromEvent strips a recorded event back to its raw form.
func rawFromEvent(ev model.InteractionEvent) RawEvent {
	return RawEvent{
		Type:   ev.Type,
		X:      ev.X,
		Y:      ev.Y,
		DX:     ev.DX,
		DY:     ev.DY,
		Button: ev.Button,
		Key:    ev.Key,
	}
}
