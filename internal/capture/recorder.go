// Package capture runs an interaction recording session.
package capture

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/uxlog/interlog/internal/model"
)

// Pointer travel (px) while a button is held before the release
// synthesizes a drag event.
const dragThresholdPx = 5.0

// DefaultFlushEvery is the buffered event count that triggers a flush.
const DefaultFlushEvery = 10

// RawEvent is one sample emitted by an input source. Optional fields
// follow the same conventions as model.InteractionEvent.
type RawEvent struct {
	Type   model.EventType
	X, Y   *int
	DX, DY *int
	Button *string
	Key    *string
}

// Source emits raw input events until the context is cancelled or the
// stream ends. Implementations deliver events through emit in order.
type Source interface {
	Stream(ctx context.Context, emit func(RawEvent) error) error
}

// SourceFunc adapts a function literal to the Source interface.
type SourceFunc func(ctx context.Context, emit func(RawEvent) error) error

// Stream calls the underlying function.
func (f SourceFunc) Stream(ctx context.Context, emit func(RawEvent) error) error {
	return f(ctx, emit)
}

// Sink receives flushed event batches, usually an eventlog.Writer.
type Sink interface {
	Append(events []model.InteractionEvent) error
}

// Options configures a recording session.
type Options struct {
	Source     Source
	Sink       Sink
	Privacy    bool // replace key identity with the redaction marker
	FlushEvery int  // buffered events per flush, DefaultFlushEvery if 0
	Clock      func() time.Time
	OnEvent    func(total int) // notified after each buffered event
}

// Recorder owns the append-only event buffer for one session and
// flushes it to the sink on a size trigger and on stop.
type Recorder struct {
	source     Source
	sink       Sink
	privacy    bool
	flushEvery int
	clock      func() time.Time
	onEvent    func(int)

	startedAt  time.Time
	buffer     []model.InteractionEvent
	total      int
	buttonHeld bool
	pressX     int
	pressY     int
	lastX      int
	lastY      int
	dragged    bool
}

// NewRecorder validates options and constructs a recorder.
func NewRecorder(opts Options) (*Recorder, error) {
	if opts.Source == nil {
		return nil, errors.New("source must not be nil")
	}
	if opts.Sink == nil {
		return nil, errors.New("sink must not be nil")
	}
	if opts.FlushEvery < 0 {
		return nil, errors.New("flush threshold must not be negative")
	}
	flushEvery := opts.FlushEvery
	if flushEvery == 0 {
		flushEvery = DefaultFlushEvery
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{
		source:     opts.Source,
		sink:       opts.Sink,
		privacy:    opts.Privacy,
		flushEvery: flushEvery,
		clock:      clock,
		onEvent:    opts.OnEvent,
	}, nil
}

// Run consumes the source until it ends or ctx is cancelled, then
// flushes the remaining buffer. It returns the number of events
// recorded and the session duration.
func (r *Recorder) Run(ctx context.Context) (int, float64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r.startedAt = r.clock()

	streamErr := r.source.Stream(ctx, func(raw RawEvent) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.handle(raw)
		if len(r.buffer) >= r.flushEvery {
			return r.flush()
		}
		return nil
	})

	duration := r.clock().Sub(r.startedAt).Seconds()

	if err := r.flush(); err != nil {
		return r.total, duration, err
	}
	if streamErr != nil && !errors.Is(streamErr, context.Canceled) {
		return r.total, duration, fmt.Errorf("event source failed: %w", streamErr)
	}
	return r.total, duration, nil
}

func (r *Recorder) handle(raw RawEvent) {
	ts := r.clock().Sub(r.startedAt).Seconds()

	ev := model.InteractionEvent{
		Timestamp: ts,
		Type:      raw.Type,
		X:         raw.X,
		Y:         raw.Y,
		DX:        raw.DX,
		DY:        raw.DY,
		Button:    raw.Button,
	}
	if raw.Key != nil {
		key := *raw.Key
		if r.privacy {
			key = model.RedactedKey
		}
		ev.Key = &key
	}

	r.append(ev)
	r.trackDrag(ts, raw)
}

// trackDrag watches pointer movement while a button is held and emits
// a synthesized drag event on release if the pointer travelled far
// enough.
func (r *Recorder) trackDrag(ts float64, raw RawEvent) {
	switch raw.Type {
	case model.ButtonDown:
		if raw.X != nil && raw.Y != nil {
			r.buttonHeld = true
			r.pressX, r.pressY = *raw.X, *raw.Y
			r.lastX, r.lastY = *raw.X, *raw.Y
			r.dragged = false
		}
	case model.PointerMove:
		if r.buttonHeld && raw.X != nil && raw.Y != nil {
			r.lastX, r.lastY = *raw.X, *raw.Y
			dx := float64(r.lastX - r.pressX)
			dy := float64(r.lastY - r.pressY)
			if math.Sqrt(dx*dx+dy*dy) > dragThresholdPx {
				r.dragged = true
			}
		}
	case model.ButtonUp:
		if !r.buttonHeld {
			return
		}
		r.buttonHeld = false
		if !r.dragged {
			return
		}
		endX, endY := r.lastX, r.lastY
		if raw.X != nil && raw.Y != nil {
			endX, endY = *raw.X, *raw.Y
		}
		startX, startY := r.pressX, r.pressY
		r.append(model.InteractionEvent{
			Timestamp: ts,
			Type:      model.Drag,
			StartX:    &startX,
			StartY:    &startY,
			EndX:      &endX,
			EndY:      &endY,
		})
	}
}

func (r *Recorder) append(ev model.InteractionEvent) {
	r.buffer = append(r.buffer, ev)
	r.total++
	if r.onEvent != nil {
		r.onEvent(r.total)
	}
}

func (r *Recorder) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}
	if err := r.sink.Append(r.buffer); err != nil {
		return fmt.Errorf("failed to flush events: %w", err)
	}
	r.buffer = r.buffer[:0]
	return nil
}
