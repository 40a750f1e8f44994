package field

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoSurface is returned when there is nothing to draw the field onto.
	ErrNoSurface = errors.New("field: missing drawing surface")
	// ErrNoContainer is returned when there is no field or container to size it against.
	ErrNoContainer = errors.New("field: missing container")
)

// Stats summarizes the field after a frame.
type Stats struct {
	Frame       int
	Population  int
	Generations []int
}

// Loop drives the update and render cycle of a field onto a surface.
type Loop struct {
	field   *Field
	surface Surface
	frames  int
	inputs  chan func(*Field)

	// OnFrame, when set, is called after every rendered frame.
	OnFrame func(Stats)
}

// NewLoop binds f to s.
func NewLoop(f *Field, s Surface) (*Loop, error) {
	if f == nil {
		return nil, ErrNoContainer
	}
	if s == nil {
		return nil, ErrNoSurface
	}
	return &Loop{
		field:   f,
		surface: s,
		inputs:  make(chan func(*Field), inputQueue),
	}, nil
}

// inputQueue is the number of pending input events a loop buffers between two frames.
const inputQueue = 256

// Post queues fn to be applied to the field before the next frame. It is safe
// to call from any goroutine. Events are dropped when the queue is full.
func (l *Loop) Post(fn func(*Field)) bool {
	select {
	case l.inputs <- fn:
		return true
	default:
		return false
	}
}

// Field returns the field driven by the loop.
func (l *Loop) Field() *Field {
	return l.field
}

// Frame updates the field to the timestamp ts and renders it.
func (l *Loop) Frame(ts time.Duration) {
	l.drain()
	l.field.Update(ts)
	l.field.Render(l.surface)
	l.frames++

	if l.OnFrame != nil {
		l.OnFrame(l.Stats())
	}
}

func (l *Loop) drain() {
	for {
		select {
		case fn := <-l.inputs:
			fn(l.field)
		default:
			return
		}
	}
}

// Stats returns the current frame counter and population.
func (l *Loop) Stats() Stats {
	return Stats{
		Frame:       l.frames,
		Population:  l.field.Len(),
		Generations: l.field.Generations(),
	}
}

// Run renders a frame on every tick until ctx is cancelled or ticks is closed.
// Frame timestamps are measured from the first tick.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time) error {
	var start time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t, ok := <-ticks:
			if !ok {
				return nil
			}
			if start.IsZero() {
				start = t
			}
			l.Frame(t.Sub(start))
		}
	}
}
