package field

import (
	"encoding/json"
	"fmt"
)

// OpKind identifies a drawing operation.
type OpKind string

// The drawing operations understood by Surface.
const (
	OpFillStyle   OpKind = "fillStyle"
	OpStrokeStyle OpKind = "strokeStyle"
	OpLineWidth   OpKind = "lineWidth"
	OpFillRect    OpKind = "fillRect"
	OpBeginPath   OpKind = "beginPath"
	OpMoveTo      OpKind = "moveTo"
	OpLineTo      OpKind = "lineTo"
	OpArc         OpKind = "arc"
	OpStroke      OpKind = "stroke"
	OpFill        OpKind = "fill"
)

// Op is a single recorded drawing operation. Exactly one of Color and
// Gradient is set on style operations.
type Op struct {
	Kind     OpKind          `json:"op"`
	Args     []float64       `json:"args,omitempty"`
	Color    *Color          `json:"color,omitempty"`
	Gradient *RadialGradient `json:"gradient,omitempty"`
}

// Recorder is a Surface keeping every drawing operation in memory.
// Recorded frames can be inspected, serialized or replayed on another surface.
type Recorder struct {
	Ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset drops the recorded operations, keeping the allocated storage.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns the number of recorded operations of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the recorded operations as a JSON array.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	if r.Ops == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Ops)
}

func (r *Recorder) style(kind OpKind, s Style) {
	op := Op{Kind: kind}
	switch v := s.(type) {
	case Color:
		op.Color = &v
	case *RadialGradient:
		op.Gradient = v
	}
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) add(kind OpKind, args ...float64) {
	r.Ops = append(r.Ops, Op{Kind: kind, Args: args})
}

func (r *Recorder) SetFillStyle(s Style) { r.style(OpFillStyle, s) }
func (r *Recorder) SetStrokeStyle(s Style) { r.style(OpStrokeStyle, s) }
func (r *Recorder) SetLineWidth(w float64) { r.add(OpLineWidth, w) }
func (r *Recorder) FillRect(x, y, w, h float64) { r.add(OpFillRect, x, y, w, h) }
func (r *Recorder) BeginPath() { r.add(OpBeginPath) }
func (r *Recorder) MoveTo(x, y float64) { r.add(OpMoveTo, x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add(OpLineTo, x, y) }
func (r *Recorder) Arc(x, y, rad, start, end float64) { r.add(OpArc, x, y, rad, start, end) }
func (r *Recorder) Stroke() { r.add(OpStroke) }
func (r *Recorder) Fill() { r.add(OpFill) }

// Replay plays the recorded operations onto s.
func Replay(ops []Op, s Surface) error {
	for i, op := range ops {
		if want := arity(op.Kind); len(op.Args) < want {
			return fmt.Errorf("op %d (%s): expected %d arguments, got %d", i, op.Kind, want, len(op.Args))
		}
		a := op.Args
		switch op.Kind {
		case OpFillStyle, OpStrokeStyle:
			var st Style
			switch {
			case op.Gradient != nil:
				st = op.Gradient
			case op.Color != nil:
				st = *op.Color
			default:
				return fmt.Errorf("op %d (%s): missing style", i, op.Kind)
			}
			if op.Kind == OpFillStyle {
				s.SetFillStyle(st)
			} else {
				s.SetStrokeStyle(st)
			}
		case OpLineWidth:
			s.SetLineWidth(a[0])
		case OpFillRect:
			s.FillRect(a[0], a[1], a[2], a[3])
		case OpBeginPath:
			s.BeginPath()
		case OpMoveTo:
			s.MoveTo(a[0], a[1])
		case OpLineTo:
			s.LineTo(a[0], a[1])
		case OpArc:
			s.Arc(a[0], a[1], a[2], a[3], a[4])
		case OpStroke:
			s.Stroke()
		case OpFill:
			s.Fill()
		default:
			return fmt.Errorf("op %d: unknown operation %q", i, op.Kind)
		}
	}
	return nil
}

func arity(kind OpKind) int {
	switch kind {
	case OpLineWidth:
		return 1
	case OpMoveTo, OpLineTo:
		return 2
	case OpFillRect:
		return 4
	case OpArc:
		return 5
	}
	return 0
}
