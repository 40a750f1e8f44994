// Package protocol defines the JSON messages exchanged between the streaming
// server and its clients.
package protocol

import (
	"errors"
	"fmt"
	"math"

	field "github.com/esimov/growth-field/particle-field"
)

// Types of the client messages.
const (
	Pointer = "pointer"
	Leave   = "leave"
	Resize  = "resize"
)

// ErrInvalidMessage is returned for messages which cannot be applied to a field.
var ErrInvalidMessage = errors.New("protocol: invalid message")

// Frame carries the drawing operations of one rendered frame, sent by the server.
type Frame struct {
	Frame int        `json:"frame"`
	Ops   []field.Op `json:"ops"`
}

// Message is an input event sent by a client. Pointer coordinates are
// normalized to the canvas size and must lie in [0, 1]. Width and Height are in pixels.
type Message struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Validate reports whether m can be applied to a field.
func (m Message) Validate() error {
	switch m.Type {
	case Pointer:
		if !normalized(m.X) || !normalized(m.Y) {
			return fmt.Errorf("%w: pointer (%v, %v)", ErrInvalidMessage, m.X, m.Y)
		}
	case Leave:
	case Resize:
		if !finite(m.Width) || !finite(m.Height) || m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("%w: size %vx%v", ErrInvalidMessage, m.Width, m.Height)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, m.Type)
	}
	return nil
}

// Apply validates m and applies it to f.
func (m Message) Apply(f *field.Field) error {
	if err := m.Validate(); err != nil {
		return err
	}
	switch m.Type {
	case Pointer:
		f.SetPointer(m.X, m.Y)
	case Leave:
		f.ResetPointer()
	case Resize:
		f.Resize(m.Width, m.Height)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func normalized(v float64) bool {
	return v >= 0 && v <= 1
}
