// Package pointer models a single touch or mouse contact across its
// down/move/up lifecycle: its positions, the capture (grab) protocol, and the
// per-pointer [Envelope] that widgets use to share decisions about it.
package pointer

import (
	"slices"
	"strings"

	"github.com/go-drift/dnd/pkg/graphics"
)

// ID identifies a pointer for the lifetime of one gesture.
type ID int64

// Phase is the lifecycle stage of a pointer delivery.
type Phase int

const (
	PhaseDown Phase = iota
	PhaseMove
	PhaseUp
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	default:
		return "unknown"
	}
}

// Profile lists optional capabilities a pointer reports.
type Profile uint8

const (
	// ProfileButton means Button names the mouse button or wheel action.
	ProfileButton Profile = 1 << iota
)

// Handler receives pointer deliveries. Each method returns true when the
// event was handled and should not propagate further.
type Handler interface {
	PointerDown(p *Pointer) bool
	PointerMove(p *Pointer) bool
	PointerUp(p *Pointer) bool
}

// Canceler is implemented by handlers that must hear when their capture is
// revoked, since a revoked handler may no longer be reachable by hit
// testing.
type Canceler interface {
	PointerCancel(p *Pointer)
}

// Pointer is an abstract contact. Positions are in window coordinates.
type Pointer struct {
	ID ID
	// Position is the current position.
	Position graphics.Offset
	// Previous is the position at the previous delivery.
	Previous graphics.Offset
	// Origin is the position at press.
	Origin graphics.Offset
	// Button is the mouse button name ("left", "scrollup", ...) when Profile
	// has ProfileButton.
	Button  string
	Profile Profile

	grabs       []Handler
	grabCurrent Handler
	envelope    *Envelope
	atEnd       []func()
}

// New creates a pointer pressed at pos.
func New(id ID, pos graphics.Offset) *Pointer {
	return &Pointer{ID: id, Position: pos, Previous: pos, Origin: pos}
}

// MoveTo records a new position, keeping the previous one for Delta.
func (p *Pointer) MoveTo(pos graphics.Offset) {
	p.Previous = p.Position
	p.Position = pos
}

// Delta returns the motion since the previous delivery.
func (p *Pointer) Delta() graphics.Offset {
	return p.Position.Sub(p.Previous)
}

// Moved returns the motion since press.
func (p *Pointer) Moved() graphics.Offset {
	return p.Position.Sub(p.Origin)
}

// IsScroll reports whether this is a mouse-wheel pseudo pointer.
func (p *Pointer) IsScroll() bool {
	return p.Profile&ProfileButton != 0 && strings.HasPrefix(p.Button, "scroll")
}

// Grab captures the pointer for h: h receives a grab-pass delivery for every
// later event regardless of hit testing. Grabbing twice is a no-op.
func (p *Pointer) Grab(h Handler) {
	if h == nil || p.IsGrabbedBy(h) {
		return
	}
	p.grabs = append(p.grabs, h)
}

// Ungrab releases h's capture. Safe to call when h holds none.
func (p *Pointer) Ungrab(h Handler) {
	if i := slices.Index(p.grabs, h); i >= 0 {
		p.grabs = slices.Delete(p.grabs, i, i+1)
	}
}

// Cancel revokes h's capture from outside, as an ancestor or the platform
// would. A Canceler is told after its capture is gone. Cancelling a handler
// without capture is a no-op.
func (p *Pointer) Cancel(h Handler) {
	if !p.IsGrabbedBy(h) {
		return
	}
	p.Ungrab(h)
	if c, ok := h.(Canceler); ok {
		c.PointerCancel(p)
	}
}

// IsGrabbedBy reports whether h currently holds capture.
func (p *Pointer) IsGrabbedBy(h Handler) bool {
	return slices.Contains(p.grabs, h)
}

// Grabs returns a copy of the capture list in grab order.
func (p *Pointer) Grabs() []Handler {
	return slices.Clone(p.grabs)
}

// GrabCurrent returns the handler the current grab-pass delivery targets,
// or nil during the hit-test pass.
func (p *Pointer) GrabCurrent() Handler {
	return p.grabCurrent
}

// DeliverGrabbed runs deliver with GrabCurrent set to h.
func (p *Pointer) DeliverGrabbed(h Handler, deliver func(Handler) bool) bool {
	prev := p.grabCurrent
	p.grabCurrent = h
	defer func() { p.grabCurrent = prev }()
	return deliver(h)
}

// Envelope returns the pointer's envelope, creating it on first use.
func (p *Pointer) Envelope() *Envelope {
	if p.envelope == nil {
		p.envelope = newEnvelope()
	}
	return p.envelope
}

// HasEnvelope reports whether anything has observed this pointer yet.
func (p *Pointer) HasEnvelope() bool {
	return p.envelope != nil
}

// AtEnd registers f to run when the gesture ends.
func (p *Pointer) AtEnd(f func()) {
	p.atEnd = append(p.atEnd, f)
}

// End cancels any leftover captures, runs the AtEnd hooks in registration
// order, and then discards the envelope once the gesture is over.
func (p *Pointer) End() {
	for _, h := range p.Grabs() {
		p.Cancel(h)
	}
	hooks := p.atEnd
	p.atEnd = nil
	for _, f := range hooks {
		f()
	}
	p.envelope = nil
	p.grabs = nil
	p.grabCurrent = nil
}
