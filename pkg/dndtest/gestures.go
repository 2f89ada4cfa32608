package dndtest

import (
	"fmt"

	"github.com/go-drift/dnd/pkg/engine"
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/widget"
)

// SendPointerDown presses pointer id at pos. It reports whether the event
// was handled.
func (t *Tester) SendPointerDown(pos graphics.Offset, id int64) bool {
	return t.window.HandlePointer(engine.PointerEvent{PointerID: id, Phase: pointer.PhaseDown, X: pos.X, Y: pos.Y})
}

// SendPointerMove moves pointer id to pos.
func (t *Tester) SendPointerMove(pos graphics.Offset, id int64) bool {
	return t.window.HandlePointer(engine.PointerEvent{PointerID: id, Phase: pointer.PhaseMove, X: pos.X, Y: pos.Y})
}

// SendPointerUp releases pointer id at pos.
func (t *Tester) SendPointerUp(pos graphics.Offset, id int64) bool {
	return t.window.HandlePointer(engine.PointerEvent{PointerID: id, Phase: pointer.PhaseUp, X: pos.X, Y: pos.Y})
}

// SendButtonDown presses a mouse pointer with a button name, such as
// "scrolldown" for a wheel pseudo pointer.
func (t *Tester) SendButtonDown(pos graphics.Offset, id int64, button string) bool {
	return t.window.HandlePointer(engine.PointerEvent{PointerID: id, Phase: pointer.PhaseDown, X: pos.X, Y: pos.Y, Button: button})
}

// Cancel revokes h's capture of pointer id, as an ancestor would.
func (t *Tester) Cancel(id int64, h pointer.Handler) {
	if p := t.window.Pointer(pointer.ID(id)); p != nil {
		p.Cancel(h)
	}
}

// Press presses a new pointer at pos and returns its ID.
func (t *Tester) Press(pos graphics.Offset) int64 {
	id := t.allocPointerID()
	t.SendPointerDown(pos, id)
	return id
}

// MoveTo moves pointer id from its current position to pos in steps equal
// moves.
func (t *Tester) MoveTo(id int64, pos graphics.Offset, steps int) {
	start := pos
	if p := t.window.Pointer(pointer.ID(id)); p != nil {
		start = p.Position
	}
	steps = max(steps, 1)
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		t.SendPointerMove(graphics.Offset{
			X: start.X + (pos.X-start.X)*frac,
			Y: start.Y + (pos.Y-start.Y)*frac,
		}, id)
	}
}

// DragFrom presses at start, moves to end in steps, and releases there.
func (t *Tester) DragFrom(start, end graphics.Offset, steps int) {
	id := t.Press(start)
	t.MoveTo(id, end, steps)
	t.SendPointerUp(end, id)
}

// DragTo drags the first node matched by finder from its center to end.
func (t *Tester) DragTo(finder Finder, end graphics.Offset, steps int) error {
	n, err := t.Find(finder)
	if err != nil {
		return fmt.Errorf("DragTo: %w", err)
	}
	t.DragFrom(widget.WindowRect(n).Center(), end, steps)
	return nil
}

// TapAt presses and releases at pos without moving.
func (t *Tester) TapAt(pos graphics.Offset) {
	id := t.Press(pos)
	t.SendPointerUp(pos, id)
}
