// Package engine hosts a widget tree in a window: it owns the root node, the
// overlay layer above it, the render tree both share, and the pointer
// delivery sequence the platform would otherwise provide.
package engine

import (
	"go.uber.org/zap"

	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/overlay"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/widget"
)

// PointerEvent is a raw pointer event from the platform, in window
// coordinates.
type PointerEvent struct {
	PointerID int64
	Phase     pointer.Phase
	X, Y      float64
	// Button names the mouse button or wheel action, empty for touches.
	Button string
}

// Window is the top of a widget tree.
type Window struct {
	// Logger receives dispatch traces at debug level. Defaults to a no-op
	// logger.
	Logger *zap.Logger

	root     widget.Node
	overlay  *overlay.Layer
	visual   *widget.Visual
	size     graphics.Size
	pointers map[pointer.ID]*pointer.Pointer
}

// NewWindow creates a window of the given size around root and lays it out.
func NewWindow(root widget.Node, size graphics.Size) *Window {
	w := &Window{
		Logger:   zap.NewNop(),
		root:     root,
		overlay:  overlay.NewLayer(),
		visual:   widget.NewVisual(),
		pointers: make(map[pointer.ID]*pointer.Pointer),
	}
	w.visual.Append(root.Visual())
	w.visual.Append(w.overlay.Visual())
	w.Resize(size)
	return w
}

// Root returns the root node.
func (w *Window) Root() widget.Node { return w.root }

// Overlay returns the layer drawn above the tree.
func (w *Window) Overlay() *overlay.Layer { return w.overlay }

// Visual returns the render tree holding the tree and the overlay. Its
// lock is the render lock for both.
func (w *Window) Visual() *widget.Visual { return w.visual }

// Size returns the window size.
func (w *Window) Size() graphics.Size { return w.size }

// Resize gives the root the whole window and lays the tree out again.
func (w *Window) Resize(size graphics.Size) {
	w.size = size
	w.root.SetBounds(graphics.RectFromOriginSize(graphics.Offset{}, size))
	w.Layout()
}

// Layout re-runs layout from the root. Call it after changing the tree.
func (w *Window) Layout() {
	unlock := w.visual.Lock()
	defer unlock()
	if l, ok := w.root.(widget.Layouter); ok {
		l.Layout()
	}
}

// Pointer returns the live pointer with id, or nil once it has been
// released.
func (w *Window) Pointer(id pointer.ID) *pointer.Pointer {
	return w.pointers[id]
}

// HandlePointer turns a raw event into a delivery on the tracked pointer.
// Moves and releases for an unknown pointer are dropped.
func (w *Window) HandlePointer(event PointerEvent) bool {
	id := pointer.ID(event.PointerID)
	pos := graphics.Offset{X: event.X, Y: event.Y}

	p := w.pointers[id]
	switch event.Phase {
	case pointer.PhaseDown:
		if p != nil {
			// A second down without an up: the platform lost the release.
			p.End()
		}
		p = pointer.New(id, pos)
		if event.Button != "" {
			p.Button = event.Button
			p.Profile |= pointer.ProfileButton
		}
		w.pointers[id] = p
	default:
		if p == nil {
			w.Logger.Debug("pointer event without press",
				zap.Int64("pointer", event.PointerID),
				zap.Stringer("phase", event.Phase))
			return false
		}
		p.MoveTo(pos)
	}

	if event.Phase == pointer.PhaseUp {
		delete(w.pointers, id)
	}
	return w.Dispatch(event.Phase, p)
}

// Dispatch delivers one event: a hit-test pass from the root with no grab
// current, then one grab pass per handler holding capture. After the up
// delivery the pointer's envelope and captures are discarded.
//
// Panics raised by handlers are recovered and reported, except invariant
// violations in strict mode.
func (w *Window) Dispatch(phase pointer.Phase, p *pointer.Pointer) (handled bool) {
	defer errors.Recover("engine.Window.Dispatch")
	if phase == pointer.PhaseUp {
		defer p.End()
	}

	handled = deliver(w.root, phase, p)
	for _, h := range p.Grabs() {
		// Skip handlers that gave up capture earlier in this event.
		if !p.IsGrabbedBy(h) {
			continue
		}
		if p.DeliverGrabbed(h, func(h pointer.Handler) bool { return deliver(h, phase, p) }) {
			handled = true
		}
	}

	if ce := w.Logger.Check(zap.DebugLevel, "pointer dispatched"); ce != nil {
		ce.Write(
			zap.Int64("pointer", int64(p.ID)),
			zap.Stringer("phase", phase),
			zap.Float64("x", p.Position.X),
			zap.Float64("y", p.Position.Y),
			zap.Int("grabs", len(p.Grabs())),
			zap.Bool("handled", handled),
		)
	}
	return handled
}

func deliver(h pointer.Handler, phase pointer.Phase, p *pointer.Pointer) bool {
	switch phase {
	case pointer.PhaseDown:
		return h.PointerDown(p)
	case pointer.PhaseMove:
		return h.PointerMove(p)
	case pointer.PhaseUp:
		return h.PointerUp(p)
	default:
		return false
	}
}

// AddOverlayElement puts n above the tree.
func (w *Window) AddOverlayElement(n widget.Node) {
	unlock := w.visual.Lock()
	defer unlock()
	w.overlay.AddOverlayElement(n)
}

// RemoveOverlayElement takes n off the overlay. Safe to call when n is not
// present.
func (w *Window) RemoveOverlayElement(n widget.Node) {
	unlock := w.visual.Lock()
	defer unlock()
	w.overlay.RemoveOverlayElement(n)
}
