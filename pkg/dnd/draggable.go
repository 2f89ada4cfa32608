package dnd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/widget"
)

// Draggable wraps a node so a pointer can drag it. The wrapper takes the
// node's place in the tree; the wrapped node keeps its look and layout.
//
// A Draggable captures at most one pointer at a time. Presses by a second
// pointer, and mouse-wheel pseudo pointers, are not claimed.
type Draggable struct {
	widget.Node

	// DragTag names the class of object being dragged. Containers accept
	// drops by tag.
	DragTag string
	// SnapshotSource is the node whose appearance the preview shows.
	// Defaults to the draggable itself.
	SnapshotSource widget.Node
	// NewController creates the controller on first press when none was
	// given to NewDraggable.
	NewController func() *Controller
	// OnInitiate is called once per session when the drag starts.
	OnInitiate func(d *Draggable)
	// OnComplete is called once per session when the drag is dropped on an
	// accepting container.
	OnComplete func(d *Draggable)
	// Logger receives capture decisions at debug level.
	Logger *zap.Logger

	controller *Controller
	active     *pointer.Pointer
}

// NewDraggable wraps host. ctrl may be nil when NewController is set before
// the first press. host must not be attached to a parent yet.
func NewDraggable(host widget.Node, tag string, ctrl *Controller) *Draggable {
	d := &Draggable{
		Node:       host,
		DragTag:    tag,
		Logger:     zap.NewNop(),
		controller: ctrl,
	}
	widget.Adopt(host, d)
	return d
}

// DetachOnInitiate removes the dragged object from its container when the
// drag starts, so the container closes the gap. Use it as OnInitiate.
func DetachOnInitiate(d *Draggable) {
	parent := d.Parent()
	widget.Detach(d)
	if parent != nil {
		widget.Relayout(parent)
	}
}

// Controller returns the controller, creating it with NewController if
// needed. It returns nil when neither is available.
func (d *Draggable) Controller() *Controller {
	if d.controller == nil && d.NewController != nil {
		d.controller = d.NewController()
	}
	return d.controller
}

// SetController replaces the controller. A session in flight on the old
// controller is not affected.
func (d *Draggable) SetController(c *Controller) { d.controller = c }

// ActivePointer returns the pointer this draggable has captured, or nil.
func (d *Draggable) ActivePointer() *pointer.Pointer { return d.active }

// Layout lays out the wrapped node's children, if it has any.
func (d *Draggable) Layout() { widget.Relayout(d.Node) }

func (d *Draggable) claimKey() pointer.ClaimKey {
	return pointer.ClaimKey{Kind: pointer.KindDraggable, Object: d.ID()}
}

func (d *Draggable) snapshotSource() widget.Node {
	if d.SnapshotSource != nil {
		return d.SnapshotSource
	}
	return d
}

// PointerDown claims the pointer when it lands inside the draggable and no
// child handles it first. The decision is recorded on the pointer's
// envelope; a repeated delivery returns it without deciding again.
func (d *Draggable) PointerDown(p *pointer.Pointer) bool {
	key := d.claimKey()
	env := p.Envelope()
	if claimed, ok := env.Decision(key); ok {
		return claimed
	}

	if d.Node.PointerDown(p) {
		env.Record(key, false)
		return true
	}
	if !widget.Collides(d, p.Position) {
		env.Record(key, false)
		return false
	}
	if d.active != nil && !d.active.IsGrabbedBy(d) {
		d.revoke(d.active, "dnd.Draggable.PointerDown")
	}
	if d.active != nil {
		env.Record(key, false)
		errors.Report(&errors.DndError{
			Op:      "dnd.Draggable.PointerDown",
			Kind:    errors.KindCaptureConflict,
			Pointer: int64(p.ID),
			Err:     fmt.Errorf("already dragged by pointer %d", d.active.ID),
		})
		return false
	}
	if p.IsScroll() {
		env.Record(key, false)
		return false
	}
	ctrl := d.Controller()
	if ctrl == nil {
		env.Record(key, false)
		errors.Report(&errors.DndError{
			Op:      "dnd.Draggable.PointerDown",
			Kind:    errors.KindConfig,
			Pointer: int64(p.ID),
			Err:     fmt.Errorf("draggable %q has no controller", d.DragTag),
		})
		return false
	}

	d.active = p
	p.Grab(d)
	env.Record(key, true)
	d.Logger.Debug("pointer claimed",
		zap.Int64("pointer", int64(p.ID)),
		zap.String("tag", d.DragTag))
	return ctrl.PressStart(d, p)
}

// PointerMove feeds the controller while this draggable holds capture.
func (d *Draggable) PointerMove(p *pointer.Pointer) bool {
	if !d.owns(p, "dnd.Draggable.PointerMove") {
		return d.Node.PointerMove(p)
	}
	if p.GrabCurrent() != pointer.Handler(d) {
		return false
	}
	return d.controller.PressMove(d, p)
}

// PointerUp releases capture and ends the controller's session.
func (d *Draggable) PointerUp(p *pointer.Pointer) bool {
	if !d.owns(p, "dnd.Draggable.PointerUp") {
		return d.Node.PointerUp(p)
	}
	if p.GrabCurrent() != pointer.Handler(d) {
		return false
	}
	p.Ungrab(d)
	d.active = nil
	return d.controller.PressEnd(d, p)
}

// owns reports whether this draggable claimed p. A claimed pointer whose
// capture was revoked is stale: the session is aborted and owns still
// returns true so the event is dropped.
func (d *Draggable) owns(p *pointer.Pointer, op string) bool {
	key := d.claimKey()
	env := p.Envelope()
	claimed, ok := env.Decision(key)
	if !ok {
		env.Record(key, false)
		return false
	}
	if !claimed {
		return false
	}
	if !p.IsGrabbedBy(d) && d.active == p {
		d.revoke(p, op)
	}
	return true
}

// PointerCancel aborts the session when an ancestor or the platform revokes
// capture. It is called even when the draggable has left the tree.
func (d *Draggable) PointerCancel(p *pointer.Pointer) {
	if d.active == p {
		d.revoke(p, "dnd.Draggable.PointerCancel")
	}
}

// revoke reports the lost capture of p and aborts the session.
func (d *Draggable) revoke(p *pointer.Pointer, op string) {
	errors.Report(&errors.DndError{
		Op:      op,
		Kind:    errors.KindStaleEvent,
		Pointer: int64(p.ID),
		Err:     fmt.Errorf("capture revoked"),
	})
	d.active = nil
	if d.controller != nil {
		d.controller.Abort(d)
	}
}

// abandon forgets the captured pointer when the controller starts a new
// session without this draggable's release.
func (d *Draggable) abandon() {
	if d.active != nil {
		d.active.Ungrab(d)
		d.active = nil
	}
}

func (d *Draggable) initiate() {
	if d.OnInitiate != nil {
		d.OnInitiate(d)
	}
}

func (d *Draggable) complete() {
	if d.OnComplete != nil {
		d.OnComplete(d)
	}
}

// String returns the wrapped node's String, or the drag tag.
func (d *Draggable) String() string {
	if s, ok := d.Node.(fmt.Stringer); ok {
		return s.String()
	}
	return d.DragTag
}
