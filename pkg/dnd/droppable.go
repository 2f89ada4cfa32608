package dnd

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/widget"
)

// AppendPosition is where an append-only container puts drops.
type AppendPosition int

const (
	// AppendEnd adds drops after the last child.
	AppendEnd AppendPosition = iota
	// AppendStart adds drops before the first child.
	AppendStart
)

func (a AppendPosition) String() string {
	if a == AppendStart {
		return "start"
	}
	return "end"
}

// Droppable wraps an ordered container so it accepts dragged objects.
//
// The container captures a pointer once the pointer carries an accepted
// drag tag and lies inside the container and all of its ancestors. While it
// holds capture it keeps its placeholder at the candidate drop index; it
// lets go when the pointer leaves, a child handles the event, or the
// pointer is released. At most one container holds a given pointer: a
// container claiming it takes it from the previous holder explicitly.
type Droppable struct {
	widget.Container

	// Geometry orders drops relative to children. Required unless
	// AppendOnly is set.
	Geometry Geometry
	// AppendOnly skips the index search: drops go to AppendAt.
	AppendOnly bool
	AppendAt   AppendPosition
	// OnRelease performs a drop. index counts children without the
	// placeholder. See InsertOnRelease for the usual choice.
	OnRelease func(index int, dragged *Draggable)
	// Logger receives capture changes at debug level.
	Logger *zap.Logger

	accepts     map[string]struct{}
	placeholder *Placeholder
}

// NewDroppable wraps host, accepting the given drag tags. host must not be
// attached to a parent yet.
func NewDroppable(host widget.Container, geometry Geometry, tags ...string) *Droppable {
	d := &Droppable{
		Container:   host,
		Geometry:    geometry,
		Logger:      zap.NewNop(),
		accepts:     make(map[string]struct{}),
		placeholder: NewPlaceholder(DefaultPlaceholderStyle),
	}
	widget.Adopt(host, d)
	d.Accept(tags...)
	return d
}

// InsertOnRelease returns a release handler that moves the dragged object
// into d at the drop index.
func InsertOnRelease(d *Droppable) func(index int, dragged *Draggable) {
	return func(index int, dragged *Draggable) {
		// Still a member: the index counted it.
		if i := d.IndexOf(dragged); i >= 0 && i < index {
			index--
		}
		widget.Detach(dragged)
		d.Insert(dragged, index)
	}
}

// Accept adds tags to the accepted set.
func (d *Droppable) Accept(tags ...string) {
	for _, t := range tags {
		d.accepts[t] = struct{}{}
	}
}

// Accepts reports whether drops tagged tag are accepted. The empty tag
// never is.
func (d *Droppable) Accepts(tag string) bool {
	if tag == "" {
		return false
	}
	_, ok := d.accepts[tag]
	return ok
}

// Placeholder returns the container's placeholder.
func (d *Droppable) Placeholder() *Placeholder { return d.placeholder }

// SetPlaceholderStyle restyles the placeholder.
func (d *Droppable) SetPlaceholderStyle(style PlaceholderStyle) {
	d.placeholder.SetStyle(style)
	if d.IndexOf(d.placeholder) >= 0 {
		widget.Relayout(d)
	}
}

// Layout lays out the wrapped container.
func (d *Droppable) Layout() { widget.Relayout(d.Container) }

func (d *Droppable) claimKey() pointer.ClaimKey {
	return pointer.ClaimKey{Kind: pointer.KindDroppable, Object: d.ID()}
}

// qualifies reports whether p carries an accepted tag and lies inside d and
// every ancestor.
func (d *Droppable) qualifies(p *pointer.Pointer) bool {
	return d.Accepts(p.Envelope().DragTag) && widget.CollideAncestors(d, p.Position)
}

// PointerMove tracks a drag over the container.
func (d *Droppable) PointerMove(p *pointer.Pointer) bool {
	env := p.Envelope()
	if p.GrabCurrent() != pointer.Handler(d) {
		if env.Claimed(d.claimKey()) {
			// Served by the grab pass.
			return true
		}
		if !d.qualifies(p) {
			return d.Container.PointerMove(p)
		}
		if d.Container.PointerMove(p) {
			return true
		}
		d.capture(p)
	} else {
		if !d.qualifies(p) {
			d.release(p)
			return false
		}
		if d.Container.PointerMove(p) {
			d.release(p)
			return true
		}
	}

	d.movePlaceholder(widget.LocalPoint(d, p.Position))
	return true
}

// PointerUp performs the drop when the release lands inside the container.
// Capture is given up on every path.
func (d *Droppable) PointerUp(p *pointer.Pointer) bool {
	env := p.Envelope()
	key := d.claimKey()
	if p.GrabCurrent() != pointer.Handler(d) {
		if env.Claimed(key) {
			return true
		}
		if !d.qualifies(p) {
			return d.Container.PointerUp(p)
		}
		if d.Container.PointerUp(p) {
			return true
		}
	} else {
		p.Ungrab(d)
		env.Forget(key)
		if !d.qualifies(p) {
			d.removePlaceholder()
			return false
		}
		if d.Container.PointerUp(p) {
			d.removePlaceholder()
			return true
		}
	}

	d.drop(p)
	return true
}

// PreviewIndex computes where the placeholder should move for a pointer at
// the window position pos. The index counts children without the
// placeholder. ok is false when the placeholder should stay where it is.
func (d *Droppable) PreviewIndex(pos graphics.Offset) (index int, ok bool) {
	return d.previewIndex(widget.LocalPoint(d, pos))
}

// ReleaseIndex computes the drop index for a release at the window position
// pos, counting children without the placeholder.
func (d *Droppable) ReleaseIndex(pos graphics.Offset) int {
	return d.releaseIndex(widget.LocalPoint(d, pos))
}

func (d *Droppable) previewIndex(local graphics.Offset) (int, bool) {
	children := d.Children()
	ph := d.placeholder
	k := slices.Index(children, widget.Node(ph))

	if d.AppendOnly {
		n := len(children)
		if k >= 0 {
			n--
		}
		target := n
		if d.AppendAt == AppendStart {
			target = 0
		}
		if k == target {
			return target, false
		}
		return target, true
	}

	under := childAt(d.Geometry, children, local)
	switch {
	case under == widget.Node(ph):
		return k, false
	case under == nil:
		if k >= 0 && k == len(children)-1 {
			return k, false
		}
		if k >= 0 {
			return len(children) - 1, true
		}
		return len(children), true
	}

	i := slices.Index(children, under)
	var j int
	if d.compare(under, local, k >= 0 && k < i) == Before {
		if i > 0 && children[i-1] == widget.Node(ph) {
			return k, false
		}
		j = i
	} else {
		if i+1 < len(children) && children[i+1] == widget.Node(ph) {
			return k, false
		}
		j = i + 1
	}
	if k >= 0 && k < j {
		j--
	}
	return j, true
}

func (d *Droppable) releaseIndex(local graphics.Offset) int {
	children := d.Children()
	ph := d.placeholder
	k := slices.Index(children, widget.Node(ph))

	if d.AppendOnly {
		if d.AppendAt == AppendStart {
			return 0
		}
		if k >= 0 {
			return len(children) - 1
		}
		return len(children)
	}

	var index int
	under := childAt(d.Geometry, children, local)
	switch {
	case under == widget.Node(ph):
		index = k
	case under == nil:
		index = len(children)
	default:
		index = slices.Index(children, under)
		if d.compare(under, local, k >= 0 && k < index) == After {
			index++
		}
	}
	if k >= 0 && k < index {
		index--
	}
	return index
}

func (d *Droppable) compare(child widget.Node, local graphics.Offset, placeholderFirst bool) Side {
	if d.Geometry == nil {
		return Before
	}
	return d.Geometry.Compare(child, local, placeholderFirst)
}

// capture takes p for d, first releasing any other container holding it.
func (d *Droppable) capture(p *pointer.Pointer) {
	for _, h := range p.Grabs() {
		if other, ok := h.(*Droppable); ok && other != d {
			other.release(p)
		}
	}
	p.Grab(d)
	p.Envelope().Record(d.claimKey(), true)
	d.Logger.Debug("drop capture",
		zap.Int64("pointer", int64(p.ID)),
		zap.String("tag", p.Envelope().DragTag))
}

// PointerCancel removes the placeholder when capture is revoked.
func (d *Droppable) PointerCancel(p *pointer.Pointer) {
	d.release(p)
}

// release gives up p and removes the placeholder. Safe to repeat.
func (d *Droppable) release(p *pointer.Pointer) {
	if p.IsGrabbedBy(d) {
		d.Logger.Debug("drop release", zap.Int64("pointer", int64(p.ID)))
	}
	p.Ungrab(d)
	if p.HasEnvelope() {
		p.Envelope().Forget(d.claimKey())
	}
	d.removePlaceholder()
}

func (d *Droppable) drop(p *pointer.Pointer) {
	env := p.Envelope()
	index := d.releaseIndex(widget.LocalPoint(d, p.Position))
	d.removePlaceholder()

	dragged, _ := env.Dragged.(*Draggable)
	if dragged == nil {
		errors.Invariant("dnd.Droppable.PointerUp", "drop of tag %q without a dragged object", env.DragTag)
		return
	}
	if d.OnRelease == nil {
		errors.Report(&errors.DndError{
			Op:      "dnd.Droppable.PointerUp",
			Kind:    errors.KindConfig,
			Pointer: int64(p.ID),
			Err:     fmt.Errorf("droppable has no release handler"),
		})
		return
	}
	d.Logger.Debug("drop",
		zap.Int64("pointer", int64(p.ID)),
		zap.String("tag", env.DragTag),
		zap.Int("index", index))

	d.OnRelease(index, dragged)
	widget.Relayout(d)
	if c := dragged.Controller(); c != nil {
		c.Dropped(dragged)
	}
}

// movePlaceholder puts the placeholder where a drop at local would land.
func (d *Droppable) movePlaceholder(local graphics.Offset) {
	d.checkPlaceholder()
	j, ok := d.previewIndex(local)
	if !ok {
		return
	}
	unlock := d.Visual().Lock()
	defer unlock()
	d.Remove(d.placeholder)
	d.Insert(d.placeholder, j)
	widget.Relayout(d)
}

func (d *Droppable) removePlaceholder() {
	if d.IndexOf(d.placeholder) < 0 {
		d.checkPlaceholder()
		return
	}
	unlock := d.Visual().Lock()
	defer unlock()
	d.Remove(d.placeholder)
	widget.Relayout(d)
}

// checkPlaceholder reports a placeholder that ended up in another
// container and takes it back out.
func (d *Droppable) checkPlaceholder() {
	parent := d.placeholder.Parent()
	if parent == nil || d.IndexOf(d.placeholder) >= 0 {
		return
	}
	errors.Invariant("dnd.Droppable", "placeholder %s is a child of %s", d.placeholder.ID(), parent.ID())
	widget.Detach(d.placeholder)
}
