// Package widget is a small retained widget tree: nodes with bounds in their
// parent's coordinate space, ordered containers, a render tree of visuals,
// and the coordinate helpers pointer handling needs.
//
// Pointer delivery follows the usual retained-mode convention: every node
// receives the event, tests its own bounds, and containers forward to their
// children topmost first until one reports the event handled.
package widget

import (
	"github.com/google/uuid"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/pointer"
)

// Node is an element of the widget tree.
//
// Node is sealed: implementations embed Base (directly or through another
// widget type) and call SetSelf from their constructor.
type Node interface {
	pointer.Handler

	// ID is the node's stable identity.
	ID() uuid.UUID
	// Bounds is the node's rectangle in its parent's coordinate space.
	Bounds() graphics.Rect
	// SetBounds positions the node. Containers call it during Layout.
	SetBounds(r graphics.Rect)
	// Parent returns the containing node, or nil for a root or a detached
	// node.
	Parent() Node
	// ToParent maps a point from this node's child space to its parent's
	// space. FromParent is the inverse.
	ToParent(p graphics.Offset) graphics.Offset
	FromParent(p graphics.Offset) graphics.Offset
	// Visual is the node's render tree entry.
	Visual() *Visual
	// Extent is the fixed size along a box's main axis, or 0 to share the
	// free space.
	Extent() float64

	base() *Base
}

// Base provides identity, geometry and parent bookkeeping for nodes.
// Its pointer handlers report every event unhandled.
type Base struct {
	id     uuid.UUID
	self   Node
	parent Node
	bounds graphics.Rect
	visual *Visual
	extent float64
}

// SetSelf wires the outer widget into its Base and assigns identity.
// Constructors must call it before the node is used.
func (b *Base) SetSelf(self Node) {
	b.self = self
	if b.id == uuid.Nil {
		b.id = uuid.New()
	}
	if b.visual == nil {
		b.visual = NewVisual()
	}
}

func (b *Base) base() *Base { return b }

// ID returns the node's identity.
func (b *Base) ID() uuid.UUID { return b.id }

// Bounds returns the rectangle in parent space.
func (b *Base) Bounds() graphics.Rect { return b.bounds }

// SetBounds stores the rectangle.
func (b *Base) SetBounds(r graphics.Rect) { b.bounds = r }

// Parent returns the containing node.
func (b *Base) Parent() Node { return b.parent }

// ToParent is the identity transform.
func (b *Base) ToParent(p graphics.Offset) graphics.Offset { return p }

// FromParent is the identity transform.
func (b *Base) FromParent(p graphics.Offset) graphics.Offset { return p }

// Visual returns the render tree entry.
func (b *Base) Visual() *Visual { return b.visual }

// Extent returns the fixed main-axis size, 0 when flexible.
func (b *Base) Extent() float64 { return b.extent }

// SetExtent fixes the main-axis size inside a Box. 0 makes it flexible.
func (b *Base) SetExtent(extent float64) { b.extent = extent }

// PointerDown reports the event unhandled.
func (b *Base) PointerDown(*pointer.Pointer) bool { return false }

// PointerMove reports the event unhandled.
func (b *Base) PointerMove(*pointer.Pointer) bool { return false }

// PointerUp reports the event unhandled.
func (b *Base) PointerUp(*pointer.Pointer) bool { return false }

// Detach removes n from its parent container, if any.
func Detach(n Node) {
	if c, ok := n.Parent().(Container); ok {
		c.Remove(n)
	}
}

// Adopt makes outer the node that inner's children and future children see
// as their parent. Decorators that wrap a node call it from their
// constructor so the tree reports the decorator rather than the wrapped
// node. Panics if inner is already attached to a parent.
func Adopt(inner, outer Node) {
	b := inner.base()
	if b.parent != nil {
		panic("widget: Adopt of a node that already has a parent")
	}
	b.self = outer
	if c, ok := inner.(Container); ok {
		for _, child := range c.Children() {
			child.base().parent = outer
		}
	}
}
