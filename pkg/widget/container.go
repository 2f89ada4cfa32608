package widget

import (
	"slices"

	"github.com/go-drift/dnd/pkg/pointer"
)

// Container is a node with an ordered list of children. Index 0 is the
// first child; later children paint on top of earlier ones.
type Container interface {
	Node
	Children() []Node
	IndexOf(child Node) int
	// Insert adds child at index. An index outside [0, len] appends.
	// Panics if child already has a parent.
	Insert(child Node, index int)
	Append(child Node)
	// Remove detaches child. Safe to call when child is not a member.
	Remove(child Node)
}

// Layouter is implemented by nodes that position their children.
type Layouter interface {
	Layout()
}

// ContainerBase implements Container on top of Base. Its pointer handlers
// forward events to the children, topmost first, and stop at the first
// child that handles the event.
type ContainerBase struct {
	Base
	children []Node
}

// Children returns the children in order. The slice must not be modified.
func (c *ContainerBase) Children() []Node {
	return c.children
}

// IndexOf returns the index of child, or -1.
func (c *ContainerBase) IndexOf(child Node) int {
	return slices.Index(c.children, child)
}

// Insert adds child at index and mirrors it into the render tree.
func (c *ContainerBase) Insert(child Node, index int) {
	cb := child.base()
	if cb.parent != nil {
		panic("widget: Insert of a node that already has a parent")
	}
	if index < 0 || index > len(c.children) {
		index = len(c.children)
	}
	c.children = slices.Insert(c.children, index, child)
	cb.parent = c.self
	c.visual.Insert(index, child.Visual())
}

// Append adds child after the existing children.
func (c *ContainerBase) Append(child Node) {
	c.Insert(child, len(c.children))
}

// Remove detaches child from this container and the render tree.
func (c *ContainerBase) Remove(child Node) {
	i := c.IndexOf(child)
	if i < 0 {
		return
	}
	c.children = slices.Delete(c.children, i, i+1)
	child.base().parent = nil
	c.visual.Remove(child.Visual())
}

// PointerDown forwards to the children.
func (c *ContainerBase) PointerDown(p *pointer.Pointer) bool {
	return c.forward(p, Node.PointerDown)
}

// PointerMove forwards to the children.
func (c *ContainerBase) PointerMove(p *pointer.Pointer) bool {
	return c.forward(p, Node.PointerMove)
}

// PointerUp forwards to the children.
func (c *ContainerBase) PointerUp(p *pointer.Pointer) bool {
	return c.forward(p, Node.PointerUp)
}

func (c *ContainerBase) forward(p *pointer.Pointer, deliver func(Node, *pointer.Pointer) bool) bool {
	// Handlers may reorder the children (a drop inserts into this very
	// container), so walk a snapshot.
	children := slices.Clone(c.children)
	for i := len(children) - 1; i >= 0; i-- {
		if deliver(children[i], p) {
			return true
		}
	}
	return false
}

// Relayout re-runs n's layout if it positions children.
func Relayout(n Node) {
	if l, ok := n.(Layouter); ok {
		l.Layout()
	}
}

// layoutChild recurses into children that lay out their own subtree.
func layoutChild(child Node) {
	Relayout(child)
}
