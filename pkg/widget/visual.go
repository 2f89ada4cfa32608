package widget

import (
	"image"
	"slices"
	"sync"

	"github.com/go-drift/dnd/pkg/graphics"
)

// Op is a single drawing instruction recorded on a Visual.
type Op interface {
	isOp()
}

// FillRect fills Rect with Color.
type FillRect struct {
	Rect  graphics.Rect
	Color graphics.Color
}

// Text draws Text with its baseline-left corner at Origin.
type Text struct {
	Origin graphics.Offset
	Text   string
	Color  graphics.Color
}

// DrawImage draws Image scaled into Rect.
type DrawImage struct {
	Rect  graphics.Rect
	Image image.Image
}

func (FillRect) isOp()  {}
func (Text) isOp()      {}
func (DrawImage) isOp() {}

// Visual is a node of the render tree. Its ops are in the coordinate space
// shared with its parent, shifted by Offset; children draw after the ops in
// order, so later children paint on top.
//
// The render tree is separate from the widget tree: a widget's visual can be
// detached and rendered on its own while the widget stays where it is.
type Visual struct {
	// Offset translates this visual and its children.
	Offset graphics.Offset
	// Opacity multiplies the alpha of everything drawn. 1 is opaque.
	Opacity float64

	ops      []Op
	children []*Visual
	parent   *Visual

	// mu is the render lock. Only the root's mutex is used.
	mu sync.Mutex
}

// NewVisual returns an empty, opaque visual.
func NewVisual() *Visual {
	return &Visual{Opacity: 1}
}

// SetOps replaces the drawing instructions.
func (v *Visual) SetOps(ops ...Op) {
	v.ops = ops
}

// Ops returns the drawing instructions.
func (v *Visual) Ops() []Op {
	return v.ops
}

// Children returns the child visuals in paint order.
func (v *Visual) Children() []*Visual {
	return v.children
}

// Parent returns the parent visual, or nil for a root.
func (v *Visual) Parent() *Visual {
	return v.parent
}

// Root walks up to the top of the render tree.
func (v *Visual) Root() *Visual {
	r := v
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IndexOf returns the paint-order index of child, or -1.
func (v *Visual) IndexOf(child *Visual) int {
	return slices.Index(v.children, child)
}

// Insert adds child at index, detaching it from any previous parent first.
// An out-of-range index appends.
func (v *Visual) Insert(index int, child *Visual) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	if index < 0 || index > len(v.children) {
		index = len(v.children)
	}
	v.children = slices.Insert(v.children, index, child)
	child.parent = v
}

// Append adds child on top of the existing children.
func (v *Visual) Append(child *Visual) {
	v.Insert(len(v.children), child)
}

// Remove detaches child. Safe to call when child is not attached here.
func (v *Visual) Remove(child *Visual) {
	if i := v.IndexOf(child); i >= 0 {
		v.children = slices.Delete(v.children, i, i+1)
		child.parent = nil
	}
}

// Lock acquires the render lock of the tree v belongs to and returns the
// function that releases it. Structural edits made while holding it are
// invisible to any other render pass.
func (v *Visual) Lock() (unlock func()) {
	root := v.Root()
	root.mu.Lock()
	return root.mu.Unlock
}
