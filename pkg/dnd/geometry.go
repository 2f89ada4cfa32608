package dnd

import (
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

// Side says on which side of a child a dragged object should land.
type Side int

const (
	Before Side = iota
	After
)

func (s Side) String() string {
	switch s {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

// Geometry decides where a drop lands relative to a child.
//
// Positions are in the container's child space, the space its children's
// bounds live in. child is never the placeholder. placeholderFirst reports
// whether the placeholder currently sits earlier in the same container than
// child, which grid-like layouts use to break ties inside a cell.
type Geometry interface {
	Compare(child widget.Node, pos graphics.Offset, placeholderFirst bool) Side
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func(child widget.Node, pos graphics.Offset, placeholderFirst bool) Side

// Compare calls f.
func (f GeometryFunc) Compare(child widget.Node, pos graphics.Offset, placeholderFirst bool) Side {
	return f(child, pos, placeholderFirst)
}

// Locator is implemented by geometries that find the child under a position
// themselves. Without it, the first child in order whose bounds contain the
// position wins.
type Locator interface {
	ChildAt(children []widget.Node, pos graphics.Offset) widget.Node
}

func childAt(g Geometry, children []widget.Node, pos graphics.Offset) widget.Node {
	if l, ok := g.(Locator); ok {
		return l.ChildAt(children, pos)
	}
	for _, c := range children {
		if c.Bounds().Contains(pos) {
			return c
		}
	}
	return nil
}

// BoxGeometry compares against the child's center along the box axis.
type BoxGeometry struct {
	Vertical bool
}

// Compare returns Before when pos is above (vertical) or left of
// (horizontal) the child's center. A vertical tie lands before.
func (g BoxGeometry) Compare(child widget.Node, pos graphics.Offset, _ bool) Side {
	c := child.Bounds().Center()
	if g.Vertical {
		if pos.Y <= c.Y {
			return Before
		}
		return After
	}
	if pos.X < c.X {
		return Before
	}
	return After
}

// GridGeometry orders cells row-major. A position above or left of the cell
// lands before it, below or right after it. Inside the cell the placeholder
// swaps past the child: after it when the placeholder comes first, before it
// otherwise.
type GridGeometry struct{}

// Compare implements Geometry.
func (GridGeometry) Compare(child widget.Node, pos graphics.Offset, placeholderFirst bool) Side {
	b := child.Bounds()
	switch {
	case pos.Y < b.Top:
		return Before
	case pos.Y > b.Bottom:
		return After
	case pos.X > b.Right:
		return After
	case pos.X < b.Left:
		return Before
	case placeholderFirst:
		return After
	default:
		return Before
	}
}
