package widget

import (
	"math"

	"github.com/go-drift/dnd/pkg/graphics"
)

// Box lays its children out in a single row or column. Children with a
// fixed Extent keep it; the rest share the remaining space equally.
type Box struct {
	ContainerBase
	Vertical bool
	Spacing  float64
	Padding  float64
}

// NewBox creates a box holding children in order.
func NewBox(vertical bool, children ...Node) *Box {
	b := &Box{Vertical: vertical}
	b.SetSelf(b)
	for _, c := range children {
		b.Append(c)
	}
	return b
}

// Layout positions the children inside the padded bounds and lays out
// their subtrees.
func (b *Box) Layout() {
	n := len(b.children)
	if n == 0 {
		return
	}
	inner := b.bounds.Deflate(b.Padding)
	main := inner.Width()
	if b.Vertical {
		main = inner.Height()
	}

	free := main - b.Spacing*float64(n-1)
	flexible := 0
	for _, c := range b.children {
		if e := c.Extent(); e > 0 {
			free -= e
		} else {
			flexible++
		}
	}
	share := 0.0
	if flexible > 0 {
		share = math.Max(free, 0) / float64(flexible)
	}

	cursor := inner.Left
	if b.Vertical {
		cursor = inner.Top
	}
	for _, c := range b.children {
		size := c.Extent()
		if size <= 0 {
			size = share
		}
		if b.Vertical {
			c.SetBounds(graphics.RectFromLTWH(inner.Left, cursor, inner.Width(), size))
		} else {
			c.SetBounds(graphics.RectFromLTWH(cursor, inner.Top, size, inner.Height()))
		}
		layoutChild(c)
		cursor += size + b.Spacing
	}
}

// Grid lays its children out row-major in Cols equal columns.
type Grid struct {
	ContainerBase
	Cols    int
	Spacing float64
	Padding float64
}

// NewGrid creates a grid with cols columns holding children in order.
func NewGrid(cols int, children ...Node) *Grid {
	g := &Grid{Cols: cols}
	g.SetSelf(g)
	for _, c := range children {
		g.Append(c)
	}
	return g
}

// Layout positions the children in equal cells.
func (g *Grid) Layout() {
	n := len(g.children)
	if n == 0 {
		return
	}
	cols := max(g.Cols, 1)
	rows := (n + cols - 1) / cols
	inner := g.bounds.Deflate(g.Padding)
	w := math.Max(inner.Width()-g.Spacing*float64(cols-1), 0) / float64(cols)
	h := math.Max(inner.Height()-g.Spacing*float64(rows-1), 0) / float64(rows)

	for i, c := range g.children {
		col, row := i%cols, i/cols
		c.SetBounds(graphics.RectFromLTWH(
			inner.Left+float64(col)*(w+g.Spacing),
			inner.Top+float64(row)*(h+g.Spacing),
			w, h,
		))
		layoutChild(c)
	}
}

// Translate shifts its children by Shift, the way a scrolled viewport moves
// its content. Its own bounds stay put, so content shifted outside them is
// still laid out but no longer inside every ancestor.
type Translate struct {
	ContainerBase
	shift graphics.Offset
}

// NewTranslate creates a translating container around children.
func NewTranslate(shift graphics.Offset, children ...Node) *Translate {
	t := &Translate{}
	t.SetSelf(t)
	t.SetShift(shift)
	for _, c := range children {
		t.Append(c)
	}
	return t
}

// Shift returns the translation applied to the children.
func (t *Translate) Shift() graphics.Offset { return t.shift }

// SetShift changes the translation.
func (t *Translate) SetShift(shift graphics.Offset) {
	t.shift = shift
	t.visual.Offset = shift
}

// ToParent applies the shift.
func (t *Translate) ToParent(p graphics.Offset) graphics.Offset { return p.Add(t.shift) }

// FromParent removes the shift.
func (t *Translate) FromParent(p graphics.Offset) graphics.Offset { return p.Sub(t.shift) }

// Layout gives every child the full bounds in child space.
func (t *Translate) Layout() {
	for _, c := range t.children {
		c.SetBounds(t.bounds)
		layoutChild(c)
	}
}
