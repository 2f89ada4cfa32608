package dnd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

func cell(l, t, w, h float64) widget.Node {
	n := widget.NewLabel("cell")
	n.SetBounds(graphics.RectFromLTWH(l, t, w, h))
	return n
}

func TestSideString(t *testing.T) {
	assert.Equal(t, "before", Before.String())
	assert.Equal(t, "after", After.String())
	assert.Equal(t, "unknown", Side(9).String())
}

func TestBoxGeometry(t *testing.T) {
	child := cell(0, 0, 100, 40)

	tests := []struct {
		name     string
		vertical bool
		pos      graphics.Offset
		want     Side
	}{
		{"vertical above center", true, at(50, 10), Before},
		{"vertical on center", true, at(50, 20), Before},
		{"vertical below center", true, at(50, 21), After},
		{"horizontal left of center", false, at(10, 20), Before},
		{"horizontal on center", false, at(50, 20), After},
		{"horizontal right of center", false, at(90, 20), After},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BoxGeometry{Vertical: tt.vertical}
			assert.Equal(t, tt.want, g.Compare(child, tt.pos, false))
		})
	}
}

func TestGridGeometry(t *testing.T) {
	child := cell(50, 50, 50, 50)

	tests := []struct {
		name             string
		pos              graphics.Offset
		placeholderFirst bool
		want             Side
	}{
		{"row above", at(75, 10), false, Before},
		{"row below", at(75, 120), true, After},
		{"right of cell", at(120, 75), false, After},
		{"left of cell", at(10, 75), true, Before},
		{"inside, placeholder later", at(75, 75), false, Before},
		{"inside, placeholder earlier", at(75, 75), true, After},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GridGeometry{}.Compare(child, tt.pos, tt.placeholderFirst))
		})
	}
}

type fixedLocator struct {
	BoxGeometry
	hit int
}

func (l fixedLocator) ChildAt(children []widget.Node, _ graphics.Offset) widget.Node {
	return children[l.hit]
}

func TestChildAt(t *testing.T) {
	a, b := cell(0, 0, 10, 10), cell(0, 0, 10, 10)
	children := []widget.Node{a, b}

	assert.Same(t, a, childAt(BoxGeometry{}, children, at(5, 5)), "overlapping siblings: first in order wins")
	assert.Nil(t, childAt(BoxGeometry{}, children, at(50, 5)))
	assert.Same(t, b, childAt(fixedLocator{hit: 1}, children, at(5, 5)))
}

func TestGeometryFunc(t *testing.T) {
	var seen bool
	g := GeometryFunc(func(_ widget.Node, _ graphics.Offset, placeholderFirst bool) Side {
		seen = placeholderFirst
		return After
	})
	assert.Equal(t, After, g.Compare(cell(0, 0, 1, 1), at(0, 0), true))
	assert.True(t, seen)
}
