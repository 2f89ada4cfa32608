package widget

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/pointer"
)

func texts(c Container) []string {
	var out []string
	for _, n := range c.Children() {
		out = append(out, n.(*Label).Text())
	}
	return out
}

func TestContainer_InsertRemoveMirrorsVisuals(t *testing.T) {
	a, b, c := NewLabel("A"), NewLabel("B"), NewLabel("C")
	box := NewBox(true, a, c)

	box.Insert(b, 1)
	if diff := cmp.Diff([]string{"A", "B", "C"}, texts(box)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []*Visual{a.Visual(), b.Visual(), c.Visual()}, box.Visual().Children())
	assert.Same(t, box, b.Parent())

	box.Remove(b)
	assert.Nil(t, b.Parent())
	assert.Equal(t, -1, box.IndexOf(b))
	assert.Nil(t, b.Visual().Parent())

	box.Remove(b)
	assert.Len(t, box.Children(), 2, "removing a non-member is a no-op")
}

func TestContainer_InsertClampsIndex(t *testing.T) {
	box := NewBox(true, NewLabel("A"))
	box.Insert(NewLabel("B"), 99)
	box.Insert(NewLabel("Z"), -1)

	assert.Equal(t, []string{"A", "B", "Z"}, texts(box))
}

func TestContainer_InsertPanicsWhenParented(t *testing.T) {
	a := NewLabel("A")
	NewBox(true, a)

	assert.Panics(t, func() { NewBox(true).Append(a) })

	Detach(a)
	assert.NotPanics(t, func() { NewBox(true).Append(a) })
}

func TestBoxLayout_Vertical(t *testing.T) {
	a, b, c := NewLabel("A"), NewLabel("B"), NewLabel("C")
	b.SetExtent(20)
	box := NewBox(true, a, b, c)
	box.Spacing = 10
	box.SetBounds(graphics.RectFromLTWH(0, 0, 100, 120))
	box.Layout()

	// 120 - 2*10 spacing - 20 fixed = 80, shared by two flexible children.
	assert.True(t, a.Bounds().Equal(graphics.RectFromLTWH(0, 0, 100, 40)), "%v", a.Bounds())
	assert.True(t, b.Bounds().Equal(graphics.RectFromLTWH(0, 50, 100, 20)), "%v", b.Bounds())
	assert.True(t, c.Bounds().Equal(graphics.RectFromLTWH(0, 80, 100, 40)), "%v", c.Bounds())
}

func TestBoxLayout_NestedAndPadded(t *testing.T) {
	inner := NewBox(false, NewLabel("L"), NewLabel("R"))
	outer := NewBox(true, inner)
	outer.Padding = 5
	outer.SetBounds(graphics.RectFromLTWH(0, 0, 110, 50))
	outer.Layout()

	r := inner.Children()[1].Bounds()
	assert.True(t, r.Equal(graphics.RectFromLTWH(55, 5, 50, 40)), "%v", r)
}

func TestGridLayout(t *testing.T) {
	var kids []Node
	for _, s := range []string{"1", "2", "3", "4", "5"} {
		kids = append(kids, NewLabel(s))
	}
	g := NewGrid(3, kids...)
	g.SetBounds(graphics.RectFromLTWH(0, 0, 90, 60))
	g.Layout()

	assert.True(t, kids[0].Bounds().Equal(graphics.RectFromLTWH(0, 0, 30, 30)))
	assert.True(t, kids[2].Bounds().Equal(graphics.RectFromLTWH(60, 0, 30, 30)))
	assert.True(t, kids[4].Bounds().Equal(graphics.RectFromLTWH(30, 30, 30, 30)))
}

func TestCollideAncestors_TranslatedContentOutsideViewport(t *testing.T) {
	content := NewBox(true, NewLabel("A"))
	viewport := NewTranslate(graphics.Offset{X: 0, Y: -50}, content)
	root := NewBox(true, viewport)
	root.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	root.Layout()

	// The content keeps its child-space bounds (0..100) but is drawn 50px up.
	in := graphics.Offset{X: 10, Y: 20}
	assert.True(t, CollideAncestors(content, in))
	assert.Equal(t, graphics.Offset{X: 10, Y: 70}, ParentPoint(content, in))

	// Window y=60 maps to content y=110: inside the viewport, outside the
	// content.
	assert.False(t, CollideAncestors(content, graphics.Offset{X: 10, Y: 60}))

	// Window y=-10 maps to content y=40: inside the content, above the
	// viewport.
	assert.True(t, Collides(content, graphics.Offset{X: 10, Y: -10}))
	assert.False(t, CollideAncestors(content, graphics.Offset{X: 10, Y: -10}))
}

func TestWindowRect(t *testing.T) {
	a := NewLabel("A")
	viewport := NewTranslate(graphics.Offset{X: 5, Y: 7}, a)
	root := NewBox(true, viewport)
	root.SetBounds(graphics.RectFromLTWH(0, 0, 40, 40))
	root.Layout()

	assert.True(t, WindowRect(a).Equal(graphics.RectFromLTWH(5, 7, 40, 40)))
}

type recordingLabel struct {
	*Label
	log     *[]string
	handled bool
}

func (r *recordingLabel) PointerDown(*pointer.Pointer) bool {
	*r.log = append(*r.log, r.Text())
	return r.handled
}

func TestContainer_ForwardsTopmostFirst(t *testing.T) {
	var log []string
	a := &recordingLabel{Label: NewLabel("A"), log: &log}
	b := &recordingLabel{Label: NewLabel("B"), log: &log, handled: true}
	c := &recordingLabel{Label: NewLabel("C"), log: &log}
	box := NewBox(true, a, b, c)

	require.True(t, box.PointerDown(pointer.New(1, graphics.Offset{})))
	assert.Equal(t, []string{"C", "B"}, log, "stops at the first child that handles")
}

func TestLabel_RepaintsOnBounds(t *testing.T) {
	l := NewLabel("A")
	l.SetColors(graphics.ColorBlack, graphics.ColorWhite)
	l.SetBounds(graphics.RectFromLTWH(1, 2, 3, 4))

	ops := l.Visual().Ops()
	require.Len(t, ops, 2)
	assert.Equal(t, FillRect{Rect: graphics.RectFromLTWH(1, 2, 3, 4), Color: graphics.ColorBlack}, ops[0])
}

func TestVisual_LockIsTreeWide(t *testing.T) {
	a := NewLabel("A")
	box := NewBox(true, a)

	unlock := a.Visual().Lock()
	assert.False(t, box.Visual().mu.TryLock(), "child lock holds the root mutex")
	unlock()
	assert.True(t, box.Visual().mu.TryLock())
	box.Visual().mu.Unlock()
}

// wrapper decorates a box the way drag and drop capabilities do.
type wrapper struct {
	Container
}

func (w *wrapper) Layout() { Relayout(w.Container) }

func TestAdopt_ReparentsChildren(t *testing.T) {
	a := NewLabel("A")
	inner := NewBox(true, a)
	w := &wrapper{Container: inner}
	Adopt(inner, w)

	assert.Same(t, w, a.Parent())
	b := NewLabel("B")
	w.Append(b)
	assert.Same(t, w, b.Parent(), "later children see the wrapper too")

	outer := NewBox(false, w)
	outer.SetBounds(graphics.RectFromLTWH(0, 0, 100, 40))
	outer.Layout()
	assert.Equal(t, graphics.RectFromLTWH(0, 20, 100, 20), b.Bounds())
	assert.Equal(t, []Node{outer, w}, ancestors(b))

	assert.Panics(t, func() { Adopt(inner, &wrapper{Container: inner}) })
}
