package dndtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/widget"
)

// counter records deliveries it receives while holding capture.
type counter struct {
	*widget.Label
	moves, ups int
}

func newCounter(text string) *counter {
	c := &counter{Label: widget.NewLabel(text)}
	c.SetSelf(c)
	return c
}

func (c *counter) PointerDown(p *pointer.Pointer) bool {
	if p.GrabCurrent() == nil && widget.Collides(c, p.Position) {
		p.Grab(c)
	}
	return false
}

func (c *counter) PointerMove(p *pointer.Pointer) bool {
	if p.GrabCurrent() == pointer.Handler(c) {
		c.moves++
	}
	return false
}

func (c *counter) PointerUp(p *pointer.Pointer) bool {
	if p.GrabCurrent() == pointer.Handler(c) {
		c.ups++
	}
	return false
}

func TestNew_DefaultSize(t *testing.T) {
	tester := New(t, widget.NewBox(true), graphics.Size{})
	assert.Equal(t, graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}, tester.Window().Size())
}

func TestFind(t *testing.T) {
	a := widget.NewLabel("A")
	tester := New(t, widget.NewBox(true, widget.NewBox(false, a)), graphics.Size{Width: 100, Height: 100})

	n, err := tester.Find(ByText("A"))
	require.NoError(t, err)
	assert.Same(t, a, n)
	assert.Equal(t, graphics.Offset{X: 50, Y: 50}, tester.Center(ByText("A")))

	_, err = tester.Find(ByText("missing"))
	assert.ErrorContains(t, err, `text "missing"`)
}

func TestDragFrom_SplitsMoves(t *testing.T) {
	c := newCounter("C")
	tester := New(t, widget.NewBox(true, c), graphics.Size{Width: 100, Height: 100})

	tester.DragFrom(graphics.Offset{X: 10, Y: 10}, graphics.Offset{X: 90, Y: 90}, 4)

	assert.Equal(t, 4, c.moves)
	assert.Equal(t, 1, c.ups)
}

func TestMoveTo_Interpolates(t *testing.T) {
	tester := New(t, widget.NewBox(true, newCounter("C")), graphics.Size{Width: 100, Height: 100})

	id := tester.Press(graphics.Offset{X: 0, Y: 0})
	tester.MoveTo(id, graphics.Offset{X: 40, Y: 20}, 2)

	p := tester.Window().Pointer(pointer.ID(id))
	require.NotNil(t, p)
	assert.Equal(t, graphics.Offset{X: 20, Y: 10}, p.Delta())
}

func TestCancel_StopsGrabDeliveries(t *testing.T) {
	c := newCounter("C")
	tester := New(t, widget.NewBox(true, c), graphics.Size{Width: 100, Height: 100})

	id := tester.Press(graphics.Offset{X: 10, Y: 10})
	tester.Cancel(id, c)
	tester.SendPointerMove(graphics.Offset{X: 20, Y: 20}, id)

	assert.Zero(t, c.moves)
}

func TestTexts(t *testing.T) {
	box := widget.NewBox(true, widget.NewLabel("A"), widget.NewLabel("B"))
	assert.Equal(t, []string{"A", "B"}, Texts(box))
}
