// Package dndtest drives a widget tree with synthetic pointer gestures.
//
// A Tester wraps an engine window, so every event goes through the same
// hit-test and grab passes the platform would produce:
//
//	tester := dndtest.New(t, root, graphics.Size{Width: 300, Height: 200})
//	if err := tester.DragTo(dndtest.ByText("A"), tester.Center(dndtest.ByText("C")), 5); err != nil {
//	    t.Fatal(err)
//	}
//	assert.Equal(t, []string{"B", "C", "A"}, dndtest.Texts(list))
package dndtest

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/go-drift/dnd/pkg/engine"
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

const (
	// DefaultTestWidth is the default logical width for the test window.
	DefaultTestWidth = 400
	// DefaultTestHeight is the default logical height for the test window.
	DefaultTestHeight = 300
	// DefaultSteps is the number of moves a drag is split into.
	DefaultSteps = 10
)

// Tester sends pointer events to a window.
type Tester struct {
	window *engine.Window
	nextID int64
}

// New creates a tester around root in a window of size. An empty size uses
// the default test size. Dispatch traces go to the test log.
func New(t testing.TB, root widget.Node, size graphics.Size) *Tester {
	if size.IsEmpty() {
		size = graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight}
	}
	w := engine.NewWindow(root, size)
	w.Logger = zaptest.NewLogger(t)
	return &Tester{window: w}
}

// Window returns the window under test. It is also the overlay host to give
// controllers.
func (t *Tester) Window() *engine.Window { return t.window }

// Root returns the root node.
func (t *Tester) Root() widget.Node { return t.window.Root() }

// Layout re-runs layout after the test changed the tree.
func (t *Tester) Layout() { t.window.Layout() }

// allocPointerID returns a fresh pointer ID.
func (t *Tester) allocPointerID() int64 {
	t.nextID++
	return t.nextID
}
