package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dnd/pkg/widget"
)

// TestNewEntry_UniqueIDs verifies that NewEntry assigns unique IDs.
func TestNewEntry_UniqueIDs(t *testing.T) {
	e1 := NewEntry(widget.NewLabel("a"))
	e2 := NewEntry(widget.NewLabel("b"))

	assert.NotZero(t, e1.ID())
	assert.NotEqual(t, e1.ID(), e2.ID())
}

func TestInsert_Positioning(t *testing.T) {
	l := NewLayer()
	a := NewEntry(widget.NewLabel("a"))
	b := NewEntry(widget.NewLabel("b"))
	c := NewEntry(widget.NewLabel("c"))
	d := NewEntry(widget.NewLabel("d"))

	l.Insert(a, nil, nil)
	l.Insert(b, nil, nil)
	l.Insert(c, a, nil)
	l.Insert(d, nil, c)

	assert.Equal(t, []*Entry{c, d, a, b}, l.Entries())
	require.Len(t, l.Visual().Children(), 4)
	assert.Same(t, c.Node.Visual(), l.Visual().Children()[0])
}

func TestInsert_MissingAnchor(t *testing.T) {
	l := NewLayer()
	a := NewEntry(widget.NewLabel("a"))
	l.Insert(a, nil, nil)

	stray := NewEntry(widget.NewLabel("stray"))
	bottom := NewEntry(widget.NewLabel("bottom"))
	top := NewEntry(widget.NewLabel("top"))
	l.Insert(bottom, stray, nil)
	l.Insert(top, nil, stray)

	assert.Equal(t, []*Entry{bottom, a, top}, l.Entries())
}

func TestInsert_Panics(t *testing.T) {
	l := NewLayer()
	a := NewEntry(widget.NewLabel("a"))
	l.Insert(a, nil, nil)

	assert.Panics(t, func() { l.Insert(a, nil, nil) }, "double insert")
	assert.Panics(t, func() {
		l.Insert(NewEntry(widget.NewLabel("x")), a, a)
	}, "both anchors")
	assert.Panics(t, func() { NewLayer().Insert(a, nil, nil) }, "entry owned by another layer")
}

func TestEntryRemove_Idempotent(t *testing.T) {
	l := NewLayer()
	a := NewEntry(widget.NewLabel("a"))

	a.Remove()
	l.Insert(a, nil, nil)
	a.Remove()
	a.Remove()

	assert.Empty(t, l.Entries())
	assert.Empty(t, l.Visual().Children())

	l.Insert(a, nil, nil)
	assert.Len(t, l.Entries(), 1, "removed entries can be inserted again")
}

func TestHost_AddRemoveElement(t *testing.T) {
	var h Host = NewLayer()
	n := widget.NewLabel("preview")

	h.AddOverlayElement(n)
	h.AddOverlayElement(n)
	layer := h.(*Layer)
	require.Len(t, layer.Entries(), 1)
	assert.Same(t, n.Visual(), layer.Visual().Children()[0])

	h.RemoveOverlayElement(n)
	h.RemoveOverlayElement(n)
	assert.Nil(t, layer.Find(n))
	assert.Nil(t, n.Visual().Parent())
}
