// Package overlay provides the layer that floats above the widget tree, such
// as a drag preview following the pointer.
package overlay

import (
	"slices"
	"sync/atomic"

	"github.com/go-drift/dnd/pkg/widget"
)

// Host is the surface floating elements are added to.
type Host interface {
	AddOverlayElement(n widget.Node)
	RemoveOverlayElement(n widget.Node)
}

// nextEntryID is an atomic counter for unique entry IDs.
var nextEntryID uint64

// Entry is a single item in the overlay stack.
type Entry struct {
	// Node is the floating element. Its bounds are in window coordinates.
	Node widget.Node

	layer *Layer
	id    uint64
}

// NewEntry creates an Entry with a unique ID.
func NewEntry(n widget.Node) *Entry {
	return &Entry{Node: n, id: atomic.AddUint64(&nextEntryID, 1)}
}

// ID returns the entry's unique ID.
func (e *Entry) ID() uint64 { return e.id }

// Remove removes this entry from its layer.
// Safe to call if not inserted or already removed (no-op).
func (e *Entry) Remove() {
	if e.layer == nil {
		return
	}
	e.layer.remove(e)
}

// Layer is an ordered stack of entries; later entries paint on top. It
// implements Host.
type Layer struct {
	entries []*Entry
	visual  *widget.Visual
}

// NewLayer creates an empty layer.
func NewLayer() *Layer {
	return &Layer{visual: widget.NewVisual()}
}

// Visual returns the render tree node holding every entry's visual.
func (l *Layer) Visual() *widget.Visual { return l.visual }

// Entries returns the entries bottom to top. The slice must not be
// modified.
func (l *Layer) Entries() []*Entry { return l.entries }

// Insert adds entry to the layer.
// Positioning: exactly one of below/above may be non-nil.
//   - below non-nil: inserts just below that entry
//   - above non-nil: inserts just above that entry
//   - both nil: inserts at top
//
// An anchor that is not in the layer puts the entry at the bottom (below)
// or top (above).
// Panics if both below AND above are non-nil, or if entry is already
// inserted in any layer.
func (l *Layer) Insert(entry *Entry, below, above *Entry) {
	if below != nil && above != nil {
		panic("overlay: both below and above specified")
	}
	if entry.layer != nil {
		panic("overlay: entry already inserted")
	}
	if entry.id == 0 {
		entry.id = atomic.AddUint64(&nextEntryID, 1)
	}

	index := len(l.entries)
	switch {
	case below != nil:
		index = 0
		if i := slices.Index(l.entries, below); i >= 0 {
			index = i
		}
	case above != nil:
		if i := slices.Index(l.entries, above); i >= 0 {
			index = i + 1
		}
	}
	l.entries = slices.Insert(l.entries, index, entry)
	l.visual.Insert(index, entry.Node.Visual())
	entry.layer = l
}

func (l *Layer) remove(entry *Entry) {
	if entry.layer != l {
		return
	}
	entry.layer = nil
	if i := slices.Index(l.entries, entry); i >= 0 {
		l.entries = slices.Delete(l.entries, i, i+1)
	}
	l.visual.Remove(entry.Node.Visual())
}

// Find returns the entry holding n, or nil.
func (l *Layer) Find(n widget.Node) *Entry {
	for _, e := range l.entries {
		if e.Node == n {
			return e
		}
	}
	return nil
}

// AddOverlayElement puts n on top of the stack. Adding an element that is
// already present is a no-op.
func (l *Layer) AddOverlayElement(n widget.Node) {
	if l.Find(n) != nil {
		return
	}
	l.Insert(NewEntry(n), nil, nil)
}

// RemoveOverlayElement removes n. Safe to call when n is not present.
func (l *Layer) RemoveOverlayElement(n widget.Node) {
	if e := l.Find(n); e != nil {
		e.Remove()
	}
}
