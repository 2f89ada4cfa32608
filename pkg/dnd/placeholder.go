package dnd

import (
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

// PlaceholderStyle is mirrored onto a container's placeholder.
type PlaceholderStyle struct {
	// Extent is the placeholder's main-axis size in a box; 0 shares the free
	// space like any flexible child.
	Extent float64
	// Color fills the placeholder.
	Color graphics.Color
}

// DefaultPlaceholderStyle is a flexible dark gray slot.
var DefaultPlaceholderStyle = PlaceholderStyle{Color: graphics.ColorSpacer}

// Placeholder is the non-interactive node a container inserts where a drop
// would land.
type Placeholder struct {
	widget.Base
	style PlaceholderStyle
}

// NewPlaceholder creates a placeholder with style.
func NewPlaceholder(style PlaceholderStyle) *Placeholder {
	p := &Placeholder{}
	p.SetSelf(p)
	p.SetStyle(style)
	return p
}

// Style returns the current style.
func (p *Placeholder) Style() PlaceholderStyle { return p.style }

// SetStyle applies style.
func (p *Placeholder) SetStyle(style PlaceholderStyle) {
	p.style = style
	p.SetExtent(style.Extent)
	p.repaint()
}

// SetBounds positions the placeholder and repaints it.
func (p *Placeholder) SetBounds(r graphics.Rect) {
	p.Base.SetBounds(r)
	p.repaint()
}

func (p *Placeholder) repaint() {
	p.Visual().SetOps(widget.FillRect{Rect: p.Bounds(), Color: p.style.Color})
}

func (p *Placeholder) String() string { return "placeholder" }
