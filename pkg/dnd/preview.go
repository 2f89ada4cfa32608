package dnd

import (
	"image"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

// Preview is the floating image of the dragged widget. Its position is in
// window coordinates. It never handles pointer events.
type Preview struct {
	widget.Base
	image *image.NRGBA
}

func newPreview() *Preview {
	p := &Preview{}
	p.SetSelf(p)
	return p
}

// Image returns the snapshot shown, or nil for a blank preview.
func (p *Preview) Image() *image.NRGBA { return p.image }

// Position returns the window position of the top-left corner.
func (p *Preview) Position() graphics.Offset { return p.Bounds().Origin() }

// Opacity returns the current opacity.
func (p *Preview) Opacity() float64 { return p.Visual().Opacity }

func (p *Preview) setImage(img *image.NRGBA, size graphics.Size) {
	p.image = img
	p.Base.SetBounds(graphics.RectFromOriginSize(p.Position(), size))
	p.repaint()
}

func (p *Preview) setPosition(pos graphics.Offset) {
	p.Base.SetBounds(graphics.RectFromOriginSize(pos, p.Bounds().Size()))
	p.repaint()
}

func (p *Preview) setOpacity(opacity float64) {
	p.Visual().Opacity = opacity
}

func (p *Preview) repaint() {
	if p.image == nil {
		p.Visual().SetOps()
		return
	}
	p.Visual().SetOps(widget.DrawImage{Rect: p.Bounds(), Image: p.image})
}
