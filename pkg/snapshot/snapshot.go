// Package snapshot rasterizes render trees into pixel buffers: a whole
// window frame, or a single widget's visual taken out of its tree for the
// duration of the render.
package snapshot

import (
	stderrors "errors"
	"image"
	"image/color"
	"math"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

// ErrEmptySize is returned when asked to render a zero-area region.
var ErrEmptySize = stderrors.New("snapshot: empty size")

// Provider renders a visual subtree in isolation.
type Provider interface {
	// RenderIsolated renders v alone into a buffer covering area, which is
	// given in v's drawing space and becomes the buffer origin. Pixels v
	// does not cover take the background color. v keeps its place in its
	// parent's paint order across the call.
	RenderIsolated(v *widget.Visual, area graphics.Rect, background graphics.Color) (*image.NRGBA, error)
}

// Rasterizer is a software Provider that also renders full frames.
type Rasterizer struct {
	// Face draws Text ops. Defaults to basicfont.Face7x13.
	Face font.Face
	// Logger receives render traces at debug level. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

// NewRasterizer creates a rasterizer using the built-in bitmap font.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Face: basicfont.Face7x13, Logger: zap.NewNop()}
}

// RenderIsolated detaches v from its parent, renders it, and reattaches it
// at its original index. The render lock of v's tree is held throughout,
// so no other render pass can observe v missing.
func (r *Rasterizer) RenderIsolated(v *widget.Visual, area graphics.Rect, background graphics.Color) (*image.NRGBA, error) {
	if area.IsEmpty() {
		return nil, ErrEmptySize
	}

	unlock := v.Lock()
	defer unlock()

	if parent := v.Parent(); parent != nil {
		index := parent.IndexOf(v)
		parent.Remove(v)
		defer parent.Insert(index, v)
	}

	dst := newCanvas(area.Size(), background)
	origin := area.Origin()
	r.paint(dst, v, graphics.Offset{X: -origin.X, Y: -origin.Y}, 1)
	r.logger().Debug("isolated render",
		zap.Float64("width", area.Width()),
		zap.Float64("height", area.Height()))
	return dst, nil
}

// Render paints the whole tree rooted at scene into a buffer of the given
// size under the tree's render lock.
func (r *Rasterizer) Render(scene *widget.Visual, size graphics.Size, background graphics.Color) (*image.NRGBA, error) {
	if size.IsEmpty() {
		return nil, ErrEmptySize
	}

	unlock := scene.Lock()
	defer unlock()

	dst := newCanvas(size, background)
	r.paint(dst, scene, graphics.Offset{}, 1)
	return dst, nil
}

func (r *Rasterizer) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Rasterizer) face() font.Face {
	if r.Face == nil {
		return basicfont.Face7x13
	}
	return r.Face
}

func newCanvas(size graphics.Size, background graphics.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, int(math.Ceil(size.Width)), int(math.Ceil(size.Height))))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background.NRGBA()), image.Point{}, draw.Src)
	return dst
}

// paint draws v and its children. offset maps v's drawing space (before
// v.Offset) to buffer pixels; opacity is the product of the ancestors'.
func (r *Rasterizer) paint(dst *image.NRGBA, v *widget.Visual, offset graphics.Offset, opacity float64) {
	opacity *= v.Opacity
	if opacity <= 0 {
		return
	}
	offset = offset.Add(v.Offset)

	for _, op := range v.Ops() {
		switch op := op.(type) {
		case widget.FillRect:
			draw.Draw(dst, pixelRect(op.Rect, offset), image.NewUniform(fade(op.Color, opacity)), image.Point{}, draw.Over)
		case widget.Text:
			d := font.Drawer{
				Dst:  dst,
				Src:  image.NewUniform(fade(op.Color, opacity)),
				Face: r.face(),
				Dot:  fixed.P(int(math.Round(op.Origin.X+offset.X)), int(math.Round(op.Origin.Y+offset.Y))),
			}
			d.DrawString(op.Text)
		case widget.DrawImage:
			if op.Image == nil {
				continue
			}
			var opts *draw.Options
			if opacity < 1 {
				opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})}
			}
			draw.ApproxBiLinear.Scale(dst, pixelRect(op.Rect, offset), op.Image, op.Image.Bounds(), draw.Over, opts)
		}
	}
	for _, child := range v.Children() {
		r.paint(dst, child, offset, opacity)
	}
}

func pixelRect(rect graphics.Rect, offset graphics.Offset) image.Rectangle {
	rect = rect.Translate(offset.X, offset.Y)
	return image.Rect(
		int(math.Round(rect.Left)), int(math.Round(rect.Top)),
		int(math.Round(rect.Right)), int(math.Round(rect.Bottom)),
	)
}

func fade(c graphics.Color, opacity float64) color.NRGBA {
	if opacity >= 1 {
		return c.NRGBA()
	}
	return c.WithAlpha(c.Alpha() * opacity).NRGBA()
}
