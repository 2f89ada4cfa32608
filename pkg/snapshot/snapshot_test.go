package snapshot

import (
	"image/color"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

var red = graphics.RGB(255, 0, 0)

func redLabel(text string) *widget.Label {
	l := widget.NewLabel(text)
	l.SetColors(red, graphics.ColorWhite)
	return l
}

func TestRenderIsolated_RendersAtOrigin(t *testing.T) {
	a, b := redLabel("A"), redLabel("B")
	box := widget.NewBox(true, a, b)
	box.SetBounds(graphics.RectFromLTWH(0, 0, 40, 40))
	box.Layout()

	img, err := NewRasterizer().RenderIsolated(b.Visual(), b.Bounds(), graphics.ColorBlack)
	require.NoError(t, err)

	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(39, 0), "label fill starts at the buffer origin")
}

func TestRenderIsolated_BackgroundShowsThrough(t *testing.T) {
	l := widget.NewLabel("")
	l.SetBounds(graphics.RectFromLTWH(10, 10, 8, 8))

	bg := graphics.RGB(0, 0, 255)
	img, err := NewRasterizer().RenderIsolated(l.Visual(), l.Bounds(), bg)
	require.NoError(t, err)
	assert.Equal(t, bg.NRGBA(), img.NRGBAAt(4, 4))
}

func TestRenderIsolated_ReattachesAtOriginalIndex(t *testing.T) {
	a, b, c := redLabel("A"), redLabel("B"), redLabel("C")
	box := widget.NewBox(false, a, b, c)
	box.SetBounds(graphics.RectFromLTWH(0, 0, 90, 30))
	box.Layout()

	_, err := NewRasterizer().RenderIsolated(b.Visual(), b.Bounds(), graphics.ColorBlack)
	require.NoError(t, err)

	assert.Equal(t, []*widget.Visual{a.Visual(), b.Visual(), c.Visual()}, box.Visual().Children())
	assert.Same(t, box.Visual(), b.Visual().Parent())
}

func TestRenderIsolated_EmptyArea(t *testing.T) {
	l := widget.NewLabel("A")

	img, err := NewRasterizer().RenderIsolated(l.Visual(), graphics.Rect{}, graphics.ColorBlack)
	assert.ErrorIs(t, err, ErrEmptySize)
	assert.Nil(t, img)
}

func TestRender_AppliesOffsetAndOpacity(t *testing.T) {
	root := widget.NewVisual()
	shifted := widget.NewVisual()
	shifted.Offset = graphics.Offset{X: 5, Y: 5}
	shifted.Opacity = 0.5
	shifted.SetOps(widget.FillRect{Rect: graphics.RectFromLTWH(0, 0, 2, 2), Color: graphics.ColorWhite})
	root.Append(shifted)

	img, err := NewRasterizer().Render(root, graphics.Size{Width: 10, Height: 10}, graphics.ColorBlack)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 0))
	px := img.NRGBAAt(5, 5)
	assert.InDelta(t, 128, int(px.R), 2, "half-transparent white over black")
	assert.Equal(t, uint8(255), px.A)
}

func TestRender_DrawImageOp(t *testing.T) {
	src := widget.NewLabel("")
	src.SetColors(red, graphics.ColorWhite)
	src.SetBounds(graphics.RectFromLTWH(0, 0, 4, 4))
	r := NewRasterizer()
	pixels, err := r.RenderIsolated(src.Visual(), src.Bounds(), graphics.ColorBlack)
	require.NoError(t, err)

	root := widget.NewVisual()
	root.SetOps(widget.DrawImage{Rect: graphics.RectFromLTWH(2, 2, 4, 4), Image: pixels})
	img, err := r.Render(root, graphics.Size{Width: 8, Height: 8}, graphics.ColorBlack)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(3, 3))
	assert.Equal(t, color.NRGBA{A: 255}, img.NRGBAAt(0, 0))
}

// TestRenderIsolated_AtomicWithFullRender checks that a frame rendered while
// snapshots are being taken never sees the source detached. Run with -race.
func TestRenderIsolated_AtomicWithFullRender(t *testing.T) {
	a, b := redLabel("A"), redLabel("B")
	box := widget.NewBox(true, a, b)
	box.SetBounds(graphics.RectFromLTWH(0, 0, 20, 20))
	box.Layout()
	r := NewRasterizer()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 50 {
			_, _ = r.RenderIsolated(b.Visual(), b.Bounds(), graphics.ColorBlack)
		}
	}()
	missing := 0
	go func() {
		defer wg.Done()
		for range 50 {
			img, err := r.Render(box.Visual(), graphics.Size{Width: 20, Height: 20}, graphics.ColorBlack)
			if err != nil || img.NRGBAAt(18, 11) != (color.NRGBA{R: 255, A: 255}) {
				missing++
			}
		}
	}()
	wg.Wait()

	assert.Zero(t, missing)
}
