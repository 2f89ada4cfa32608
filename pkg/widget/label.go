package widget

import "github.com/go-drift/dnd/pkg/graphics"

// labelInset is the distance from the label's left edge to its text.
const labelInset = 4

// Label is a leaf that paints a background and a line of text.
type Label struct {
	Base
	text       string
	background graphics.Color
	foreground graphics.Color
}

// NewLabel creates a label with white text on a transparent background.
func NewLabel(text string) *Label {
	l := &Label{text: text, foreground: graphics.ColorWhite}
	l.SetSelf(l)
	return l
}

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// SetColors changes the background and text colors.
func (l *Label) SetColors(background, foreground graphics.Color) {
	l.background = background
	l.foreground = foreground
	l.repaint()
}

// SetBounds positions the label and re-records its ops.
func (l *Label) SetBounds(r graphics.Rect) {
	l.Base.SetBounds(r)
	l.repaint()
}

func (l *Label) repaint() {
	r := l.bounds
	baseline := graphics.Offset{X: r.Left + labelInset, Y: r.Center().Y + 4}
	l.visual.SetOps(
		FillRect{Rect: r, Color: l.background},
		Text{Origin: baseline, Text: l.text, Color: l.foreground},
	)
}

// String returns the label text, which keeps test output readable.
func (l *Label) String() string { return l.text }
