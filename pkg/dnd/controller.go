package dnd

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/go-drift/dnd/pkg/errors"
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/overlay"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/snapshot"
	"github.com/go-drift/dnd/pkg/widget"
)

const (
	// DefaultDragDistance is the distance, in logical pixels, a pointer must
	// travel before a press becomes a drag. It matches the usual scroll
	// distance so scrollable ancestors and drags agree.
	DefaultDragDistance = 20
	// DefaultPreviewOpacity is the preview opacity while dragging.
	DefaultPreviewOpacity = 0.4
)

// State is the phase of a controller's drag session.
type State int

const (
	// Idle means no session is active.
	Idle State = iota
	// Armed means a draggable was pressed but the pointer has not yet
	// travelled DragDistance.
	Armed
	// Dragging means the preview follows the pointer.
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Controller runs drag sessions, one at a time. Several draggables may
// share a controller; a press on any of them tears down the session in
// flight first.
type Controller struct {
	// DragDistance is the threshold on the accumulated absolute motion.
	DragDistance float64
	// PreviewOpacity is applied to the preview once dragging starts.
	PreviewOpacity float64
	// BackgroundColor fills snapshot pixels the widget does not cover. Set a
	// transparent color for a see-through preview.
	BackgroundColor graphics.Color
	// Snapshots renders the dragged widget. Defaults to a software
	// rasterizer.
	Snapshots snapshot.Provider
	// Logger receives session transitions at debug level.
	Logger *zap.Logger
	// OnStateChange, if set, is called after every state transition.
	OnStateChange func(from, to State)

	host    overlay.Host
	preview *Preview
	shown   bool

	state   State
	dragged *Draggable
	pointer *pointer.Pointer
	dx, dy  float64
	start   graphics.Offset

	// dropped records a drop accepted before the press ended. pending is a
	// released draggable still waiting to hear about its drop.
	dropped bool
	pending *Draggable
}

// NewController creates a controller whose preview floats on host. A nil
// snapshots uses the default rasterizer.
func NewController(host overlay.Host, snapshots snapshot.Provider) *Controller {
	if host == nil {
		panic("dnd: NewController requires an overlay host")
	}
	if snapshots == nil {
		snapshots = snapshot.NewRasterizer()
	}
	return &Controller{
		DragDistance:    DefaultDragDistance,
		PreviewOpacity:  DefaultPreviewOpacity,
		BackgroundColor: graphics.ColorBlack,
		Snapshots:       snapshots,
		Logger:          zap.NewNop(),
		host:            host,
		preview:         newPreview(),
	}
}

// State returns the session state.
func (c *Controller) State() State { return c.state }

// IsDragging reports whether the preview is following a pointer.
func (c *Controller) IsDragging() bool { return c.state == Dragging }

// Dragged returns the draggable of the active session, or nil.
func (c *Controller) Dragged() *Draggable { return c.dragged }

// Preview returns the floating preview element.
func (c *Controller) Preview() *Preview { return c.preview }

// PressStart begins a session for src. Any session in flight is torn down
// first. The preview is prepared and added to the overlay, invisible, at
// src's window origin. It always reports the event unhandled.
func (c *Controller) PressStart(src *Draggable, p *pointer.Pointer) bool {
	c.Clean()
	if old := c.dragged; old != nil && old != src {
		c.clearStamp()
		old.abandon()
	}
	c.pending = nil
	c.dropped = false

	c.dragged = src
	c.pointer = p
	c.dx, c.dy = 0, 0
	c.prepareSnapshot(src.snapshotSource())
	c.preview.setOpacity(0)
	c.host.AddOverlayElement(c.preview)
	c.shown = true
	c.start = widget.WindowRect(src).Origin()
	c.preview.setPosition(c.start)
	c.setState(Armed)
	return false
}

// PressMove accumulates motion while armed and starts the drag once it
// exceeds DragDistance: the preview becomes visible, the pointer's envelope
// is stamped with src, and src's initiate hook runs. While dragging, the
// preview tracks the pointer. It always reports the event unhandled so
// containers can react independently.
func (c *Controller) PressMove(src *Draggable, p *pointer.Pointer) bool {
	if src != c.dragged {
		return false
	}
	switch c.state {
	case Armed:
		d := p.Delta()
		c.dx += math.Abs(d.X)
		c.dy += math.Abs(d.Y)
		if math.Hypot(c.dx, c.dy) <= c.DragDistance {
			return false
		}
		c.preview.setOpacity(c.PreviewOpacity)
		p.Envelope().SetDrag(src.DragTag, src)
		c.setState(Dragging)
		src.initiate()
	case Dragging:
	default:
		return false
	}
	c.preview.setPosition(c.start.Add(p.Moved()))
	return false
}

// PressEnd tears the preview down and ends the session. A press that never
// became a drag ends quietly. A drag that a container already accepted
// completes now; otherwise it completes when a container reports the drop
// through Dropped before the pointer ends. It always reports the event
// unhandled.
func (c *Controller) PressEnd(src *Draggable, p *pointer.Pointer) bool {
	if src != c.dragged {
		return false
	}
	c.Clean()
	dragging := c.state == Dragging
	dropped := c.dropped
	c.reset()
	if !dragging {
		return false
	}
	if dropped {
		src.complete()
		return false
	}
	c.pending = src
	p.AtEnd(func() {
		if c.pending == src {
			c.pending = nil
		}
	})
	return false
}

// Dropped reports that a container accepted src. Containers call it after
// running their release handler.
func (c *Controller) Dropped(src *Draggable) {
	switch {
	case c.pending == src && src != nil:
		c.pending = nil
		src.complete()
	case c.dragged == src && c.state == Dragging:
		c.dropped = true
	}
}

// Clean removes the preview from the overlay and drops its snapshot. Safe
// to call at any time.
func (c *Controller) Clean() {
	if c.shown {
		c.host.RemoveOverlayElement(c.preview)
		c.shown = false
	}
	if c.preview.Image() != nil {
		c.preview.setImage(nil, graphics.Size{})
	}
}

// Abort ends src's session without completing it, as when its pointer
// capture is revoked.
func (c *Controller) Abort(src *Draggable) {
	if src != c.dragged {
		return
	}
	c.Clean()
	c.clearStamp()
	c.reset()
}

// clearStamp takes the drag tag off the session's pointer so containers stop
// treating it as a drag.
func (c *Controller) clearStamp() {
	if c.state == Dragging && c.pointer != nil && c.pointer.HasEnvelope() {
		c.pointer.Envelope().ClearDrag()
	}
}

func (c *Controller) reset() {
	c.dragged = nil
	c.pointer = nil
	c.dropped = false
	c.setState(Idle)
}

func (c *Controller) setState(to State) {
	from := c.state
	if from == to {
		return
	}
	c.state = to
	c.logger().Debug("drag state",
		zap.Stringer("from", from),
		zap.Stringer("to", to),
		zap.Float64("dx", c.dx),
		zap.Float64("dy", c.dy))
	if c.OnStateChange != nil {
		c.OnStateChange(from, to)
	}
}

// prepareSnapshot renders source into the preview. A zero-area source
// leaves the preview blank.
func (c *Controller) prepareSnapshot(source widget.Node) {
	area := source.Bounds()
	if area.IsEmpty() {
		errors.Report(&errors.DndError{
			Op:   "dnd.Controller.PressStart",
			Kind: errors.KindDegenerateGeometry,
			Err:  fmt.Errorf("snapshot source %s has no area", source.ID()),
		})
		c.preview.setImage(nil, area.Size())
		return
	}
	img, err := c.Snapshots.RenderIsolated(source.Visual(), area, c.BackgroundColor)
	if err != nil {
		errors.Report(&errors.DndError{
			Op:   "dnd.Controller.PressStart",
			Kind: errors.KindRender,
			Err:  err,
		})
		img = nil
	}
	c.preview.setImage(img, area.Size())
}

func (c *Controller) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
