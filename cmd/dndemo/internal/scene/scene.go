package scene

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/go-drift/dnd/pkg/dnd"
	"github.com/go-drift/dnd/pkg/engine"
	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/pointer"
	"github.com/go-drift/dnd/pkg/snapshot"
	"github.com/go-drift/dnd/pkg/widget"
)

// Default window size and gesture resolution.
const (
	DefaultWidth  = 400
	DefaultHeight = 300
	DefaultSteps  = 10
)

// Options tune the controller shared by a scene's draggables.
type Options struct {
	Logger *zap.Logger
	// DragDistance and PreviewOpacity keep the controller defaults when
	// zero. Configuration rejects zero for both.
	DragDistance   float64
	PreviewOpacity float64
	Background     graphics.Color
}

// Scene is a built document.
type Scene struct {
	Window     *engine.Window
	Controller *dnd.Controller

	doc        *Document
	logger     *zap.Logger
	names      []string
	containers map[string]*dnd.Droppable
	items      map[string]widget.Node
	nextID     int64
}

// Order is a container's children after a replay.
type Order struct {
	Name  string
	Items []string
}

// Build creates the widget tree, window and controller for doc.
func Build(doc *Document, opts Options) *Scene {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	size := graphics.Size{Width: doc.Window.Width, Height: doc.Window.Height}
	if size.IsEmpty() {
		size = graphics.Size{Width: DefaultWidth, Height: DefaultHeight}
	}

	s := &Scene{
		doc:        doc,
		logger:     logger,
		containers: make(map[string]*dnd.Droppable),
		items:      make(map[string]widget.Node),
	}
	root := widget.NewBox(doc.Vertical)
	var draggables []*dnd.Draggable
	for _, cs := range doc.Containers {
		host, geometry := s.newHost(cs)
		for _, it := range cs.Items {
			label := widget.NewLabel(it.Text)
			// Validated by Parse.
			bg, _ := ParseColor(it.Color)
			label.SetColors(bg, graphics.ColorWhite)
			if it.Tag == "" {
				host.Append(label)
				s.items[it.Text] = label
				continue
			}
			drag := dnd.NewDraggable(label, it.Tag, nil)
			drag.OnInitiate = dnd.DetachOnInitiate
			drag.Logger = logger.Named("draggable")
			host.Append(drag)
			s.items[it.Text] = drag
			draggables = append(draggables, drag)
		}

		d := dnd.NewDroppable(host, geometry, cs.Accepts...)
		d.AppendOnly = cs.AppendOnly
		if cs.AppendAt == "start" {
			d.AppendAt = dnd.AppendStart
		}
		d.OnRelease = dnd.InsertOnRelease(d)
		d.Logger = logger.Named("droppable").With(zap.String("container", cs.Name))
		root.Append(d)
		s.names = append(s.names, cs.Name)
		s.containers[cs.Name] = d
	}

	s.Window = engine.NewWindow(root, size)
	s.Window.Logger = logger.Named("window")
	s.Controller = dnd.NewController(s.Window, snapshot.NewRasterizer())
	s.Controller.Logger = logger.Named("controller")
	s.Controller.BackgroundColor = opts.Background
	if opts.DragDistance > 0 {
		s.Controller.DragDistance = opts.DragDistance
	}
	if opts.PreviewOpacity > 0 {
		s.Controller.PreviewOpacity = opts.PreviewOpacity
	}
	for _, d := range draggables {
		d.SetController(s.Controller)
	}
	return s
}

func (s *Scene) newHost(cs ContainerSpec) (widget.Container, dnd.Geometry) {
	if cs.Kind == "grid" {
		g := widget.NewGrid(cs.Cols)
		g.Spacing, g.Padding = cs.Spacing, cs.Padding
		return g, dnd.GridGeometry{}
	}
	vertical := cs.Vertical == nil || *cs.Vertical
	b := widget.NewBox(vertical)
	b.Spacing, b.Padding = cs.Spacing, cs.Padding
	return b, dnd.BoxGeometry{Vertical: vertical}
}

// Container returns the named container, or nil.
func (s *Scene) Container(name string) *dnd.Droppable { return s.containers[name] }

// Replay plays every scripted gesture in order.
func (s *Scene) Replay() error {
	for i, g := range s.doc.Gestures {
		if err := s.Play(g); err != nil {
			return fmt.Errorf("gesture %d: %w", i, err)
		}
	}
	return nil
}

// Play presses the center of the item to drag, moves to the target in
// Steps moves and releases there.
func (s *Scene) Play(g Gesture) error {
	n, ok := s.items[g.Drag]
	if !ok {
		return fmt.Errorf("unknown item %q", g.Drag)
	}
	to, err := s.target(g.To)
	if err != nil {
		return err
	}
	steps := g.Steps
	if steps <= 0 {
		steps = DefaultSteps
	}

	s.nextID++
	id := s.nextID
	from := widget.WindowRect(n).Center()
	s.logger.Info("gesture",
		zap.String("drag", g.Drag),
		zap.Float64("from_x", from.X), zap.Float64("from_y", from.Y),
		zap.Float64("to_x", to.X), zap.Float64("to_y", to.Y),
		zap.Int("steps", steps))

	s.send(id, pointer.PhaseDown, from)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.send(id, pointer.PhaseMove, graphics.Offset{
			X: from.X + (to.X-from.X)*t,
			Y: from.Y + (to.Y-from.Y)*t,
		})
	}
	s.send(id, pointer.PhaseUp, to)
	return nil
}

func (s *Scene) send(id int64, phase pointer.Phase, pos graphics.Offset) {
	s.Window.HandlePointer(engine.PointerEvent{PointerID: id, Phase: phase, X: pos.X, Y: pos.Y})
}

// target resolves a release point. Before an item is a quarter of the way
// into it from its top-left corner; after is a quarter from its
// bottom-right.
func (s *Scene) target(t Target) (graphics.Offset, error) {
	if t.Item == "" {
		return graphics.Offset{X: t.X, Y: t.Y}, nil
	}
	n, ok := s.items[t.Item]
	if !ok {
		return graphics.Offset{}, fmt.Errorf("unknown target item %q", t.Item)
	}
	r := widget.WindowRect(n)
	qw, qh := r.Width()/4, r.Height()/4
	if t.Side == "after" {
		return graphics.Offset{X: r.Right - qw, Y: r.Bottom - qh}, nil
	}
	return graphics.Offset{X: r.Left + qw, Y: r.Top + qh}, nil
}

// Orders lists each container's children in scene order.
func (s *Scene) Orders() []Order {
	out := make([]Order, 0, len(s.names))
	for _, name := range s.names {
		o := Order{Name: name}
		for _, c := range s.containers[name].Children() {
			o.Items = append(o.Items, fmt.Sprint(c))
		}
		out = append(out, o)
	}
	return out
}

// Render rasterizes the current frame, overlay included.
func (s *Scene) Render(background graphics.Color) (*image.NRGBA, error) {
	return snapshot.NewRasterizer().Render(s.Window.Visual(), s.Window.Size(), background)
}
