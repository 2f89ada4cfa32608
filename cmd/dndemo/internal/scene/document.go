// Package scene describes demo windows in YAML: ordered containers of
// labels, some of them draggable, plus a script of drags to replay.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/dnd/pkg/graphics"
)

// Document is a scene file.
//
//	window: {width: 400, height: 300}
//	vertical: false
//	containers:
//	  - name: left
//	    accepts: [label]
//	    items:
//	      - {text: A, tag: label, color: "#2e7d32"}
//	gestures:
//	  - {drag: A, to: {item: B, side: before}}
type Document struct {
	Window     WindowSpec      `yaml:"window"`
	Vertical   bool            `yaml:"vertical"`
	Containers []ContainerSpec `yaml:"containers"`
	Gestures   []Gesture       `yaml:"gestures"`
}

// WindowSpec is the window size in logical pixels.
type WindowSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ContainerSpec describes one droppable container.
type ContainerSpec struct {
	Name string `yaml:"name"`
	// Kind is "box" (the default) or "grid".
	Kind     string   `yaml:"kind"`
	Vertical *bool    `yaml:"vertical"`
	Cols     int      `yaml:"cols"`
	Spacing  float64  `yaml:"spacing"`
	Padding  float64  `yaml:"padding"`
	Accepts  []string `yaml:"accepts"`
	// AppendOnly with AppendAt "start" or "end" skips the index search.
	AppendOnly bool       `yaml:"append_only"`
	AppendAt   string     `yaml:"append_at"`
	Items      []ItemSpec `yaml:"items"`
}

// ItemSpec is a label. A non-empty Tag makes it draggable.
type ItemSpec struct {
	Text  string `yaml:"text"`
	Tag   string `yaml:"tag"`
	Color string `yaml:"color"`
}

// Gesture drags the item with text Drag to To, over Steps moves.
type Gesture struct {
	Drag  string `yaml:"drag"`
	To    Target `yaml:"to"`
	Steps int    `yaml:"steps"`
}

// Target is a release point: either beside an item or an absolute window
// position.
type Target struct {
	Item string `yaml:"item"`
	// Side is "before" or "after" the item.
	Side string  `yaml:"side"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Load reads and validates a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scene. Unknown keys are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks names, kinds and references.
func (d *Document) Validate() error {
	var errs []error
	names := make(map[string]bool)
	texts := make(map[string]bool)
	for i, c := range d.Containers {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("containers[%d]: name is required", i))
		} else if names[c.Name] {
			errs = append(errs, fmt.Errorf("containers[%d]: duplicate name %q", i, c.Name))
		}
		names[c.Name] = true

		switch c.Kind {
		case "", "box":
		case "grid":
			if c.Cols < 1 {
				errs = append(errs, fmt.Errorf("container %q: grid needs cols >= 1", c.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("container %q: unknown kind %q", c.Name, c.Kind))
		}
		switch c.AppendAt {
		case "", "start", "end":
		default:
			errs = append(errs, fmt.Errorf("container %q: append_at must be start or end", c.Name))
		}

		for _, it := range c.Items {
			if texts[it.Text] {
				errs = append(errs, fmt.Errorf("container %q: duplicate item %q", c.Name, it.Text))
			}
			texts[it.Text] = true
			if _, err := ParseColor(it.Color); err != nil {
				errs = append(errs, fmt.Errorf("item %q: %w", it.Text, err))
			}
		}
	}

	for i, g := range d.Gestures {
		if !texts[g.Drag] {
			errs = append(errs, fmt.Errorf("gestures[%d]: unknown item %q", i, g.Drag))
		}
		if g.To.Item != "" && !texts[g.To.Item] {
			errs = append(errs, fmt.Errorf("gestures[%d]: unknown target item %q", i, g.To.Item))
		}
		switch g.To.Side {
		case "", "before", "after":
		default:
			errs = append(errs, fmt.Errorf("gestures[%d]: side must be before or after", i))
		}
	}
	return errors.Join(errs...)
}

// ParseColor parses "#rrggbb" or "#aarrggbb". The empty string is
// transparent.
func ParseColor(s string) (graphics.Color, error) {
	if s == "" {
		return graphics.ColorTransparent, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return 0, fmt.Errorf("color %q must be #rrggbb or #aarrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v |= 0xFF000000
	}
	return graphics.Color(v), nil
}
