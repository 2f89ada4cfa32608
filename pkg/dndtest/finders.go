package dndtest

import (
	"fmt"

	"github.com/go-drift/dnd/pkg/graphics"
	"github.com/go-drift/dnd/pkg/widget"
)

// Finder locates nodes in the tree.
type Finder interface {
	// Evaluate returns all matching nodes under root, depth-first pre-order.
	Evaluate(root widget.Node) []widget.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

type textFinder string

// ByText matches nodes whose String method returns text.
func ByText(text string) Finder { return textFinder(text) }

func (f textFinder) Evaluate(root widget.Node) []widget.Node {
	var out []widget.Node
	walk(root, func(n widget.Node) {
		if s, ok := n.(fmt.Stringer); ok && s.String() == string(f) {
			out = append(out, n)
		}
	})
	return out
}

func (f textFinder) Description() string { return fmt.Sprintf("text %q", string(f)) }

func walk(n widget.Node, visit func(widget.Node)) {
	visit(n)
	if c, ok := n.(widget.Container); ok {
		for _, child := range c.Children() {
			walk(child, visit)
		}
	}
}

// Find returns the first node matched by finder.
func (t *Tester) Find(finder Finder) (widget.Node, error) {
	nodes := finder.Evaluate(t.Root())
	if len(nodes) == 0 {
		return nil, fmt.Errorf("finder matched no nodes: %s", finder.Description())
	}
	return nodes[0], nil
}

// Center returns the window center of the first node matched by finder, or
// the window origin when nothing matches.
func (t *Tester) Center(finder Finder) graphics.Offset {
	n, err := t.Find(finder)
	if err != nil {
		return graphics.Offset{}
	}
	return widget.WindowRect(n).Center()
}

// Texts returns the String of each child of c, in order.
func Texts(c widget.Container) []string {
	out := make([]string, 0, len(c.Children()))
	for _, n := range c.Children() {
		out = append(out, fmt.Sprint(n))
	}
	return out
}
