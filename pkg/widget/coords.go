package widget

import "github.com/go-drift/dnd/pkg/graphics"

// ancestors returns n's ancestors from the root down to n's parent.
func ancestors(n Node) []Node {
	var chain []Node
	for a := n.Parent(); a != nil; a = a.Parent() {
		chain = append(chain, a)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// ParentPoint maps a window position into the space n's bounds live in.
func ParentPoint(n Node, window graphics.Offset) graphics.Offset {
	p := window
	for _, a := range ancestors(n) {
		p = a.FromParent(p)
	}
	return p
}

// LocalPoint maps a window position into n's child space.
func LocalPoint(n Node, window graphics.Offset) graphics.Offset {
	return n.FromParent(ParentPoint(n, window))
}

// WindowRect returns n's bounds in window coordinates.
func WindowRect(n Node) graphics.Rect {
	r := n.Bounds()
	origin := r.Origin()
	for a := n.Parent(); a != nil; a = a.Parent() {
		origin = a.ToParent(origin)
	}
	return graphics.RectFromOriginSize(origin, r.Size())
}

// Collides reports whether the window position lies inside n's own bounds.
func Collides(n Node, window graphics.Offset) bool {
	return n.Bounds().Contains(ParentPoint(n, window))
}

// CollideAncestors reports whether the window position lies inside n and
// inside every ancestor, each tested in its own parent space. A node that an
// ancestor has moved or clipped away from the position fails even when its
// own bounds would match.
func CollideAncestors(n Node, window graphics.Offset) bool {
	p := ParentPoint(n, window)
	if !n.Bounds().Contains(p) {
		return false
	}
	for a := n.Parent(); a != nil; a = a.Parent() {
		p = a.ToParent(p)
		if !a.Bounds().Contains(p) {
			return false
		}
	}
	return true
}
