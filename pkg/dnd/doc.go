// Package dnd adds drag and drop to a widget tree.
//
// Two capabilities wrap ordinary widgets. A [Draggable] wraps any node and
// lets a pointer press it and drag it away; a [Droppable] wraps an ordered
// container and accepts dragged objects whose tag it lists. A [Controller]
// runs the press, move and release of one drag session: it captures a
// snapshot of the dragged widget, floats a [Preview] of it in the overlay
// once the pointer has travelled past DragDistance, and stamps the pointer's
// envelope with the dragged object so containers can recognize it.
//
// While a drag is over an accepting container, the container keeps a
// [Placeholder] in its child order where the object would land. The
// placeholder occupies a real slot; the index arithmetic accounts for it and
// the container's [Geometry] never sees it as a sibling. On release the
// container computes the final index and hands it to OnRelease, which
// decides what a drop means for that container.
//
// Typical setup:
//
//	ctrl := dnd.NewController(window, nil)
//	list := dnd.NewDroppable(widget.NewBox(true), dnd.BoxGeometry{Vertical: true}, "card")
//	list.OnRelease = dnd.InsertOnRelease(list)
//	card := dnd.NewDraggable(widget.NewLabel("todo"), "card", ctrl)
//	card.OnInitiate = dnd.DetachOnInitiate
//	list.Append(card)
//
// All pointer delivery is expected on a single goroutine.
package dnd
