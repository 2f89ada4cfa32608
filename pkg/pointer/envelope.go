package pointer

import "github.com/google/uuid"

// CapabilityKind names the capability that wrote a claim.
type CapabilityKind uint8

const (
	// KindDraggable is the draggable object capability.
	KindDraggable CapabilityKind = iota + 1
	// KindDroppable is the drop container capability.
	KindDroppable
)

func (k CapabilityKind) String() string {
	switch k {
	case KindDraggable:
		return "draggable"
	case KindDroppable:
		return "droppable"
	default:
		return "unknown"
	}
}

// ClaimKey identifies one capability instance observing a pointer.
type ClaimKey struct {
	Kind   CapabilityKind
	Object uuid.UUID
}

// Envelope is the per-pointer record shared by every widget that sees the
// pointer. Each ClaimKey is written only by the capability it names; the
// drag fields are written by the controller once dragging begins.
type Envelope struct {
	claims map[ClaimKey]bool

	// DragTag is the class tag of the object being dragged, empty until the
	// drag threshold is crossed.
	DragTag string
	// Dragged is the object being dragged, nil until the threshold is
	// crossed.
	Dragged any
}

func newEnvelope() *Envelope {
	return &Envelope{claims: make(map[ClaimKey]bool)}
}

// Decision returns the recorded claim for key and whether one exists.
func (e *Envelope) Decision(key ClaimKey) (claimed, ok bool) {
	claimed, ok = e.claims[key]
	return claimed, ok
}

// Claimed reports whether key recorded a positive claim.
func (e *Envelope) Claimed(key ClaimKey) bool {
	return e.claims[key]
}

// Record stores the claim decision for key.
func (e *Envelope) Record(key ClaimKey, claimed bool) {
	e.claims[key] = claimed
}

// Forget removes key's decision so the capability may decide afresh.
func (e *Envelope) Forget(key ClaimKey) {
	delete(e.claims, key)
}

// SetDrag stamps the drag tag and dragged object.
func (e *Envelope) SetDrag(tag string, dragged any) {
	e.DragTag = tag
	e.Dragged = dragged
}

// ClearDrag removes the drag stamp.
func (e *Envelope) ClearDrag() {
	e.DragTag = ""
	e.Dragged = nil
}

// Dragging reports whether a drag has been stamped on this pointer.
func (e *Envelope) Dragging() bool {
	return e.Dragged != nil
}
