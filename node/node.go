package node

// Position is a node's 2D canvas coordinate. It is used only for editor
// layout and for the linearizer's reading-order sort; it carries no other
// meaning.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a mutable, positioned, typed unit of user-entered state on the
// canvas. The editor owns the collection; the compiler only ever reads
// snapshot copies.
type Node struct {
	// ID uniquely identifies the node for its whole lifetime.
	ID string `json:"id"`

	// Kind is fixed at creation.
	Kind Kind `json:"kind"`

	// Position is the canvas coordinate.
	Position Position `json:"position"`

	// Seq is the insertion order into the live collection, assigned by the
	// Store. It is the final tie-break of the linearizer's ordering.
	Seq int `json:"-"`

	// Payload is the kind-specific record. Replaced wholesale on every
	// dispatch, never mutated in place.
	Payload Payload `json:"-"`
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	if n.Payload != nil {
		out.Payload = n.Payload.Clone()
	}
	return out
}

// Edge is a user-drawn connection between two nodes. Edges do not affect
// document order; the only functional edge is AIGenerator → TestCaseTable,
// which designates the generator's target table.
type Edge struct {
	// ID uniquely identifies the edge.
	ID string `json:"id"`

	// Source is the origin node ID.
	Source string `json:"source"`

	// Target is the destination node ID.
	Target string `json:"target"`
}
