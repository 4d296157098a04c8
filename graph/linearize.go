package graph

import (
	"fmt"
	"sort"
	"strings"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/node"
)

// TieBandEpsilon is the vertical distance, in canvas units, within which
// two nodes count as the same visual row and are ordered by X instead
// of Y.
const TieBandEpsilon = 50.0

// Snapshot is a frozen copy of the canvas taken at one instant. Later
// store mutation never changes it, so every read of one snapshot
// linearizes identically.
type Snapshot struct {
	Nodes []node.Node
	Edges []node.Edge
}

// Capture takes a snapshot of the store's current state.
func Capture(s *node.Store) Snapshot {
	nodes, edges := s.Snapshot()
	return Snapshot{Nodes: nodes, Edges: edges}
}

// Component is one renderable element of the linearized document.
type Component struct {
	NodeID  string
	Kind    node.Kind
	Payload node.Payload
}

// Linearize orders the snapshot's nodes into document order and drops
// editor-only generator nodes, which never render.
func Linearize(snap Snapshot) []Component {
	ordered := make([]node.Node, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.Kind == node.KindAIGenerator {
			continue
		}
		ordered = append(ordered, n)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		return a.Seq < b.Seq
	})

	// Cluster the y-sorted nodes into visual rows: a node belongs to the
	// current row while its vertical offset from the row's topmost node
	// stays within the band. Rows read left to right, so each row is
	// reordered by x with insertion order breaking exact overlaps. Row
	// membership is anchored to the topmost node, which keeps the order
	// total: a node more than the band below another can never share its
	// row, so it can never be pulled above it.
	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && ordered[end].Position.Y-ordered[start].Position.Y <= TieBandEpsilon {
			end++
		}
		row := ordered[start:end]
		sort.SliceStable(row, func(i, j int) bool {
			if row[i].Position.X != row[j].Position.X {
				return row[i].Position.X < row[j].Position.X
			}
			return row[i].Seq < row[j].Seq
		})
		start = end
	}

	components := make([]Component, 0, len(ordered))
	for _, n := range ordered {
		components = append(components, Component{
			NodeID:  n.ID,
			Kind:    n.Kind,
			Payload: n.Payload,
		})
	}
	return components
}

// FindTargetTable resolves the test-case table a generator node feeds.
// The generator's first outgoing edge whose target is a table wins; a
// generator with no such edge has nowhere to put rows and resolution
// fails with sdk.ErrNoTargetTable.
func FindTargetTable(snap Snapshot, generatorID string) (node.Node, error) {
	byID := make(map[string]node.Node, len(snap.Nodes))
	for _, n := range snap.Nodes {
		byID[n.ID] = n
	}

	for _, e := range snap.Edges {
		if e.Source != generatorID {
			continue
		}
		target, ok := byID[e.Target]
		if !ok {
			continue
		}
		if target.Kind == node.KindTestCaseTable {
			return target, nil
		}
	}
	return node.Node{}, fmt.Errorf("%w: generator %s", sdk.ErrNoTargetTable, generatorID)
}

// ProjectName returns the trimmed value of the first project-name field
// in document order, or empty when no component sets one.
func ProjectName(components []Component) string {
	for _, c := range components {
		field, ok := c.Payload.(node.TextFieldPayload)
		if !ok || field.Role != node.RoleProjectName {
			continue
		}
		if v := strings.TrimSpace(field.Value); v != "" {
			return v
		}
	}
	return ""
}
