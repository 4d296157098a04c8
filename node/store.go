package node

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/evidence"
)

// Store owns the live node and edge collections for one editing session.
// All mutation flows through it: nodes are created with kind defaults,
// edited through Dispatch, and removed with their evidence released.
//
// A Store is driven from the session's event goroutine; all synchronous
// mutation is single-threaded by construction and the store performs no
// internal locking.
type Store struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	nextSeq  int
	registry *evidence.Registry
	logger   *slog.Logger
	newID    func(Kind) string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithRegistry attaches the evidence registry so that node removal
// releases the preview handles of any contained file references.
func WithRegistry(registry *evidence.Registry) StoreOption {
	return func(s *Store) {
		s.registry = registry
	}
}

// WithLogger sets the logger used for store diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides node ID generation. Intended for tests that
// need deterministic identifiers.
func WithIDGenerator(gen func(Kind) string) StoreOption {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nodes:  make(map[string]*Node),
		logger: slog.Default(),
		newID: func(kind Kind) string {
			return fmt.Sprintf("%s-%s", kind, uuid.New().String())
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a node of the given kind at the given position with its
// kind-appropriate default payload, and returns a copy of it.
func (s *Store) Create(kind Kind, pos Position) (Node, error) {
	if !kind.IsValid() {
		return Node{}, fmt.Errorf("invalid node kind: %s", kind)
	}

	n := &Node{
		ID:       s.newID(kind),
		Kind:     kind,
		Position: pos,
		Seq:      s.nextSeq,
		Payload:  DefaultPayload(kind),
	}
	s.nextSeq++
	s.nodes[n.ID] = n
	s.order = append(s.order, n.ID)

	s.logger.Debug("created node", "id", n.ID, "kind", kind)
	return n.Clone(), nil
}

// Dispatch replaces exactly one field of a node's payload. The payload is
// replaced as a whole value, never mutated in place, so previously handed
// out copies are unaffected.
//
// Field names follow the payload JSON tags: "title", "level", "role", "value",
// "reference_url", "rows", "content", "language", "files", "steps",
// "change_description", "issues", "scope", "maker_role", "checker_role",
// "action", "intensity".
//
// Dispatching to an unknown node is a logged no-op: stale callbacks from
// asynchronously created or already removed nodes are tolerated, not
// fatal. Unknown fields and mismatched value types are likewise logged
// and dropped; no validation beyond that is performed.
func (s *Store) Dispatch(nodeID, field string, value any) {
	n, ok := s.nodes[nodeID]
	if !ok {
		s.logger.Warn("dispatch to unknown node", "id", nodeID, "field", field)
		return
	}

	updated, err := updatedPayload(n.Payload, field, value)
	if err != nil {
		s.logger.Warn("dispatch dropped", "id", nodeID, "field", field, "error", err)
		return
	}
	n.Payload = updated
}

// Get returns a copy of the node with the given ID.
func (s *Store) Get(nodeID string) (Node, bool) {
	n, ok := s.nodes[nodeID]
	if !ok {
		return Node{}, false
	}
	return n.Clone(), true
}

// Len returns the number of live nodes.
func (s *Store) Len() int {
	return len(s.nodes)
}

// Remove deletes a node, releases the preview handles of every evidence
// reference in its payload, and drops any edges touching it.
func (s *Store) Remove(nodeID string) error {
	n, ok := s.nodes[nodeID]
	if !ok {
		return fmt.Errorf("%w: %s", sdk.ErrNodeNotFound, nodeID)
	}

	s.releaseRefs(n)
	delete(s.nodes, nodeID)
	for i, id := range s.order {
		if id == nodeID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.Source != nodeID && e.Target != nodeID {
			kept = append(kept, e)
		}
	}
	s.edges = kept

	s.logger.Debug("removed node", "id", nodeID)
	return nil
}

// Clear removes every node and edge and releases all evidence previews.
// The cleared store is ready for reuse.
func (s *Store) Clear() {
	for _, n := range s.nodes {
		s.releaseRefs(n)
	}
	s.nodes = make(map[string]*Node)
	s.order = nil
	s.edges = nil
	s.logger.Debug("cleared store")
}

// Connect draws an edge from one node to another.
func (s *Store) Connect(sourceID, targetID string) (Edge, error) {
	if _, ok := s.nodes[sourceID]; !ok {
		return Edge{}, fmt.Errorf("%w: %s", sdk.ErrNodeNotFound, sourceID)
	}
	if _, ok := s.nodes[targetID]; !ok {
		return Edge{}, fmt.Errorf("%w: %s", sdk.ErrNodeNotFound, targetID)
	}

	e := Edge{
		ID:     uuid.New().String(),
		Source: sourceID,
		Target: targetID,
	}
	s.edges = append(s.edges, e)
	return e, nil
}

// Disconnect removes the edge with the given ID.
func (s *Store) Disconnect(edgeID string) error {
	for i, e := range s.edges {
		if e.ID == edgeID {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("edge not found: %s", edgeID)
}

// Snapshot returns deep copies of the live nodes (in insertion order) and
// edges. The copies are frozen: later store mutation never changes them,
// which is what gives a compilation run its deterministic input.
func (s *Store) Snapshot() ([]Node, []Edge) {
	nodes := make([]Node, 0, len(s.order))
	for _, id := range s.order {
		nodes = append(nodes, s.nodes[id].Clone())
	}
	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)
	return nodes, edges
}

func (s *Store) releaseRefs(n *Node) {
	if s.registry == nil || n.Payload == nil {
		return
	}
	for _, ref := range n.Payload.FileRefs() {
		s.registry.Release(ref)
	}
}

// updatedPayload returns a copy of p with exactly one field replaced.
func updatedPayload(p Payload, field string, value any) (Payload, error) {
	switch payload := p.(type) {
	case SectionHeaderPayload:
		switch field {
		case "title":
			v, ok := value.(string)
			if !ok {
				return nil, typeError(field, value)
			}
			payload.Title = v
		case "level":
			v, ok := intValue(value)
			if !ok {
				return nil, typeError(field, value)
			}
			payload.Level = v
		default:
			return nil, fieldError(p, field)
		}
		return payload, nil

	case TextFieldPayload:
		switch field {
		case "role":
			v, ok := value.(string)
			if !ok {
				return nil, typeError(field, value)
			}
			role := FieldRole(v)
			if !role.IsValid() {
				return nil, fmt.Errorf("invalid field role: %q", v)
			}
			payload.Role = role
		case "value":
			v, ok := value.(string)
			if !ok {
				return nil, typeError(field, value)
			}
			payload.Value = v
		case "reference_url":
			v, ok := value.(string)
			if !ok {
				return nil, typeError(field, value)
			}
			payload.ReferenceURL = v
		default:
			return nil, fieldError(p, field)
		}
		return payload, nil

	case TestCaseTablePayload:
		if field != "rows" {
			return nil, fieldError(p, field)
		}
		v, ok := value.([]TestCaseRow)
		if !ok {
			return nil, typeError(field, value)
		}
		return TestCaseTablePayload{Rows: v}.Clone(), nil

	case CodeSnippetPayload:
		v, ok := value.(string)
		if !ok {
			return nil, typeError(field, value)
		}
		switch field {
		case "title":
			payload.Title = v
		case "language":
			payload.Language = v
		case "content":
			payload.Content = v
		default:
			return nil, fieldError(p, field)
		}
		return payload, nil

	case FileAttachmentSetPayload:
		if field != "files" {
			return nil, fieldError(p, field)
		}
		v, ok := value.([]evidence.FileRef)
		if !ok {
			return nil, typeError(field, value)
		}
		return FileAttachmentSetPayload{Files: v}.Clone(), nil

	case StepListPayload:
		if field != "steps" {
			return nil, fieldError(p, field)
		}
		v, ok := value.([]Step)
		if !ok {
			return nil, typeError(field, value)
		}
		return StepListPayload{Steps: v}.Clone(), nil

	case LinkedIssueListPayload:
		switch field {
		case "change_description":
			v, ok := value.(string)
			if !ok {
				return nil, typeError(field, value)
			}
			payload.ChangeDescription = v
			return payload.Clone(), nil
		case "issues":
			v, ok := value.([]Issue)
			if !ok {
				return nil, typeError(field, value)
			}
			payload.Issues = v
			return payload.Clone(), nil
		default:
			return nil, fieldError(p, field)
		}

	case AIGeneratorPayload:
		v, ok := value.(string)
		if !ok {
			return nil, typeError(field, value)
		}
		switch field {
		case "scope":
			payload.Scope = v
		case "maker_role":
			payload.MakerRole = v
		case "checker_role":
			payload.CheckerRole = v
		case "action":
			payload.Action = v
		case "intensity":
			payload.Intensity = v
		default:
			return nil, fieldError(p, field)
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("unsupported payload type %T", p)
	}
}

func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func typeError(field string, value any) error {
	return fmt.Errorf("field %q cannot hold %T", field, value)
}

func fieldError(p Payload, field string) error {
	return fmt.Errorf("payload %s has no field %q", p.Kind(), field)
}
