package node

import (
	"encoding/json"
	"fmt"
	"io"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/parser"
)

type designDocument struct {
	Nodes []designNode `json:"nodes"`
	Edges []Edge       `json:"edges"`
}

type designNode struct {
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	Position Position        `json:"position"`
	Payload  json.RawMessage `json:"payload"`
}

// ExportDesign writes the store's full state as a JSON design document.
// Evidence preview handles are session-local and are not serialized;
// logical evidence paths are.
func (s *Store) ExportDesign(w io.Writer) error {
	doc := designDocument{
		Nodes: make([]designNode, 0, len(s.order)),
		Edges: make([]Edge, len(s.edges)),
	}
	copy(doc.Edges, s.edges)

	for _, id := range s.order {
		n := s.nodes[id]
		raw, err := json.Marshal(n.Payload)
		if err != nil {
			return sdk.NewSerializationError("node.ExportDesign",
				fmt.Errorf("encode payload of %s: %w", n.ID, err))
		}
		doc.Nodes = append(doc.Nodes, designNode{
			ID:       n.ID,
			Kind:     n.Kind,
			Position: n.Position,
			Payload:  raw,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return sdk.NewSerializationError("node.ExportDesign", err)
	}
	return nil
}

// ImportDesign replaces the store's state with the design document read
// from r. The document is decoded and validated in full before any live
// state is touched: a malformed document leaves the store exactly as it
// was. On success the previous contents, including evidence previews,
// are released.
func (s *Store) ImportDesign(r io.Reader) error {
	const op = "node.ImportDesign"

	var doc designDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return sdk.NewSerializationError(op, fmt.Errorf("%w: %v", sdk.ErrInvalidDesign, err))
	}

	nodes := make(map[string]*Node, len(doc.Nodes))
	order := make([]string, 0, len(doc.Nodes))
	maxSeq := 0
	for i, dn := range doc.Nodes {
		if dn.ID == "" {
			return sdk.NewSerializationError(op,
				fmt.Errorf("%w: node %d has no id", sdk.ErrInvalidDesign, i))
		}
		if _, dup := nodes[dn.ID]; dup {
			return sdk.NewSerializationError(op,
				fmt.Errorf("%w: duplicate node id %q", sdk.ErrInvalidDesign, dn.ID))
		}
		if !dn.Kind.IsValid() {
			return sdk.NewSerializationError(op,
				fmt.Errorf("%w: node %q has invalid kind %q", sdk.ErrInvalidDesign, dn.ID, dn.Kind))
		}

		payload, err := decodePayload(dn.Kind, dn.Payload)
		if err != nil {
			return sdk.NewSerializationError(op,
				fmt.Errorf("%w: node %q: %v", sdk.ErrInvalidDesign, dn.ID, err))
		}

		nodes[dn.ID] = &Node{
			ID:       dn.ID,
			Kind:     dn.Kind,
			Position: dn.Position,
			Seq:      i,
			Payload:  payload,
		}
		order = append(order, dn.ID)
		maxSeq = i + 1
	}

	for i, e := range doc.Edges {
		if _, ok := nodes[e.Source]; !ok {
			return sdk.NewSerializationError(op,
				fmt.Errorf("%w: edge %d references unknown source %q", sdk.ErrInvalidDesign, i, e.Source))
		}
		if _, ok := nodes[e.Target]; !ok {
			return sdk.NewSerializationError(op,
				fmt.Errorf("%w: edge %d references unknown target %q", sdk.ErrInvalidDesign, i, e.Target))
		}
	}

	// Validation passed; swap in the imported state.
	for _, n := range s.nodes {
		s.releaseRefs(n)
	}
	s.nodes = nodes
	s.order = order
	s.edges = make([]Edge, len(doc.Edges))
	copy(s.edges, doc.Edges)
	s.nextSeq = maxSeq

	s.logger.Info("imported design", "nodes", len(order), "edges", len(s.edges))
	return nil
}

// decodePayload unmarshals a raw payload for the given kind. A missing
// payload yields the kind's default, so hand-edited documents that omit
// it still import.
func decodePayload(kind Kind, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultPayload(kind), nil
	}

	switch kind {
	case KindSectionHeader:
		return decodeAs[SectionHeaderPayload](raw)
	case KindTextField:
		return decodeAs[TextFieldPayload](raw)
	case KindTestCaseTable:
		return decodeAs[TestCaseTablePayload](raw)
	case KindCodeSnippet:
		return decodeAs[CodeSnippetPayload](raw)
	case KindFileAttachmentSet:
		return decodeAs[FileAttachmentSetPayload](raw)
	case KindStepList:
		return decodeAs[StepListPayload](raw)
	case KindLinkedIssueList:
		return decodeAs[LinkedIssueListPayload](raw)
	case KindAIGenerator:
		return decodeAs[AIGeneratorPayload](raw)
	default:
		return nil, fmt.Errorf("no payload decoder for kind %s", kind)
	}
}

func decodeAs[T Payload](raw json.RawMessage) (Payload, error) {
	p, err := parser.ParseJSON[T](raw)
	if err != nil {
		return nil, err
	}
	return *p, nil
}
