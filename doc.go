// Package sdk provides the core engine for the ReportForge security
// report builder.
//
// ReportForge turns a canvas of typed, independently edited nodes into a
// structured security-assessment report. The canvas itself (drag and drop,
// layout, styling) is an external collaborator; this module owns everything
// between the editor's node collection and the finished artifact:
//
//   - Node data model: a closed set of component kinds, each with its own
//     strict payload record, mutated through a single dispatch entry point
//     (package node)
//   - Evidence registry: stable, collision-free logical paths for binary
//     attachments referenced across every output format (package evidence)
//   - Graph linearizer: a deterministic, position-based total order over
//     the node collection (package graph)
//   - Report compiler: one renderer per component kind per output target,
//     producing a preview tree, Markdown, a print-ready HTML document, and
//     a self-contained ZIP archive (package report)
//   - Test-plan planner: an LLM-backed generator that appends structured
//     test-case rows to a connected table node (package planner)
//
// # Pipeline
//
// The editor owns a mutable node collection; the engine only ever reads a
// snapshot of it. A typical compile run:
//
//	store := node.NewStore(node.WithRegistry(reg))
//	// ... user edits flow through store.Dispatch ...
//
//	nodes, edges := store.Snapshot()
//	components := graph.Linearize(graph.Snapshot{Nodes: nodes, Edges: edges})
//
//	compiler := report.New(report.WithRegistry(reg))
//	md, err := compiler.Markdown(components)
//
// Components are immutable projections: editing a node after linearization
// never changes an already-produced component. Users re-compile to pick up
// new edits, which keeps the formal report under deterministic control
// relative to in-progress editing.
//
// # Error handling
//
// Nothing in this module is fatal at the process level. The worst outcome
// of any failure is "the requested export did not happen"; the editable
// node collection is never corrupted. Errors are wrapped in BuilderError
// with an operation name and kind, and support errors.Is and errors.As.
package sdk
