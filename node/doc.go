// Package node defines the data model for the report canvas: the closed
// set of component kinds, the per-kind payload records, and the Store that
// owns the live node collection.
//
// A Node is a mutable, positioned, typed unit of user-entered state. Its
// kind is fixed at creation; its payload is replaced — never mutated in
// place — through the Store's single dispatch entry point, so views that
// rely on reference-equality change detection always observe fresh payload
// values.
//
// Payloads form a tagged union: each component kind carries its own strict
// record type implementing Payload, and consumers switch on the concrete
// type rather than probing a loose field bag. No validation is performed at
// this layer; empty strings and empty collections are legal values meaning
// "not yet filled in".
//
// The Store is owned by a single editing session and is driven from that
// session's event goroutine. The compiler side of the system never touches
// live nodes: it works from the read-only copies returned by Snapshot.
package node
