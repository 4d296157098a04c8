// Package graph turns a frozen canvas snapshot into the linear document
// order that report compilation consumes.
//
// Ordering is positional only: nodes are read top to bottom by canvas Y,
// with nodes whose vertical distance falls inside a small band treated as
// the same visual row and ordered left to right by X. Creation order
// breaks exact ties, so linearization is deterministic for any snapshot.
// Edges never influence document order; they only bind generator nodes
// to their target tables.
package graph
