// Package report compiles a linearized component sequence into the four
// output targets: an in-memory preview tree, a Markdown document, a
// print-ready HTML document, and a self-contained ZIP archive.
//
// Each target applies one render rule per component kind; a kind without
// a rule for a target is skipped. Every compile run is atomic: it either
// produces a complete artifact or an error, never a partial file. A
// compiler refuses overlapping runs, and compiling the same snapshot
// twice yields byte-identical Markdown.
package report
