// Package planner turns a generator node's maker-checker context into
// test-case rows by calling a language model and merging the parsed
// result into the generator's target table.
//
// The model is an untrusted data source: its response must be a strict
// JSON array of row objects, anything else is rejected without touching
// existing rows, and generated rows never carry evidence references.
package planner
