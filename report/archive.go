package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"sort"
	"time"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
)

// renderArchive builds the ZIP bundle in memory: report.md plus an
// evidence/ directory holding every referenced file. Every path the
// document links resolves inside the archive, so it travels as a single
// self-contained artifact. Any resolution failure aborts before a byte
// is produced.
func renderArchive(components []graph.Component, registry *evidence.Registry, now time.Time) ([]byte, error) {
	const op = "report.Archive"

	refs := collectRefs(components)
	var resolved map[string][]byte
	if len(refs) > 0 {
		if registry == nil {
			return nil, sdk.NewRenderingError(op, fmt.Errorf("no registry to resolve %d evidence files", len(refs)))
		}
		var err error
		resolved, err = registry.ResolveAll(refs)
		if err != nil {
			return nil, sdk.NewRenderingError(op, err)
		}
	}

	markdown := renderMarkdown(components, now)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("report.md")
	if err != nil {
		return nil, sdk.NewRenderingError(op, err)
	}
	if _, err := w.Write([]byte(markdown)); err != nil {
		return nil, sdk.NewRenderingError(op, err)
	}

	paths := make([]string, 0, len(resolved))
	for p := range resolved {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, logicalPath := range paths {
		w, err := zw.Create("evidence/" + path.Base(logicalPath))
		if err != nil {
			return nil, sdk.NewRenderingError(op, err)
		}
		if _, err := w.Write(resolved[logicalPath]); err != nil {
			return nil, sdk.NewRenderingError(op, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, sdk.NewRenderingError(op, err)
	}
	return buf.Bytes(), nil
}

// collectRefs gathers every evidence reference in document order,
// deduplicated by logical path.
func collectRefs(components []graph.Component) []evidence.FileRef {
	var refs []evidence.FileRef
	seen := make(map[string]bool)
	for _, c := range components {
		for _, ref := range c.Payload.FileRefs() {
			if seen[ref.LogicalPath] {
				continue
			}
			seen[ref.LogicalPath] = true
			refs = append(refs, ref)
		}
	}
	return refs
}

// Manifest lists the logical evidence paths a snapshot's document would
// reference, sorted. Useful for pre-flight checks before exporting.
func Manifest(snap graph.Snapshot) []string {
	refs := collectRefs(graph.Linearize(snap))
	paths := make([]string, len(refs))
	for i, ref := range refs {
		paths[i] = ref.LogicalPath
	}
	sort.Strings(paths)
	return paths
}
