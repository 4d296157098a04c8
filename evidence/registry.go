package evidence

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
)

// Common errors returned by registry operations.
var (
	// ErrOwnerRequired is returned when a file is registered without an
	// owner identifier.
	ErrOwnerRequired = errors.New("evidence: owner id is required")

	// ErrNameRequired is returned when a file is registered without an
	// original filename.
	ErrNameRequired = errors.New("evidence: original filename is required")

	// ErrUnresolvedPath is returned when a FileRef does not map to a
	// registered binary payload.
	ErrUnresolvedPath = errors.New("evidence: logical path has no registered payload")
)

// Registry assigns logical paths to binary attachments and retains their
// bytes and preview handles until released.
//
// A Registry belongs to a single editing session and, like the node store,
// is driven from that session's event goroutine; it performs no internal
// locking.
type Registry struct {
	entries map[string]*entry
	seq     map[string]int
	logger  *slog.Logger
}

type entry struct {
	data        []byte
	previewOpen bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registry diagnostics. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		seq:     make(map[string]int),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RowOwner derives the registry owner identifier for a test-case row.
// Row evidence paths read "./evidence/{rowID}-evidence-{n}.{ext}".
func RowOwner(rowID string) string {
	return rowID + "-evidence"
}

// StepOwner derives the registry owner identifier for a reproduction step
// within a step-list node.
func StepOwner(nodeID, stepID string) string {
	return nodeID + "-" + stepID
}

// Register stores the bytes of one attachment and returns a FileRef whose
// logical path is unique within the report.
//
// The path is derived deterministically from the owner identifier plus a
// per-owner sequence number, so re-registering the same inputs in the same
// order always yields the same paths, and two files with identical
// original names never collide (different owners get different prefixes,
// the same owner gets distinct sequence numbers).
func (r *Registry) Register(ownerID string, data []byte, originalName string) (FileRef, error) {
	if strings.TrimSpace(ownerID) == "" {
		return FileRef{}, ErrOwnerRequired
	}
	if strings.TrimSpace(originalName) == "" {
		return FileRef{}, ErrNameRequired
	}

	owner := sanitizeOwner(ownerID)
	r.seq[owner]++
	ext := strings.ToLower(path.Ext(originalName))
	logicalPath := fmt.Sprintf("./evidence/%s-%d%s", owner, r.seq[owner], ext)

	r.entries[logicalPath] = &entry{
		data:        data,
		previewOpen: true,
	}

	ref := FileRef{
		DisplayName:   originalName,
		LogicalPath:   logicalPath,
		PreviewHandle: "preview:" + logicalPath,
	}
	r.logger.Debug("registered evidence file",
		"owner", ownerID,
		"path", logicalPath,
		"bytes", len(data))
	return ref, nil
}

// Release frees the preview handle and drops the retained bytes for the
// given reference. It must be called when the owning row, step, or node is
// removed, or when a file is replaced. Releasing an unknown or already
// released reference is a logged no-op.
func (r *Registry) Release(ref FileRef) {
	e, ok := r.entries[ref.LogicalPath]
	if !ok {
		r.logger.Debug("release of unknown evidence reference", "path", ref.LogicalPath)
		return
	}
	e.previewOpen = false
	delete(r.entries, ref.LogicalPath)
}

// Resolve returns the bytes registered for one reference.
func (r *Registry) Resolve(ref FileRef) ([]byte, error) {
	e, ok := r.entries[ref.LogicalPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedPath, ref.LogicalPath)
	}
	return e.data, nil
}

// ResolveAll maps every reference's logical path to its registered bytes.
// It is used by the archive renderer to assemble the evidence/ directory.
// If any reference cannot be resolved an error is returned and no partial
// mapping is produced.
func (r *Registry) ResolveAll(refs []FileRef) (map[string][]byte, error) {
	resolved := make(map[string][]byte, len(refs))
	for _, ref := range refs {
		data, err := r.Resolve(ref)
		if err != nil {
			return nil, err
		}
		resolved[ref.LogicalPath] = data
	}
	return resolved, nil
}

// OpenPreviews returns the number of live preview handles. Useful for
// verifying that owner removal released its resources.
func (r *Registry) OpenPreviews() int {
	n := 0
	for _, e := range r.entries {
		if e.previewOpen {
			n++
		}
	}
	return n
}

// sanitizeOwner strips every character outside [A-Za-z0-9-] from an owner
// identifier before it is embedded in a logical path.
func sanitizeOwner(ownerID string) string {
	var b strings.Builder
	b.Grow(len(ownerID))
	for _, c := range ownerID {
		switch {
		case c >= 'A' && c <= 'Z',
			c >= 'a' && c <= 'z',
			c >= '0' && c <= '9',
			c == '-':
			b.WriteRune(c)
		}
	}
	return b.String()
}
