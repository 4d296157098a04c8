package sdk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for common builder error conditions.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrNodeNotFound indicates the requested node does not exist in the store.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoTargetTable indicates an AI generator node has no outgoing edge
	// to a test-case table.
	ErrNoTargetTable = errors.New("no target table connected")

	// ErrCredentialMissing indicates the provider API key is not configured.
	ErrCredentialMissing = errors.New("credential missing")

	// ErrMalformedResponse indicates the AI provider returned something other
	// than the expected JSON array of test-case rows.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrCompileInProgress indicates a compilation run was requested while a
	// previous run is still rendering.
	ErrCompileInProgress = errors.New("compilation already in progress")

	// ErrInvalidDesign indicates an imported design document is corrupt or
	// structurally invalid. The in-memory state is left untouched.
	ErrInvalidDesign = errors.New("invalid design document")
)

// Error kinds categorize errors by their type.
const (
	// KindInput represents user-input incompleteness (an empty required
	// field blocking a dependent action).
	KindInput = "input"

	// KindExternal represents failures of external collaborators (the AI
	// provider call, a missing credential, a disconnected target node).
	KindExternal = "external"

	// KindSerialization represents design export/import failures.
	KindSerialization = "serialization"

	// KindRendering represents compile/export failures. No partial artifact
	// is ever produced alongside a rendering error.
	KindRendering = "rendering"

	// KindInternal represents internal engine errors.
	KindInternal = "internal"
)

// BuilderError is a structured error type that wraps underlying errors with
// additional context about the operation that failed and the category of
// error.
//
// BuilderError implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
//
// Example usage:
//
//	err := &BuilderError{
//		Op:   "Compiler.Archive",
//		Kind: KindRendering,
//		Err:  ErrCompileInProgress,
//	}
type BuilderError struct {
	// Op is the operation that failed (e.g., "Planner.Populate",
	// "Store.ImportDesign").
	Op string

	// Kind categorizes the error (e.g., KindExternal, KindRendering).
	Kind string

	// Err is the underlying error that caused this error.
	Err error

	// Context provides additional context about the error (optional).
	// This can include node IDs, logical paths, or other debugging
	// information.
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message
// that includes the operation, kind, and underlying error.
func (e *BuilderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("reportforge: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("reportforge: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("reportforge: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *BuilderError) Unwrap() error {
	return e.Err
}

// Is implements error matching for BuilderError, allowing comparison based
// on the underlying error or the BuilderError itself.
func (e *BuilderError) Is(target error) bool {
	if target == nil {
		return false
	}

	// Check if target is a BuilderError with matching Kind
	if t, ok := target.(*BuilderError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	// Delegate to underlying error
	return errors.Is(e.Err, target)
}

// WithContext returns a new BuilderError with the provided context added.
// This is useful for adding debugging information to errors.
func (e *BuilderError) WithContext(ctx map[string]any) *BuilderError {
	newErr := *e
	if newErr.Context == nil {
		newErr.Context = make(map[string]any)
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// NewInputError creates a new BuilderError with KindInput.
func NewInputError(op string, err error) *BuilderError {
	return &BuilderError{
		Op:   op,
		Kind: KindInput,
		Err:  err,
	}
}

// NewExternalError creates a new BuilderError with KindExternal.
func NewExternalError(op string, err error) *BuilderError {
	return &BuilderError{
		Op:   op,
		Kind: KindExternal,
		Err:  err,
	}
}

// NewSerializationError creates a new BuilderError with KindSerialization.
func NewSerializationError(op string, err error) *BuilderError {
	return &BuilderError{
		Op:   op,
		Kind: KindSerialization,
		Err:  err,
	}
}

// NewRenderingError creates a new BuilderError with KindRendering.
func NewRenderingError(op string, err error) *BuilderError {
	return &BuilderError{
		Op:   op,
		Kind: KindRendering,
		Err:  err,
	}
}

// NewInternalError creates a new BuilderError with KindInternal.
func NewInternalError(op string, err error) *BuilderError {
	return &BuilderError{
		Op:   op,
		Kind: KindInternal,
		Err:  err,
	}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements to ensure
// cleanup errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "design file", "archive writer"). If logger is nil, slog.Default() is
// used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("failed to close resource", "resource", name, "error", err)
	}
}
