package sdk

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestBuilderError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *BuilderError
		want string
	}{
		{
			name: "with underlying error",
			err: &BuilderError{
				Op:   "Compiler.Markdown",
				Kind: KindRendering,
				Err:  errors.New("boom"),
			},
			want: "reportforge: Compiler.Markdown (rendering): boom",
		},
		{
			name: "without underlying error",
			err: &BuilderError{
				Op:   "Store.Dispatch",
				Kind: KindInput,
			},
			want: "reportforge: Store.Dispatch: input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("BuilderError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuilderError_ErrorWithContext(t *testing.T) {
	err := &BuilderError{
		Op:   "Planner.Populate",
		Kind: KindExternal,
		Err:  ErrNoTargetTable,
		Context: map[string]any{
			"generator_id": "ai-1",
		},
	}

	got := err.Error()
	if !strings.Contains(got, "Planner.Populate") {
		t.Errorf("error message missing op: %q", got)
	}
	if !strings.Contains(got, "generator_id") {
		t.Errorf("error message missing context: %q", got)
	}
}

func TestBuilderError_Unwrap(t *testing.T) {
	underlying := ErrCredentialMissing
	err := NewExternalError("Planner.Populate", underlying)

	if !errors.Is(err, ErrCredentialMissing) {
		t.Error("errors.Is should match the underlying sentinel")
	}
	if errors.Is(err, ErrNodeNotFound) {
		t.Error("errors.Is should not match an unrelated sentinel")
	}
}

func TestBuilderError_As(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewRenderingError("Compiler.Archive", ErrCompileInProgress))

	var be *BuilderError
	if !errors.As(err, &be) {
		t.Fatal("errors.As should find the BuilderError")
	}
	if be.Op != "Compiler.Archive" {
		t.Errorf("Op = %q, want %q", be.Op, "Compiler.Archive")
	}
	if be.Kind != KindRendering {
		t.Errorf("Kind = %q, want %q", be.Kind, KindRendering)
	}
}

func TestBuilderError_IsKindMatching(t *testing.T) {
	err := NewSerializationError("Store.ImportDesign", ErrInvalidDesign)

	// Kind-only target matches any op with the same kind.
	if !errors.Is(err, &BuilderError{Kind: KindSerialization}) {
		t.Error("kind-only target should match")
	}
	if errors.Is(err, &BuilderError{Kind: KindRendering}) {
		t.Error("different kind should not match")
	}
	if !errors.Is(err, &BuilderError{Op: "Store.ImportDesign", Kind: KindSerialization}) {
		t.Error("op+kind target should match")
	}
	if errors.Is(err, &BuilderError{Op: "Store.ExportDesign", Kind: KindSerialization}) {
		t.Error("mismatched op should not match")
	}
}

func TestBuilderError_WithContext(t *testing.T) {
	base := NewExternalError("Planner.Populate", ErrMalformedResponse)
	augmented := base.WithContext(map[string]any{"target": "table-1"})

	if base.Context != nil {
		t.Error("WithContext must not mutate the original error")
	}
	if augmented.Context["target"] != "table-1" {
		t.Error("augmented error missing context value")
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *BuilderError
		kind string
	}{
		{"input", NewInputError("op", nil), KindInput},
		{"external", NewExternalError("op", nil), KindExternal},
		{"serialization", NewSerializationError("op", nil), KindSerialization},
		{"rendering", NewRenderingError("op", nil), KindRendering},
		{"internal", NewInternalError("op", nil), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.kind)
			}
		})
	}
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("close failed") }

func TestCloseWithLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	CloseWithLog(failingCloser{}, logger, "design file")

	if !strings.Contains(buf.String(), "design file") {
		t.Errorf("expected log output to name the resource, got %q", buf.String())
	}

	// Nil closer must be a no-op.
	CloseWithLog(nil, logger, "nothing")
}
