package report

import "fmt"

// Target identifies one of the compiler's output formats.
type Target string

const (
	// TargetPreview is the in-memory block tree consumed by interactive
	// previews. It substitutes placeholders for empty values.
	TargetPreview Target = "preview"

	// TargetMarkdown is the UTF-8 Markdown document. It renders stored
	// values faithfully, empty strings included.
	TargetMarkdown Target = "markdown"

	// TargetHTML is the print-oriented HTML document handed to an
	// external rasterizer for PDF output.
	TargetHTML Target = "html"

	// TargetArchive is the ZIP bundle of the Markdown document plus
	// every referenced evidence file.
	TargetArchive Target = "archive"
)

// IsValid returns true if the target is valid.
func (t Target) IsValid() bool {
	switch t {
	case TargetPreview, TargetMarkdown, TargetHTML, TargetArchive:
		return true
	default:
		return false
	}
}

// String returns the string representation of the target.
func (t Target) String() string {
	return string(t)
}

// FileExtension returns the file extension for the target's artifact,
// or empty for the in-memory preview.
func (t Target) FileExtension() string {
	switch t {
	case TargetMarkdown:
		return ".md"
	case TargetHTML:
		return ".html"
	case TargetArchive:
		return ".zip"
	default:
		return ""
	}
}

// MimeType returns the MIME type of the target's artifact, or empty for
// the in-memory preview.
func (t Target) MimeType() string {
	switch t {
	case TargetMarkdown:
		return "text/markdown"
	case TargetHTML:
		return "text/html"
	case TargetArchive:
		return "application/zip"
	default:
		return ""
	}
}

// ParseTarget parses a string into a Target value.
func ParseTarget(s string) (Target, error) {
	t := Target(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid target: %s", s)
	}
	return t, nil
}

// AllTargets returns all valid targets.
func AllTargets() []Target {
	return []Target{TargetPreview, TargetMarkdown, TargetHTML, TargetArchive}
}

// OutputName returns the suggested artifact filename for a target, built
// from the report's project name. An unnamed report falls back to a
// generic name.
func OutputName(projectName string, t Target) string {
	if projectName == "" {
		return "security-report" + t.FileExtension()
	}
	return projectName + "_SecurityReport" + t.FileExtension()
}
