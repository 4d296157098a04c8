package evidence

import (
	"path"
	"strings"
)

// FileRef is a reference to one registered binary attachment. It is the
// value embedded in node payloads; the bytes themselves stay in the
// Registry.
type FileRef struct {
	// DisplayName is the original filename as selected by the user.
	DisplayName string `json:"display_name"`

	// LogicalPath is the stable, report-unique path assigned at
	// registration (e.g. "./evidence/TC-001-evidence-1.png"). Markdown
	// links and archive entries both use this path, which keeps the
	// packaged report self-contained.
	LogicalPath string `json:"logical_path"`

	// PreviewHandle is a renderable handle for interactive previews. It is
	// a runtime resource and is never serialized into a design document.
	PreviewHandle string `json:"-"`
}

// IsZero reports whether the reference is empty.
func (f FileRef) IsZero() bool {
	return f.LogicalPath == "" && f.DisplayName == ""
}

// Basename returns the final element of the logical path, which is the
// entry name used under the archive's evidence/ directory.
func (f FileRef) Basename() string {
	return path.Base(f.LogicalPath)
}

// imageExtensions is the closed set of filename extensions treated as
// renderable images. Matching is case-insensitive.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// IsImagePath reports whether the given filename or path has an image
// extension. Classification is by extension only; bytes are never
// inspected.
func IsImagePath(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}

// MimeType returns the MIME type for an image logical path, used when
// inlining preview bytes into the print document. Non-image paths return
// "application/octet-stream".
func MimeType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
