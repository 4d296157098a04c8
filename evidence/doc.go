// Package evidence manages binary attachments for a report-building
// session.
//
// Every file a user attaches (to a test-case row, a reproduction step, or
// an attachment-set node) is handed to the Registry, which assigns it a
// stable logical path unique within the report. The logical path is the
// single identifier used everywhere the file is referenced: preview
// rendering, Markdown links, and the packaged ZIP archive. Because the
// owning row/step identifier is embedded in the path, two owners uploading
// files with identical original names never collide, and the same owner
// re-uploading gets a fresh sequence number.
//
// The registry retains the original bytes and a renderable preview handle
// until Release is called. Failing to release on owner removal is a
// resource leak, not a correctness error.
//
// File content is always treated as opaque: whether a file is an image is
// decided purely by filename extension (see IsImagePath), never by content
// sniffing.
package evidence
