package node

import (
	"github.com/google/uuid"
	"github.com/reportforge/sdk/evidence"
)

// Payload is the kind-specific record a node carries. The set of
// implementations is closed; consumers switch on the concrete type.
//
// Payload values are treated as immutable once attached to a node: the
// Store replaces the whole payload on every dispatch instead of editing it
// in place.
type Payload interface {
	// Kind returns the component kind this payload belongs to.
	Kind() Kind

	// Clone returns a deep copy of the payload.
	Clone() Payload

	// FileRefs returns every evidence reference embedded in the payload.
	FileRefs() []evidence.FileRef
}

// SectionHeaderPayload is the payload of a section-header node.
type SectionHeaderPayload struct {
	// Title is the heading text. An empty title renders an "Untitled
	// Section" placeholder in previews and an empty heading in exports.
	Title string `json:"title"`

	// Level is the heading level, 1 through 4.
	Level int `json:"level"`
}

// Kind implements Payload.
func (SectionHeaderPayload) Kind() Kind { return KindSectionHeader }

// Clone implements Payload.
func (p SectionHeaderPayload) Clone() Payload { return p }

// FileRefs implements Payload.
func (SectionHeaderPayload) FileRefs() []evidence.FileRef { return nil }

// TextFieldPayload is the payload of a text-field node.
type TextFieldPayload struct {
	// Role decides where the value lands in the report.
	Role FieldRole `json:"role"`

	// Value is the stored text. Empty means "not yet filled in".
	Value string `json:"value"`

	// ReferenceURL is an optional link appended after the body text for
	// baselines fields.
	ReferenceURL string `json:"reference_url,omitempty"`
}

// Kind implements Payload.
func (TextFieldPayload) Kind() Kind { return KindTextField }

// Clone implements Payload.
func (p TextFieldPayload) Clone() Payload { return p }

// FileRefs implements Payload.
func (TextFieldPayload) FileRefs() []evidence.FileRef { return nil }

// TestCaseTablePayload is the payload of a findings-table node.
type TestCaseTablePayload struct {
	// Rows are the test-case rows in display order.
	Rows []TestCaseRow `json:"rows"`
}

// Kind implements Payload.
func (TestCaseTablePayload) Kind() Kind { return KindTestCaseTable }

// Clone implements Payload.
func (p TestCaseTablePayload) Clone() Payload {
	rows := make([]TestCaseRow, len(p.Rows))
	for i, r := range p.Rows {
		rows[i] = r.Clone()
	}
	return TestCaseTablePayload{Rows: rows}
}

// FileRefs implements Payload.
func (p TestCaseTablePayload) FileRefs() []evidence.FileRef {
	var refs []evidence.FileRef
	for _, row := range p.Rows {
		refs = append(refs, row.Evidence...)
	}
	return refs
}

// CodeSnippetPayload is the payload of a code-snippet node.
type CodeSnippetPayload struct {
	// Title is the sub-heading rendered above the block.
	Title string `json:"title"`

	// Language is the fence language tag.
	Language string `json:"language"`

	// Content is the snippet body.
	Content string `json:"content"`
}

// Kind implements Payload.
func (CodeSnippetPayload) Kind() Kind { return KindCodeSnippet }

// Clone implements Payload.
func (p CodeSnippetPayload) Clone() Payload { return p }

// FileRefs implements Payload.
func (CodeSnippetPayload) FileRefs() []evidence.FileRef { return nil }

// FileAttachmentSetPayload is the payload of a file-upload node.
type FileAttachmentSetPayload struct {
	// Files are the attached files in upload order.
	Files []evidence.FileRef `json:"files"`
}

// Kind implements Payload.
func (FileAttachmentSetPayload) Kind() Kind { return KindFileAttachmentSet }

// Clone implements Payload.
func (p FileAttachmentSetPayload) Clone() Payload {
	files := make([]evidence.FileRef, len(p.Files))
	copy(files, p.Files)
	return FileAttachmentSetPayload{Files: files}
}

// FileRefs implements Payload.
func (p FileAttachmentSetPayload) FileRefs() []evidence.FileRef {
	refs := make([]evidence.FileRef, len(p.Files))
	copy(refs, p.Files)
	return refs
}

// StepListPayload is the payload of a steps-to-reproduce node.
type StepListPayload struct {
	// Steps are the reproduction steps in order.
	Steps []Step `json:"steps"`
}

// Kind implements Payload.
func (StepListPayload) Kind() Kind { return KindStepList }

// Clone implements Payload.
func (p StepListPayload) Clone() Payload {
	steps := make([]Step, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = s.Clone()
	}
	return StepListPayload{Steps: steps}
}

// FileRefs implements Payload.
func (p StepListPayload) FileRefs() []evidence.FileRef {
	var refs []evidence.FileRef
	for _, s := range p.Steps {
		if s.Image != nil {
			refs = append(refs, *s.Image)
		}
	}
	return refs
}

// AllTextEmpty reports whether every step has empty text. A step list in
// that state is treated as empty overall, even when some steps carry
// images.
func (p StepListPayload) AllTextEmpty() bool {
	for _, s := range p.Steps {
		if s.Text != "" {
			return false
		}
	}
	return true
}

// LinkedIssueListPayload is the payload of a change-description node.
type LinkedIssueListPayload struct {
	// ChangeDescription summarizes the change under review.
	ChangeDescription string `json:"change_description"`

	// Issues are the linked tickets.
	Issues []Issue `json:"issues"`
}

// Kind implements Payload.
func (LinkedIssueListPayload) Kind() Kind { return KindLinkedIssueList }

// Clone implements Payload.
func (p LinkedIssueListPayload) Clone() Payload {
	issues := make([]Issue, len(p.Issues))
	copy(issues, p.Issues)
	return LinkedIssueListPayload{ChangeDescription: p.ChangeDescription, Issues: issues}
}

// FileRefs implements Payload.
func (LinkedIssueListPayload) FileRefs() []evidence.FileRef { return nil }

// AIGeneratorPayload is the payload of the editor-only AI generator node.
// It holds the generation inputs; the generated rows land in the connected
// table, never here.
type AIGeneratorPayload struct {
	// Scope is the free-text scope description fed to the provider.
	Scope string `json:"scope"`

	// MakerRole, CheckerRole and Action describe the approval workflow
	// under test.
	MakerRole   string `json:"maker_role"`
	CheckerRole string `json:"checker_role"`
	Action      string `json:"action"`

	// Intensity selects generation breadth ("focused" or "comprehensive").
	Intensity string `json:"intensity"`
}

// Kind implements Payload.
func (AIGeneratorPayload) Kind() Kind { return KindAIGenerator }

// Clone implements Payload.
func (p AIGeneratorPayload) Clone() Payload { return p }

// FileRefs implements Payload.
func (AIGeneratorPayload) FileRefs() []evidence.FileRef { return nil }

// DefaultPayload returns the kind-appropriate initial payload for a newly
// created node. Collections start with one empty element where the editor
// presents one (the findings table and the step list); everything else
// starts blank.
func DefaultPayload(kind Kind) Payload {
	switch kind {
	case KindSectionHeader:
		return SectionHeaderPayload{Title: "", Level: 2}
	case KindTextField:
		return TextFieldPayload{Role: RoleFreeform}
	case KindTestCaseTable:
		return TestCaseTablePayload{Rows: []TestCaseRow{NewTestCaseRow()}}
	case KindCodeSnippet:
		return CodeSnippetPayload{}
	case KindFileAttachmentSet:
		return FileAttachmentSetPayload{Files: []evidence.FileRef{}}
	case KindStepList:
		return StepListPayload{Steps: []Step{{ID: uuid.New().String()}}}
	case KindLinkedIssueList:
		return LinkedIssueListPayload{Issues: []Issue{}}
	case KindAIGenerator:
		return AIGeneratorPayload{Intensity: "focused"}
	default:
		return nil
	}
}
