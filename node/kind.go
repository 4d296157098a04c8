package node

import "fmt"

// Kind identifies the type of a node and of the component it projects to.
// The set is closed: renderers switch on it exhaustively, and anything
// unrecognized is skipped rather than failed.
type Kind string

const (
	// KindSectionHeader is a standalone heading at a chosen level.
	KindSectionHeader Kind = "section_header"

	// KindTextField is a single text value with a field role that decides
	// where it lands in the report (title, scope, baselines, or freeform).
	KindTextField Kind = "text_field"

	// KindTestCaseTable is the findings table of structured test-case rows.
	KindTestCaseTable Kind = "test_case_table"

	// KindCodeSnippet is a fenced code block with a language tag.
	KindCodeSnippet Kind = "code_snippet"

	// KindFileAttachmentSet is a set of uploaded files rendered as inline
	// images or plain links.
	KindFileAttachmentSet Kind = "file_attachment_set"

	// KindStepList is an ordered list of reproduction steps, each with an
	// optional screenshot.
	KindStepList Kind = "step_list"

	// KindLinkedIssueList is a change description plus linked tickets.
	KindLinkedIssueList Kind = "linked_issue_list"

	// KindAIGenerator is the editor-only AI test-plan generator. It never
	// appears in compiled output; its only effect is appending rows to a
	// connected test-case table.
	KindAIGenerator Kind = "ai_generator"
)

// IsValid returns true if the kind is one of the closed set.
func (k Kind) IsValid() bool {
	switch k {
	case KindSectionHeader,
		KindTextField,
		KindTestCaseTable,
		KindCodeSnippet,
		KindFileAttachmentSet,
		KindStepList,
		KindLinkedIssueList,
		KindAIGenerator:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns a human-readable display name for the kind.
func (k Kind) DisplayName() string {
	switch k {
	case KindSectionHeader:
		return "Section Header"
	case KindTextField:
		return "Text Field"
	case KindTestCaseTable:
		return "Test Case Table"
	case KindCodeSnippet:
		return "Code Snippet"
	case KindFileAttachmentSet:
		return "File Attachments"
	case KindStepList:
		return "Steps to Reproduce"
	case KindLinkedIssueList:
		return "Linked Issues"
	case KindAIGenerator:
		return "AI Test Plan Generator"
	default:
		return string(k)
	}
}

// ParseKind parses a string into a Kind value.
// Returns an error if the string is not a valid kind.
func ParseKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid node kind: %s", s)
	}
	return kind, nil
}

// AllKinds returns all valid node kinds.
func AllKinds() []Kind {
	return []Kind{
		KindSectionHeader,
		KindTextField,
		KindTestCaseTable,
		KindCodeSnippet,
		KindFileAttachmentSet,
		KindStepList,
		KindLinkedIssueList,
		KindAIGenerator,
	}
}
