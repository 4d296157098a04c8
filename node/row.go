package node

import (
	"fmt"

	"github.com/reportforge/sdk/evidence"
)

// FieldRole decides where a text field's value lands in the compiled
// report.
type FieldRole string

const (
	// RoleProjectName promotes the value to the report's top-level title.
	// A project-name field is suppressed from body rendering wherever it
	// appears positionally.
	RoleProjectName FieldRole = "project_name"

	// RoleScope renders under the "Scope of Work" section title.
	RoleScope FieldRole = "scope"

	// RoleBaselines renders under the "Baselines for Review" section
	// title, with an optional reference-link line.
	RoleBaselines FieldRole = "baselines"

	// RoleFreeform renders as a plain body paragraph.
	RoleFreeform FieldRole = "freeform"
)

// IsValid returns true if the field role is valid.
func (r FieldRole) IsValid() bool {
	switch r {
	case RoleProjectName, RoleScope, RoleBaselines, RoleFreeform:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field role.
func (r FieldRole) String() string {
	return string(r)
}

// SectionTitle returns the default section title rendered above the
// field's value, or empty for roles without one.
func (r FieldRole) SectionTitle() string {
	switch r {
	case RoleScope:
		return "Scope of Work"
	case RoleBaselines:
		return "Baselines for Review"
	default:
		return ""
	}
}

// ParseFieldRole parses a string into a FieldRole value.
func ParseFieldRole(s string) (FieldRole, error) {
	role := FieldRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid field role: %s", s)
	}
	return role, nil
}

// AllFieldRoles returns all valid field roles.
func AllFieldRoles() []FieldRole {
	return []FieldRole{RoleProjectName, RoleScope, RoleBaselines, RoleFreeform}
}

// ExploitedState records whether a test case's vulnerability was
// successfully exploited.
type ExploitedState string

const (
	// ExploitedYes indicates the issue was fully exploited.
	ExploitedYes ExploitedState = "Yes"

	// ExploitedNo indicates exploitation was not achieved.
	ExploitedNo ExploitedState = "No"

	// ExploitedPartial indicates partial exploitation.
	ExploitedPartial ExploitedState = "Partial"
)

// IsValid returns true if the exploited state is valid.
func (e ExploitedState) IsValid() bool {
	switch e {
	case ExploitedYes, ExploitedNo, ExploitedPartial:
		return true
	default:
		return false
	}
}

// String returns the string representation of the exploited state.
func (e ExploitedState) String() string {
	return string(e)
}

// RowStatus is the execution status of one test-case row.
type RowStatus string

const (
	// StatusPass indicates the test case passed.
	StatusPass RowStatus = "Pass"

	// StatusFail indicates the test case failed.
	StatusFail RowStatus = "Fail"

	// StatusNotApplicable indicates the test case has not been executed or
	// does not apply.
	StatusNotApplicable RowStatus = "Not Applicable"
)

// IsValid returns true if the row status is valid.
func (s RowStatus) IsValid() bool {
	switch s {
	case StatusPass, StatusFail, StatusNotApplicable:
		return true
	default:
		return false
	}
}

// String returns the string representation of the row status.
func (s RowStatus) String() string {
	return string(s)
}

// TestCaseRow is one row of the findings table.
type TestCaseRow struct {
	// ID is the user- or generator-assigned identifier (e.g. "TC-001").
	// Evidence cannot be attached until the ID is present.
	ID string `json:"id"`

	// Description is the actionable test-case instruction.
	Description string `json:"description"`

	// Category is the vulnerability classification.
	Category string `json:"category"`

	// Exploited records the exploitation outcome.
	Exploited ExploitedState `json:"exploited"`

	// ReferenceURL links the affected endpoint or resource.
	ReferenceURL string `json:"reference_url"`

	// Evidence lists the attachments registered for this row. Each entry
	// renders as a linked logical path in the table; images are never
	// inlined inside table cells.
	Evidence []evidence.FileRef `json:"evidence"`

	// Status is the execution status.
	Status RowStatus `json:"status"`

	// Tester names who executed the test case.
	Tester string `json:"tester"`
}

// NewTestCaseRow returns an empty row with the default exploited state and
// status.
func NewTestCaseRow() TestCaseRow {
	return TestCaseRow{
		Exploited: ExploitedNo,
		Status:    StatusNotApplicable,
		Evidence:  []evidence.FileRef{},
	}
}

// Clone returns a deep copy of the row.
func (r TestCaseRow) Clone() TestCaseRow {
	out := r
	out.Evidence = make([]evidence.FileRef, len(r.Evidence))
	copy(out.Evidence, r.Evidence)
	return out
}

// Step is one entry of a step-list node.
type Step struct {
	// ID uniquely identifies the step for updates and evidence ownership.
	ID string `json:"id"`

	// Text describes the step.
	Text string `json:"text"`

	// Image is an optional attached screenshot. It renders beneath the
	// step text only when its filename carries an image extension.
	Image *evidence.FileRef `json:"image,omitempty"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	out := s
	if s.Image != nil {
		img := *s.Image
		out.Image = &img
	}
	return out
}

// Issue is one linked ticket or story.
type Issue struct {
	// ID is the tracker identifier (e.g. "JIRA-123").
	ID string `json:"id"`

	// Title is the ticket title.
	Title string `json:"title"`

	// URL links to the tracker entry.
	URL string `json:"url"`

	// Description is an optional summary.
	Description string `json:"description"`
}
