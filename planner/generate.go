package planner

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/node"
	"github.com/reportforge/sdk/parser"
)

// Request carries the maker-checker context the model plans against.
type Request struct {
	// Scope describes the system under test.
	Scope string

	// MakerRole is the role that initiates the action.
	MakerRole string

	// CheckerRole is the role that approves it.
	CheckerRole string

	// Action is the operation flowing through the approval.
	Action string

	// Intensity selects focused or comprehensive planning. Invalid
	// values fall back to focused.
	Intensity Intensity
}

// plannedCase is the wire shape of one generated row.
type plannedCase struct {
	ID       string `json:"id"`
	TestCase string `json:"testCase"`
	Category string `json:"category"`
	URL      string `json:"url"`
	Exploited string `json:"exploited"`
	Status   string `json:"status"`
	Tester   string `json:"tester"`
}

// Generate asks the client for a test plan and returns the parsed rows.
// The response must be a strict JSON array; anything else fails with
// sdk.ErrMalformedResponse and no rows. Generated rows always start
// with an empty evidence list regardless of what the model returned.
func Generate(ctx context.Context, client Client, req Request) ([]node.TestCaseRow, error) {
	const op = "planner.Generate"

	intensity := req.Intensity
	if !intensity.IsValid() {
		intensity = IntensityFocused
	}

	raw, err := client.Complete(ctx, buildPrompt(req), intensity.Temperature())
	if err != nil {
		return nil, err
	}

	cases, err := parser.ParseJSONArray[plannedCase]([]byte(parser.StripCodeFences(raw)))
	if err != nil {
		return nil, sdk.NewSerializationError(op, fmt.Errorf("%w: %v", sdk.ErrMalformedResponse, err))
	}

	rows := make([]node.TestCaseRow, 0, len(cases))
	for _, c := range cases {
		row := node.NewTestCaseRow()
		row.ID = c.ID
		row.Description = c.TestCase
		row.Category = c.Category
		row.ReferenceURL = c.URL
		row.Tester = c.Tester
		if state := node.ExploitedState(c.Exploited); state.IsValid() {
			row.Exploited = state
		}
		if status := node.RowStatus(c.Status); status.IsValid() {
			row.Status = status
		}
		// The model has no evidence to cite; rows start clean.
		row.Evidence = []evidence.FileRef{}
		rows = append(rows, row)
	}
	return rows, nil
}

// MergeRows appends generated rows after the existing ones. Existing
// rows are never replaced or reordered.
func MergeRows(existing, generated []node.TestCaseRow) []node.TestCaseRow {
	merged := make([]node.TestCaseRow, 0, len(existing)+len(generated))
	for _, row := range existing {
		merged = append(merged, row.Clone())
	}
	for _, row := range generated {
		merged = append(merged, row.Clone())
	}
	return merged
}

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(`**Task:**
Generate a comprehensive set of security test cases for a "Maker-Checker" (two-step approval) workflow. Analyze the provided context and create a diverse list of tests focusing on bypassing or exploiting this authorization flow. Do not generate simple or repetitive tests.

**Context of the Maker-Checker Flow:**
`)
	fmt.Fprintf(&b, "- **Maker Role:** %s\n", req.MakerRole)
	fmt.Fprintf(&b, "- **Checker Role:** %s\n", req.CheckerRole)
	fmt.Fprintf(&b, "- **Action Being Performed:** %s\n", req.Action)
	fmt.Fprintf(&b, "- **General Scope:** %s\n", req.Scope)
	b.WriteString(`
**Test for the following critical vulnerability patterns:**
1. Authorization Bypass
2. Privilege Escalation
3. Data Tampering (TOCTOU)
4. Insecure Direct Object Reference (IDOR)
5. State Confusion
6. Cross-Site Request Forgery (CSRF)

**Instructions:**
- Create a generic, sequential ID for each test case, starting with "TC-001" and incrementing for each subsequent case (TC-002, TC-003, etc.).
- The category MUST be a specific, professional vulnerability type.
- The test case description MUST be a clear, actionable instruction.

**CRITICAL OUTPUT FORMAT REQUIREMENTS:**
- Your entire response MUST be a valid JSON array of objects.
- Do NOT include any introductory text, explanations, or markdown formatting.
- Each object in the array MUST contain "id", "testCase", "category", "url", "exploited", "status", "tester".
- "exploited" MUST be "No", "status" MUST be "Not Applicable", "tester" and "url" MUST be empty strings.
- Example of required output format: ` + exampleOutput)
	return b.String()
}

const exampleOutput = `[
  { "id": "TC-001", "testCase": "Attempt to access admin endpoint as a normal user", "category": "Broken Access Control", "url": "", "exploited": "No", "status": "Not Applicable", "tester": "" },
  { "id": "TC-002", "testCase": "Submit SQL injection payload ' OR 1=1 -- to username field", "category": "Injection", "url": "", "exploited": "No", "status": "Not Applicable", "tester": "" }
]`
