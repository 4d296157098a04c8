package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
)

var testClock = func() time.Time {
	return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
}

func mkNode(id string, kind node.Kind, y float64, seq int, payload node.Payload) node.Node {
	return node.Node{
		ID:       id,
		Kind:     kind,
		Position: node.Position{Y: y},
		Seq:      seq,
		Payload:  payload,
	}
}

func compileMarkdown(t *testing.T, snap graph.Snapshot) string {
	t.Helper()
	c := New(WithClock(testClock))
	out, err := c.Markdown(context.Background(), snap)
	require.NoError(t, err)
	return out
}

func TestMarkdownTitleHoisting(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("name", node.KindTextField, 0, 0, node.TextFieldPayload{
			Role: node.RoleProjectName, Value: "Acme Gateway",
		}),
		mkNode("scope", node.KindTextField, 100, 1, node.TextFieldPayload{
			Role: node.RoleScope, Value: "All public endpoints",
		}),
	}}

	out := compileMarkdown(t, snap)
	assert.True(t, strings.HasPrefix(out, "# Acme Gateway\n"), "project name must become the document title")
	assert.Equal(t, 1, strings.Count(out, "Acme Gateway"), "project name must not render in the body")
	assert.Contains(t, out, "## Scope of Work\n\nAll public endpoints\n")
}

func TestMarkdownTitleFallback(t *testing.T) {
	out := compileMarkdown(t, graph.Snapshot{})
	assert.True(t, strings.HasPrefix(out, "# Security Testing Report\n"))
}

func TestMarkdownEmptyValueFaithful(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("scope", node.KindTextField, 0, 0, node.TextFieldPayload{Role: node.RoleScope}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "## Scope of Work\n\n\n", "empty value must export as the stored empty string")
	assert.NotContains(t, out, "N/A", "export targets never substitute preview placeholders")
}

func TestMarkdownBaselinesReference(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("base", node.KindTextField, 0, 0, node.TextFieldPayload{
			Role:         node.RoleBaselines,
			Value:        "OWASP ASVS v4",
			ReferenceURL: "https://owasp.org/asvs",
		}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "## Baselines for Review\n\nOWASP ASVS v4\n")
	assert.Contains(t, out, "**Reference URL:** [https://owasp.org/asvs](https://owasp.org/asvs)")
}

func TestMarkdownSectionHeaderLevels(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("h1", node.KindSectionHeader, 0, 0, node.SectionHeaderPayload{Title: "Findings", Level: 2}),
		mkNode("h2", node.KindSectionHeader, 100, 1, node.SectionHeaderPayload{Title: "Deep", Level: 9}),
		mkNode("h3", node.KindSectionHeader, 200, 2, node.SectionHeaderPayload{Title: "", Level: 2}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "\n## Findings\n")
	assert.Contains(t, out, "\n###### Deep\n", "levels clamp to the Markdown maximum")
	assert.Contains(t, out, "\n##\n", "empty heading exports faithfully, without a placeholder")
	assert.NotContains(t, out, "Untitled Section")
}

func TestMarkdownTable(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("tbl", node.KindTestCaseTable, 0, 0, node.TestCaseTablePayload{Rows: []node.TestCaseRow{
			{
				ID:          "TC-001",
				Description: "SQL injection | login form",
				Category:    "Injection",
				Exploited:   node.ExploitedYes,
				ReferenceURL: "https://app.example.com/login",
				Evidence: []evidence.FileRef{
					{LogicalPath: "./evidence/TC-001-evidence-1.png"},
					{LogicalPath: "./evidence/TC-001-evidence-2.png"},
				},
				Status: node.StatusFail,
				Tester: "jdoe",
			},
		}}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "## Test Cases & Findings")
	assert.Contains(t, out, "| ID | Test Case | Category | Exploited | URL | Evidence | Status | Tester |")
	assert.Contains(t, out, "SQL injection \\| login form", "pipes in cells must be escaped")
	assert.Contains(t, out,
		"[./evidence/TC-001-evidence-1.png](./evidence/TC-001-evidence-1.png)<br>[./evidence/TC-001-evidence-2.png](./evidence/TC-001-evidence-2.png)",
		"evidence renders as linked paths, one per reference")
	assert.NotContains(t, out, "![", "tables never inline images")
	assert.Contains(t, out, "| Fail |")
}

func TestMarkdownTablePlaceholderRow(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("tbl", node.KindTestCaseTable, 0, 0, node.TestCaseTablePayload{}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "| ID | Test Case | Category | Exploited | URL | Evidence | Status | Tester |",
		"header row renders even with zero data rows")
	assert.Contains(t, out, "| No test cases added. |")
}

func TestMarkdownCodeSnippet(t *testing.T) {
	filled := graph.Snapshot{Nodes: []node.Node{
		mkNode("code", node.KindCodeSnippet, 0, 0, node.CodeSnippetPayload{
			Title: "PoC", Language: "python", Content: "print('pwn')",
		}),
	}}
	out := compileMarkdown(t, filled)
	assert.Contains(t, out, "### PoC\n\n```python\nprint('pwn')\n```\n")

	empty := graph.Snapshot{Nodes: []node.Node{
		mkNode("code", node.KindCodeSnippet, 0, 0, node.CodeSnippetPayload{Language: "go"}),
	}}
	out = compileMarkdown(t, empty)
	assert.Contains(t, out, "###\n\n```go\n```\n", "empty content exports as an empty fence")
	assert.NotContains(t, out, "### \n", "empty title leaves no trailing space on the heading")
	assert.NotContains(t, out, "N/A")
}

func TestMarkdownStepList(t *testing.T) {
	img := &evidence.FileRef{DisplayName: "shot.png", LogicalPath: "./evidence/n1-s1-1.png"}
	doc := &evidence.FileRef{DisplayName: "notes.txt", LogicalPath: "./evidence/n1-s2-1.txt"}

	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("steps", node.KindStepList, 0, 0, node.StepListPayload{Steps: []node.Step{
			{ID: "s1", Text: "Log in as admin", Image: img},
			{ID: "s2", Text: "Open the audit page", Image: doc},
			{ID: "s3", Text: ""},
		}}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "## Steps to Reproduce")
	assert.Contains(t, out, "1. Log in as admin\n   ![shot.png](./evidence/n1-s1-1.png)\n")
	assert.Contains(t, out, "2. Open the audit page\n3. \n",
		"non-image attachments render nothing beneath the step")
	assert.NotContains(t, out, "No steps provided.",
		"a partially empty list does not collapse")
}

func TestMarkdownStepListCollapses(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("steps", node.KindStepList, 0, 0, node.StepListPayload{Steps: []node.Step{
			{ID: "s1", Text: "  "},
			{ID: "s2"},
		}}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "No steps provided.")
	assert.NotContains(t, out, "1. ")
}

func TestMarkdownAttachments(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("files", node.KindFileAttachmentSet, 0, 0, node.FileAttachmentSetPayload{Files: []evidence.FileRef{
			{DisplayName: "topology.png", LogicalPath: "./evidence/files-1.png"},
			{DisplayName: "burp-session.zip", LogicalPath: "./evidence/files-2.zip"},
		}}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "## Attachments")
	assert.Contains(t, out, "![topology.png](./evidence/files-1.png)\n\n*./evidence/files-1.png*\n")
	assert.Contains(t, out, "- [burp-session.zip](./evidence/files-2.zip)\n")
}

func TestMarkdownAttachmentsPlaceholder(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("files", node.KindFileAttachmentSet, 0, 0, node.FileAttachmentSetPayload{}),
	}}
	assert.Contains(t, compileMarkdown(t, snap), "No files attached.")
}

func TestMarkdownLinkedIssues(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("issues", node.KindLinkedIssueList, 0, 0, node.LinkedIssueListPayload{
			ChangeDescription: "Hardened session handling",
			Issues: []node.Issue{
				{ID: "SEC-12", Title: "Rotate session on login", URL: "https://tracker/SEC-12"},
				{ID: "SEC-13", Title: "Shorten idle timeout"},
			},
		}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "### Change Description & Linked Stories")
	assert.Contains(t, out, "**Description:** Hardened session handling\n")
	assert.Contains(t, out, "- [SEC-12: Rotate session on login](https://tracker/SEC-12)\n")
	assert.Contains(t, out, "- [SEC-13: Shorten idle timeout](#)\n")
}

func TestMarkdownLinkedIssuesPlaceholders(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("issues", node.KindLinkedIssueList, 0, 0, node.LinkedIssueListPayload{}),
	}}

	out := compileMarkdown(t, snap)
	assert.Contains(t, out, "**Description:** No changes described.\n")
	assert.Contains(t, out, "**Linked Stories:** None\n")
}

func TestMarkdownExcludesGenerators(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("gen", node.KindAIGenerator, 0, 0, node.AIGeneratorPayload{Scope: "payments API"}),
	}}

	out := compileMarkdown(t, snap)
	assert.NotContains(t, out, "payments API")
}

func TestMarkdownFooter(t *testing.T) {
	out := compileMarkdown(t, graph.Snapshot{})
	assert.True(t, strings.HasSuffix(out, "\n---\n*Report generated on March 14, 2025*\n"))
}

func TestMarkdownIdempotent(t *testing.T) {
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("name", node.KindTextField, 0, 0, node.TextFieldPayload{Role: node.RoleProjectName, Value: "Acme"}),
		mkNode("tbl", node.KindTestCaseTable, 100, 1, node.TestCaseTablePayload{Rows: []node.TestCaseRow{
			{ID: "TC-001", Description: "CSRF on transfer", Status: node.StatusFail},
		}}),
		mkNode("steps", node.KindStepList, 200, 2, node.StepListPayload{Steps: []node.Step{{ID: "s1", Text: "do it"}}}),
	}}

	c := New(WithClock(testClock))
	first, err := c.Markdown(context.Background(), snap)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Markdown(context.Background(), snap)
		require.NoError(t, err)
		assert.Equal(t, first, again, "same snapshot must compile to byte-identical output")
	}
}
