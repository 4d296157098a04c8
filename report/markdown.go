package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
)

const (
	fallbackTitle      = "Security Testing Report"
	tableSectionTitle  = "Test Cases & Findings"
	stepsSectionTitle  = "Steps to Reproduce"
	attachSectionTitle = "Attachments"
	issuesSectionTitle = "Change Description & Linked Stories"

	noTestCases = "No test cases added."
	noSteps     = "No steps provided."
	noFiles     = "No files attached."
	noChanges   = "No changes described."
)

// dateLayout is the long date used in the footer and the print header.
const dateLayout = "January 2, 2006"

var tableHeader = []string{"ID", "Test Case", "Category", "Exploited", "URL", "Evidence", "Status", "Tester"}

// renderMarkdown emits the document in linear order. Stored values are
// rendered faithfully; only structurally absent content (an empty table,
// an all-blank step list) gets a placeholder.
func renderMarkdown(components []graph.Component, now time.Time) string {
	var b strings.Builder

	title := graph.ProjectName(components)
	if title == "" {
		title = fallbackTitle
	}
	fmt.Fprintf(&b, "# %s\n", title)

	for _, c := range components {
		switch p := c.Payload.(type) {
		case node.SectionHeaderPayload:
			b.WriteString("\n")
			b.WriteString(headingLine(p.Level, p.Title))
			b.WriteString("\n")

		case node.TextFieldPayload:
			if p.Role == node.RoleProjectName {
				continue
			}
			b.WriteString("\n")
			if st := p.Role.SectionTitle(); st != "" {
				fmt.Fprintf(&b, "## %s\n\n", st)
			}
			b.WriteString(p.Value)
			b.WriteString("\n")
			if p.Role == node.RoleBaselines && p.ReferenceURL != "" {
				fmt.Fprintf(&b, "\n**Reference URL:** [%s](%s)\n", p.ReferenceURL, p.ReferenceURL)
			}

		case node.TestCaseTablePayload:
			b.WriteString("\n## " + tableSectionTitle + "\n\n")
			writeMarkdownTable(&b, p.Rows)

		case node.CodeSnippetPayload:
			b.WriteString("\n")
			b.WriteString(headingLine(3, p.Title))
			b.WriteString("\n")
			fmt.Fprintf(&b, "```%s\n", p.Language)
			if p.Content != "" {
				b.WriteString(p.Content)
				if !strings.HasSuffix(p.Content, "\n") {
					b.WriteString("\n")
				}
			}
			b.WriteString("```\n")

		case node.FileAttachmentSetPayload:
			b.WriteString("\n## " + attachSectionTitle + "\n\n")
			if len(p.Files) == 0 {
				b.WriteString(noFiles + "\n")
				continue
			}
			for _, f := range p.Files {
				if evidence.IsImagePath(f.LogicalPath) {
					fmt.Fprintf(&b, "![%s](%s)\n\n*%s*\n", f.DisplayName, f.LogicalPath, f.LogicalPath)
				} else {
					fmt.Fprintf(&b, "- [%s](%s)\n", f.DisplayName, f.LogicalPath)
				}
			}

		case node.StepListPayload:
			b.WriteString("\n## " + stepsSectionTitle + "\n\n")
			if p.AllTextEmpty() {
				b.WriteString(noSteps + "\n")
				continue
			}
			for i, step := range p.Steps {
				fmt.Fprintf(&b, "%d. %s\n", i+1, step.Text)
				if step.Image != nil && evidence.IsImagePath(step.Image.LogicalPath) {
					fmt.Fprintf(&b, "   ![%s](%s)\n", step.Image.DisplayName, step.Image.LogicalPath)
				}
			}

		case node.LinkedIssueListPayload:
			b.WriteString("\n### " + issuesSectionTitle + "\n\n")
			if strings.TrimSpace(p.ChangeDescription) == "" {
				b.WriteString("**Description:** " + noChanges + "\n")
			} else {
				fmt.Fprintf(&b, "**Description:** %s\n", p.ChangeDescription)
			}
			b.WriteString("\n")
			if len(p.Issues) == 0 {
				b.WriteString("**Linked Stories:** None\n")
				continue
			}
			for _, issue := range p.Issues {
				url := issue.URL
				if url == "" {
					url = "#"
				}
				fmt.Fprintf(&b, "- [%s: %s](%s)\n", issue.ID, issue.Title, url)
			}
		}
	}

	fmt.Fprintf(&b, "\n---\n*Report generated on %s*\n", now.Format(dateLayout))
	return b.String()
}

// headingLine renders a heading at the given level, clamped to the
// Markdown range. An empty title stays empty.
func headingLine(level int, title string) string {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	hashes := strings.Repeat("#", level)
	if title == "" {
		return hashes + "\n"
	}
	return hashes + " " + title + "\n"
}

func writeMarkdownTable(b *strings.Builder, rows []node.TestCaseRow) {
	b.WriteString("| " + strings.Join(tableHeader, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(tableHeader)) + "\n")

	if len(rows) == 0 {
		b.WriteString("| " + noTestCases + strings.Repeat(" |", len(tableHeader)) + "\n")
		return
	}

	for _, row := range rows {
		cells := []string{
			row.ID,
			row.Description,
			row.Category,
			string(row.Exploited),
			row.ReferenceURL,
			evidenceCell(row.Evidence),
			string(row.Status),
			row.Tester,
		}
		for i, cell := range cells {
			cells[i] = escapeCell(cell)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

// evidenceCell renders each reference as a linked logical path. Table
// cells never inline images.
func evidenceCell(refs []evidence.FileRef) string {
	if len(refs) == 0 {
		return ""
	}
	links := make([]string, len(refs))
	for i, ref := range refs {
		links[i] = fmt.Sprintf("[%s](%s)", ref.LogicalPath, ref.LogicalPath)
	}
	return strings.Join(links, "<br>")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
