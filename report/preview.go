package report

import (
	"fmt"
	"strings"

	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
)

// Preview is the in-memory document tree handed to interactive views.
// Unlike the export targets it substitutes placeholders for empty
// values, so a half-built report still previews as a readable page.
type Preview struct {
	// Title is the document title: the project name, or a generic
	// fallback when none is set.
	Title string

	// Blocks are the rendered components in document order.
	Blocks []Block
}

// Block is one rendered component of the preview.
type Block struct {
	// NodeID identifies the source node, letting views scroll the canvas
	// to a block's origin.
	NodeID string

	// Kind is the source node's kind.
	Kind node.Kind

	// Title is the block heading after placeholder substitution.
	Title string

	// Text is the block's paragraph content, or its placeholder.
	Text string

	// Rows holds table cell text, header row first. Only set for
	// test-case tables.
	Rows [][]string

	// Items holds list entries: steps, attachments, or issue links.
	Items []Item
}

// Item is one list entry of a preview block.
type Item struct {
	// Text is the entry's display text.
	Text string

	// Path is the linked logical path or URL, when the entry has one.
	Path string

	// IsImage marks entries that render inline as images.
	IsImage bool
}

const (
	previewEmptyValue   = "N/A"
	previewEmptyHeading = "Untitled Section"
	previewEmptySnippet = "Code Snippet"
	previewFallbackName = "Security Report"
)

func renderPreview(components []graph.Component) Preview {
	title := graph.ProjectName(components)
	if title == "" {
		title = previewFallbackName
	}
	p := Preview{Title: title}

	for _, c := range components {
		switch payload := c.Payload.(type) {
		case node.SectionHeaderPayload:
			p.Blocks = append(p.Blocks, Block{
				NodeID: c.NodeID,
				Kind:   c.Kind,
				Title:  orPlaceholder(payload.Title, previewEmptyHeading),
			})

		case node.TextFieldPayload:
			if payload.Role == node.RoleProjectName {
				continue
			}
			block := Block{
				NodeID: c.NodeID,
				Kind:   c.Kind,
				Title:  payload.Role.SectionTitle(),
				Text:   orPlaceholder(payload.Value, previewEmptyValue),
			}
			if payload.Role == node.RoleBaselines && payload.ReferenceURL != "" {
				block.Items = []Item{{Text: "Reference URL", Path: payload.ReferenceURL}}
			}
			p.Blocks = append(p.Blocks, block)

		case node.TestCaseTablePayload:
			p.Blocks = append(p.Blocks, Block{
				NodeID: c.NodeID,
				Kind:   c.Kind,
				Title:  tableSectionTitle,
				Rows:   previewRows(payload.Rows),
			})

		case node.CodeSnippetPayload:
			p.Blocks = append(p.Blocks, Block{
				NodeID: c.NodeID,
				Kind:   c.Kind,
				Title:  orPlaceholder(payload.Title, previewEmptySnippet),
				Text:   orPlaceholder(payload.Content, previewEmptyValue),
			})

		case node.FileAttachmentSetPayload:
			block := Block{NodeID: c.NodeID, Kind: c.Kind, Title: attachSectionTitle}
			if len(payload.Files) == 0 {
				block.Text = noFiles
			}
			for _, f := range payload.Files {
				block.Items = append(block.Items, Item{
					Text:    f.DisplayName,
					Path:    f.LogicalPath,
					IsImage: evidence.IsImagePath(f.LogicalPath),
				})
			}
			p.Blocks = append(p.Blocks, block)

		case node.StepListPayload:
			block := Block{NodeID: c.NodeID, Kind: c.Kind, Title: stepsSectionTitle}
			if payload.AllTextEmpty() {
				block.Text = noSteps
			} else {
				for i, step := range payload.Steps {
					item := Item{Text: fmt.Sprintf("Step %d: %s", i+1, step.Text)}
					if step.Image != nil && evidence.IsImagePath(step.Image.LogicalPath) {
						item.Path = step.Image.LogicalPath
						item.IsImage = true
					}
					block.Items = append(block.Items, item)
				}
			}
			p.Blocks = append(p.Blocks, block)

		case node.LinkedIssueListPayload:
			block := Block{
				NodeID: c.NodeID,
				Kind:   c.Kind,
				Title:  issuesSectionTitle,
				Text:   orPlaceholder(payload.ChangeDescription, previewEmptyValue),
			}
			for _, issue := range payload.Issues {
				block.Items = append(block.Items, Item{
					Text: fmt.Sprintf("%s: %s", issue.ID, issue.Title),
					Path: issue.URL,
				})
			}
			p.Blocks = append(p.Blocks, block)
		}
	}
	return p
}

func previewRows(rows []node.TestCaseRow) [][]string {
	out := [][]string{append([]string(nil), tableHeader...)}
	if len(rows) == 0 {
		return append(out, []string{noTestCases})
	}
	for _, row := range rows {
		out = append(out, []string{
			row.ID,
			row.Description,
			row.Category,
			string(row.Exploited),
			row.ReferenceURL,
			evidenceCell(row.Evidence),
			string(row.Status),
			row.Tester,
		})
	}
	return out
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}
