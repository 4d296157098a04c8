package report

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
)

// The HTML target produces the final layout-oriented document for an
// external print/PDF sink. Images come from already-registered bytes as
// data URIs; the document never references anything outside itself.

type htmlDoc struct {
	ProjectName string
	Date        string
	PageSize    string
	Blocks      []htmlBlock
}

type htmlBlock struct {
	Kind   string
	Title  string
	Text   string
	URL    string
	Code   htmlCode
	Rows   []htmlRow
	Files  []htmlFile
	Steps  []htmlStep
	Issues []htmlIssue
	Empty  bool
}

type htmlCode struct {
	Title   string
	Content string
}

type htmlRow struct {
	ID, Description, Category, Status, Tester string
}

type htmlFile struct {
	Name    string
	Path    string
	IsImage bool
	DataURI template.URL
}

type htmlStep struct {
	Index   int
	Text    string
	DataURI template.URL
}

type htmlIssue struct {
	Label string
	URL   string
}

func renderHTML(components []graph.Component, registry *evidence.Registry, now time.Time, pageSize string) (string, error) {
	projectName := graph.ProjectName(components)
	if projectName == "" {
		projectName = previewFallbackName
	}

	doc := htmlDoc{
		ProjectName: projectName,
		Date:        now.Format(dateLayout),
		PageSize:    pageSize,
	}

	for _, c := range components {
		switch p := c.Payload.(type) {
		case node.SectionHeaderPayload:
			doc.Blocks = append(doc.Blocks, htmlBlock{Kind: "header", Title: p.Title})

		case node.TextFieldPayload:
			if p.Role == node.RoleProjectName {
				continue
			}
			block := htmlBlock{Kind: "text", Title: p.Role.SectionTitle(), Text: p.Value}
			if p.Role == node.RoleBaselines {
				block.URL = p.ReferenceURL
			}
			doc.Blocks = append(doc.Blocks, block)

		case node.TestCaseTablePayload:
			block := htmlBlock{Kind: "table", Title: tableSectionTitle, Empty: len(p.Rows) == 0}
			for _, row := range p.Rows {
				block.Rows = append(block.Rows, htmlRow{
					ID:          row.ID,
					Description: row.Description,
					Category:    row.Category,
					Status:      string(row.Status),
					Tester:      row.Tester,
				})
			}
			doc.Blocks = append(doc.Blocks, block)

		case node.CodeSnippetPayload:
			doc.Blocks = append(doc.Blocks, htmlBlock{
				Kind: "code",
				Code: htmlCode{Title: p.Title, Content: p.Content},
			})

		case node.FileAttachmentSetPayload:
			block := htmlBlock{Kind: "files", Title: attachSectionTitle, Empty: len(p.Files) == 0}
			for _, f := range p.Files {
				hf := htmlFile{Name: f.DisplayName, Path: f.LogicalPath}
				if evidence.IsImagePath(f.LogicalPath) {
					uri, err := dataURI(registry, f)
					if err != nil {
						return "", sdk.NewRenderingError("report.HTML", err)
					}
					hf.IsImage = true
					hf.DataURI = uri
				}
				block.Files = append(block.Files, hf)
			}
			doc.Blocks = append(doc.Blocks, block)

		case node.StepListPayload:
			block := htmlBlock{Kind: "steps", Title: stepsSectionTitle, Empty: p.AllTextEmpty()}
			if !block.Empty {
				for i, step := range p.Steps {
					hs := htmlStep{Index: i + 1, Text: step.Text}
					if step.Image != nil && evidence.IsImagePath(step.Image.LogicalPath) {
						uri, err := dataURI(registry, *step.Image)
						if err != nil {
							return "", sdk.NewRenderingError("report.HTML", err)
						}
						hs.DataURI = uri
					}
					block.Steps = append(block.Steps, hs)
				}
			}
			doc.Blocks = append(doc.Blocks, block)

		case node.LinkedIssueListPayload:
			block := htmlBlock{Kind: "issues", Title: issuesSectionTitle, Text: p.ChangeDescription}
			for _, issue := range p.Issues {
				url := issue.URL
				if url == "" {
					url = "#"
				}
				block.Issues = append(block.Issues, htmlIssue{
					Label: fmt.Sprintf("%s: %s", issue.ID, issue.Title),
					URL:   url,
				})
			}
			doc.Blocks = append(doc.Blocks, block)
		}
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, doc); err != nil {
		return "", sdk.NewRenderingError("report.HTML", fmt.Errorf("execute document template: %w", err))
	}
	return b.String(), nil
}

// dataURI resolves a reference to registered bytes and embeds them.
func dataURI(registry *evidence.Registry, ref evidence.FileRef) (template.URL, error) {
	if registry == nil {
		return "", fmt.Errorf("no registry to resolve %s", ref.LogicalPath)
	}
	data, err := registry.Resolve(ref)
	if err != nil {
		return "", err
	}
	uri := "data:" + evidence.MimeType(ref.LogicalPath) + ";base64," + base64.StdEncoding.EncodeToString(data)
	return template.URL(uri), nil
}

var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.ProjectName}}</title>
<style>
@page { size: {{.PageSize}}; margin: 20mm; }
body { font-family: Georgia, serif; color: #1a1a1a; line-height: 1.5; }
.header { text-align: center; border-bottom: 3px double #1a1a1a; padding-bottom: 16px; margin-bottom: 32px; }
.header h1 { font-size: 20px; letter-spacing: 2px; text-transform: uppercase; margin: 0; }
.header h2 { font-size: 28px; margin: 8px 0 4px; }
.header .date { color: #555; margin: 0; }
.section-break { page-break-inside: avoid; margin-top: 28px; }
.section-title { font-size: 18px; border-bottom: 1px solid #999; padding-bottom: 4px; }
.content-block { margin-top: 18px; }
.content-title { font-size: 15px; margin-bottom: 6px; }
.prose-text { white-space: pre-wrap; }
.italic { font-style: italic; }
.link-box { font-size: 13px; color: #333; margin-top: 4px; }
table { width: 100%; border-collapse: collapse; font-size: 12px; }
th, td { border: 1px solid #999; padding: 6px 8px; text-align: left; }
th { background: #eee; }
pre { background: #f4f4f4; border: 1px solid #ccc; padding: 10px; overflow-x: auto; font-size: 12px; }
ol li { margin-bottom: 10px; }
img.step-image, .attachment img { max-width: 100%; margin-top: 6px; }
.attachment p { font-size: 11px; color: #555; }
</style>
</head>
<body>
<div class="header">
<h1>Confidential Security Assessment</h1>
<h2>{{.ProjectName}}</h2>
<p class="date">{{.Date}}</p>
</div>
{{range .Blocks}}{{if eq .Kind "header"}}<div class="section-break"><h2 class="section-title">{{.Title}}</h2></div>
{{else if eq .Kind "text"}}<div class="content-block">{{if .Title}}<h3 class="content-title">{{.Title}}</h3>{{end}}<p class="prose-text">{{.Text}}</p>{{if .URL}}<div class="link-box">Reference URL: <a href="{{.URL}}">{{.URL}}</a></div>{{end}}</div>
{{else if eq .Kind "table"}}<div class="section-break"><h2 class="section-title">{{.Title}}</h2>
<table><thead><tr><th>ID</th><th>Test Case</th><th>Category</th><th>Status</th><th>Tester</th></tr></thead>
<tbody>{{if .Empty}}<tr><td colspan="5">No test cases added.</td></tr>{{else}}{{range .Rows}}<tr><td>{{.ID}}</td><td>{{.Description}}</td><td>{{.Category}}</td><td>{{.Status}}</td><td>{{.Tester}}</td></tr>{{end}}{{end}}</tbody></table></div>
{{else if eq .Kind "code"}}<div class="content-block"><h3 class="content-title">{{.Code.Title}}</h3><pre><code>{{.Code.Content}}</code></pre></div>
{{else if eq .Kind "steps"}}<div class="section-break"><h2 class="section-title">{{.Title}}</h2>
{{if .Empty}}<p class="prose-text italic">No steps provided.</p>{{else}}<ol>{{range .Steps}}<li><p><strong>Step {{.Index}}:</strong> {{.Text}}</p>{{if .DataURI}}<img class="step-image" src="{{.DataURI}}" alt="Step evidence">{{end}}</li>{{end}}</ol>{{end}}</div>
{{else if eq .Kind "files"}}<div class="section-break"><h2 class="section-title">{{.Title}}</h2>
{{if .Empty}}<p class="prose-text italic">No files attached.</p>{{else}}{{range .Files}}{{if .IsImage}}<div class="attachment"><img src="{{.DataURI}}" alt="{{.Name}}"><p>{{.Path}}</p></div>{{else}}<div class="attachment"><p>{{.Path}}</p></div>{{end}}{{end}}{{end}}</div>
{{else if eq .Kind "issues"}}<div class="content-block"><h3 class="content-title">{{.Title}}</h3><p class="prose-text"><strong>Description:</strong> {{.Text}}</p>{{if .Issues}}<ul>{{range .Issues}}<li><a href="{{.URL}}">{{.Label}}</a></li>{{end}}</ul>{{end}}</div>
{{end}}{{end}}</body>
</html>
`))
