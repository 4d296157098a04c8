package report

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/graph"
	"github.com/reportforge/sdk/node"
)

func TestHTMLHeaderBlock(t *testing.T) {
	c := New(WithClock(testClock))
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("name", node.KindTextField, 0, 0, node.TextFieldPayload{Role: node.RoleProjectName, Value: "Acme Gateway"}),
	}}

	out, err := c.HTML(context.Background(), snap)
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Confidential Security Assessment</h1>")
	assert.Contains(t, out, "<h2>Acme Gateway</h2>")
	assert.Contains(t, out, `<p class="date">March 14, 2025</p>`)
	assert.Equal(t, 1, strings.Count(out, "Acme Gateway</h2>"), "project name renders only in the header")
}

func TestHTMLHeaderFallbackName(t *testing.T) {
	c := New(WithClock(testClock))
	out, err := c.HTML(context.Background(), graph.Snapshot{})
	require.NoError(t, err)
	assert.Contains(t, out, "<h2>Security Report</h2>")
}

func TestHTMLPageSize(t *testing.T) {
	c := New(WithClock(testClock))
	out, err := c.HTML(context.Background(), graph.Snapshot{})
	require.NoError(t, err)
	assert.Contains(t, out, "@page { size: A4;")

	c = New(WithClock(testClock), WithPageSize("Letter"))
	out, err = c.HTML(context.Background(), graph.Snapshot{})
	require.NoError(t, err)
	assert.Contains(t, out, "@page { size: Letter;")
}

func TestHTMLSectionBreaks(t *testing.T) {
	c := New(WithClock(testClock))
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("h", node.KindSectionHeader, 0, 0, node.SectionHeaderPayload{Title: "Network Findings", Level: 2}),
		mkNode("tbl", node.KindTestCaseTable, 100, 1, node.TestCaseTablePayload{}),
	}}

	out, err := c.HTML(context.Background(), snap)
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 class="section-title">Network Findings</h2>`)
	assert.Contains(t, out, `<td colspan="5">No test cases added.</td>`)
}

func TestHTMLEmptyTitleFaithful(t *testing.T) {
	c := New(WithClock(testClock))
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("h", node.KindSectionHeader, 0, 0, node.SectionHeaderPayload{Level: 2}),
	}}

	out, err := c.HTML(context.Background(), snap)
	require.NoError(t, err)
	assert.Contains(t, out, `<h2 class="section-title"></h2>`)
	assert.NotContains(t, out, "Untitled Section")
}

func TestHTMLEmbedsImagesAsDataURIs(t *testing.T) {
	registry := evidence.NewRegistry()
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	ref, err := registry.Register("files-node", payload, "topology.png")
	require.NoError(t, err)

	c := New(WithClock(testClock), WithRegistry(registry))
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("files", node.KindFileAttachmentSet, 0, 0, node.FileAttachmentSetPayload{
			Files: []evidence.FileRef{ref},
		}),
	}}

	out, err := c.HTML(context.Background(), snap)
	require.NoError(t, err)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Contains(t, out, want)
	assert.NotContains(t, out, `src="./evidence/`, "the document must not reference external paths")
}

func TestHTMLUnresolvableEvidenceFails(t *testing.T) {
	c := New(WithClock(testClock), WithRegistry(evidence.NewRegistry()))
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("files", node.KindFileAttachmentSet, 0, 0, node.FileAttachmentSetPayload{
			Files: []evidence.FileRef{{DisplayName: "gone.png", LogicalPath: "./evidence/gone-1.png"}},
		}),
	}}

	out, err := c.HTML(context.Background(), snap)
	assert.Error(t, err)
	assert.Empty(t, out, "a failed run must not yield a partial document")
}

func TestHTMLEscapesContent(t *testing.T) {
	c := New(WithClock(testClock))
	snap := graph.Snapshot{Nodes: []node.Node{
		mkNode("code", node.KindCodeSnippet, 0, 0, node.CodeSnippetPayload{
			Title: "XSS", Content: `<script>alert(1)</script>`,
		}),
	}}

	out, err := c.HTML(context.Background(), snap)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
}
