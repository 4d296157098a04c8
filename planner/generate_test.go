package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdk "github.com/reportforge/sdk"
	"github.com/reportforge/sdk/evidence"
	"github.com/reportforge/sdk/node"
)

// fakeClient records the last call and plays back a canned response.
type fakeClient struct {
	response    string
	err         error
	prompt      string
	temperature float64
	calls       int
}

func (f *fakeClient) Complete(_ context.Context, prompt string, temperature float64) (string, error) {
	f.calls++
	f.prompt = prompt
	f.temperature = temperature
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const planResponse = `[
  {"id":"TC-001","testCase":"Approve a transfer created by the same account","category":"Authorization Bypass","url":"","exploited":"No","status":"Not Applicable","tester":""},
  {"id":"TC-002","testCase":"Replay the approval request for a modified amount","category":"Data Tampering (TOCTOU)","url":"","exploited":"No","status":"Not Applicable","tester":""}
]`

func TestGenerate(t *testing.T) {
	client := &fakeClient{response: planResponse}

	rows, err := Generate(context.Background(), client, Request{
		Scope:       "payments API",
		MakerRole:   "teller",
		CheckerRole: "branch manager",
		Action:      "wire transfer",
		Intensity:   IntensityFocused,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "TC-001", rows[0].ID)
	assert.Equal(t, "Approve a transfer created by the same account", rows[0].Description)
	assert.Equal(t, "Authorization Bypass", rows[0].Category)
	assert.Equal(t, node.ExploitedNo, rows[0].Exploited)
	assert.Equal(t, node.StatusNotApplicable, rows[0].Status)
	assert.Equal(t, []evidence.FileRef{}, rows[0].Evidence, "generated rows start without evidence")

	assert.Contains(t, client.prompt, "teller")
	assert.Contains(t, client.prompt, "branch manager")
	assert.Contains(t, client.prompt, "wire transfer")
	assert.Contains(t, client.prompt, "payments API")
	assert.Contains(t, client.prompt, `starting with "TC-001"`)
}

func TestGenerateTemperatureByIntensity(t *testing.T) {
	client := &fakeClient{response: "[]"}

	_, err := Generate(context.Background(), client, Request{Intensity: IntensityFocused})
	require.NoError(t, err)
	assert.Equal(t, 0.3, client.temperature)

	_, err = Generate(context.Background(), client, Request{Intensity: IntensityComprehensive})
	require.NoError(t, err)
	assert.Equal(t, 0.8, client.temperature)

	// Unknown intensity degrades to focused rather than failing.
	_, err = Generate(context.Background(), client, Request{Intensity: Intensity("max")})
	require.NoError(t, err)
	assert.Equal(t, 0.3, client.temperature)
}

func TestGenerateStripsCodeFences(t *testing.T) {
	client := &fakeClient{response: "```json\n" + planResponse + "\n```"}

	rows, err := Generate(context.Background(), client, Request{Intensity: IntensityFocused})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGenerateMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "Here are your test cases: TC-001 ..."},
		{"object", `{"id":"TC-001"}`},
		{"truncated", `[{"id":"TC-001"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response}
			rows, err := Generate(context.Background(), client, Request{Intensity: IntensityFocused})
			assert.ErrorIs(t, err, sdk.ErrMalformedResponse)
			assert.Nil(t, rows, "a rejected response yields no partial rows")
		})
	}
}

func TestGenerateClientError(t *testing.T) {
	wantErr := errors.New("api: overloaded")
	client := &fakeClient{err: wantErr}

	_, err := Generate(context.Background(), client, Request{Intensity: IntensityFocused})
	assert.ErrorIs(t, err, wantErr)
}

func TestGenerateNormalizesStates(t *testing.T) {
	client := &fakeClient{response: `[
		{"id":"TC-001","testCase":"t","category":"c","exploited":"definitely","status":"maybe"}
	]`}

	rows, err := Generate(context.Background(), client, Request{Intensity: IntensityFocused})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, node.ExploitedNo, rows[0].Exploited, "unrecognized exploited state falls back to the default")
	assert.Equal(t, node.StatusNotApplicable, rows[0].Status)
}

func TestMergeRowsAppends(t *testing.T) {
	existing := []node.TestCaseRow{
		{ID: "TC-001", Description: "manual finding", Evidence: []evidence.FileRef{{LogicalPath: "./evidence/TC-001-evidence-1.png"}}},
	}
	generated := []node.TestCaseRow{
		{ID: "TC-002", Description: "generated", Evidence: []evidence.FileRef{}},
	}

	merged := MergeRows(existing, generated)
	require.Len(t, merged, 2)
	assert.Equal(t, "TC-001", merged[0].ID)
	assert.Equal(t, "TC-002", merged[1].ID)
	assert.Len(t, merged[0].Evidence, 1, "existing evidence survives the merge")

	// The merge is a pure function over copies.
	merged[0].ID = "changed"
	merged[0].Evidence[0].LogicalPath = "changed"
	assert.Equal(t, "TC-001", existing[0].ID)
	assert.Equal(t, "./evidence/TC-001-evidence-1.png", existing[0].Evidence[0].LogicalPath)
}

func TestMergeRowsEmptyInputs(t *testing.T) {
	assert.Empty(t, MergeRows(nil, nil))
	merged := MergeRows(nil, []node.TestCaseRow{{ID: "TC-001"}})
	assert.Len(t, merged, 1)
}
