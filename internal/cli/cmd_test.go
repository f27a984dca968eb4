package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathnottaken-go/internal/fetcher"
	"pathnottaken-go/internal/model"
)

const resultJSON = `{"alternate_timelines":[{"path_name":"Startup","narrative":"A leaner year."}],"avoided_tradeoffs":["Equity risk"],"hidden_costs":["Slower growth"],"irreversibility_signals":["Vesting"],"reflection_summary":"Stability over optionality."}`

type stubSimulator struct {
	payload json.RawMessage
	err     error
	last    *model.SimulationRequest
}

func (s *stubSimulator) Simulate(ctx context.Context, req *model.SimulationRequest) (json.RawMessage, error) {
	s.last = req
	return s.payload, s.err
}

func testApp(sim Simulator) *App {
	return &App{
		Simulator: sim,
		Now:       func() time.Time { return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC) },
	}
}

// execute 运行命令并返回stdout
func execute(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimulatePrintsResult(t *testing.T) {
	sim := &stubSimulator{payload: json.RawMessage(resultJSON)}

	out, err := execute(t, testApp(sim), "",
		"simulate", "--context", "Took a stable job", "--chosen", "Corporate offer",
		"--not-taken", "Startup", "--horizon", "5 years")
	require.NoError(t, err)

	assert.JSONEq(t, resultJSON, out)
	assert.Contains(t, out, "\n  \"alternate_timelines\"")
	require.NotNil(t, sim.last)
	assert.Equal(t, model.HorizonFiveYears, sim.last.TimeHorizon)
	assert.Equal(t, "Took a stable job", sim.last.DecisionContext)
}

func TestSimulateRejectsUnknownHorizon(t *testing.T) {
	sim := &stubSimulator{payload: json.RawMessage(resultJSON)}

	_, err := execute(t, testApp(sim), "",
		"simulate", "--context", "a", "--chosen", "b", "--not-taken", "c", "--horizon", "10 years")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown horizon")
	assert.Nil(t, sim.last)
}

func TestSimulateRequiresFlags(t *testing.T) {
	sim := &stubSimulator{}
	_, err := execute(t, testApp(sim), "", "simulate", "--context", "a")
	assert.Error(t, err)
	assert.Nil(t, sim.last)
}

func TestSimulatePropagatesError(t *testing.T) {
	sim := &stubSimulator{err: fetcher.ErrUpstreamUnavailable}
	_, err := execute(t, testApp(sim), "",
		"simulate", "--context", "a", "--chosen", "b", "--not-taken", "c")
	assert.ErrorIs(t, err, fetcher.ErrUpstreamUnavailable)
}

func TestSimulateWritesPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	sim := &stubSimulator{payload: json.RawMessage(resultJSON)}

	_, err := execute(t, testApp(sim), "",
		"simulate", "--context", "a", "--chosen", "b", "--not-taken", "c", "--pdf", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportFromStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")

	_, err := execute(t, testApp(nil), resultJSON, "export", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportFromFileRejectsIncompleteResult(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "result.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"hidden_costs":[]}`), 0o644))

	_, err := execute(t, testApp(nil), "", "export", "--in", in, "--out", filepath.Join(dir, "out.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be exported")
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, testApp(nil), "", "schema", "--kind", "request")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "paths_not_taken")

	out, err = execute(t, testApp(nil), "", "schema")
	require.NoError(t, err)
	var both map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &both))
	assert.Contains(t, both, "request")
	assert.Contains(t, both, "result")

	_, err = execute(t, testApp(nil), "", "schema", "--kind", "other")
	assert.Error(t, err)
}
