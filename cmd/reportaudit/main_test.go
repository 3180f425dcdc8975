package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kiranshivaraju/reportaudit/internal/config"
	"github.com/kiranshivaraju/reportaudit/internal/markdown"
	"github.com/kiranshivaraju/reportaudit/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const riskyReport = "AHU-1 tripped on freeze stat again. I jumped it out to keep the unit running."

// isolate points config and history at a temp dir and selects the mock provider.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for k, v := range map[string]string{
		"REPORTAUDIT_CONFIG": filepath.Join(dir, "missing.yaml"),
		"AI_PROVIDER":        "mock",
		"HISTORY_BACKEND":    "file",
		"HISTORY_FILE_DIR":   dir,
		"GEMINI_API_KEY":     "",
		"API_KEY":            "",
	} {
		t.Setenv(k, v)
	}
	return dir
}

type result struct {
	stdout, stderr string
	err            error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&app{logger: zap.NewNop()})
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestAuditAndHistoryLifecycle(t *testing.T) {
	dir := isolate(t)

	res := runCLI(t, "", "audit", "--json", "--technician", "Alex Smith", "--site", "Downtown Office Plaza", riskyReport)
	require.NoError(t, res.err, res.stderr)

	var item models.ReportHistoryItem
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &item))
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.Analysis.IsSafe)
	assert.Equal(t, riskyReport, item.ReportText)

	// A second process sees the persisted item.
	res = runCLI(t, "", "history", "list", "--json")
	require.NoError(t, res.err)
	var items []models.ReportHistoryItem
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &items))
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	res = runCLI(t, "", "history", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[Risk]")
	assert.Contains(t, res.stdout, item.ID)

	res = runCLI(t, "", "history", "show", item.ID)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "CRITICAL SAFETY RISK DETECTED")
	assert.Contains(t, res.stdout, "Downtown Office Plaza")

	outDir := filepath.Join(dir, "exports")
	res = runCLI(t, "", "export", item.ID, "--format", "pdf", "--out", outDir)
	require.NoError(t, res.err)
	path := strings.TrimSpace(res.stdout)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "Report_Downtown_Office_Plaza_"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	res = runCLI(t, "", "history", "clear")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "--yes")

	res = runCLI(t, "", "history", "clear", "--yes")
	require.NoError(t, res.err)

	res = runCLI(t, "", "history", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No audits yet.")
}

func TestAudit_BlankIsNoOp(t *testing.T) {
	isolate(t)

	res := runCLI(t, "   \n", "audit", "--file", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "Nothing to audit")
	assert.Empty(t, res.stdout)

	res = runCLI(t, "", "history", "list", "--json")
	require.NoError(t, res.err)
	assert.Equal(t, "[]", strings.TrimSpace(res.stdout))
}

func TestAudit_MissingCredential(t *testing.T) {
	isolate(t)
	t.Setenv("AI_PROVIDER", "gemini")

	res := runCLI(t, "", "audit", riskyReport)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "valid API key")
}

func TestAudit_ExportAlongside(t *testing.T) {
	dir := isolate(t)

	res := runCLI(t, "", "audit", "--sample", "good", "--export", "txt", "--out", dir)
	require.NoError(t, res.err, res.stderr)
	assert.Contains(t, res.stdout, "SAFETY COMPLIANT")
	assert.Contains(t, res.stderr, "Report_Memorial_Hospital___East_Wing_")
}

func TestRender_JSON(t *testing.T) {
	isolate(t)

	res := runCLI(t, "### Summary\n- **AHU-3** reset", "render", "--json")
	require.NoError(t, res.err)
	var blocks []markdown.Block
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &blocks))
	require.Len(t, blocks, 2)
	assert.Equal(t, markdown.KindHeader, blocks[0].Kind)
	assert.Equal(t, "AHU-3 reset", blocks[1].Text)
}

func TestSample(t *testing.T) {
	isolate(t)

	res := runCLI(t, "", "sample", "--kind", "risky")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Technician: Alex Smith")
	assert.Contains(t, res.stdout, "Site: Downtown Office Plaza")

	res = runCLI(t, "", "sample", "--kind", "boring")
	require.Error(t, res.err)
}

func TestInvalidConfigFailsFast(t *testing.T) {
	isolate(t)
	t.Setenv("HISTORY_BACKEND", "localstorage")

	res := runCLI(t, "", "history", "list")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "HISTORY_BACKEND")
}

func TestBuildHandler(t *testing.T) {
	isolate(t)
	cfg, err := config.Load("")
	require.NoError(t, err)

	a := &app{cfg: cfg, logger: zap.NewNop()}
	h, closeKV, err := a.buildHandler(context.Background())
	require.NoError(t, err)
	defer closeKV()

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/v1/audits", "application/json",
		strings.NewReader(`{"reportText":"Boiler 2 failed to ignite. Cleaned electrode."}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var env struct {
		Data models.ReportHistoryItem `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.True(t, env.Data.Analysis.IsSafe)
}
