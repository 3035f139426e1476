package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebooks-dev/stagebooks/internal/export"
)

const costsJSON = `[
  {"name": "Venue", "amount": 1200.50},
  {"name": "Catering", "amount": 300}
]`

func TestExport_JSON(t *testing.T) {
	input := writeFile(t, "costs.json", costsJSON)
	dir := t.TempDir()

	out, err := runStagebooks(t, "export",
		"--module", "budget", "--submodule", "costs", "--event", "Summer Fest",
		"--format", "json", "--input", input, "--dir", dir,
		"--filter", "status=approved")
	require.NoError(t, err, out)

	name := export.FileName("budget", "costs", "Summer Fest", time.Now(), export.FormatJSON)
	assert.Contains(t, out, name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	var got struct {
		ExportedBy string            `json:"exportedBy"`
		Module     string            `json:"module"`
		Submodule  string            `json:"submodule"`
		Filters    map[string]string `json:"filters"`
		Data       []map[string]any  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "stagebooks", got.ExportedBy)
	assert.Equal(t, "budget", got.Module)
	assert.Equal(t, "costs", got.Submodule)
	assert.Equal(t, map[string]string{"status": "approved"}, got.Filters)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "Venue", got.Data[0]["name"])
	assert.Contains(t, string(data), "1200.50", "numbers are kept as written")
}

func TestExport_XLSX(t *testing.T) {
	input := writeFile(t, "costs.json", costsJSON)
	dir := t.TempDir()

	out, err := runStagebooks(t, "export", "--module", "budget", "--format", "xlsx", "--input", input, "--dir", dir)
	require.NoError(t, err, out)

	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	require.Len(t, matches, 1, out)
	f, err := os.Open(matches[0])
	require.NoError(t, err)
	defer f.Close()

	rows, err := export.ReadXLSX(f, export.DataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"amount", "name"}, rows[0])
	assert.Equal(t, "Venue", rows[1][1])
}

func TestExport_Log(t *testing.T) {
	input := writeFile(t, "costs.json", costsJSON)
	dir := t.TempDir()

	for _, module := range []string{"budget", "payroll"} {
		out, err := runStagebooks(t, "export", "--module", module, "--input", input, "--dir", dir)
		require.NoError(t, err, out)
	}

	entries, err := export.ReadManifest(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	out, err := runStagebooks(t, "export", "log", "--dir", dir)
	require.NoError(t, err, out)
	assert.Contains(t, out, entries[0].File)
	assert.Contains(t, out, entries[1].File)
}

func TestExport_LogEmpty(t *testing.T) {
	out, err := runStagebooks(t, "export", "log", "--dir", t.TempDir())
	require.NoError(t, err, out)
	assert.Contains(t, out, "No exports recorded")
}

func TestExport_Errors(t *testing.T) {
	input := writeFile(t, "costs.json", costsJSON)
	bad := writeFile(t, "bad.json", "{not json")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown format", []string{"--module", "budget", "--format", "docx", "--input", input}, "unknown export format"},
		{"missing module", []string{"--input", input}, "module"},
		{"bad json", []string{"--module", "budget", "--input", bad}, "parsing export data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"export", "--dir", t.TempDir()}, tt.args...)
			out, err := runStagebooks(t, args...)
			require.Error(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}
