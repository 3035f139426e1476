package export

import (
	"os"
	"strings"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry() ManifestEntry {
	return ManifestEntry{
		Timestamp:  testTime,
		Module:     "payroll",
		Submodule:  "records",
		Format:     FormatXLSX,
		File:       "payroll-records-2025-07-04.xlsx",
		ExportedBy: "anna@example.com",
		Bytes:      6144,
	}
}

func TestAppendManifest_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AppendManifest(dir, []ManifestEntry{testEntry()}))

	e2 := testEntry()
	e2.Module = "loans"
	e2.Format = FormatJSON
	require.NoError(t, AppendManifest(dir, []ManifestEntry{e2}))

	entries, err := ReadManifest(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "payroll", entries[0].Module)
	assert.Equal(t, "loans", entries[1].Module)
}

func TestReadManifest_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, AppendManifest(dir, []ManifestEntry{original}))

	entries, err := ReadManifest(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	got.Timestamp = original.Timestamp
	assert.Equal(t, original, got)
}

func TestReadManifest_NotFound(t *testing.T) {
	entries, err := ReadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestReadManifest_HeaderOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestName), []byte(strings.Join(manifestColumns, ",")+"\n"), 0o644))

	entries, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestParseRecord_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]string) []string
	}{
		{"short row", func([]string) []string { return []string{"a", "b"} }},
		{"bad timestamp", func(r []string) []string { r[0] = "yesterday"; return r }},
		{"bad size", func(r []string) []string { r[6] = "lots"; return r }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRecord(tt.mutate(testEntry().record()))
			assert.Error(t, err)
		})
	}
}

func TestReadManifest_CorruptRow(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AppendManifest(dir, []ManifestEntry{testEntry()}))

	f, err := os.OpenFile(filepath.Join(dir, manifestName), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("not-a-time,payroll,,json,x.json,,1\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = ReadManifest(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}
