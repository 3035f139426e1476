package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingEncoder struct{}

func (failingEncoder) Encode(context.Context, io.Writer, Payload) error {
	return errors.New("renderer unavailable")
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, PDFEncoder{}, nil)

	path, err := e.Export(context.Background(), testPayload(), FormatJSON, "Summer Fest")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "budget-costs-summer-fest-2025-07-04.json"), path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got Payload
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "budget", got.Module)

	_, err = e.Export(context.Background(), testPayload(), FormatXLSX, "")
	require.NoError(t, err)

	entries, err := ReadManifest(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "budget-costs-summer-fest-2025-07-04.json", entries[0].File)
	assert.Equal(t, FormatXLSX, entries[1].Format)
	assert.Equal(t, int64(len(raw)), entries[0].Bytes)
	assert.Equal(t, "anna@example.com", entries[0].ExportedBy)
}

func TestExporter_StampsTime(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, PDFEncoder{}, nil)
	e.Now = func() time.Time { return testTime }

	p := testPayload()
	p.ExportedAt = time.Time{}
	path, err := e.Export(context.Background(), p, FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, "budget-costs-2025-07-04.json", filepath.Base(path))
}

// closeFailer closes the real file, then reports an error as a full disk
// would.
type closeFailer struct{ *os.File }

func (c closeFailer) Close() error {
	_ = c.File.Close()
	return errors.New("no space left on device")
}

func TestExporter_CloseFailureRemovesFile(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, PDFEncoder{}, nil)
	e.create = func(path string) (io.WriteCloser, error) {
		f, err := os.Create(path)
		return closeFailer{f}, err
	}

	_, err := e.Export(context.Background(), testPayload(), FormatJSON, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no space left on device")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files, "no partial file and no manifest row")
}

func TestExporter_FailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, PDFEncoder{}, nil)
	e.Encoders[FormatPDF] = failingEncoder{}

	_, err := e.Export(context.Background(), testPayload(), FormatPDF, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renderer unavailable")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = e.Export(context.Background(), testPayload(), "csv", "")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
