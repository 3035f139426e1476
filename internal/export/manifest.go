package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ManifestEntry records one file written by the exporter.
type ManifestEntry struct {
	Timestamp  time.Time
	Module     string
	Submodule  string
	Format     Format
	File       string
	ExportedBy string
	Bytes      int64
}

const manifestName = "export-log.csv"

// manifestColumns is the header row of export-log.csv, in column order.
var manifestColumns = []string{"timestamp", "module", "submodule", "format", "file", "exported_by", "bytes"}

func (e ManifestEntry) record() []string {
	return []string{
		e.Timestamp.UTC().Format(time.RFC3339),
		e.Module,
		e.Submodule,
		string(e.Format),
		e.File,
		e.ExportedBy,
		strconv.FormatInt(e.Bytes, 10),
	}
}

func parseRecord(rec []string) (ManifestEntry, error) {
	if len(rec) != len(manifestColumns) {
		return ManifestEntry{}, fmt.Errorf("want %d columns, have %d", len(manifestColumns), len(rec))
	}
	when, err := time.Parse(time.RFC3339, rec[0])
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("bad timestamp %q: %w", rec[0], err)
	}
	size, err := strconv.ParseInt(rec[6], 10, 64)
	if err != nil {
		return ManifestEntry{}, fmt.Errorf("bad byte count %q: %w", rec[6], err)
	}
	return ManifestEntry{
		Timestamp:  when,
		Module:     rec[1],
		Submodule:  rec[2],
		Format:     Format(rec[3]),
		File:       rec[4],
		ExportedBy: rec[5],
		Bytes:      size,
	}, nil
}

// AppendManifest adds entries to the export log in dir. The header row is
// written when the log is new or empty.
func AppendManifest(dir string, entries []ManifestEntry) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, manifestName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open export log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat export log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(manifestColumns); err != nil {
			return fmt.Errorf("write export log header: %w", err)
		}
	}
	for _, e := range entries {
		if err := w.Write(e.record()); err != nil {
			return fmt.Errorf("write export log entry for %s: %w", e.File, err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadManifest loads the export log in dir. A missing log yields no entries.
func ReadManifest(dir string) ([]ManifestEntry, error) {
	f, err := os.Open(filepath.Join(dir, manifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open export log: %w", err)
	}
	defer f.Close()
	return decodeManifest(f)
}

func decodeManifest(r io.Reader) ([]ManifestEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(manifestColumns)

	var out []ManifestEntry
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read export log: %w", err)
		}
		if line == 1 {
			continue
		}
		e, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("export log line %d: %w", line, err)
		}
		out = append(out, e)
	}
}
