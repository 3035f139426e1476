package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Exporter writes payloads into a directory and records each file in the
// manifest.
type Exporter struct {
	Dir      string
	Encoders map[Format]Encoder
	Now      func() time.Time
	Logger   *slog.Logger

	create func(path string) (io.WriteCloser, error)
}

// NewExporter returns an exporter writing to dir with the default encoders.
func NewExporter(dir string, pdf PDFEncoder, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{Dir: dir, Encoders: Encoders(pdf), Now: time.Now, Logger: logger}
}

func createFile(path string) (io.WriteCloser, error) { return os.Create(path) }

// Export encodes p as format and returns the path written. ExportedAt is set
// to now when zero. eventSlug, when set, becomes part of the file name.
func (e *Exporter) Export(ctx context.Context, p Payload, format Format, eventSlug string) (string, error) {
	enc, ok := e.Encoders[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if p.ExportedAt.IsZero() {
		p.ExportedAt = e.Now()
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	name := FileName(p.Module, p.Submodule, eventSlug, p.ExportedAt, format)
	path := filepath.Join(e.Dir, name)

	if err := e.write(ctx, path, enc, p); err != nil {
		return "", fmt.Errorf("exporting %s: %w", name, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", name, err)
	}
	entry := ManifestEntry{
		Timestamp:  p.ExportedAt,
		Module:     p.Module,
		Submodule:  p.Submodule,
		Format:     format,
		File:       name,
		ExportedBy: p.ExportedBy,
		Bytes:      info.Size(),
	}
	if err := AppendManifest(e.Dir, []ManifestEntry{entry}); err != nil {
		return "", err
	}

	e.Logger.Info("export written",
		slog.String("file", name),
		slog.String("format", string(format)),
		slog.Int64("bytes", info.Size()),
	)
	return path, nil
}

// write encodes p into path. On any failure the partial file is removed.
func (e *Exporter) write(ctx context.Context, path string, enc Encoder, p Payload) error {
	create := e.create
	if create == nil {
		create = createFile
	}
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := enc.Encode(ctx, f, p); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
