package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/export"
	"github.com/stagebooks-dev/stagebooks/internal/logging"
)

type exportOptions struct {
	module    string
	submodule string
	event     string
	format    string
	input     string
	dir       string
	chromium  string
	filters   map[string]string
}

func newExportCommand(g *globals) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write module data to a JSON, XLSX or PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			if opts.dir == "" {
				opts.dir = cfg.Export.Dir
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			exporter := export.NewExporter(opts.dir, export.PDFEncoder{
				ChromiumPath: opts.chromium,
				Timeout:      cfg.Export.PDFTimeout,
			}, logger)
			return runExport(cmd, exporter, opts, cfg.Business.ExportedBy)
		},
	}

	cmd.Flags().StringVar(&opts.module, "module", "", "module the data belongs to (required)")
	_ = cmd.MarkFlagRequired("module")
	cmd.Flags().StringVar(&opts.submodule, "submodule", "", "submodule, part of the file name")
	cmd.Flags().StringVar(&opts.event, "event", "", "event slug, part of the file name")
	cmd.Flags().StringVar(&opts.format, "format", "json", "json, xlsx or pdf")
	cmd.Flags().StringVar(&opts.input, "input", "-", "JSON file with the data to export, - for stdin")
	cmd.Flags().StringVar(&opts.dir, "dir", "", "export directory (default from config)")
	cmd.Flags().StringVar(&opts.chromium, "chromium", "", "Chromium binary for PDF export")
	cmd.Flags().StringToStringVar(&opts.filters, "filter", nil, "filter recorded in the export, key=value")

	cmd.AddCommand(newExportLogCommand(g))

	return cmd
}

func runExport(cmd *cobra.Command, exporter *export.Exporter, opts exportOptions, exportedBy string) error {
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	data, err := readData(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}

	path, err := exporter.Export(cmd.Context(), export.Payload{
		ExportedBy: exportedBy,
		Module:     opts.module,
		Submodule:  opts.submodule,
		Filters:    opts.filters,
		Data:       data,
	}, format, opts.event)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
	return nil
}

// readData decodes a JSON document, keeping numbers as written.
func readData(stdin io.Reader, path string) (any, error) {
	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading export data: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing export data: %w", err)
	}
	return data, nil
}

func newExportLogCommand(g *globals) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List the files recorded in the export manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				cfg, err := g.config()
				if err != nil {
					return err
				}
				dir = cfg.Export.Dir
			}
			entries, err := export.ReadManifest(dir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("No exports recorded."))
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{
					e.Timestamp.Format(time.DateTime),
					e.Module,
					e.Submodule,
					string(e.Format),
					e.File,
					strconv.FormatInt(e.Bytes, 10),
				}
			}
			renderTable(cmd.OutOrStdout(), []string{"When", "Module", "Submodule", "Format", "File", "Bytes"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "export directory (default from config)")

	return cmd
}
