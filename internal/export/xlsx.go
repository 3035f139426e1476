package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	MetaSheet = "Export"
	DataSheet = "Data"
)

// XLSXEncoder writes a workbook with the payload header on one sheet and the
// tabulated data on another.
type XLSXEncoder struct{}

func (XLSXEncoder) Encode(_ context.Context, w io.Writer, p Payload) error {
	table, err := Tabulate(p.Data)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MetaSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	meta := [][]string{
		{"exportedAt", p.ExportedAt.Format(time.RFC3339)},
		{"exportedBy", p.ExportedBy},
		{"module", p.Module},
		{"submodule", p.Submodule},
	}
	for _, k := range p.FilterKeys() {
		meta = append(meta, []string{"filter." + k, p.Filters[k]})
	}
	if err := writeRows(f, MetaSheet, meta); err != nil {
		return err
	}

	if _, err := f.NewSheet(DataSheet); err != nil {
		return fmt.Errorf("adding data sheet: %w", err)
	}
	rows := append([][]string{table.Header}, table.Rows...)
	if err := writeRows(f, DataSheet, rows); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cellName, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// ReadXLSX returns the rows of one sheet of a workbook.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return rows, nil
}
