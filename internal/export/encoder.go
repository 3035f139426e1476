package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Encoder writes a payload in one file format.
type Encoder interface {
	Encode(ctx context.Context, w io.Writer, p Payload) error
}

// JSONEncoder writes the payload as indented JSON.
type JSONEncoder struct{}

func (JSONEncoder) Encode(_ context.Context, w io.Writer, p Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// Encoders returns the encoder for each format. pdf configures the PDF
// renderer.
func Encoders(pdf PDFEncoder) map[Format]Encoder {
	return map[Format]Encoder{
		FormatJSON: JSONEncoder{},
		FormatXLSX: XLSXEncoder{},
		FormatPDF:  pdf,
	}
}
