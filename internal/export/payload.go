// Package export serializes module data to JSON, XLSX and PDF files and
// keeps a manifest of what was written.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Payload is the envelope every export carries.
type Payload struct {
	ExportedAt time.Time         `json:"exportedAt"`
	ExportedBy string            `json:"exportedBy"`
	Module     string            `json:"module"`
	Submodule  string            `json:"submodule"`
	Filters    map[string]string `json:"filters"`
	Data       any               `json:"data"`
}

// MarshalJSON writes filters as {} when there are none.
func (p Payload) MarshalJSON() ([]byte, error) {
	type envelope Payload
	if p.Filters == nil {
		p.Filters = map[string]string{}
	}
	return json.Marshal(envelope(p))
}

// FilterKeys returns the payload's filter names in sorted order.
func (p Payload) FilterKeys() []string {
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FileName returns "{module}-{submodule}-{eventSlug}-{YYYY-MM-DD}.{ext}".
// Empty parts are left out.
func FileName(module, submodule, eventSlug string, at time.Time, format Format) string {
	var parts []string
	for _, p := range []string{module, submodule, eventSlug} {
		if s := Slugify(p); s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, at.Format("2006-01-02"))
	return strings.Join(parts, "-") + "." + string(format)
}

// Slugify lowercases s and collapses every run of characters other than
// ASCII letters and digits into a single "-".
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
