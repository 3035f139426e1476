// Package id assigns record ids and invoice numbers.
package id

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generator picks the id for a new record given the ids already in use.
// Implementations may keep state and are not safe for concurrent use; the
// owning store serializes calls.
type Generator interface {
	Next(existing []string) string
}

// ParseNumeric parses a positive decimal integer id.
func ParseNumeric(s string) (int64, bool) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Numeric assigns max(existing)+1. It remembers the highest id it has seen,
// so an id that was hard-deleted is never handed out again.
type Numeric struct {
	high int64
}

// NumericIDs returns a fresh numeric generator.
func NumericIDs() *Numeric { return &Numeric{} }

func (g *Numeric) Next(existing []string) string {
	g.Observe(existing)
	g.high++
	return strconv.FormatInt(g.high, 10)
}

// Observe raises the high-water mark to cover existing ids. Non-numeric ids
// are ignored.
func (g *Numeric) Observe(existing []string) {
	for _, s := range existing {
		if n, ok := ParseNumeric(s); ok && n > g.high {
			g.high = n
		}
	}
}

// UUID assigns random version 4 UUIDs.
type UUID struct{}

// UUIDs returns a UUID generator.
func UUIDs() UUID { return UUID{} }

func (UUID) Next([]string) string { return uuid.NewString() }

// Auto follows the collection: numeric ids when the first record has a
// numeric id, UUIDs otherwise. Once numeric, it stays numeric.
type Auto struct {
	numeric Numeric
}

// AutoIDs returns an auto-detecting generator.
func AutoIDs() *Auto { return &Auto{} }

func (g *Auto) Next(existing []string) string {
	if g.numeric.high > 0 {
		return g.numeric.Next(existing)
	}
	if len(existing) > 0 {
		if _, ok := ParseNumeric(existing[0]); ok {
			return g.numeric.Next(existing)
		}
	}
	return uuid.NewString()
}

// Observe records ids that were assigned outside Next. They raise the
// high-water mark when the collection is, or becomes, numeric.
func (g *Auto) Observe(ids []string) {
	if len(ids) == 0 {
		return
	}
	if _, ok := ParseNumeric(ids[0]); ok || g.numeric.high > 0 {
		g.numeric.Observe(ids)
	}
}

// FormatInvoiceNumber returns an invoice number like "FV/2025/01/001".
func FormatInvoiceNumber(year, month, seq int) string {
	return fmt.Sprintf("FV/%04d/%02d/%03d", year, month, seq)
}

// ParseInvoiceNumber parses "FV/2025/01/001" into year, month, seq.
func ParseInvoiceNumber(number string) (year, month, seq int, err error) {
	parts := strings.Split(number, "/")
	if len(parts) != 4 || parts[0] != "FV" {
		return 0, 0, 0, fmt.Errorf("invalid invoice number format: %q", number)
	}

	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in invoice number %q: %w", number, err)
	}

	month, err = strconv.Atoi(parts[2])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in invoice number %q", number)
	}

	seq, err = strconv.Atoi(parts[3])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in invoice number %q: %w", number, err)
	}

	return year, month, seq, nil
}

// NextInvoiceNumber returns the next number in the given month's series.
// Numbers that do not parse, or belong to another month, are ignored.
func NextInvoiceNumber(existing []string, year, month int) string {
	maxSeq := 0
	for _, n := range existing {
		y, m, seq, err := ParseInvoiceNumber(n)
		if err != nil || y != year || m != month {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatInvoiceNumber(year, month, maxSeq+1)
}
