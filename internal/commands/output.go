package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stagebooks-dev/stagebooks/internal/format"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle        = lipgloss.NewStyle().Padding(0, 1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#bac2de"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	favorableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	unfavorableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
)

func directionStyle(d format.Direction) lipgloss.Style {
	switch d {
	case format.Favorable:
		return favorableStyle
	case format.Unfavorable:
		return unfavorableStyle
	default:
		return mutedStyle
	}
}

// amount is one labelled money figure in a printed report.
type amount struct {
	label string
	value decimal.Decimal
}

func printAmounts(w io.Writer, title, currency string, rows []amount) {
	fmt.Fprintln(w, titleStyle.Render(title))
	width := 0
	for _, r := range rows {
		width = max(width, len(r.label))
	}
	for _, r := range rows {
		label := r.label + ":" + strings.Repeat(" ", width-len(r.label))
		fmt.Fprintf(w, "  %s  %s\n", labelStyle.Render(label), format.Currency(r.value, currency))
	}
}

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.Render())
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// decimalFlag lets a decimal.Decimal be bound to a command-line flag.
type decimalFlag struct{ d *decimal.Decimal }

func (f decimalFlag) String() string {
	if f.d == nil {
		return "0"
	}
	return f.d.String()
}

func (f decimalFlag) Set(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f.d = d
	return nil
}

func (decimalFlag) Type() string { return "decimal" }

func decimalVar(cmd *cobra.Command, p *decimal.Decimal, name, value, usage string) {
	*p = decimal.RequireFromString(value)
	cmd.Flags().Var(decimalFlag{p}, name, usage)
}
