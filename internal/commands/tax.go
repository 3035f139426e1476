package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/format"
	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
)

// taxFile is the YAML document read by tax summary. SmallBusiness falls back
// to the configured flag when absent.
type taxFile struct {
	Invoices      []model.Invoice `yaml:"invoices"`
	TotalProfit   decimal.Decimal `yaml:"total_profit"`
	SmallBusiness *bool           `yaml:"small_business"`
}

func newTaxCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Company VAT and CIT",
	}
	cmd.AddCommand(newTaxSummaryCommand(g))
	return cmd
}

func newTaxSummaryCommand(g *globals) *cobra.Command {
	var input string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "VAT due from invoices and CIT on profit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			var doc taxFile
			if err := readYAML(input, &doc); err != nil {
				return err
			}
			small := cfg.Tax.SmallBusiness
			if doc.SmallBusiness != nil {
				small = *doc.SmallBusiness
			}
			res := cfg.Calculator().TaxSummary(doc.Invoices, doc.TotalProfit, small)
			return runTaxSummary(cmd.OutOrStdout(), res, cfg.Business.Currency, asJSON)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "YAML file with invoices and total profit (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runTaxSummary(w io.Writer, res payroll.TaxSummaryResult, currency string, asJSON bool) error {
	if asJSON {
		return printJSON(w, res)
	}
	vatLabel := "VAT due"
	if res.VATDue.IsNegative() {
		vatLabel = "VAT refund"
	}
	printAmounts(w, "Tax summary", currency, []amount{
		{"VAT collected", res.VATReceivable},
		{"VAT deductible", res.VATPayable},
		{vatLabel, res.VATDue.Abs()},
		{"Profit", res.Profit},
		{"CIT", res.CIT},
	})
	fmt.Fprintf(w, "  %s  %s\n", labelStyle.Render("CIT rate:"), format.Percent(res.CITRate.Shift(2)))
	return nil
}
