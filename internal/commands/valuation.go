package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/format"
	"github.com/stagebooks-dev/stagebooks/internal/valuation"
)

func newValuationCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "valuation",
		Short: "Value the company with DCF, comparables, assets or dividends",
	}
	cmd.AddCommand(
		newDCFCommand(g),
		newCCACommand(g),
		newAssetCommand(g),
		newDDMCommand(g),
		newWeightedCommand(g),
	)
	return cmd
}

func newDCFCommand(g *globals) *cobra.Command {
	var in valuation.DCFInput
	var flows string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dcf",
		Short: "Discounted cash flow valuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			series, err := valuation.ParseSeries(flows)
			if err != nil {
				return fmt.Errorf("parsing --cash-flows: %w", err)
			}
			in.CashFlows = series

			cfg, err := g.config()
			if err != nil {
				return err
			}
			return runDCF(cmd.OutOrStdout(), in, cfg.Business.Currency, asJSON)
		},
	}

	cmd.Flags().StringVar(&flows, "cash-flows", "", "comma-separated projected cash flows (required)")
	_ = cmd.MarkFlagRequired("cash-flows")
	decimalVar(cmd, &in.DiscountRate, "discount-rate", "0.10", "discount rate as a fraction")
	decimalVar(cmd, &in.TerminalGrowthRate, "growth-rate", "0.02", "terminal growth rate as a fraction")
	decimalVar(cmd, &in.OutstandingShares, "shares", "0", "outstanding shares (required)")
	_ = cmd.MarkFlagRequired("shares")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runDCF(w io.Writer, in valuation.DCFInput, currency string, asJSON bool) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := valuation.DCF(in)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(w, res)
	}
	printAmounts(w, "Discounted cash flow", currency, []amount{
		{"Present value of cash flows", res.PresentValue},
		{"Terminal value", res.TerminalValue},
		{"Discounted terminal value", res.DiscountedTerminalValue},
		{"Enterprise value", res.EnterpriseValue},
		{"Equity value", res.EquityValue},
		{"Value per share", res.SharePrice},
	})
	return nil
}

func newCCACommand(g *globals) *cobra.Command {
	var in valuation.CCAInput
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "cca",
		Short: "Comparable company analysis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			return runCCA(cmd.OutOrStdout(), in, cfg.Business.Currency, asJSON)
		},
	}

	decimalVar(cmd, &in.Revenue, "revenue", "0", "annual revenue")
	decimalVar(cmd, &in.EBITDA, "ebitda", "0", "annual EBITDA")
	decimalVar(cmd, &in.EPS, "eps", "0", "earnings per share")
	decimalVar(cmd, &in.OutstandingShares, "shares", "0", "outstanding shares (required)")
	_ = cmd.MarkFlagRequired("shares")
	decimalVar(cmd, &in.IndustryPE, "pe", "0", "industry P/E multiple")
	decimalVar(cmd, &in.IndustryEVEBITDA, "ev-ebitda", "0", "industry EV/EBITDA multiple")
	decimalVar(cmd, &in.IndustryEVRevenue, "ev-revenue", "0", "industry EV/Revenue multiple")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runCCA(w io.Writer, in valuation.CCAInput, currency string, asJSON bool) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := valuation.CCA(in)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(w, res)
	}
	printAmounts(w, "Comparable companies", currency, []amount{
		{"P/E based price", res.PriceBased},
		{"EV/Revenue based price", res.RevenueBased},
		{"EV/EBITDA based price", res.EBITDABased},
		{"Average", res.Average()},
	})
	return nil
}

func newAssetCommand(g *globals) *cobra.Command {
	var in valuation.AssetInput
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Asset-based (book value) valuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			return runAsset(cmd.OutOrStdout(), in, cfg.Business.Currency, asJSON)
		},
	}

	decimalVar(cmd, &in.TotalAssets, "assets", "0", "total assets")
	decimalVar(cmd, &in.TotalLiabilities, "liabilities", "0", "total liabilities")
	decimalVar(cmd, &in.OutstandingShares, "shares", "0", "outstanding shares (required)")
	_ = cmd.MarkFlagRequired("shares")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runAsset(w io.Writer, in valuation.AssetInput, currency string, asJSON bool) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := valuation.AssetBased(in)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(w, res)
	}
	printAmounts(w, "Asset-based", currency, []amount{
		{"Book value", res.BookValue},
		{"Book value per share", res.SharePrice},
	})
	return nil
}

func newDDMCommand(g *globals) *cobra.Command {
	var in valuation.DDMInput
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ddm",
		Short: "Dividend discount (Gordon growth) valuation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			return runDDM(cmd.OutOrStdout(), in, cfg.Business.Currency, asJSON)
		},
	}

	decimalVar(cmd, &in.CurrentDividend, "dividend", "0", "current dividend per share")
	decimalVar(cmd, &in.DividendGrowthRate, "growth-rate", "0", "dividend growth rate as a fraction")
	decimalVar(cmd, &in.RequiredRate, "required-rate", "0", "required rate of return as a fraction")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runDDM(w io.Writer, in valuation.DDMInput, currency string, asJSON bool) error {
	if err := in.Validate(); err != nil {
		return err
	}
	price, err := valuation.DDM(in)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(w, map[string]decimal.Decimal{"sharePrice": price})
	}
	printAmounts(w, "Dividend discount", currency, []amount{
		{"Value per share", price},
	})
	return nil
}

// weightedFile is the YAML document read by valuation weighted.
type weightedFile struct {
	Methods []valuation.WeightedItem `yaml:"methods"`
}

func newWeightedCommand(g *globals) *cobra.Command {
	var input, save string

	cmd := &cobra.Command{
		Use:   "weighted",
		Short: "Combine per-share values from several methods by weight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			var doc weightedFile
			if err := readYAML(input, &doc); err != nil {
				return err
			}
			return runWeighted(cmd.OutOrStdout(), doc.Methods, cfg.Business.Currency, save, time.Now())
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "YAML file listing methods, values and weights (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&save, "save", "", "also write the valuation report as JSON to this file")

	return cmd
}

func runWeighted(w io.Writer, items []valuation.WeightedItem, currency, save string, now time.Time) error {
	if len(items) == 0 {
		return fmt.Errorf("no valuation methods in input")
	}
	res := valuation.Weighted(items)

	rows := make([][]string, len(res.Breakdown))
	for i, c := range res.Breakdown {
		rows[i] = []string{
			string(c.Method),
			format.Currency(c.Value, currency),
			c.Weight.String(),
			format.Currency(c.Contribution, currency),
		}
	}
	renderTable(w, []string{"Method", "Value", "Weight", "Contribution"}, rows)
	printAmounts(w, "Weighted valuation", currency, []amount{
		{"Weighted average", res.WeightedAverage},
	})

	if save == "" {
		return nil
	}
	f, err := os.Create(save)
	if err != nil {
		return fmt.Errorf("creating %s: %w", save, err)
	}
	defer f.Close()
	if err := printJSON(f, valuation.Report(items, now)); err != nil {
		return fmt.Errorf("writing %s: %w", save, err)
	}
	fmt.Fprintf(w, "Saved report to %s\n", save)
	return nil
}
