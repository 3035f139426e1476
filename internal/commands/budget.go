package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/budget"
	"github.com/stagebooks-dev/stagebooks/internal/format"
	"github.com/stagebooks-dev/stagebooks/internal/model"
)

func newBudgetCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Planned versus actual event budgets",
	}
	cmd.AddCommand(newBudgetSummaryCommand(g), newBudgetCategoriesCommand())
	return cmd
}

func newBudgetSummaryCommand(g *globals) *cobra.Command {
	var input, eventID string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Roll up costs and revenues by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			b, err := budget.LoadBundle(input)
			if err != nil {
				return err
			}
			for _, problem := range b.Validate(budget.NewCategories(budget.DefaultCategories())) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", problem)
			}
			return runBudgetSummary(cmd.OutOrStdout(), b, eventID, cfg.Business.Currency, asJSON)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "budget YAML file with costs and revenues (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().StringVar(&eventID, "event", "", "only count lines for this event")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

type budgetReport struct {
	Summary  budget.Summary           `json:"summary"`
	Costs    []budget.CategorySummary `json:"costs"`
	Revenues []budget.CategorySummary `json:"revenues"`
	EventID  string                   `json:"eventId,omitempty"`
}

func runBudgetSummary(w io.Writer, b *budget.Bundle, eventID, currency string, asJSON bool) error {
	report := budgetReport{
		Summary:  budget.Summarize(b.Costs, b.Revenues, eventID),
		Costs:    budget.ByCategory(b.Costs, eventID),
		Revenues: budget.ByCategory(b.Revenues, eventID),
		EventID:  eventID,
	}
	if asJSON {
		return printJSON(w, report)
	}

	title := "Budget summary (all events)"
	if eventID != "" {
		title = fmt.Sprintf("Budget summary (event %s)", eventID)
	}
	s := report.Summary
	printAmounts(w, title, currency, []amount{
		{"Planned cost", s.TotalPlannedCost},
		{"Actual cost", s.TotalActualCost},
		{"Planned revenue", s.TotalPlannedRevenue},
		{"Actual revenue", s.TotalActualRevenue},
		{"Planned profit", s.PlannedProfit},
		{"Actual profit", s.ActualProfit},
	})
	fmt.Fprintf(w, "  %s  %s%% planned, %s%% actual\n", labelStyle.Render("Profit margin:"), s.ProfitMarginPlanned, s.ProfitMarginActual)

	cats := budget.NewCategories(budget.DefaultCategories())
	var rows [][]string
	for _, c := range report.Costs {
		rows = append(rows, categoryRow(cats, model.LineCost, c, currency, format.ClassifyCost(c.Variance)))
	}
	for _, c := range report.Revenues {
		rows = append(rows, categoryRow(cats, model.LineRevenue, c, currency, format.ClassifyRevenue(c.Variance)))
	}
	if len(rows) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No budget lines."))
		return nil
	}
	renderTable(w, []string{"Kind", "Category", "Planned", "Actual", "Variance", "%", "Lines"}, rows)
	return nil
}

func categoryRow(cats *budget.Categories, kind model.LineKind, c budget.CategorySummary, currency string, dir format.Direction) []string {
	name := c.Category
	if cat, ok := cats.Get(c.Category); ok {
		name = cat.Name
	}
	style := directionStyle(dir)
	return []string{
		string(kind),
		name,
		format.Currency(c.Planned, currency),
		format.Currency(c.Actual, currency),
		style.Render(format.Currency(c.Variance, currency)),
		style.Render(variancePercent(c.Planned, c.Actual)),
		strconv.Itoa(c.Count),
	}
}

func variancePercent(planned, actual decimal.Decimal) string {
	pct, ok := budget.VariancePercentage(planned, actual)
	if !ok {
		return "n/a"
	}
	return format.Percent(pct)
}

func newBudgetCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the budget category chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows [][]string
			for _, c := range budget.DefaultCategories() {
				rows = append(rows, []string{c.ID, c.Name, string(c.Kind), c.Description})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Kind", "Description"}, rows)
			return nil
		},
	}
}
