package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/format"
	"github.com/stagebooks-dev/stagebooks/internal/loan"
	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/workspace"
)

type repaymentEntry struct {
	Amount decimal.Decimal `yaml:"amount"`
	Date   time.Time       `yaml:"date"`
}

type loanEntry struct {
	loan.Params `yaml:",inline"`
	Repayments  []repaymentEntry `yaml:"repayments"`
	Defaulted   bool             `yaml:"defaulted"`
}

// loansFile is the YAML document read by loans summary.
type loansFile struct {
	Loans []loanEntry `yaml:"loans"`
}

type loansReport struct {
	Loans     []model.Loan `json:"loans"`
	Portfolio loan.Summary `json:"portfolio"`
}

func newLoansCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Borrowed money and its repayments",
	}
	cmd.AddCommand(newLoansSummaryCommand())
	return cmd
}

func newLoansSummaryCommand() *cobra.Command {
	var input string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Replay loans and repayments and print the portfolio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var doc loansFile
			if err := readYAML(input, &doc); err != nil {
				return err
			}
			loans, err := replayLoans(workspace.New(), doc.Loans)
			if err != nil {
				return err
			}
			return runLoansSummary(cmd.OutOrStdout(), loans, asJSON)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "YAML file with loans and repayments (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

// replayLoans records every loan and its repayments in ws, in file order.
func replayLoans(ws *workspace.Workspace, entries []loanEntry) ([]model.Loan, error) {
	for i, e := range entries {
		l, err := ws.AddLoan(e.Params)
		if err != nil {
			return nil, fmt.Errorf("loan %d (%s): %w", i+1, e.Lender, err)
		}
		for _, r := range e.Repayments {
			if l, err = ws.RepayLoan(l.ID, r.Amount, r.Date); err != nil {
				return nil, fmt.Errorf("loan %d (%s) repayment on %s: %w", i+1, e.Lender, r.Date.Format(time.DateOnly), err)
			}
		}
		if e.Defaulted {
			if _, err := ws.DefaultLoan(l.ID); err != nil {
				return nil, fmt.Errorf("loan %d (%s): %w", i+1, e.Lender, err)
			}
		}
	}
	return ws.Loans.List(), nil
}

func runLoansSummary(w io.Writer, loans []model.Loan, asJSON bool) error {
	report := loansReport{Loans: loans, Portfolio: loan.Portfolio(loans)}
	if asJSON {
		return printJSON(w, report)
	}

	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		rows = append(rows, []string{
			l.ID,
			l.Lender,
			format.Currency(l.Amount, l.Currency),
			format.Currency(l.OutstandingAmount, l.Currency),
			string(l.Status),
			string(l.RepaymentSchedule),
			strconv.Itoa(loan.Installments(l)),
		})
	}
	renderTable(w, []string{"ID", "Lender", "Amount", "Outstanding", "Status", "Schedule", "Installments"}, rows)

	p := report.Portfolio
	for _, code := range p.Currencies() {
		printAmounts(w, "Portfolio "+code, code, []amount{
			{"Borrowed", p.Borrowed[code]},
			{"Outstanding", p.Outstanding[code]},
		})
	}
	return nil
}
