package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/format"
	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
)

// staffFile is the YAML document read by payroll.
type staffFile struct {
	Staff []model.StaffMember `yaml:"staff"`
}

type payrollReport struct {
	Records []payroll.TaxRecord `json:"records"`
	Totals  payroll.Totals      `json:"totals"`
}

func newPayrollCommand(g *globals) *cobra.Command {
	var input string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Calculate monthly ZUS, health and PIT for each staff member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.config()
			if err != nil {
				return err
			}
			var doc staffFile
			if err := readYAML(input, &doc); err != nil {
				return err
			}
			return runPayroll(cmd.OutOrStdout(), cfg.Calculator(), doc.Staff, cfg.Business.Currency, asJSON)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "YAML file with a staff list (required)")
	_ = cmd.MarkFlagRequired("input")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runPayroll(w io.Writer, calc payroll.Calculator, staff []model.StaffMember, currency string, asJSON bool) error {
	records := calc.CalculateAll(staff)
	report := payrollReport{Records: records, Totals: payroll.Summarize(records)}
	if asJSON {
		return printJSON(w, report)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Name,
			string(r.PayrollType),
			format.Currency(r.Gross, currency),
			format.Currency(r.EmployeeZUS, currency),
			format.Currency(r.HealthInsurance, currency),
			format.Currency(r.PITAmount, currency),
			format.Currency(r.NetSalary, currency),
			format.Currency(r.EmployerCost, currency),
		})
	}
	renderTable(w, []string{"Name", "Type", "Gross", "Employee ZUS", "Health", "PIT", "Net", "Employer cost"}, rows)

	t := report.Totals
	printAmounts(w, "Payroll totals", currency, []amount{
		{"Gross", t.Gross},
		{"Employer ZUS", t.EmployerZUS},
		{"Employee ZUS", t.EmployeeZUS},
		{"Health insurance", t.HealthInsurance},
		{"PIT", t.PIT},
		{"Net", t.Net},
		{"Total employer cost", t.EmployerCost},
	})
	return nil
}
