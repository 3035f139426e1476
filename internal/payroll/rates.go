// Package payroll estimates Polish payroll taxes per contract type and the
// company-level VAT and CIT summary.
//
// Rates are illustrative approximations, not an authoritative tax table.
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// Rates holds every constant the calculator uses.
type Rates struct {
	EmployerContribution decimal.Decimal // employer-side ZUS, share of gross
	PensionRate          decimal.Decimal
	DisabilityRate       decimal.Decimal
	SicknessRate         decimal.Decimal
	HealthRate           decimal.Decimal
	TaxFreeMonthly       decimal.Decimal
	AnnualThreshold      decimal.Decimal
	LowerPIT             decimal.Decimal
	UpperPIT             decimal.Decimal
	B2BFlat              decimal.Decimal
	Ryczalt              map[model.ServiceCategory]decimal.Decimal
	ZUSTiers             map[model.ZUSTier]decimal.Decimal
}

// CITRates are the corporate income tax rates.
type CITRates struct {
	Small    decimal.Decimal
	Standard decimal.Decimal
}

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s).Shift(-2) }

// DefaultRates returns the built-in rate table.
func DefaultRates() Rates {
	return Rates{
		EmployerContribution: pct("20.48"),
		PensionRate:          pct("9.76"),
		DisabilityRate:       pct("1.5"),
		SicknessRate:         pct("2.45"),
		HealthRate:           pct("9"),
		TaxFreeMonthly:       decimal.NewFromInt(2500),
		AnnualThreshold:      decimal.NewFromInt(120000),
		LowerPIT:             pct("12"),
		UpperPIT:             pct("32"),
		B2BFlat:              pct("19"),
		Ryczalt: map[model.ServiceCategory]decimal.Decimal{
			model.ServiceIT:           pct("12"),
			model.ServiceGeneral:      pct("15"),
			model.ServiceProfessional: pct("17"),
		},
		ZUSTiers: map[model.ZUSTier]decimal.Decimal{
			model.ZUSFull:         decimal.RequireFromString("1600.27"),
			model.ZUSPreferential: decimal.RequireFromString("405.68"),
			model.ZUSMinimal:      decimal.Zero,
		},
	}
}

// DefaultCITRates returns 9% for small taxpayers and 19% otherwise.
func DefaultCITRates() CITRates {
	return CITRates{Small: pct("9"), Standard: pct("19")}
}

// EmployeeZUSRate is the combined employee-side social contribution.
func (r Rates) EmployeeZUSRate() decimal.Decimal {
	return r.PensionRate.Add(r.DisabilityRate).Add(r.SicknessRate)
}

// MonthlyThreshold is the annual PIT threshold spread over twelve months.
func (r Rates) MonthlyThreshold() decimal.Decimal {
	return r.AnnualThreshold.Div(decimal.NewFromInt(12))
}
