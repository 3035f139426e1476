package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// TaxRecord is the monthly tax breakdown for one staff member.
type TaxRecord struct {
	StaffID         string            `json:"staffId"`
	Name            string            `json:"name"`
	PayrollType     model.PayrollType `json:"payrollType"`
	Gross           decimal.Decimal   `json:"grossSalary"`
	PITRate         decimal.Decimal   `json:"pitRate"`
	EmployerCost    decimal.Decimal   `json:"employerCost"`
	EmployeeZUS     decimal.Decimal   `json:"employeeZus"`
	HealthInsurance decimal.Decimal   `json:"healthInsurance"`
	PITAmount       decimal.Decimal   `json:"pitAmount"`
	NetSalary       decimal.Decimal   `json:"netSalary"`
	TotalTaxBurden  decimal.Decimal   `json:"totalTaxBurden"`
}

// Calculator computes payroll taxes with a fixed rate table.
type Calculator struct {
	Rates Rates
	CIT   CITRates
}

// NewCalculator returns a calculator with the default rate tables.
func NewCalculator() Calculator {
	return Calculator{Rates: DefaultRates(), CIT: DefaultCITRates()}
}

// Calculate returns the tax record for s. A negative rate is treated as zero
// and an unknown payroll type yields a record with only the gross filled in.
func (c Calculator) Calculate(s model.StaffMember) TaxRecord {
	gross := decimal.Max(s.RateAmount, decimal.Zero)
	rec := TaxRecord{
		StaffID:     s.ID,
		Name:        s.Name,
		PayrollType: s.PayrollType,
		Gross:       gross,
	}

	switch s.PayrollType {
	case model.PayrollUoP:
		c.employment(&rec)
	case model.PayrollUoD:
		c.civilContract(&rec)
	case model.PayrollB2B:
		c.business(&rec, s)
	default:
		return rec
	}
	rec.TotalTaxBurden = rec.EmployerCost.Sub(rec.NetSalary)
	return rec
}

func (c Calculator) employment(rec *TaxRecord) {
	r := c.Rates
	gross := rec.Gross

	rec.EmployerCost = gross.Mul(decimal.NewFromInt(1).Add(r.EmployerContribution))
	rec.EmployeeZUS = gross.Mul(r.EmployeeZUSRate())
	rec.HealthInsurance = gross.Sub(rec.EmployeeZUS).Mul(r.HealthRate)

	taxBase := decimal.Max(decimal.Zero, gross.Sub(rec.EmployeeZUS).Sub(r.TaxFreeMonthly))
	excess := decimal.Max(decimal.Zero, gross.Sub(r.MonthlyThreshold()))
	rec.PITAmount, rec.PITRate = c.progressive(taxBase, excess)

	rec.NetSalary = gross.Sub(rec.EmployeeZUS).Sub(rec.HealthInsurance).Sub(rec.PITAmount)
}

// progressive taxes base at the lower rate except for the part that lies
// above the threshold, which is taxed at the upper rate. It returns the tax
// and the marginal rate.
func (c Calculator) progressive(base, excess decimal.Decimal) (tax, rate decimal.Decimal) {
	r := c.Rates
	upper := decimal.Min(excess, base)
	lower := base.Sub(upper)
	tax = lower.Mul(r.LowerPIT).Add(upper.Mul(r.UpperPIT))
	if upper.IsPositive() {
		return tax, r.UpperPIT
	}
	return tax, r.LowerPIT
}

func (c Calculator) civilContract(rec *TaxRecord) {
	r := c.Rates
	rec.PITRate = r.LowerPIT
	rec.HealthInsurance = rec.Gross.Mul(r.HealthRate)
	rec.PITAmount = rec.Gross.Mul(r.LowerPIT)
	rec.EmployerCost = rec.Gross
	rec.NetSalary = rec.Gross.Sub(rec.HealthInsurance).Sub(rec.PITAmount)
}

func (c Calculator) business(rec *TaxRecord, s model.StaffMember) {
	r := c.Rates
	gross := rec.Gross

	zus, ok := r.ZUSTiers[s.ZUSTier]
	if !ok {
		zus = r.ZUSTiers[model.ZUSFull]
	}
	rec.EmployeeZUS = zus
	income := decimal.Max(decimal.Zero, gross.Sub(zus))

	switch s.TaxForm {
	case model.TaxFormProgressive:
		excess := decimal.Max(decimal.Zero, income.Sub(r.MonthlyThreshold()))
		rec.PITAmount, rec.PITRate = c.progressive(income, excess)
	case model.TaxFormRyczalt:
		rate, ok := r.Ryczalt[s.ServiceCategory]
		if !ok {
			rate = r.Ryczalt[model.ServiceGeneral]
		}
		rec.PITRate = rate
		rec.PITAmount = gross.Mul(rate)
	default:
		rec.PITRate = r.B2BFlat
		rec.PITAmount = income.Mul(r.B2BFlat)
	}

	rec.EmployerCost = gross
	rec.NetSalary = gross.Sub(zus).Sub(rec.PITAmount)
}

// CalculateAll returns a record per staff member, skipping soft-deleted ones.
func (c Calculator) CalculateAll(staff []model.StaffMember) []TaxRecord {
	records := make([]TaxRecord, 0, len(staff))
	for _, s := range staff {
		if s.IsDeleted {
			continue
		}
		records = append(records, c.Calculate(s))
	}
	return records
}

// Totals aggregates tax records across the staff.
type Totals struct {
	Count           int             `json:"count"`
	Gross           decimal.Decimal `json:"totalGross"`
	EmployerZUS     decimal.Decimal `json:"totalEmployerZus"`
	EmployeeZUS     decimal.Decimal `json:"totalEmployeeZus"`
	HealthInsurance decimal.Decimal `json:"totalHealthInsurance"`
	PIT             decimal.Decimal `json:"totalPit"`
	Net             decimal.Decimal `json:"totalNet"`
	EmployerCost    decimal.Decimal `json:"totalEmployerCost"`
}

// Summarize sums records. Employer ZUS is what the employer pays on top of
// gross.
func Summarize(records []TaxRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Count++
		t.Gross = t.Gross.Add(r.Gross)
		t.EmployeeZUS = t.EmployeeZUS.Add(r.EmployeeZUS)
		t.HealthInsurance = t.HealthInsurance.Add(r.HealthInsurance)
		t.PIT = t.PIT.Add(r.PITAmount)
		t.Net = t.Net.Add(r.NetSalary)
		t.EmployerCost = t.EmployerCost.Add(r.EmployerCost)
	}
	t.EmployerZUS = t.EmployerCost.Sub(t.Gross)
	return t
}
