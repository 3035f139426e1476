package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// TaxSummaryResult is the company-level VAT and CIT position.
type TaxSummaryResult struct {
	VATReceivable decimal.Decimal `json:"vatReceivable"`
	VATPayable    decimal.Decimal `json:"vatPayable"`
	VATDue        decimal.Decimal `json:"vatDue"`
	Profit        decimal.Decimal `json:"totalProfit"`
	SmallBusiness bool            `json:"smallBusiness"`
	CITRate       decimal.Decimal `json:"citRate"`
	CIT           decimal.Decimal `json:"cit"`
}

// TaxSummary computes VAT due from invoices and CIT on profit. VAT collected
// on receivable invoices minus VAT deductible on payable invoices is due; a
// negative value is a refund. A loss carries no CIT.
func (c Calculator) TaxSummary(invoices []model.Invoice, profit decimal.Decimal, small bool) TaxSummaryResult {
	res := TaxSummaryResult{Profit: profit, SmallBusiness: small}
	for _, inv := range invoices {
		if inv.IsDeleted {
			continue
		}
		switch inv.Direction {
		case model.InvoiceReceivable:
			res.VATReceivable = res.VATReceivable.Add(inv.VAT())
		case model.InvoicePayable:
			res.VATPayable = res.VATPayable.Add(inv.VAT())
		}
	}
	res.VATDue = res.VATReceivable.Sub(res.VATPayable)

	res.CITRate = c.CIT.Standard
	if small {
		res.CITRate = c.CIT.Small
	}
	res.CIT = decimal.Max(decimal.Zero, profit).Mul(res.CITRate)
	return res
}
