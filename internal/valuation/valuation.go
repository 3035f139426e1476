// Package valuation implements the closed-form company valuation methods:
// discounted cash flow, comparable companies, asset-based and dividend
// discount, plus a weighted combination of their results.
package valuation

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/validate"
)

var (
	// ErrRateNotAboveGrowth means a discount (or required) rate does not exceed
	// the growth rate, so the Gordon growth term is undefined or negative.
	ErrRateNotAboveGrowth = errors.New("rate must exceed growth rate")
	// ErrNoShares means the outstanding share count is not positive.
	ErrNoShares = errors.New("outstanding shares must be greater than 0")
	// ErrNoCashFlows means the DCF series is empty.
	ErrNoCashFlows = errors.New("at least one cash flow is required")
)

var one = decimal.NewFromInt(1)

// DCFInput holds the assumptions for a discounted cash flow valuation.
type DCFInput struct {
	CashFlows          []decimal.Decimal `json:"cashFlows" yaml:"cash_flows"`
	DiscountRate       decimal.Decimal   `json:"discountRate" yaml:"discount_rate"`
	TerminalGrowthRate decimal.Decimal   `json:"terminalGrowthRate" yaml:"terminal_growth_rate"`
	OutstandingShares  decimal.Decimal   `json:"outstandingShares" yaml:"outstanding_shares"`
}

// DCFResult holds the outputs of DCF.
type DCFResult struct {
	PresentValue            decimal.Decimal `json:"presentValue"`
	TerminalValue           decimal.Decimal `json:"terminalValue"`
	DiscountedTerminalValue decimal.Decimal `json:"discountedTerminalValue"`
	EnterpriseValue         decimal.Decimal `json:"enterpriseValue"`
	EquityValue             decimal.Decimal `json:"equityValue"`
	SharePrice              decimal.Decimal `json:"sharePrice"`
}

// Validate reports every problem with in.
func (in DCFInput) Validate() error {
	var errs validate.Errors
	if len(in.CashFlows) == 0 {
		errs.Add("cashFlows", "at least one cash flow is required")
	}
	errs.Positive("outstandingShares", in.OutstandingShares)
	if in.DiscountRate.LessThanOrEqual(in.TerminalGrowthRate) {
		errs.Add("discountRate", "must exceed terminal growth rate %s", in.TerminalGrowthRate)
	}
	return errs.Err()
}

// DCF discounts each cash flow at (1+r)^i, adds a Gordon growth terminal
// value on the last flow discounted by (1+r)^N, and divides by the share
// count. Net debt is taken as zero, so equity value equals enterprise value.
func DCF(in DCFInput) (DCFResult, error) {
	if len(in.CashFlows) == 0 {
		return DCFResult{}, ErrNoCashFlows
	}
	if !in.OutstandingShares.IsPositive() {
		return DCFResult{}, ErrNoShares
	}
	if in.DiscountRate.LessThanOrEqual(in.TerminalGrowthRate) {
		return DCFResult{}, ErrRateNotAboveGrowth
	}

	growth := one.Add(in.DiscountRate)
	factor := one
	pv := decimal.Zero
	for _, cf := range in.CashFlows {
		factor = factor.Mul(growth)
		pv = pv.Add(cf.Div(factor))
	}

	last := in.CashFlows[len(in.CashFlows)-1]
	tv := last.Mul(one.Add(in.TerminalGrowthRate)).Div(in.DiscountRate.Sub(in.TerminalGrowthRate))
	discountedTV := tv.Div(factor)

	ev := pv.Add(discountedTV)
	return DCFResult{
		PresentValue:            pv,
		TerminalValue:           tv,
		DiscountedTerminalValue: discountedTV,
		EnterpriseValue:         ev,
		EquityValue:             ev,
		SharePrice:              ev.Div(in.OutstandingShares),
	}, nil
}

// CCAInput holds the target's metrics and the industry multiples it is
// compared against.
type CCAInput struct {
	Revenue           decimal.Decimal `json:"revenue" yaml:"revenue"`
	EBITDA            decimal.Decimal `json:"ebitda" yaml:"ebitda"`
	EPS               decimal.Decimal `json:"eps" yaml:"eps"`
	OutstandingShares decimal.Decimal `json:"outstandingShares" yaml:"outstanding_shares"`
	IndustryPE        decimal.Decimal `json:"industryPE" yaml:"industry_pe"`
	IndustryEVEBITDA  decimal.Decimal `json:"industryEvEbitda" yaml:"industry_ev_ebitda"`
	IndustryEVRevenue decimal.Decimal `json:"industryEvRevenue" yaml:"industry_ev_revenue"`
}

// CCAResult holds the three per-share prices implied by the multiples.
type CCAResult struct {
	PriceBased   decimal.Decimal `json:"priceBased"`
	RevenueBased decimal.Decimal `json:"revenueBased"`
	EBITDABased  decimal.Decimal `json:"ebitdaBased"`
}

// Average returns the mean of the three implied prices.
func (r CCAResult) Average() decimal.Decimal {
	return decimal.Avg(r.PriceBased, r.RevenueBased, r.EBITDABased)
}

// Validate reports every problem with in.
func (in CCAInput) Validate() error {
	var errs validate.Errors
	errs.Positive("outstandingShares", in.OutstandingShares)
	errs.NonNegative("industryPE", in.IndustryPE)
	errs.NonNegative("industryEvEbitda", in.IndustryEVEBITDA)
	errs.NonNegative("industryEvRevenue", in.IndustryEVRevenue)
	return errs.Err()
}

// CCA prices the company from industry P/E, EV/Revenue and EV/EBITDA.
func CCA(in CCAInput) (CCAResult, error) {
	if !in.OutstandingShares.IsPositive() {
		return CCAResult{}, ErrNoShares
	}
	return CCAResult{
		PriceBased:   in.EPS.Mul(in.IndustryPE),
		RevenueBased: in.Revenue.Mul(in.IndustryEVRevenue).Div(in.OutstandingShares),
		EBITDABased:  in.EBITDA.Mul(in.IndustryEVEBITDA).Div(in.OutstandingShares),
	}, nil
}

// AssetInput holds the balance-sheet figures for an asset-based valuation.
type AssetInput struct {
	TotalAssets       decimal.Decimal `json:"totalAssets" yaml:"total_assets"`
	TotalLiabilities  decimal.Decimal `json:"totalLiabilities" yaml:"total_liabilities"`
	OutstandingShares decimal.Decimal `json:"outstandingShares" yaml:"outstanding_shares"`
}

// AssetResult holds book value and book value per share.
type AssetResult struct {
	BookValue  decimal.Decimal `json:"bookValue"`
	SharePrice decimal.Decimal `json:"sharePrice"`
}

// Validate reports every problem with in.
func (in AssetInput) Validate() error {
	var errs validate.Errors
	errs.NonNegative("totalAssets", in.TotalAssets)
	errs.NonNegative("totalLiabilities", in.TotalLiabilities)
	errs.Positive("outstandingShares", in.OutstandingShares)
	return errs.Err()
}

// AssetBased values equity at assets minus liabilities.
func AssetBased(in AssetInput) (AssetResult, error) {
	if !in.OutstandingShares.IsPositive() {
		return AssetResult{}, ErrNoShares
	}
	book := in.TotalAssets.Sub(in.TotalLiabilities)
	return AssetResult{
		BookValue:  book,
		SharePrice: book.Div(in.OutstandingShares),
	}, nil
}

// DDMInput holds the dividend assumptions for the Gordon growth model.
type DDMInput struct {
	CurrentDividend    decimal.Decimal `json:"currentDividend" yaml:"current_dividend"`
	DividendGrowthRate decimal.Decimal `json:"dividendGrowthRate" yaml:"dividend_growth_rate"`
	RequiredRate       decimal.Decimal `json:"requiredRate" yaml:"required_rate"`
}

// Validate reports every problem with in.
func (in DDMInput) Validate() error {
	var errs validate.Errors
	errs.NonNegative("currentDividend", in.CurrentDividend)
	if in.RequiredRate.LessThanOrEqual(in.DividendGrowthRate) {
		errs.Add("requiredRate", "must exceed dividend growth rate %s", in.DividendGrowthRate)
	}
	return errs.Err()
}

// DDM returns D0 * (1+g) / (r-g).
func DDM(in DDMInput) (decimal.Decimal, error) {
	if in.RequiredRate.LessThanOrEqual(in.DividendGrowthRate) {
		return decimal.Zero, ErrRateNotAboveGrowth
	}
	next := in.CurrentDividend.Mul(one.Add(in.DividendGrowthRate))
	return next.Div(in.RequiredRate.Sub(in.DividendGrowthRate)), nil
}
