// Package loan tracks borrowed money through its repayment lifecycle.
package loan

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/validate"
)

var (
	ErrLoanClosed     = errors.New("loan is not active")
	ErrInvalidAmount  = errors.New("repayment amount must be greater than 0")
	ErrExceedsBalance = errors.New("repayment exceeds outstanding amount")
)

// Params are the user-entered terms of a new loan.
type Params struct {
	Lender            string                  `json:"lender" yaml:"lender"`
	Amount            decimal.Decimal         `json:"amount" yaml:"amount"`
	Currency          string                  `json:"currency" yaml:"currency"`
	InterestRate      decimal.Decimal         `json:"interestRate" yaml:"interest_rate"`
	StartDate         time.Time               `json:"startDate" yaml:"start_date"`
	EndDate           time.Time               `json:"endDate" yaml:"end_date"`
	RepaymentSchedule model.RepaymentSchedule `json:"repaymentSchedule" yaml:"repayment_schedule"`
	RepaymentAmount   decimal.Decimal         `json:"repaymentAmount" yaml:"repayment_amount"`
}

// Validate reports every problem with p.
func (p Params) Validate() error {
	var errs validate.Errors
	errs.Required("lender", p.Lender)
	errs.Positive("amount", p.Amount)
	errs.NonNegative("interestRate", p.InterestRate)
	errs.NonNegative("repaymentAmount", p.RepaymentAmount)
	if p.StartDate.IsZero() {
		errs.Add("startDate", "is required")
	}
	if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		errs.Add("endDate", "must not be before start date")
	}
	switch p.RepaymentSchedule {
	case model.ScheduleMonthly, model.ScheduleQuarterly, model.ScheduleYearly, model.ScheduleOneTime:
	default:
		errs.Add("repaymentSchedule", "unknown schedule %q", p.RepaymentSchedule)
	}
	return errs.Err()
}

// New returns an active loan with the full amount outstanding. The id and
// timestamps are left for the store to assign.
func New(p Params) (model.Loan, error) {
	if err := p.Validate(); err != nil {
		return model.Loan{}, err
	}
	currency := p.Currency
	if currency == "" {
		currency = "PLN"
	}
	return model.Loan{
		Lender:            p.Lender,
		Amount:            p.Amount,
		Currency:          currency,
		InterestRate:      p.InterestRate,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		RepaymentSchedule: p.RepaymentSchedule,
		RepaymentAmount:   p.RepaymentAmount,
		OutstandingAmount: p.Amount,
		Status:            model.LoanActive,
	}, nil
}

// Repay records a payment of amount at the given time. The loan becomes paid
// when nothing is left outstanding.
func Repay(l model.Loan, amount decimal.Decimal, at time.Time) (model.Loan, error) {
	if l.Status != model.LoanActive {
		return l, fmt.Errorf("repaying loan %s: %w", l.ID, ErrLoanClosed)
	}
	if !amount.IsPositive() {
		return l, ErrInvalidAmount
	}
	if amount.GreaterThan(l.OutstandingAmount) {
		return l, fmt.Errorf("repaying %s of %s: %w", amount, l.OutstandingAmount, ErrExceedsBalance)
	}

	l.Repayments = append(append([]model.Repayment(nil), l.Repayments...), model.Repayment{Date: at, Amount: amount})
	l.OutstandingAmount = l.OutstandingAmount.Sub(amount)
	if l.OutstandingAmount.IsZero() {
		l.Status = model.LoanPaid
	}
	return l, nil
}

// MarkDefaulted moves an active loan to defaulted.
func MarkDefaulted(l model.Loan) (model.Loan, error) {
	if l.Status != model.LoanActive {
		return l, fmt.Errorf("defaulting loan %s: %w", l.ID, ErrLoanClosed)
	}
	l.Status = model.LoanDefaulted
	return l, nil
}

// Repaid returns the sum of recorded repayments.
func Repaid(l model.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, r := range l.Repayments {
		total = total.Add(r.Amount)
	}
	return total
}

// Installments returns how many scheduled repayments fall between the start
// and end dates. A one-time loan, or one without an end date, has one.
func Installments(l model.Loan) int {
	if l.RepaymentSchedule == model.ScheduleOneTime || l.EndDate.IsZero() {
		return 1
	}
	months := monthsBetween(l.StartDate, l.EndDate)
	var step int
	switch l.RepaymentSchedule {
	case model.ScheduleMonthly:
		step = 1
	case model.ScheduleQuarterly:
		step = 3
	case model.ScheduleYearly:
		step = 12
	default:
		return 1
	}
	n := (months + step - 1) / step
	if n < 1 {
		return 1
	}
	return n
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() > from.Day() {
		months++
	}
	return months
}
