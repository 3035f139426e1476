package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive    LoanStatus = "active"
	LoanPaid      LoanStatus = "paid"
	LoanDefaulted LoanStatus = "defaulted"
)

// RepaymentSchedule is how often a loan is scheduled to be repaid.
type RepaymentSchedule string

const (
	ScheduleMonthly   RepaymentSchedule = "monthly"
	ScheduleQuarterly RepaymentSchedule = "quarterly"
	ScheduleYearly    RepaymentSchedule = "yearly"
	ScheduleOneTime   RepaymentSchedule = "one-time"
)

// Repayment is a single payment recorded against a loan.
type Repayment struct {
	Date   time.Time       `json:"date" yaml:"date"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
}

// Loan is borrowed money owed to a lender.
type Loan struct {
	Base              `yaml:",inline"`
	Lender            string            `json:"lender" yaml:"lender"`
	Amount            decimal.Decimal   `json:"amount" yaml:"amount"`
	Currency          string            `json:"currency" yaml:"currency"`
	InterestRate      decimal.Decimal   `json:"interestRate" yaml:"interest_rate"` // annual, percent
	StartDate         time.Time         `json:"startDate" yaml:"start_date"`
	EndDate           time.Time         `json:"endDate" yaml:"end_date"`
	RepaymentSchedule RepaymentSchedule `json:"repaymentSchedule" yaml:"repayment_schedule"`
	RepaymentAmount   decimal.Decimal   `json:"repaymentAmount" yaml:"repayment_amount"`
	OutstandingAmount decimal.Decimal   `json:"outstandingAmount" yaml:"outstanding_amount"`
	Status            LoanStatus        `json:"status" yaml:"status"`
	Repayments        []Repayment       `json:"repayments,omitempty" yaml:"repayments,omitempty"`
}
