package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a produced show, festival or conference.
type Event struct {
	Base      `yaml:",inline"`
	Name      string    `json:"name" yaml:"name"`
	Slug      string    `json:"slug" yaml:"slug"`
	Venue     string    `json:"venue" yaml:"venue"`
	StartDate time.Time `json:"startDate" yaml:"start_date"`
	EndDate   time.Time `json:"endDate" yaml:"end_date"`
}

// Expense is money spent, optionally attributed to an event by id.
type Expense struct {
	Base        `yaml:",inline"`
	EventID     string          `json:"eventId,omitempty" yaml:"event_id,omitempty"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
	Currency    string          `json:"currency" yaml:"currency"`
	VATPercent  decimal.Decimal `json:"vatPercent" yaml:"vat_percent"`
	Date        time.Time       `json:"date" yaml:"date"`
}

// InvoiceDirection says whether an invoice is money owed to us or by us.
type InvoiceDirection string

const (
	InvoiceReceivable InvoiceDirection = "receivable" // issued, VAT collected
	InvoicePayable    InvoiceDirection = "payable"    // received, VAT deductible
)

// Invoice is a VAT invoice issued or received.
type Invoice struct {
	Base       `yaml:",inline"`
	Number     string           `json:"number" yaml:"number"`
	Direction  InvoiceDirection `json:"direction" yaml:"direction"`
	Party      string           `json:"party" yaml:"party"`
	EventID    string           `json:"eventId,omitempty" yaml:"event_id,omitempty"`
	Net        decimal.Decimal  `json:"net" yaml:"net"`
	VATPercent decimal.Decimal  `json:"vatPercent" yaml:"vat_percent"`
	IssueDate  time.Time        `json:"issueDate" yaml:"issue_date"`
	DueDate    time.Time        `json:"dueDate" yaml:"due_date"`
}

// VAT returns the VAT amount on the invoice's net value.
func (i Invoice) VAT() decimal.Decimal {
	return i.Net.Mul(i.VATPercent).Div(decimal.NewFromInt(100))
}

// Gross returns net plus VAT.
func (i Invoice) Gross() decimal.Decimal {
	return i.Net.Add(i.VAT())
}
