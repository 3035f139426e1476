package model

import "time"

// EntityKind names a collection of records owned by one store.
type EntityKind string

const (
	KindEvent           EntityKind = "event"
	KindExpense         EntityKind = "expense"
	KindCostItem        EntityKind = "costItem"
	KindRevenueItem     EntityKind = "revenueItem"
	KindStaff           EntityKind = "staff"
	KindStaffAssignment EntityKind = "staffAssignment"
	KindInvoice         EntityKind = "invoice"
	KindLoan            EntityKind = "loan"
)

// Base carries the identity and bookkeeping fields shared by every record.
type Base struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updated_at"`
	IsDeleted bool      `json:"isDeleted" yaml:"is_deleted"`
}

// Meta returns the embedded Base so generic code can reach it through any
// record that embeds it.
func (b *Base) Meta() *Base { return b }
