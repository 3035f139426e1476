package model

import "github.com/shopspring/decimal"

// LineKind distinguishes cost lines from revenue lines in a budget.
type LineKind string

const (
	LineCost    LineKind = "cost"
	LineRevenue LineKind = "revenue"
)

// LineItem is one planned-vs-actual budget row. CostItem and RevenueItem
// share this shape.
type LineItem struct {
	Base               `yaml:",inline"`
	Category           string          `json:"category" yaml:"category"`
	Subcategory        string          `json:"subcategory" yaml:"subcategory"`
	Description        string          `json:"description" yaml:"description"`
	Event              string          `json:"event" yaml:"event"`
	Planned            decimal.Decimal `json:"planned" yaml:"planned"`
	Actual             decimal.Decimal `json:"actual" yaml:"actual"`
	Variance           decimal.Decimal `json:"variance" yaml:"variance"`
	VariancePercentage decimal.Decimal `json:"variancePercentage" yaml:"variance_percentage"`
	Notes              string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	VATPercent         decimal.Decimal `json:"vatPercent,omitempty" yaml:"vat_percent,omitempty"`
}

// CostItem is a budget line on the cost side.
type CostItem = LineItem

// RevenueItem is a budget line on the revenue side.
type RevenueItem = LineItem
