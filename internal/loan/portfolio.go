package loan

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/model"
)

// Summary is the portfolio view of a set of loans.
type Summary struct {
	Count       int                        `json:"count"`
	ByStatus    map[model.LoanStatus]int   `json:"byStatus"`
	Outstanding map[string]decimal.Decimal `json:"outstandingByCurrency"`
	Borrowed    map[string]decimal.Decimal `json:"borrowedByCurrency"`
}

// Portfolio totals loans by currency and counts them by status. Only active
// loans count toward outstanding. Soft-deleted loans are skipped.
func Portfolio(loans []model.Loan) Summary {
	s := Summary{
		ByStatus:    make(map[model.LoanStatus]int),
		Outstanding: make(map[string]decimal.Decimal),
		Borrowed:    make(map[string]decimal.Decimal),
	}
	for _, l := range loans {
		if l.IsDeleted {
			continue
		}
		s.Count++
		s.ByStatus[l.Status]++
		s.Borrowed[l.Currency] = s.Borrowed[l.Currency].Add(l.Amount)
		if l.Status == model.LoanActive {
			s.Outstanding[l.Currency] = s.Outstanding[l.Currency].Add(l.OutstandingAmount)
		}
	}
	return s
}

// Currencies returns the currency codes in sorted order.
func (s Summary) Currencies() []string {
	codes := make([]string, 0, len(s.Borrowed))
	for c := range s.Borrowed {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
