package loan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/validate"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func params() Params {
	return Params{
		Lender:            "Bank Spółdzielczy",
		Amount:            dec("50000"),
		InterestRate:      dec("8.5"),
		StartDate:         date(2025, time.January, 15),
		EndDate:           date(2026, time.January, 15),
		RepaymentSchedule: model.ScheduleMonthly,
		RepaymentAmount:   dec("4350"),
	}
}

func TestNew(t *testing.T) {
	l, err := New(params())
	require.NoError(t, err)
	assert.Equal(t, model.LoanActive, l.Status)
	assert.Equal(t, "PLN", l.Currency)
	assert.True(t, l.OutstandingAmount.Equal(l.Amount))
	assert.Empty(t, l.Repayments)
}

func TestNew_Invalid(t *testing.T) {
	p := params()
	p.Lender = " "
	p.Amount = decimal.Zero
	p.EndDate = date(2024, time.January, 1)
	p.RepaymentSchedule = "weekly"

	_, err := New(p)
	require.Error(t, err)

	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Len(t, fields, 4)
	assert.Contains(t, fields, "lender")
	assert.Contains(t, fields, "amount")
	assert.Contains(t, fields, "endDate")
	assert.Contains(t, fields, "repaymentSchedule")
}

func TestRepayLifecycle(t *testing.T) {
	l, err := New(params())
	require.NoError(t, err)

	l, err = Repay(l, dec("20000"), date(2025, time.February, 15))
	require.NoError(t, err)
	assert.True(t, l.OutstandingAmount.Equal(dec("30000")))
	assert.Equal(t, model.LoanActive, l.Status)

	_, err = Repay(l, dec("30000.01"), date(2025, time.March, 15))
	assert.ErrorIs(t, err, ErrExceedsBalance)

	_, err = Repay(l, decimal.Zero, date(2025, time.March, 15))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	l, err = Repay(l, dec("30000"), date(2025, time.March, 15))
	require.NoError(t, err)
	assert.True(t, l.OutstandingAmount.IsZero())
	assert.Equal(t, model.LoanPaid, l.Status)
	assert.Len(t, l.Repayments, 2)
	assert.True(t, Repaid(l).Equal(dec("50000")))

	_, err = Repay(l, dec("1"), date(2025, time.April, 15))
	assert.ErrorIs(t, err, ErrLoanClosed)
	_, err = MarkDefaulted(l)
	assert.ErrorIs(t, err, ErrLoanClosed)
}

func TestRepay_DoesNotShareHistory(t *testing.T) {
	l, err := New(params())
	require.NoError(t, err)
	l, err = Repay(l, dec("100"), date(2025, time.February, 1))
	require.NoError(t, err)

	a, err := Repay(l, dec("1"), date(2025, time.March, 1))
	require.NoError(t, err)
	b, err := Repay(l, dec("2"), date(2025, time.March, 1))
	require.NoError(t, err)

	assert.True(t, a.Repayments[1].Amount.Equal(dec("1")))
	assert.True(t, b.Repayments[1].Amount.Equal(dec("2")))
	assert.Len(t, l.Repayments, 1)
}

func TestMarkDefaulted(t *testing.T) {
	l, err := New(params())
	require.NoError(t, err)
	l, err = MarkDefaulted(l)
	require.NoError(t, err)
	assert.Equal(t, model.LoanDefaulted, l.Status)

	_, err = Repay(l, dec("1"), time.Now())
	assert.ErrorIs(t, err, ErrLoanClosed)
}

func TestInstallments(t *testing.T) {
	tests := []struct {
		schedule model.RepaymentSchedule
		start    time.Time
		end      time.Time
		want     int
	}{
		{model.ScheduleMonthly, date(2025, 1, 15), date(2026, 1, 15), 12},
		{model.ScheduleMonthly, date(2025, 1, 15), date(2025, 3, 20), 3},
		{model.ScheduleQuarterly, date(2025, 1, 1), date(2026, 1, 1), 4},
		{model.ScheduleQuarterly, date(2025, 1, 1), date(2025, 5, 1), 2},
		{model.ScheduleYearly, date(2025, 1, 1), date(2028, 1, 1), 3},
		{model.ScheduleOneTime, date(2025, 1, 1), date(2028, 1, 1), 1},
		{model.ScheduleMonthly, date(2025, 1, 1), time.Time{}, 1},
		{model.ScheduleMonthly, date(2025, 1, 1), date(2025, 1, 1), 1},
	}
	for _, tt := range tests {
		l := model.Loan{RepaymentSchedule: tt.schedule, StartDate: tt.start, EndDate: tt.end}
		assert.Equal(t, tt.want, Installments(l), "%s %s..%s", tt.schedule, tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"))
	}
}

func TestPortfolio(t *testing.T) {
	active, _ := New(params())
	active, _ = Repay(active, dec("10000"), date(2025, 2, 1))

	eur := params()
	eur.Currency = "EUR"
	eur.Amount = dec("5000")
	eurLoan, _ := New(eur)
	eurLoan, _ = MarkDefaulted(eurLoan)

	paid, _ := New(params())
	paid, _ = Repay(paid, dec("50000"), date(2025, 2, 1))

	deleted, _ := New(params())
	deleted.IsDeleted = true

	s := Portfolio([]model.Loan{active, eurLoan, paid, deleted})
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.ByStatus[model.LoanActive])
	assert.Equal(t, 1, s.ByStatus[model.LoanDefaulted])
	assert.Equal(t, 1, s.ByStatus[model.LoanPaid])
	assert.True(t, s.Outstanding["PLN"].Equal(dec("40000")))
	assert.True(t, s.Borrowed["PLN"].Equal(dec("100000")))
	assert.True(t, s.Outstanding["EUR"].IsZero())
	assert.Equal(t, []string{"EUR", "PLN"}, s.Currencies())
}
