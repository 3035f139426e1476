// Package workspace holds one store per entity kind on a shared change bus,
// plus the cross-entity operations built on them.
package workspace

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stagebooks-dev/stagebooks/internal/bus"
	"github.com/stagebooks-dev/stagebooks/internal/id"
	"github.com/stagebooks-dev/stagebooks/internal/loan"
	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
	"github.com/stagebooks-dev/stagebooks/internal/store"
)

// Workspace is the in-memory books of one company.
type Workspace struct {
	Bus          *bus.Bus
	Events       *store.Store[model.Event, *model.Event]
	Expenses     *store.Store[model.Expense, *model.Expense]
	Staff        *store.Store[model.StaffMember, *model.StaffMember]
	Assignments  *store.Store[model.StaffAssignment, *model.StaffAssignment]
	CostItems    *store.Store[model.CostItem, *model.CostItem]
	RevenueItems *store.Store[model.RevenueItem, *model.RevenueItem]
	Invoices     *store.Store[model.Invoice, *model.Invoice]
	Loans        *store.Store[model.Loan, *model.Loan]

	Budgets *BudgetView

	now    func() time.Time
	loanMu sync.Mutex
}

// Option configures a Workspace.
type Option func(*settings)

type settings struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock sets the time source for every store.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLogger sets the logger change notifications are written to.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// New returns an empty workspace. Staff and loans use numeric ids; the other
// kinds let the store decide.
func New(opts ...Option) *Workspace {
	cfg := settings{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	b := bus.New(bus.DefaultDependencies(), cfg.logger)
	common := []store.Option{store.WithBus(b), store.WithClock(cfg.now)}
	numeric := func() []store.Option {
		return append([]store.Option{store.WithIDs(id.NumericIDs())}, common...)
	}

	w := &Workspace{
		Bus:          b,
		Events:       store.New[model.Event](model.KindEvent, common...),
		Expenses:     store.New[model.Expense](model.KindExpense, common...),
		Staff:        store.New[model.StaffMember](model.KindStaff, numeric()...),
		Assignments:  store.New[model.StaffAssignment](model.KindStaffAssignment, common...),
		CostItems:    store.New[model.CostItem](model.KindCostItem, common...),
		RevenueItems: store.New[model.RevenueItem](model.KindRevenueItem, common...),
		Invoices:     store.New[model.Invoice](model.KindInvoice, common...),
		Loans:        store.New[model.Loan](model.KindLoan, numeric()...),
		now:          cfg.now,
	}
	w.Budgets = newBudgetView(w)
	return w
}

// AddInvoice stores inv, numbering it in its issue month's series when it
// has no number.
func (w *Workspace) AddInvoice(inv model.Invoice) model.Invoice {
	if inv.Number == "" {
		issued := inv.IssueDate
		if issued.IsZero() {
			issued = w.now()
		}
		var numbers []string
		for _, existing := range w.Invoices.All() {
			numbers = append(numbers, existing.Number)
		}
		inv.Number = id.NextInvoiceNumber(numbers, issued.Year(), int(issued.Month()))
	}
	return w.Invoices.Add(inv)
}

// AddLoan validates p and stores the new loan.
func (w *Workspace) AddLoan(p loan.Params) (model.Loan, error) {
	l, err := loan.New(p)
	if err != nil {
		return model.Loan{}, err
	}
	return w.Loans.Add(l), nil
}

// RepayLoan records a repayment against the loan with the given id.
func (w *Workspace) RepayLoan(loanID string, amount decimal.Decimal, at time.Time) (model.Loan, error) {
	return w.updateLoan(loanID, func(l model.Loan) (model.Loan, error) {
		return loan.Repay(l, amount, at)
	})
}

// DefaultLoan marks the loan with the given id as defaulted.
func (w *Workspace) DefaultLoan(loanID string) (model.Loan, error) {
	return w.updateLoan(loanID, loan.MarkDefaulted)
}

func (w *Workspace) updateLoan(loanID string, apply func(model.Loan) (model.Loan, error)) (model.Loan, error) {
	w.loanMu.Lock()
	defer w.loanMu.Unlock()

	current, err := w.Loans.Find(loanID)
	if err != nil {
		return model.Loan{}, err
	}
	if current.IsDeleted {
		return model.Loan{}, fmt.Errorf("loan %q is deleted: %w", loanID, store.ErrNotFound)
	}
	next, err := apply(current)
	if err != nil {
		return model.Loan{}, err
	}
	updated, _ := w.Loans.Update(loanID, func(l *model.Loan) { *l = next })
	return updated, nil
}

// Payroll calculates tax records for every active staff member.
func (w *Workspace) Payroll(calc payroll.Calculator) []payroll.TaxRecord {
	return calc.CalculateAll(w.Staff.List())
}

// EventExpenses returns the live expenses attributed to an event.
func (w *Workspace) EventExpenses(eventID string) []model.Expense {
	var out []model.Expense
	for _, e := range w.Expenses.List() {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out
}

// DeleteEvent soft-deletes an event together with its budget lines,
// expenses and staff assignments. It reports whether the event existed.
func (w *Workspace) DeleteEvent(eventID string) bool {
	if !w.Events.Delete(eventID, false) {
		return false
	}
	for _, c := range w.CostItems.List() {
		if c.Event == eventID {
			w.CostItems.Delete(c.ID, false)
		}
	}
	for _, r := range w.RevenueItems.List() {
		if r.Event == eventID {
			w.RevenueItems.Delete(r.ID, false)
		}
	}
	for _, e := range w.EventExpenses(eventID) {
		w.Expenses.Delete(e.ID, false)
	}
	for _, a := range w.Assignments.List() {
		if a.EventID == eventID {
			w.Assignments.Delete(a.ID, false)
		}
	}
	return true
}
