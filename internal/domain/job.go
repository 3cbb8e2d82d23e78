package domain

import (
	"errors"
	"strings"

	"github.com/sgodoy/joblist/internal/format"
)

// Job is a quoted unit of work tracked for profitability. It owns its
// expenses and invoices exclusively; deleting a job removes them with
// it. Paid encodes a two-state status: false = invoiced, true = paid.
type Job struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Quote     Amount     `json:"quote"`
	QuoteDate string     `json:"quoteDate"`
	DueDate   string     `json:"dueDate,omitempty"`
	Paid      bool       `json:"paid"`
	CompanyID string     `json:"companyId,omitempty"`
	Invoices  []*Invoice `json:"invoices,omitempty"`
	Expenses  []*Expense `json:"expenses"`
}

// Totals is the financial summary derived from a job's current state.
type Totals struct {
	Quote         float64
	TotalExpenses float64
	Profit        float64
	Margin        float64
}

// Totals computes quote, accumulated expenses, profit, and margin.
// Margin is profit/quote, defined as 0 for an unquoted or zero-quote
// job. Pure function of the job; safe to call once per render.
func (j *Job) Totals() Totals {
	quote := float64(j.Quote)

	var expenses float64
	for _, e := range j.Expenses {
		expenses += float64(e.Amount)
	}

	profit := quote - expenses

	var margin float64
	if quote > 0 {
		margin = profit / quote
	}

	return Totals{
		Quote:         quote,
		TotalExpenses: expenses,
		Profit:        profit,
		Margin:        margin,
	}
}

// DueState classifies a job's due date relative to today.
type DueState int

const (
	// DueNone means the job has no due date; no status is shown.
	DueNone DueState = iota
	// DuePaid means payment was received; urgency no longer applies.
	DuePaid
	// DueOverdue means the due date has passed.
	DueOverdue
	// DueSoon means the job is due within the next seven days.
	DueSoon
	// DueNormal means the due date is more than a week away.
	DueNormal
)

// DueStatus pairs the due state with the signed day count to the due
// date (negative when overdue).
type DueStatus struct {
	State DueState
	Days  int
}

// DueStatus derives the job's due-date status. A paid job reports
// DuePaid regardless of the date: the two treatments are mutually
// exclusive.
func (j *Job) DueStatus() DueStatus {
	if j.DueDate == "" {
		return DueStatus{State: DueNone}
	}
	days := format.DaysUntil(j.DueDate)
	if j.Paid {
		return DueStatus{State: DuePaid, Days: days}
	}
	switch {
	case days < 0:
		return DueStatus{State: DueOverdue, Days: days}
	case days <= 7:
		return DueStatus{State: DueSoon, Days: days}
	default:
		return DueStatus{State: DueNormal, Days: days}
	}
}

// Validate returns an error if the job would fail entry validation.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Name) == "" {
		return errors.New("job name is required")
	}
	if j.Quote <= 0 {
		return errors.New("quote must be greater than zero")
	}
	if j.QuoteDate == "" {
		return errors.New("quote date is required")
	}
	return nil
}

// Clone returns a copy of the job with fresh expense and invoice
// slice headers, so list mutations on the copy never leak into
// previously handed-out snapshots.
func (j *Job) Clone() *Job {
	c := *j
	if j.Expenses != nil {
		c.Expenses = make([]*Expense, len(j.Expenses))
		copy(c.Expenses, j.Expenses)
	}
	if j.Invoices != nil {
		c.Invoices = make([]*Invoice, len(j.Invoices))
		copy(c.Invoices, j.Invoices)
	}
	return &c
}

// FindExpense returns the expense with the given id, or nil.
func (j *Job) FindExpense(expenseID string) *Expense {
	for _, e := range j.Expenses {
		if e.ID == expenseID {
			return e
		}
	}
	return nil
}

// FindInvoice returns the invoice with the given id, or nil.
func (j *Job) FindInvoice(invoiceID string) *Invoice {
	for _, i := range j.Invoices {
		if i.ID == invoiceID {
			return i
		}
	}
	return nil
}
