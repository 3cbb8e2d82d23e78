package domain

import (
	"testing"
	"time"

	"github.com/sgodoy/joblist/internal/format"
	"github.com/stretchr/testify/assert"
)

func TestTotals(t *testing.T) {
	job := &Job{
		Quote: 4000000,
		Expenses: []*Expense{
			{Amount: 1000000},
			{Amount: 500000},
			{Amount: 3},
		},
	}

	totals := job.Totals()
	assert.Equal(t, 4000000.0, totals.Quote)
	assert.Equal(t, 1500003.0, totals.TotalExpenses)
	assert.Equal(t, 2499997.0, totals.Profit)
	assert.InDelta(t, 0.62499925, totals.Margin, 1e-9)
}

func TestTotalsNoExpenses(t *testing.T) {
	job := &Job{Quote: 100000}

	totals := job.Totals()
	assert.Equal(t, 100000.0, totals.Profit)
	assert.Equal(t, 1.0, totals.Margin)
}

func TestTotalsZeroQuote(t *testing.T) {
	job := &Job{Expenses: []*Expense{{Amount: 5000}}}

	totals := job.Totals()
	assert.Equal(t, -5000.0, totals.Profit)
	assert.Equal(t, 0.0, totals.Margin, "margin is defined as 0 for a zero quote")
}

func TestDueStatus(t *testing.T) {
	iso := func(daysFromNow int) string {
		return format.ISO(time.Now().AddDate(0, 0, daysFromNow))
	}

	tests := []struct {
		name string
		job  *Job
		want DueState
	}{
		{"no due date", &Job{}, DueNone},
		{"paid wins over overdue", &Job{Paid: true, DueDate: iso(-30)}, DuePaid},
		{"overdue", &Job{DueDate: iso(-3)}, DueOverdue},
		{"due today", &Job{DueDate: iso(0)}, DueSoon},
		{"due within a week", &Job{DueDate: iso(6)}, DueSoon},
		{"due later", &Job{DueDate: iso(30)}, DueNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.job.DueStatus().State)
		})
	}
}

func TestJobValidate(t *testing.T) {
	valid := &Job{Name: "Stand Expocorma", Quote: 1500000, QuoteDate: "2024-03-05T00:00:00Z"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, (&Job{Quote: 1, QuoteDate: "2024-03-05T00:00:00Z"}).Validate())
	assert.Error(t, (&Job{Name: "  ", Quote: 1, QuoteDate: "2024-03-05T00:00:00Z"}).Validate())
	assert.Error(t, (&Job{Name: "x", QuoteDate: "2024-03-05T00:00:00Z"}).Validate())
	assert.Error(t, (&Job{Name: "x", Quote: 1}).Validate())
}

func TestJobCloneIsolatesLists(t *testing.T) {
	job := &Job{
		ID:       "j1",
		Expenses: []*Expense{{ID: "e1"}},
		Invoices: []*Invoice{{ID: "i1"}},
	}

	clone := job.Clone()
	clone.Expenses = append(clone.Expenses, &Expense{ID: "e2"})
	clone.Invoices = clone.Invoices[:0]

	assert.Len(t, job.Expenses, 1)
	assert.Len(t, job.Invoices, 1)
}

func TestFindExpenseAndInvoice(t *testing.T) {
	job := &Job{
		Expenses: []*Expense{{ID: "e1"}, {ID: "e2"}},
		Invoices: []*Invoice{{ID: "i1"}},
	}

	assert.Equal(t, "e2", job.FindExpense("e2").ID)
	assert.Nil(t, job.FindExpense("missing"))
	assert.Equal(t, "i1", job.FindInvoice("i1").ID)
	assert.Nil(t, job.FindInvoice("missing"))
}
