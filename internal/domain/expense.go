package domain

import (
	"errors"
	"strings"
)

// Expense is a cost recorded against a job. An expense belongs to
// exactly one job and is embedded in it; InvoiceID optionally ties it
// to one of the job's invoices, empty meaning "general".
type Expense struct {
	ID          string `json:"id"`
	JobID       string `json:"jobId"`
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	CreatedAt   string `json:"createdAt"`
	InvoiceID   string `json:"invoiceId,omitempty"`
}

// Validate returns an error if the expense would fail entry validation.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return errors.New("description is required")
	}
	if e.Amount <= 0 {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

// Clone returns a copy of the expense.
func (e *Expense) Clone() *Expense {
	c := *e
	return &c
}
