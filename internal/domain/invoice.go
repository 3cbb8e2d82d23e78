package domain

import (
	"errors"
	"strings"
)

// Invoice is a formal billing document tied to exactly one job. Total
// is supplied by the caller and is not validated against Net + VAT;
// the field is free entry.
type Invoice struct {
	ID        string `json:"id"`
	JobID     string `json:"jobId"`
	CompanyID string `json:"companyId,omitempty"`
	Number    string `json:"number"`
	IssueDate string `json:"issueDate"`
	DueDate   string `json:"dueDate"`
	Net       Amount `json:"net"`
	VAT       Amount `json:"vat"`
	Total     Amount `json:"total"`
	Paid      bool   `json:"paid"`
}

// Validate returns an error if the invoice would fail entry validation.
func (i *Invoice) Validate() error {
	if strings.TrimSpace(i.Number) == "" {
		return errors.New("invoice number is required")
	}
	if i.IssueDate == "" {
		return errors.New("issue date is required")
	}
	if i.Net < 0 || i.VAT < 0 || i.Total < 0 {
		return errors.New("amounts cannot be negative")
	}
	return nil
}

// Clone returns a copy of the invoice.
func (i *Invoice) Clone() *Invoice {
	c := *i
	return &c
}
