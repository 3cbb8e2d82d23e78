package service

import (
	"context"
	"strings"
	"time"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/format"
	"github.com/sgodoy/joblist/internal/id"
)

// JobFields are the inputs for creating a job.
type JobFields struct {
	Name      string
	Quote     float64
	QuoteDate string
	DueDate   string
	Paid      bool
	CompanyID string
}

// JobUpdate is a partial update; nil fields are left untouched. The
// id and the owned expense/invoice lists can never be changed through
// an update.
type JobUpdate struct {
	Name      *string
	Quote     *float64
	QuoteDate *string
	DueDate   *string
	Paid      *bool
	CompanyID *string
}

// ExpenseFields are the inputs for recording an expense against a job.
type ExpenseFields struct {
	Description string
	Amount      float64
	InvoiceID   string
}

// ExpenseUpdate is a partial expense update; nil fields are untouched.
// CreatedAt is set once at creation and never mutated.
type ExpenseUpdate struct {
	Description *string
	Amount      *float64
	InvoiceID   *string
}

// InvoiceFields are the inputs for issuing an invoice under a job.
type InvoiceFields struct {
	CompanyID string
	Number    string
	IssueDate string
	DueDate   string
	Net       float64
	VAT       float64
	Total     float64
	Paid      bool
}

// InvoiceUpdate is a partial invoice update; nil fields are untouched.
type InvoiceUpdate struct {
	CompanyID *string
	Number    *string
	IssueDate *string
	DueDate   *string
	Net       *float64
	VAT       *float64
	Total     *float64
	Paid      *bool
}

// JobService is the mutation surface for jobs and their owned
// expenses and invoices. Every mutation that targets an id which does
// not exist is a no-op, never an error: a stale id from the
// presentation layer simply does nothing.
type JobService interface {
	AddJob(ctx context.Context, fields JobFields) *domain.Job
	UpdateJob(ctx context.Context, jobID string, update JobUpdate)
	DeleteJob(ctx context.Context, jobID string)

	AddExpense(ctx context.Context, jobID string, fields ExpenseFields) *domain.Expense
	UpdateExpense(ctx context.Context, jobID, expenseID string, update ExpenseUpdate)
	DeleteExpense(ctx context.Context, jobID, expenseID string)

	AddInvoice(ctx context.Context, jobID string, fields InvoiceFields) *domain.Invoice
	UpdateInvoice(ctx context.Context, jobID, invoiceID string, update InvoiceUpdate)
	DeleteInvoice(ctx context.Context, jobID, invoiceID string)

	Get(ctx context.Context, jobID string) *domain.Job
	List(ctx context.Context) []*domain.Job
}

type jobService struct {
	state *State
	newID func() string
	now   func() time.Time
}

// NewJobService creates a job service over the shared state.
func NewJobService(state *State) JobService {
	return &jobService{
		state: state,
		newID: id.New,
		now:   time.Now,
	}
}

// AddJob constructs a job with a fresh id and empty expense list and
// prepends it, keeping the collection most-recent-first.
func (s *jobService) AddJob(ctx context.Context, fields JobFields) *domain.Job {
	job := &domain.Job{
		ID:        s.newID(),
		Name:      strings.TrimSpace(fields.Name),
		Quote:     domain.Amount(fields.Quote),
		QuoteDate: fields.QuoteDate,
		DueDate:   fields.DueDate,
		Paid:      fields.Paid,
		CompanyID: fields.CompanyID,
		Expenses:  []*domain.Expense{},
	}

	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		next := agg.Clone()
		next.Jobs = append([]*domain.Job{job}, agg.Jobs...)
		return next
	})

	return job
}

func (s *jobService) UpdateJob(ctx context.Context, jobID string, update JobUpdate) {
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		return replaceJob(agg, jobID, func(job *domain.Job) {
			if update.Name != nil {
				job.Name = strings.TrimSpace(*update.Name)
			}
			if update.Quote != nil {
				job.Quote = domain.Amount(*update.Quote)
			}
			if update.QuoteDate != nil {
				job.QuoteDate = *update.QuoteDate
			}
			if update.DueDate != nil {
				job.DueDate = *update.DueDate
			}
			if update.Paid != nil {
				job.Paid = *update.Paid
			}
			if update.CompanyID != nil {
				job.CompanyID = *update.CompanyID
			}
		})
	})
}

func (s *jobService) DeleteJob(ctx context.Context, jobID string) {
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		idx := jobIndex(agg, jobID)
		if idx < 0 {
			return nil
		}
		next := agg.Clone()
		next.Jobs = append(next.Jobs[:idx], next.Jobs[idx+1:]...)
		return next
	})
}

// AddExpense records an expense with a fresh id and the current
// timestamp, prepended to the job's list. No-op if the job is unknown.
func (s *jobService) AddExpense(ctx context.Context, jobID string, fields ExpenseFields) *domain.Expense {
	expense := &domain.Expense{
		ID:          s.newID(),
		JobID:       jobID,
		Description: strings.TrimSpace(fields.Description),
		Amount:      domain.Amount(fields.Amount),
		CreatedAt:   format.ISO(s.now()),
		InvoiceID:   fields.InvoiceID,
	}

	var added bool
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		next := replaceJob(agg, jobID, func(job *domain.Job) {
			job.Expenses = append([]*domain.Expense{expense}, job.Expenses...)
		})
		added = next != nil
		return next
	})

	if !added {
		return nil
	}
	return expense
}

func (s *jobService) UpdateExpense(ctx context.Context, jobID, expenseID string, update ExpenseUpdate) {
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		return replaceJob(agg, jobID, func(job *domain.Job) {
			for i, e := range job.Expenses {
				if e.ID != expenseID {
					continue
				}
				edited := e.Clone()
				if update.Description != nil {
					edited.Description = strings.TrimSpace(*update.Description)
				}
				if update.Amount != nil {
					edited.Amount = domain.Amount(*update.Amount)
				}
				if update.InvoiceID != nil {
					edited.InvoiceID = *update.InvoiceID
				}
				job.Expenses[i] = edited
				return
			}
		})
	})
}

func (s *jobService) DeleteExpense(ctx context.Context, jobID, expenseID string) {
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		return replaceJob(agg, jobID, func(job *domain.Job) {
			for i, e := range job.Expenses {
				if e.ID == expenseID {
					job.Expenses = append(job.Expenses[:i], job.Expenses[i+1:]...)
					return
				}
			}
		})
	})
}

// AddInvoice issues an invoice under a job, prepended like expenses.
// Total is stored as given; it is not derived from Net + VAT.
func (s *jobService) AddInvoice(ctx context.Context, jobID string, fields InvoiceFields) *domain.Invoice {
	invoice := &domain.Invoice{
		ID:        s.newID(),
		JobID:     jobID,
		CompanyID: fields.CompanyID,
		Number:    strings.TrimSpace(fields.Number),
		IssueDate: fields.IssueDate,
		DueDate:   fields.DueDate,
		Net:       domain.Amount(fields.Net),
		VAT:       domain.Amount(fields.VAT),
		Total:     domain.Amount(fields.Total),
		Paid:      fields.Paid,
	}

	var added bool
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		next := replaceJob(agg, jobID, func(job *domain.Job) {
			job.Invoices = append([]*domain.Invoice{invoice}, job.Invoices...)
		})
		added = next != nil
		return next
	})

	if !added {
		return nil
	}
	return invoice
}

func (s *jobService) UpdateInvoice(ctx context.Context, jobID, invoiceID string, update InvoiceUpdate) {
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		return replaceJob(agg, jobID, func(job *domain.Job) {
			for i, inv := range job.Invoices {
				if inv.ID != invoiceID {
					continue
				}
				edited := inv.Clone()
				if update.CompanyID != nil {
					edited.CompanyID = *update.CompanyID
				}
				if update.Number != nil {
					edited.Number = strings.TrimSpace(*update.Number)
				}
				if update.IssueDate != nil {
					edited.IssueDate = *update.IssueDate
				}
				if update.DueDate != nil {
					edited.DueDate = *update.DueDate
				}
				if update.Net != nil {
					edited.Net = domain.Amount(*update.Net)
				}
				if update.VAT != nil {
					edited.VAT = domain.Amount(*update.VAT)
				}
				if update.Total != nil {
					edited.Total = domain.Amount(*update.Total)
				}
				if update.Paid != nil {
					edited.Paid = *update.Paid
				}
				job.Invoices[i] = edited
				return
			}
		})
	})
}

func (s *jobService) DeleteInvoice(ctx context.Context, jobID, invoiceID string) {
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		return replaceJob(agg, jobID, func(job *domain.Job) {
			for i, inv := range job.Invoices {
				if inv.ID == invoiceID {
					job.Invoices = append(job.Invoices[:i], job.Invoices[i+1:]...)
					return
				}
			}
		})
	})
}

func (s *jobService) Get(ctx context.Context, jobID string) *domain.Job {
	return s.state.Snapshot().Job(jobID)
}

func (s *jobService) List(ctx context.Context) []*domain.Job {
	return s.state.Snapshot().Jobs
}

// jobIndex returns the position of a job in the aggregate, or -1.
func jobIndex(agg *domain.Aggregate, jobID string) int {
	for i, j := range agg.Jobs {
		if j.ID == jobID {
			return i
		}
	}
	return -1
}

// replaceJob clones the aggregate and the targeted job, runs edit on
// the clone, and returns the new aggregate. Returns nil (no-op) when
// the job does not exist.
func replaceJob(agg *domain.Aggregate, jobID string, edit func(*domain.Job)) *domain.Aggregate {
	idx := jobIndex(agg, jobID)
	if idx < 0 {
		return nil
	}
	next := agg.Clone()
	job := next.Jobs[idx].Clone()
	edit(job)
	next.Jobs[idx] = job
	return next
}
