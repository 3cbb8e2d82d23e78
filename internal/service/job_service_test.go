package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mock repository
type mockRepo struct {
	agg   *domain.Aggregate
	saves int
	last  *domain.Aggregate
}

func (m *mockRepo) Load(ctx context.Context) *domain.Aggregate {
	if m.agg == nil {
		return domain.NewAggregate()
	}
	return m.agg
}

func (m *mockRepo) Save(ctx context.Context, agg *domain.Aggregate) {
	m.saves++
	m.last = agg
}

func newTestJobService(repo *mockRepo) (*jobService, *State) {
	state := NewState(context.Background(), repo)
	seq := 0
	svc := &jobService{
		state: state,
		newID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
		now: func() time.Time {
			return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
		},
	}
	return svc, state
}

func TestAddJobPrepends(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestJobService(repo)
	ctx := context.Background()

	first := svc.AddJob(ctx, JobFields{Name: "First", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	second := svc.AddJob(ctx, JobFields{Name: "Second", Quote: 200, QuoteDate: "2024-06-02T00:00:00Z"})

	jobs := svc.List(ctx)
	require.Len(t, jobs, 2)
	assert.Equal(t, second.ID, jobs[0].ID, "newest job comes first")
	assert.Equal(t, first.ID, jobs[1].ID)
	assert.NotNil(t, jobs[0].Expenses, "a new job starts with an empty expense list")
	assert.Equal(t, 2, repo.saves)
}

func TestAddJobTrimsName(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})

	job := svc.AddJob(context.Background(), JobFields{Name: "  Stand  ", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	assert.Equal(t, "Stand", job.Name)
}

func TestUpdateJobPartial(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestJobService(repo)
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})

	quote := 250.0
	paid := true
	svc.UpdateJob(ctx, job.ID, JobUpdate{Quote: &quote, Paid: &paid})

	got := svc.Get(ctx, job.ID)
	assert.Equal(t, "Stand", got.Name, "unset fields stay untouched")
	assert.Equal(t, 250.0, got.Quote.Float())
	assert.True(t, got.Paid)
}

func TestUpdateJobUnknownIDIsNoOp(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestJobService(repo)
	ctx := context.Background()

	svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	savesBefore := repo.saves

	name := "Renamed"
	svc.UpdateJob(ctx, "missing", JobUpdate{Name: &name})

	assert.Equal(t, savesBefore, repo.saves, "a no-op must not write")
	assert.Equal(t, "Stand", svc.List(ctx)[0].Name)
}

func TestDeleteJob(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	keep := svc.AddJob(ctx, JobFields{Name: "Keep", Quote: 200, QuoteDate: "2024-06-02T00:00:00Z"})

	svc.DeleteJob(ctx, job.ID)

	jobs := svc.List(ctx)
	require.Len(t, jobs, 1)
	assert.Equal(t, keep.ID, jobs[0].ID)
	assert.Nil(t, svc.Get(ctx, job.ID))
}

func TestAddExpense(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})

	first := svc.AddExpense(ctx, job.ID, ExpenseFields{Description: "Fletes", Amount: 35000})
	second := svc.AddExpense(ctx, job.ID, ExpenseFields{Description: "Pintura", Amount: 12000})
	require.NotNil(t, first)
	require.NotNil(t, second)

	got := svc.Get(ctx, job.ID)
	require.Len(t, got.Expenses, 2)
	assert.Equal(t, second.ID, got.Expenses[0].ID, "newest expense comes first")
	assert.Equal(t, job.ID, got.Expenses[0].JobID)
	assert.Equal(t, "2024-06-10T12:00:00Z", got.Expenses[0].CreatedAt)
}

func TestAddExpenseUnknownJob(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestJobService(repo)

	expense := svc.AddExpense(context.Background(), "missing", ExpenseFields{Description: "Fletes", Amount: 1})
	assert.Nil(t, expense)
	assert.Equal(t, 0, repo.saves)
}

func TestDeleteExpense(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	expense := svc.AddExpense(ctx, job.ID, ExpenseFields{Description: "Fletes", Amount: 35000})
	keep := svc.AddExpense(ctx, job.ID, ExpenseFields{Description: "Pintura", Amount: 12000})

	svc.DeleteExpense(ctx, job.ID, expense.ID)

	got := svc.Get(ctx, job.ID)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, keep.ID, got.Expenses[0].ID)

	// Deleting an unknown expense leaves the list unchanged.
	svc.DeleteExpense(ctx, job.ID, "missing")
	assert.Len(t, svc.Get(ctx, job.ID).Expenses, 1)
}

func TestUpdateExpenseDoesNotTouchCreatedAt(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	expense := svc.AddExpense(ctx, job.ID, ExpenseFields{Description: "Fletes", Amount: 35000})

	amount := 40000.0
	svc.UpdateExpense(ctx, job.ID, expense.ID, ExpenseUpdate{Amount: &amount})

	got := svc.Get(ctx, job.ID).FindExpense(expense.ID)
	require.NotNil(t, got)
	assert.Equal(t, 40000.0, got.Amount.Float())
	assert.Equal(t, expense.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Fletes", got.Description)
}

func TestAddInvoiceStoresTotalAsGiven(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	invoice := svc.AddInvoice(ctx, job.ID, InvoiceFields{
		Number: "F-123", IssueDate: "2024-06-10T00:00:00Z",
		Net: 100000, VAT: 19000, Total: 118999,
	})
	require.NotNil(t, invoice)

	got := svc.Get(ctx, job.ID).FindInvoice(invoice.ID)
	require.NotNil(t, got)
	assert.Equal(t, 118999.0, got.Total.Float(), "total is free entry, not derived")
}

func TestDeleteInvoice(t *testing.T) {
	svc, _ := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	invoice := svc.AddInvoice(ctx, job.ID, InvoiceFields{Number: "F-123", IssueDate: "2024-06-10T00:00:00Z", Net: 1})

	svc.DeleteInvoice(ctx, job.ID, invoice.ID)
	assert.Empty(t, svc.Get(ctx, job.ID).Invoices)
}

func TestSnapshotIsolation(t *testing.T) {
	svc, state := newTestJobService(&mockRepo{})
	ctx := context.Background()

	job := svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})
	before := state.Snapshot()
	require.Len(t, before.Jobs, 1)

	svc.AddExpense(ctx, job.ID, ExpenseFields{Description: "Fletes", Amount: 1})

	// The earlier snapshot must not see the mutation.
	assert.Empty(t, before.Jobs[0].Expenses)
	assert.Len(t, state.Snapshot().Jobs[0].Expenses, 1)
}

func TestReplacePersists(t *testing.T) {
	repo := &mockRepo{}
	svc, state := newTestJobService(repo)
	ctx := context.Background()

	svc.AddJob(ctx, JobFields{Name: "Stand", Quote: 100, QuoteDate: "2024-06-01T00:00:00Z"})

	state.Replace(ctx, domain.NewAggregate())

	assert.Empty(t, svc.List(ctx))
	require.NotNil(t, repo.last)
	assert.Empty(t, repo.last.Jobs)
}
