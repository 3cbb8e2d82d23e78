package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sgodoy/joblist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory KV store
type memKV struct {
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	m.sets++
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func newTestRepo(kv *memKV) *AggregateRepo {
	return NewAggregateRepo(kv, "joblist-erp-jobs", zerolog.Nop())
}

func TestLoadAbsentDocument(t *testing.T) {
	repo := newTestRepo(newMemKV())

	agg := repo.Load(context.Background())
	require.NotNil(t, agg)
	assert.Empty(t, agg.Jobs)
	assert.Empty(t, agg.Companies)
}

func TestLoadCurrentShape(t *testing.T) {
	kv := newMemKV()
	kv.data["joblist-erp-jobs"] = `{
		"jobs": [
			{"id": "j1", "name": "Stand Expocorma", "quote": 1500000, "quoteDate": "2024-03-05T00:00:00.000Z",
			 "paid": false, "companyId": "c1",
			 "expenses": [{"id": "e1", "description": "Fletes", "amount": "35.000,75", "createdAt": "2024-03-06T00:00:00.000Z"}]}
		],
		"companies": [{"id": "c1", "name": "Acme"}]
	}`
	repo := newTestRepo(kv)

	agg := repo.Load(context.Background())
	require.Len(t, agg.Jobs, 1)
	require.Len(t, agg.Companies, 1)

	job := agg.Jobs[0]
	assert.Equal(t, "Stand Expocorma", job.Name)
	assert.Equal(t, 1500000.0, job.Quote.Float())
	require.Len(t, job.Expenses, 1)
	assert.Equal(t, 35000.75, job.Expenses[0].Amount.Float())
	// Normalize backfills the owning job id on nested records.
	assert.Equal(t, "j1", job.Expenses[0].JobID)
}

func TestLoadLegacyArrayShape(t *testing.T) {
	kv := newMemKV()
	kv.data["joblist-erp-jobs"] = `[
		{"id": "j1", "name": "Pendones", "quote": "82.000", "quoteDate": "2023-11-01T00:00:00.000Z", "paid": true, "expenses": []}
	]`
	repo := newTestRepo(kv)

	agg := repo.Load(context.Background())
	require.Len(t, agg.Jobs, 1)
	assert.Equal(t, "Pendones", agg.Jobs[0].Name)
	assert.Equal(t, 82000.0, agg.Jobs[0].Quote.Float())
	assert.True(t, agg.Jobs[0].Paid)
	assert.NotNil(t, agg.Companies, "legacy documents have no companies; the list is still non-nil")
}

func TestLoadMalformedDocument(t *testing.T) {
	kv := newMemKV()
	kv.data["joblist-erp-jobs"] = `{"jobs": not json`
	repo := newTestRepo(kv)

	agg := repo.Load(context.Background())
	require.NotNil(t, agg)
	assert.Empty(t, agg.Jobs)
}

func TestLoadReadError(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("db locked")
	repo := newTestRepo(kv)

	agg := repo.Load(context.Background())
	require.NotNil(t, agg)
	assert.Empty(t, agg.Jobs)
}

func TestSaveRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := newTestRepo(kv)
	ctx := context.Background()

	agg := domain.NewAggregate()
	agg.Jobs = append(agg.Jobs, &domain.Job{
		ID: "j1", Name: "Stand", Quote: 1500000, QuoteDate: "2024-03-05T00:00:00Z",
		Expenses: []*domain.Expense{{ID: "e1", JobID: "j1", Description: "Fletes", Amount: 35000}},
	})
	agg.Companies = append(agg.Companies, domain.NewCompany("c1", "Acme"))

	repo.Save(ctx, agg)
	require.Equal(t, 1, kv.sets)

	got := repo.Load(ctx)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, agg.Jobs[0].Name, got.Jobs[0].Name)
	assert.Equal(t, agg.Jobs[0].Quote, got.Jobs[0].Quote)
	require.Len(t, got.Companies, 1)
	assert.Equal(t, "Acme", got.Companies[0].Name)
}

func TestSaveWritesCurrentShape(t *testing.T) {
	kv := newMemKV()
	repo := newTestRepo(kv)

	repo.Save(context.Background(), domain.NewAggregate())

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(kv.data["joblist-erp-jobs"]), &doc))
	assert.Contains(t, doc, "jobs")
	assert.Contains(t, doc, "companies")
}

func TestSaveWriteErrorSwallowed(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("disk full")
	repo := newTestRepo(kv)

	// Must not panic or surface the error.
	repo.Save(context.Background(), domain.NewAggregate())
}
