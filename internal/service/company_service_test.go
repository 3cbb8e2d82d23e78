package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompanyService(repo *mockRepo) (*companyService, *State) {
	state := NewState(context.Background(), repo)
	seq := 0
	svc := &companyService{
		state: state,
		newID: func() string {
			seq++
			return fmt.Sprintf("c-%d", seq)
		},
	}
	return svc, state
}

func TestUpsertByNameCreates(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestCompanyService(repo)
	ctx := context.Background()

	id := svc.UpsertByName(ctx, "Acme")
	require.NotEmpty(t, id)
	assert.Equal(t, "Acme", svc.CompanyName(ctx, id))
	assert.Equal(t, 1, repo.saves)
}

func TestUpsertByNameDeduplicates(t *testing.T) {
	svc, _ := newTestCompanyService(&mockRepo{})
	ctx := context.Background()

	first := svc.UpsertByName(ctx, "Acme")
	assert.Equal(t, first, svc.UpsertByName(ctx, "acme"))
	assert.Equal(t, first, svc.UpsertByName(ctx, "  ACME  "))

	companies := svc.List(ctx)
	require.Len(t, companies, 1)
	assert.Equal(t, "Acme", companies[0].Name, "the original casing is kept")
}

func TestUpsertByNameEmpty(t *testing.T) {
	repo := &mockRepo{}
	svc, _ := newTestCompanyService(repo)
	ctx := context.Background()

	assert.Empty(t, svc.UpsertByName(ctx, ""))
	assert.Empty(t, svc.UpsertByName(ctx, "   "))
	assert.Empty(t, svc.List(ctx))
	assert.Equal(t, 0, repo.saves)
}

func TestUpsertByNamePrepends(t *testing.T) {
	svc, _ := newTestCompanyService(&mockRepo{})
	ctx := context.Background()

	svc.UpsertByName(ctx, "First")
	svc.UpsertByName(ctx, "Second")

	companies := svc.List(ctx)
	require.Len(t, companies, 2)
	assert.Equal(t, "Second", companies[0].Name)
}

func TestCompanyNameDangling(t *testing.T) {
	svc, _ := newTestCompanyService(&mockRepo{})
	ctx := context.Background()

	assert.Empty(t, svc.CompanyName(ctx, ""))
	assert.Empty(t, svc.CompanyName(ctx, "missing"))
}
