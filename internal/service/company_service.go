package service

import (
	"context"
	"strings"

	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/id"
)

// CompanyService resolves and grows the company collection. There is
// no standalone "create company" entry point: the collection only
// grows through UpsertByName when a job or invoice names a company.
type CompanyService interface {
	// CompanyName resolves an id to a name; dangling or empty ids
	// resolve to "" and never fail.
	CompanyName(ctx context.Context, companyID string) string

	// UpsertByName returns the id of the company with the given name,
	// creating it if needed. The match ignores case and surrounding
	// whitespace; an existing company is returned untouched even when
	// the casing differs. An empty name returns "" without creating
	// anything.
	UpsertByName(ctx context.Context, name string) string

	List(ctx context.Context) []*domain.Company
}

type companyService struct {
	state *State
	newID func() string
}

// NewCompanyService creates a company service over the shared state.
func NewCompanyService(state *State) CompanyService {
	return &companyService{
		state: state,
		newID: id.New,
	}
}

func (s *companyService) CompanyName(ctx context.Context, companyID string) string {
	return s.state.Snapshot().CompanyName(companyID)
}

func (s *companyService) UpsertByName(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	for _, c := range s.state.Snapshot().Companies {
		if c.NameMatches(name) {
			return c.ID
		}
	}

	company := domain.NewCompany(s.newID(), name)
	s.state.apply(ctx, func(agg *domain.Aggregate) *domain.Aggregate {
		// Re-check under the lock in case the same name raced in.
		for _, c := range agg.Companies {
			if c.NameMatches(name) {
				company = c
				return nil
			}
		}
		next := agg.Clone()
		next.Companies = append([]*domain.Company{company}, agg.Companies...)
		return next
	})

	return company.ID
}

func (s *companyService) List(ctx context.Context) []*domain.Company {
	return s.state.Snapshot().Companies
}
