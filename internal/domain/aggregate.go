package domain

// Aggregate is the single persisted document: every job and every
// company the user has recorded. It is the unit of durability; each
// mutation produces a fresh aggregate that is written out whole.
type Aggregate struct {
	Jobs      []*Job     `json:"jobs"`
	Companies []*Company `json:"companies"`
}

// NewAggregate returns an empty aggregate with non-nil collections.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Jobs:      []*Job{},
		Companies: []*Company{},
	}
}

// Normalize repairs a freshly decoded aggregate: nil collections
// become empty ones so callers never branch on nil, and each expense
// carries its owning job's id (very old documents omitted it).
func (a *Aggregate) Normalize() {
	if a.Jobs == nil {
		a.Jobs = []*Job{}
	}
	if a.Companies == nil {
		a.Companies = []*Company{}
	}
	for _, j := range a.Jobs {
		if j.Expenses == nil {
			j.Expenses = []*Expense{}
		}
		for _, e := range j.Expenses {
			if e.JobID == "" {
				e.JobID = j.ID
			}
		}
		for _, inv := range j.Invoices {
			if inv.JobID == "" {
				inv.JobID = j.ID
			}
		}
	}
}

// Job returns the job with the given id, or nil.
func (a *Aggregate) Job(jobID string) *Job {
	for _, j := range a.Jobs {
		if j.ID == jobID {
			return j
		}
	}
	return nil
}

// Company returns the company with the given id, or nil.
func (a *Aggregate) Company(companyID string) *Company {
	for _, c := range a.Companies {
		if c.ID == companyID {
			return c
		}
	}
	return nil
}

// CompanyName resolves a company id to its name. A missing or dangling
// id resolves to the empty string; the lookup never fails.
func (a *Aggregate) CompanyName(companyID string) string {
	if companyID == "" {
		return ""
	}
	if c := a.Company(companyID); c != nil {
		return c.Name
	}
	return ""
}

// Clone returns an aggregate with fresh collection headers sharing the
// current elements. Mutators clone, replace the elements they touch,
// and swap the whole aggregate in, giving readers stable snapshots.
func (a *Aggregate) Clone() *Aggregate {
	jobs := make([]*Job, len(a.Jobs))
	copy(jobs, a.Jobs)
	companies := make([]*Company, len(a.Companies))
	copy(companies, a.Companies)
	return &Aggregate{Jobs: jobs, Companies: companies}
}
