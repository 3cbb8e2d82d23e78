package domain

import "strings"

// Company is a client/counterparty a job can be billed to. Identity is
// the opaque ID; for upsert purposes two companies are the same when
// their names match case-insensitively after trimming.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	RUT  string `json:"rut,omitempty"`
}

// NewCompany creates a company with a trimmed name.
func NewCompany(id, name string) *Company {
	return &Company{
		ID:   id,
		Name: strings.TrimSpace(name),
	}
}

// NameMatches reports whether the given name refers to this company,
// ignoring case and surrounding whitespace.
func (c *Company) NameMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name))
}
