package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sgodoy/joblist/internal/app"
	"github.com/sgodoy/joblist/internal/domain"
)

// CompaniesModel lists companies with their job counts and billed
// totals. Companies are created implicitly when jobs or invoices name
// them, so this screen is read-only.
type CompaniesModel struct {
	app       *app.App
	companies []*domain.Company
	cursor    int
}

// NewCompaniesModel creates a new companies screen model
func NewCompaniesModel(a *app.App) tea.Model {
	m := &CompaniesModel{app: a}
	m.reload()
	return m
}

func (m *CompaniesModel) Init() tea.Cmd {
	return nil
}

func (m *CompaniesModel) reload() {
	m.companies = m.app.Companies.List(context.Background())
	if m.cursor >= len(m.companies) {
		m.cursor = len(m.companies) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *CompaniesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.companies)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *CompaniesModel) View() string {
	if len(m.companies) == 0 {
		return subtitleStyle.Render("No companies yet. They appear when a job names one.")
	}

	jobs := m.app.Jobs.List(context.Background())
	counts := make(map[string]int, len(m.companies))
	quoted := make(map[string]float64, len(m.companies))
	for _, j := range jobs {
		counts[j.CompanyID]++
		quoted[j.CompanyID] += float64(j.Quote)
	}

	var b strings.Builder
	for i, c := range m.companies {
		line := fmt.Sprintf("%-32s %4d jobs  %14s",
			truncateStr(c.Name, 32),
			counts[c.ID],
			m.app.Format.Currency(quoted[c.ID]),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
