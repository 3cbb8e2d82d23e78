package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sgodoy/joblist/internal/app"
	"github.com/sgodoy/joblist/internal/domain"
	"github.com/sgodoy/joblist/internal/format"
	"github.com/sgodoy/joblist/internal/service"
)

// jobMode represents the current screen mode
type jobMode int

const (
	jobModeList jobMode = iota
	jobModeSearch
	jobModeNew
	jobModeEdit
)

// form field indices
const (
	jobFieldName = iota
	jobFieldQuote
	jobFieldQuoteDate
	jobFieldDueDate
	jobFieldCompany
	jobFieldCount
)

// JobsModel displays a navigable list of jobs with create/edit forms
type JobsModel struct {
	app       *app.App
	jobs      []*domain.Job
	cursor    int
	statusMsg string

	// Search state
	query       string
	searchInput textinput.Model

	// Form state
	mode       jobMode
	fields     []textinput.Model
	fieldFocus int
	editingID  string // "" for new job
	formErr    string
}

// NewJobsModel creates a new jobs screen model
func NewJobsModel(a *app.App) tea.Model {
	m := &JobsModel{app: a}
	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search jobs"
	m.searchInput.CharLimit = 60
	m.searchInput.Width = 30
	m.reload()
	return m
}

// IsCapturingInput returns true when a form or the search box is active
func (m *JobsModel) IsCapturingInput() bool {
	return m.mode != jobModeList
}

func (m *JobsModel) Init() tea.Cmd {
	return nil
}

// reload re-reads the aggregate snapshot and applies the search filter.
func (m *JobsModel) reload() {
	all := m.app.Jobs.List(context.Background())

	q := strings.ToLower(strings.TrimSpace(m.query))
	if q == "" {
		m.jobs = all
	} else {
		filtered := make([]*domain.Job, 0, len(all))
		for _, j := range all {
			if strings.Contains(strings.ToLower(j.Name), q) {
				filtered = append(filtered, j)
			}
		}
		m.jobs = filtered
	}

	if m.cursor >= len(m.jobs) {
		m.cursor = len(m.jobs) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *JobsModel) initForm(editing *domain.Job) {
	m.fields = make([]textinput.Model, jobFieldCount)

	m.fields[jobFieldName] = textinput.New()
	m.fields[jobFieldName].Placeholder = "Job name"
	m.fields[jobFieldName].CharLimit = 100
	m.fields[jobFieldName].Width = 40

	m.fields[jobFieldQuote] = textinput.New()
	m.fields[jobFieldQuote].Placeholder = "1.500.000"
	m.fields[jobFieldQuote].CharLimit = 20
	m.fields[jobFieldQuote].Width = 20

	m.fields[jobFieldQuoteDate] = textinput.New()
	m.fields[jobFieldQuoteDate].Placeholder = "dd/mm/yyyy"
	m.fields[jobFieldQuoteDate].CharLimit = 10
	m.fields[jobFieldQuoteDate].Width = 12

	m.fields[jobFieldDueDate] = textinput.New()
	m.fields[jobFieldDueDate].Placeholder = "dd/mm/yyyy (blank = +1 month)"
	m.fields[jobFieldDueDate].CharLimit = 10
	m.fields[jobFieldDueDate].Width = 12

	m.fields[jobFieldCompany] = textinput.New()
	m.fields[jobFieldCompany].Placeholder = "Company name"
	m.fields[jobFieldCompany].CharLimit = 100
	m.fields[jobFieldCompany].Width = 40

	if editing != nil {
		ctx := context.Background()
		m.fields[jobFieldName].SetValue(editing.Name)
		m.fields[jobFieldQuote].SetValue(m.app.Format.Number(float64(editing.Quote)))
		m.fields[jobFieldQuoteDate].SetValue(format.ISOToDMY(editing.QuoteDate))
		m.fields[jobFieldDueDate].SetValue(format.ISOToDMY(editing.DueDate))
		m.fields[jobFieldCompany].SetValue(m.app.Companies.CompanyName(ctx, editing.CompanyID))
		m.editingID = editing.ID
	} else {
		m.editingID = ""
	}

	m.formErr = ""
	m.fieldFocus = jobFieldName
	m.fields[jobFieldName].Focus()
}

// saveJob validates the form and creates or updates the job. A
// validation failure keeps the form open with a message and performs
// no mutation.
func (m *JobsModel) saveJob() {
	ctx := context.Background()
	f := m.app.Format

	name := strings.TrimSpace(m.fields[jobFieldName].Value())
	if name == "" {
		m.formErr = "name is required"
		return
	}

	quote := f.ParseNumber(m.fields[jobFieldQuote].Value())
	if quote <= 0 {
		m.formErr = "quote must be a positive amount"
		return
	}

	quoteDate := format.DMYToISO(m.fields[jobFieldQuoteDate].Value())
	if quoteDate == "" {
		m.formErr = "quote date must be a valid dd/mm/yyyy"
		return
	}

	dueDate := format.AddMonths(quoteDate, 1)
	if v := strings.TrimSpace(m.fields[jobFieldDueDate].Value()); v != "" {
		dueDate = format.DMYToISO(v)
		if dueDate == "" {
			m.formErr = "due date must be a valid dd/mm/yyyy"
			return
		}
	}

	companyID := m.app.Companies.UpsertByName(ctx, m.fields[jobFieldCompany].Value())

	if m.editingID != "" {
		m.app.Jobs.UpdateJob(ctx, m.editingID, service.JobUpdate{
			Name:      &name,
			Quote:     &quote,
			QuoteDate: &quoteDate,
			DueDate:   &dueDate,
			CompanyID: &companyID,
		})
		m.statusMsg = fmt.Sprintf("Updated %q", name)
	} else {
		m.app.Jobs.AddJob(ctx, service.JobFields{
			Name:      name,
			Quote:     quote,
			QuoteDate: quoteDate,
			DueDate:   dueDate,
			CompanyID: companyID,
		})
		m.statusMsg = fmt.Sprintf("Created %q", name)
	}

	m.mode = jobModeList
	m.reload()
}

func (m *JobsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case jobModeSearch:
			return m.updateSearch(msg)
		case jobModeNew, jobModeEdit:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m *JobsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.jobs)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Search):
		m.mode = jobModeSearch
		m.searchInput.SetValue(m.query)
		m.searchInput.Focus()
	case key.Matches(msg, DefaultKeyMap.Select):
		if m.cursor < len(m.jobs) {
			jobID := m.jobs[m.cursor].ID
			return m, func() tea.Msg { return OpenJobMsg{JobID: jobID} }
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.mode = jobModeNew
		m.initForm(nil)
	case key.Matches(msg, DefaultKeyMap.Edit):
		if m.cursor < len(m.jobs) {
			m.mode = jobModeEdit
			m.initForm(m.jobs[m.cursor])
		}
	case key.Matches(msg, DefaultKeyMap.Delete):
		if m.cursor < len(m.jobs) {
			job := m.jobs[m.cursor]
			m.app.Jobs.DeleteJob(context.Background(), job.ID)
			m.statusMsg = fmt.Sprintf("Deleted %q", job.Name)
			m.reload()
		}
	case key.Matches(msg, DefaultKeyMap.Paid):
		if m.cursor < len(m.jobs) {
			job := m.jobs[m.cursor]
			paid := !job.Paid
			m.app.Jobs.UpdateJob(context.Background(), job.ID, service.JobUpdate{Paid: &paid})
			m.reload()
		}
	}
	return m, nil
}

func (m *JobsModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			m.searchInput.SetValue("")
		}
		m.query = m.searchInput.Value()
		m.searchInput.Blur()
		m.mode = jobModeList
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	m.reload()
	return m, cmd
}

func (m *JobsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = jobModeList
		return m, nil
	case tea.KeyEnter:
		if m.fieldFocus == jobFieldCount-1 {
			m.saveJob()
			return m, nil
		}
		m.focusField(m.fieldFocus + 1)
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.fieldFocus + 1) % jobFieldCount)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.fieldFocus + jobFieldCount - 1) % jobFieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *JobsModel) focusField(i int) {
	m.fields[m.fieldFocus].Blur()
	m.fieldFocus = i
	m.fields[i].Focus()
}

func (m *JobsModel) View() string {
	if m.mode == jobModeNew || m.mode == jobModeEdit {
		return m.viewForm()
	}

	var b strings.Builder

	if m.mode == jobModeSearch {
		b.WriteString("Search: " + m.searchInput.View() + "\n\n")
	} else if m.query != "" {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Filter: %q", m.query)) + "\n\n")
	}

	if len(m.jobs) == 0 {
		b.WriteString(subtitleStyle.Render("No jobs yet. Press [n] to create one."))
		return b.String()
	}

	ctx := context.Background()
	f := m.app.Format

	for i, job := range m.jobs {
		totals := job.Totals()
		company := m.app.Companies.CompanyName(ctx, job.CompanyID)

		line := fmt.Sprintf("%-28s %-18s %14s  %7s  %s",
			truncateStr(job.Name, 28),
			truncateStr(company, 18),
			f.Currency(totals.Quote),
			marginLabel(totals),
			dueLabel(job),
		)

		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + subtitleStyle.Render("[enter] open  [n]ew  [e]dit  [d]elete  [p]aid  [/] search"))
	if m.statusMsg != "" {
		b.WriteString("\n" + titleStyle.Render(m.statusMsg))
	}
	return b.String()
}

func (m *JobsModel) viewForm() string {
	var b strings.Builder

	if m.editingID != "" {
		b.WriteString(titleStyle.Render("Edit Job") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("New Job") + "\n\n")
	}

	labels := []string{"Name", "Quote", "Quote date", "Due date", "Company"}
	for i, input := range m.fields {
		marker := "  "
		if i == m.fieldFocus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-11s %s\n", marker, labels[i]+":", input.View()))
	}

	if m.formErr != "" {
		b.WriteString("\n" + overdueStyle.Render(m.formErr))
	}

	b.WriteString("\n\n" + subtitleStyle.Render("[enter] next/save  [tab] move  [esc] cancel"))
	return b.String()
}
