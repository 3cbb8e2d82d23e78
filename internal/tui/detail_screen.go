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

type detailMode int

const (
	detailModeView detailMode = iota
	detailModeNewExpense
)

const (
	expenseFieldDescription = iota
	expenseFieldAmount
	expenseFieldCount
)

// DetailModel shows a single job: totals, expenses and invoices.
// Expenses can be added and removed in place.
type DetailModel struct {
	app       *app.App
	jobID     string
	job       *domain.Job
	cursor    int
	statusMsg string

	mode       detailMode
	fields     []textinput.Model
	fieldFocus int
	formErr    string
}

// NewDetailModel creates a detail screen for one job
func NewDetailModel(a *app.App, jobID string) tea.Model {
	m := &DetailModel{app: a, jobID: jobID}
	m.reload()
	return m
}

// IsCapturingInput returns true while the expense form is open
func (m *DetailModel) IsCapturingInput() bool {
	return m.mode != detailModeView
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) reload() {
	m.job = m.app.Jobs.Get(context.Background(), m.jobID)
	if m.job == nil {
		return
	}
	if m.cursor >= len(m.job.Expenses) {
		m.cursor = len(m.job.Expenses) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *DetailModel) initExpenseForm() {
	m.fields = make([]textinput.Model, expenseFieldCount)

	m.fields[expenseFieldDescription] = textinput.New()
	m.fields[expenseFieldDescription].Placeholder = "Description"
	m.fields[expenseFieldDescription].CharLimit = 100
	m.fields[expenseFieldDescription].Width = 40

	m.fields[expenseFieldAmount] = textinput.New()
	m.fields[expenseFieldAmount].Placeholder = "35.000"
	m.fields[expenseFieldAmount].CharLimit = 20
	m.fields[expenseFieldAmount].Width = 20

	m.formErr = ""
	m.fieldFocus = expenseFieldDescription
	m.fields[expenseFieldDescription].Focus()
}

func (m *DetailModel) saveExpense() {
	description := strings.TrimSpace(m.fields[expenseFieldDescription].Value())
	if description == "" {
		m.formErr = "description is required"
		return
	}

	amount := m.app.Format.ParseNumber(m.fields[expenseFieldAmount].Value())
	if amount <= 0 {
		m.formErr = "amount must be positive"
		return
	}

	m.app.Jobs.AddExpense(context.Background(), m.jobID, service.ExpenseFields{
		Description: description,
		Amount:      amount,
	})

	m.statusMsg = fmt.Sprintf("Added %q", description)
	m.mode = detailModeView
	m.reload()
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.mode == detailModeNewExpense {
			return m.updateForm(msg)
		}
		return m.updateView(msg)
	}
	return m, nil
}

func (m *DetailModel) updateView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenJobs} }

	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.job != nil && m.cursor < len(m.job.Expenses)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.mode = detailModeNewExpense
		m.initExpenseForm()
	case key.Matches(msg, DefaultKeyMap.Delete):
		if m.job != nil && m.cursor < len(m.job.Expenses) {
			expense := m.job.Expenses[m.cursor]
			m.app.Jobs.DeleteExpense(context.Background(), m.jobID, expense.ID)
			m.statusMsg = fmt.Sprintf("Deleted %q", expense.Description)
			m.reload()
		}
	case key.Matches(msg, DefaultKeyMap.Paid):
		if m.job != nil {
			paid := !m.job.Paid
			m.app.Jobs.UpdateJob(context.Background(), m.jobID, service.JobUpdate{Paid: &paid})
			m.reload()
		}
	}
	return m, nil
}

func (m *DetailModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = detailModeView
		return m, nil
	case tea.KeyEnter:
		if m.fieldFocus == expenseFieldCount-1 {
			m.saveExpense()
			return m, nil
		}
		m.focusField(m.fieldFocus + 1)
		return m, nil
	case tea.KeyTab, tea.KeyDown:
		m.focusField((m.fieldFocus + 1) % expenseFieldCount)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.focusField((m.fieldFocus + expenseFieldCount - 1) % expenseFieldCount)
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *DetailModel) focusField(i int) {
	m.fields[m.fieldFocus].Blur()
	m.fieldFocus = i
	m.fields[i].Focus()
}

func (m *DetailModel) View() string {
	if m.job == nil {
		return subtitleStyle.Render("Job not found. Press [esc] to go back.")
	}

	if m.mode == detailModeNewExpense {
		return m.viewForm()
	}

	ctx := context.Background()
	f := m.app.Format
	totals := m.job.Totals()

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.job.Name))
	if company := m.app.Companies.CompanyName(ctx, m.job.CompanyID); company != "" {
		b.WriteString(subtitleStyle.Render("  " + company))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  Quote     %14s    quoted %s\n",
		f.Currency(totals.Quote), format.ISOToDMY(m.job.QuoteDate)))
	b.WriteString(fmt.Sprintf("  Expenses  %14s\n", f.Currency(totals.TotalExpenses)))

	profit := f.Currency(totals.Profit)
	if totals.Profit < 0 {
		profit = lossStyle.Render(profit)
	} else {
		profit = profitStyle.Render(profit)
	}
	b.WriteString(fmt.Sprintf("  Profit    %14s    margin %s\n", profit, marginLabel(totals)))
	b.WriteString(fmt.Sprintf("  Status    %s\n\n", dueLabel(m.job)))

	b.WriteString(titleStyle.Render("Expenses") + "\n")
	if len(m.job.Expenses) == 0 {
		b.WriteString(subtitleStyle.Render("  No expenses. Press [n] to add one.") + "\n")
	}
	for i, e := range m.job.Expenses {
		line := fmt.Sprintf("%-36s %14s  %s",
			truncateStr(e.Description, 36),
			f.Currency(float64(e.Amount)),
			subtitleStyle.Render(format.ISOToDMY(e.CreatedAt)),
		)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if len(m.job.Invoices) > 0 {
		b.WriteString("\n" + titleStyle.Render("Invoices") + "\n")
		for _, inv := range m.job.Invoices {
			status := subtitleStyle.Render("pending")
			if inv.Paid {
				status = paidStyle.Render("paid")
			}
			b.WriteString(fmt.Sprintf("  %-12s %14s  due %-10s  %s\n",
				inv.Number,
				f.Currency(float64(inv.Total)),
				format.ISOToDMY(inv.DueDate),
				status,
			))
		}
	}

	b.WriteString("\n" + subtitleStyle.Render("[n]ew expense  [d]elete expense  [p]aid  [esc] back"))
	if m.statusMsg != "" {
		b.WriteString("\n" + titleStyle.Render(m.statusMsg))
	}
	return b.String()
}

func (m *DetailModel) viewForm() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Expense") + "\n\n")

	labels := []string{"Description", "Amount"}
	for i, input := range m.fields {
		marker := "  "
		if i == m.fieldFocus {
			marker = "> "
		}
		b.WriteString(fmt.Sprintf("%s%-12s %s\n", marker, labels[i]+":", input.View()))
	}

	if m.formErr != "" {
		b.WriteString("\n" + overdueStyle.Render(m.formErr))
	}

	b.WriteString("\n\n" + subtitleStyle.Render("[enter] next/save  [tab] move  [esc] cancel"))
	return b.String()
}
