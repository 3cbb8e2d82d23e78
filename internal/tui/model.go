package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sgodoy/joblist/internal/app"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenJobs Screen = iota
	ScreenDetail
	ScreenCompanies
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenJobs:
		return "Jobs"
	case ScreenDetail:
		return "Job Detail"
	case ScreenCompanies:
		return "Companies"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	jobs      tea.Model
	detail    tea.Model
	companies tea.Model

	err error
}

// New creates a new root model
func New(a *app.App) Model {
	return Model{
		app:           a,
		currentScreen: ScreenJobs,
		jobs:          NewJobsModel(a),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.jobs != nil {
		return m.jobs.Init()
	}
	return nil
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenJobs:
		if m.jobs == nil {
			m.jobs = NewJobsModel(m.app)
			return m.jobs.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenCompanies:
		if m.companies == nil {
			m.companies = NewCompaniesModel(m.app)
			return m.companies.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input
// (text forms). When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreen returns the model for the current screen
func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenJobs:
		return m.jobs
	case ScreenDetail:
		return m.detail
	case ScreenCompanies:
		return m.companies
	}
	return nil
}

func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Jobs) && m.currentScreen != ScreenJobs:
				m.currentScreen = ScreenJobs
				return m, m.initScreen(ScreenJobs)

			case key.Matches(msg, DefaultKeyMap.Companies) && m.currentScreen != ScreenCompanies:
				m.currentScreen = ScreenCompanies
				return m, m.initScreen(ScreenCompanies)
			}
		}

	case OpenJobMsg:
		m.detail = NewDetailModel(m.app, msg.JobID)
		m.currentScreen = ScreenDetail
		return m, m.detail.Init()

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		return m, m.initScreen(msg.Screen)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenJobs:
		if m.jobs != nil {
			m.jobs, cmd = m.jobs.Update(msg)
		}
	case ScreenDetail:
		if m.detail != nil {
			m.detail, cmd = m.detail.Update(msg)
		}
	case ScreenCompanies:
		if m.companies != nil {
			m.companies, cmd = m.companies.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("joblist - %s", m.currentScreen.String()))
	footer := footerStyle.Render("[J]obs  [C]ompanies  [Q]uit")

	var content string
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	} else {
		content = "Loading..."
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
