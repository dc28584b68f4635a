package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/dashboard"
	dashboardtui "github.com/emiliopalmerini/feedwise/internal/dashboard/inbound/tui"
	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/feedwise/internal/ports"
	"github.com/emiliopalmerini/feedwise/internal/submission"
	submissiontui "github.com/emiliopalmerini/feedwise/internal/submission/inbound/tui"
)

// Screen identifies the current screen
type Screen int

const (
	ScreenConnect Screen = iota
	ScreenBuilder
	ScreenForm
	ScreenDashboard
)

// Deps are the collaborators the application is composed from.
type Deps struct {
	API        ports.FeedbackAPI
	Recorder   ports.MetricsRecorder
	Logger     ports.Logger
	Debounce   time.Duration
	WebhookURL func(formID string) string
	FormID     string
	Fields     []domain.Field
}

// App is the interactive feedback client
type App struct {
	currentScreen Screen
	formID        string
	fields        *domain.FieldList
	flow          *submission.Flow
	query         *dashboard.Query
	connect       *Connect
	builder       *Builder
	form          *submissiontui.Form
	dashboard     *dashboardtui.Dashboard
	styles        *theme.Styles
	width         int
}

// NewApp creates the application. A new submission refreshes the dashboard.
func NewApp(ctx context.Context, deps Deps) *App {
	fields := domain.NewFieldList()
	if len(deps.Fields) > 0 {
		fields = domain.FieldListFrom(deps.Fields)
	}

	flow := submission.NewFlow(deps.FormID, fields.Fields(), deps.API, deps.Recorder, deps.Logger)
	query := dashboard.NewQuery(ctx, deps.FormID, deps.API, deps.Recorder, deps.Logger, deps.Debounce)
	flow.OnSuccess(func(domain.AnalysisResult) { query.Refresh() })

	return &App{
		currentScreen: ScreenConnect,
		formID:        deps.FormID,
		fields:        fields,
		flow:          flow,
		query:         query,
		connect:       NewConnect(ctx, deps.API, deps.Recorder, deps.WebhookURL, deps.FormID),
		builder:       NewBuilder(fields),
		form:          submissiontui.NewForm(ctx, flow, fields.Fields()),
		dashboard:     dashboardtui.NewDashboard(query),
		styles:        theme.Default(),
	}
}

// Close stops background dashboard work.
func (a *App) Close() {
	a.query.Close()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.connect.Init(), a.dashboard.Init())
}

func (a *App) capturing() bool {
	switch a.currentScreen {
	case ScreenConnect:
		return a.connect.Capturing()
	case ScreenBuilder:
		return a.builder.Capturing()
	case ScreenForm:
		return a.form.Capturing()
	case ScreenDashboard:
		return a.dashboard.Capturing()
	}
	return false
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "1":
				a.currentScreen = ScreenConnect
				return a, nil
			case "2":
				a.currentScreen = ScreenBuilder
				return a, nil
			case "3":
				a.currentScreen = ScreenForm
				return a, nil
			case "4":
				a.currentScreen = ScreenDashboard
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case ConnectedMsg:
		a.formID = msg.FormID
		a.flow.SetFormID(msg.FormID)
		a.query.SetFormID(msg.FormID)
		return a, nil

	case FieldsChangedMsg:
		a.form.SetFields(a.fields.Fields())
		return a, nil

	case submissiontui.SubmittedMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.Update(msg)
		return a, cmd

	case dashboardtui.SnapshotMsg:
		var cmd tea.Cmd
		a.dashboard, cmd = a.dashboard.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var formCmd, dashCmd tea.Cmd
		a.form, formCmd = a.form.Update(msg)
		a.dashboard, dashCmd = a.dashboard.Update(msg)
		return a, tea.Batch(formCmd, dashCmd)

	case globalStatsLoadedMsg, globalStatsErrorMsg:
		var cmd tea.Cmd
		a.connect, cmd = a.connect.Update(msg)
		return a, cmd
	}

	// Forward to current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenConnect:
		a.connect, cmd = a.connect.Update(msg)
	case ScreenBuilder:
		a.builder, cmd = a.builder.Update(msg)
	case ScreenForm:
		a.form, cmd = a.form.Update(msg)
	case ScreenDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	width := 64
	if a.width > 0 {
		width = min(a.width, 100)
	}
	sep := lipgloss.NewStyle().
		Foreground(theme.Gray700).
		Render(strings.Repeat("─", width))

	var content string
	switch a.currentScreen {
	case ScreenConnect:
		content = a.connect.View()
	case ScreenBuilder:
		content = a.builder.View()
	case ScreenForm:
		content = a.form.View()
	case ScreenDashboard:
		content = a.dashboard.View()
	}

	return a.styles.Container.Render(lipgloss.JoinVertical(lipgloss.Left, header, nav, sep, "", content))
}

func (a *App) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.White).
		Render("FEEDWISE")

	tagline := "Not connected"
	if a.formID != "" {
		tagline = "Form " + a.formID
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", a.styles.Muted.Render(tagline))
}

func (a *App) renderNav() string {
	items := []NavItem{
		{Key: "1", Label: "Connect", Active: a.currentScreen == ScreenConnect},
		{Key: "2", Label: "Builder", Active: a.currentScreen == ScreenBuilder},
		{Key: "3", Label: "Form", Active: a.currentScreen == ScreenForm},
		{Key: "4", Label: "Dashboard", Active: a.currentScreen == ScreenDashboard},
	}
	return NewNavBar(items).View()
}
