package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/components"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/feedwise/internal/ports"
	"github.com/emiliopalmerini/feedwise/internal/util"
)

// Connect lets the user pick the form id every other screen works on.
type Connect struct {
	ctx        context.Context
	stats      ports.GlobalStatsReader
	recorder   ports.MetricsRecorder
	webhookURL func(formID string) string
	input      textinput.Model
	formID     string
	err        error
	global     *domain.GlobalStats
	globalErr  error
	help       components.HelpBar
	styles     *theme.Styles
}

// NewConnect creates the connect screen. formID may be preset from the command line.
func NewConnect(ctx context.Context, stats ports.GlobalStatsReader, recorder ports.MetricsRecorder, webhookURL func(string) string, formID string) *Connect {
	ti := textinput.New()
	ti.Placeholder = "e.g., customer-feedback-2025"
	ti.Prompt = "Form ID: "
	ti.CharLimit = 64
	ti.Width = 40
	ti.SetValue(formID)
	ti.Focus()

	return &Connect{
		ctx:        ctx,
		stats:      stats,
		recorder:   recorder,
		webhookURL: webhookURL,
		input:      ti,
		formID:     formID,
		styles:     theme.Default(),
		help: components.NewHelpBar(
			components.KeyBinding{Key: "enter", Desc: "connect"},
			components.KeyBinding{Key: "esc", Desc: "leave input"},
			components.KeyBinding{Key: "i", Desc: "edit id"},
		),
	}
}

// Capturing reports whether the id input owns the keyboard.
func (c *Connect) Capturing() bool {
	return c.input.Focused()
}

// Init implements tea.Model
func (c *Connect) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, c.loadGlobalStats())
}

func (c *Connect) loadGlobalStats() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		stats, err := c.stats.GlobalStats(c.ctx)
		c.recorder.RecordFetch(c.ctx, ports.FetchGlobalStats, time.Since(start), err)
		if err != nil {
			return globalStatsErrorMsg{err}
		}
		return globalStatsLoadedMsg{stats}
	}
}

// Update implements tea.Model
func (c *Connect) Update(msg tea.Msg) (*Connect, tea.Cmd) {
	switch msg := msg.(type) {
	case globalStatsLoadedMsg:
		c.global = &msg.stats
		c.globalErr = nil
		return c, nil

	case globalStatsErrorMsg:
		c.globalErr = msg.err
		return c, nil

	case tea.KeyMsg:
		if !c.input.Focused() {
			if msg.String() == "i" {
				return c, c.input.Focus()
			}
			return c, nil
		}

		switch msg.String() {
		case "esc":
			c.input.Blur()
			return c, nil
		case "enter":
			id, err := domain.ValidateFormID(c.input.Value())
			if err != nil {
				c.err = err
				return c, nil
			}
			c.err = nil
			c.formID = id
			c.input.SetValue(id)
			c.input.Blur()
			return c, func() tea.Msg { return ConnectedMsg{FormID: id} }
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.err = nil
		return c, cmd
	}
	return c, nil
}

// View implements tea.Model
func (c *Connect) View() string {
	sections := []string{
		c.styles.Title.Render("Connect Your Form"),
		c.styles.Body.Render("Enter the ID of the form whose responses you want to collect and analyze."),
		"",
		c.input.View(),
	}
	if c.err != nil {
		sections = append(sections, c.styles.Error.Render(domain.UserMessage(c.err, domain.FormIDInvalidMessage)))
	}

	if c.formID != "" {
		sections = append(sections, "", c.renderIntegration())
	}
	if g := c.renderGlobal(); g != "" {
		sections = append(sections, "", g)
	}
	sections = append(sections, c.help.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (c *Connect) renderIntegration() string {
	url := c.webhookURL(c.formID)
	var b strings.Builder
	b.WriteString(c.styles.Success.Render("✓ Connected to " + c.formID))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Label.Render("Webhook URL"))
	b.WriteString("\n")
	b.WriteString(c.styles.Highlighted.Render(url))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Label.Render("Send responses from any form"))
	b.WriteString("\n")
	b.WriteString(c.styles.Muted.Render(fmt.Sprintf(
		"curl -X POST %s \\\n  -H 'Content-Type: application/json' \\\n  -d '{\"responses\": {\"name\": \"Ada\", \"feedback\": \"Great!\"}}'", url)))
	return c.styles.Card.Render(b.String())
}

func (c *Connect) renderGlobal() string {
	if c.globalErr != nil {
		return c.styles.Muted.Render("Platform stats unavailable")
	}
	if c.global == nil {
		return ""
	}
	cards := []MetricCard{
		{Title: "Forms", Value: util.FormatCount(c.global.Forms), Subtitle: "connected"},
		{Title: "Responses", Value: util.FormatCount(c.global.Responses), Subtitle: "analyzed"},
		{Title: "Satisfaction", Value: util.FormatPercent(c.global.Satisfaction), Subtitle: "positive share"},
	}
	return RenderMetricCards(cards)
}

type globalStatsLoadedMsg struct {
	stats domain.GlobalStats
}

type globalStatsErrorMsg struct {
	err error
}
