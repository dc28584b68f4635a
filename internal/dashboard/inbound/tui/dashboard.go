package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emiliopalmerini/feedwise/internal/dashboard"
	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/components"
	"github.com/emiliopalmerini/feedwise/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/feedwise/internal/util"
)

// SnapshotMsg signals that the query published a new snapshot.
type SnapshotMsg struct{}

// Dashboard lists submissions for the connected form with search, filter and stats.
type Dashboard struct {
	query    *dashboard.Query
	updates  chan struct{}
	snapshot dashboard.Snapshot
	search   textinput.Model
	spinner  spinner.Model
	cursor   int
	expanded map[string]bool
	help     components.HelpBar
	styles   *theme.Styles
	width    int
}

// NewDashboard creates the dashboard screen backed by query.
func NewDashboard(query *dashboard.Query) *Dashboard {
	search := textinput.New()
	search.Placeholder = "Search feedback..."
	search.Prompt = "/ "
	search.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	d := &Dashboard{
		query:    query,
		updates:  make(chan struct{}, 1),
		snapshot: query.Snapshot(),
		search:   search,
		spinner:  sp,
		expanded: make(map[string]bool),
		styles:   theme.Default(),
		help: components.NewHelpBar(
			components.KeyBinding{Key: "/", Desc: "search"},
			components.KeyBinding{Key: "f", Desc: "filter"},
			components.KeyBinding{Key: "r", Desc: "refresh"},
			components.KeyBinding{Key: "j/k", Desc: "move"},
			components.KeyBinding{Key: "enter", Desc: "details"},
		),
	}
	query.OnChange(func(dashboard.Snapshot) {
		select {
		case d.updates <- struct{}{}:
		default:
		}
	})
	return d
}

func (d *Dashboard) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		<-d.updates
		return SnapshotMsg{}
	}
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	d.query.Refresh()
	return tea.Batch(d.waitForSnapshot(), d.spinner.Tick)
}

// Capturing reports whether the search box owns the keyboard.
func (d *Dashboard) Capturing() bool {
	return d.search.Focused()
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (*Dashboard, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		d.snapshot = d.query.Snapshot()
		if d.cursor >= len(d.snapshot.Records) {
			d.cursor = max(0, len(d.snapshot.Records)-1)
		}
		return d, d.waitForSnapshot()

	case spinner.TickMsg:
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case tea.KeyMsg:
		if d.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				d.search.Blur()
				return d, nil
			}
			var cmd tea.Cmd
			before := d.search.Value()
			d.search, cmd = d.search.Update(msg)
			if after := d.search.Value(); after != before {
				d.query.SetSearchTerm(after)
			}
			return d, cmd
		}

		switch msg.String() {
		case "/":
			return d, d.search.Focus()
		case "f":
			next := d.snapshot.Query.Filter.Next()
			d.query.SetFilter(next)
			d.snapshot.Query.Filter = next
		case "r":
			d.query.Refresh()
		case "j", "down":
			if d.cursor < len(d.snapshot.Records)-1 {
				d.cursor++
			}
		case "k", "up":
			if d.cursor > 0 {
				d.cursor--
			}
		case "enter", " ":
			if d.cursor < len(d.snapshot.Records) {
				id := d.snapshot.Records[d.cursor].ID
				d.expanded[id] = !d.expanded[id]
			}
		}
	}
	return d, nil
}

// View implements tea.Model
func (d *Dashboard) View() string {
	s := d.snapshot
	if s.FormID == "" {
		return d.styles.Muted.Render("Connect a form to see its feedback.")
	}

	title := d.styles.Title.Render(fmt.Sprintf("Feedback for %s", s.FormID))
	sections := []string{title, d.renderControls(), "", d.renderStats(), ""}

	if s.Err != nil {
		sections = append(sections, d.styles.Error.Render("Error: "+domain.UserMessage(s.Err, domain.FallbackAPIMessage)), "")
	}
	sections = append(sections, d.renderList(), d.help.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (d *Dashboard) renderControls() string {
	var filters []string
	for _, f := range domain.Filters {
		label := strings.ToUpper(string(f[:1])) + string(f[1:])
		if f == d.snapshot.Query.Filter {
			filters = append(filters, d.styles.Active.Render("["+label+"]"))
		} else {
			filters = append(filters, d.styles.Inactive.Render(label))
		}
	}
	status := ""
	if d.snapshot.Status == dashboard.StatusLoading {
		status = " " + d.spinner.View()
	}
	return d.search.View() + status + "\n" + strings.Join(filters, "  ")
}

func (d *Dashboard) renderStats() string {
	stats := d.snapshot.Stats
	pct := stats.Percentages()
	rows := []string{
		d.styles.Subtitle.Render(fmt.Sprintf("Total responses: %d", stats.Total)),
		components.NewPercentBar("Positive", pct.Positive, d.styles.Positive).View(),
		components.NewPercentBar("Neutral", pct.Neutral, d.styles.Neutral).View(),
		components.NewPercentBar("Negative", pct.Negative, d.styles.Negative).View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (d *Dashboard) renderList() string {
	records := d.snapshot.Records
	if len(records) == 0 {
		if d.snapshot.Status == dashboard.StatusLoading {
			return d.styles.Muted.Render("Loading feedback...")
		}
		return d.styles.Muted.Render("No feedback found")
	}

	var b strings.Builder
	for i, r := range records {
		sentiment := r.Sentiment.Normalized()
		cursor := "  "
		if i == d.cursor {
			cursor = d.styles.Active.Render("> ")
		}
		date := util.FormatDateTime(r.CreatedAt.Time)
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n",
			cursor,
			d.styles.ForSentiment(string(sentiment)).Render(fmt.Sprintf("%-8s", sentiment)),
			d.styles.Muted.Render(date),
			d.styles.Body.Render(util.Truncate(r.Headline(), 60)),
		))
		if d.expanded[r.ID] {
			b.WriteString(d.renderDetails(r))
		}
	}
	return b.String()
}

func (d *Dashboard) renderDetails(r domain.FeedbackRecord) string {
	var lines []string
	if r.Summary != "" {
		lines = append(lines, d.styles.Label.Render("Summary: ")+d.styles.Body.Render(r.Summary))
	}
	if r.SentimentAnalysis != "" {
		lines = append(lines, d.styles.Label.Render("Sentiment: ")+d.styles.Body.Render(r.SentimentAnalysis))
	}
	if r.DetailedAnalysis != "" {
		lines = append(lines, d.styles.Label.Render("Analysis: ")+d.styles.Body.Render(r.DetailedAnalysis))
	}
	for _, k := range sortedKeys(r.Responses) {
		lines = append(lines, d.styles.Muted.Render(fmt.Sprintf("%s: %v", k, r.Responses[k])))
	}
	return d.styles.Card.MarginLeft(4).Render(strings.Join(lines, "\n")) + "\n"
}
