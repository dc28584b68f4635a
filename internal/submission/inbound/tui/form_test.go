package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/adapters/otel"
	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/submission"
)

type mockSubmitter struct {
	got   domain.FormValues
	calls int
}

func (m *mockSubmitter) Submit(_ context.Context, _ string, values domain.FormValues) (domain.AnalysisResult, error) {
	m.calls++
	m.got = values
	return domain.AnalysisResult{Sentiment: domain.SentimentPositive, Summary: "Happy customer"}, nil
}

func typeText(f *Form, s string) *Form {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

// runSubmit executes the command returned for a submit key and feeds the result back.
func runSubmit(t *testing.T, f *Form, cmd tea.Cmd) *Form {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a submit command")
	}
	batch, ok := cmd().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected a batch of commands")
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(SubmittedMsg); ok {
			f, _ = f.Update(msg)
			return f
		}
	}
	t.Fatal("no SubmittedMsg produced")
	return f
}

func newTestForm(sub *mockSubmitter, fields []domain.Field) (*Form, *submission.Flow) {
	flow := submission.NewFlow("f1", fields, sub, otel.NewNoOpRecorder(), logger.Discard{})
	return NewForm(context.Background(), flow, fields), flow
}

func TestForm_FillAndSubmit(t *testing.T) {
	sub := &mockSubmitter{}
	f, flow := newTestForm(sub, domain.SeedFields())

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeText(f, "Ada")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeText(f, "Great")

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	f = runSubmit(t, f, cmd)

	if sub.calls != 1 {
		t.Fatalf("expected 1 submit, got %d", sub.calls)
	}
	if sub.got.Text("name") != "Ada" || sub.got.Text("feedback") != "Great" {
		t.Errorf("unexpected values %v", sub.got)
	}
	if !flow.State().Submitted {
		t.Error("expected flow to be submitted")
	}
	if !strings.Contains(f.View(), "Happy customer") {
		t.Error("expected analysis to be rendered")
	}

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if flow.State().Submitted {
		t.Error("expected resubmit to return to the form")
	}
	if strings.Contains(f.View(), "Ada") {
		t.Error("expected inputs to be cleared after a submission")
	}
}

func TestForm_MissingRequiredShowsMessage(t *testing.T) {
	sub := &mockSubmitter{}
	f, _ := newTestForm(sub, domain.SeedFields())

	f, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	f = runSubmit(t, f, cmd)

	if sub.calls != 0 {
		t.Error("expected no network call")
	}
	if !strings.Contains(f.View(), "Please complete the following required fields: Your Name, Your Feedback") {
		t.Errorf("expected validation message in view:\n%s", f.View())
	}
}

func TestForm_RatingAndSelect(t *testing.T) {
	fields := []domain.Field{
		{ID: 1, Name: "score", Label: "Score", Required: true, Input: domain.RatingInput{Max: 10}},
		{ID: 2, Name: "plan", Label: "Plan", Input: domain.SelectInput{Options: "Free, Pro"}},
	}
	sub := &mockSubmitter{}
	f, flow := newTestForm(sub, fields)

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyDown})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})

	values := flow.State().Values
	if values.Rating("score") != 10 {
		t.Errorf("expected rating 10, got %v", values["score"])
	}
	if values.Text("plan") != "Pro" {
		t.Errorf("expected Pro, got %v", values["plan"])
	}
}

func TestForm_SetFieldsKeepsValues(t *testing.T) {
	f, flow := newTestForm(&mockSubmitter{}, domain.SeedFields())
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeText(f, "Ada")

	list := domain.FieldListFrom(domain.SeedFields())
	list.Add(domain.FieldRating)
	f.SetFields(list.Fields())

	if flow.State().Values.Text("name") != "Ada" {
		t.Error("expected value to survive a definition change")
	}
	if !strings.Contains(f.View(), "Rating") {
		t.Error("expected new field to be rendered")
	}
}
