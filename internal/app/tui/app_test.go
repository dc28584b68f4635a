package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/feedwise/internal/adapters/logger"
	"github.com/emiliopalmerini/feedwise/internal/adapters/otel"
	"github.com/emiliopalmerini/feedwise/internal/domain"
)

type stubAPI struct {
	stubGlobal
}

func (stubAPI) Submit(context.Context, string, domain.FormValues) (domain.AnalysisResult, error) {
	return domain.AnalysisResult{}, nil
}

func (stubAPI) ListFeedback(context.Context, string, domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
	return nil, nil
}

func (stubAPI) Stats(context.Context, string) (domain.FeedbackStats, error) {
	return domain.FeedbackStats{}, nil
}

func newTestApp(formID string) *App {
	return NewApp(context.Background(), Deps{
		API:        stubAPI{},
		Recorder:   otel.NewNoOpRecorder(),
		Logger:     logger.Discard{},
		WebhookURL: webhook,
		FormID:     formID,
	})
}

func update(a *App, msg tea.Msg) *App {
	m, _ := a.Update(msg)
	return m.(*App)
}

func TestApp_NavigationRespectsCapture(t *testing.T) {
	a := newTestApp("")
	defer a.Close()

	// connect input starts focused, so digits are typed rather than navigating
	a = update(a, runes("2"))
	if a.currentScreen != ScreenConnect {
		t.Fatal("expected digits to go to the focused input")
	}

	a = update(a, tea.KeyMsg{Type: tea.KeyEsc})
	a = update(a, runes("2"))
	if a.currentScreen != ScreenBuilder {
		t.Errorf("expected builder screen, got %v", a.currentScreen)
	}
	a = update(a, runes("4"))
	if a.currentScreen != ScreenDashboard {
		t.Errorf("expected dashboard screen, got %v", a.currentScreen)
	}
}

func TestApp_ConnectedPropagates(t *testing.T) {
	a := newTestApp("")
	defer a.Close()

	a = update(a, ConnectedMsg{FormID: "f1"})
	if a.query.Snapshot().FormID != "f1" {
		t.Error("expected dashboard query to follow the connected form")
	}
	if a.formID != "f1" {
		t.Errorf("expected form id f1, got %q", a.formID)
	}
}

func TestApp_FieldsChangedRebuildsForm(t *testing.T) {
	a := newTestApp("f1")
	defer a.Close()

	a.fields.Add(domain.FieldDate)
	a = update(a, FieldsChangedMsg{})

	a.currentScreen = ScreenForm
	if view := a.View(); !strings.Contains(view, "Date") {
		t.Error("expected the new field on the form screen")
	}
}

func TestApp_QuitKeys(t *testing.T) {
	a := newTestApp("")
	defer a.Close()

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

type countingAPI struct {
	stubAPI
	lists atomic.Int32
}

func (c *countingAPI) ListFeedback(context.Context, string, domain.FeedbackQuery) ([]domain.FeedbackRecord, error) {
	c.lists.Add(1)
	return nil, nil
}

func TestApp_SuccessfulSubmitRefreshesDashboard(t *testing.T) {
	api := &countingAPI{}
	a := NewApp(context.Background(), Deps{
		API:        api,
		Recorder:   otel.NewNoOpRecorder(),
		Logger:     logger.Discard{},
		Debounce:   10 * time.Millisecond,
		WebhookURL: webhook,
		FormID:     "f1",
	})
	defer a.Close()

	a.flow.SetValue("name", "Ada")
	a.flow.SetValue("feedback", "Great")
	if _, err := a.flow.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for api.lists.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected a dashboard fetch after submitting")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
