package submission

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/emiliopalmerini/feedwise/internal/domain"
	"github.com/emiliopalmerini/feedwise/internal/ports"
)

// ErrSubmitInFlight is returned when Submit is called while a previous submission is pending.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// State is a point-in-time copy of the flow, safe to hand to a renderer.
type State struct {
	Values    domain.FormValues
	Loading   bool
	Err       error
	Analysis  *domain.AnalysisResult
	Submitted bool
}

// ErrMessage returns the line shown under the submit button, or "".
func (s State) ErrMessage() string {
	return domain.UserMessage(s.Err, domain.FallbackSubmitMessage)
}

// Flow drives one fill-and-submit cycle for a form connection.
type Flow struct {
	submitter ports.Submitter
	recorder  ports.MetricsRecorder
	logger    ports.Logger
	onSuccess func(domain.AnalysisResult)

	mu        sync.Mutex
	formID    string
	fields    []domain.Field
	values    domain.FormValues
	loading   bool
	err       error
	analysis  *domain.AnalysisResult
	submitted bool
}

// NewFlow creates a flow for formID validating against fields.
func NewFlow(formID string, fields []domain.Field, submitter ports.Submitter, recorder ports.MetricsRecorder, logger ports.Logger) *Flow {
	return &Flow{
		submitter: submitter,
		recorder:  recorder,
		logger:    logger,
		formID:    formID,
		fields:    fields,
		values:    domain.FormValues{},
	}
}

// OnSuccess registers a callback run after every accepted submission.
func (f *Flow) OnSuccess(fn func(domain.AnalysisResult)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSuccess = fn
}

// SetFields replaces the definition the next submission is validated against.
func (f *Flow) SetFields(fields []domain.Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// SetFormID points the flow at another form connection.
func (f *Flow) SetFormID(formID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.formID = formID
}

// SetValue stores a text value and clears any previous error.
func (f *Flow) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.SetText(name, value)
	f.err = nil
}

// SetRating stores a rating value and clears any previous error.
func (f *Flow) SetRating(name string, value int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values.SetRating(name, value)
	f.err = nil
}

// State returns a copy of the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := State{
		Values:    f.values.Clone(),
		Loading:   f.loading,
		Err:       f.err,
		Submitted: f.submitted,
	}
	if f.analysis != nil {
		a := *f.analysis
		s.Analysis = &a
	}
	return s
}

// Submit validates the values and, if they pass, sends them to the form's webhook.
// Validation failures never reach the network. Failed submissions keep the values
// so the user can retry by hand.
func (f *Flow) Submit(ctx context.Context) (domain.AnalysisResult, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return domain.AnalysisResult{}, ErrSubmitInFlight
	}
	formID := f.formID

	if err := f.validateLocked(); err != nil {
		f.err = err
		f.mu.Unlock()
		f.recorder.RecordSubmission(ctx, formID, ports.OutcomeValidation)
		return domain.AnalysisResult{}, err
	}

	f.loading = true
	f.err = nil
	values := f.values.Clone()
	f.mu.Unlock()

	f.logger.Debug(fmt.Sprintf("submitting form %s with %d values", formID, len(values)))
	result, err := f.submitter.Submit(ctx, formID, values)

	f.mu.Lock()
	f.loading = false
	if err != nil {
		f.err = err
		f.mu.Unlock()
		f.logger.Error(fmt.Sprintf("submission for form %s failed: %v", formID, err))
		f.recorder.RecordSubmission(ctx, formID, ports.OutcomeRemote)
		return domain.AnalysisResult{}, err
	}

	f.analysis = &result
	f.values = domain.FormValues{}
	f.submitted = true
	onSuccess := f.onSuccess
	f.mu.Unlock()

	f.logger.Info(fmt.Sprintf("form %s submitted, sentiment=%s", formID, result.Sentiment))
	f.recorder.RecordSubmission(ctx, formID, ports.OutcomeSubmitted)
	if onSuccess != nil {
		onSuccess(result)
	}
	return result, nil
}

func (f *Flow) validateLocked() error {
	if _, err := domain.ValidateFormID(f.formID); err != nil {
		return err
	}
	if missing := domain.MissingRequired(f.fields, f.values); len(missing) > 0 {
		return &domain.ValidationError{Missing: missing}
	}
	if dups := domain.FieldListFrom(f.fields).DuplicateNames(); len(dups) > 0 {
		return &domain.ValidationError{Duplicates: dups}
	}
	return nil
}

// Resubmit returns the flow to the fill view, dropping the last analysis and error.
func (f *Flow) Resubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analysis = nil
	f.err = nil
	f.submitted = false
}
