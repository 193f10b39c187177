package recorder

import (
	"time"

	"github.com/google/uuid"

	"weatherreport/internal/model"
)

// RunEvent holds everything recorded about one report run.
type RunEvent struct {
	ID        uuid.UUID
	StartedAt time.Time
	Source    string   // data file path
	Reports   []string // report kinds produced, e.g. "overview"
	Overview  model.Overview
	MeanLowF  float64
	MeanHighF float64
	Err       string // empty on success
}

// NewRunEvent creates an event with a fresh ID.
func NewRunEvent(source string, reports []string) *RunEvent {
	return &RunEvent{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		Source:    source,
		Reports:   reports,
	}
}

// Failed reports whether the run ended with an error.
func (e *RunEvent) Failed() bool { return e.Err != "" }

// Recorder persists report run history.
type Recorder interface {
	RecordRun(evt *RunEvent) error
	Close() error
}
