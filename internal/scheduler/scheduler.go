package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"weatherreport/internal/calculator"
	"weatherreport/internal/loader"
	"weatherreport/internal/model"
	"weatherreport/internal/recorder"
	"weatherreport/internal/report"

	"github.com/robfig/cron/v3"
)

// Sender delivers rendered reports.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs report jobs on a cron schedule.
type Scheduler struct {
	Cron     *cron.Cron
	DataPath string
	Reports  []string
	Sender   Sender // nil disables delivery
	Recorder recorder.Recorder
	Ctx      context.Context

	// Load reads the dataset; defaults to loader.LoadFile.
	Load func(path string) (model.Dataset, error)
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, dataPath string, reports []string, sender Sender, rec recorder.Recorder) *Scheduler {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		DataPath: dataPath,
		Reports:  reports,
		Sender:   sender,
		Recorder: rec,
		Ctx:      ctx,
		Load:     loader.LoadFile,
	}
}

// Register adds the report job under the given cron spec (seconds field first).
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.reportTask); err != nil {
		return fmt.Errorf("register report task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

func (s *Scheduler) reportTask() {
	s.RunNow()
}

// RunNow loads the data file, renders the configured reports, delivers
// them and records the run. The returned event describes the outcome.
func (s *Scheduler) RunNow() *recorder.RunEvent {
	log.Printf("[INFO] running report task for %s", s.DataPath)
	evt := recorder.NewRunEvent(s.DataPath, s.Reports)

	text, err := s.build(evt)
	switch {
	case err != nil:
		log.Printf("[ERROR] report task: %v", err)
		evt.Err = err.Error()
		s.trySend(fmt.Sprintf("Weather report failed: %v", err))
	case text == "":
		log.Printf("[WARN] no weather records in %s, nothing to send", s.DataPath)
	default:
		s.trySend(text)
	}

	if err := s.Recorder.RecordRun(evt); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	return evt
}

func (s *Scheduler) build(evt *recorder.RunEvent) (string, error) {
	ds, err := s.Load(s.DataPath)
	if err != nil {
		return "", fmt.Errorf("load data: %w", err)
	}
	if len(ds) == 0 {
		return "", nil
	}

	if ov, ok := report.Summarize(ds); ok {
		evt.Overview = ov
	}
	if m, err := calculator.Mean(ds.Lows()); err == nil {
		evt.MeanLowF = m
	}
	if m, err := calculator.Mean(ds.Highs()); err == nil {
		evt.MeanHighF = m
	}
	return report.Render(ds, s.Reports...)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	kind := strings.TrimPrefix(strings.ToLower(command), "/")
	switch kind {
	case report.KindOverview, report.KindDaily, report.KindStats:
		ds, err := s.Load(s.DataPath)
		if err != nil {
			return fmt.Sprintf("Could not load weather data: %v", err)
		}
		out, err := report.Render(ds, kind)
		if err != nil {
			return fmt.Sprintf("Could not build %s report: %v", kind, err)
		}
		if out == "" {
			return "No weather records available."
		}
		return out
	default:
		return "Available commands:\n• /overview\n• /daily\n• /stats"
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Sender == nil {
		return
	}
	if err := s.Sender.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
