package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/sounding-archiver/internal/domain"
	"github.com/couchcryptid/sounding-archiver/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrOutputDir is returned by Run when the output directory cannot be created.
// No day is processed in that case.
var ErrOutputDir = errors.New("output directory unavailable")

// Fetcher retrieves the raw page for a sounding URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Store persists validated reports.
type Store interface {
	EnsureDir() error
	Write(report domain.Report) (string, error)
}

// Publisher forwards stored reports to a downstream consumer.
type Publisher interface {
	Publish(ctx context.Context, report domain.Report) error
}

// Settings selects what the archiver requests and how reports are recognized.
type Settings struct {
	Start      time.Time
	End        time.Time
	Hour       string
	Station    string
	Region     string
	BaseURL    string
	FilePrefix string
	StopMarker string

	// RequestDelay spaces consecutive requests. Zero disables it.
	RequestDelay time.Duration
}

// Summary reports the result of a run.
type Summary struct {
	OK       int
	Skipped  int
	Errors   int
	Outcomes []domain.Outcome
}

func (s *Summary) add(o domain.Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch o.Kind {
	case domain.OutcomeOK:
		s.OK++
	case domain.OutcomeEmptyOrInvalid:
		s.Skipped++
	case domain.OutcomeError:
		s.Errors++
	}
}

// Archiver walks a date range and stores one report per day.
type Archiver struct {
	settings  Settings
	fetcher   Fetcher
	store     Store
	publisher Publisher
	status    io.Writer
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
	started   atomic.Bool

	total   atomic.Int64
	ok      atomic.Int64
	skipped atomic.Int64
	failed  atomic.Int64
	current atomic.Value // date being processed, as a string
}

// Progress is a point-in-time view of a running archiver.
type Progress struct {
	Total   int    `json:"total"`
	OK      int    `json:"ok"`
	Skipped int    `json:"skipped"`
	Errors  int    `json:"errors"`
	Current string `json:"current,omitempty"`
}

// Option configures optional Archiver collaborators.
type Option func(*Archiver)

// WithPublisher forwards every stored report to p.
func WithPublisher(p Publisher) Option {
	return func(a *Archiver) { a.publisher = p }
}

// WithClock replaces the real clock, for tests.
func WithClock(c clockwork.Clock) Option {
	return func(a *Archiver) { a.clock = c }
}

// New creates an Archiver. Status lines are written to status, one per day.
func New(s Settings, f Fetcher, st Store, status io.Writer, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Archiver {
	a := &Archiver{
		settings: s,
		fetcher:  f,
		store:    st,
		status:   status,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		metrics:  metrics,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CheckReadiness returns nil once the output directory exists and the first
// day has started processing.
func (a *Archiver) CheckReadiness(_ context.Context) error {
	if !a.started.Load() {
		return errors.New("archiver has not started processing")
	}
	return nil
}

// Progress returns the counts recorded so far. Safe for concurrent use.
func (a *Archiver) Progress() Progress {
	current, _ := a.current.Load().(string)
	return Progress{
		Total:   int(a.total.Load()),
		OK:      int(a.ok.Load()),
		Skipped: int(a.skipped.Load()),
		Errors:  int(a.failed.Load()),
		Current: current,
	}
}

// Run processes every day from Settings.Start to Settings.End inclusive. A
// failing day never stops the run; only an unusable output directory or a
// cancelled context ends it early.
func (a *Archiver) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := a.store.EnsureDir(); err != nil {
		return summary, fmt.Errorf("%w: %w", ErrOutputDir, err)
	}

	days := domain.Days(a.settings.Start, a.settings.End)
	a.logger.Info("archiver started",
		"start", a.settings.Start.Format(domain.DateLayout),
		"end", a.settings.End.Format(domain.DateLayout),
		"days", len(days),
		"station", a.settings.Station,
		"hour", a.settings.Hour,
	)
	a.metrics.RunInProgress.Set(1)
	defer a.metrics.RunInProgress.Set(0)
	a.total.Store(int64(len(days)))
	a.started.Store(true)
	defer a.current.Store("")

	for i, day := range days {
		if ctx.Err() != nil {
			a.logger.Warn("archiver stopping", "reason", ctx.Err(), "remaining", len(days)-i)
			return summary, nil
		}
		if i > 0 && !a.pause(ctx) {
			a.logger.Warn("archiver stopping", "reason", ctx.Err(), "remaining", len(days)-i)
			return summary, nil
		}

		a.current.Store(day.Format(domain.DateLayout))
		outcome := a.processDay(ctx, day)
		a.report(outcome)
		summary.add(outcome)
	}

	a.logger.Info("archiver finished",
		"ok", summary.OK,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return summary, nil
}

// processDay runs build → fetch → clean → validate → write for a single day.
func (a *Archiver) processDay(ctx context.Context, day time.Time) domain.Outcome {
	req := domain.Request{
		Date:    day,
		Hour:    a.settings.Hour,
		Station: a.settings.Station,
		Region:  a.settings.Region,
	}
	url := domain.BuildURL(a.settings.BaseURL, req)

	start := a.clock.Now()
	body, err := a.fetcher.Fetch(ctx, url)
	a.metrics.FetchDuration.Observe(a.clock.Since(start).Seconds())
	if err != nil {
		return domain.Outcome{
			Date: day,
			Kind: domain.OutcomeError,
			Err:  fmt.Errorf("fetch sounding: %w", err),
		}
	}

	cleaned, _ := domain.Clean(body, a.settings.StopMarker)
	if err := domain.Validate(cleaned, a.settings.StopMarker); err != nil {
		return domain.Outcome{Date: day, Kind: domain.OutcomeEmptyOrInvalid, Reason: err.Error()}
	}

	report := domain.Report{
		Request:  req,
		Filename: domain.Filename(a.settings.FilePrefix, day),
		Text:     cleaned,
	}
	if _, err := a.store.Write(report); err != nil {
		return domain.Outcome{
			Date: day,
			Kind: domain.OutcomeError,
			Err:  fmt.Errorf("store report: %w", err),
		}
	}
	a.metrics.BytesWritten.Add(float64(len(report.Text)))

	a.publish(ctx, report)

	return domain.Outcome{Date: day, Kind: domain.OutcomeOK, Filename: report.Filename}
}

// publish forwards the report when a publisher is configured. The file is
// already on disk, so a failure here does not change the day's outcome.
func (a *Archiver) publish(ctx context.Context, report domain.Report) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, report); err != nil {
		a.logger.Warn("publish report failed", "error", err, "file", report.Filename)
		a.metrics.PublishErrors.Inc()
		return
	}
	a.metrics.Published.Inc()
}

// report writes the console status line and records the outcome.
func (a *Archiver) report(o domain.Outcome) {
	a.metrics.Days.WithLabelValues(o.Kind.Status()).Inc()
	fmt.Fprintln(a.status, FormatStatus(o))

	date := o.Date.Format(domain.DateLayout)
	switch o.Kind {
	case domain.OutcomeOK:
		a.ok.Add(1)
		a.logger.Debug("day stored", "date", date, "file", o.Filename)
	case domain.OutcomeEmptyOrInvalid:
		a.skipped.Add(1)
		a.logger.Debug("day skipped", "date", date, "reason", o.Reason)
	case domain.OutcomeError:
		a.failed.Add(1)
		a.logger.Debug("day failed", "date", date, "error", o.Err)
	}
}

// pause waits RequestDelay between requests. Returns false if ctx ends first.
func (a *Archiver) pause(ctx context.Context) bool {
	d := a.settings.RequestDelay
	if d <= 0 {
		return true
	}

	timer := a.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}

// FormatStatus renders the console line for a day's outcome.
func FormatStatus(o domain.Outcome) string {
	date := o.Date.Format(domain.DateLayout)
	switch o.Kind {
	case domain.OutcomeOK:
		return fmt.Sprintf("[OK]   %s → %s", date, o.Filename)
	case domain.OutcomeEmptyOrInvalid:
		return fmt.Sprintf("[SKIP] %s – %s", date, o.Reason)
	default:
		return fmt.Sprintf("[ERR]  %s → %v", date, o.Err)
	}
}
