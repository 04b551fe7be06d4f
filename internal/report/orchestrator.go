// Package report implements the report orchestrator: a three-screen state
// machine that joins two feed fetches with a minimum loading delay and
// normalizes the results into an always-renderable trade report.
package report

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/braincast-labs/braincast/internal/feed"
	"github.com/braincast-labs/braincast/internal/logger"
	"github.com/braincast-labs/braincast/internal/models"
)

// ErrRunInProgress is returned by Run when the session is not on the
// landing screen. Overlapping runs are ignored rather than queued.
var ErrRunInProgress = errors.New("report run already in progress")

// Source produces one endpoint payload per call.
type Source interface {
	Fetch(ctx context.Context) (feed.Payload, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (feed.Payload, error)

func (f SourceFunc) Fetch(ctx context.Context) (feed.Payload, error) {
	return f(ctx)
}

// Session is the full screen state owned by the orchestrator. Whenever
// State is StateReport both Snapshot and Report are populated; a partial
// report is never exposed.
type Session struct {
	State    models.ScreenState
	Snapshot *models.PriceSnapshot
	Report   *models.TradeReport
	RunID    string
}

// Orchestrator drives the landing → loading → report state machine.
type Orchestrator struct {
	mu       sync.Mutex
	session  Session
	prices   Source
	signals  Source
	minDelay time.Duration
}

// New creates an orchestrator on the landing screen.
func New(prices, signals Source, minDelay time.Duration) *Orchestrator {
	return &Orchestrator{
		session:  Session{State: models.StateLanding},
		prices:   prices,
		signals:  signals,
		minDelay: minDelay,
	}
}

// Run executes one report generation: it drops the previous report, holds
// the loading screen for at least the minimum delay while both feeds are
// fetched concurrently, then publishes the normalized result. Every path
// ends on the report screen; feed failures and panics degrade to the
// fallback constants instead of propagating.
func (o *Orchestrator) Run(ctx context.Context) error {
	runID := uuid.New().String()
	if err := o.begin(runID); err != nil {
		return err
	}
	logger.Debug("report run started: run_id=%s", runID)

	snapshot, trade := o.generate(ctx, runID)

	o.mu.Lock()
	next, ok := transition(o.session.State, eventLoaded)
	if ok {
		o.session.State = next
		o.session.Snapshot = &snapshot
		o.session.Report = &trade
	}
	o.mu.Unlock()

	if !ok {
		// A reset landed while the run was in flight; the result is stale.
		logger.Debug("report discarded after reset: run_id=%s", runID)
		return nil
	}
	logger.Info("report ready: run_id=%s direction=%s price=%d change24h=%.2f",
		runID, trade.Direction, snapshot.Price, snapshot.Change24h)
	return nil
}

// Reset returns the session to the landing screen and drops any held
// report data. Idempotent.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	next, _ := transition(o.session.State, eventReset)
	o.session = Session{State: next}
}

// State returns the current screen state.
func (o *Orchestrator) State() models.ScreenState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.session.State
}

// Current returns a copy of the session.
func (o *Orchestrator) Current() Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.session
	if s.Snapshot != nil {
		snapshot := *s.Snapshot
		s.Snapshot = &snapshot
	}
	if s.Report != nil {
		trade := *s.Report
		s.Report = &trade
	}
	return s
}

// begin moves the session from landing to loading and clears the previous
// report data, rejecting overlapping runs.
func (o *Orchestrator) begin(runID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	next, ok := transition(o.session.State, eventStart)
	if !ok {
		return ErrRunInProgress
	}
	o.session = Session{State: next, RunID: runID}
	return nil
}

// generate starts both fetches and the delay gate concurrently, joins on
// the slowest of the three, and normalizes whatever came back. A panic
// inside the sequence degrades to the full fallback pair.
func (o *Orchestrator) generate(ctx context.Context, runID string) (snapshot models.PriceSnapshot, trade models.TradeReport) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("report generation panicked: run_id=%s: %v", runID, r)
			snapshot = models.FallbackSnapshot()
			trade = models.FallbackReport()
		}
	}()

	var pricePayload, signalPayload feed.Payload

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pricePayload = fetchQuiet(gctx, o.prices, "price", runID)
		return nil
	})
	g.Go(func() error {
		signalPayload = fetchQuiet(gctx, o.signals, "signal", runID)
		return nil
	})
	g.Go(func() error {
		timer := time.NewTimer(o.minDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-gctx.Done():
		}
		return nil
	})
	_ = g.Wait()

	return normalizePrice(pricePayload), normalizeReport(signalPayload)
}

// fetchQuiet resolves a failed or panicking fetch to a nil payload, the
// "feed unavailable" sentinel, so one bad feed never aborts the run.
func fetchQuiet(ctx context.Context, src Source, name, runID string) (p feed.Payload) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("%s feed panicked: run_id=%s: %v", name, runID, r)
			p = nil
		}
	}()
	payload, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("%s feed unavailable: run_id=%s: %v", name, runID, err)
		return nil
	}
	return payload
}
