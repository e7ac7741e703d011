package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DueProcessor runs one recurring sweep
type DueProcessor interface {
	ProcessDue(ctx context.Context) (int, error)
}

// RecurringWorker is a background worker that periodically runs the recurring sweep
type RecurringWorker struct {
	processor DueProcessor
	logger    zerolog.Logger
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	mu        sync.Mutex
	running   bool
	runs      int
}

// RecurringWorkerConfig holds configuration for the recurring worker
type RecurringWorkerConfig struct {
	Interval time.Duration // How often to run the sweep
}

// DefaultRecurringWorkerConfig returns sensible defaults
func DefaultRecurringWorkerConfig() RecurringWorkerConfig {
	return RecurringWorkerConfig{
		Interval: 1 * time.Hour,
	}
}

// NewRecurringWorker creates a new recurring worker
func NewRecurringWorker(processor DueProcessor, logger zerolog.Logger, config RecurringWorkerConfig) *RecurringWorker {
	if config.Interval <= 0 {
		config.Interval = 1 * time.Hour
	}

	return &RecurringWorker{
		processor: processor,
		logger:    logger.With().Str("component", "recurring_worker").Logger(),
		interval:  config.Interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background sweep loop
func (w *RecurringWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Msg("Starting recurring worker")

	go w.run(ctx)
}

// Stop gracefully stops the worker and waits for an in-progress sweep to finish
func (w *RecurringWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping recurring worker")
	close(w.stopCh)
	<-w.doneCh
	w.logger.Info().Msg("Recurring worker stopped")
}

// run is the main loop for the recurring worker
func (w *RecurringWorker) run(ctx context.Context) {
	defer close(w.doneCh)
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	// Run immediately on startup
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RecurringWorker) sweep(ctx context.Context) {
	w.mu.Lock()
	w.runs++
	w.mu.Unlock()

	count, err := w.processor.ProcessDue(ctx)
	if err != nil {
		w.logger.Error().Err(err).Int("materialized", count).Msg("Recurring sweep failed")
		return
	}
	if count > 0 {
		w.logger.Info().Int("materialized", count).Msg("Recurring sweep materialized transactions")
	}
}

// IsRunning returns whether the worker is currently running
func (w *RecurringWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Runs returns how many sweeps the worker has started
func (w *RecurringWorker) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}
