package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dafibh/pocketbook/pocketbook-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProcessor struct {
	calls atomic.Int32
	err   error
}

func (p *countingProcessor) ProcessDue(ctx context.Context) (int, error) {
	p.calls.Add(1)
	return 0, p.err
}

func setupRecurringWorker(processor DueProcessor) *RecurringWorker {
	config := RecurringWorkerConfig{
		Interval: 100 * time.Millisecond, // Fast interval for testing
	}
	return NewRecurringWorker(processor, zerolog.Nop(), config)
}

func TestRecurringWorker_NewRecurringWorker(t *testing.T) {
	worker := setupRecurringWorker(&countingProcessor{})

	assert.NotNil(t, worker)
	assert.Equal(t, 100*time.Millisecond, worker.interval)
	assert.False(t, worker.IsRunning())
}

func TestRecurringWorker_DefaultConfig(t *testing.T) {
	config := DefaultRecurringWorkerConfig()
	assert.Equal(t, 1*time.Hour, config.Interval)

	worker := NewRecurringWorker(&countingProcessor{}, zerolog.Nop(), RecurringWorkerConfig{})
	assert.Equal(t, 1*time.Hour, worker.interval)
}

func TestRecurringWorker_StartStop(t *testing.T) {
	processor := &countingProcessor{}
	worker := setupRecurringWorker(processor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, worker.IsRunning())

	worker.Stop()
	assert.False(t, worker.IsRunning())
	assert.Equal(t, int32(1), processor.calls.Load(), "sweep runs once on startup")
}

func TestRecurringWorker_StartTwice(t *testing.T) {
	worker := setupRecurringWorker(&countingProcessor{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	worker.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	assert.True(t, worker.IsRunning())

	worker.Stop()
	assert.False(t, worker.IsRunning())
}

func TestRecurringWorker_StopWithoutStart(t *testing.T) {
	worker := setupRecurringWorker(&countingProcessor{})

	worker.Stop()
	assert.False(t, worker.IsRunning())
}

func TestRecurringWorker_TicksAndSurvivesErrors(t *testing.T) {
	processor := &countingProcessor{err: errors.New("store offline")}
	worker := setupRecurringWorker(processor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	require.Eventually(t, func() bool {
		return processor.calls.Load() >= 3
	}, 2*time.Second, 20*time.Millisecond)

	assert.True(t, worker.IsRunning())
	worker.Stop()
	assert.GreaterOrEqual(t, worker.Runs(), 3)
}

func TestRecurringWorker_ContextCancel(t *testing.T) {
	worker := setupRecurringWorker(&countingProcessor{})

	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		return !worker.IsRunning()
	}, time.Second, 10*time.Millisecond)
}

func TestRecurringWorker_DrivesRecurringService(t *testing.T) {
	f := newRecurringFixture("2024-01-01", RecurringServiceConfig{})
	f.addTemplate("tpl-1", "user-1", "2024-01-01", domain.FrequencyMonthly, true)

	worker := setupRecurringWorker(f.service)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	worker.Start(ctx)
	require.Eventually(t, func() bool {
		return f.transactions.Count() == 1
	}, time.Second, 10*time.Millisecond)
	worker.Stop()

	assert.Equal(t, 1, f.transactions.Count())
	assert.Equal(t, "2024-02-01", f.templates.Get("tpl-1").NextDueDate)
}
