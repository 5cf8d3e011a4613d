package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavka/internal/domain/operation"
	"lavka/internal/utils/logger"
)

// applyStub записывает порядок вызовов и падает на заданных id
type applyStub struct {
	calls   []int64
	failIDs map[int64]error
}

func (s *applyStub) apply(_ context.Context, env operation.Envelope) error {
	s.calls = append(s.calls, env.ID)
	if err, ok := s.failIDs[env.ID]; ok {
		return err
	}
	return nil
}

func newTestCoordinator(t *testing.T, stub *applyStub) (*Coordinator, *Queue, *Monitor) {
	t.Helper()

	queue := newTestQueue(t)
	monitor := NewMonitor(logger.Discard())
	coordinator := NewCoordinator(queue, monitor, stub.apply, logger.Discard())
	return coordinator, queue, monitor
}

func enqueueN(t *testing.T, queue *Queue, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		id, err := queue.Enqueue(operation.DeductStock{
			Items: []operation.DeductItem{{Name: fmt.Sprintf("товар-%d", i), QuantityDisplay: 1}},
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestDrainFIFO(t *testing.T) {
	stub := &applyStub{}
	coordinator, queue, _ := newTestCoordinator(t, stub)

	ids := enqueueN(t, queue, 5)

	result, err := coordinator.Drain(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 5, result.Applied)
	assert.Zero(t, result.Failed)
	assert.Equal(t, ids, stub.calls, "операции применяются строго в порядке постановки")

	count, err := queue.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "успешные операции удалены из очереди")
}

func TestDrainAtLeastOnceUnderFailure(t *testing.T) {
	stub := &applyStub{failIDs: map[int64]error{}}
	coordinator, queue, _ := newTestCoordinator(t, stub)

	ids := enqueueN(t, queue, 4)
	// Вторая операция падает, остальные проходят
	stub.failIDs[ids[1]] = errors.New("сеть моргнула")

	result, err := coordinator.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, 1, result.Failed)

	// Упавшая операция осталась, проход не заперся на ней
	pending, err := queue.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ids[1], pending[0].ID)

	// Второй проход, ошибка ушла — очередь опустела
	stub.failIDs = nil
	result, err = coordinator.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	count, err := queue.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDrainNoMatchResolved(t *testing.T) {
	stub := &applyStub{failIDs: map[int64]error{}}
	coordinator, queue, _ := newTestCoordinator(t, stub)

	ids := enqueueN(t, queue, 2)
	// Товар первой операции удален на сервере: повтор не поможет никогда
	stub.failIDs[ids[0]] = fmt.Errorf("списание: %w", ErrNoMatch)

	result, err := coordinator.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 1, result.NoMatch)
	assert.Zero(t, result.Failed)

	count, err := queue.Count()
	require.NoError(t, err)
	assert.Zero(t, count, "операция без цели закрывается, а не висит вечно")
}

func TestDrainReentrantIsNoop(t *testing.T) {
	queue := newTestQueue(t)
	monitor := NewMonitor(logger.Discard())

	enqueueN(t, queue, 1)

	started := make(chan struct{})
	release := make(chan struct{})

	blockingApply := func(_ context.Context, _ operation.Envelope) error {
		close(started)
		<-release
		return nil
	}
	coordinator := NewCoordinator(queue, monitor, blockingApply, logger.Discard())

	done := make(chan *DrainResult)
	go func() {
		result, _ := coordinator.Drain(context.Background())
		done <- result
	}()

	<-started
	assert.True(t, coordinator.IsSyncing())

	// Повторный вызов при идущем проходе — no-op
	result, err := coordinator.Drain(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)

	close(release)
	first := <-done
	require.NotNil(t, first)
	assert.Equal(t, 1, first.Applied)
	assert.False(t, coordinator.IsSyncing())
}

func TestDrainStopsWhenOffline(t *testing.T) {
	queue := newTestQueue(t)
	monitor := NewMonitor(logger.Discard())

	ids := enqueueN(t, queue, 3)

	var calls []int64
	apply := func(_ context.Context, env operation.Envelope) error {
		calls = append(calls, env.ID)
		// После первой операции сеть пропадает
		monitor.SetOnline(false)
		return nil
	}
	coordinator := NewCoordinator(queue, monitor, apply, logger.Discard())

	result, err := coordinator.Drain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{ids[0]}, calls, "после потери сети новые операции не начинаются")
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 2, result.Skipped)

	count, err := queue.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "остаток ждет следующего появления сети")
}

func TestDrainSnapshotExcludesNewOps(t *testing.T) {
	queue := newTestQueue(t)
	monitor := NewMonitor(logger.Discard())

	enqueueN(t, queue, 2)

	applied := 0
	apply := func(_ context.Context, _ operation.Envelope) error {
		applied++
		if applied == 1 {
			// Операция, поставленная во время прохода, в снимок не входит
			_, err := queue.Enqueue(operation.LedgerEntry{
				CustomerName: "Ахмед", Amount: 10, Date: time.Now(),
			})
			require.NoError(t, err)
		}
		return nil
	}
	coordinator := NewCoordinator(queue, monitor, apply, logger.Discard())

	result, err := coordinator.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied, "снимок ограничен моментом старта прохода")

	count, err := queue.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "новая операция ждет следующего прохода")
}

func TestReconnectTriggersDrain(t *testing.T) {
	queue := newTestQueue(t)
	monitor := NewMonitor(logger.Discard())

	enqueueN(t, queue, 2)

	drained := make(chan struct{})
	apply := func(_ context.Context, _ operation.Envelope) error {
		return nil
	}
	coordinator := NewCoordinator(queue, monitor, apply, logger.Discard())
	coordinator.Bind(context.Background())

	go func() {
		for {
			count, err := queue.Count()
			if err == nil && count == 0 {
				close(drained)
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	}()

	monitor.SetOnline(false)
	monitor.SetOnline(true) // единственный автоматический триггер

	select {
	case <-drained:
	case <-time.After(3 * time.Second):
		t.Fatal("возврат сети не запустил проход")
	}
}

func TestDrainStats(t *testing.T) {
	stub := &applyStub{}
	coordinator, queue, _ := newTestCoordinator(t, stub)

	enqueueN(t, queue, 3)

	_, err := coordinator.Drain(context.Background())
	require.NoError(t, err)

	stats := coordinator.Stats()
	assert.Equal(t, 1, stats.TotalDrains)
	assert.Equal(t, 3, stats.TotalApplied)
	assert.False(t, stats.LastSuccess.IsZero())
	assert.False(t, coordinator.LastDrain().IsZero())
}
