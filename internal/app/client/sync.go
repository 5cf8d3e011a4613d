package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"lavka/internal/domain/operation"

	"golang.org/x/exp/slog"
)

// ApplyFunc применяет одну отложенную операцию к удаленному хранилищу.
// Ошибка означает "не вышло, оставить в очереди"; ErrNoMatch — особый
// случай, см. Drain.
type ApplyFunc func(ctx context.Context, env operation.Envelope) error

// Coordinator гонит очередь отложенных операций к нулю, когда есть сеть.
// Гарантии: доставка не-менее-одного-раза, применение строго по порядку
// постановки, последовательно, без параллельных запросов — параллельный
// повтор двух списаний одного товара дал бы неверный остаток.
type Coordinator struct {
	queue   *Queue
	monitor *Monitor
	apply   ApplyFunc
	log     *slog.Logger

	mu        sync.Mutex
	isSyncing bool
	lastDrain time.Time
	stats     SyncStats
}

// SyncStats — накопленная статистика синхронизации
type SyncStats struct {
	TotalDrains  int       `json:"total_drains"`
	TotalApplied int       `json:"total_applied"`
	TotalFailed  int       `json:"total_failed"`
	TotalNoMatch int       `json:"total_no_match"`
	LastSuccess  time.Time `json:"last_success"`
}

// DrainResult — итог одного прохода по очереди
type DrainResult struct {
	Applied  int           `json:"applied"`
	Failed   int           `json:"failed"`
	NoMatch  int           `json:"no_match"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

func NewCoordinator(queue *Queue, monitor *Monitor, apply ApplyFunc, log *slog.Logger) *Coordinator {
	return &Coordinator{
		queue:   queue,
		monitor: monitor,
		apply:   apply,
		log:     log.With("component", "sync"),
	}
}

// Bind подписывает координатор на переходы offline → online: единственный
// автоматический триггер прохода. Повторные появления сети во время
// текущего прохода гасятся защитой от реентерабельности.
func (c *Coordinator) Bind(ctx context.Context) {
	c.monitor.Subscribe(func(online bool) {
		if !online {
			return
		}
		go func() {
			if _, err := c.Drain(ctx); err != nil {
				c.log.Error("автоматический проход не удался", "error", err)
			}
		}()
	})
}

// Drain выполняет один проход: снимок очереди на старте, затем операции
// строго по одной. Успех — операция удаляется из очереди; любая ошибка
// применения — операция остается до следующего прохода, а проход идет
// дальше: одна битая операция не должна запирать независимые за ней.
// Исключение — ErrNoMatch: списание по товару, которого на сервере больше
// нет, не сможет примениться никогда, такая операция закрывается сразу.
//
// Операции, поставленные в очередь во время прохода, в снимок не попадают
// и ждут следующего прохода — иначе под непрерывной записью проход не
// закончился бы никогда.
//
// Повторный вызов при уже идущем проходе — no-op.
func (c *Coordinator) Drain(ctx context.Context) (*DrainResult, error) {
	c.mu.Lock()
	if c.isSyncing {
		c.mu.Unlock()
		c.log.Debug("проход уже идет, пропускаем")
		return nil, nil
	}
	c.isSyncing = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.isSyncing = false
		c.mu.Unlock()
	}()

	start := time.Now()
	result := &DrainResult{}

	snapshot, err := c.queue.ListPending()
	if err != nil {
		return nil, err
	}

	c.log.Info("начало прохода синхронизации", "pending", len(snapshot))

	for i, env := range snapshot {
		// Сеть пропала посреди прохода: новых операций не начинаем,
		// остаток очереди ждет следующего появления сети
		if ctx.Err() != nil || !c.monitor.IsOnline() {
			result.Skipped = len(snapshot) - i
			c.log.Warn("проход прерван, остаток остается в очереди", "skipped", result.Skipped)
			break
		}

		err := c.apply(ctx, env)
		switch {
		case err == nil:
			if err := c.queue.Resolve(env.ID); err != nil {
				c.log.Error("операция применена, но не удалена из очереди",
					"id", env.ID, "error", err)
			}
			result.Applied++

		case errors.Is(err, ErrNoMatch):
			// Товар удален или переименован на сервере — повтор бессмыслен
			c.log.Warn("цель операции не найдена на сервере, операция закрыта",
				"id", env.ID, "kind", env.Kind)
			if err := c.queue.Resolve(env.ID); err != nil {
				c.log.Error("не удалось закрыть операцию", "id", env.ID, "error", err)
			}
			result.NoMatch++

		default:
			// Сетевые, валидационные и авторизационные ошибки не
			// различаем: операция остается и будет повторена
			c.log.Warn("операция не применилась, остается в очереди",
				"id", env.ID, "kind", env.Kind, "error", err)
			result.Failed++
		}
	}

	result.Duration = time.Since(start)

	c.mu.Lock()
	c.stats.TotalDrains++
	c.stats.TotalApplied += result.Applied
	c.stats.TotalFailed += result.Failed
	c.stats.TotalNoMatch += result.NoMatch
	if result.Failed == 0 && result.Skipped == 0 {
		c.stats.LastSuccess = time.Now()
	}
	c.lastDrain = time.Now()
	c.mu.Unlock()

	c.log.Info("проход завершен",
		"applied", result.Applied,
		"failed", result.Failed,
		"no_match", result.NoMatch,
		"skipped", result.Skipped,
		"duration", result.Duration,
	)

	return result, nil
}

// AutoSync запускает периодические проходы до отмены контекста
func (c *Coordinator) AutoSync(ctx context.Context, interval time.Duration) {
	c.log.Info("автосинхронизация запущена", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("автосинхронизация остановлена")
			return
		case <-ticker.C:
			if !c.monitor.IsOnline() {
				continue
			}
			if _, err := c.Drain(ctx); err != nil {
				c.log.Error("ошибка автосинхронизации", "error", err)
			}
		}
	}
}

// IsSyncing сообщает, идет ли проход прямо сейчас
func (c *Coordinator) IsSyncing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSyncing
}

// Stats возвращает копию статистики
func (c *Coordinator) Stats() SyncStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// LastDrain возвращает время последнего прохода
func (c *Coordinator) LastDrain() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDrain
}
