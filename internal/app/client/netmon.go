package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slog"
)

// Monitor следит за доступностью сервера. Два состояния, online и offline,
// подписчики получают событие ровно один раз на переход — пока состояние
// стабильно, повторных срабатываний нет. Сам монитор никогда не ошибается:
// если проверка недоступна, считаем себя online.
type Monitor struct {
	mu          sync.Mutex
	online      bool
	subscribers []func(online bool)
	log         *slog.Logger
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{
		online: true, // по умолчанию online
		log:    log.With("component", "netmon"),
	}
}

// IsOnline возвращает текущее состояние
func (m *Monitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe регистрирует обработчик переходов. Обработчик зовется
// синхронно из SetOnline при смене состояния.
func (m *Monitor) Subscribe(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

// SetOnline переводит монитор в указанное состояние. Используется и
// циклом Watch, и вручную (тесты, флаг --offline). Повторная установка
// того же состояния событий не рождает.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	subscribers := make([]func(bool), len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	if online {
		m.log.Info("соединение восстановлено")
	} else {
		m.log.Warn("соединение потеряно, работаем офлайн")
	}

	for _, fn := range subscribers {
		fn(online)
	}
}

// Watch опрашивает сервер с заданным интервалом и двигает состояние по
// результату проверки. Блокируется до отмены контекста.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration, probe func(ctx context.Context) error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, interval)
			err := probe(probeCtx)
			cancel()
			m.SetOnline(err == nil)
		}
	}
}
