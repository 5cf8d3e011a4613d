package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lavka/internal/utils/logger"
)

func TestMonitorDefaultOnline(t *testing.T) {
	monitor := NewMonitor(logger.Discard())
	assert.True(t, monitor.IsOnline(), "без сигнала платформы считаем себя online")
}

func TestMonitorEdgeTriggered(t *testing.T) {
	monitor := NewMonitor(logger.Discard())

	var events []bool
	monitor.Subscribe(func(online bool) {
		events = append(events, online)
	})

	// Повторная установка текущего состояния событий не рождает
	monitor.SetOnline(true)
	monitor.SetOnline(true)
	assert.Empty(t, events)

	monitor.SetOnline(false)
	assert.Equal(t, []bool{false}, events)

	// Стабильный офлайн — без повторных срабатываний
	monitor.SetOnline(false)
	monitor.SetOnline(false)
	assert.Equal(t, []bool{false}, events)

	monitor.SetOnline(true)
	assert.Equal(t, []bool{false, true}, events)
}

func TestMonitorMultipleSubscribers(t *testing.T) {
	monitor := NewMonitor(logger.Discard())

	first, second := 0, 0
	monitor.Subscribe(func(bool) { first++ })
	monitor.Subscribe(func(bool) { second++ })

	monitor.SetOnline(false)
	monitor.SetOnline(true)

	assert.Equal(t, 2, first)
	assert.Equal(t, 2, second)
}
