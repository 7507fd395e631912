package get_available_slots

import (
	"context"
	"time"
)

// RequestRepository интерфейс репозитория публичных заявок
type RequestRepository interface {
	// ListStartsInRange возвращает время всех заявок за [from, to), в любом статусе
	ListStartsInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// DecisionObserver учитывает исход расчета доступности в метриках
type DecisionObserver interface {
	ObserveDecision(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
