package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

const publishTimeout = 2 * time.Second

// Channel имя канала Redis для коллекции
func Channel(prefix, collection string) string {
	return prefix + ":" + collection
}

// RedisPublisher публикует подсказки об изменениях в Redis pub/sub
// Ошибки публикации логируются и не возвращаются: запись в БД уже зафиксирована,
// а корректность клиентов от уведомлений не зависит
type RedisPublisher struct {
	client RedisClient
	prefix string
	logger Logger
}

func NewRedisPublisher(client RedisClient, prefix string, logger Logger) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix, logger: logger}
}

// Publish отправляет событие в канал коллекции
func (p *RedisPublisher) Publish(ctx context.Context, event domain.ChangeEvent) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Notify: failed to encode event collection=%s id=%d: %v", event.Collection, event.ID, err)
		return
	}

	// Запрос клиента мог уже завершиться, публикуем с собственным таймаутом
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	channel := Channel(p.prefix, event.Collection)
	if err := p.client.Publish(pubCtx, channel, payload).Err(); err != nil {
		p.logger.Warn("Notify: failed to publish to %s id=%d action=%s: %v", channel, event.ID, event.Action, err)
	}
}

// NopPublisher используется, когда Redis выключен
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.ChangeEvent) {}
