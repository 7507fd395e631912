package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Subscriber доставляет события изменений подписчикам (например, SSE-потоку)
type Subscriber struct {
	client RedisClient
	prefix string
	logger Logger
}

func NewSubscriber(client RedisClient, prefix string, logger Logger) *Subscriber {
	return &Subscriber{client: client, prefix: prefix, logger: logger}
}

// Subscribe вызывает callback для каждого события указанных коллекций
// Блокируется до отмены ctx; callback вызывается последовательно
func (s *Subscriber) Subscribe(ctx context.Context, collections []string, callback func(domain.ChangeEvent)) error {
	if len(collections) == 0 {
		return ErrNoCollections
	}

	channels := make([]string, len(collections))
	for i, c := range collections {
		channels[i] = Channel(s.prefix, c)
	}

	pubsub := s.client.Subscribe(ctx, channels...)
	defer pubsub.Close()

	// Дожидаемся подтверждения подписки, чтобы не потерять первые события
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrSubscribe, err)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			event, err := decodeEvent([]byte(msg.Payload))
			if err != nil {
				s.logger.Warn("Notify: skip malformed event on %s: %v", msg.Channel, err)
				continue
			}
			callback(event)
		}
	}
}

func decodeEvent(payload []byte) (domain.ChangeEvent, error) {
	var event domain.ChangeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return domain.ChangeEvent{}, err
	}
	if event.Collection == "" || event.ID == 0 {
		return domain.ChangeEvent{}, fmt.Errorf("event without collection or id")
	}
	return event, nil
}

// NopSubscriber подписка при выключенном Redis: ждет отмены контекста
type NopSubscriber struct{}

func (NopSubscriber) Subscribe(ctx context.Context, collections []string, _ func(domain.ChangeEvent)) error {
	if len(collections) == 0 {
		return ErrNoCollections
	}
	<-ctx.Done()
	return nil
}
