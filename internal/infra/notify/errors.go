package notify

import "errors"

var (
	// ErrNoCollections возвращается при подписке без указания коллекций
	ErrNoCollections = errors.New("notify: at least one collection is required")

	// ErrSubscribe возвращается, когда не удалось подписаться на каналы
	ErrSubscribe = errors.New("notify: failed to subscribe")
)
