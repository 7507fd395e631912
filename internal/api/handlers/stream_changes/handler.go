package stream_changes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

const (
	msgStreamingUnsupported = "потоковая передача не поддерживается"
	msgUnknownCollection    = "неизвестная коллекция"

	eventBuffer = 64
)

var knownCollections = map[string]bool{
	domain.CollectionAppointments: true,
	domain.CollectionRequests:     true,
}

type Handler struct {
	subscriber ChangeSubscriber
	heartbeat  time.Duration
	logger     Logger
}

func NewHandler(subscriber ChangeSubscriber, heartbeat time.Duration, logger Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	return &Handler{
		subscriber: subscriber,
		heartbeat:  heartbeat,
		logger:     logger,
	}
}

// Handle GET /api/v1/changes?collections=appointments,appointment_requests
// Server-Sent Events: событие только сообщает, что запись изменилась, клиент перечитывает ее сам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	collections, err := parseCollections(r.URL.Query().Get("collections"))
	if err != nil {
		h.logger.Warn("GET /changes - %v", err)
		handlers.RespondBadRequest(w, msgUnknownCollection)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.RespondError(w, http.StatusNotImplemented, msgStreamingUnsupported)
		return
	}

	// Поток живет дольше write_timeout сервера
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	ctx := r.Context()
	events := make(chan domain.ChangeEvent, eventBuffer)
	done := make(chan error, 1)

	go func() {
		done <- h.subscriber.Subscribe(ctx, collections, func(e domain.ChangeEvent) {
			select {
			case events <- e:
			default:
				// Медленный клиент: событие-подсказку можно потерять, он перечитает при следующем
				h.logger.Warn("GET /changes - Dropping event %s/%d for slow client", e.Collection, e.ID)
			}
		})
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /changes - Client subscribed: collections=%v", collections)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("GET /changes - Client disconnected")
			return

		case err := <-done:
			if err != nil {
				h.logger.Error("GET /changes - Subscription failed: %v", err)
			}
			return

		case e := <-events:
			if err := writeEvent(w, e); err != nil {
				h.logger.Warn("GET /changes - Write failed: %v", err)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, e domain.ChangeEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Collection, payload)
	return err
}

func parseCollections(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{domain.CollectionAppointments, domain.CollectionRequests}, nil
	}

	var collections []string
	for _, c := range strings.Split(raw, ",") {
		c = strings.TrimSpace(c)
		if !knownCollections[c] {
			return nil, fmt.Errorf("unknown collection %q", c)
		}
		collections = append(collections, c)
	}
	return collections, nil
}
