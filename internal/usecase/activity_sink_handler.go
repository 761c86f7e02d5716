package usecase

import (
	"context"
	"encoding/json"
	"time"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	pkgkafka "Tickfunds/pkg/kafka"
)

// ActivitySinkHandler consumes activity events from Kafka and writes them to
// the activity store.
type ActivitySinkHandler struct {
	topic   string
	store   domrepo.ActivityStore
	metrics domrepo.Metrics
}

func NewActivitySinkHandler(topic string, store domrepo.ActivityStore, metrics domrepo.Metrics) *ActivitySinkHandler {
	return &ActivitySinkHandler{topic: topic, store: store, metrics: metricsOrNoop(metrics)}
}

func (h *ActivitySinkHandler) Topic() string { return h.topic }

func (h *ActivitySinkHandler) Handle(ctx context.Context, b []byte) error {
	var e models.ActivityEvent
	if err := json.Unmarshal(b, &e); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if !e.Timestamp.IsZero() {
		h.metrics.RecordLatency("activity_e2e_seconds", time.Since(e.Timestamp).Seconds())
	}

	start := time.Now()
	err := h.store.Store(ctx, e)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordActivity(e.Kind, BackendClickHouse)
	return nil
}

var _ pkgkafka.MessageHandler = (*ActivitySinkHandler)(nil)
