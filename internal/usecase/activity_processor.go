package usecase

import (
	"context"
	"fmt"
	"time"

	"Tickfunds/internal/domain/models"
	drepo "Tickfunds/internal/domain/repository"
)

// Activity backends.
const (
	BackendNone       = "none"
	BackendKafka      = "kafka"
	BackendClickHouse = "clickhouse"
)

// ActivityProcessor routes activity batches to the configured backend.
type ActivityProcessor struct {
	pub     drepo.ActivityPublisher
	metrics drepo.Metrics
	backend string
}

func NewActivityProcessor(pub drepo.ActivityPublisher, metrics drepo.Metrics, backend string) *ActivityProcessor {
	return &ActivityProcessor{
		pub:     pub,
		metrics: metricsOrNoop(metrics),
		backend: backend,
	}
}

func (p *ActivityProcessor) Backend() string { return p.backend }

// ProcessBatch publishes a batch of events.
func (p *ActivityProcessor) ProcessBatch(ctx context.Context, events []models.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	switch p.backend {
	case BackendKafka, BackendClickHouse, BackendNone:
		err = p.pub.PublishBatch(ctx, events)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, e := range events {
		p.metrics.RecordActivity(e.Kind, p.backend)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

// Close closes the publisher.
func (p *ActivityProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
}
