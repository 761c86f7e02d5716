package repository

import (
	"context"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"
	pkgkafka "Tickfunds/pkg/kafka"
)

// KafkaActivityPublisher publishes activity events keyed by kind.
type KafkaActivityPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaActivityPublisher(producer *pkgkafka.Producer, topic string) *KafkaActivityPublisher {
	return &KafkaActivityPublisher{producer: producer, topic: topic}
}

func (p *KafkaActivityPublisher) PublishBatch(ctx context.Context, events []models.ActivityEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(events))
	for i, e := range events {
		msgs[i] = pkgkafka.Message{Key: []byte(e.Kind), Value: e}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

// Close leaves the shared producer open; the app closes it on shutdown.
func (p *KafkaActivityPublisher) Close() error {
	return nil
}

// StoreActivityPublisher writes events straight to an ActivityStore.
type StoreActivityPublisher struct {
	store domrepo.ActivityStore
}

func NewStoreActivityPublisher(store domrepo.ActivityStore) *StoreActivityPublisher {
	return &StoreActivityPublisher{store: store}
}

func (p *StoreActivityPublisher) PublishBatch(ctx context.Context, events []models.ActivityEvent) error {
	return p.store.StoreBatch(ctx, events)
}

func (p *StoreActivityPublisher) Close() error { return nil }

// NoopActivityPublisher discards events.
type NoopActivityPublisher struct{}

func (NoopActivityPublisher) PublishBatch(context.Context, []models.ActivityEvent) error { return nil }

func (NoopActivityPublisher) Close() error { return nil }

var (
	_ domrepo.ActivityPublisher = (*KafkaActivityPublisher)(nil)
	_ domrepo.ActivityPublisher = (*StoreActivityPublisher)(nil)
	_ domrepo.ActivityPublisher = NoopActivityPublisher{}
)
