package repository

import (
	"context"

	domrepo "FinCast/internal/domain/repository"
	pkgkafka "FinCast/pkg/kafka"
)

// KafkaPublisher sends JSON events to one topic, keyed for ordering.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
	owner    bool
}

var _ domrepo.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a publisher that closes producer on Close.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, owner: true}
}

// NewSharedKafkaPublisher publishes through a producer owned elsewhere.
func NewSharedKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishEvent(ctx context.Context, key string, event interface{}) error {
	return p.producer.Publish(ctx, p.topic, []byte(key), event)
}

func (p *KafkaPublisher) Close() error {
	if p.owner && p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
