package messaging

import (
	"context"
	"errors"

	"video-ingest-service/pkg/kafka"
)

// KafkaEventPublisher implements gateway.EventPublisher on the shared
// fire-and-forget Kafka client.
type KafkaEventPublisher struct {
	client *kafka.Client
	topic  string
}

func NewKafkaEventPublisher(client *kafka.Client, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{client: client, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, text string) error {
	if p.client == nil || p.topic == "" {
		return errors.New("kafka publisher not configured")
	}
	return p.client.Produce(ctx, p.topic, nil, []byte(text))
}
