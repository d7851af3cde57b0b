package service

import (
	"context"
	"encoding/json"
	"time"

	"farewell-wall-be/internal/dto"
	"farewell-wall-be/internal/pkg/logger"
	"farewell-wall-be/pkg/events"
	"farewell-wall-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the in-process bus and forwards message.created
// events to JetStream when a publisher is configured.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	topic   string
	pubSub  *gochannel.GoChannel
	natsPub *nats.Publisher
	log     logger.ILogger
}

func NewConsumerService(
	topic string,
	pubSub *gochannel.GoChannel,
	natsPub *nats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		topic:   topic,
		pubSub:  pubSub,
		natsPub: natsPub,
		log:     log,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.process(ctx, msg)
		}
	}()
	return nil
}

func (s *consumerService) process(ctx context.Context, msg *message.Message) {
	// Always ack: the bus is fire-and-forget, redelivery buys nothing here.
	defer msg.Ack()

	var payload dto.PublishMessageCreated
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Warn("consumer", "dropping malformed event payload", map[string]interface{}{
			"message_uuid": msg.UUID,
			"error":        err.Error(),
		})
		return
	}

	s.log.Info("consumer", "message created", map[string]interface{}{
		"message_id": payload.MessageId,
		"session_id": payload.SessionId,
		"author":     payload.Author,
	})

	if s.natsPub == nil {
		return
	}

	event := events.BaseEvent{
		Type: "MESSAGE_CREATED",
		Data: map[string]interface{}{
			"message_id": payload.MessageId.String(),
			"session_id": payload.SessionId,
			"author":     payload.Author,
			"created_at": payload.CreatedAt,
		},
		OccurredAt: time.Now(),
	}
	if err := s.natsPub.Publish(ctx, event); err != nil {
		s.log.Warn("consumer", "failed to forward event to jetstream", map[string]interface{}{
			"message_id": payload.MessageId,
			"error":      err.Error(),
		})
	}
}
