package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService pushes domain events onto the in-process bus. Consumers
// decide what leaves the process.
type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	topic  string
	pubSub *gochannel.GoChannel
}

func NewPublisherService(topic string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topic:  topic,
		pubSub: pubSub,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topic, msg)
}
