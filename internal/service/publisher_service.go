package service

import (
	"context"
	"encoding/json"

	"reaction-roulette-be/internal/constant"
	"reaction-roulette-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IPublisherService interface {
	PublishReaction(ctx context.Context, ev *dto.ReactionEvent) error
	PublishMessage(ctx context.Context, ev *dto.MessageEvent) error
	PublishInteraction(ctx context.Context, ev *dto.InteractionEvent) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
}

func NewPublisherService(pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
	}
}

func (p *publisherService) publish(topic string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return p.pubSub.Publish(topic, message.NewMessage(uuid.NewString(), raw))
}

func (p *publisherService) PublishReaction(ctx context.Context, ev *dto.ReactionEvent) error {
	return p.publish(constant.TopicReaction, ev)
}

func (p *publisherService) PublishMessage(ctx context.Context, ev *dto.MessageEvent) error {
	return p.publish(constant.TopicMessage, ev)
}

func (p *publisherService) PublishInteraction(ctx context.Context, ev *dto.InteractionEvent) error {
	return p.publish(constant.TopicInteraction, ev)
}
