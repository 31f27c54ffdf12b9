package service

import (
	"context"
	"encoding/json"
	"fmt"

	"reaction-roulette-be/internal/constant"
	"reaction-roulette-be/internal/dispatch"
	"reaction-roulette-be/internal/dto"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const (
	replyDenied     = "Only the curator can run that."
	replyTryLater   = "Something went wrong, try again later."
	replySyncFormat = "Cache updated, %d messages reconciled."
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub          *gochannel.GoChannel
	logger          logger.ILogger
	reactionService IReactionService
	syncService     ISyncService
	panelService    IPanelService
	pickService     IPickService
	platform        platform.Client
	channelId       int64
	curatorId       int64
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	sysLogger logger.ILogger,
	reactionService IReactionService,
	syncService ISyncService,
	panelService IPanelService,
	pickService IPickService,
	platformClient platform.Client,
	channelId int64,
	curatorId int64,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		logger:          sysLogger,
		reactionService: reactionService,
		syncService:     syncService,
		panelService:    panelService,
		pickService:     pickService,
		platform:        platformClient,
		channelId:       channelId,
		curatorId:       curatorId,
	}
}

// Consume wires the three topic loops. Each loop acks every message: the
// platform redelivers nothing, and the periodic sync reconciles whatever an
// aborted handler left behind.
func (cs *consumerService) Consume(ctx context.Context) error {
	reactions, err := cs.pubSub.Subscribe(ctx, constant.TopicReaction)
	if err != nil {
		return err
	}
	messages, err := cs.pubSub.Subscribe(ctx, constant.TopicMessage)
	if err != nil {
		return err
	}
	interactions, err := cs.pubSub.Subscribe(ctx, constant.TopicInteraction)
	if err != nil {
		return err
	}

	go cs.loop(ctx, reactions, cs.processReaction)
	go cs.loop(ctx, messages, cs.processMessage)
	go cs.loop(ctx, interactions, cs.processInteraction)

	return nil
}

func (cs *consumerService) loop(ctx context.Context, msgs <-chan *message.Message, process func(context.Context, *message.Message)) {
	for msg := range msgs {
		cs.safeProcess(ctx, msg, process)
		msg.Ack()
	}
}

// safeProcess is the handler boundary: a panic is logged with context and
// must never take the event loops down.
func (cs *consumerService) safeProcess(ctx context.Context, msg *message.Message, process func(context.Context, *message.Message)) {
	defer func() {
		if r := recover(); r != nil {
			cs.logger.Error("consumer", "handler panicked", map[string]interface{}{
				"message_uuid": msg.UUID,
				"panic":        fmt.Sprintf("%v", r),
			})
		}
	}()
	process(ctx, msg)
}

func (cs *consumerService) processReaction(ctx context.Context, msg *message.Message) {
	var ev dto.ReactionEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		cs.logger.Warn("consumer", "malformed reaction payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if ev.ChannelId != cs.channelId {
		return
	}
	// Write failure means "state not guaranteed updated"; the periodic sync
	// plus future events provide eventual reconciliation.
	_ = cs.reactionService.Handle(ctx, &ev)
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var ev dto.MessageEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		cs.logger.Warn("consumer", "malformed message payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if ev.ChannelId != cs.channelId {
		return
	}
	if err := cs.syncService.IngestMessage(ctx, &ev); err != nil {
		cs.logger.Error("consumer", "failed to ingest message", map[string]interface{}{
			"message_id": ev.MessageId,
			"error":      err.Error(),
		})
	}
}

func (cs *consumerService) processInteraction(ctx context.Context, msg *message.Message) {
	// Interactive paths must resolve to a user-visible response: a panic
	// here still answers the user and puts the panel back up.
	defer func() {
		if r := recover(); r != nil {
			cs.logger.Error("consumer", "interaction handler panicked", map[string]interface{}{
				"message_uuid": msg.UUID,
				"panic":        fmt.Sprintf("%v", r),
			})
			cs.reply(ctx, replyTryLater)
			if err := cs.panelService.Post(ctx); err != nil {
				cs.logger.Error("consumer", "failed to repost panel", map[string]interface{}{"error": err.Error()})
			}
		}
	}()

	var ev dto.InteractionEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		cs.logger.Warn("consumer", "malformed interaction payload", map[string]interface{}{"error": err.Error()})
		return
	}
	if ev.ChannelId != cs.channelId {
		return
	}

	switch ev.Action {
	case dispatch.CommandPanel:
		if !cs.authorize(ctx, ev.UserId) {
			return
		}
		if err := cs.panelService.Post(ctx); err != nil {
			cs.logger.Error("consumer", "failed to post panel", map[string]interface{}{"error": err.Error()})
			cs.reply(ctx, replyTryLater)
		}

	case dispatch.CommandSyncDB:
		if !cs.authorize(ctx, ev.UserId) {
			return
		}
		written, err := cs.syncService.Reconcile(ctx)
		if err != nil {
			cs.logger.Error("consumer", "on-demand reconcile failed", map[string]interface{}{"error": err.Error()})
			cs.reply(ctx, replyTryLater)
			return
		}
		cs.reply(ctx, fmt.Sprintf(replySyncFormat, written))

	default:
		kind, ok := dispatch.Actions[ev.Action]
		if !ok {
			return
		}
		reply, err := cs.pickService.Pick(ctx, ev.UserId, kind)
		if err != nil {
			cs.logger.Error("consumer", "pick failed", map[string]interface{}{
				"user_id": ev.UserId,
				"action":  ev.Action,
				"error":   err.Error(),
			})
			reply = replyTryLater
		}
		cs.reply(ctx, reply)
		// The panel follows every pick so the controls stay at the bottom
		// of the channel, even after a failure.
		if err := cs.panelService.Post(ctx); err != nil {
			cs.logger.Error("consumer", "failed to repost panel", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (cs *consumerService) authorize(ctx context.Context, userId int64) bool {
	if userId == cs.curatorId {
		return true
	}
	cs.reply(ctx, replyDenied)
	return false
}

func (cs *consumerService) reply(ctx context.Context, content string) {
	if _, err := cs.platform.SendMessage(ctx, cs.channelId, content); err != nil {
		cs.logger.Error("consumer", "failed to send reply", map[string]interface{}{"error": err.Error()})
	}
}
