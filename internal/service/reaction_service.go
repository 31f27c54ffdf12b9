package service

import (
	"context"
	"strconv"

	"reaction-roulette-be/internal/dto"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"
	"reaction-roulette-be/internal/repository/unitofwork"
)

type IReactionService interface {
	Handle(ctx context.Context, ev *dto.ReactionEvent) error
}

type reactionService struct {
	uowFactory unitofwork.RepositoryFactory
	platform   platform.Client
	logger     logger.ILogger
}

func NewReactionService(
	uowFactory unitofwork.RepositoryFactory,
	platformClient platform.Client,
	sysLogger logger.ILogger,
) IReactionService {
	return &reactionService{
		uowFactory: uowFactory,
		platform:   platformClient,
		logger:     sysLogger,
	}
}

// Handle folds one reaction event into the cached ledger. Unicode reactions
// and messages that no longer exist upstream are skipped silently.
func (s *reactionService) Handle(ctx context.Context, ev *dto.ReactionEvent) error {
	if ev.EmojiId == 0 {
		return nil
	}

	live, err := s.platform.FetchMessage(ctx, ev.ChannelId, ev.MessageId)
	if err != nil {
		s.logger.Error("reaction", "failed to resolve message upstream", map[string]interface{}{
			"message_id": ev.MessageId,
			"error":      err.Error(),
		})
		return err
	}
	if live == nil {
		// Deleted or inaccessible upstream: the cache is left alone.
		return nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	kind := strconv.FormatInt(ev.EmojiId, 10)
	if err := uow.MessageRepository().MergeReaction(ctx, ev.MessageId, kind, ev.UserId, ev.Added); err != nil {
		s.logger.Error("reaction", "failed to merge reaction", map[string]interface{}{
			"message_id": ev.MessageId,
			"emoji_id":   ev.EmojiId,
			"added":      ev.Added,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}
