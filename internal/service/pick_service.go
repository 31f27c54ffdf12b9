package service

import (
	"context"
	"fmt"
	"strconv"

	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"
	"reaction-roulette-be/internal/repository/memory"
	"reaction-roulette-be/internal/repository/specification"
	"reaction-roulette-be/internal/repository/unitofwork"
	"reaction-roulette-be/internal/selection"

	"golang.org/x/sync/semaphore"
)

const (
	displayNameFallback = "Unknown member"

	replyNoMatch = "No eligible message for that filter right now."
	replyBusy    = "Too many picks in flight, try again in a moment."
)

type IPickService interface {
	// Pick runs the filter for userId and returns the user-facing reply.
	// An empty eligible set is an expected outcome, not an error.
	Pick(ctx context.Context, userId int64, kind selection.FilterKind) (string, error)
}

type pickService struct {
	uowFactory unitofwork.RepositoryFactory
	engine     *selection.Engine
	lastPicks  *memory.LastPickRepository
	platform   platform.Client
	logger     logger.ILogger
	sem        *semaphore.Weighted

	channelId        int64
	excludedAuthorId int64
	emojis           selection.Emojis
}

func NewPickService(
	uowFactory unitofwork.RepositoryFactory,
	engine *selection.Engine,
	lastPicks *memory.LastPickRepository,
	platformClient platform.Client,
	sysLogger logger.ILogger,
	workerLimit int64,
	channelId int64,
	excludedAuthorId int64,
	readLaterId, favoriteId, selfExcludeId int64,
) IPickService {
	return &pickService{
		uowFactory:       uowFactory,
		engine:           engine,
		lastPicks:        lastPicks,
		platform:         platformClient,
		logger:           sysLogger,
		sem:              semaphore.NewWeighted(workerLimit),
		channelId:        channelId,
		excludedAuthorId: excludedAuthorId,
		emojis: selection.Emojis{
			ReadLater:   strconv.FormatInt(readLaterId, 10),
			Favorite:    strconv.FormatInt(favoriteId, 10),
			SelfExclude: strconv.FormatInt(selfExcludeId, 10),
		},
	}
}

func (s *pickService) Pick(ctx context.Context, userId int64, kind selection.FilterKind) (string, error) {
	// Fail fast when all workers are busy; no queueing in front of the
	// connection pool.
	if !s.sem.TryAcquire(1) {
		return replyBusy, nil
	}
	defer s.sem.Release(1)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	msgs, err := uow.MessageRepository().FindAll(ctx, specification.ByChannelID{ChannelID: s.channelId})
	if err != nil {
		return "", err
	}

	lastAuthor, _ := s.lastPicks.Get(userId)
	picked := s.engine.Pick(msgs, kind, selection.Params{
		UserId:           userId,
		LastAuthorId:     lastAuthor,
		ExcludedAuthorId: s.excludedAuthorId,
		Emojis:           s.emojis,
	})
	if picked == nil {
		return replyNoMatch, nil
	}

	s.lastPicks.Set(userId, picked.AuthorId)

	name, err := s.platform.ResolveDisplayName(ctx, picked.AuthorId)
	if err != nil || name == "" {
		name = displayNameFallback
	}

	s.logger.Info("pick", "message picked", map[string]interface{}{
		"user_id":    userId,
		"filter":     kind.String(),
		"message_id": picked.Id,
		"author_id":  picked.AuthorId,
	})
	return fmt.Sprintf("%s: %s", name, picked.Content), nil
}
