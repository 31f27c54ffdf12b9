package service

import (
	"context"
	"time"

	"reaction-roulette-be/internal/dto"
	"reaction-roulette-be/internal/entity"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"
	"reaction-roulette-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISyncService interface {
	// Reconcile pulls the recent window from the live channel and upserts it.
	// Returns the number of messages written.
	Reconcile(ctx context.Context) (int, error)
	// IngestMessage caches one live message observed in the channel.
	IngestMessage(ctx context.Context, ev *dto.MessageEvent) error
	// Run executes Reconcile on a fixed interval until ctx is cancelled.
	Run(ctx context.Context)
}

type syncService struct {
	uowFactory unitofwork.RepositoryFactory
	platform   platform.Client
	logger     logger.ILogger
	channelId  int64
	window     int
	interval   time.Duration
}

func NewSyncService(
	uowFactory unitofwork.RepositoryFactory,
	platformClient platform.Client,
	sysLogger logger.ILogger,
	channelId int64,
	window int,
	interval time.Duration,
) ISyncService {
	return &syncService{
		uowFactory: uowFactory,
		platform:   platformClient,
		logger:     sysLogger,
		channelId:  channelId,
		window:     window,
		interval:   interval,
	}
}

// Reconcile refreshes content and authorship only. Reaction state is owned
// by the incremental event path: the bulk upsert's conflict set excludes the
// reactions column, so a merge landing mid-run is never reverted. Existing
// rows keep their ledger, new rows start empty.
func (s *syncService) Reconcile(ctx context.Context) (int, error) {
	runId := uuid.NewString()
	live, err := s.platform.FetchRecent(ctx, s.channelId, s.window)
	if err != nil {
		return 0, err
	}

	records := make([]*entity.Message, 0, len(live))
	for _, msg := range live {
		records = append(records, &entity.Message{
			Id:        msg.Id,
			ChannelId: msg.ChannelId,
			AuthorId:  msg.AuthorId,
			Content:   msg.Content,
			Reactions: entity.NewReactionLedger(),
		})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	if err := uow.MessageRepository().BulkUpsert(ctx, records); err != nil {
		_ = uow.Rollback()
		return 0, err
	}
	if err := uow.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("sync", "reconcile complete", map[string]interface{}{
		"run_id":  runId,
		"written": len(records),
	})
	return len(records), nil
}

func (s *syncService) IngestMessage(ctx context.Context, ev *dto.MessageEvent) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().Upsert(ctx, &entity.Message{
		Id:        ev.MessageId,
		ChannelId: ev.ChannelId,
		AuthorId:  ev.AuthorId,
		Content:   ev.Content,
		Reactions: entity.NewReactionLedger(),
	})
}

// Run owns the periodic cycle. A failed cycle is logged and skipped; the
// next tick reconciles whatever was missed.
func (s *syncService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Reconcile(ctx); err != nil {
				s.logger.Warn("sync", "cycle failed, skipping until next tick", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
