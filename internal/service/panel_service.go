package service

import (
	"context"
	"errors"
	"sync"

	"reaction-roulette-be/internal/dispatch"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/platform"
)

const panelContent = "Roll a random message from the channel archive:"

type IPanelService interface {
	// Post retires the previous panel (best-effort) and posts a fresh one,
	// so the panel stays the most recent message in the channel.
	Post(ctx context.Context) error
	CurrentId() int64
}

type panelService struct {
	mu        sync.Mutex
	currentId int64
	platform  platform.Client
	logger    logger.ILogger
	channelId int64
}

func NewPanelService(
	platformClient platform.Client,
	sysLogger logger.ILogger,
	channelId int64,
) IPanelService {
	return &panelService{
		platform:  platformClient,
		logger:    sysLogger,
		channelId: channelId,
	}
}

// Post serializes under the mutex: delete-then-create is not atomic, and two
// concurrent triggers must not race two panels into existence.
func (s *panelService) Post(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentId != 0 {
		if err := s.platform.DeleteMessage(ctx, s.channelId, s.currentId); err != nil {
			if !errors.Is(err, platform.ErrNotFound) {
				// Already-gone panels are expected; anything else is worth a line.
				s.logger.Warn("panel", "failed to delete previous panel", map[string]interface{}{
					"panel_id": s.currentId,
					"error":    err.Error(),
				})
			}
		}
		s.currentId = 0
	}

	id, err := s.platform.SendPanel(ctx, s.channelId, panelContent, dispatch.PanelActions())
	if err != nil {
		return err
	}
	s.currentId = id
	return nil
}

func (s *panelService) CurrentId() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentId
}
