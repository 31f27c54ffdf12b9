package gateway

import (
	"context"

	"reaction-roulette-be/internal/dto"
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/pkg/serverutils"
	"reaction-roulette-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Gateway is the inbound bridge: the platform adapter pushes live events
// (reactions, messages, interactions) over one authenticated websocket, and
// the gateway republishes them onto the in-process bus.
type Gateway struct {
	publisher service.IPublisherService
	logger    logger.ILogger
	token     string
}

func New(publisher service.IPublisherService, eventLogger logger.ILogger, token string) *Gateway {
	return &Gateway{
		publisher: publisher,
		logger:    eventLogger,
		token:     token,
	}
}

func (g *Gateway) RegisterRoutes(app *fiber.App) {
	ws := app.Group("/gateway")
	ws.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if c.Query("token") != g.token {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid gateway token"})
		}
		return c.Next()
	})
	ws.Get("/ws", websocket.New(g.serve))
}

// serve reads event envelopes until the adapter disconnects. Events are
// dispatched in delivery order per connection.
func (g *Gateway) serve(conn *websocket.Conn) {
	ctx := context.Background()
	for {
		var ev dto.GatewayEvent
		if err := conn.ReadJSON(&ev); err != nil {
			// Disconnect or unreadable frame ends the session; the adapter
			// reconnects on its own schedule.
			g.logger.Info("gateway", "adapter disconnected", map[string]interface{}{
				"reason": err.Error(),
			})
			return
		}

		if err := serverutils.ValidateRequest(&ev); err != nil {
			g.logger.Warn("gateway", "dropping invalid event", map[string]interface{}{
				"type":  ev.Type,
				"error": err.Error(),
			})
			continue
		}

		if err := g.dispatch(ctx, &ev); err != nil {
			g.logger.Error("gateway", "failed to publish event", map[string]interface{}{
				"type":  ev.Type,
				"error": err.Error(),
			})
		}
	}
}

func (g *Gateway) dispatch(ctx context.Context, ev *dto.GatewayEvent) error {
	switch ev.Type {
	case "reaction":
		// Unicode reactions carry no numeric identity; they never reach
		// the ledger.
		if ev.EmojiId == 0 {
			return nil
		}
		return g.publisher.PublishReaction(ctx, &dto.ReactionEvent{
			MessageId: ev.MessageId,
			ChannelId: ev.ChannelId,
			UserId:    ev.UserId,
			EmojiId:   ev.EmojiId,
			EmojiName: ev.EmojiName,
			Added:     ev.Added,
		})
	case "message":
		return g.publisher.PublishMessage(ctx, &dto.MessageEvent{
			MessageId: ev.MessageId,
			ChannelId: ev.ChannelId,
			AuthorId:  ev.AuthorId,
			Content:   ev.Content,
		})
	case "interaction":
		return g.publisher.PublishInteraction(ctx, &dto.InteractionEvent{
			ChannelId: ev.ChannelId,
			UserId:    ev.UserId,
			Action:    ev.Action,
		})
	}
	return nil
}
