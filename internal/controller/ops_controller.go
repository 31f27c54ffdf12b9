package controller

import (
	"reaction-roulette-be/internal/pkg/logger"
	"reaction-roulette-be/internal/pkg/serverutils"
	"reaction-roulette-be/internal/repository/specification"
	"reaction-roulette-be/internal/repository/unitofwork"
	"reaction-roulette-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOpsController interface {
	RegisterRoutes(r fiber.Router, curatorGuard fiber.Handler)
	Health(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
	Panel(ctx *fiber.Ctx) error
}

type opsController struct {
	uowFactory   unitofwork.RepositoryFactory
	syncService  service.ISyncService
	panelService service.IPanelService
	logger       logger.ILogger
	channelId    int64
}

func NewOpsController(
	uowFactory unitofwork.RepositoryFactory,
	syncService service.ISyncService,
	panelService service.IPanelService,
	sysLogger logger.ILogger,
	channelId int64,
) IOpsController {
	return &opsController{
		uowFactory:   uowFactory,
		syncService:  syncService,
		panelService: panelService,
		logger:       sysLogger,
		channelId:    channelId,
	}
}

func (c *opsController) RegisterRoutes(r fiber.Router, curatorGuard fiber.Handler) {
	h := r.Group("/ops/v1")
	h.Get("/health", c.Health)
	h.Get("/stats", c.Stats)
	h.Get("/messages", c.Messages)
	h.Get("/logs", c.Logs)

	// Privileged: mirrors the update_db / panel commands.
	h.Post("/sync", curatorGuard, c.Sync)
	h.Post("/panel", curatorGuard, c.Panel)
}

func (c *opsController) Health(ctx *fiber.Ctx) error {
	uow := c.uowFactory.NewUnitOfWork(ctx.Context())
	if _, err := uow.MessageRepository().Count(ctx.Context()); err != nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("Database unreachable"))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", nil))
}

func (c *opsController) Stats(ctx *fiber.Ctx) error {
	uow := c.uowFactory.NewUnitOfWork(ctx.Context())
	count, err := uow.MessageRepository().Count(ctx.Context(), specification.ByChannelID{ChannelID: c.channelId})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", fiber.Map{
		"channel_id":      c.channelId,
		"cached_messages": count,
		"panel_id":        c.panelService.CurrentId(),
	}))
}

// Messages pages through the mirrored cache, newest first, optionally
// narrowed to one author.
func (c *opsController) Messages(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := ctx.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.ByChannelID{ChannelID: c.channelId},
	}
	if authorId := int64(ctx.QueryInt("author_id", 0)); authorId != 0 {
		specs = append(specs, specification.ByAuthorID{AuthorID: authorId})
	}
	specs = append(specs,
		specification.OrderBy{Field: "id", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	uow := c.uowFactory.NewUnitOfWork(ctx.Context())
	msgs, err := uow.MessageRepository().FindAll(ctx.Context(), specs...)
	if err != nil {
		return err
	}

	out := make([]fiber.Map, len(msgs))
	for i, m := range msgs {
		out[i] = fiber.Map{
			"id":        m.Id,
			"author_id": m.AuthorId,
			"content":   m.Content,
			"reactions": m.Reactions,
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", out))
}

func (c *opsController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)

	entries, err := c.logger.GetLogs(level, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", entries))
}

func (c *opsController) Sync(ctx *fiber.Ctx) error {
	written, err := c.syncService.Reconcile(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reconcile complete", fiber.Map{
		"written": written,
	}))
}

func (c *opsController) Panel(ctx *fiber.Ctx) error {
	if err := c.panelService.Post(ctx.Context()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Panel posted", fiber.Map{
		"panel_id": c.panelService.CurrentId(),
	}))
}
