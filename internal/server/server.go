package server

import (
	"log"

	"reaction-roulette-be/internal/bootstrap"
	"reaction-roulette-be/internal/config"
	"reaction-roulette-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, the ops surface carries no uploads
	})

	app.Use(serverutils.RecoverMiddleware())
	app.Use(serverutils.ErrorHandlerMiddleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	api := app.Group("/api")

	c.OpsController.RegisterRoutes(api, serverutils.CuratorMiddleware(cfg.App.GatewayToken))
	c.Gateway.RegisterRoutes(app)
}
