package app

import (
	"fmt"
	"strings"

	"resume-match/internal/config"
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewMatchHandler(c.Scoring),
		handler.NewModelHandler(c.Models),
		handler.NewFeedbackHandler(c.Feedbacks),
		handler.NewSynonymHandler(c.Taxonomies),
		handler.NewAppealHandler(c.AppealsUC),
	)
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config, log *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
