package routes

import (
	"resume-match/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	matches  *handler.MatchHandler
	models   *handler.ModelHandler
	feedback *handler.FeedbackHandler
	synonyms *handler.SynonymHandler
	appeals  *handler.AppealHandler
}

func NewRegistry(
	health *handler.HealthHandler,
	matches *handler.MatchHandler,
	models *handler.ModelHandler,
	feedback *handler.FeedbackHandler,
	synonyms *handler.SynonymHandler,
	appeals *handler.AppealHandler,
) *Registry {
	return &Registry{
		health:   health,
		matches:  matches,
		models:   models,
		feedback: feedback,
		synonyms: synonyms,
		appeals:  appeals,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.matches.RegisterRoutes(v1)
	r.models.RegisterRoutes(v1)
	r.feedback.RegisterRoutes(v1)
	r.synonyms.RegisterRoutes(v1)
	r.appeals.RegisterRoutes(v1)
}
