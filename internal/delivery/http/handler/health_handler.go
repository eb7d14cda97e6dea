package handler

import (
	"context"

	"resume-match/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

// NewHealthHandler accepts a nil pinger when the service runs on the
// in-memory stores.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/healthz", h.Healthz)
}

func (h *HealthHandler) Healthz(c fiber.Ctx) error {
	data := map[string]string{"status": "ok", "database": "disabled"}

	if h.db != nil {
		data["database"] = "ok"
		if err := h.db.Ping(c.Context()); err != nil {
			data["status"] = "degraded"
			data["database"] = "unreachable"
			return response.Error(c, fiber.StatusServiceUnavailable, "degraded", data)
		}
	}

	return response.OK(c, data)
}
