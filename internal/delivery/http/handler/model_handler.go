package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/model"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ModelHandler struct {
	uc usecase.ModelUsecase
}

func NewModelHandler(uc usecase.ModelUsecase) *ModelHandler {
	return &ModelHandler{uc: uc}
}

func (h *ModelHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/models")
	grp.Post("/", h.Register)
	grp.Post("/activate", h.Activate)
	grp.Post("/outcomes", h.RecordOutcome)
	grp.Get("/:model_name", h.ListVersions)
}

func (h *ModelHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterModelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	v, err := h.uc.Register(c.Context(), req.ToVersion())
	if err != nil {
		return mapModelError(err)
	}

	return response.Created(c, dto.NewModelVersionResponse(v))
}

func (h *ModelHandler) Activate(c fiber.Ctx) error {
	var req dto.ActivateModelRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.Activate(c.Context(), req.ModelName, req.Version); err != nil {
		return mapModelError(err)
	}

	return response.OK(c, nil)
}

func (h *ModelHandler) RecordOutcome(c fiber.Ctx) error {
	var req dto.ModelOutcomeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	metrics, err := h.uc.RecordOutcome(c.Context(), req.ModelName, req.Version, model.Outcome{Correct: req.Correct})
	if err != nil {
		return mapModelError(err)
	}

	return response.OK(c, dto.NewAccuracyResponse(metrics))
}

func (h *ModelHandler) ListVersions(c fiber.Ctx) error {
	name := c.Params("model_name")
	if name == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, nil)
	}

	versions, err := h.uc.ListVersions(c.Context(), name)
	if err != nil {
		return mapModelError(err)
	}

	out := make([]dto.ModelVersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, dto.NewModelVersionResponse(v))
	}
	return response.OK(c, out)
}

func mapModelError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrModelNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Model version not found", nil, err)
	case errors.Is(err, usecase.ErrModelExists):
		return middleware.NewAppError(fiber.StatusConflict, "Model version already registered", nil, err)
	case errors.Is(err, usecase.ErrActivationConflict):
		return middleware.NewAppError(fiber.StatusConflict, "Concurrent activation detected, retry", nil, err)
	case errors.Is(err, usecase.ErrNoActiveModel):
		return middleware.NewAppError(fiber.StatusNotFound, "No active model version", nil, err)
	case errors.Is(err, usecase.ErrInvalidModelVersion):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Invalid model version configuration", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
