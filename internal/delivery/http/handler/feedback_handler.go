package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FeedbackHandler struct {
	uc usecase.FeedbackUsecase
}

func NewFeedbackHandler(uc usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{uc: uc}
}

func (h *FeedbackHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/feedback")
	grp.Post("/", h.Submit)
	grp.Post("/aggregate", h.Aggregate)
}

func (h *FeedbackHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	f, err := h.uc.Submit(c.Context(), req.ToFeedback())
	if err != nil {
		return mapFeedbackError(err)
	}

	return response.Created(c, dto.NewFeedbackResponse(f))
}

// Aggregate triggers one aggregation run on demand, outside the cron
// schedule. A run already in flight is a conflict, not an error to retry
// blindly.
func (h *FeedbackHandler) Aggregate(c fiber.Ctx) error {
	report, err := h.uc.RunAggregation(c.Context())
	if err != nil {
		return mapFeedbackError(err)
	}

	return response.OK(c, dto.AggregationReportResponse{
		Consumed:  report.Consumed,
		Skipped:   report.Skipped,
		Proposals: report.Proposals,
	})
}

func mapFeedbackError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrFeedbackInvalid):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Feedback is missing required fields", nil, err)
	case errors.Is(err, usecase.ErrAggregationInFlight):
		return middleware.NewAppError(fiber.StatusConflict, "Aggregation already running", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
