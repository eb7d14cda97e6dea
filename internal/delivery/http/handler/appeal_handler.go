package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/domain/appeal"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AppealHandler struct {
	uc usecase.AppealUsecase
}

func NewAppealHandler(uc usecase.AppealUsecase) *AppealHandler {
	return &AppealHandler{uc: uc}
}

func (h *AppealHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/appeals")
	grp.Post("/", h.File)
	grp.Post("/:id/assign", h.Assign)
	grp.Post("/:id/resolve", h.Resolve)
	grp.Get("/result/:match_result_id", h.ListForResult)
}

func (h *AppealHandler) File(c fiber.Ctx) error {
	var req dto.FileAppealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.uc.File(c.Context(), req.MatchResultID, req.CandidateID, req.Reason)
	if err != nil {
		return mapAppealError(err)
	}

	return response.Created(c, dto.NewAppealResponse(a))
}

func (h *AppealHandler) Assign(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignAppealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	a, err := h.uc.Assign(c.Context(), id, req.ReviewerID)
	if err != nil {
		return mapAppealError(err)
	}

	return response.OK(c, dto.NewAppealResponse(a))
}

// Resolve closes an appeal either way: verdict "resolved" records the
// adjusted score, "rejected" keeps the automated one. Both require notes.
func (h *AppealHandler) Resolve(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ResolveAppealRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var a appeal.Appeal
	if req.Verdict == appeal.StatusRejected {
		a, err = h.uc.Reject(c.Context(), id, req.Notes)
	} else {
		a, err = h.uc.Resolve(c.Context(), id, req.AdjustedScore, req.Notes)
	}
	if err != nil {
		return mapAppealError(err)
	}

	return response.OK(c, dto.NewAppealResponse(a))
}

func (h *AppealHandler) ListForResult(c fiber.Ctx) error {
	matchResultID, err := parseUUIDParam(c, "match_result_id")
	if err != nil {
		return err
	}

	appeals, err := h.uc.ListForResult(c.Context(), matchResultID)
	if err != nil {
		return mapAppealError(err)
	}

	out := make([]dto.AppealResponse, 0, len(appeals))
	for _, a := range appeals {
		out = append(out, dto.NewAppealResponse(a))
	}
	return response.OK(c, out)
}

func mapAppealError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrAppealNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Appeal not found", nil, err)
	case errors.Is(err, usecase.ErrResultNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match result not found", nil, err)
	case errors.Is(err, usecase.ErrOpenAppealExists):
		return middleware.NewAppError(fiber.StatusConflict, "An open appeal already exists for this match result", nil, err)
	case errors.Is(err, appeal.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid appeal state transition", nil, err)
	case errors.Is(err, appeal.ErrNotesRequired):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Resolution notes are required", nil, err)
	case errors.Is(err, appeal.ErrScoreOutOfRange):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Adjusted score must be in [0,1]", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
