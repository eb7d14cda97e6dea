package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SynonymHandler struct {
	uc usecase.TaxonomyUsecase
}

func NewSynonymHandler(uc usecase.TaxonomyUsecase) *SynonymHandler {
	return &SynonymHandler{uc: uc}
}

func (h *SynonymHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/synonyms")
	grp.Get("/pending", h.ListPending)
	grp.Post("/:id/review", h.Review)
}

func (h *SynonymHandler) ListPending(c fiber.Ctx) error {
	sets, err := h.uc.ListPendingCandidates(c.Context())
	if err != nil {
		return mapSynonymError(err)
	}

	out := make([]dto.SynonymSetResponse, 0, len(sets))
	for _, s := range sets {
		out = append(out, dto.NewSynonymSetResponse(s))
	}
	return response.OK(c, out)
}

func (h *SynonymHandler) Review(c fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReviewSynonymRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	set, err := h.uc.ReviewCandidate(c.Context(), id, req.Verdict)
	if err != nil {
		return mapSynonymError(err)
	}

	return response.OK(c, dto.NewSynonymSetResponse(set))
}

func mapSynonymError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSynonymNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Synonym set not found", nil, err)
	case errors.Is(err, usecase.ErrSynonymAlreadyClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Synonym set already reviewed", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
