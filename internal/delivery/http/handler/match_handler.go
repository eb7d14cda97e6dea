package handler

import (
	"errors"

	"resume-match/internal/delivery/http/dto"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/pkg/response"
	"resume-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.ScoringUsecase
}

func NewMatchHandler(uc usecase.ScoringUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/matches")
	grp.Post("/score", h.Score)
	grp.Post("/score/batch", h.ScoreBatch)
	grp.Get("/:resume_id/:vacancy_id", h.GetResult)
}

func (h *MatchHandler) Score(c fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.uc.Score(c.Context(), toScoreRequest(req))
	if err != nil {
		return mapScoringError(err)
	}

	return response.OK(c, dto.NewMatchResultResponse(res))
}

// ScoreBatch drains the streaming batch into one response. Per-pair
// failures come back inline; only a malformed request fails the call.
func (h *MatchHandler) ScoreBatch(c fiber.Ctx) error {
	var req dto.BatchScoreRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	reqs := make([]usecase.ScoreRequest, 0, len(req.Pairs))
	for _, p := range req.Pairs {
		reqs = append(reqs, toScoreRequest(p))
	}

	out := dto.BatchScoreResponse{Items: make([]dto.BatchScoreItemResponse, 0, len(reqs))}
	for item := range h.uc.ScoreBatch(c.Context(), reqs) {
		entry := dto.BatchScoreItemResponse{
			ResumeID:  item.ResumeID,
			VacancyID: item.VacancyID,
		}
		if item.Err != nil {
			entry.Error = item.Err.Error()
		} else {
			res := dto.NewMatchResultResponse(item.Result)
			entry.Result = &res
		}
		out.Items = append(out.Items, entry)
	}

	return response.OK(c, out)
}

func (h *MatchHandler) GetResult(c fiber.Ctx) error {
	resumeID, err := parseUUIDParam(c, "resume_id")
	if err != nil {
		return err
	}
	vacancyID, err := parseUUIDParam(c, "vacancy_id")
	if err != nil {
		return err
	}

	res, err := h.uc.GetResult(c.Context(), resumeID, vacancyID)
	if err != nil {
		return mapScoringError(err)
	}

	return response.OK(c, dto.NewMatchResultResponse(res))
}

func toScoreRequest(req dto.ScoreRequest) usecase.ScoreRequest {
	return usecase.ScoreRequest{
		Resume: usecase.ResumeProfile{
			ID:               req.Resume.ID,
			Skills:           req.Resume.Skills,
			ExperienceMonths: req.Resume.ExperienceMonths,
			RawText:          req.Resume.RawText,
			Embedding:        req.Resume.Embedding,
		},
		Vacancy: usecase.VacancyProfile{
			ID:                  req.Vacancy.ID,
			OrganizationID:      req.Vacancy.OrganizationID,
			Industry:            req.Vacancy.Industry,
			RequiredSkills:      req.Vacancy.RequiredSkills,
			Description:         req.Vacancy.Description,
			MinExperienceMonths: req.Vacancy.MinExperienceMonths,
			Embedding:           req.Vacancy.Embedding,
		},
		ModelName: req.ModelName,
	}
}

func mapScoringError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrResultNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Match result not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidPair):
		return middleware.NewAppError(fiber.StatusBadRequest, "Resume and vacancy ids are required", nil, err)
	case errors.Is(err, usecase.ErrNoActiveModel):
		return middleware.NewAppError(fiber.StatusConflict, "No active model version", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
