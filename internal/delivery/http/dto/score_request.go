package dto

import "github.com/google/uuid"

type ResumeProfileRequest struct {
	ID               uuid.UUID `json:"id" validate:"required"`
	Skills           []string  `json:"skills"`
	ExperienceMonths int       `json:"experience_months" validate:"gte=0"`
	RawText          string    `json:"raw_text"`
	Embedding        []float64 `json:"embedding"`
}

type VacancyProfileRequest struct {
	ID                  uuid.UUID `json:"id" validate:"required"`
	OrganizationID      uuid.UUID `json:"organization_id"`
	Industry            string    `json:"industry"`
	RequiredSkills      []string  `json:"required_skills"`
	Description         string    `json:"description"`
	MinExperienceMonths int       `json:"min_experience_months" validate:"gte=0"`
	Embedding           []float64 `json:"embedding"`
}

type ScoreRequest struct {
	Resume    ResumeProfileRequest  `json:"resume" validate:"required"`
	Vacancy   VacancyProfileRequest `json:"vacancy" validate:"required"`
	ModelName string                `json:"model_name"`
}

type BatchScoreRequest struct {
	Pairs []ScoreRequest `json:"pairs" validate:"required,min=1,dive"`
}
