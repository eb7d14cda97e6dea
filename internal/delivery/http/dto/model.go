package dto

import (
	"time"

	"github.com/google/uuid"

	"resume-match/internal/domain/match"
	"resume-match/internal/domain/model"
)

type WeightsRequest struct {
	Keyword float64 `json:"keyword" validate:"gte=0,lte=1"`
	TFIDF   float64 `json:"tfidf" validate:"gte=0,lte=1"`
	Vector  float64 `json:"vector" validate:"gte=0,lte=1"`
}

type ThresholdsRequest struct {
	KeywordMin float64 `json:"keyword_min" validate:"gte=0,lte=1"`
	TFIDFMin   float64 `json:"tfidf_min" validate:"gte=0,lte=1"`
	VectorMin  float64 `json:"vector_min" validate:"gte=0,lte=1"`

	Strong   float64 `json:"strong" validate:"gte=0,lte=1"`
	Possible float64 `json:"possible" validate:"gte=0,lte=1"`
	Weak     float64 `json:"weak" validate:"gte=0,lte=1"`

	MinSignalsPassed int `json:"min_signals_passed" validate:"gte=0,lte=3"`
}

type RegisterModelRequest struct {
	ModelName    string            `json:"model_name" validate:"required"`
	Version      string            `json:"version" validate:"required"`
	IsExperiment bool              `json:"is_experiment"`
	Weights      WeightsRequest    `json:"weights" validate:"required"`
	Thresholds   ThresholdsRequest `json:"thresholds" validate:"required"`
}

func (r RegisterModelRequest) ToVersion() model.Version {
	return model.Version{
		ModelName:    r.ModelName,
		Version:      r.Version,
		IsExperiment: r.IsExperiment,
		Weights: match.Weights{
			Keyword: r.Weights.Keyword,
			TFIDF:   r.Weights.TFIDF,
			Vector:  r.Weights.Vector,
		},
		Thresholds: match.Thresholds{
			KeywordMin:       r.Thresholds.KeywordMin,
			TFIDFMin:         r.Thresholds.TFIDFMin,
			VectorMin:        r.Thresholds.VectorMin,
			Strong:           r.Thresholds.Strong,
			Possible:         r.Thresholds.Possible,
			Weak:             r.Thresholds.Weak,
			MinSignalsPassed: r.Thresholds.MinSignalsPassed,
		},
	}
}

type ActivateModelRequest struct {
	ModelName string `json:"model_name" validate:"required"`
	Version   string `json:"version" validate:"required"`
}

type ModelOutcomeRequest struct {
	ModelName string `json:"model_name" validate:"required"`
	Version   string `json:"version" validate:"required"`
	Correct   bool   `json:"correct"`
}

type AccuracyResponse struct {
	Samples        int     `json:"samples"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	Precision      float64 `json:"precision"`
}

type ModelVersionResponse struct {
	ID           uuid.UUID         `json:"id"`
	ModelName    string            `json:"model_name"`
	Version      string            `json:"version"`
	IsActive     bool              `json:"is_active"`
	IsExperiment bool              `json:"is_experiment"`
	Weights      WeightsRequest    `json:"weights"`
	Thresholds   ThresholdsRequest `json:"thresholds"`
	Accuracy     AccuracyResponse  `json:"accuracy"`
	CreatedAt    time.Time         `json:"created_at"`
}

func NewModelVersionResponse(v model.Version) ModelVersionResponse {
	return ModelVersionResponse{
		ID:           v.ID,
		ModelName:    v.ModelName,
		Version:      v.Version,
		IsActive:     v.IsActive,
		IsExperiment: v.IsExperiment,
		Weights: WeightsRequest{
			Keyword: v.Weights.Keyword,
			TFIDF:   v.Weights.TFIDF,
			Vector:  v.Weights.Vector,
		},
		Thresholds: ThresholdsRequest{
			KeywordMin:       v.Thresholds.KeywordMin,
			TFIDFMin:         v.Thresholds.TFIDFMin,
			VectorMin:        v.Thresholds.VectorMin,
			Strong:           v.Thresholds.Strong,
			Possible:         v.Thresholds.Possible,
			Weak:             v.Thresholds.Weak,
			MinSignalsPassed: v.Thresholds.MinSignalsPassed,
		},
		Accuracy:  NewAccuracyResponse(v.Accuracy),
		CreatedAt: v.CreatedAt,
	}
}

func NewAccuracyResponse(m model.AccuracyMetrics) AccuracyResponse {
	return AccuracyResponse{
		Samples:        m.Samples,
		TruePositives:  m.TruePositives,
		FalsePositives: m.FalsePositives,
		Precision:      m.Precision,
	}
}
