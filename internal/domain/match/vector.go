package match

import (
	"errors"
	"math"
)

var (
	ErrEmbeddingMissing  = errors.New("embedding missing")
	ErrEmbeddingMismatch = errors.New("embedding dimensions do not match")
)

type VectorResult struct {
	// Score is the cosine similarity clamped to [0,1].
	Score float64
	// Similarity is the raw cosine value, kept unclamped for diagnostics.
	Similarity float64
}

// Vector computes cosine similarity between two precomputed dense
// embeddings. Small negative cosines are floored to zero in Score, not
// treated as errors. Absent or mismatched embeddings are errors the caller
// degrades to a sentinel signal.
func Vector(resumeEmbedding, vacancyEmbedding []float64) (VectorResult, error) {
	if len(resumeEmbedding) == 0 || len(vacancyEmbedding) == 0 {
		return VectorResult{}, ErrEmbeddingMissing
	}
	if len(resumeEmbedding) != len(vacancyEmbedding) {
		return VectorResult{}, ErrEmbeddingMismatch
	}

	var dot, normA, normB float64
	for i := range resumeEmbedding {
		dot += resumeEmbedding[i] * vacancyEmbedding[i]
		normA += resumeEmbedding[i] * resumeEmbedding[i]
		normB += vacancyEmbedding[i] * vacancyEmbedding[i]
	}
	if normA == 0 || normB == 0 {
		return VectorResult{}, ErrEmbeddingMissing
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))

	score := sim
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return VectorResult{Score: score, Similarity: sim}, nil
}
