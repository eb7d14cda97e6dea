package match

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var reTok = regexp.MustCompile(`[a-zA-Z0-9+#.]+(?:-[a-zA-Z0-9]+)*`)

var stopwords = map[string]bool{
	"the": true, "a": true, "an": true,
	"to": true, "of": true, "in": true, "on": true, "for": true, "with": true, "by": true,
	"and": true, "or": true, "as": true, "at": true, "from": true, "is": true, "are": true,
	"be": true, "will": true, "we": true, "you": true, "our": true, "your": true,
	"have": true, "has": true, "this": true, "that": true, "it": true, "its": true,
}

// CorpusStats carries document frequencies for IDF weighting. Docs is the
// corpus size; DocFreq maps a token to the number of documents containing it.
type CorpusStats struct {
	Docs    int
	DocFreq map[string]int
}

// IDF returns the smoothed inverse document frequency for a term. Terms the
// corpus has never seen get the maximum weight.
func (c CorpusStats) IDF(term string) float64 {
	if c.Docs <= 0 {
		return 1.0
	}
	df := 0
	if c.DocFreq != nil {
		df = c.DocFreq[term]
	}
	return math.Log(1.0 + float64(c.Docs)/float64(1+df))
}

type TFIDFResult struct {
	Score        float64
	MatchedTerms []string
	MissingTerms []string
}

// TFIDF computes corpus-weighted cosine similarity between the resume text
// and the vacancy description, plus the top-N vacancy terms present in and
// absent from the resume. Either document having zero extractable terms
// yields a zero score, never a division error.
func TFIDF(resumeText, vacancyText string, stats CorpusStats, topN int) TFIDFResult {
	res := TFIDFResult{
		MatchedTerms: make([]string, 0, topN),
		MissingTerms: make([]string, 0, topN),
	}

	resumeVec := weightedVector(Tokenize(resumeText), stats)
	vacancyVec := weightedVector(Tokenize(vacancyText), stats)
	if len(resumeVec) == 0 || len(vacancyVec) == 0 {
		return res
	}

	res.Score = cosineSparse(resumeVec, vacancyVec)

	for _, term := range topTerms(vacancyVec, topN) {
		if _, ok := resumeVec[term]; ok {
			res.MatchedTerms = append(res.MatchedTerms, term)
		} else {
			res.MissingTerms = append(res.MissingTerms, term)
		}
	}
	return res
}

// Tokenize lowercases, extracts word tokens and drops stopwords and
// single-character noise.
func Tokenize(text string) []string {
	raw := reTok.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ".")
		if len(t) < 2 || stopwords[t] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func weightedVector(tokens []string, stats CorpusStats) map[string]float64 {
	if len(tokens) == 0 {
		return nil
	}
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	vec := make(map[string]float64, len(tf))
	for term, freq := range tf {
		vec[term] = (freq / float64(len(tokens))) * stats.IDF(term)
	}
	return vec
}

func cosineSparse(a, b map[string]float64) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	}
	if sim < 0 {
		sim = 0
	}
	return sim
}

// topTerms returns the n highest-weighted terms, heaviest first, ties broken
// alphabetically so output order is deterministic.
func topTerms(vec map[string]float64, n int) []string {
	if n <= 0 {
		return nil
	}
	terms := make([]string, 0, len(vec))
	for t := range vec {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool {
		if vec[terms[i]] != vec[terms[j]] {
			return vec[terms[i]] > vec[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}
