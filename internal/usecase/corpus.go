package usecase

import (
	"context"
	"sync"

	"resume-match/internal/domain/match"
)

// CorpusStatsProvider supplies the document-frequency table the lexical
// scorer weighs terms against. Stats must return a stable snapshot; updates
// made while a scoring operation is in flight do not affect it.
type CorpusStatsProvider interface {
	Stats(ctx context.Context) (match.CorpusStats, error)
	AddDocument(ctx context.Context, tokens []string) error
}

// MemoryCorpus accumulates document frequencies in memory. Every scored
// vacancy and resume grows the corpus, so IDF weights sharpen over time.
type MemoryCorpus struct {
	mu      sync.RWMutex
	docs    int
	docFreq map[string]int
}

func NewMemoryCorpus() *MemoryCorpus {
	return &MemoryCorpus{docFreq: make(map[string]int)}
}

func (c *MemoryCorpus) Stats(_ context.Context) (match.CorpusStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	freq := make(map[string]int, len(c.docFreq))
	for term, df := range c.docFreq {
		freq[term] = df
	}
	return match.CorpusStats{Docs: c.docs, DocFreq: freq}, nil
}

func (c *MemoryCorpus) AddDocument(_ context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		seen[t] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs++
	for t := range seen {
		c.docFreq[t]++
	}
	return nil
}
