package classifier

import "context"

// Generator performs a single text generation call against an LLM.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (Completion, error)
}

// TokenBudget bounds user text before it is sent upstream.
type TokenBudget interface {
	Truncate(text string, maxTokens int) (string, int)
}

// TrendingStore counts classified queries.
type TrendingStore interface {
	IncrementQuery(ctx context.Context, canonical, display string) error
	TopQueries(ctx context.Context, limit int) ([]TrendingQuery, error)
}

// HistoryRepository persists classification outcomes.
type HistoryRepository interface {
	Append(ctx context.Context, entry HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]HistoryEntry, error)
}
