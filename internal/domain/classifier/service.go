package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	apperrors "github.com/yanqian/home-solutions/pkg/errors"
	"github.com/yanqian/home-solutions/pkg/util"
)

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxQueryTokens = 256
	defaultTrendingLimit  = 10
	defaultHistoryLimit   = 50
	maxLogLength          = 200
)

// Service exposes AI assisted category matching.
type Service interface {
	Classify(ctx context.Context, text string) Recommendation
	Trending(ctx context.Context, limit int) ([]TrendingQuery, error)
	History(ctx context.Context, limit int) ([]HistoryEntry, error)
}

type service struct {
	cfg       Config
	generator Generator
	budget    TokenBudget
	trending  TrendingStore
	history   HistoryRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the classifier. A nil generator means no AI credential is configured.
func NewService(cfg Config, generator Generator, budget TokenBudget, trending TrendingStore, history HistoryRepository, logger *slog.Logger) Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxQueryTokens <= 0 {
		cfg.MaxQueryTokens = defaultMaxQueryTokens
	}
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = defaultTrendingLimit
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	return &service{
		cfg:       cfg,
		generator: generator,
		budget:    budget,
		trending:  trending,
		history:   history,
		logger:    logger.With("component", "classifier.service"),
		now:       util.NowUTC,
	}
}

func (s *service) Classify(ctx context.Context, text string) Recommendation {
	query := strings.TrimSpace(text)
	if query == "" {
		return sentinel(StatusFailed, ReasoningNoQuery)
	}
	if s.generator == nil {
		s.logger.Warn("ai credential not configured, returning default recommendation")
		return sentinel(StatusUnavailable, ReasoningUnavailable)
	}

	rec := s.classify(ctx, query)
	s.record(ctx, query, rec)
	return rec
}

func (s *service) classify(ctx context.Context, query string) Recommendation {
	userText := query
	promptTokens := 0
	if s.budget != nil {
		userText, promptTokens = s.budget.Truncate(query, s.cfg.MaxQueryTokens)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	completion, err := s.generator.Generate(callCtx, Prompt{
		System:     s.buildSystemPrompt(),
		User:       buildUserPrompt(userText),
		JSONFields: []string{"category", "reasoning"},
	})
	if err != nil {
		s.logger.Error("classification request failed", "error", err)
		return sentinel(StatusFailed, ReasoningFailed)
	}
	if strings.TrimSpace(completion.Text) == "" {
		s.logger.Warn("classification returned empty completion")
		return sentinel(StatusFailed, ReasoningEmpty)
	}
	s.logger.Debug("classification completion", "content", util.TruncateForLog(completion.Text, maxLogLength))

	rec, err := parseRecommendation(completion.Text)
	if err != nil {
		s.logger.Error("classification response malformed", "error", err, "content", util.TruncateForLog(completion.Text, maxLogLength))
		return sentinel(StatusFailed, ReasoningFailed)
	}
	usage := completion.Usage.WithPromptEstimate(promptTokens)
	if !usage.IsZero() {
		rec.TokenUsage = &usage
	}
	return rec
}

func (s *service) record(ctx context.Context, query string, rec Recommendation) {
	if s.trending != nil {
		if err := s.trending.IncrementQuery(ctx, normalizeQuery(query), query); err != nil {
			s.logger.Warn("trending increment failed", "error", err)
		}
	}
	if s.history != nil {
		entry := HistoryEntry{
			Query:     query,
			Category:  rec.Category,
			Status:    rec.Status,
			Reasoning: rec.Reasoning,
			CreatedAt: s.now(),
		}
		if err := s.history.Append(ctx, entry); err != nil {
			s.logger.Warn("classification history append failed", "error", err)
		}
	}
}

func (s *service) Trending(ctx context.Context, limit int) ([]TrendingQuery, error) {
	if s.trending == nil {
		return []TrendingQuery{}, nil
	}
	if limit <= 0 || limit > s.cfg.TrendingLimit {
		limit = s.cfg.TrendingLimit
	}
	items, err := s.trending.TopQueries(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("classifier_error", "failed to load trending queries", err)
	}
	if items == nil {
		items = []TrendingQuery{}
	}
	return items, nil
}

func (s *service) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if s.history == nil {
		return []HistoryEntry{}, nil
	}
	if limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}
	entries, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("classifier_error", "failed to load classification history", err)
	}
	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}

func (s *service) buildSystemPrompt() string {
	base := strings.TrimSpace(s.cfg.Prompt)
	if base == "" {
		base = "You help homeowners find the right kind of local service professional."
	}
	enforcer := " Respond ONLY with valid minified JSON using this shape: {\"category\":string,\"reasoning\":string}. Never return plain text or other fields."
	return base + enforcer
}

func buildUserPrompt(query string) string {
	names := make([]string, 0, len(catalog.Categories()))
	for _, c := range catalog.Categories() {
		names = append(names, string(c))
	}
	return fmt.Sprintf(
		"User needs help with home services. Query: %q.\nAvailable Categories: %s.\nIdentify the best matching category.\nIf it doesn't fit clearly, return '%s'.\nProvide a short, friendly reasoning.",
		query, strings.Join(names, ", "), catalog.CategoryOther,
	)
}

func parseRecommendation(raw string) (Recommendation, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimPrefix(sanitized, "```")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.TrimSpace(sanitized)

	var wire struct {
		Category  string `json:"category"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(sanitized), &wire); err != nil {
		return Recommendation{}, err
	}

	reasoning := strings.TrimSpace(wire.Reasoning)
	category, ok := catalog.MatchCategory(wire.Category)
	if !ok {
		return Recommendation{
			Category:  LabelUnclassified,
			Reasoning: reasoning,
			Status:    StatusUnclassified,
		}, nil
	}
	rec := Recommendation{
		Category:  Label(category),
		Reasoning: reasoning,
		Status:    StatusClassified,
	}
	_, rec.Actionable = rec.Suggestion()
	return rec, nil
}

func sentinel(status Status, reasoning string) Recommendation {
	return Recommendation{Category: LabelUnknown, Reasoning: reasoning, Status: status}
}
