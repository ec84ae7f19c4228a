package tokens

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
)

const (
	// DefaultEncoding matches the chat models the classifier talks to.
	DefaultEncoding = "cl100k_base"
	runesPerToken   = 4
)

type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

// Counter truncates prompt text to a token budget.
type Counter struct {
	enc encoder
}

// NewCounter loads the named BPE encoding. When it cannot be loaded the counter
// falls back to a rune based estimate instead of failing.
func NewCounter(encoding string, logger *slog.Logger) *Counter {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		logger.With("component", "tokens.counter").Warn("token encoding unavailable, estimating by runes", "encoding", encoding, "error", err)
		return &Counter{}
	}
	return &Counter{enc: enc}
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c.enc == nil {
		return estimate(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}

// Truncate implements classifier.TokenBudget.
func (c *Counter) Truncate(text string, maxTokens int) (string, int) {
	if text == "" {
		return "", 0
	}
	if c.enc == nil {
		return truncateRunes(text, maxTokens)
	}
	ids := c.enc.Encode(text, nil, nil)
	if maxTokens <= 0 || len(ids) <= maxTokens {
		return text, len(ids)
	}
	return strings.TrimSpace(c.enc.Decode(ids[:maxTokens])), maxTokens
}

func estimate(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + runesPerToken - 1) / runesPerToken
}

func truncateRunes(text string, maxTokens int) (string, int) {
	count := estimate(text)
	if maxTokens <= 0 || count <= maxTokens {
		return text, count
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxTokens*runesPerToken])), maxTokens
}

var _ classifier.TokenBudget = (*Counter)(nil)
