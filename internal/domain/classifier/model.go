package classifier

import (
	"time"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
	"github.com/yanqian/home-solutions/pkg/metrics"
)

// Label is either a catalog category or one of the sentinel labels below.
type Label string

const (
	// LabelUnknown means no answer could be obtained from the model.
	LabelUnknown Label = "Unknown"
	// LabelUnclassified means the model answered with something outside the enumeration.
	LabelUnclassified Label = "Unclassified"
)

// Status explains how a recommendation was produced.
type Status string

const (
	StatusClassified   Status = "classified"
	StatusUnclassified Status = "unclassified"
	StatusUnavailable  Status = "unavailable"
	StatusFailed       Status = "failed"
)

// Sentinel reasoning strings shown to users.
const (
	ReasoningUnavailable = "AI service unavailable."
	ReasoningEmpty       = "Could not analyze request."
	ReasoningFailed      = "Sorry, I encountered an error analyzing your request."
	ReasoningNoQuery     = "Please describe the service you need."
)

// Request captures the payload accepted by the classify endpoint.
type Request struct {
	Query string `json:"query"`
}

// Recommendation is the validated outcome of a classification.
type Recommendation struct {
	Category   Label               `json:"category"`
	Reasoning  string              `json:"reasoning"`
	Status     Status              `json:"status"`
	Actionable bool                `json:"actionable"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// Suggestion returns the category a caller may navigate to. Other and the sentinels are not actionable.
func (r Recommendation) Suggestion() (catalog.Category, bool) {
	c, ok := catalog.ParseCategory(string(r.Category))
	if !ok || c == catalog.CategoryOther {
		return "", false
	}
	return c, true
}

// Prompt is the provider neutral request handed to a Generator.
type Prompt struct {
	System     string
	User       string
	JSONFields []string
}

// Completion is the raw text answer of a Generator.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}

// TrendingQuery represents a frequently classified query.
type TrendingQuery struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// HistoryEntry is one persisted classification.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	Category  Label     `json:"category"`
	Status    Status    `json:"status"`
	Reasoning string    `json:"reasoning"`
	CreatedAt time.Time `json:"createdAt"`
}

// Config wires runtime knobs for the classifier domain.
type Config struct {
	Prompt         string
	Timeout        time.Duration
	MaxQueryTokens int
	TrendingLimit  int
	HistoryLimit   int
}
