package metrics

// TokenUsage captures LLM token counts used to satisfy a request.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// WithPromptEstimate fills PromptTokens from a local estimate when the upstream did not report it.
func (u TokenUsage) WithPromptEstimate(estimate int) TokenUsage {
	if u.PromptTokens > 0 || estimate <= 0 {
		return u
	}
	u.PromptTokens = estimate
	if u.TotalTokens < u.PromptTokens+u.CompletionTokens {
		u.TotalTokens = u.PromptTokens + u.CompletionTokens
	}
	return u
}
