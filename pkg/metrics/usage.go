package metrics

// TokenUsage captures prompt token counts used to satisfy a capability call.
type TokenUsage struct {
	PromptTokens  int `json:"promptTokens"`
	DroppedTurns  int `json:"droppedTurns,omitempty"`
	HistoryTokens int `json:"historyTokens,omitempty"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.DroppedTurns == 0 && u.HistoryTokens == 0
}
