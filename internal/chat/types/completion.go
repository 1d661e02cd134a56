package types

// Message is one role/content pair in a conversation. Callers are
// responsible for system/user/assistant ordering; the client passes the
// list through untouched.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes one chat completion call. MaxTokens is a
// pointer so that an unset value is omitted from the wire payload instead
// of being sent as null or zero.
type CompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// Usage carries the provider's token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is the normalized outcome of a successful completion.
type CompletionResult struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	Usage        Usage  `json:"usage"`
	FinishReason string `json:"finish_reason"`
}

// ModelInfo describes one chat-capable model exposed by the provider.
type ModelInfo struct {
	ID      string `json:"id"`
	OwnedBy string `json:"owned_by,omitempty"`
}
