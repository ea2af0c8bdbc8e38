package entity

// CompletionRole identifies the author of a conversation message.
type CompletionRole string

const (
	RoleSystem    CompletionRole = "system"
	RoleUser      CompletionRole = "user"
	RoleAssistant CompletionRole = "assistant"
)

// CompletionMessage is a single message in a completion conversation.
type CompletionMessage struct {
	Role    CompletionRole `json:"role"`
	Content string         `json:"content"`
}

// CompletionRequest carries the parameters for one completion call.
// Zero values fall back to the provider's configured defaults.
type CompletionRequest struct {
	Model       string
	Messages    []CompletionMessage
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// CompletionResult is the provider-agnostic outcome of a completion call.
type CompletionResult struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
	FinishReason string
}
