package llm

// Message represents a single message in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Roles accepted by the completion API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Params holds parameters for chat completion requests.
type Params struct {
	// Model specifies the model to use. If empty, the client's default model is used.
	Model string

	// MaxTokens caps the generated output. If 0, no limit is sent.
	MaxTokens int

	// Temperature controls the randomness of the output. If 0, the provider default applies.
	Temperature float64
}
