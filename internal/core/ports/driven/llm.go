package driven

import "context"

// LLMService provides chat completions for answering grounded questions.
// This is an optional service - when nil, asking degrades to returning
// processed sources without a generated answer.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - Azure OpenAI (same wire format, different base URL)
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the full reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ChatStream conducts a conversation and delivers the reply
	// incrementally. onDelta is called once per content fragment, in
	// order. The accumulated reply is returned when the stream ends.
	ChatStream(ctx context.Context, messages []ChatMessage, opts ChatOptions, onDelta func(string)) (string, error)

	// RewriteQuery rewrites a user question into a search query.
	RewriteQuery(ctx context.Context, question string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
