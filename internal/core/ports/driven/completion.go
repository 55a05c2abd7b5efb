package driven

import "context"

// CompletionService provides synchronous text completion.
// One request per call, no streaming; the pipeline treats the model as
// a black-box text function.
//
// Implementations may include:
//   - OpenAI (chat completions)
//   - Anthropic (messages)
//   - Ollama (local models)
type CompletionService interface {
	// Complete sends system instructions plus a user payload and
	// returns the model's raw text output.
	Complete(ctx context.Context, system, user string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a pipeline run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CompleteOptions configures a single completion request.
type CompleteOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}
