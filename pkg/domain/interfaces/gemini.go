package interfaces

import "context"

// GenAIClient defines operations for the generative-language upstream
type GenAIClient interface {
	// GenerateContent sends a prompt and returns the first text completion
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
