package llm

import "context"

// Generator is the extraction collaborator contract: a prompt plus a system
// instruction in, raw model text out.
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// LLMProvider is a Generator backed by a hosted model
type LLMProvider interface {
	Generator

	// IsHealthy checks if the provider is configured and reachable
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
