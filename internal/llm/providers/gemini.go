package providers

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"docsense/internal/config"
	"docsense/internal/logging"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements the LLM provider interface using Google Gemini
type GeminiProvider struct {
	client *genai.Client
	config *config.Config
	model  string
	logger logging.Logger
}

// NewGeminiProvider creates a Gemini API client from the LLM config
func NewGeminiProvider(ctx context.Context, cfg *config.Config) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.LLM.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.LLM.Model
	if model == "" || !isGeminiModel(model) {
		model = defaultGeminiModel
	}

	return &GeminiProvider{
		client: client,
		config: cfg,
		model:  model,
		logger: logging.GetGlobalLogger().WithField("provider", "gemini"),
	}, nil
}

func isGeminiModel(name string) bool {
	return len(name) >= 6 && name[:6] == "gemini"
}

// Generate calls GenerateContent with the system instruction set on the config
func (gp *GeminiProvider) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	start := time.Now()

	temperature := gp.config.LLM.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  int32(gp.config.LLM.MaxTokens),
		ResponseMIMEType: "application/json",
	}
	if systemInstruction != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := gp.client.Models.GenerateContent(ctx, gp.model, genai.Text(prompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := stripCodeFence(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no text content in Gemini response")
	}

	gp.logger.Debug("Gemini response received", map[string]interface{}{
		"elapsed_ms": time.Since(start).Milliseconds(),
		"output_len": len(text),
	})

	return text, nil
}

// IsHealthy only checks configuration; listing models is not free on every key
func (gp *GeminiProvider) IsHealthy(ctx context.Context) error {
	if gp.config.LLM.APIKey == "" {
		return fmt.Errorf("Gemini API key not configured - set LLM_API_KEY environment variable")
	}
	return ctx.Err()
}

// GetProviderName returns the name of the LLM provider
func (gp *GeminiProvider) GetProviderName() string {
	return "gemini"
}
