package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"docsense/internal/config"
	"docsense/internal/logging"
)

var (
	ErrNotStarted  = errors.New("LLM manager not started or provider not available")
	ErrUnavailable = errors.New("LLM provider is not available - check API key configuration (set LLM_API_KEY environment variable)")
)

// Manager owns the configured provider, its health and the call rate limit
type Manager struct {
	config   *config.Config
	factory  *LLMFactory
	provider LLMProvider
	limiter  *rate.Limiter
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager instance
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:  cfg,
		factory: NewLLMFactory(cfg),
		limiter: newLimiter(cfg.LLM.RateLimit, cfg.LLM.Burst),
		logger:  logging.GetGlobalLogger().WithField("component", "llm"),
	}
}

// NewManagerWithProvider wires a ready provider, skipping the factory
func NewManagerWithProvider(cfg *config.Config, provider LLMProvider, logger logging.Logger) *Manager {
	return &Manager{
		config:   cfg,
		factory:  NewLLMFactory(cfg),
		provider: provider,
		limiter:  newLimiter(cfg.LLM.RateLimit, cfg.LLM.Burst),
		logger:   logger,
		healthy:  true,
	}
}

func newLimiter(perMinute, burst int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
}

// Start creates the provider and checks it. A failed check leaves the
// manager running but unhealthy so the rest of the service can start.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{"provider": m.config.LLM.Provider})

	provider, err := m.factory.CreateProvider(ctx)
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	m.provider = provider

	checkCtx, cancel := context.WithTimeout(ctx, m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(checkCtx); err != nil {
		m.logger.Warn("LLM provider health check failed - extraction will be unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		m.healthy = false
		return nil
	}

	m.healthy = true
	m.logger.Info("LLM manager started successfully", map[string]interface{}{"provider": m.provider.GetProviderName()})
	return nil
}

// Stop shuts down the LLM manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.provider = nil
	m.healthy = false
	return nil
}

// Generate waits for a rate-limit token then calls the provider under the configured timeout
func (m *Manager) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider == nil {
		return "", ErrNotStarted
	}
	if !healthy {
		return "", ErrUnavailable
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	if m.config.LLM.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.LLM.Timeout)
		defer cancel()
	}

	return provider.Generate(ctx, prompt, systemInstruction)
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current LLM provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}

// CheckHealth re-checks the provider and records the result
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return ErrNotStarted
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = err == nil
	m.mu.Unlock()

	return err
}
