package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"docsense/internal/config"
	"docsense/internal/logging"
)

type fakeProvider struct {
	reply     string
	err       error
	healthErr error
	calls     int
	gotSystem string
}

func (f *fakeProvider) Generate(ctx context.Context, prompt, systemInstruction string) (string, error) {
	f.calls++
	f.gotSystem = systemInstruction
	return f.reply, f.err
}

func (f *fakeProvider) IsHealthy(ctx context.Context) error { return f.healthErr }

func (f *fakeProvider) GetProviderName() string { return "fake" }

func TestManagerGenerateDelegates(t *testing.T) {
	cfg := config.Defaults()
	p := &fakeProvider{reply: `{"ok":true}`}
	m := NewManagerWithProvider(cfg, p, logging.Nop())

	out, err := m.Generate(context.Background(), "text", "system")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"ok":true}` || p.gotSystem != "system" {
		t.Fatalf("unexpected delegate result %q / %q", out, p.gotSystem)
	}
	if m.GetProviderName() != "fake" {
		t.Fatalf("expected provider name fake, got %s", m.GetProviderName())
	}
}

func TestManagerUnhealthyAfterCheck(t *testing.T) {
	cfg := config.Defaults()
	p := &fakeProvider{healthErr: errors.New("no key")}
	m := NewManagerWithProvider(cfg, p, logging.Nop())

	if err := m.CheckHealth(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
	if m.IsHealthy() {
		t.Fatal("expected manager to be unhealthy")
	}
	if _, err := m.Generate(context.Background(), "x", ""); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if p.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", p.calls)
	}
}

func TestManagerStoppedRejects(t *testing.T) {
	m := NewManagerWithProvider(config.Defaults(), &fakeProvider{}, logging.Nop())
	_ = m.Stop()
	if _, err := m.Generate(context.Background(), "x", ""); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestManagerRateLimitHonoursContext(t *testing.T) {
	cfg := config.Defaults()
	cfg.LLM.RateLimit = 1
	cfg.LLM.Burst = 1
	p := &fakeProvider{reply: "{}"}
	m := NewManagerWithProvider(cfg, p, logging.Nop())

	if _, err := m.Generate(context.Background(), "x", ""); err != nil {
		t.Fatalf("first call should pass, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := m.Generate(ctx, "x", ""); err == nil {
		t.Fatal("expected second call to fail waiting for a token")
	}
	if p.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", p.calls)
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	cfg := config.Defaults()
	cfg.LLM.Provider = "mystery"
	if _, err := NewLLMFactory(cfg).CreateProvider(context.Background()); err == nil {
		t.Fatal("expected unsupported provider error")
	}
}
