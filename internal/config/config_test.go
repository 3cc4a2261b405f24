package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 && os.Getenv("PORT") == "" {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Policy.GapDays != 180 && os.Getenv("POLICY_GAP_DAYS") == "" {
		t.Fatalf("expected default gap days 180, got %d", cfg.Policy.GapDays)
	}
	if cfg.OCR.MaxFileSize != 10<<20 {
		t.Fatalf("expected 10MB OCR cap, got %d", cfg.OCR.MaxFileSize)
	}
}

func TestLoadConfigPartialPolicyKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
policy:
  min_technical_skills: 7
llm:
  timeout: 15s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Policy.MinTechnicalSkills != 7 {
		t.Fatalf("expected override 7, got %d", cfg.Policy.MinTechnicalSkills)
	}
	if cfg.Policy.MinSummaryChars != 30 {
		t.Fatalf("expected default 30 kept, got %d", cfg.Policy.MinSummaryChars)
	}
	if cfg.Policy.CVWeights.PersonalInfo != 30 {
		t.Fatalf("expected cv weights kept, got %+v", cfg.Policy.CVWeights)
	}
	if cfg.LLM.Timeout != 15*time.Second {
		t.Fatalf("expected llm timeout 15s, got %v", cfg.LLM.Timeout)
	}
}

func TestLoadConfigExpandsEnv(t *testing.T) {
	t.Setenv("DOCSENSE_TEST_KEY", "secret-key")
	path := writeConfig(t, `
llm:
  api_key: ${DOCSENSE_TEST_KEY}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.APIKey != "secret-key" && os.Getenv("LLM_API_KEY") == "" {
		t.Fatalf("expected expanded api key, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Fatalf("expected port 7070, got %d", cfg.Server.Port)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Fatalf("expected gemini provider, got %s", cfg.LLM.Provider)
	}
	if !cfg.Redis.Enabled {
		t.Fatal("expected REDIS_URL to enable the cache")
	}
}

func TestLoadConfigRejectsBadWeights(t *testing.T) {
	path := writeConfig(t, `
policy:
  jd_weights:
    job_info: 10
    responsibilities: 10
    requirements: 10
    summary: 10
`)

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for weights not summing to 100")
	}
}
