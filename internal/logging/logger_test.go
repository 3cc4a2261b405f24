package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"docsense/internal/config"
	"docsense/internal/logging/adapters"
)

func TestLevelFiltering(t *testing.T) {
	mem := adapters.NewMemoryAdapter("mem")
	l := NewMultiLogger()
	if err := l.AddAdapter(mem); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.SetLevel(WarnLevel)

	l.Info("dropped")
	l.Warn("kept")

	entries := mem.Entries()
	if len(entries) != 1 || entries[0].Message != "kept" {
		t.Fatalf("expected only the warn entry, got %+v", entries)
	}
}

func TestDerivedLoggersShareLevelAndFields(t *testing.T) {
	mem := adapters.NewMemoryAdapter("mem")
	root := NewMultiLogger()
	_ = root.AddAdapter(mem)

	child := root.WithField("component", "validator").WithFields(map[string]interface{}{"doc": "cv"})
	root.SetLevel(ErrorLevel)

	child.Info("dropped")
	child.Error("kept", map[string]interface{}{"rule": "email"})

	entries := mem.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	f := entries[0].Fields
	if f["component"] != "validator" || f["doc"] != "cv" || f["rule"] != "email" {
		t.Fatalf("unexpected fields %+v", f)
	}
}

func TestDuplicateAdapterRejected(t *testing.T) {
	l := NewMultiLogger()
	_ = l.AddAdapter(adapters.NewMemoryAdapter("a"))
	if err := l.AddAdapter(adapters.NewMemoryAdapter("a")); err == nil {
		t.Fatal("expected duplicate adapter error")
	}
	if err := l.RemoveAdapter("a"); err != nil {
		t.Fatalf("unexpected remove error: %v", err)
	}
	if err := l.RemoveAdapter("a"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestStdoutAdapterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewMultiLogger()
	_ = l.AddAdapter(adapters.NewStdoutAdapter("out", adapters.StdoutConfig{Format: "json", Writer: &buf}))

	l.Info("extraction ok", map[string]interface{}{"doc_type": "jd"})

	var line map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected json line, got %q (%v)", buf.String(), err)
	}
	if line["message"] != "extraction ok" || line["level"] != "info" || line["doc_type"] != "jd" {
		t.Fatalf("unexpected line %+v", line)
	}
}

func TestStdoutAdapterTextSortsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewMultiLogger()
	_ = l.AddAdapter(adapters.NewStdoutAdapter("out", adapters.StdoutConfig{Format: "text", Writer: &buf}))

	l.Warn("gap", map[string]interface{}{"z": 1, "a": 2})

	out := buf.String()
	if !strings.Contains(out, "[WARN] gap a=2 z=1") {
		t.Fatalf("unexpected text output %q", out)
	}
}

func TestManagerInitializeFileAdapter(t *testing.T) {
	cfg := config.Defaults()
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg.Logging.Adapters = append(cfg.Logging.Adapters, config.LogAdapter{Name: "file", Type: "file", Enabled: true, Options: map[string]interface{}{"file_path": path}})

	m := NewManager()
	if err := m.Initialize(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()

	m.GetLogger().Info("hello")
}

func TestManagerRejectsUnknownAdapter(t *testing.T) {
	cfg := config.Defaults()
	cfg.Logging.Adapters = append(cfg.Logging.Adapters, config.LogAdapter{Name: "bs", Type: "betterstack", Enabled: true})

	if err := NewManager().Initialize(cfg); err == nil {
		t.Fatal("expected unsupported adapter error")
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	if l.Enabled(FatalLevel) {
		t.Fatal("expected nop logger to drop fatal entries")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"debug", DebugLevel},
		{" WARNING ", WarnLevel},
		{"error", ErrorLevel},
		{"verbose", InfoLevel},
		{"", InfoLevel},
	}
	for _, tc := range cases {
		if got := ParseLogLevel(tc.in); got != tc.want {
			t.Fatalf("expected %q to parse as %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestLevelText(t *testing.T) {
	var l LogLevel
	if err := l.UnmarshalText([]byte("warn")); err != nil || l != WarnLevel {
		t.Fatalf("expected warn, got %v (%v)", l, err)
	}
	if err := l.UnmarshalText([]byte("loud")); err == nil {
		t.Fatal("expected unknown level error")
	}
	if got := (FatalLevel + 1).String(); got != "off" {
		t.Fatalf("expected off above fatal, got %q", got)
	}
}
