// Package types holds the logging vocabulary shared by the logger and its
// adapters. It sits below both so adapters never import the logger.
package types

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// LogLevel orders entries by severity; higher is more severe
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelNames = [...]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
	FatalLevel: "fatal",
}

// String is the lowercase name written to every adapter. Levels outside the
// known range render as "off", which is what Nop uses.
func (l LogLevel) String() string {
	if l < DebugLevel || int(l) >= len(levelNames) {
		return "off"
	}
	return levelNames[l]
}

// ParseLevel accepts the names written by String plus "warning". Anything
// unrecognised yields InfoLevel and ok=false.
func ParseLevel(s string) (level LogLevel, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return WarnLevel, true
	}
	for i, name := range levelNames {
		if name == s {
			return LogLevel(i), true
		}
	}
	return InfoLevel, false
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	level, ok := ParseLevel(string(text))
	if !ok {
		return fmt.Errorf("unknown log level %q", text)
	}
	*l = level
	return nil
}

// LogEntry is what adapters receive. Fields already include the logger's
// bound fields merged with the call's own.
type LogEntry struct {
	Level     LogLevel
	Message   string
	Timestamp time.Time
	Fields    map[string]interface{}
	Context   context.Context
}

// LogAdapter is one output sink, addressed by a unique name
type LogAdapter interface {
	Name() string
	Write(entry *LogEntry) error
	Health() error
	Close() error
}

// Logger is what services, handlers and the extraction pipeline depend on.
// Adapter registration and level changes live on the concrete logger.
type Logger interface {
	Debug(message string, fields ...map[string]interface{})
	Info(message string, fields ...map[string]interface{})
	Warn(message string, fields ...map[string]interface{})
	Error(message string, fields ...map[string]interface{})
	Fatal(message string, fields ...map[string]interface{})

	// Enabled reports whether an entry at level would reach the adapters
	Enabled(level LogLevel) bool

	WithContext(ctx context.Context) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// AdapterConfig mirrors one entry of logging.adapters in config.yaml
type AdapterConfig struct {
	Name    string
	Type    string
	Enabled bool
	Options map[string]interface{}
}
