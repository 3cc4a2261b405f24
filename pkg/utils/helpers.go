package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// issueNamespace seeds deterministic ids for issues and suggestions
var issueNamespace = uuid.MustParse("6f1c2b6e-8f0b-4f55-9a8f-1d5f3f0b7c21")

// GenerateRequestID generates a unique request ID for tracking
func GenerateRequestID() string {
	return uuid.New().String()
}

// StableID derives the same id for the same parts every run
func StableID(parts ...string) string {
	return uuid.NewSHA1(issueNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}

// FormatDuration formats a duration to a human-readable string
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// Blank reports an empty or whitespace-only string
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ContainsFold reports whether slice holds item, ignoring case and surrounding space
func ContainsFold(slice []string, item string) bool {
	item = strings.TrimSpace(item)
	for _, s := range slice {
		if strings.EqualFold(strings.TrimSpace(s), item) {
			return true
		}
	}
	return false
}

// DedupeFold removes blanks and case-insensitive duplicates, keeping first spelling
func DedupeFold(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(strings.TrimSpace(it))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(it))
	}
	return out
}

// CountDigits counts ASCII digits
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases and hyphenates a name: "Jane Doe" -> "jane-doe"
func Slug(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Truncate cuts s to at most n runes
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}
