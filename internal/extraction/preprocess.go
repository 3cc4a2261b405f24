package extraction

import (
	"errors"
	"regexp"
	"strings"

	"docsense/internal/llm/processors"
)

// ErrEmptyInput is returned when nothing is left to extract after cleanup
var ErrEmptyInput = errors.New("extraction input is empty")

var (
	spaceRunRe  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	boxNoiseRe  = regexp.MustCompile(`^\s*[-_=|~•·*+][\s\-_=|~•·*+]*$`)
	pipeSepRe   = regexp.MustCompile(`\s*\|\s*`)
	// trailing dashes with nothing after them
	strayDashRe = regexp.MustCompile(`\s+[-–—]+$`)
)

// Preprocess turns OCR output (or pasted markup) into compact plain text.
// The result is capped at maxChars runes when maxChars > 0.
func Preprocess(text string, maxChars int) string {
	if processors.LooksLikeHTML(text) {
		if cleaned, err := processors.NewHTMLCleaner().ExtractText(text); err == nil && cleaned != "" {
			text = cleaned
		}
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if boxNoiseRe.MatchString(line) {
			continue
		}
		line = pipeSepRe.ReplaceAllString(line, " ")
		line = strayDashRe.ReplaceAllString(line, "")
		line = strings.TrimSpace(spaceRunRe.ReplaceAllString(line, " "))
		kept = append(kept, line)
	}

	text = strings.Join(kept, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	if maxChars > 0 {
		if r := []rune(text); len(r) > maxChars {
			text = strings.TrimSpace(string(r[:maxChars]))
		}
	}
	return text
}
