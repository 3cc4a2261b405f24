package models

import (
	"regexp"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01",
	"01/2006",
	"1/2006",
	"01-2006",
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"Jan, 2006",
	"January, 2006",
	"2006",
}

var ongoingWords = map[string]bool{
	"present": true, "current": true, "now": true, "today": true, "ongoing": true, "till date": true,
}

// durationSep splits "2019 - 2021", "Jan 2020 – Present", "2018 to 2020"
var durationSep = regexp.MustCompile(`\s*(?:–|—|-|\bto\b|\buntil\b)\s*`)

// IsOngoing reports whether s denotes a current position
func IsOngoing(s string) bool {
	return ongoingWords[strings.ToLower(strings.TrimSpace(s))]
}

// ParseDate parses the month/year formats résumés commonly use
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Month names in any case: "JAN 2020", "march 2019"
	if len(s) > 4 {
		titled := strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, titled); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// SplitDuration splits a free-form range into start and end parts. ISO
// dates are kept intact: "2020-01 - 2021-06" yields "2020-01", "2021-06".
func SplitDuration(d string) (start, end string) {
	d = strings.TrimSpace(d)
	if d == "" {
		return "", ""
	}
	if _, ok := ParseDate(d); ok {
		return d, ""
	}

	// Prefer spaced separators so hyphens inside ISO dates survive
	for _, sep := range []string{" - ", " – ", " — ", " to ", " until ", "–", "—"} {
		if i := strings.Index(strings.ToLower(d), sep); i >= 0 {
			return strings.TrimSpace(d[:i]), strings.TrimSpace(d[i+len(sep):])
		}
	}

	parts := durationSep.Split(d, -1)
	switch len(parts) {
	case 2:
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	case 1:
		return strings.TrimSpace(parts[0]), ""
	}
	// "2020-01-2021-06" style: cannot split unambiguously
	return d, ""
}

// EntryRange resolves an experience entry to start/end times. ongoing is
// true when the end is "Present" or similar.
func EntryRange(e ExperienceEntry) (start, end time.Time, ongoing, ok bool) {
	startRaw, endRaw := e.StartDate, e.EndDate
	if strings.TrimSpace(startRaw) == "" && strings.TrimSpace(e.Duration) != "" {
		startRaw, endRaw = SplitDuration(e.Duration)
	}

	start, ok = ParseDate(startRaw)
	if !ok {
		return time.Time{}, time.Time{}, false, false
	}
	if IsOngoing(endRaw) {
		return start, time.Time{}, true, true
	}
	end, endOK := ParseDate(endRaw)
	if !endOK {
		// A bare start with no usable end is treated as a point in time
		return start, start, false, true
	}
	return start, end, false, true
}
