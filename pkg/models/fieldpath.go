package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFieldPath is returned for paths that do not parse
var ErrInvalidFieldPath = errors.New("invalid field path")

// Segment is one step of a FieldPath. Index is -1 when the segment is not indexed.
type Segment struct {
	Name  string
	Index int
}

// FieldPath addresses a field inside a document, e.g. "experience[0].description"
type FieldPath struct {
	Segments []Segment
}

// ParseFieldPath parses a dot path with optional [n] indexes
func ParseFieldPath(s string) (FieldPath, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FieldPath{}, fmt.Errorf("%w: empty", ErrInvalidFieldPath)
	}

	parts := strings.Split(s, ".")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		seg := Segment{Name: part, Index: -1}
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") || open == 0 {
				return FieldPath{}, fmt.Errorf("%w: %q", ErrInvalidFieldPath, s)
			}
			idx, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil || idx < 0 {
				return FieldPath{}, fmt.Errorf("%w: bad index in %q", ErrInvalidFieldPath, s)
			}
			seg.Name = part[:open]
			seg.Index = idx
		}
		if seg.Name == "" || strings.ContainsAny(seg.Name, "[] ") {
			return FieldPath{}, fmt.Errorf("%w: %q", ErrInvalidFieldPath, s)
		}
		segments = append(segments, seg)
	}

	return FieldPath{Segments: segments}, nil
}

// MustFieldPath panics on invalid input; meant for literals
func MustFieldPath(s string) FieldPath {
	p, err := ParseFieldPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the path back to its dot form
func (p FieldPath) String() string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Name)
		if seg.Index >= 0 {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// Depth is the number of dotted segments
func (p FieldPath) Depth() int {
	return len(p.Segments)
}

// Root returns the first segment name
func (p FieldPath) Root() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0].Name
}

// Indexed builds "name[i]" or "name[i].child" paths
func Indexed(name string, index int, child string) string {
	p := fmt.Sprintf("%s[%d]", name, index)
	if child != "" {
		p += "." + child
	}
	return p
}
