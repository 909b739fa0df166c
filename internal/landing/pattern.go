package landing

import (
	"fmt"
	"net/url"
	"strings"
)

// Pattern is a parsed url pattern such as /cost/:careLevel/:city.
type Pattern struct {
	Raw      string
	segments []segment
}

type segment struct {
	literal string
	param   string
}

func (s segment) named() bool {
	return s.param != ""
}

// ParsePattern validates and splits a url pattern. Literal segments are
// compared case-insensitively, so they are stored lower-cased.
func ParsePattern(raw string) (Pattern, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, raw)
	}

	body := strings.TrimSuffix(trimmed, "/")
	if body == "" {
		return Pattern{Raw: "/"}, nil
	}

	parts := strings.Split(body[1:], "/")
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if part == "" {
			return Pattern{}, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPattern, raw)
		}
		if strings.HasPrefix(part, ":") {
			name := part[1:]
			if name == "" {
				return Pattern{}, fmt.Errorf("%w: %q contains an unnamed segment", ErrInvalidPattern, raw)
			}
			if _, dup := seen[name]; dup {
				return Pattern{}, fmt.Errorf("%w: %q repeats segment :%s", ErrInvalidPattern, raw, name)
			}
			seen[name] = struct{}{}
			segments = append(segments, segment{param: name})
			continue
		}
		segments = append(segments, segment{literal: strings.ToLower(part)})
	}

	return Pattern{Raw: trimmed, segments: segments}, nil
}

// Literal reports whether the pattern has no named segments.
func (p Pattern) Literal() bool {
	for _, seg := range p.segments {
		if seg.named() {
			return false
		}
	}
	return true
}

// Params lists the named segments in order.
func (p Pattern) Params() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.named() {
			names = append(names, seg.param)
		}
	}
	return names
}

// shape renders the pattern with every named segment collapsed to ':', so two
// patterns with the same shape match exactly the same paths.
func (p Pattern) shape() string {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if seg.named() {
			b.WriteByte(':')
			continue
		}
		b.WriteString(seg.literal)
	}
	return b.String()
}

// Bind matches path segments against the pattern and captures named values.
func (p Pattern) Bind(segments []string) (map[string]string, bool) {
	if len(segments) != len(p.segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range p.segments {
		value := segments[i]
		if seg.named() {
			if value == "" {
				return nil, false
			}
			params[seg.param] = value
			continue
		}
		if value != seg.literal {
			return nil, false
		}
	}
	return params, true
}

// Build substitutes values into the named segments. Every named segment must
// have a non-empty value.
func (p Pattern) Build(values map[string]string) (string, bool) {
	if len(p.segments) == 0 {
		return "/", true
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if !seg.named() {
			b.WriteString(seg.literal)
			continue
		}
		value := strings.TrimSpace(values[seg.param])
		if value == "" {
			return "", false
		}
		b.WriteString(value)
	}
	return b.String(), true
}

// NormalizePath percent-decodes, lower-cases and strips the trailing slash of
// an inbound request path.
func NormalizePath(raw string) string {
	path := strings.TrimSpace(raw)
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	path = strings.ToLower(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// SplitPath splits a normalized path into its segments.
func SplitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
