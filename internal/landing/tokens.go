package landing

import (
	"fmt"
	"strings"
)

const (
	TokenCity          = "city"
	TokenCareType      = "careType"
	TokenCommunityName = "communityName"
)

var knownTokens = map[string]struct{}{
	TokenCity:          {},
	TokenCareType:      {},
	TokenCommunityName: {},
}

// tokenExpander replaces {name} placeholders. Tokens without a value stay in
// the text verbatim and are reported, since dropping them breaks sentences.
type tokenExpander struct {
	values   map[string]string
	warnings []Warning
}

func newTokenExpander(values map[string]string) *tokenExpander {
	return &tokenExpander{values: values}
}

func (x *tokenExpander) warn(w Warning) {
	x.warnings = append(x.warnings, w)
}

// String expands the tokens of a single field.
func (x *tokenExpander) String(field, s string) string {
	if !strings.Contains(s, "{") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '{' {
			b.WriteByte(s[i])
			i++
			continue
		}

		end := strings.IndexByte(s[i+1:], '}')
		nested := strings.IndexByte(s[i+1:], '{')
		if end < 0 || (nested >= 0 && nested < end) {
			x.warn(Warning{
				Kind:    WarningMalformedToken,
				Field:   field,
				Message: fmt.Sprintf("unbalanced '{' at offset %d", i),
			})
			b.WriteByte('{')
			i++
			continue
		}

		raw := s[i : i+end+2]
		name := strings.TrimSpace(s[i+1 : i+1+end])
		value, ok := x.values[name]
		if _, known := knownTokens[name]; !known || !ok || value == "" {
			x.warn(Warning{
				Kind:    WarningUnresolvedToken,
				Field:   field,
				Token:   raw,
				Message: fmt.Sprintf("token %s could not be resolved", raw),
			})
			b.WriteString(raw)
		} else {
			b.WriteString(value)
		}
		i += end + 2
	}
	return b.String()
}

// Document expands every string reachable from doc into a new document.
func (x *tokenExpander) Document(field string, doc Document) Document {
	if doc == nil {
		return nil
	}
	out, _ := x.value(field, doc).(Document)
	return out
}

func (x *tokenExpander) value(field string, v any) any {
	switch typed := v.(type) {
	case string:
		return x.String(field, typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, child := range typed {
			out[key] = x.value(field+"."+key, child)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = x.value(fmt.Sprintf("%s[%d]", field, i), child)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = x.String(fmt.Sprintf("%s[%d]", field, i), child)
		}
		return out
	default:
		return typed
	}
}

// CloneDocument deep-copies maps and slices; scalars are shared.
func CloneDocument(doc Document) Document {
	if doc == nil {
		return nil
	}
	out, _ := cloneValue(doc).(Document)
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, child := range typed {
			out[key] = cloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = cloneValue(child)
		}
		return out
	case []string:
		out := make([]any, len(typed))
		for i, child := range typed {
			out[i] = child
		}
		return out
	default:
		return typed
	}
}
