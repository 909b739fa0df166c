package landing

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrNoMatch        = errors.New("no template matches path")
	ErrAmbiguousMatch = errors.New("ambiguous template match")
	ErrInvalidPattern = errors.New("invalid url pattern")
)

// AmbiguousMatchError names the two templates that tie at the top rank.
type AmbiguousMatchError struct {
	Path        string
	TemplateIDs [2]uint
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("path %q matches templates %d and %d with equal specificity", e.Path, e.TemplateIDs[0], e.TemplateIDs[1])
}

func (e *AmbiguousMatchError) Unwrap() error {
	return ErrAmbiguousMatch
}

// WarningKind classifies a degraded, non-fatal condition.
type WarningKind string

const (
	WarningUnresolvedToken WarningKind = "unresolved_token"
	WarningMalformedToken  WarningKind = "malformed_token"
	WarningDuplicateURL    WarningKind = "duplicate_generated_url"
	WarningInvalidRecord   WarningKind = "invalid_record"
)

// Warning is reported alongside a best-effort result instead of failing it.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Field   string      `json:"field,omitempty"`
	Token   string      `json:"token,omitempty"`
	Message string      `json:"message"`
}
