package landing

import (
	"errors"

	"go.uber.org/zap"
)

type options struct {
	logger       *zap.Logger
	relatedLimit int
}

// Option configures an Engine.
type Option func(*options)

// WithLogger routes warnings to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRelatedLimit caps the related-community list.
func WithRelatedLimit(limit int) Option {
	return func(o *options) {
		o.relatedLimit = limit
	}
}

// Engine is an immutable view over one snapshot of templates, sections and
// reference data. All methods are safe for concurrent use.
type Engine struct {
	catalog  *Catalog
	matcher  *Matcher
	resolver *Resolver
	composer *Composer
	logger   *zap.Logger
}

// NewEngine compiles a snapshot.
func NewEngine(snap Snapshot, opts ...Option) *Engine {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	catalog := NewCatalog(snap.CareTypes, snap.Communities)
	e := &Engine{
		catalog:  catalog,
		matcher:  NewMatcher(snap.Templates, catalog),
		resolver: NewResolver(catalog, nil, o.relatedLimit),
		composer: NewComposer(snap.Sections),
		logger:   o.logger.Named("landing"),
	}

	for _, w := range append(e.matcher.Skipped(), e.composer.Skipped()...) {
		e.logger.Warn("record skipped", zap.String("kind", string(w.Kind)), zap.String("detail", w.Message))
	}
	return e
}

// MatchPath finds the template for a normalized path.
func (e *Engine) MatchPath(path string) (Match, error) {
	m, err := e.matcher.Match(path)
	if err != nil {
		var ambiguous *AmbiguousMatchError
		if errors.As(err, &ambiguous) {
			e.logger.Error("ambiguous template configuration",
				zap.String("path", path),
				zap.Uint("template_a", ambiguous.TemplateIDs[0]),
				zap.Uint("template_b", ambiguous.TemplateIDs[1]),
			)
		}
		return Match{}, err
	}
	return m, nil
}

// ResolveContent expands text, variant content and related communities.
func (e *Engine) ResolveContent(m Match) ResolvedPage {
	page := e.resolver.Resolve(m)
	for _, w := range page.Warnings {
		e.logger.Warn("content authoring warning",
			zap.Uint("template_id", m.Template.ID),
			zap.String("path", m.Path),
			zap.String("kind", string(w.Kind)),
			zap.String("field", w.Field),
			zap.String("token", w.Token),
		)
	}
	return page
}

// ComposeSections assembles the ordered section list for a page.
func (e *Engine) ComposeSections(tpl Template, path string) []Section {
	return e.composer.Compose(tpl, path)
}

// Resolve runs match, resolve and compose for an inbound path.
func (e *Engine) Resolve(rawPath string) (ResolvedPage, error) {
	path := NormalizePath(rawPath)
	m, err := e.MatchPath(path)
	if err != nil {
		return ResolvedPage{}, err
	}
	page := e.ResolveContent(m)
	page.Sections = e.ComposeSections(m.Template, path)
	return page, nil
}
