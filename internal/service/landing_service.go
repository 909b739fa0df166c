package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/landingpages/internal/cache"
	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/landing"
	"github.com/landingpages/internal/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LandingService 负责落地页引擎的构建、缓存与失效。
// 引擎按快照版本缓存；任何后台写入都会推进版本，下一次请求即重建。
type LandingService struct {
	db     *gorm.DB
	store  cache.SnapshotStore
	logger *zap.Logger
	opts   []landing.Option

	mu      sync.Mutex
	current atomic.Pointer[versionedEngine]
}

type versionedEngine struct {
	version int64
	engine  *landing.Engine
}

// uncachedVersion 标记在共享缓存不可用时直接从数据库构建的引擎。
const uncachedVersion int64 = -1

// NewLandingService 构造 LandingService；store 为空时使用进程内缓存。
func NewLandingService(gdb *gorm.DB, store cache.SnapshotStore, log *zap.Logger, relatedLimit int) *LandingService {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LandingService{
		db:     gdb,
		store:  store,
		logger: log,
		opts: []landing.Option{
			landing.WithLogger(log),
			landing.WithRelatedLimit(relatedLimit),
		},
	}
}

// Snapshot 从数据库读取引擎所需的全部记录。
func (s *LandingService) Snapshot(ctx context.Context) (landing.Snapshot, error) {
	catalog := NewCatalogService(s.db, nil)
	careTypes, err := catalog.ListActiveCareTypes(ctx)
	if err != nil {
		return landing.Snapshot{}, err
	}

	var communities []db.Community
	if err := s.db.WithContext(ctx).Order("sort_order ASC, name ASC, id ASC").Find(&communities).Error; err != nil {
		return landing.Snapshot{}, fmt.Errorf("load communities: %w", err)
	}

	var templates []db.LandingPageTemplate
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("created_at ASC, id ASC").Find(&templates).Error; err != nil {
		return landing.Snapshot{}, fmt.Errorf("load templates: %w", err)
	}

	var sections []db.PageContentSection
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").Find(&sections).Error; err != nil {
		return landing.Snapshot{}, fmt.Errorf("load sections: %w", err)
	}

	snap := landing.Snapshot{
		CareTypes:   careTypes,
		Communities: make([]landing.Community, 0, len(communities)),
		Templates:   make([]landing.Template, 0, len(templates)),
		Sections:    make([]landing.Section, 0, len(sections)),
	}
	for _, record := range communities {
		snap.Communities = append(snap.Communities, toLandingCommunity(record))
	}
	for _, record := range templates {
		snap.Templates = append(snap.Templates, toLandingTemplate(record))
	}
	for _, record := range sections {
		snap.Sections = append(snap.Sections, toLandingSection(record))
	}
	return snap, nil
}

// Engine 返回当前版本的引擎，必要时重建。
func (s *LandingService) Engine(ctx context.Context) (*landing.Engine, error) {
	version, err := s.store.Version(ctx)
	if err != nil {
		s.logger.Warn("snapshot version unavailable", zap.Error(err))
		if cur := s.current.Load(); cur != nil {
			return cur.engine, nil
		}
		version = uncachedVersion
	}

	if cur := s.current.Load(); cur != nil && cur.version == version {
		return cur.engine, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cur := s.current.Load(); cur != nil && cur.version == version {
		return cur.engine, nil
	}

	snap, err := s.loadSnapshot(ctx, version)
	if err != nil {
		return nil, err
	}

	engine := landing.NewEngine(snap, s.opts...)
	s.current.Store(&versionedEngine{version: version, engine: engine})
	metrics.EngineRebuilds.Inc()
	s.logger.Info("landing engine rebuilt",
		zap.Int64("version", version),
		zap.Int("templates", len(snap.Templates)),
		zap.Int("sections", len(snap.Sections)),
	)
	return engine, nil
}

func (s *LandingService) loadSnapshot(ctx context.Context, version int64) (landing.Snapshot, error) {
	if version != uncachedVersion {
		snap, ok, err := s.store.Load(ctx, version)
		if err != nil {
			s.logger.Warn("cached snapshot unreadable", zap.Int64("version", version), zap.Error(err))
		}
		if ok {
			return snap, nil
		}
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return landing.Snapshot{}, err
	}
	if version != uncachedVersion {
		if err := s.store.Save(ctx, version, snap); err != nil {
			s.logger.Warn("snapshot not cached", zap.Int64("version", version), zap.Error(err))
		}
	}
	return snap, nil
}

// Invalidate 推进快照版本并丢弃本地引擎。
func (s *LandingService) Invalidate(ctx context.Context, reason string) error {
	s.current.Store(nil)
	metrics.CacheInvalidations.WithLabelValues(reason).Inc()

	version, err := s.store.Invalidate(ctx)
	if err != nil {
		s.logger.Error("snapshot invalidation failed", zap.String("reason", reason), zap.Error(err))
		return fmt.Errorf("invalidate landing cache: %w", err)
	}
	s.logger.Debug("landing cache invalidated", zap.String("reason", reason), zap.Int64("version", version))
	return nil
}

// Resolve 为入站路径构建渲染数据。
func (s *LandingService) Resolve(ctx context.Context, rawPath string) (landing.ResolvedPage, error) {
	engine, err := s.Engine(ctx)
	if err != nil {
		return landing.ResolvedPage{}, err
	}

	start := time.Now()
	page, err := engine.Resolve(rawPath)
	metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	recordMatchOutcome(err)
	if err != nil {
		return landing.ResolvedPage{}, err
	}

	for _, w := range page.Warnings {
		metrics.ResolverWarnings.WithLabelValues(string(w.Kind)).Inc()
	}
	return page, nil
}

// Match 只执行路径匹配，供后台预览使用。
func (s *LandingService) Match(ctx context.Context, rawPath string) (landing.Match, error) {
	engine, err := s.Engine(ctx)
	if err != nil {
		return landing.Match{}, err
	}
	m, err := engine.MatchPath(landing.NormalizePath(rawPath))
	recordMatchOutcome(err)
	return m, err
}

// EnumerateURLs 枚举全部有效 URL。
func (s *LandingService) EnumerateURLs(ctx context.Context) ([]landing.URLEntry, error) {
	engine, err := s.Engine(ctx)
	if err != nil {
		return nil, err
	}
	entries := engine.EnumerateURLs()
	metrics.EnumeratedURLs.Set(float64(len(entries)))
	return entries, nil
}

func recordMatchOutcome(err error) {
	switch {
	case err == nil:
		metrics.MatchOutcomes.WithLabelValues(metrics.OutcomeMatched).Inc()
	case errors.Is(err, landing.ErrAmbiguousMatch):
		metrics.MatchOutcomes.WithLabelValues(metrics.OutcomeAmbiguous).Inc()
	case errors.Is(err, landing.ErrNoMatch):
		metrics.MatchOutcomes.WithLabelValues(metrics.OutcomeNoMatch).Inc()
	}
}
