package handler

import (
	"github.com/landingpages/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	catalog     *service.CatalogService
	templates   *service.TemplateService
	sections    *service.SectionService
	landing     *service.LandingService
	logger      *zap.Logger
	siteBaseURL string
}

// NewAPI constructs a handler set with shared services. Every admin service
// invalidates the landing cache after it writes.
func NewAPI(db *gorm.DB, landing *service.LandingService, logger *zap.Logger, siteBaseURL string) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		db:          db,
		catalog:     service.NewCatalogService(db, landing),
		templates:   service.NewTemplateService(db, landing),
		sections:    service.NewSectionService(db, landing),
		landing:     landing,
		logger:      logger,
		siteBaseURL: siteBaseURL,
	}
}
