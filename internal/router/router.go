package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/handler"
	"github.com/landingpages/internal/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, sessionSecret string, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(logger.Middleware(log), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{Path: "/admin", HttpOnly: true, MaxAge: 12 * 60 * 60})
	r.Use(sessions.Sessions("landing_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/sitemap.xml", api.Sitemap)

	// 后台管理 API
	admin := r.Group("/admin/api")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/templates", api.ListTemplates)
			auth.GET("/templates/:id", api.GetTemplate)
			auth.POST("/templates", api.CreateTemplate)
			auth.PUT("/templates/:id", api.UpdateTemplate)
			auth.DELETE("/templates/:id", api.DeleteTemplate)

			auth.GET("/sections", api.ListSections)
			auth.POST("/sections", api.CreateSection)
			auth.PUT("/sections/:id", api.UpdateSection)
			auth.DELETE("/sections/:id", api.DeleteSection)

			auth.GET("/care-types", api.ListCareTypes)
			auth.POST("/care-types", api.CreateCareType)
			auth.PUT("/care-types/:id", api.UpdateCareType)
			auth.DELETE("/care-types/:id", api.DeleteCareType)

			auth.GET("/communities", api.ListCommunities)
			auth.POST("/communities", api.CreateCommunity)
			auth.PUT("/communities/:id", api.UpdateCommunity)
			auth.DELETE("/communities/:id", api.DeleteCommunity)

			auth.GET("/urls", api.ListURLs)
			auth.GET("/urls/export", api.ExportURLs)
			auth.GET("/match", api.PreviewMatch)
			auth.POST("/cache/invalidate", api.InvalidateCache)
		}
	}

	// 其余路径全部交给落地页引擎
	r.NoRoute(api.ServeLanding)

	return r
}
