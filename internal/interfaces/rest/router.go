package rest

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"

	"github.com/franchisepulse/backend/internal/application/services"
	"github.com/franchisepulse/backend/internal/interfaces/middleware"
)

// RegisterRoutes wires every API route onto the router.
func RegisterRoutes(router *gin.Engine, svcMgr *services.ServiceManager) {
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Debug/pprof endpoints for goroutine debugging
	// Access: http://localhost:3001/debug/pprof/
	debug := router.Group("/debug/pprof")
	{
		debug.GET("/", gin.WrapH(http.DefaultServeMux))
		debug.GET("/goroutine", gin.WrapH(http.DefaultServeMux))
		debug.GET("/heap", gin.WrapH(http.DefaultServeMux))
		debug.GET("/threadcreate", gin.WrapH(http.DefaultServeMux))
		debug.GET("/block", gin.WrapH(http.DefaultServeMux))
		debug.GET("/mutex", gin.WrapH(http.DefaultServeMux))
		debug.GET("/profile", gin.WrapH(http.DefaultServeMux))
		debug.GET("/trace", gin.WrapH(http.DefaultServeMux))
	}

	authHandler := NewAuthHandler()
	dashboardHandler := NewDashboardHandler(svcMgr.Analytics, svcMgr.Queue)
	catalogHandler := NewCatalogHandler(svcMgr.Analytics)
	analyticsHandler := NewAnalyticsHandler(svcMgr.Analytics)

	api := router.Group("/api")
	{
		// Public auth routes (no authentication required)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			dashboard := protected.Group("/dashboard")
			{
				dashboard.GET("/kpis", dashboardHandler.KPIs)
				dashboard.GET("/leaderboard", dashboardHandler.Leaderboard)
				dashboard.GET("/series", dashboardHandler.Series)
				dashboard.GET("/lifecycle", dashboardHandler.Lifecycle)
				dashboard.GET("/volatility", dashboardHandler.Volatility)
			}

			protected.GET("/catalog/shows", catalogHandler.Shows)
			protected.GET("/queue/depth", dashboardHandler.QueueDepth)

			// Admin-only raw analytics
			admin := protected.Group("/analytics")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/query", analyticsHandler.Query)
			}
		}
	}
}
