// Package api wires the gin router and middleware.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonesrussell/goleads/internal/handlers"
	"github.com/jonesrussell/goleads/internal/logger"
)

const corsMaxAge = 12 * time.Hour

// Handlers groups the route handlers the router mounts.
type Handlers struct {
	Leads         *handlers.LeadHandler
	Sources       *handlers.SourceHandler
	Products      *handlers.ProductHandler
	Notifications *handlers.NotificationHandler
	Dashboard     *handlers.DashboardHandler
}

func NewRouter(h Handlers, corsOrigins []string, log logger.Logger) *gin.Engine {
	router := gin.New()

	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))
	router.Use(requestLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	leads := v1.Group("/leads")
	leads.GET("", h.Leads.List)
	leads.POST("", h.Leads.Create)
	leads.GET("/:id", h.Leads.GetByID)
	leads.PUT("/:id", h.Leads.Update)
	leads.DELETE("/:id", h.Leads.Delete)
	leads.POST("/:id/feedback", h.Leads.SubmitFeedback)
	leads.POST("/:id/contact", h.Leads.AddContactAttempt)

	sources := v1.Group("/sources")
	sources.POST("", h.Sources.Create)
	sources.GET("", h.Sources.List)
	sources.GET("/:id", h.Sources.GetByID)
	sources.PUT("/:id", h.Sources.Update)
	sources.DELETE("/:id", h.Sources.Delete)

	products := v1.Group("/products")
	products.GET("", h.Products.List)
	products.GET("/:code", h.Products.GetByCode)

	v1.POST("/notifications/test", h.Notifications.TestDispatch)

	dashboard := v1.Group("/dashboard")
	dashboard.GET("/stats", h.Dashboard.Stats)
	dashboard.GET("/activity", h.Dashboard.RecentActivity)

	return router
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
