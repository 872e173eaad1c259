// Package api exposes the REST and websocket surface over the store
// and the pipeline runner.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"main/internal/model"
	"main/internal/notify"
	"main/internal/obs"
	"main/internal/store"
)

// Trigger starts a cycle on demand. It reports
// pipeline.ErrCycleRunning when one is already in flight.
type Trigger interface {
	TriggerNow(ctx context.Context) (model.CycleResult, error)
}

// Server bundles the HTTP handlers and their collaborators.
type Server struct {
	store      *store.Store
	runner     Trigger
	hub        *notify.Hub
	metrics    *obs.Metrics
	adminToken string
}

// NewServer creates an API server. An empty adminToken leaves the
// mutating routes open.
func NewServer(st *store.Store, runner Trigger, hub *notify.Hub, metrics *obs.Metrics, adminToken string) *Server {
	return &Server{
		store:      st,
		runner:     runner,
		hub:        hub,
		metrics:    metrics,
		adminToken: adminToken,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ws", s.handleWebsocket)

	api := r.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/metrics", s.handleMetrics)
		api.GET("/articles", s.handleListArticles)
		api.GET("/feeds", s.handleListFeeds)
		api.GET("/tickers", s.handleListTickers)
		api.GET("/keywords", s.handleListKeywords)
		api.GET("/settings", s.handleGetSettings)

		admin := api.Group("", s.requireAdmin())
		{
			admin.POST("/feeds", s.handleAddFeed)
			admin.DELETE("/feeds/:id", s.handleDeleteFeed)
			admin.PUT("/feeds/:id/toggle", s.handleToggleFeed)
			admin.POST("/tickers", s.handleAddTicker)
			admin.PUT("/tickers/:id", s.handleUpdateTicker)
			admin.DELETE("/tickers/:id", s.handleDeleteTicker)
			admin.POST("/keywords", s.handleAddKeyword)
			admin.DELETE("/keywords/:id", s.handleDeleteKeyword)
			admin.PUT("/settings", s.handleUpdateSettings)
			admin.POST("/refresh", s.handleRefresh)
			admin.DELETE("/articles", s.handlePruneArticles)
		}
	}

	return r
}

// requireAdmin gates mutating routes behind the x-admin-token header
// when a token is configured.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.adminToken == "" {
			c.Next()
			return
		}
		token := c.GetHeader("x-admin-token")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin authentication required"})
			return
		}
		if token != s.adminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}
