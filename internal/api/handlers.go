package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"main/internal/pipeline"
	"main/internal/store"
)

type feedRequest struct {
	URL  string `json:"url" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type tickerRequest struct {
	Symbol       string `json:"symbol" binding:"required,max=10"`
	CompanyNames string `json:"company_names" binding:"max=500"`
}

type keywordRequest struct {
	Word string `json:"word" binding:"required,max=50"`
}

type settingsRequest struct {
	RefreshInterval *int    `json:"refresh_interval" binding:"omitempty,gte=10"`
	MinScore        *int    `json:"min_score" binding:"omitempty,gte=0"`
	StrongWords     *string `json:"strong_words" binding:"omitempty,max=500"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handleListArticles(c *gin.Context) {
	query := store.ArticleQuery{Search: c.Query("q")}
	if raw := c.Query("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil || minScore < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_score"})
			return
		}
		query.MinScore = &minScore
	}
	query.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	query.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	articles, err := s.store.Articles(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := s.store.CountArticles(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"total":    total,
		"limit":    query.Limit,
		"offset":   query.Offset,
	})
}

func (s *Server) handleListFeeds(c *gin.Context) {
	feeds, err := s.store.Feeds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"feeds": feeds})
}

func (s *Server) handleAddFeed(c *gin.Context) {
	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	feed, err := s.store.AddFeed(c.Request.Context(), req.URL, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": feed.ID, "message": "feed added"})
}

func (s *Server) handleDeleteFeed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteFeed(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feed deleted"})
}

func (s *Server) handleToggleFeed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	active, err := strconv.ParseBool(c.Query("active"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid active flag"})
		return
	}
	if err := s.store.ToggleFeed(c.Request.Context(), id, active); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feed updated"})
}

func (s *Server) handleListTickers(c *gin.Context) {
	tickers, err := s.store.Tickers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickers": tickers})
}

func (s *Server) handleAddTicker(c *gin.Context) {
	var req tickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ticker, err := s.store.AddTicker(c.Request.Context(), req.Symbol, req.CompanyNames)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ticker.ID, "message": "ticker added"})
}

func (s *Server) handleUpdateTicker(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	companyNames := c.Query("company_names")
	if len(companyNames) > 500 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_names too long"})
		return
	}
	if err := s.store.UpdateTickerAliases(c.Request.Context(), id, companyNames); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticker updated"})
}

func (s *Server) handleDeleteTicker(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteTicker(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticker deleted"})
}

func (s *Server) handleListKeywords(c *gin.Context) {
	keywords, err := s.store.Keywords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"keywords": keywords})
}

func (s *Server) handleAddKeyword(c *gin.Context) {
	var req keywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	keyword, err := s.store.AddKeyword(c.Request.Context(), req.Word)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": keyword.ID, "message": "keyword added"})
}

func (s *Server) handleDeleteKeyword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteKeyword(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "keyword deleted"})
}

func (s *Server) handleGetSettings(c *gin.Context) {
	settings, err := s.store.LoadSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update := store.SettingsUpdate{
		RefreshInterval: req.RefreshInterval,
		MinScore:        req.MinScore,
		StrongWords:     req.StrongWords,
	}
	if err := s.store.UpdateSettings(c.Request.Context(), update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}

// handleRefresh triggers a cycle on demand. A cycle already in flight
// yields 409 rather than a queued run. The cycle is detached from the
// request context so a client disconnect cannot abort it mid-insert.
func (s *Server) handleRefresh(c *gin.Context) {
	result, err := s.runner.TriggerNow(context.WithoutCancel(c.Request.Context()))
	if errors.Is(err, pipeline.ErrCycleRunning) {
		c.JSON(http.StatusConflict, gin.H{"message": "cycle already running", "skipped": true})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh completed", "inserted": result.ItemsInserted})
}

func (s *Server) handlePruneArticles(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
		return
	}
	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := s.store.PruneArticles(c.Request.Context(), cutoff)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "articles pruned", "deleted": deleted})
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
