package dashboard

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"logmon/internal/metrics"

	"github.com/gin-gonic/gin"
)

const defaultAlertLimit = 100

// Server represents the read-only status API
type Server struct {
	counters CounterSource
	history  AlertHistory // nil without a state store
	server   *http.Server
}

// NewServer creates a new status server listening on addr
func NewServer(counters CounterSource, history AlertHistory, addr string) *Server {
	s := &Server{
		counters: counters,
		history:  history,
	}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api/v1")
	api.GET("/stats", s.handleStats)
	api.GET("/alerts", s.handleAlerts)

	return r
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	log.Printf("[DASHBOARD] Starting on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleStats returns cumulative counters as JSON
func (s *Server) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, buildStats(s.counters))
}

// handleAlerts returns the most recent alerts as JSON
func (s *Server) handleAlerts(c *gin.Context) {
	limit := defaultAlertLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	if s.history == nil {
		c.JSON(http.StatusOK, []any{})
		return
	}

	alerts, err := s.history.RecentAlerts(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
