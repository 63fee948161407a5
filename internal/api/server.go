// Package api exposes the matcher over HTTP.
//
// Routes:
//
//	GET  /health                  liveness probe
//	POST /api/match/attachment    best attachment for a transaction
//	POST /api/match/transaction   best transaction for an attachment
//	GET  /api/runs                recent match runs
//	GET  /api/runs/:runId         decisions recorded for a run
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/attachmatch/attachment-match-backend/internal/api/dto"
	"github.com/attachmatch/attachment-match-backend/internal/domain/matcher"
	"github.com/attachmatch/attachment-match-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server. The repository is optional; without it the
// run-history endpoints respond 503 and matching still works.
type Server struct {
	config  Config
	router  *gin.Engine
	logger  *slog.Logger
	matcher *matcher.Matcher
	repo    storage.Repository
}

// NewServer creates a new API server.
func NewServer(cfg Config, m *matcher.Matcher, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s := &Server{
		config:  cfg,
		router:  router,
		logger:  logger,
		matcher: m,
		repo:    repo,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/match/attachment", s.matchAttachment)
		api.POST("/match/transaction", s.matchTransaction)
		api.GET("/runs", s.listRuns)
		api.GET("/runs/:runId", s.getRunDecisions)
	}
}

// Router returns the underlying handler, used by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the server and blocks.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.Info("Starting API server", "addr", addr)
	return s.router.Run(addr)
}

func (s *Server) matchAttachment(c *gin.Context) {
	var req dto.MatchAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	attachments := make([]*matcher.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, a.ToRecord())
	}

	result := s.matcher.BestAttachmentFor(req.Transaction.ToRecord(), attachments)
	c.JSON(http.StatusOK, dto.NewMatchResponse(result))
}

func (s *Server) matchTransaction(c *gin.Context) {
	var req dto.MatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	transactions := make([]*matcher.Transaction, 0, len(req.Transactions))
	for _, t := range req.Transactions {
		transactions = append(transactions, t.ToRecord())
	}

	result := s.matcher.BestTransactionFor(req.Attachment.ToRecord(), transactions)
	c.JSON(http.StatusOK, dto.NewMatchResponse(result))
}

func (s *Server) listRuns(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	runs, err := s.repo.ListRuns(limit)
	if err != nil {
		s.logger.Error("Failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}
	if runs == nil {
		runs = []*storage.MatchRun{}
	}
	c.JSON(http.StatusOK, runs)
}

func (s *Server) getRunDecisions(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history not configured"})
		return
	}

	runID := c.Param("runId")
	run, err := s.repo.GetRun(runID)
	if err != nil {
		s.logger.Error("Failed to get run", "run_id", runID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get run"})
		return
	}
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	decisions, err := s.repo.ListDecisions(runID)
	if err != nil {
		s.logger.Error("Failed to list decisions", "run_id", runID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list decisions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run": run, "decisions": decisions})
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
