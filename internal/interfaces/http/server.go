// Package http provides the HTTP adapter for the application layer.
// This is a thin layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/planora/eventops/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles the application services the HTTP layer exposes
type Services struct {
	Events    service.EventService
	Tasks     service.TaskService
	Budget    service.BudgetService
	Approvals service.ApprovalService
	Reports   service.ReportService
	Directory service.DirectoryService
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	logger     Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	server := &Server{
		config:   config,
		router:   router,
		services: services,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", status,
			"latency", latency.String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.services, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	api := s.router.Group("/api")
	{
		// Events
		api.POST("/events", handlers.CreateEvent)
		api.GET("/events", handlers.ListEvents)
		api.GET("/events/:id", handlers.GetEvent)
		api.PUT("/events/:id", handlers.UpdateEvent)
		api.PATCH("/events/:id/status", handlers.UpdateEventStatus)
		api.DELETE("/events/:id", handlers.DeleteEvent)

		// Tasks
		api.POST("/events/:id/tasks", handlers.CreateTask)
		api.GET("/events/:id/tasks", handlers.ListTasks)
		api.GET("/events/:id/tasks/progress", handlers.TaskProgress)
		api.PATCH("/tasks/:id/status", handlers.UpdateTaskStatus)

		// Budget
		api.POST("/events/:id/budget", handlers.AddBudgetItem)
		api.GET("/events/:id/budget", handlers.ListBudgetItems)
		api.GET("/events/:id/budget/summary", handlers.EventBudgetSummary)
		api.POST("/events/:id/budget/export", handlers.ExportEventBudget)
		api.PATCH("/budget-items/:id/approved", handlers.SetBudgetItemApproved)

		// Approvals
		api.POST("/events/:id/budget-review", handlers.RequestBudgetReview)
		api.GET("/events/:id/approvals", handlers.ListEventApprovals)
		api.GET("/approvals", handlers.ListApprovals)
		api.GET("/approvals/history", handlers.ApprovalHistory)
		api.GET("/approvals/:id", handlers.GetApproval)
		api.POST("/approvals/:id/decision", handlers.DecideApproval)

		// Reports
		api.GET("/reports/status-counts", handlers.StatusCounts)
		api.GET("/reports/budget", handlers.OverallBudget)

		// Directory
		api.POST("/profiles", handlers.CreateProfile)
		api.GET("/profiles", handlers.ListProfiles)
		api.GET("/profiles/:id", handlers.GetProfile)
		api.POST("/teams", handlers.CreateTeam)
		api.GET("/teams", handlers.ListTeams)
		api.POST("/teams/:id/members", handlers.AddTeamMember)
		api.GET("/teams/:id/members", handlers.ListTeamMembers)
		api.POST("/departments", handlers.CreateDepartment)
		api.GET("/departments", handlers.ListDepartments)
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
