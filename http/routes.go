package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all routes for the server.
// All routes are defined in this single file for easy navigation.
func (s *Server) registerRoutes() {
	// Health check routes
	s.echo.GET("/health", s.handleHealthCheck)
	s.echo.GET("/health/live", s.handleLivenessCheck)
	s.echo.GET("/health/ready", s.handleReadinessCheck)

	// Prometheus metrics
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api")

	// Inspection points
	api.GET("/points", s.handleListPoints)
	api.GET("/points/:id", s.handleGetPoint)
	api.POST("/points/:id/normal", s.handleMarkPointNormal)
	api.PUT("/points/:id/judgment", s.handleSetStructureJudgment)

	// Issues
	api.GET("/issues", s.handleListIssues)
	api.POST("/points/:id/issues", s.handleAddIssue)
	api.PUT("/points/:id/issues/:issueId", s.handleUpdateIssue)
	api.DELETE("/points/:id/issues/:issueId", s.handleRemoveIssue)

	// Guided flow
	api.GET("/flow", s.handleGetFlow)
	api.POST("/flow/start", s.handleFlowStart)
	api.POST("/flow/next", s.handleFlowNext)
	api.POST("/flow/prev", s.handleFlowPrev)
	api.POST("/flow/jump", s.handleFlowJump)
	api.POST("/flow/complete", s.handleFlowCompleteStep)
	api.POST("/flow/reset", s.handleFlowReset)

	// Vehicle
	api.GET("/vehicle", s.handleGetVehicleInfo)
	api.PUT("/vehicle", s.handleUpdateVehicleInfo)

	// Summary and reports
	api.GET("/summary", s.handleGetSummary)
	api.GET("/report", s.handleGetReport)
	api.POST("/report/send", s.handleSendReport)

	// Snapshots
	api.GET("/snapshots", s.handleListSnapshots)
	api.POST("/snapshots", s.handleSaveSnapshot)
	api.GET("/snapshots/latest", s.handleLoadLatestSnapshot)
	api.GET("/snapshots/:key", s.handleGetSnapshot)
	api.POST("/snapshots/:key/restore", s.handleRestoreSnapshot)
	api.GET("/export", s.handleExport)
	api.POST("/import", s.handleImport)

	// Reset
	api.POST("/reset", s.handleReset)
}
