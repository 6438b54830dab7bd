package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/comment-analytics/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg                 *config.Config
	analysisController  *AnalysisController
	dashboardController *DashboardController
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, analysisController *AnalysisController, dashboardController *DashboardController) *Router {
	return &Router{
		cfg:                 cfg,
		analysisController:  analysisController,
		dashboardController: dashboardController,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	rt.setupAnalysisRoutes(v1)
	rt.setupDashboardRoutes(v1)
}

// setupAnalysisRoutes configures analysis and job routes
func (rt *Router) setupAnalysisRoutes(g *echo.Group) {
	videos := g.Group("/videos")
	jobs := g.Group("/jobs")

	if rt.analysisController == nil {
		videos.POST("/:id/analyze", rt.notImplemented)
		videos.GET("/:id/analysis", rt.notImplemented)
		jobs.GET("/:id", rt.notImplemented)
		return
	}

	videos.POST("/:id/analyze", rt.analysisController.Analyze)
	videos.GET("/:id/analysis", rt.analysisController.GetAnalysis)
	videos.GET("/:id/snapshots", rt.analysisController.ListSnapshots)
	jobs.GET("/:id", rt.analysisController.GetJob)
}

// setupDashboardRoutes configures the dashboard route
func (rt *Router) setupDashboardRoutes(g *echo.Group) {
	if rt.dashboardController == nil {
		g.GET("/dashboard", rt.notImplemented)
		return
	}
	g.GET("/dashboard", rt.dashboardController.Summary)
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not yet implemented",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": env,
	})
}
