package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/middleware"
	"github.com/noah-isme/arts-admin-api/internal/models"
)

// AuditRecorder persists audit log entries.
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Auth      *AuthHandler
	Borrowing *BorrowingHandler
	Repairs   *RepairHandler
	Dashboard *DashboardHandler
	Students  *StudentHandler
	Events    *EventHandler
	Pages     *PageHandler
	Metrics   *MetricsHandler
}

// RouteConfig carries the cross-cutting pieces routes are wrapped in.
type RouteConfig struct {
	APIPrefix    string
	LoginPath    string
	Policy       *middleware.Policy
	Audit        AuditRecorder
	LoginLimiter *middleware.RateLimiter
	CSRF         gin.HandlerFunc
	Logger       *zap.Logger
}

// RegisterRoutes mounts the API under the prefix, the admin pages and the operational endpoints.
// Session resolution must already be installed on r.
func RegisterRoutes(r *gin.Engine, cfg RouteConfig, h Handlers) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(NoMethod)
	r.NoRoute(NoRoute)

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	csrf := cfg.CSRF
	if csrf == nil {
		csrf = func(c *gin.Context) { c.Next() }
	}
	authorize := func(endpoint string) gin.HandlerFunc {
		return cfg.Policy.Authorize(endpoint, middleware.StyleJSON)
	}
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(cfg.Audit, cfg.Logger, action, resource)
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(csrf)

	auth := api.Group("/auth")
	if cfg.LoginLimiter != nil {
		auth.POST("/login", cfg.LoginLimiter.Middleware(), h.Auth.Login)
	} else {
		auth.POST("/login", h.Auth.Login)
	}
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/session", h.Auth.Session)

	api.GET("/borrowing-requests", authorize("borrowing.list"), h.Borrowing.List)
	api.GET("/borrowing-requests/export", authorize("borrowing.export"), h.Borrowing.Export)
	api.GET("/repair-items", authorize("repairs.list"), h.Repairs.List)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/campus-distribution", authorize("distribution.campus"), h.Dashboard.CampusDistribution)
	dashboard.GET("/college-distribution", authorize("distribution.college"), h.Dashboard.CollegeDistribution)
	dashboard.GET("/cultural-group-distribution", authorize("distribution.groups"), h.Dashboard.CulturalGroupDistribution)

	students := api.Group("/students")
	students.POST("/profile", authorize("students.profile"), h.Students.Profile)
	students.POST("/cultural-group", authorize("students.cultural_group"), audit(models.AuditActionCulturalGroupUpdate, "student_artists"), h.Students.UpdateCulturalGroup)

	events := api.Group("/events")
	events.GET("", authorize("events.list"), h.Events.List)
	events.POST("", authorize("events.create"), audit(models.AuditActionEventCreate, "events"), h.Events.Create)
	events.POST("/delete", authorize("events.delete"), audit(models.AuditActionEventDelete, "events"), h.Events.Delete)
	events.GET("/image/:token", h.Events.Image)

	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	r.GET(loginPath, h.Pages.Login)
	pages := map[string]string{
		"/admin":           "pages.dashboard",
		"/admin/events":    "pages.events",
		"/admin/borrowing": "pages.borrowing",
		"/admin/repairs":   "pages.repairs",
		"/admin/students":  "pages.students",
	}
	for path, endpoint := range pages {
		r.GET(path, cfg.Policy.Authorize(endpoint, middleware.StyleRedirect), h.Pages.Shell)
	}
}
