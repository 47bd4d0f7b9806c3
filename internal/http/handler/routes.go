package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sitrack/internal/http/middleware"
	"sitrack/internal/model"
	"sitrack/internal/service"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	DB          *sql.DB
	Tokens      middleware.TokenParser
	Auth        service.AuthService
	Users       service.UserService
	Reports     service.ReportService
	Workflow    service.WorkflowService
	Attachments service.AttachmentService
	Tracking    service.TrackingService
	Events      EventSource
	// Gatherer backs /metrics; nil leaves the endpoint out.
	Gatherer prometheus.Gatherer
	// KeepAlive is the comment interval of the event stream.
	KeepAlive time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")

	// Public
	api.Post("/auth/login", Login(d.Auth))
	api.Get("/track", Track(d.Tracking))

	// Everything below requires a bearer token.
	authed := api.Group("", middleware.Auth(d.Tokens), middleware.NoStore())

	adminOnly := middleware.RequireRole(model.RoleAdmin)
	registrars := middleware.RequireRole(model.RoleAdmin, model.RoleTU)
	coordinators := middleware.RequireRole(model.RoleAdmin, model.RoleKoordinator)

	authed.Get("/auth/me", Me(d.Auth))
	authed.Get("/events", Events(d.Events, d.KeepAlive))

	authed.Get("/users/staff", coordinators, ListStaff(d.Users))
	authed.Get("/users", adminOnly, ListUsers(d.Users))
	authed.Post("/users", adminOnly, CreateUser(d.Users))
	authed.Put("/users/:id", adminOnly, UpdateUser(d.Users))
	authed.Delete("/users/:id", adminOnly, DeleteUser(d.Users))

	authed.Get("/reports", ListReports(d.Reports))
	authed.Get("/reports/stats", ReportStats(d.Reports))
	authed.Post("/reports", registrars, CreateReport(d.Reports))
	authed.Get("/reports/:id", GetReport(d.Reports))
	authed.Put("/reports/:id", registrars, UpdateReport(d.Reports))
	authed.Delete("/reports/:id", registrars, DeleteReport(d.Reports))

	authed.Post("/reports/:id/forward", registrars, ForwardReport(d.Workflow))
	authed.Post("/reports/:id/assignments", coordinators, AssignStaff(d.Workflow))
	authed.Post("/reports/:id/forward-to-tu", coordinators, ForwardToTU(d.Workflow))
	authed.Post("/reports/:id/return", registrars, ReturnToCoordinator(d.Workflow))
	authed.Post("/reports/:id/finalize", registrars, FinalizeReport(d.Workflow))
	authed.Get("/tasks", MyTasks(d.Workflow))
	authed.Post("/assignments/:id/submit", SubmitAssignment(d.Workflow))
	authed.Post("/assignments/:id/revision", coordinators, RequestRevision(d.Workflow))

	authed.Get("/reports/:id/attachments", ListAttachments(d.Attachments))
	authed.Post("/reports/:id/attachments", registrars, UploadAttachment(d.Attachments))
	authed.Get("/attachments/:id", DownloadAttachment(d.Attachments))
	authed.Get("/attachments/:id/content", AttachmentContent(d.Attachments))
	authed.Delete("/attachments/:id", registrars, DeleteAttachment(d.Attachments))
}
