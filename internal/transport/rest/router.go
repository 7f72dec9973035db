package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/worklink/worklink-backend/internal/admin"
	"github.com/worklink/worklink-backend/internal/application"
	"github.com/worklink/worklink-backend/internal/auth"
	"github.com/worklink/worklink-backend/internal/job"
	"github.com/worklink/worklink-backend/internal/principal"
	"github.com/worklink/worklink-backend/internal/transport/middleware"
	"github.com/worklink/worklink-backend/internal/transport/swagger"
	"github.com/worklink/worklink-backend/internal/worksession"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Principal   *principal.Handler
	Job         *job.Handler
	Application *application.Handler
	WorkSession *worksession.Handler
	Admin       *admin.Handler
}

// RegisterAllRoutes wires the full API under /api/v1. Route groups are
// guarded by the kind middleware matching the principal type they serve;
// catalog reads stay public.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, kinds *auth.KindAuthorization, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec and Swagger UI live at root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/register/user", h.Auth.RegisterUser)
			sr.Post("/register/employer", h.Auth.RegisterEmployer)
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
		})

		r.Route("/jobs", func(jr chi.Router) {
			// Public catalog reads
			jr.Get("/", h.Job.ListJobs)
			jr.Get("/search", h.Job.SearchJobs)
			jr.Get("/categories/list", h.Job.ListCategories)
			jr.Get("/districts/list", h.Job.ListDistricts)

			// Employer-owned job management
			jr.Group(func(er chi.Router) {
				er.Use(kinds.RequireEmployer())
				er.Post("/", h.Job.CreateJob)
				er.Get("/employer/my-jobs", h.Job.MyJobs)
				er.Patch("/{jobID}", h.Job.UpdateJob)
				er.Delete("/{jobID}", h.Job.CloseJob)
			})

			jr.Get("/{jobID}", h.Job.GetJob)
		})

		r.Route("/applications", func(ar chi.Router) {
			ar.Group(func(ur chi.Router) {
				ur.Use(kinds.RequireUser())
				ur.Post("/", h.Application.Apply)
				ur.Get("/my-applications", h.Application.MyApplications)
				ur.Delete("/{applicationID}", h.Application.Withdraw)
			})

			ar.Group(func(er chi.Router) {
				er.Use(kinds.RequireEmployer())
				er.Get("/job/{jobID}", h.Application.JobApplications)
				er.Patch("/{applicationID}/status", h.Application.UpdateStatus)
			})
		})

		r.Route("/work-sessions", func(wr chi.Router) {
			wr.Group(func(ur chi.Router) {
				ur.Use(kinds.RequireUser())
				ur.Post("/", h.WorkSession.CreateSession)
				ur.Post("/{sessionID}/request-start", h.WorkSession.RequestStart)
				ur.Post("/{sessionID}/request-end", h.WorkSession.RequestEnd)
				ur.Get("/my-sessions", h.WorkSession.MySessions)
				ur.Get("/summary", h.WorkSession.MySummary)
			})

			wr.Group(func(er chi.Router) {
				er.Use(kinds.RequireEmployer())
				er.Post("/{sessionID}/approve-start", h.WorkSession.ApproveStart)
				er.Post("/{sessionID}/approve-end", h.WorkSession.ApproveEnd)
				er.Get("/employer/sessions", h.WorkSession.EmployerSessions)
				er.Get("/employer/summary", h.WorkSession.EmployerSummary)
			})
		})

		r.Group(func(ur chi.Router) {
			ur.Use(kinds.RequireUser())
			ur.Get("/users/me", h.Principal.GetCurrentUser)
			ur.Patch("/users/me", h.Principal.UpdateCurrentUser)
		})

		r.Group(func(er chi.Router) {
			er.Use(kinds.RequireEmployer())
			er.Get("/employers/me", h.Principal.GetCurrentEmployer)
			er.Patch("/employers/me", h.Principal.UpdateCurrentEmployer)
		})

		r.Route("/admin", func(ar chi.Router) {
			ar.Use(kinds.RequireAdmin())
			ar.Get("/stats", h.Admin.Stats)
			ar.Get("/users", h.Admin.ListUsers)
			ar.Get("/employers", h.Admin.ListEmployers)
			ar.Get("/jobs", h.Admin.ListJobs)
			ar.Get("/applications", h.Admin.ListApplications)
			ar.Delete("/users/{userID}", h.Admin.DeleteUser)
			ar.Delete("/employers/{employerID}", h.Admin.DeleteEmployer)
			ar.Delete("/jobs/{jobID}", h.Admin.DeleteJob)
			ar.Patch("/jobs/{jobID}/status", h.Admin.UpdateJobStatus)
		})
	})
}
