package http

import (
	"net/http"
	"time"

	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxUploadBytes caps CSV import bodies.
const maxUploadBytes = 16 << 20

type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	secureCookie bool
}

type Options func(*Server)

// WithSecureCookie marks the session cookie Secure. Enable it behind TLS.
func WithSecureCookie(enabled bool) Options {
	return func(s *Server) {
		s.secureCookie = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/reference", s.getReference)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.resetSession)
			r.Put("/user", s.selectUser)
			r.Put("/editing", s.setEditing)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Group(func(r chi.Router) {
				r.Use(s.adminMiddleware)
				r.Post("/", s.createUser)
				r.Put("/{id}", s.updateUser)
				r.Delete("/{id}", s.deleteUser)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Get("/next-code", s.nextProjectCode)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getProject)
				r.Put("/", s.updateProject)
				r.Delete("/", s.deleteProject)
				r.Get("/history", s.projectHistory)
				r.Post("/updates", s.postStatusUpdate)
				r.Get("/milestones", s.listMilestones)
				r.Post("/milestones", s.createMilestone)
				r.Get("/status-reports", s.listStatusReports)
				r.Post("/status-reports", s.publishStatusReport)
				r.Get("/status-reports/latest", s.latestStatusReport)
			})
		})

		r.Put("/milestones/{id}", s.updateMilestone)
		r.Delete("/milestones/{id}", s.deleteMilestone)

		r.Route("/incidents", func(r chi.Router) {
			r.Get("/", s.listIncidents)
			r.Post("/", s.createIncident)
			r.Post("/bulk-update", s.bulkUpdateIncidents)
			r.Post("/bulk-delete", s.bulkDeleteIncidents)
			r.Get("/{id}", s.getIncident)
			r.Put("/{id}", s.updateIncident)
			r.Delete("/{id}", s.deleteIncident)
		})

		r.Route("/time-logs", func(r chi.Router) {
			r.Get("/", s.listTimeLogs)
			r.Post("/", s.logTime)
			r.Get("/summary", s.timeLogSummary)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/incidents", s.incidentReport)
			r.Get("/time", s.timeReport)
			r.Get("/overview", s.overviewReport)
			r.Get("/briefing", s.briefingReport)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.adminLogin)
			r.Post("/logout", s.adminLogout)
			r.Group(func(r chi.Router) {
				r.Use(s.adminMiddleware)
				r.Post("/import/{entity}", s.importEntity)
				r.Get("/export/{entity}", s.exportEntity)
				r.Post("/export", s.exportAll)
				r.Get("/templates/{entity}", s.template)
			})
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.From(r.Context()).With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}
