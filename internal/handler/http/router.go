package http

import (
	"log/slog"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// AuthEnabled guards every /api/v1 route with a bearer token.
	AuthEnabled bool
}

type Handlers struct {
	Auth     AuthHandler
	Employee EmployeeHandler
	Event    EventHandler
	Schedule ScheduleHandler
	Report   ReportHandler
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	requireBearer := func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired)
		}
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			requireBearer(r)

			if cfg.AuthEnabled {
				r.Post("/auth/stream-token", h.Auth.IssueStreamToken)
			}

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.GetEmployee)
					r.Put("/", h.Employee.UpdateEmployee)
					r.Delete("/", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/", h.Event.ListEvents)
				r.Post("/", h.Event.CreateEvent)
				r.Post("/validate", h.Event.ValidateShift)
				r.Post("/series", h.Event.CreateSeries)
				r.Delete("/series/{seriesID}", h.Event.DeleteSeries)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Event.GetEvent)
					r.Put("/", h.Event.UpdateEvent)
					r.Delete("/", h.Event.DeleteEvent)
				})
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Post("/generate", h.Schedule.Generate)
				r.Post("/generate-current", h.Schedule.GenerateCurrent)
				r.Post("/generate-next", h.Schedule.GenerateNext)
				r.Delete("/auto-generated", h.Schedule.DeleteGenerated)
				r.Get("/statistics", h.Schedule.Statistics)
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.Get("/", h.Event.ListLeaveTypes)
				r.Post("/classify", h.Event.ClassifyLeave)
			})
		})

		r.Route("/weekly-schedule/{employeeID}", func(r chi.Router) {
			// EventSource clients cannot send headers, so the stream takes a
			// query token instead.
			r.Group(func(r chi.Router) {
				if cfg.AuthEnabled {
					r.Use(middleware.StreamTokenRequired(jwtService))
				}
				r.Get("/stream", h.Report.Stream)
			})

			r.Group(func(r chi.Router) {
				requireBearer(r)
				r.Get("/", h.Report.MonthlyReport)
				r.Get("/weeks", h.Report.WeeklySchedule)
				r.Get("/daily-hours", h.Report.DailyHours)
				r.Get("/daily-hours/period", h.Report.DailyHoursForPeriod)
				r.Post("/recalculate", h.Report.Recalculate)
				r.Get("/stats", h.Report.Stats)
				r.Get("/export", h.Report.Export)
			})
		})
	})

	return r
}
