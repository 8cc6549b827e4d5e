package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/yahya12213/SiteManagement-sub010/internal/handler/http/middleware"
	"github.com/yahya12213/SiteManagement-sub010/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	requestHandler RequestHandler,
	scheduleHandler ScheduleHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-core"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/day-status", attendanceHandler.DayStatus)
				r.Get("/", attendanceHandler.List)
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/leave", requestHandler.CreateLeave)
				r.Post("/overtime", requestHandler.CreateOvertime)
				r.Post("/correction", requestHandler.CreateCorrection)

				r.Route("/{kind}/{id}", func(r chi.Router) {
					r.Post("/approve", requestHandler.Approve)
					r.Post("/reject", requestHandler.Reject)
					r.Post("/cancel", requestHandler.Cancel)
					r.Get("/history", requestHandler.History)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", requestHandler.ListLeaveTypes)
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/approval-chain", requestHandler.Chain)
				r.Get("/leave-balance", requestHandler.GetLeaveBalance)
				r.Get("/schedule", scheduleHandler.ResolveDay)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.List)
				r.Get("/{id}", scheduleHandler.Get)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Put("/{id}/read", notificationHandler.MarkAsRead)
				r.Get("/stream", notificationHandler.Stream)
			})
		})
	})
	return r
}
