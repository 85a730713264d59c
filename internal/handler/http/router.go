package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/haken-hr/kyuyo-backend-go/internal/config"
	"github.com/haken-hr/kyuyo-backend-go/internal/handler/http/middleware"
	"github.com/haken-hr/kyuyo-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	workplaceHandler WorkplaceHandler,
	attendanceHandler AttendanceHandler,
	payrollHandler PayrollHandler,
	yukyuHandler YukyuHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kyuyo-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/workplaces/{workplaceID}", func(r chi.Router) {
				r.Use(middleware.WorkplaceScoped)

				r.Route("/configs", func(r chi.Router) {
					r.Get("/", workplaceHandler.ListConfigVersions)
					r.Get("/effective", workplaceHandler.GetEffectiveConfig)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRole("admin"))
						r.Post("/", workplaceHandler.CreateConfigVersion)
						r.Post("/defaults", workplaceHandler.CreateDefaultConfig)
					})
				})

				r.Route("/payroll-runs", func(r chi.Router) {
					r.Get("/", payrollHandler.ListRuns)
					r.Post("/", payrollHandler.CreateRun)
				})
			})

			r.Route("/payroll-runs/{runID}", func(r chi.Router) {
				r.Get("/", payrollHandler.GetRun)
				r.Post("/recompute", payrollHandler.RecomputeRun)
				r.Post("/approve", payrollHandler.ApproveRun)
				r.Post("/pay", payrollHandler.MarkRunPaid)
				r.Post("/cancel", payrollHandler.CancelRun)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/", attendanceHandler.Submit)
				r.Get("/{recordID}", attendanceHandler.Get)
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/attendance", attendanceHandler.ListForPeriod)

				r.Route("/yukyu", func(r chi.Router) {
					r.Get("/balance", yukyuHandler.Balance)
					r.Get("/grants", yukyuHandler.ListGrants)
					r.Get("/consumptions", yukyuHandler.ListConsumptions)
					r.Post("/consumptions", yukyuHandler.Consume)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRole("admin"))
						r.Post("/grants", yukyuHandler.Grant)
					})
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin"))
				r.Post("/yukyu/consumptions/{consumptionID}/reverse", yukyuHandler.Reverse)
			})
		})
	})
	return r
}
