package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/studio-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	// FileDir is served under /files for printed payslips
	FileDir string
}

func NewRouter(JWTService jwt.Service, payrollHandler PayrollHandler, salaryStructureHandler SalaryStructureHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "studio-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		if opts.FileDir != "" {
			r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.FileDir))))
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Route("/payroll", func(r chi.Router) {
				r.Post("/generate", payrollHandler.GeneratePayroll)
				r.Get("/summary", payrollHandler.GetPayrollSummary)

				r.Route("/payslips", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPayslips)
					r.Post("/pay", payrollHandler.MarkPaid)
					r.Post("/cancel", payrollHandler.CancelPayslips)
					r.Get("/{id}", payrollHandler.GetPayslip)
					r.Get("/{id}/print", payrollHandler.PrintPayslip)
				})
			})

			r.Route("/employees/{employeeId}/salary-structure", func(r chi.Router) {
				r.Get("/", salaryStructureHandler.Get)
				r.Put("/", salaryStructureHandler.Save)
			})
			r.Post("/salary-structures/estimate", salaryStructureHandler.Estimate)
		})
	})
	return r
}
