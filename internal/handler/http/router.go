package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attachment"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/auth"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/employee"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/leave"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/domain/salary"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Form       FormHandler
	Approval   ApprovalHandler
	Attachment AttachmentHandler
	Salary     SalaryHandler
	Employee   EmployeeHandler
	Callback   CallbackHandler
}

func NewRouter(
	cfg *config.Config,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	verifier auth.TokenVerifier,
	limiter middleware.RateLimiter,
	h Handlers,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-selfservice"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.Metrics(m))

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if cfg.Storage.Type == "local" {
		fs := http.StripPrefix("/uploads", http.FileServer(http.Dir(cfg.Storage.BasePath)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(limiter, "auth", authRateLimit, authRateWindow))
				r.Post("/code", h.Auth.SendCode)
				r.Post("/verify", h.Auth.VerifyCode)
			})
			r.With(middleware.Bind[auth.LogoutRequest](verifier)).Post("/logout", h.Auth.Logout)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.With(middleware.Bind[attendance.DailyRecordRequest](verifier)).Post("/daily", h.Attendance.Daily)
			r.With(middleware.Bind[attendance.MonthlyRecordsRequest](verifier)).Post("/monthly", h.Attendance.Monthly)
			r.With(middleware.Bind[attendance.MonthlyRecordsRequest](verifier)).Post("/export", h.Attendance.Export)
		})

		r.Route("/leave", func(r chi.Router) {
			r.With(middleware.Bind[leave.BalancesRequest](verifier)).Post("/balances", h.Leave.Balances)
			r.With(middleware.Bind[leave.BalancesRequest](verifier)).Post("/balances/detail", h.Leave.BalanceDetail)
			r.With(middleware.Bind[leave.LeaveTypesRequest](verifier)).Post("/types", h.Leave.Types)
		})

		r.Route("/forms", func(r chi.Router) {
			r.With(middleware.Bind[form.LeaveFormRequest](verifier)).Post("/leave", h.Form.SubmitLeave)
			r.With(middleware.Bind[form.OvertimeFormRequest](verifier)).Post("/overtime", h.Form.SubmitOvertime)
			r.With(middleware.Bind[form.BusinessTripFormRequest](verifier)).Post("/business-trip", h.Form.SubmitBusinessTrip)
			r.With(middleware.Bind[form.ListFormsRequest](verifier)).Post("/list", h.Form.List)
			r.With(middleware.Bind[form.FormIDRequest](verifier)).Post("/detail", h.Form.Detail)
			r.With(middleware.Bind[form.WithdrawRequest](verifier)).Post("/withdraw", h.Form.Withdraw)
		})

		r.Route("/approvals", func(r chi.Router) {
			r.With(middleware.Bind[form.PendingTasksRequest](verifier)).Post("/pending", h.Approval.Pending)
			r.With(middleware.Bind[form.TaskActionRequest](verifier)).Post("/approve", h.Approval.Approve)
			r.With(middleware.Bind[form.TaskActionRequest](verifier)).Post("/reject", h.Approval.Reject)
		})

		r.With(middleware.Bind[attachment.UploadRequest](verifier)).Post("/attachments", h.Attachment.Upload)

		r.Route("/salary", func(r chi.Router) {
			r.With(middleware.Bind[salary.PeriodsRequest](verifier)).Post("/periods", h.Salary.Periods)
			r.With(middleware.Bind[salary.SlipRequest](verifier)).Post("/slip", h.Salary.Slip)
		})

		r.With(middleware.Bind[employee.BusinessCardRequest](verifier)).Post("/employees/card", h.Employee.BusinessCard)

		// Server-to-server, authenticated by the callback token or signature
		r.Post("/bpm/callback", h.Callback.BPMStatus)
	})
	return r
}
