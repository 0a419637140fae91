package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-selfservice-api/internal/handler/http"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/bpm"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/email"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hris-selfservice-api/internal/repository/redis"
	attachmentService "github.com/cmlabs-hris/hris-selfservice-api/internal/service/attachment"
	attendanceService "github.com/cmlabs-hris/hris-selfservice-api/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hris-selfservice-api/internal/service/auth"
	employeeService "github.com/cmlabs-hris/hris-selfservice-api/internal/service/employee"
	formService "github.com/cmlabs-hris/hris-selfservice-api/internal/service/form"
	"github.com/cmlabs-hris/hris-selfservice-api/internal/service/leave"
	salaryService "github.com/cmlabs-hris/hris-selfservice-api/internal/service/salary"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Hours and amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	redisClient, err := redisRepo.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Error connecting to redis: ", err)
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveLedgerRepo := postgresql.NewLeaveLedgerRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)
	formRepo := postgresql.NewFormRepository(db)
	codeStore := redisRepo.NewVerificationCodeStore(redisClient)
	revocationStore := redisRepo.NewTokenRevocationStore(redisClient)
	rateLimiter := redisRepo.NewRateLimiter(redisClient)

	JWTService, err := jwt.NewJWTService(cfg.Token.Secret, cfg.Token.Expiration)
	if err != nil {
		log.Fatal("Failed to initialize token service: ", err)
	}
	fileStorage, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}
	bpmClient := bpm.NewClient(cfg.BPM, appMetrics)

	authService := serviceAuth.NewAuthService(employeeRepo, JWTService, codeStore, revocationStore, emailService, appMetrics)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo)
	leaveService := leave.NewLeaveService(leaveTypeRepo, leaveLedgerRepo, employeeRepo)
	formSvc := formService.NewFormService(formRepo, employeeRepo, postgresql.NewTransactor(db), leaveService, bpmClient)
	approvalSvc := formService.NewApprovalService(employeeRepo, bpmClient)
	attachmentSvc := attachmentService.NewAttachmentService(fileStorage, appMetrics)
	salarySvc := salaryService.NewSalaryService(salaryRepo, employeeRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, fileStorage)

	router := appHTTP.NewRouter(cfg, appMetrics, registry, authService, rateLimiter, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveService),
		Form:       appHTTP.NewFormHandler(formSvc),
		Approval:   appHTTP.NewApprovalHandler(approvalSvc),
		Attachment: appHTTP.NewAttachmentHandler(attachmentSvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Callback:   appHTTP.NewCallbackHandler(formSvc, bpm.NewCallbackVerifier(cfg.BPM.CallbackToken)),
	})

	scheduler := cron.NewScheduler(appMetrics)
	cron.NewFormJobs(formSvc, cfg.Cron.FormSyncInterval).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", fileStorage.Backend())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
