package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/studio-payroll/internal/config"
	"github.com/cmlabs-hris/studio-payroll/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/studio-payroll/internal/handler/http"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/database"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/jwt"
	"github.com/cmlabs-hris/studio-payroll/internal/pkg/storage"
	"github.com/cmlabs-hris/studio-payroll/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/studio-payroll/internal/service/attendance"
	payrollService "github.com/cmlabs-hris/studio-payroll/internal/service/payroll"
	performanceService "github.com/cmlabs-hris/studio-payroll/internal/service/performance"
	salaryStructureService "github.com/cmlabs-hris/studio-payroll/internal/service/salarystructure"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.App.LogLevel)})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return err
	}

	defaults := fixtures.GetDefaultFinanceSettings(cfg.Payroll.Currency, cfg.Payroll.IncentiveBonusPool)
	if cfg.App.Seed {
		if err := postgresql.SeedDefaults(ctx, db, defaults); err != nil {
			return err
		}
	}

	repos := payrollService.Repositories{
		Employees:    postgresql.NewEmployeeRepository(db),
		Attendance:   postgresql.NewAttendanceRepository(db),
		Shifts:       postgresql.NewShiftRepository(db),
		Tasks:        postgresql.NewTaskRepository(db),
		KPIs:         postgresql.NewKPIRepository(db),
		ManualScores: postgresql.NewManualScoreRepository(db),
		Payslips:     postgresql.NewPayslipRepository(db),
		Settings:     postgresql.NewFinanceSettingsRepository(db),
	}

	lateness, err := attendanceService.NewLatenessPolicy(cfg.Payroll.LatenessPolicy, cfg.Payroll.LatenessBucketMinutes, cfg.Payroll.LatenessRatePerMinute)
	if err != nil {
		return err
	}
	location := cfg.Location()
	aggregator := attendanceService.NewAggregator(location, lateness)
	scorer := performanceService.NewScorer(aggregator, performanceService.DefaultMetrics(cfg.Payroll.ProductivityTarget))
	engine := payrollService.NewEngine(aggregator, scorer)

	renderer, err := payrollService.NewPayslipRenderer(cfg.Payroll.Currency, cfg.Payroll.Locale)
	if err != nil {
		return fmt.Errorf("payslip renderer: %w", err)
	}
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollSvc := payrollService.NewPayrollService(repos, engine, location, renderer, fileStorage, defaults)
	salaryStructureSvc := salaryStructureService.NewSalaryStructureService(repos.Employees)

	router := appHTTP.NewRouter(
		JWTService,
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewSalaryStructureHandler(salaryStructureSvc),
		appHTTP.RouterOptions{Env: cfg.App.Env, FileDir: fileStorage.BasePath()},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", location.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
