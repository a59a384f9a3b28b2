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

	"github.com/cmlabs-hris/shift-scheduler-go/internal/config"
	appHTTP "github.com/cmlabs-hris/shift-scheduler-go/internal/handler/http"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/cron"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/database"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/logger"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/sse"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/shift-scheduler-go/internal/service/employee"
	eventService "github.com/cmlabs-hris/shift-scheduler-go/internal/service/event"
	reportService "github.com/cmlabs-hris/shift-scheduler-go/internal/service/report"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.Setup(logger.Options{
		App:     "shift-scheduler",
		Version: version,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	weeklyRepo := postgresql.NewWeeklyScheduleRepository(db)
	tx := postgresql.NewTransactor(db)

	hub := sse.NewHub()

	reportSvc := reportService.NewReportService(employeeRepo, eventRepo, weeklyRepo, hub, cfg.Location())
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, weeklyRepo)
	eventSvc := eventService.NewEventService(tx, eventRepo, employeeRepo, hub, reportSvc)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	scheduler := cron.NewScheduler()
	cron.NewWeeklyScheduleJobs(reportSvc, cfg.Schedule.SnapshotInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         log,
			AllowedOrigins: cfg.App.AllowedOrigins,
			AuthEnabled:    cfg.JWT.Enabled,
		},
		jwtService,
		appHTTP.Handlers{
			Auth:     appHTTP.NewAuthHandler(jwtService),
			Employee: appHTTP.NewEmployeeHandler(employeeSvc),
			Event:    appHTTP.NewEventHandler(eventSvc),
			Schedule: appHTTP.NewScheduleHandler(eventSvc, cfg.Location()),
			Report:   appHTTP.NewReportHandler(reportSvc, hub),
		},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			slog.String("addr", srv.Addr),
			slog.String("timezone", cfg.App.Timezone),
			slog.Bool("auth_enabled", cfg.JWT.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", slog.Int("open_streams", hub.TotalSubscribers()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Open event streams never finish on their own.
	srv.RegisterOnShutdown(hub.Close)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
