package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Paudel3101/meditrack/internal/config"
	"github.com/Paudel3101/meditrack/internal/email"
	appointmenthandler "github.com/Paudel3101/meditrack/internal/handler/appointment"
	authhandler "github.com/Paudel3101/meditrack/internal/handler/auth"
	dashboardhandler "github.com/Paudel3101/meditrack/internal/handler/dashboard"
	patienthandler "github.com/Paudel3101/meditrack/internal/handler/patient"
	staffhandler "github.com/Paudel3101/meditrack/internal/handler/staff"
	"github.com/Paudel3101/meditrack/internal/middleware"
	"github.com/Paudel3101/meditrack/internal/repository/postgres"
	"github.com/Paudel3101/meditrack/internal/router"
	appointmentservice "github.com/Paudel3101/meditrack/internal/service/appointment"
	authservice "github.com/Paudel3101/meditrack/internal/service/auth"
	dashboardservice "github.com/Paudel3101/meditrack/internal/service/dashboard"
	patientservice "github.com/Paudel3101/meditrack/internal/service/patient"
	staffservice "github.com/Paudel3101/meditrack/internal/service/staff"
	"github.com/Paudel3101/meditrack/internal/worker"
	"github.com/Paudel3101/meditrack/pkg/auth"
	"github.com/Paudel3101/meditrack/pkg/logger"
	redisbroker "github.com/Paudel3101/meditrack/pkg/messaging/redis"
	"github.com/Paudel3101/meditrack/pkg/security"
	"github.com/Paudel3101/meditrack/pkg/validator"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	validator.RegisterCustomValidations()

	db, err := postgres.NewDB(postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatal(err, "database connection failed")
	}
	defer db.Close()

	staffRepo := postgres.NewStaffRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	apptRepo := postgres.NewAppointmentRepository(db)
	dashboardRepo := postgres.NewDashboardRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)
	hasher := security.NewBcryptHasher(0)
	mailer := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Enabled:  cfg.SMTP.Enabled,
	}, log)

	authSvc := authservice.NewService(staffRepo, jwtSvc, hasher, mailer, log)
	staffSvc := staffservice.NewService(staffRepo, hasher, mailer, log)
	patientSvc := patientservice.NewService(patientRepo, apptRepo, log)
	apptSvc := appointmentservice.NewService(apptRepo, patientRepo, staffRepo, log)
	dashboardSvc := dashboardservice.NewService(dashboardRepo, log)

	am := middleware.NewAuthMiddleware(jwtSvc, staffRepo, log)

	engine := router.New(cfg, log, am, router.Handlers{
		Auth:        authhandler.NewHandler(authSvc, log),
		Patient:     patienthandler.NewHandler(patientSvc, outboxRepo, log),
		Appointment: appointmenthandler.NewHandler(apptSvc, outboxRepo, log),
		Staff:       staffhandler.NewHandler(staffSvc, outboxRepo, log),
		Dashboard:   dashboardhandler.NewHandler(dashboardSvc, patientSvc, log),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The outbox processor only runs when a broker is reachable;
	// events still accumulate in the table otherwise.
	if cfg.Redis.Enabled {
		broker, err := redisbroker.NewBroker(redisbroker.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal(err, "redis connection failed")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, log, worker.Config{
			PollInterval: cfg.Outbox.PollInterval,
			BatchSize:    cfg.Outbox.BatchSize,
			TopicPrefix:  cfg.Outbox.TopicPrefix,
		})
		go processor.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "graceful shutdown failed")
	}
	log.Info("server stopped")
}
