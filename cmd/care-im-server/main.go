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

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ohcnetwork/care-im/internal/config"
	"github.com/ohcnetwork/care-im/internal/domain/clinical"
	"github.com/ohcnetwork/care-im/internal/domain/directory"
	"github.com/ohcnetwork/care-im/internal/domain/facility"
	"github.com/ohcnetwork/care-im/internal/domain/resource"
	"github.com/ohcnetwork/care-im/internal/domain/scheduling"
	"github.com/ohcnetwork/care-im/internal/events"
	"github.com/ohcnetwork/care-im/internal/identity"
	"github.com/ohcnetwork/care-im/internal/messaging"
	"github.com/ohcnetwork/care-im/internal/messaging/handlers"
	"github.com/ohcnetwork/care-im/internal/platform/db"
	"github.com/ohcnetwork/care-im/internal/platform/lock"
	"github.com/ohcnetwork/care-im/internal/platform/middleware"
	"github.com/ohcnetwork/care-im/internal/platform/whatsapp"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "care-im-server",
		Short: "WhatsApp messaging channel for the care records system",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	var guard lock.Guard
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to redis")
		}
		defer rdb.Close()
		guard = lock.NewRedisGuard(rdb)
	} else {
		logger.Warn().Msg("REDIS_URL not set, using in-process lock guard")
		guard = lock.NewMemoryGuard()
	}

	client, err := whatsapp.NewClient(whatsapp.Config{
		AccessToken:   cfg.WhatsAppAccessToken,
		PhoneNumberID: cfg.WhatsAppPhoneNumberID,
		VerifyToken:   cfg.WhatsAppVerifyToken,
		APIVersion:    cfg.WhatsAppAPIVersion,
	}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create WhatsApp client")
	}

	patients := directory.NewPatientRepoPG(pool)
	users := directory.NewUserRepoPG(pool)
	facilities := facility.NewRepoPG(pool)
	medications := clinical.NewMedicationRequestRepoPG(pool)
	encounters := clinical.NewEncounterRepoPG(pool)
	bookings := clinical.NewTokenBookingRepoPG(pool)
	schedules := scheduling.NewRepoPG(pool)
	resources := resource.NewRepoPG(pool)

	resolver := identity.NewResolver(patients, users, logger)
	templates := &messaging.Templates{
		SupportEmail: cfg.SupportEmail,
		Helpline:     cfg.SupportHelpline,
	}

	router := messaging.NewRouter(messaging.RouterDeps{
		Resolver:  resolver,
		Templates: templates,
		Sender:    client,
		Guard:     guard,

		PatientRecords: handlers.NewPatientRecordHandler(client, logger),
		Medications:    handlers.NewMedicationHandler(medications, client, logger),
		Procedures:     handlers.NewProceduresHandler(encounters, client, logger),
		Token:          handlers.NewTokenHandler(bookings, client, logger),
		StaffSchedule:  handlers.NewStaffScheduleHandler(facilities, schedules, client, logger),
		AssetStatus:    handlers.NewAssetStatusHandler(facilities, client, logger),
		ResourceStatus: handlers.NewResourceStatusHandler(facilities, resources, client, logger),
	}, logger)

	bus := events.NewBus(64)
	subscriber := events.NewSubscriber(bus.Events(), router, logger)
	go subscriber.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	messaging.NewWebhookHandler(client, router, logger).Register(e)
	events.NewHandler(bus, logger).Register(e)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("Starting care-im server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Forced shutdown")
	}

	return nil
}
