// main.go
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

	"github.com/ariebrainware/doctor-portal/config"
	"github.com/ariebrainware/doctor-portal/endpoint"
	"github.com/ariebrainware/doctor-portal/event"
	"github.com/ariebrainware/doctor-portal/middleware"
	"github.com/ariebrainware/doctor-portal/model"
	"github.com/ariebrainware/doctor-portal/util"
	"github.com/ariebrainware/doctor-portal/worker"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "doctor-portal",
		Short: "Doctor portal API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			if err := model.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			util.Logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert reference data and a demo doctor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			if err := model.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			if err := model.SeedReferenceData(db); err != nil {
				return err
			}
			hash, err := util.HashPassword(password)
			if err != nil {
				return err
			}
			doctor, err := model.SeedDemoDoctor(db, email, hash)
			if err != nil {
				return err
			}
			util.Logger.Info().Uint("doctor_id", doctor.ID).Str("email", doctor.Email).Msg("seed complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "sarah.johnson@hospital.com", "demo doctor email")
	cmd.Flags().StringVar(&password, "password", "password123", "demo doctor password")
	return cmd
}

func openDatabase() (*gorm.DB, error) {
	cfg := config.LoadConfig()
	util.InitLogger(cfg.AppEnv, os.Stdout)

	db, err := config.ConnectDatabase()
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

func runServer() error {
	cfg := config.LoadConfig()
	db, err := openDatabase()
	if err != nil {
		return err
	}
	logger := util.Logger

	if cfg.JWTSecret == "" {
		return errors.New("JWTSECRET is not set")
	}
	util.SetJWTSecret(cfg.JWTSecret)

	if _, err := config.ConnectRedis(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, sessions and rate limits fall back to the database")
	}
	if err := model.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	util.SetAuditLoggerDB(db)
	util.InitDoctorNameCache(cfg.DoctorCacheSize)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLogger(logger))
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/events"})))
	router.Use(middleware.DatabaseMiddleware(db))
	endpoint.RegisterRoutes(router, endpoint.RouteOptions{LoginRateLimit: cfg.LoginRateLimit})

	jobs := worker.NewJobs(db, event.Default)
	scheduler, err := jobs.Start(cfg.CertWatchAt)
	if err != nil {
		return fmt.Errorf("start background jobs: %w", err)
	}
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Shutdown does not cancel request contexts, so end open event streams here.
	srv.RegisterOnShutdown(event.Default.Close)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("env", cfg.AppEnv).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
