package main // Entry point package

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brightwood-pta/portal/internal/config"
	"github.com/brightwood-pta/portal/internal/database"
	"github.com/brightwood-pta/portal/internal/handler"
	"github.com/brightwood-pta/portal/internal/middleware"
	"github.com/brightwood-pta/portal/internal/payment"
	"github.com/brightwood-pta/portal/internal/queue"
	"github.com/brightwood-pta/portal/internal/repository"
	"github.com/brightwood-pta/portal/internal/router"
	"github.com/brightwood-pta/portal/internal/service"
	"github.com/brightwood-pta/portal/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "portal",
		Short: "Brightwood PTA portal API",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			logger, err := newLogger(cfg.Env)
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			blobs, err := storage.NewLocalStore(cfg.UploadDir)
			if err != nil {
				return fmt.Errorf("init upload dir: %w", err)
			}

			users := repository.NewUserRepo(db)
			tokens := repository.NewTokenRepo(db)
			events := repository.NewEventRepo(db)
			shifts := repository.NewShiftRepo(db)
			signups := repository.NewSignupRepo(db)
			posts := repository.NewPostRepo(db)
			donors := repository.NewDonorRepo(db)
			auction := repository.NewAuctionRepo(db)
			documents := repository.NewDocumentRepo(db)
			donations := repository.NewDonationRepo(db)

			var strict *service.StrictStores
			if cfg.StrictAdmission {
				strict = &service.StrictStores{DB: db, Shifts: shifts, Signups: signups}
			}
			volunteers := service.NewVolunteerService(shifts, signups, strict)

			e := echo.New()
			e.HideBanner = true
			e.Validator = handler.NewRequestValidator()

			// Redis is optional: without it the cache and rate limit layers
			// just pass requests through.
			if rdb := config.NewRedisClient(); rdb != nil {
				e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
				e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
			}

			router.RegisterRoutes(e)
			router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
			router.RegisterVolunteer(e,
				handler.NewVolunteerEventHandler(events, shifts, signups),
				handler.NewShiftHandler(shifts, events),
				handler.NewSignupHandler(volunteers, logger),
				cfg.JWTSecret)
			router.RegisterContent(e,
				handler.NewPostHandler(posts),
				handler.NewEventHandler(events),
				handler.NewDonorHandler(donors),
				handler.NewAuctionHandler(auction),
				handler.NewDocumentHandler(documents, blobs, logger),
				cfg.JWTSecret)
			router.RegisterDonations(e, handler.NewDonationHandler(donations, &payment.LocalProvider{}), cfg.JWTSecret)

			// The audit consumer reconnects on its own; a broker outage only
			// pauses the signup log.
			go func() {
				if err := queue.StartSignupConsumer(logger); err != nil {
					logger.Warn("signup consumer stopped", zap.Error(err))
				}
			}()

			addr := ":" + cfg.Port
			logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
			return e.Start(addr)
		},
	}
}

func migrateCmd() *cobra.Command {
	var down bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			logger, err := newLogger(cfg.Env)
			if err != nil {
				return err
			}
			defer logger.Sync()

			sourceURL := "file://migrations"
			dbURL := fmt.Sprintf("mysql://%s:%s@tcp(%s:%s)/%s?multiStatements=true",
				cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

			if down {
				return database.MigrateDown(sourceURL, dbURL, logger)
			}
			return database.MigrateUp(sourceURL, dbURL, logger)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "roll back all migrations")
	return cmd
}

// newLogger builds a production logger except in dev, where the console
// encoder is easier to read.
func newLogger(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	logger, err := zap.NewProduction()
	if err != nil {
		log.Printf("zap init failed: %v", err)
		return nil, err
	}
	return logger, nil
}
