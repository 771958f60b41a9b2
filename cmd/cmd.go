package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-share-backend/internal/auth"
	"recipe-share-backend/internal/config"
	"recipe-share-backend/internal/handlers"
	"recipe-share-backend/internal/migrations"
	"recipe-share-backend/internal/repository"
	"recipe-share-backend/internal/services"
	"recipe-share-backend/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "recipes",
	Short:         "Recipe sharing backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupLogger(cfg.Log)
		return Run(cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupLogger(cfg.Log)

		if err := migrations.UpDSN(cmd.Context(), cfg.Database.DSN()); err != nil {
			return err
		}
		log.Info().Msg("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the configuration file")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

// Run starts the server and blocks until SIGINT or SIGTERM
func Run(cfg *config.Config) error {
	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := migrations.UpDSN(ctx, cfg.Database.DSN()); err != nil {
			return err
		}
		log.Info().Msg("Database migrations applied")
	}

	// Connect to database
	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info().Msg("Database connection established")

	uploads, profiles, err := newBlobStores(ctx, cfg)
	if err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	imageRepo := repository.NewImageRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Initialize services
	verifier := auth.NewVerifier(auth.Config{Secret: cfg.JWT.Secret, TTL: cfg.JWT.TTL})
	assets := services.NewAssetStore(recipeRepo, imageRepo, uploads)
	recipeService := services.NewRecipeService(recipeRepo, imageRepo, assets)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := handlers.NewRouter(handlers.Deps{
		Verifier:   verifier,
		Recipes:    recipeService,
		Assets:     assets,
		Favorites:  services.NewFavoriteService(favoriteRepo, recipeRepo, imageRepo),
		Comments:   services.NewCommentService(commentRepo, recipeRepo),
		Users:      services.NewUserService(userRepo, recipeRepo, assets, profiles, verifier),
		Contact:    services.NewContactService(services.LogMailer{}),
		Uploads:    uploads,
		Profiles:   profiles,
		Registry:   registry,
		CORSOrigin: cfg.Server.CORSOrigin,
		MaxUpload:  cfg.Server.MaxUploadMB << 20,
		AccessLog:  true,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Str("storage", cfg.Storage.Backend).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}

// newBlobStores builds the recipe image and profile image stores
func newBlobStores(ctx context.Context, cfg *config.Config) (services.BlobStore, services.BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			Region:       cfg.AWS.Region,
			AccessKey:    cfg.AWS.AccessKey,
			SecretKey:    cfg.AWS.SecretKey,
			Endpoint:     cfg.AWS.Endpoint,
			UsePathStyle: cfg.AWS.UsePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		return storage.NewS3Store(client, cfg.AWS.S3Bucket, cfg.Storage.UploadsDir),
			storage.NewS3Store(client, cfg.AWS.S3Bucket, cfg.Storage.ProfileDir), nil

	default:
		uploads, err := storage.NewFileSystemStore(cfg.Storage.UploadsDir)
		if err != nil {
			return nil, nil, err
		}
		profiles, err := storage.NewFileSystemStore(cfg.Storage.ProfileDir)
		if err != nil {
			return nil, nil, err
		}
		for _, s := range []*storage.FileSystemStore{uploads, profiles} {
			if err := s.ValidateSetup(ctx); err != nil {
				return nil, nil, err
			}
		}
		return uploads, profiles, nil
	}
}

// setupLogger configures zerolog logger
func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	switch cfg.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
