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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/config"
	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/handler"
	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/jobs"
	"github.com/forgo/gigbook/internal/logger"
	"github.com/forgo/gigbook/internal/middleware"
	"github.com/forgo/gigbook/internal/reconcile"
	"github.com/forgo/gigbook/internal/repository"
	"github.com/forgo/gigbook/internal/service"
	"github.com/forgo/gigbook/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logging
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	log.Info("connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	quoteRepo := repository.NewQuoteRequestRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	provider := identity.NewProvider(identity.ProviderConfig{
		Accounts:   accountRepo,
		Tokens:     tokenRepo,
		JWT:        jwtService,
		RefreshTTL: cfg.JWT.RefreshTokenTTL,
		Logger:     log,
	})

	// Reconciliation: Redis stream when enabled, log otherwise
	var reconciler service.ReconciliationSink = reconcile.NewLogOnly(log.Named("reconcile"))
	var rdb *redis.Client
	if cfg.Reconcile.Enabled {
		rdb, err = reconcile.NewRedisClient(ctx, reconcile.RedisConfig{
			Addr:     cfg.Reconcile.RedisAddr,
			Password: cfg.Reconcile.RedisPassword,
			DB:       cfg.Reconcile.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("connect reconcile stream: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		reconciler = reconcile.NewRedisStream(rdb, cfg.Reconcile.Stream, log.Named("reconcile"))
		log.Info("reconcile stream enabled", zap.String("stream", cfg.Reconcile.Stream))
	}

	// Initialize services
	strict := cfg.Status.StrictTransitions
	authService := service.NewAuthService(service.AuthServiceConfig{
		Identity:   provider,
		Profiles:   profileRepo,
		Reconciler: reconciler,
		Logger:     log,
	})
	profileService := service.NewProfileService(service.ProfileServiceConfig{
		Repo:   profileRepo,
		Logger: log,
	})
	availabilityService := service.NewAvailabilityService(service.AvailabilityServiceConfig{
		Repo:     availabilityRepo,
		Profiles: profileRepo,
		Logger:   log,
	})
	bookingService := service.NewBookingService(service.BookingServiceConfig{
		Repo:              bookingRepo,
		Profiles:          profileRepo,
		StrictTransitions: strict,
		Logger:            log,
	})
	quoteService := service.NewQuoteRequestService(service.QuoteRequestServiceConfig{
		Repo:              quoteRepo,
		Profiles:          profileRepo,
		StrictTransitions: strict,
		Logger:            log,
	})
	equipmentService := service.NewEquipmentService(service.EquipmentServiceConfig{
		Repo:              equipmentRepo,
		Proposals:         proposalRepo,
		StrictTransitions: strict,
		Logger:            log,
	})
	reviewService := service.NewReviewService(service.ReviewServiceConfig{
		Repo:     reviewRepo,
		Bookings: bookingRepo,
		Logger:   log,
	})
	portfolioService := service.NewPortfolioService(service.PortfolioServiceConfig{
		Repo:     portfolioRepo,
		Profiles: profileRepo,
		Logger:   log,
	})

	// Background jobs
	background := []*jobs.Periodic{
		jobs.NewPeriodic(jobs.PeriodicConfig{
			Name:         "token_cleanup",
			Task:         jobs.TokenCleanupTask(tokenRepo),
			Interval:     cfg.JWT.CleanupInterval,
			InitialDelay: 5 * time.Second,
			Logger:       log,
		}),
	}
	if rdb != nil {
		sweeper := jobs.NewOrphanSweeper(
			reconcile.NewRedisReader(rdb, cfg.Reconcile.Stream),
			provider,
			profileRepo,
			100,
			log,
		)
		background = append(background, jobs.NewPeriodic(jobs.PeriodicConfig{
			Name:         "orphan_sweeper",
			Task:         sweeper.Sweep,
			Interval:     cfg.Reconcile.SweepInterval,
			InitialDelay: 5 * time.Second,
			Logger:       log,
		}))
	}
	for _, job := range background {
		job.Start()
		defer job.Stop()
	}

	// Routes
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Handlers{
		Health:       handler.NewHealthHandler(db),
		Auth:         handler.NewAuthHandler(authService),
		Profile:      handler.NewProfileHandler(profileService),
		Availability: handler.NewAvailabilityHandler(availabilityService),
		Booking:      handler.NewBookingHandler(bookingService),
		Quote:        handler.NewQuoteRequestHandler(quoteService),
		Equipment:    handler.NewEquipmentHandler(equipmentService, equipmentService),
		Review:       handler.NewReviewHandler(reviewService),
		Portfolio:    handler.NewPortfolioHandler(portfolioService),
	}, middleware.Auth(authService))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
			zap.Bool("strict_transitions", strict),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
	return nil
}
