package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/completion"
	"github.com/noah-isme/writerpro-api/internal/config"
	"github.com/noah-isme/writerpro-api/internal/database"
	"github.com/noah-isme/writerpro-api/internal/events"
	"github.com/noah-isme/writerpro-api/internal/handler"
	"github.com/noah-isme/writerpro-api/internal/middleware"
	"github.com/noah-isme/writerpro-api/internal/repository"
	"github.com/noah-isme/writerpro-api/internal/router"
	"github.com/noah-isme/writerpro-api/internal/scoring"
	"github.com/noah-isme/writerpro-api/internal/service"
	"github.com/noah-isme/writerpro-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Info().Msg("redis not configured, history stats cache disabled")
	}

	publisher := events.NewNopPublisher()
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer conn.Drain()
		publisher = events.NewNATSPublisher(conn, cfg.EventPrefix, logger)
	}

	provider, err := ai.NewProvider(context.Background(), ai.Config{
		Provider:        cfg.AIProvider,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		GeminiModel:     cfg.GeminiModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		Timeout:         cfg.AITimeout,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create scoring provider: %v", err)
	}

	providerName := scoring.SourceHeuristic
	if provider != nil {
		providerName = provider.Name()
	}
	logger.Info().Str("provider", providerName).Msg("scoring provider selected")

	learnerRepo := repository.NewLearnerRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	placementRepo := repository.NewPlacementRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)

	var completionStore completion.Store = repository.NewCompletionRepository(db)
	if cfg.CompletionStore == config.CompletionStoreRedis {
		completionStore = repository.NewCompletionRedisStore(redisClient)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	analysisService := service.NewAnalysisService(scoring.NewAnalyzer(provider, logger), analysisRepo, publisher, redisClient, cfg.HistoryCacheTTL, logger)
	placementService := service.NewPlacementService(assessmentRepo, placementRepo, learnerRepo, publisher, logger)
	tracker := completion.NewTracker(completionStore, logger)
	completionService := service.NewCompletionService(tracker, analysisRepo, logger)
	exerciseService := service.NewExerciseService(exerciseRepo, tracker, logger)
	profileService := service.NewProfileService(learnerRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, router.Dependencies{
		AnalysisHandler:   handler.NewAnalysisHandler(analysisService, validate, logger),
		PlacementHandler:  handler.NewPlacementHandler(placementService, validate, logger),
		CompletionHandler: handler.NewCompletionHandler(completionService, validate, logger),
		ProfileHandler:    handler.NewProfileHandler(profileService, logger),
		ExerciseHandler:   handler.NewExerciseHandler(exerciseService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
		AnalyzeLimiter:    middleware.RateLimit("analyze", cfg.AnalyzeRateLimit, cfg.AnalyzeRateWindow),
		ScoringProvider:   providerName,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
