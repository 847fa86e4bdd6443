package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carepilot/symptom-triage/backend/internal/adapters/cache"
	"github.com/carepilot/symptom-triage/backend/internal/adapters/database"
	"github.com/carepilot/symptom-triage/backend/internal/adapters/events"
	"github.com/carepilot/symptom-triage/backend/internal/adapters/storage"
	"github.com/carepilot/symptom-triage/backend/internal/api/handlers"
	"github.com/carepilot/symptom-triage/backend/internal/api/middleware"
	"github.com/carepilot/symptom-triage/backend/internal/api/routes"
	"github.com/carepilot/symptom-triage/backend/internal/application/services"
	"github.com/carepilot/symptom-triage/backend/internal/domain/providers"
	"github.com/carepilot/symptom-triage/backend/internal/domain/repositories"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/clients/openai"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/clients/postgres"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/clients/redis"
	"github.com/carepilot/symptom-triage/backend/internal/infrastructure/observability"
	"github.com/carepilot/symptom-triage/backend/internal/taxonomy"
	"github.com/carepilot/symptom-triage/backend/pkg/config"
	"github.com/carepilot/symptom-triage/backend/pkg/secrets"
)

func main() {

	// Pull secrets (OPENAI_API_KEY, DB credentials) from Vault into the
	// environment before the config reads it
	vaultCfg := secrets.LoadVaultConfigFromEnv("")
	if result, err := secrets.ApplyVaultSecrets(context.Background(), vaultCfg); err != nil {
		log.Printf("Warning: Failed to load Vault secrets: %v", err)
	} else if result.Enabled {
		log.Printf("Loaded %d secrets from Vault (%d already set)", result.Loaded, result.Skipped)
	}

	// Load configuration

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize durable storage adapters
	feedbackLog, err := storage.NewFeedbackLogAdapter(cfg.Storage.FeedbackLog)
	if err != nil {
		log.Fatalf("Failed to initialize feedback log: %v", err)
	}

	stateRepo, err := storage.NewLearningStateAdapter(cfg.Storage.PatternWeights, cfg.Storage.Corrections)
	if err != nil {
		log.Fatalf("Failed to initialize learning state storage: %v", err)
	}

	// Initialize the optional mirror database client
	var mirror repositories.RowStoreRepository
	if cfg.Database.MirrorEnabled() {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Printf("Warning: Failed to initialize PostgreSQL mirror: %v", err)
			// Continue without the mirror - feedback stays in the local log
		} else {
			defer pgClient.Close()
			mirror = database.NewRowStoreAdapter(pgClient)
			log.Println("PostgreSQL mirror initialized successfully")
		}
	} else {
		log.Println("PostgreSQL mirror disabled (DB_HOST not set)")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisClient = nil
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for cross-instance learning-state reloads
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize the zero-shot classifier
	var classifier providers.TextClassifier
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; long-input classification disabled")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			classifier = openaiClient
		}
	}

	// Initialize services

	learningService, err := services.NewLearningService(
		taxonomy.NewLearningView(),
		stateRepo,
		feedbackLog,
		mirror,
		eventBus,
	)
	if err != nil {
		log.Fatalf("Failed to initialize learning service: %v", err)
	}

	// Reload shared learning state when another instance records feedback
	if eventBus != nil {
		updates, err := eventBus.Subscribe(ctx, providers.EventChannelLearningUpdates)
		if err != nil {
			log.Printf("Warning: Failed to subscribe to learning updates: %v", err)
		} else {
			go func() {
				for range updates {
					if err := learningService.Reload(ctx); err != nil {
						log.Printf("Failed to reload learning state: %v", err)
					}
				}
			}()
			log.Println("Learning-state reload subscription started")
		}
	}

	triageService := services.NewTriageService(taxonomy.NewTriageView())
	analyzerService := services.NewSymptomAnalyzerService(taxonomy.NewAnalysisView())
	suggestionService := services.NewSuggestionService(
		taxonomy.NewSuggestionView(),
		classifier,
		cacheProvider,
		learningService,
	)

	recommendationService, err := services.NewRecommendationService(cfg.Storage.ResourceLinks)
	if err != nil {
		log.Fatalf("Failed to initialize recommendation service: %v", err)
	}

	surveyService := services.NewSurveyService(mirror)

	// Initialize handlers

	triageHandler := handlers.NewTriageHandler(triageService)

	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)

	analysisHandler := handlers.NewAnalysisHandler(analyzerService)

	conditionHandler := handlers.NewConditionHandler(recommendationService)

	feedbackHandler := handlers.NewFeedbackHandler(learningService, cacheProvider, metrics)
	surveyHandler := handlers.NewSurveyHandler(surveyService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router

	router := routes.NewRouter(
		triageHandler,
		suggestionHandler,
		analysisHandler,
		conditionHandler,
		feedbackHandler,
		surveyHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
