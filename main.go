package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"booking-agent-server/internal/availability"
	"booking-agent-server/internal/booking"
	"booking-agent-server/internal/classifier"
	"booking-agent-server/internal/config"
	"booking-agent-server/internal/middleware"
	"booking-agent-server/internal/routes"
	"booking-agent-server/internal/store"
	"booking-agent-server/internal/utils"
	"booking-agent-server/internal/workflow"
)

func main() {
	// Load environment variables; a missing .env is fine in production.
	_ = godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := utils.NewLogger(cfg.Environment)
	defer logger.Sync()

	// Domain store: MySQL when configured, otherwise the seeded
	// in-memory store.
	var st store.Store
	if cfg.Database.DSN != "" {
		gormStore, err := store.OpenGormStore(cfg.Database.DSN)
		if err != nil {
			logger.Fatal("Error connecting to database", zap.Error(err))
		}
		st = gormStore
		logger.Info("using MySQL store", zap.String("database", cfg.Database.Name))
	} else {
		st = store.NewSeededMemStore()
		logger.Info("using in-memory store with demo data")
	}

	// Conversation checkpoints: Redis when configured, otherwise process
	// memory.
	var checkpoints workflow.CheckpointStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Error connecting to Redis", zap.Error(err))
		}
		checkpoints = workflow.NewRedisCheckpoints(client, cfg.ThreadTTL)
		logger.Info("using Redis checkpoints", zap.String("addr", cfg.RedisAddr))
	} else {
		checkpoints = workflow.NewMemoryCheckpoints()
		logger.Info("using in-memory checkpoints")
	}

	// Intent classifier: Gemini when a key is configured, otherwise the
	// deterministic keyword matcher.
	var intents classifier.Classifier
	if cfg.GeminiAPIKey != "" {
		gemini, err := classifier.NewGemini(context.Background(), cfg.GeminiAPIKey, cfg.ClassifierTimeout)
		if err != nil {
			logger.Fatal("Error creating Gemini classifier", zap.Error(err))
		}
		intents = gemini
		logger.Info("using Gemini classifier")
	} else {
		intents = classifier.NewKeyword()
		logger.Info("using keyword classifier")
	}

	avail := availability.NewService(st, nil)
	engine := workflow.NewEngine(workflow.Config{
		Checkpoints:   checkpoints,
		Classifier:    intents,
		Availability:  avail,
		Booking:       booking.NewService(st, nil),
		Store:         st,
		Logger:        logger,
		StepLimit:     cfg.WorkflowStepLimit,
		SpecialtyFlow: cfg.SpecialtyFlow,
	})

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, engine, st, avail)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
