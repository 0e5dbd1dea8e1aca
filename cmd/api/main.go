package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/agent"
	"github.com/DJ-no1/floatchat-backend/internal/api/handlers"
	cacheredis "github.com/DJ-no1/floatchat-backend/internal/cache/redis"
	"github.com/DJ-no1/floatchat-backend/internal/compose"
	"github.com/DJ-no1/floatchat-backend/internal/domains"
	"github.com/DJ-no1/floatchat-backend/internal/intent"
	"github.com/DJ-no1/floatchat-backend/internal/llm"
	"github.com/DJ-no1/floatchat-backend/internal/metrics"
	"github.com/DJ-no1/floatchat-backend/internal/middleware/ratelimit"
	"github.com/DJ-no1/floatchat-backend/internal/middleware/security"
	"github.com/DJ-no1/floatchat-backend/internal/middleware/validation"
	"github.com/DJ-no1/floatchat-backend/internal/search/rank"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
	"github.com/DJ-no1/floatchat-backend/pkg/config"
	appLogger "github.com/DJ-no1/floatchat-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting FloatChat API Server")

	metrics.Init()

	policy := domains.New(cfg.Domains.Priority, cfg.Domains.Denied, cfg.Domains.FreshnessMonths)
	classifier := intent.NewClassifier(appLogger.GetLogger())
	searchClient := web.NewClient(cfg.Search, policy)
	ranker := rank.New(policy)

	var summarizer compose.Summarizer
	if cfg.LLM.Enabled && cfg.LLM.APIKey != "" {
		summarizer = llm.NewClient(cfg.LLM)
	} else {
		appLogger.Info("LLM summarizer disabled, using template summaries")
	}
	composer := compose.New(policy, summarizer)

	chatAgent := agent.New(classifier, searchClient, ranker, composer, cfg.Search.MaxResults)

	var cache handlers.ResponseCache
	if cfg.Redis.Enabled {
		redisClient, err := cacheredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSec)*time.Second,
		)
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without response cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cache = redisClient
		}
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-Session-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		IsDevelopment: cfg.Logging.Level == "debug",
	}))

	searchLimiter := ratelimit.New(ratelimit.Config{
		CallsPerMinute: cfg.RateLimit.SearchCallsPerMinute,
		Logger:         appLogger.GetLogger(),
	})
	defer searchLimiter.Stop()

	validateQuery := validation.Middleware(validation.Config{
		Logger: appLogger.GetLogger(),
	})

	chatHandler := handlers.NewChatHandler(chatAgent, cache)
	searchHandler := handlers.NewSearchHandler(chatAgent)
	wsHandler := handlers.NewWebSocketHandler(chatAgent)

	api := app.Group("/api/v1")

	api.Post("/chat", searchLimiter.Middleware(), validateQuery, chatHandler.HandleChat)
	api.Post("/search", searchLimiter.Middleware(), searchHandler.HandleSearch)
	api.Get("/intents", handlers.HandleIntents)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocket.New(wsHandler.HandleConnection))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
