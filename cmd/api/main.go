package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/application/middleware"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/service"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/config"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/external/completion"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
	mongostore "github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/persistence/mongo"
	app_handler "github.com/Viktoooor3190/fitapp-sub001/internal/interfaces/http/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logging.Init(&cfg.Sentry); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Sync()

	logging.Logger.Info("Starting coaching API server",
		zap.Int("port", cfg.Server.Port),
		zap.String("environment", cfg.Sentry.Environment),
	)

	// Single process-scoped store handle, injected everywhere below.
	ctx := context.Background()
	mongoClient, err := mongostore.Connect(ctx, cfg.Mongo)
	if err != nil {
		logging.Logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(ctx) }()

	db := mongoClient.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureCollections(ctx, db); err != nil {
		logging.Logger.Fatal("Failed to ensure collections", zap.Error(err))
	}

	// Redis backs the task queue and the rate limiter.
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logging.Logger.Fatal("Failed to parse Redis URL", zap.Error(err))
	}
	opts.PoolSize = cfg.Redis.PoolSize
	redisClient := redis.NewClient(opts)
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logging.Logger.Fatal("Failed to ping Redis", zap.Error(err))
	}

	asynqClient := asynq.NewClientFromRedisClient(redisClient)
	defer asynqClient.Close()

	// Repositories
	txRepo := mongostore.NewTransactionRepository(db)
	statsRepo := mongostore.NewStatsRepository(db)
	intakeRepo := mongostore.NewIntakeRepository(db)
	planRepo := mongostore.NewPlanRepository(db)

	// Services
	completionClient := completion.NewClient(cfg.Completion, logging.WithComponent("completion"))
	planService := service.NewPlanService(intakeRepo, planRepo, completionClient, logging.WithComponent("plans"))

	// Middleware
	rateLimiter := middleware.NewRateLimiter(redisClient, true, logging.Logger) // fail open

	// Handlers
	statsHandler := app_handler.NewStatsHandler(statsRepo, asynqClient)
	txHandler := app_handler.NewTransactionHandler(txRepo)
	planHandler := app_handler.NewPlanHandler(planService, planRepo)
	intakeHandler := app_handler.NewIntakeHandler(intakeRepo)
	webhookHandler := app_handler.NewWebhookHandler(cfg.Stripe.WebhookSecret, txRepo)

	if cfg.Sentry.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		logging.RequestMiddleware(logging.Logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Webhook routes (no auth, verified by signature)
	webhooks := router.Group("/webhook")
	{
		webhooks.POST("/stripe",
			rateLimiter.Middleware(middleware.ByIP, middleware.WebhookConfig),
			webhookHandler.StripeWebhook,
		)
	}

	v1 := router.Group("/v1")
	{
		coaches := v1.Group("/coaches/:id")
		{
			coaches.GET("/stats", statsHandler.GetRevenueStats)
			coaches.GET("/report", statsHandler.GetReport)
			coaches.POST("/stats/recompute", statsHandler.RecomputeStats)
			coaches.GET("/transactions", txHandler.ListByCoach)
		}

		txs := v1.Group("/transactions")
		{
			txs.POST("", txHandler.Create)
			txs.GET("/:id", txHandler.Get)
			txs.PUT("/:id", txHandler.Update)
			txs.DELETE("/:id", txHandler.Delete)
		}

		users := v1.Group("/users/:id")
		{
			users.GET("/intake", intakeHandler.Get)
			users.PUT("/intake", intakeHandler.Upsert)
			users.GET("/plans", planHandler.List)
			plans := users.Group("/plans")
			plans.Use(rateLimiter.Middleware(middleware.ByUserParam, middleware.PlanConfig))
			{
				plans.POST("/workout", planHandler.GenerateWorkout)
				plans.POST("/nutrition", planHandler.GenerateNutrition)
			}
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logging.Logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("Server exited")
}
