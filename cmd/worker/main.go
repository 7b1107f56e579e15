package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/service"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/config"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
	mongostore "github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/persistence/mongo"
	"github.com/Viktoooor3190/fitapp-sub001/internal/worker/tasks"
	"github.com/Viktoooor3190/fitapp-sub001/internal/worker/watcher"
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

	logging.Logger.Info("Starting stats worker")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoClient, err := mongostore.Connect(ctx, cfg.Mongo)
	if err != nil {
		logging.Logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	db := mongoClient.Database(cfg.Mongo.Database)
	if err := mongostore.EnsureCollections(ctx, db); err != nil {
		logging.Logger.Fatal("Failed to ensure collections", zap.Error(err))
	}

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

	// Repositories and services
	txRepo := mongostore.NewTransactionRepository(db)
	statsRepo := mongostore.NewStatsRepository(db)
	coachingRepo := mongostore.NewCoachingRepository(db)

	revenueService := service.NewRevenueService(txRepo, statsRepo, logging.WithComponent("revenue"))
	reportService := service.NewReportService(coachingRepo, statsRepo, logging.WithComponent("reports"))
	taskHandlers := tasks.NewTaskHandlers(revenueService, reportService, logging.Logger)

	// Asynq server
	server := asynq.NewServerFromRedisClient(redisClient, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		RetryDelayFunc: func(n int, err error, task *asynq.Task) time.Duration {
			// Exponential backoff: 2^n seconds
			return time.Duration(1<<uint(n)) * time.Second
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logging.CaptureError(err, "task failed", zap.String("type", task.Type()))
		}),
	})

	mux := asynq.NewServeMux()
	tasks.RegisterHandlers(mux, taskHandlers)

	if err := server.Start(mux); err != nil {
		logging.Logger.Fatal("Failed to start worker", zap.Error(err))
	}

	scheduler := asynq.NewSchedulerFromRedisClient(redisClient, nil)
	tasks.RegisterScheduledTasks(scheduler)

	if err := scheduler.Start(); err != nil {
		logging.Logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	// Trigger dispatcher: tail the transaction change stream and enqueue
	// recomputes through the same client the API uses.
	asynqClient := asynq.NewClientFromRedisClient(redisClient)
	defer asynqClient.Close()

	txWatcher := watcher.New(db.Collection(mongostore.CollTransactions), asynqClient, logging.WithComponent("watcher"))
	go func() {
		if err := txWatcher.Run(ctx); err != nil && ctx.Err() == nil {
			logging.CaptureError(err, "transaction watcher stopped")
		}
	}()

	logging.Logger.Info("Worker started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("Shutting down worker...")

	stop()
	scheduler.Shutdown()
	server.Shutdown()

	logging.Logger.Info("Worker exited")
}
