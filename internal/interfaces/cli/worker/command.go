package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	subscriptionUsecases "edulearn/internal/application/subscription/usecases"
	"edulearn/internal/infrastructure/cache"
	"edulearn/internal/infrastructure/config"
	"edulearn/internal/infrastructure/database"
	"edulearn/internal/infrastructure/repository"
	"edulearn/internal/infrastructure/scheduler"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/constants"
	shareddb "edulearn/internal/shared/db"
	"edulearn/internal/shared/logger"
)

var (
	env  string
	once bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run background subscription jobs",
		Long:  `Periodically move subscriptions whose billing period has ended to the expired state.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().BoolVar(&once, "once", false, "Process a single expiry batch and exit")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log := logger.NewLogger().Named("worker")
	log.Infow("starting subscription worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	db := database.Get()
	job := subscriptionUsecases.NewExpireSubscriptionsUseCase(
		repository.NewSchoolSubscriptionRepository(db),
		shareddb.NewTransactionManager(db),
		cfg.Subscription.ExpiryBatchSize,
		log,
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warnw("failed to connect to Redis, cache invalidation skipped", "addr", cfg.Redis.GetAddr(), "error", err)
		} else {
			job.SetCache(cache.NewRedisCurrentSubscriptionCache(redisClient, cfg.Subscription.AccessCacheTTL, log))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if once {
		result, err := job.Execute(ctx)
		if err != nil {
			return fmt.Errorf("expiry run failed: %w", err)
		}
		log.Infow("expiry run finished", "expired", result.Expired, "failed", result.Failed)
		return nil
	}

	sched := scheduler.NewSubscriptionScheduler(job, cfg.Subscription.ExpiryCheckInterval, log)
	sched.Start(ctx)

	<-ctx.Done()
	log.Infow("shutting down worker...")
	sched.Stop()

	log.Infow("worker exited gracefully")
	return nil
}
