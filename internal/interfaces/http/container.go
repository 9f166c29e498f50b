package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"edulearn/internal/application/payment/paymentgateway"
	schoolUsecases "edulearn/internal/application/school/usecases"
	subdto "edulearn/internal/application/subscription/dto"
	subscriptionUsecases "edulearn/internal/application/subscription/usecases"
	"edulearn/internal/domain/payment"
	"edulearn/internal/infrastructure/auth"
	"edulearn/internal/infrastructure/cache"
	"edulearn/internal/infrastructure/config"
	"edulearn/internal/infrastructure/email"
	"edulearn/internal/interfaces/http/handlers"
	"edulearn/internal/interfaces/http/middleware"
	shareddb "edulearn/internal/shared/db"
	"edulearn/internal/shared/logger"
)

const redisPingTimeout = 5 * time.Second

// Container holds infrastructure components, repositories, use cases,
// handlers and middlewares, wired together in dependency order.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	authMiddleware   *middleware.AuthMiddleware
	accessMiddleware *middleware.SubscriptionAccessMiddleware

	subscriptionCache *cache.RedisCurrentSubscriptionCache
	mapper            *subdto.SubscriptionMapper
}

func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, Repositories, Auth
	c.initInfrastructure()

	// Section 2: Subscription lifecycle - UseCases, Gateway, Receipts
	c.initSubscription()

	// Section 3: Handlers and access middleware
	c.initHandlers()

	return c
}

func (c *Container) initInfrastructure() {
	c.redis = initRedis(c.cfg, c.log)
	c.repos = newRepositories(c.db)

	jwtSvc := auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, c.log)

	if c.redis != nil {
		c.subscriptionCache = cache.NewRedisCurrentSubscriptionCache(c.redis, c.cfg.Subscription.AccessCacheTTL, c.log)
	}
}

// initRedis returns nil when Redis is disabled or unreachable; the current
// subscription is then read from the database on every gated request.
func initRedis(cfg *config.Config, log logger.Interface) *redis.Client {
	if !cfg.Redis.Enabled {
		log.Infow("Redis disabled, subscription cache off")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, subscription cache off", "addr", cfg.Redis.GetAddr(), "error", err)
		_ = client.Close()
		return nil
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return client
}

func newPaymentGateway(cfg *config.Config, log logger.Interface) paymentgateway.PaymentGateway {
	if cfg.PayOS.Gateway == "mock" {
		log.Warnw("using mock payment gateway, checkout links return immediately as paid")
		return paymentgateway.NewMockGateway()
	}
	return paymentgateway.NewPayOSGateway(paymentgateway.PayOSConfig{
		ClientID:    cfg.PayOS.ClientID,
		APIKey:      cfg.PayOS.APIKey,
		ChecksumKey: cfg.PayOS.ChecksumKey,
		BaseURL:     cfg.PayOS.BaseURL,
		Timeout:     cfg.PayOS.Timeout,
	}, log)
}

func (c *Container) initSubscription() {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	txMgr := shareddb.NewTransactionManager(c.db)
	c.mapper = subdto.NewSubscriptionMapper()

	ucs := &allUseCases{}
	c.ucs = ucs

	ucs.createSchoolUC = schoolUsecases.NewCreateSchoolUseCase(repos.schoolRepo, log)
	ucs.getSchoolUC = schoolUsecases.NewGetSchoolUseCase(repos.schoolRepo, log)

	ucs.createSubscriptionUC = subscriptionUsecases.NewCreateSubscriptionUseCase(
		repos.schoolRepo, repos.planRepo, repos.subscriptionRepo, repos.transactionRepo,
		newPaymentGateway(cfg, log), payment.NewOrderCodeGenerator(), txMgr,
		subscriptionUsecases.CheckoutURLs{ReturnURL: cfg.PayOS.ReturnURL, CancelURL: cfg.PayOS.CancelURL},
		log,
	)
	ucs.confirmPaymentReturnUC = subscriptionUsecases.NewConfirmPaymentReturnUseCase(
		repos.schoolRepo, repos.planRepo, repos.subscriptionRepo, repos.transactionRepo, txMgr, log,
	)
	ucs.getCurrentSubscriptionUC = subscriptionUsecases.NewGetCurrentSubscriptionUseCase(repos.subscriptionRepo, log)
	ucs.listPlansUC = subscriptionUsecases.NewListPlansUseCase(repos.planRepo, c.mapper, log)

	if c.subscriptionCache != nil {
		ucs.createSubscriptionUC.SetCache(c.subscriptionCache)
		ucs.confirmPaymentReturnUC.SetCache(c.subscriptionCache)
		ucs.getCurrentSubscriptionUC.SetCache(c.subscriptionCache)
	}

	if cfg.Email.Enabled {
		sender := email.NewSMTPEmailService(cfg.Email)
		ucs.confirmPaymentReturnUC.SetNotifier(email.NewReceiptNotifier(sender, log))
	}
}

func (c *Container) initHandlers() {
	cfg := c.cfg
	log := c.log
	ucs := c.ucs

	c.accessMiddleware = middleware.NewSubscriptionAccessMiddleware(
		ucs.getCurrentSubscriptionUC,
		cfg.Subscription.BootstrapRoutes,
		cfg.Subscription.GracePeriodDays,
		log,
	)

	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(checks, log),
		schoolHandler: handlers.NewSchoolHandler(ucs.createSchoolUC, ucs.getSchoolUC, log),
		planHandler:   handlers.NewPlanHandler(ucs.listPlansUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			ucs.createSubscriptionUC,
			ucs.getCurrentSubscriptionUC,
			ucs.confirmPaymentReturnUC,
			ucs.getSchoolUC,
			c.mapper,
			cfg.Subscription.GracePeriod(),
			log,
		),
	}
}

// Shutdown releases connections owned by the container. The database is
// closed by the caller that opened it.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}
