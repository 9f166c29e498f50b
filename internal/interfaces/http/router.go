package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "edulearn/docs"
	"edulearn/internal/infrastructure/config"
	"edulearn/internal/interfaces/http/middleware"
	"edulearn/internal/interfaces/http/routes"
	"edulearn/internal/interfaces/http/validation"
	"edulearn/internal/shared/logger"
)

const apiPrefix = "/api/v1"

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Router, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}
	return &Router{Container: NewContainer(db, cfg, log)}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.AccessLogger(r.log))
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.SecurityHeaders())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", r.hdlrs.healthHandler.Health)

	if r.cfg.Server.Mode != gin.ReleaseMode {
		r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.engine.Group(apiPrefix)

	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler: r.hdlrs.planHandler,
	})
	routes.SetupSchoolRoutes(api, &routes.SchoolRouteConfig{
		SchoolHandler:    r.hdlrs.schoolHandler,
		AuthMiddleware:   r.authMiddleware,
		AccessMiddleware: r.accessMiddleware,
	})
	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.hdlrs.subscriptionHandler,
		AuthMiddleware:      r.authMiddleware,
		AccessMiddleware:    r.accessMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
