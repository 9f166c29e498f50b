package routes

import (
	"github.com/gin-gonic/gin"

	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/interfaces/http/handlers"
	"edulearn/internal/interfaces/http/middleware"
	"edulearn/internal/shared/authorization"
)

// SchoolRouteConfig holds dependencies for school routes.
type SchoolRouteConfig struct {
	SchoolHandler    *handlers.SchoolHandler
	AuthMiddleware   *middleware.AuthMiddleware
	AccessMiddleware *middleware.SubscriptionAccessMiddleware
}

// SetupSchoolRoutes configures school setup routes. POST /schools must be
// listed in subscription.bootstrap_routes so a school admin without a school
// can reach it.
func SetupSchoolRoutes(api *gin.RouterGroup, cfg *SchoolRouteConfig) {
	schools := api.Group("/schools")
	schools.Use(cfg.AuthMiddleware.RequireAuth())
	{
		schools.POST("",
			cfg.AccessMiddleware.Require(vo.AccessReadWrite),
			authorization.RequireCapability(authorization.CapBootstrapSchool),
			cfg.SchoolHandler.CreateSchool,
		)
		schools.GET("/me",
			cfg.AccessMiddleware.Require(vo.AccessReadOnly),
			cfg.SchoolHandler.GetMySchool,
		)
	}
}
