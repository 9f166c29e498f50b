// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/interfaces/http/handlers"
	"edulearn/internal/interfaces/http/middleware"
	"edulearn/internal/shared/authorization"
)

// SubscriptionRouteConfig contains dependencies for school subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler *handlers.SubscriptionHandler
	AuthMiddleware      *middleware.AuthMiddleware
	AccessMiddleware    *middleware.SubscriptionAccessMiddleware
}

// SetupSubscriptionRoutes configures:
//
//	POST /subscriptions                create or upgrade, returns a checkout link
//	GET  /subscriptions/current        current subscription with grace state
//	GET  /subscriptions/payos-return   PayOS browser redirect after checkout
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	subscriptions := api.Group("/subscriptions")
	{
		// The redirect carries no bearer token; the order code is the credential.
		subscriptions.GET("/payos-return", cfg.SubscriptionHandler.PayOSReturn)

		authed := subscriptions.Group("")
		authed.Use(cfg.AuthMiddleware.RequireAuth())
		{
			// Renewing must stay possible after the subscription has lapsed.
			authed.POST("",
				cfg.AccessMiddleware.Require(vo.AccessNone),
				authorization.RequireCapability(authorization.CapManageSubscription),
				cfg.SubscriptionHandler.CreateSubscription,
			)
			authed.GET("/current",
				cfg.AccessMiddleware.Require(vo.AccessReadOnly),
				authorization.RequireCapability(authorization.CapViewSubscription),
				cfg.SubscriptionHandler.GetCurrentSubscription,
			)
		}
	}
}
