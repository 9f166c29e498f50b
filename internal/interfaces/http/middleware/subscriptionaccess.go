package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/authorization"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
	"edulearn/internal/shared/utils"
)

const (
	msgAccessUnauthorized      = "Unauthorized. User ID or roles not found."
	msgAccessSetupIncomplete   = "School admin must complete school and subscription information before accessing this resource."
	msgAccessInvalidSchool     = "School not found or invalid school ID."
	msgAccessNoSubscription    = "School subscription not found."
	msgAccessPaymentRequired   = "School subscription has expired. Please renew to continue."
	headerSubscriptionGraceEnd = "X-Subscription-Grace-Ends"
)

type currentSubscriptionGetter interface {
	Execute(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error)
}

// SubscriptionAccessMiddleware gates routes on the state of the caller's
// school subscription.
type SubscriptionAccessMiddleware struct {
	currentSubscription currentSubscriptionGetter
	bootstrapRoutes     map[string]struct{}
	gracePeriod         time.Duration
	now                 func() time.Time
	logger              logger.Interface
}

// NewSubscriptionAccessMiddleware builds the gate. bootstrapRoutes are
// "METHOD /full/path" keys a school admin may call before a school exists.
func NewSubscriptionAccessMiddleware(
	currentSubscription currentSubscriptionGetter,
	bootstrapRoutes []string,
	gracePeriodDays int,
	logger logger.Interface,
) *SubscriptionAccessMiddleware {
	if gracePeriodDays < 0 {
		gracePeriodDays = constants.DefaultGracePeriodDays
	}

	routes := make(map[string]struct{}, len(bootstrapRoutes))
	for _, r := range bootstrapRoutes {
		routes[normalizeRouteKey(r)] = struct{}{}
	}

	return &SubscriptionAccessMiddleware{
		currentSubscription: currentSubscription,
		bootstrapRoutes:     routes,
		gracePeriod:         time.Duration(gracePeriodDays) * 24 * time.Hour,
		now:                 biztime.NowUTC,
		logger:              logger,
	}
}

func (m *SubscriptionAccessMiddleware) SetClock(now func() time.Time) {
	m.now = now
}

// Require returns a handler enforcing the given access level. It must run
// after the auth middleware.
func (m *SubscriptionAccessMiddleware) Require(level vo.AccessLevel) gin.HandlerFunc {
	return func(c *gin.Context) {
		if level == vo.AccessNone {
			c.Next()
			return
		}

		userID := c.GetString(constants.ContextKeyUserID)
		rolesVal, _ := c.Get(constants.ContextKeyRoles)
		roles, _ := rolesVal.(authorization.RoleSet)
		if userID == "" || len(roles) == 0 {
			m.abort(c, http.StatusUnauthorized, errors.ErrorTypeUnauthorized, msgAccessUnauthorized)
			return
		}

		if roles.Can(authorization.CapBypassSubscriptionCheck) {
			c.Next()
			return
		}

		rawSchoolID := strings.TrimSpace(c.GetString(constants.ContextKeySchoolID))
		if rawSchoolID == "" && roles.Can(authorization.CapBootstrapSchool) {
			if m.isBootstrapRoute(c) {
				c.Next()
				return
			}
			m.abort(c, http.StatusForbidden, errors.ErrorTypeForbidden, msgAccessSetupIncomplete)
			return
		}

		schoolID, err := uuid.Parse(rawSchoolID)
		if err != nil || schoolID == uuid.Nil {
			m.abort(c, http.StatusNotFound, errors.ErrorTypeNotFound, msgAccessInvalidSchool)
			return
		}

		sub, err := m.currentSubscription.Execute(c.Request.Context(), schoolID)
		if err != nil {
			if errors.IsNotFoundError(err) {
				m.abort(c, http.StatusNotFound, errors.ErrorTypeNotFound, msgAccessNoSubscription)
				return
			}
			m.logger.Errorw("failed to resolve current subscription for access check",
				"school_id", schoolID,
				"user_id", userID,
				"error", err,
			)
			m.abort(c, http.StatusInternalServerError, errors.ErrorTypeInternal, "Internal server error occurred")
			return
		}
		if sub == nil {
			m.abort(c, http.StatusNotFound, errors.ErrorTypeNotFound, msgAccessNoSubscription)
			return
		}

		decision := subscription.DecideAccess(sub, level, m.now(), m.gracePeriod)
		switch decision.Outcome {
		case subscription.AccessAllowed:
			c.Next()
		case subscription.AccessAllowedInGrace:
			c.Header(headerSubscriptionGraceEnd, sub.EndDate().Add(m.gracePeriod).UTC().Format(time.RFC3339))
			c.Next()
		default:
			m.logger.Infow("subscription access denied",
				"school_id", schoolID,
				"user_id", userID,
				"required", level,
				"expired_for", decision.ExpiredFor,
			)
			m.abort(c, http.StatusPaymentRequired, errors.ErrorTypePaymentRequired, msgAccessPaymentRequired)
		}
	}
}

func (m *SubscriptionAccessMiddleware) isBootstrapRoute(c *gin.Context) bool {
	_, ok := m.bootstrapRoutes[c.Request.Method+" "+c.FullPath()]
	return ok
}

func (m *SubscriptionAccessMiddleware) abort(c *gin.Context, status int, errType errors.ErrorType, message string) {
	c.AbortWithStatusJSON(status, utils.APIResponse{
		Success: false,
		Error:   &utils.ErrorInfo{Type: string(errType), Message: message},
	})
}

func normalizeRouteKey(r string) string {
	fields := strings.Fields(r)
	if len(fields) != 2 {
		return strings.TrimSpace(r)
	}
	return strings.ToUpper(fields[0]) + " " + fields[1]
}
