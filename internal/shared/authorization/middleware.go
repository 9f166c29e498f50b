package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/utils"
)

// RequireCapability rejects callers whose role set does not grant c.
// It expects the auth middleware to have stored the RoleSet in the context.
func RequireCapability(c Capability) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		roles, _ := ctx.Get(constants.ContextKeyRoles)
		set, ok := roles.(RoleSet)
		if !ok || !set.Can(c) {
			utils.ErrorResponse(ctx, http.StatusForbidden, "You do not have permission to perform this action.")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
