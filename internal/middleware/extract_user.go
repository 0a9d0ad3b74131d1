package middleware

import (
	"net/http"

	"hr-service/internal/shared/apperror"
	"hr-service/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID promotes the authenticated user_id to user_id_validated,
// which the logging, rate limit and idempotency layers key on.
func ExtractUserID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, exists := ctx.Get("user_id")
		if !exists {
			response.Abort(ctx, http.StatusUnauthorized, apperror.CodeUnauthorized, "User is not authenticated")
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			response.Abort(ctx, http.StatusUnauthorized, "INVALID_USER_ID", "Invalid user_id format")
			return
		}

		ctx.Set("user_id_validated", userIDStr)
		ctx.Next()
	}
}
