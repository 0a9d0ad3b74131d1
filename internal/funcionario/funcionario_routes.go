package funcionario

import (
	"time"

	"hr-service/internal/middleware"
	"hr-service/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const idempotencyTTL = 24 * time.Hour

type RouteDeps struct {
	Handler     *Handler
	RBACService middleware.RBACService
	JWTSecret   string
	Redis       *redis.Client // optional; nil disables Idempotency-Key replay
	Logger      *zap.Logger
}

func RegisterRoutes(r *gin.RouterGroup, deps RouteDeps) {
	funcionarios := r.Group("/funcionarios")
	funcionarios.Use(middleware.AuthMiddleware(deps.JWTSecret))
	funcionarios.Use(middleware.ExtractUserID())
	funcionarios.Use(middleware.ContextLogger(deps.Logger))
	{
		funcionarios.GET("",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceFuncionario, "read"),
			deps.Handler.GetAll,
		)

		funcionarios.GET("/:pessoaId",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceFuncionario, "read"),
			deps.Handler.GetByID,
		)

		funcionarios.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceFuncionario, "create"),
			middleware.Idempotency(deps.Redis, idempotencyTTL, deps.Logger),
			deps.Handler.Create,
		)

		funcionarios.PUT("/:pessoaId",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceFuncionario, "update"),
			deps.Handler.Update,
		)

		funcionarios.PATCH("/:pessoaId/desativar",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceFuncionario, "deactivate"),
			deps.Handler.Deactivate,
		)

		funcionarios.DELETE("/:pessoaId",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(deps.RBACService, rbac.ResourceFuncionario, "delete"),
			deps.Handler.Delete,
		)
	}
}
