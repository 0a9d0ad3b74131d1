package app

import (
	"hr-service/internal/funcionario"
	"hr-service/internal/middleware"
	"hr-service/internal/rbac"
	"hr-service/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg Config,
	deps *infrastructure,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := newEnforcer(cfg)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewStaticRepository(cfg.AdminRole), enforcer, logger)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	funcionarioService := funcionario.NewService(deps.db, deps.repo, deps.publisher, logger)

	// --- Handlers ---
	funcionarioHandler := funcionario.NewHandler(funcionarioService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		funcionario.RegisterRoutes(api, funcionario.RouteDeps{
			Handler:     funcionarioHandler,
			RBACService: rbacService,
			JWTSecret:   cfg.JWTSecret,
			Redis:       deps.redis,
			Logger:      logger,
		})
		rbac.RegisterRoutes(api, rbacHandler,
			middleware.AuthMiddleware(cfg.JWTSecret),
			middleware.ExtractUserID(),
		)
	}

	return nil
}

// newEnforcer uses the built-in role model unless CASBIN_MODEL_PATH points
// at a model file.
func newEnforcer(cfg Config) (*casbin.Enforcer, error) {
	if cfg.CasbinModelPath != "" {
		return infra.NewEnforcerFromFile(cfg.CasbinModelPath)
	}
	return infra.NewEnforcer()
}
