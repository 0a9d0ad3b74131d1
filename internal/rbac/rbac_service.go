package rbac

import (
	"sync"

	"hr-service/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy() error
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces the enforcer policy with the repository rows.
func (s *service) LoadPolicy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	rolePerms, err := s.repo.GetRolePermissions()
	if err != nil {
		return err
	}
	s.logger.Info("rbac load policy", zap.Int("role_permissions", len(rolePerms)))

	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}
	return nil
}

// Enforce allows the request when at least one role is granted.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, role := range req.Roles {
		if role == "" {
			continue
		}
		allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
		if err != nil {
			s.logger.Error("rbac enforce failed",
				zap.String("role", role),
				zap.String("resource", req.Resource),
				zap.String("action", req.Action),
				zap.Error(err),
			)
			return false, err
		}
		if allowed {
			s.logger.Debug("rbac enforce allowed",
				zap.String("role", role),
				zap.String("resource", req.Resource),
				zap.String("action", req.Action),
			)
			return true, nil
		}
	}

	s.logger.Debug("rbac enforce denied",
		zap.Strings("roles", req.Roles),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
	)
	return false, nil
}
