package rbac

import "strings"

// ResourceFuncionario is the casbin object guarding the funcionario routes.
const ResourceFuncionario = "funcionario"

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions() ([]RolePermissionRow, error)
}

type RolePermissionRow struct {
	Role     string
	Resource string
	Action   string
}

type staticRepository struct {
	rows []RolePermissionRow
}

// NewStaticRepository seeds the policy table: adminRole gets every action
// on the funcionario resource.
func NewStaticRepository(adminRole string) Repository {
	adminRole = strings.TrimSpace(adminRole)
	if adminRole == "" {
		adminRole = "ADMIN"
	}
	return &staticRepository{rows: []RolePermissionRow{
		{Role: adminRole, Resource: ResourceFuncionario, Action: "*"},
	}}
}

func (r *staticRepository) GetRolePermissions() ([]RolePermissionRow, error) {
	out := make([]RolePermissionRow, len(r.rows))
	copy(out, r.rows)
	return out, nil
}
