package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/SebastianBuritica/logistics-ai/domain"
)

// DefaultPolicies is the static role→permission table. The "*" entry grants
// a role every permission.
var DefaultPolicies = [][]string{
	{"admin", "*"},
	{"manager", "view_analytics"},
	{"manager", "manage_fleet"},
	{"manager", "manage_routes"},
	{"user", "view_dashboard"},
	{"user", "create_shipments"},
}

// PermissionServiceImpl implements domain.PermissionService using Casbin
type PermissionServiceImpl struct {
	enforcer *casbin.Enforcer
}

// NewPermissionService creates a permission service and seeds the default
// policies when the enforcer is empty.
func NewPermissionService(enforcer *casbin.Enforcer) (domain.PermissionService, error) {
	policies, err := enforcer.GetPolicy()
	if err != nil {
		return nil, err
	}
	if len(policies) == 0 {
		for _, p := range DefaultPolicies {
			if _, err := enforcer.AddPolicy(p[0], p[1]); err != nil {
				return nil, err
			}
		}
	}
	return &PermissionServiceImpl{enforcer: enforcer}, nil
}

// HasPermission implements domain.PermissionService
func (p *PermissionServiceImpl) HasPermission(role, permission string) (bool, error) {
	return p.enforcer.Enforce(role, permission)
}

// Permissions implements domain.PermissionService
func (p *PermissionServiceImpl) Permissions(role string) ([]string, error) {
	policies, err := p.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, err
	}

	perms := make([]string, 0, len(policies))
	for _, policy := range policies {
		if len(policy) > 1 {
			perms = append(perms, policy[1])
		}
	}
	return perms, nil
}
