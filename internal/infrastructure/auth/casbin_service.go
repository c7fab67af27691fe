package auth

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// permissionModel matches (role, permission) pairs, with "*" in a policy
// granting every permission to that role.
const permissionModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && (r.obj == p.obj || p.obj == "*")
`

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer over the in-memory permission model.
// Policies are seeded by the app on startup.
func NewCasbinService() (*CasbinService, error) {
	m, err := model.NewModelFromString(permissionModel)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}
