package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Policy rules keyed by role. Roles come from the identity token, so the
// policy set is static: admin inherits everything employee can do.
var policies = [][]string{
	{"employee", "attendance", "read"},
	{"employee", "attendance", "create"},
	{"employee", "tasklog", "read"},
	{"employee", "tasklog", "create"},
	{"employee", "tasklog", "update"},
	{"employee", "tasklog", "delete"},
	{"employee", "workinghour", "read"},
	{"employee", "holiday", "read"},
	{"employee", "leave", "read"},
	{"employee", "leave", "create"},
	{"employee", "leave", "cancel"},
	{"employee", "leavequota", "read"},
	{"employee", "report", "read"},
	{"employee", "qrcode", "scan"},

	{"admin", "attendance", "manage"},
	{"admin", "workinghour", "manage"},
	{"admin", "holiday", "manage"},
	{"admin", "leave", "approve"},
	{"admin", "leave", "delete"},
	{"admin", "leavequota", "manage"},
	{"admin", "qrcode", "generate"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	// Admin mewarisi seluruh hak employee
	if _, err := enforcer.AddGroupingPolicy("admin", "employee"); err != nil {
		return nil, err
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
