package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/arts-admin-api/internal/models"
	appErrors "github.com/noah-isme/arts-admin-api/pkg/errors"
	"github.com/noah-isme/arts-admin-api/pkg/response"
)

// Style selects how a rejected request is answered.
type Style int

const (
	// StyleJSON answers 401 with the failure envelope.
	StyleJSON Style = iota
	// StyleRedirect sends browsers to the login page.
	StyleRedirect
)

const policyModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj)
`

var (
	allRoles   = []models.UserRole{models.RoleHead, models.RoleStaff, models.RoleCentral, models.RoleAdmin}
	writeRoles = []models.UserRole{models.RoleHead, models.RoleStaff}
)

// DefaultPolicies maps endpoint names to the roles allowed to call them. A trailing * matches a name prefix.
var DefaultPolicies = map[string][]models.UserRole{
	"borrowing.list":          allRoles,
	"borrowing.export":        allRoles,
	"repairs.list":            allRoles,
	"distribution.campus":     allRoles,
	"distribution.college":    allRoles,
	"distribution.groups":     allRoles,
	"students.profile":        allRoles,
	"events.list":             allRoles,
	"events.create":           writeRoles,
	"events.delete":           writeRoles,
	"students.cultural_group": writeRoles,
	"pages.*":                 allRoles,
}

// Policy enforces the endpoint table with casbin.
type Policy struct {
	enforcer  *casbin.SyncedEnforcer
	loginPath string
	failures  failureRecorder
	logger    *zap.Logger
}

type failureRecorder interface {
	RecordAuthorizationFailure(endpoint string)
}

// NewPolicy loads policies into an in-memory enforcer.
func NewPolicy(policies map[string][]models.UserRole, loginPath string, failures failureRecorder, logger *zap.Logger) (*Policy, error) {
	m, err := model.NewModelFromString(policyModel)
	if err != nil {
		return nil, fmt.Errorf("load policy model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}
	rules := make([][]string, 0, len(policies)*len(allRoles))
	for endpoint, roles := range policies {
		for _, role := range roles {
			rules = append(rules, []string{string(role), endpoint})
		}
	}
	if len(rules) > 0 {
		if _, err := enforcer.AddPolicies(rules); err != nil {
			return nil, fmt.Errorf("add policies: %w", err)
		}
	}
	if loginPath == "" {
		loginPath = "/login"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Policy{enforcer: enforcer, loginPath: loginPath, failures: failures, logger: logger}, nil
}

// Allowed reports whether role may call endpoint.
func (p *Policy) Allowed(role models.UserRole, endpoint string) bool {
	ok, err := p.enforcer.Enforce(string(role), endpoint)
	if err != nil {
		p.logger.Error("policy evaluation failed", zap.String("endpoint", endpoint), zap.Error(err))
		return false
	}
	return ok
}

// Authorize rejects callers that are anonymous or whose role is not allowed on endpoint.
func (p *Policy) Authorize(endpoint string, style Style) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := CurrentAuth(c)
		if auth.IsAuthenticated && p.Allowed(auth.Role, endpoint) {
			c.Next()
			return
		}

		if p.failures != nil {
			p.failures.RecordAuthorizationFailure(endpoint)
		}
		if style == StyleRedirect {
			status := http.StatusSeeOther
			if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
				status = http.StatusFound
			}
			c.Redirect(status, p.loginPath)
			c.Abort()
			return
		}

		message := "Unauthorized access"
		if auth.IsAuthenticated {
			message = "You do not have permission to perform this action"
		}
		response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, message))
	}
}
