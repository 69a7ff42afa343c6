package services

import (
	"strings"

	"wealthdesk/internal/config"
	"wealthdesk/internal/core/domain"
	"wealthdesk/internal/pkg/jwt"
)

// GateAction is what the route gate tells the transport layer to do
type GateAction string

const (
	GateAllow    GateAction = "ALLOW"
	GateRedirect GateAction = "REDIRECT"
)

// DenyReason records internally why a request was turned away. The
// external behavior collapses all reasons into the same redirect; the
// reason exists for logging and tests.
type DenyReason string

const (
	DenyNone         DenyReason = ""
	DenyNoToken      DenyReason = "no_token"
	DenyTokenInvalid DenyReason = "token_invalid"
	DenyRoleMismatch DenyReason = "role_mismatch"
)

// GateDecision is the outcome of evaluating one request
type GateDecision struct {
	Action GateAction
	Target string     // redirect target when Action is GateRedirect
	Reason DenyReason // why the request was denied, if it was
	Claims *jwt.Claims

	// NewAccessToken is set when the access token was expired but the
	// refresh token verified: the gate mints a replacement and the
	// transport layer must install it on the response.
	NewAccessToken string
}

// rolePrefix binds a path prefix to the role it requires
type rolePrefix struct {
	prefix string
	role   domain.Role
}

// GateService decides, per request, whether protected content may be
// served. It is a pure function of the request path and the two
// cookie-carried tokens; it never mutates state itself.
type GateService struct {
	secret     string
	accessMins int

	publicExact    map[string]struct{}
	publicPrefixes []string
	rolePrefixes   []rolePrefix
}

// NewGateService creates a new route-gate service
func NewGateService(cfg *config.Config) *GateService {
	return &GateService{
		secret:     cfg.JWT.Secret,
		accessMins: cfg.JWT.AccessTokenMins,
		publicExact: map[string]struct{}{
			"/":                {},
			"/login":           {},
			"/health":          {},
			"/api/auth/logout": {},
		},
		publicPrefixes: []string{
			"/api/auth/login",
			"/api/auth/register",
			"/api/auth/refresh",
			"/api/otp/",
			"/swagger",
			"/static/",
		},
		rolePrefixes: []rolePrefix{
			{prefix: "/admin", role: domain.RoleAdmin},
			{prefix: "/api/admin", role: domain.RoleAdmin},
			{prefix: "/client", role: domain.RoleInvestor},
			{prefix: "/api/investor", role: domain.RoleInvestor},
		},
	}
}

// Evaluate inspects the request path and tokens and returns the gate's
// decision. Verification failures are treated as absence of a valid
// session, never surfaced as distinguishable errors.
func (g *GateService) Evaluate(path, accessToken, refreshToken string) *GateDecision {
	if g.IsPublic(path) {
		return &GateDecision{Action: GateAllow}
	}

	// Both tokens absent: redirect without attempting verification
	if accessToken == "" && refreshToken == "" {
		return g.denyToLogin(path, DenyNoToken)
	}

	if accessToken != "" {
		if claims, err := jwt.Validate(accessToken, g.secret); err == nil {
			return g.checkRole(path, claims, "")
		}
	}

	// Access token absent or invalid: fall back to the refresh token and,
	// when it verifies, mint a replacement access token in the same pass.
	if refreshToken != "" {
		claims, err := jwt.Validate(refreshToken, g.secret)
		if err == nil {
			newAccess, genErr := jwt.GenerateAccessToken(
				claims.SubjectID, claims.Email, claims.Role, g.secret, g.accessMins)
			if genErr != nil {
				return g.denyToLogin(path, DenyTokenInvalid)
			}
			return g.checkRole(path, claims, newAccess)
		}
	}

	return g.denyToLogin(path, DenyTokenInvalid)
}

// IsPublic reports whether a path bypasses all checks
func (g *GateService) IsPublic(path string) bool {
	if _, ok := g.publicExact[path]; ok {
		return true
	}
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// checkRole applies the role requirement bound to the path prefix. A
// mismatch is a silent redirect home, not an error page.
func (g *GateService) checkRole(path string, claims *jwt.Claims, newAccess string) *GateDecision {
	for _, rp := range g.rolePrefixes {
		if strings.HasPrefix(path, rp.prefix) && claims.Role != string(rp.role) {
			return &GateDecision{
				Action: GateRedirect,
				Target: "/",
				Reason: DenyRoleMismatch,
			}
		}
	}
	return &GateDecision{
		Action:         GateAllow,
		Claims:         claims,
		NewAccessToken: newAccess,
	}
}

// denyToLogin redirects to the login page for the role the path implies
func (g *GateService) denyToLogin(path string, reason DenyReason) *GateDecision {
	role := domain.RoleInvestor
	if strings.HasPrefix(path, "/admin") || strings.HasPrefix(path, "/api/admin") {
		role = domain.RoleAdmin
	}
	return &GateDecision{
		Action: GateRedirect,
		Target: "/login?role=" + string(role),
		Reason: reason,
	}
}
