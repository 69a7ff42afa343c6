package services

import (
	"testing"

	"wealthdesk/internal/config"
	"wealthdesk/internal/pkg/jwt"
)

func newTestGate(t *testing.T) *GateService {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "gate-test-secret",
			AccessTokenMins:  60,
			RefreshTokenDays: 7,
		},
	}
	return NewGateService(cfg)
}

func mintToken(t *testing.T, role string, expiryMins int) string {
	t.Helper()
	tok, err := jwt.GenerateAccessToken("user-1", "u@example.com", role, "gate-test-secret", expiryMins)
	if err != nil {
		t.Fatalf("GenerateAccessToken error: %v", err)
	}
	return tok
}

func TestGate_PublicPathsAlwaysAllowed(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	paths := []string{"/", "/login", "/health", "/api/auth/login", "/api/auth/refresh", "/api/auth/logout", "/swagger/index.html", "/static/app.js"}
	for _, p := range paths {
		d := g.Evaluate(p, "", "")
		if d.Action != GateAllow {
			t.Errorf("path %q: expected allow, got %v (target %q)", p, d.Action, d.Target)
		}
	}

	// logout-all shares a prefix with logout but stays protected
	d := g.Evaluate("/api/auth/logout-all", "", "")
	if d.Action != GateRedirect {
		t.Errorf("/api/auth/logout-all: expected redirect without a session, got %v", d.Action)
	}
}

func TestGate_NoTokensRedirectsWithoutVerification(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	d := g.Evaluate("/client/dashboard", "", "")
	if d.Action != GateRedirect {
		t.Fatalf("expected redirect, got %v", d.Action)
	}
	if d.Target != "/login?role=investor" {
		t.Errorf("target mismatch: got %q", d.Target)
	}
	if d.Reason != DenyNoToken {
		t.Errorf("reason mismatch: got %q want %q", d.Reason, DenyNoToken)
	}
}

func TestGate_AdminPathRedirectsToAdminLogin(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	d := g.Evaluate("/admin/users", "", "")
	if d.Action != GateRedirect || d.Target != "/login?role=admin" {
		t.Fatalf("expected redirect to admin login, got %v %q", d.Action, d.Target)
	}
}

func TestGate_ValidAccessTokenMatchingRole(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	d := g.Evaluate("/client/portfolio", mintToken(t, "investor", 60), "")
	if d.Action != GateAllow {
		t.Fatalf("expected allow, got %v (reason %q)", d.Action, d.Reason)
	}
	if d.Claims == nil || d.Claims.Role != "investor" {
		t.Fatalf("expected investor claims, got %+v", d.Claims)
	}
	if d.NewAccessToken != "" {
		t.Errorf("no new token expected when access token is valid")
	}
}

func TestGate_RoleMismatchRedirectsHome(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	cases := []struct {
		path string
		role string
	}{
		{"/admin/users", "investor"},
		{"/api/admin/investors", "investor"},
		{"/client/dashboard", "admin"},
		{"/api/investor/get-progress", "admin"},
	}
	for _, tc := range cases {
		d := g.Evaluate(tc.path, mintToken(t, tc.role, 60), "")
		if d.Action != GateRedirect || d.Target != "/" {
			t.Errorf("path %q role %q: expected silent redirect home, got %v %q", tc.path, tc.role, d.Action, d.Target)
		}
		if d.Reason != DenyRoleMismatch {
			t.Errorf("path %q: reason mismatch: got %q", tc.path, d.Reason)
		}
	}
}

func TestGate_ExpiredAccessFallsBackToRefresh(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	expired := mintToken(t, "investor", -1)
	refresh, err := jwt.GenerateRefreshToken("user-1", "u@example.com", "investor", "gate-test-secret", 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken error: %v", err)
	}

	d := g.Evaluate("/client/dashboard", expired, refresh)
	if d.Action != GateAllow {
		t.Fatalf("expected allow via refresh, got %v (reason %q)", d.Action, d.Reason)
	}
	if d.NewAccessToken == "" {
		t.Fatal("expected a freshly minted access token")
	}

	claims, err := jwt.Validate(d.NewAccessToken, "gate-test-secret")
	if err != nil {
		t.Fatalf("minted token does not validate: %v", err)
	}
	if claims.SubjectID != "user-1" || claims.Role != "investor" {
		t.Fatalf("minted token carries wrong claims: %+v", claims)
	}
}

func TestGate_BothTokensInvalidRedirects(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	d := g.Evaluate("/client/dashboard", "garbage", "also-garbage")
	if d.Action != GateRedirect {
		t.Fatalf("expected redirect, got %v", d.Action)
	}
	if d.Reason != DenyTokenInvalid {
		t.Errorf("reason mismatch: got %q", d.Reason)
	}
}

func TestGate_RefreshWithWrongRoleStillRoleChecked(t *testing.T) {
	t.Parallel()
	g := newTestGate(t)

	refresh, err := jwt.GenerateRefreshToken("user-1", "u@example.com", "investor", "gate-test-secret", 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken error: %v", err)
	}

	d := g.Evaluate("/admin/users", "", refresh)
	if d.Action != GateRedirect || d.Target != "/" {
		t.Fatalf("expected redirect home on role mismatch, got %v %q", d.Action, d.Target)
	}
}
