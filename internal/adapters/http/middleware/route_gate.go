package middleware

import (
	"log"
	"strings"

	"wealthdesk/internal/config"
	"wealthdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Cookie names carried on every authenticated request
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// RouteGate intercepts every inbound request before it reaches protected
// content and applies the gate service's decision. When the gate minted a
// replacement access token it is installed on the response here, in the
// same pass.
func RouteGate(gate *services.GateService, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(AccessTokenCookie)
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}
		refreshToken := c.Cookies(RefreshTokenCookie)

		decision := gate.Evaluate(c.Path(), accessToken, refreshToken)

		if decision.Action == services.GateRedirect {
			if decision.Reason != services.DenyNone {
				log.Printf("🔒 Gate denied %s: %s", c.Path(), decision.Reason)
			}
			return c.Redirect(decision.Target, fiber.StatusFound)
		}

		if decision.Claims != nil {
			c.Locals("userID", decision.Claims.SubjectID)
			c.Locals("email", decision.Claims.Email)
			c.Locals("role", decision.Claims.Role)
		}

		if decision.NewAccessToken != "" {
			SetAccessCookie(c, cfg, decision.NewAccessToken)
		}

		return c.Next()
	}
}

// SetAccessCookie installs the access-token cookie on the response
func SetAccessCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.JWT.AccessTokenMins * 60,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}

// SetRefreshCookie installs the refresh-token cookie on the response
func SetRefreshCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.JWT.RefreshTokenDays * 24 * 60 * 60,
		Secure:   cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
	})
}
