package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"wezacredit-backend/internal/domain/profile"
)

const actorContextKey = "actor"

// Actor resolves Ax-User-Id into a request-scoped profile.Actor with the
// user's strongest role. Requests without a valid header are rejected before
// any handler runs.
func Actor(roles profile.RoleLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Ax-User-Id"})
			}
			if !reHex32.MatchString(userID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid Ax-User-Id"})
			}

			role, err := roles.RoleFor(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "role lookup unavailable"})
			}

			c.Set(actorContextKey, profile.Actor{UserID: userID, Role: role})
			return next(c)
		}
	}
}

// ActorFrom returns the actor resolved by the Actor middleware; the zero
// Actor when the middleware did not run.
func ActorFrom(c echo.Context) profile.Actor {
	a, _ := c.Get(actorContextKey).(profile.Actor)
	return a
}

// RequireDecider rejects actors whose role cannot review or decide on
// applications. Runs after Actor.
func RequireDecider() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !ActorFrom(c).Role.CanDecide() {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}
