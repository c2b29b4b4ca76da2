package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Clinical roles. Admin implicitly satisfies every role check.
const (
	RoleAdmin    = "admin"
	RoleNP       = "np"
	RoleResident = "resident"
	RolePA       = "pa"
)

// ValidRole reports whether role is one of the known clinical roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleNP, RoleResident, RolePA:
		return true
	}
	return false
}

// RequireRole returns middleware that checks the user holds at least
// one of the given roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			have := RoleFromContext(c.Request().Context())
			if have == RoleAdmin {
				return next(c)
			}
			for _, required := range roles {
				if have == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
