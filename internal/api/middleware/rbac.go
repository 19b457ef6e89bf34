package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

// RBAC gates a route on the role claim set by the Auth middleware. Admin
// access goes through domain.Role.CanAdminister, the single predicate for
// admin rights.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, _ := c.Get("role").(string)
			role := domain.Role(claim)

			for _, allowed := range allowedRoles {
				if allowed == domain.RoleAdmin {
					if role.CanAdminister() {
						return next(c)
					}
					continue
				}
				if role == allowed {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
