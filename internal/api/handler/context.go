package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware. A
// missing username means the middleware did not run on this route; reject
// rather than act on behalf of nobody.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return username, role, nil
}
