package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type forbiddenResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SelfOnly restricts a route to the authenticated user's own resource: the
// :id path parameter must match the user id injected by Auth.
func SelfOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get("user_id").(string)
			if userID == "" || c.Param("id") != userID {
				return c.JSON(http.StatusForbidden, forbiddenResponse{
					Message: "not authorized to access this user",
				})
			}
			return next(c)
		}
	}
}
