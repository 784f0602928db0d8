package middlewares

import (
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/server/service"
)

// CurrentUserIDContextKey is the key to retrieve the current_user id from echo.Context.
const CurrentUserIDContextKey = "current_user_id"

// Authenticate resolves the token of the Authorization header and stores the current_user id into echo.Context.
func Authenticate(guard *service.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := guard.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			// Store current_user id for handlers.
			c.Set(CurrentUserIDContextKey, id)
			return next(c)
		}
	}
}
