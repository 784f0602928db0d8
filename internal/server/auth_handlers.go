package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/server/service"
)

// auth contains all authentication handlers.
type auth struct {
	users *service.UserService
}

///// Register
////
//

// Register handler is used to register the user.
func (h *auth) Register(c echo.Context) error {
	// Filter params
	var params service.RegisterParams
	if err := c.Bind(&params); err != nil {
		return err
	}

	if _, err := h.users.Register(params); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"Message": "New user registered successfully",
	})
}

///// Login
////
//

// Login handler is used to authenticate the user and generate its token.
func (h *auth) Login(c echo.Context) error {
	// Filter params
	var params service.LoginParams
	if err := c.Bind(&params); err != nil {
		return err
	}

	login, err := h.users.Login(params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, login)
}

///// Logout
////
//

// Logout handler only acknowledges the request, tokens are not revocable.
func (h *auth) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"Message": "Logged out. The token remains valid until its expiration",
	})
}
