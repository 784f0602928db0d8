package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/server/serializer"
	"github.com/mdouchement/bucketlist/internal/server/service"
)

const msgUserNotFound = "User does not exist"

// user contains all user management handlers.
type user struct {
	users *service.UserService
}

// List returns all the users.
func (h *user) List(c echo.Context) error {
	users, err := h.users.List(currentUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Users(users))
}

// Show returns the requested user.
func (h *user) Show(c echo.Context) error {
	id, err := paramID(c, "id", msgUserNotFound)
	if err != nil {
		return err
	}

	user, err := h.users.Get(currentUserID(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.User(user))
}

// Update changes the username and/or the password of the current user.
func (h *user) Update(c echo.Context) error {
	id, err := paramID(c, "id", msgUserNotFound)
	if err != nil {
		return err
	}

	var params service.UpdateUserParams
	if err = c.Bind(&params); err != nil {
		return err
	}

	user, err := h.users.Update(currentUserID(c), id, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.User(user))
}

// Delete removes the requested user and all its data.
func (h *user) Delete(c echo.Context) error {
	id, err := paramID(c, "id", msgUserNotFound)
	if err != nil {
		return err
	}

	user, err := h.users.Delete(currentUserID(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"Message": fmt.Sprintf("User %s deleted successfully", user.Username),
	})
}
