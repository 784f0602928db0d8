package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/blerror"
	"github.com/mdouchement/bucketlist/internal/server/serializer"
	"github.com/mdouchement/bucketlist/internal/server/service"
)

const msgListNotFound = "Bucketlist does not exist"

// bucketlist contains all bucketlist handlers.
type bucketlist struct {
	lists *service.BucketlistService
}

///// List
////
//

// List returns a page of the current user's bucketlists.
// Query params: q (name search), page and limit.
func (h *bucketlist) List(c echo.Context) error {
	params := h.lists.ListParams()
	err := echo.QueryParamsBinder(c).
		String("q", &params.Query).
		Int("page", &params.Page).
		Int("limit", &params.Limit).
		BindError()
	if err != nil {
		return blerror.Validation("Page and limit should be integers")
	}

	page, err := h.lists.List(currentUserID(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.BucketlistPage(page))
}

///// Create
////
//

// Create adds a new bucketlist.
func (h *bucketlist) Create(c echo.Context) error {
	var params service.CreateBucketlistParams
	if err := c.Bind(&params); err != nil {
		return err
	}

	list, err := h.lists.Create(currentUserID(c), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"Message":    "Bucketlist added successfully",
		"bucketlist": serializer.Bucketlist(list),
	})
}

///// Show
////
//

// Show returns a bucketlist with its items.
func (h *bucketlist) Show(c echo.Context) error {
	id, err := paramID(c, "id", msgListNotFound)
	if err != nil {
		return err
	}

	details, err := h.lists.Get(currentUserID(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.BucketlistDetails(details))
}

///// Update
////
//

// Update edits a bucketlist.
func (h *bucketlist) Update(c echo.Context) error {
	id, err := paramID(c, "id", msgListNotFound)
	if err != nil {
		return err
	}

	var params service.UpdateBucketlistParams
	if err = c.Bind(&params); err != nil {
		return err
	}

	list, err := h.lists.Update(currentUserID(c), id, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Bucketlist(list))
}

///// Delete
////
//

// Delete removes a bucketlist and its items.
func (h *bucketlist) Delete(c echo.Context) error {
	id, err := paramID(c, "id", msgListNotFound)
	if err != nil {
		return err
	}

	if _, err = h.lists.Delete(currentUserID(c), id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"Message": "Bucketlist deleted successfully",
	})
}
