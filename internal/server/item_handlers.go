package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/bucketlist/internal/server/serializer"
	"github.com/mdouchement/bucketlist/internal/server/service"
)

const msgItemNotFound = "Bucketlist item does not exist"

// item contains all bucketlist item handlers.
type item struct {
	items *service.ItemService
}

// Create adds a new item to a bucketlist.
func (h *item) Create(c echo.Context) error {
	listID, err := paramID(c, "id", msgListNotFound)
	if err != nil {
		return err
	}

	var params service.CreateItemParams
	if err = c.Bind(&params); err != nil {
		return err
	}

	item, err := h.items.Create(currentUserID(c), listID, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"Message": "Bucketlist item added successfully",
		"item":    serializer.Item(item),
	})
}

// Show returns a bucketlist item.
func (h *item) Show(c echo.Context) error {
	listID, itemID, err := itemParams(c)
	if err != nil {
		return err
	}

	item, err := h.items.Get(currentUserID(c), listID, itemID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Item(item))
}

// Update edits a bucketlist item, it can also move it to another bucketlist.
func (h *item) Update(c echo.Context) error {
	listID, itemID, err := itemParams(c)
	if err != nil {
		return err
	}

	var params service.UpdateItemParams
	if err = c.Bind(&params); err != nil {
		return err
	}

	item, err := h.items.Update(currentUserID(c), listID, itemID, params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Item(item))
}

// Delete removes a bucketlist item.
func (h *item) Delete(c echo.Context) error {
	listID, itemID, err := itemParams(c)
	if err != nil {
		return err
	}

	if _, err = h.items.Delete(currentUserID(c), listID, itemID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"Message": "Bucketlist item deleted successfully",
	})
}

func itemParams(c echo.Context) (listID, itemID int, err error) {
	listID, err = paramID(c, "id", msgListNotFound)
	if err != nil {
		return 0, 0, err
	}

	itemID, err = paramID(c, "item_id", msgItemNotFound)
	return listID, itemID, err
}
