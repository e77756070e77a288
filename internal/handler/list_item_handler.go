package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"packable/internal/auth"
	"packable/internal/model"
	"packable/internal/service"
)

// ListItemHandler handles packing list item endpoints.
type ListItemHandler struct {
	items service.ListItemService
	lists service.ListService
}

// NewListItemHandler creates a new list item handler.
func NewListItemHandler(items service.ListItemService, lists service.ListService) *ListItemHandler {
	return &ListItemHandler{items: items, lists: lists}
}

// CreateItemRequest adds an item to the list named by list_id.
type CreateItemRequest struct {
	ListID int `json:"list_id" validate:"required,min=1"`
	NewItemRequest
}

// UpdateItemRequest is a partial item update. Omitted fields are left unchanged.
type UpdateItemRequest struct {
	Category *string `json:"category" validate:"omitempty,min=1,max=100"`
	Item     *string `json:"item" validate:"omitempty,min=1,max=255"`
	Qty      *int    `json:"qty"`
}

// ListItemsResponse wraps an item collection.
type ListItemsResponse struct {
	ListItems []model.ListItem `json:"listItems"`
}

// ListItemResponse wraps a single item.
type ListItemResponse struct {
	ListItem *model.ListItem `json:"listItem"`
}

// ListItems godoc
// @Summary List every item (admin)
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListItemsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /items [get]
func (h *ListItemHandler) ListItems(c echo.Context) error {
	items, err := h.items.ListItems(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListItemsResponse{ListItems: items})
}

// CreateItem godoc
// @Summary Add an item to a list
// @Description The caller must own list_id unless they are an admin.
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Item payload"
// @Success 201 {object} ListItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ListItemHandler) CreateItem(c echo.Context) error {
	var req CreateItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ownsList := auth.Owner(func(r auth.Request) (string, error) {
		return h.lists.Owner(r.Context(), req.ListID)
	})
	if err := auth.Evaluate(CurrentClaims(c), GateRequest(c), ownsList); err != nil {
		return err
	}

	item, err := h.items.CreateItem(c.Request().Context(), service.NewListItem{
		ListID:   req.ListID,
		Category: req.Category,
		Item:     req.Item,
		Qty:      req.Qty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ListItemResponse{ListItem: item})
}

// GetItem godoc
// @Summary Get an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} ListItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ListItemHandler) GetItem(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	item, err := h.items.GetItem(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListItemResponse{ListItem: item})
}

// UpdateItem godoc
// @Summary Partially update an item
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields to change"
// @Success 200 {object} ListItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [patch]
func (h *ListItemHandler) UpdateItem(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.items.UpdateItem(c.Request().Context(), id, service.ListItemUpdate{
		Category: req.Category,
		Item:     req.Item,
		Qty:      req.Qty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListItemResponse{ListItem: item})
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags items
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} DeletedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [delete]
func (h *ListItemHandler) DeleteItem(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.items.DeleteItem(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeletedResponse{Deleted: id})
}
