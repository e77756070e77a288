package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"packable/internal/auth"
	"packable/internal/model"
	"packable/internal/service"
)

// ListHandler handles packing list endpoints.
type ListHandler struct {
	lists service.ListService
	items service.ListItemService
}

// NewListHandler creates a new list handler.
func NewListHandler(lists service.ListService, items service.ListItemService) *ListHandler {
	return &ListHandler{lists: lists, items: items}
}

// CreateListRequest creates a list. Only admins may name an owner other than themselves.
type CreateListRequest struct {
	Username        string     `json:"username" validate:"omitempty,max=25"`
	SearchedAddress string     `json:"searched_address" validate:"required,max=255"`
	ArrivalDate     model.Date `json:"arrival_date" swaggertype:"string" example:"2023-05-01"`
	DepartureDate   model.Date `json:"departure_date" swaggertype:"string" example:"2023-05-03"`
}

// UpdateListRequest is a partial list update. Omitted fields are left unchanged.
type UpdateListRequest struct {
	SearchedAddress *string     `json:"searched_address" validate:"omitempty,min=1,max=255"`
	ArrivalDate     *model.Date `json:"arrival_date" swaggertype:"string" example:"2023-05-01"`
	DepartureDate   *model.Date `json:"departure_date" swaggertype:"string" example:"2023-05-03"`
}

// NewItemRequest adds an item to the list named in the path.
type NewItemRequest struct {
	Category string `json:"category" validate:"required,max=100"`
	Item     string `json:"item" validate:"required,max=255"`
	Qty      int    `json:"qty" validate:"required,min=1"`
}

// ListsResponse wraps a list collection.
type ListsResponse struct {
	Lists []model.List `json:"lists"`
}

// ListResponse wraps a single list.
type ListResponse struct {
	List interface{} `json:"list"`
}

// ForecastResponse wraps a list forecast. The key spelling is part of the public API.
type ForecastResponse struct {
	Forecast *service.ListForecast `json:"forcast"`
}

// ItemsResponse wraps the items of one list.
type ItemsResponse struct {
	Items []model.ListItem `json:"items"`
}

// ItemResponse wraps an item added to a list.
type ItemResponse struct {
	Item *model.ListItem `json:"item"`
}

// DeletedResponse names the deleted resource.
type DeletedResponse struct {
	Deleted int `json:"deleted"`
}

// ListLists godoc
// @Summary List every packing list (admin)
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /lists [get]
func (h *ListHandler) ListLists(c echo.Context) error {
	lists, err := h.lists.ListLists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListsResponse{Lists: lists})
}

// CreateList godoc
// @Summary Create a packing list
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateListRequest true "List payload"
// @Success 201 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists [post]
func (h *ListHandler) CreateList(c echo.Context) error {
	var req CreateListRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	claims := CurrentClaims(c)
	owner := claims.Username
	if req.Username != "" && req.Username != claims.Username {
		if err := auth.Evaluate(claims, GateRequest(c), auth.Admin); err != nil {
			return err
		}
		owner = req.Username
	}

	list, err := h.lists.CreateList(c.Request().Context(), service.NewList{
		Username:        owner,
		SearchedAddress: req.SearchedAddress,
		ArrivalDate:     req.ArrivalDate,
		DepartureDate:   req.DepartureDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ListResponse{List: list})
}

// GetList godoc
// @Summary Get a packing list with its items
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id} [get]
func (h *ListHandler) GetList(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	list, err := h.lists.GetList(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{List: list})
}

// UpdateList godoc
// @Summary Partially update a packing list
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param request body UpdateListRequest true "Fields to change"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id} [patch]
func (h *ListHandler) UpdateList(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateListRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	list, err := h.lists.UpdateList(c.Request().Context(), id, service.ListUpdate{
		SearchedAddress: req.SearchedAddress,
		ArrivalDate:     req.ArrivalDate,
		DepartureDate:   req.DepartureDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{List: list})
}

// DeleteList godoc
// @Summary Delete a packing list and its items
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} DeletedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id} [delete]
func (h *ListHandler) DeleteList(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.lists.DeleteList(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeletedResponse{Deleted: id})
}

// Forecast godoc
// @Summary Weather forecast for a list's destination and dates
// @Description Trips ending more than 15 days away are looked up one year earlier; "shifted" reports when that happened.
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /lists/{id}/forcast [get]
func (h *ListHandler) Forecast(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	forecast, err := h.lists.Forecast(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ForecastResponse{Forecast: forecast})
}

// ListItems godoc
// @Summary Items on a packing list
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Success 200 {object} ItemsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id}/items [get]
func (h *ListHandler) ListItems(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	items, err := h.items.ListItemsForList(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ItemsResponse{Items: items})
}

// AddItem godoc
// @Summary Add an item to a packing list
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "List ID"
// @Param request body NewItemRequest true "Item payload"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /lists/{id}/items [post]
func (h *ListHandler) AddItem(c echo.Context) error {
	id, err := IDParam(c, "id")
	if err != nil {
		return err
	}

	var req NewItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.items.CreateItem(c.Request().Context(), service.NewListItem{
		ListID:   id,
		Category: req.Category,
		Item:     req.Item,
		Qty:      req.Qty,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ItemResponse{Item: item})
}
