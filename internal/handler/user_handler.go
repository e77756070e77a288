package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"packable/internal/auth"
	"packable/internal/model"
	"packable/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc         service.UserService
	authService service.AuthService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, authService service.AuthService) *UserHandler {
	return &UserHandler{svc: svc, authService: authService}
}

// CreateUserRequest is an admin's request to add a user.
type CreateUserRequest struct {
	RegisterRequest
	IsAdmin bool `json:"is_admin"`
}

// UpdateUserRequest is a partial user update. Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Password  *string `json:"password" validate:"omitempty,min=5,max=72"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=255"`
	LastName  *string `json:"last_name" validate:"omitempty,min=1,max=255"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	IsAdmin   *bool   `json:"is_admin"`
}

// UsersResponse wraps a user collection.
type UsersResponse struct {
	Users []model.User `json:"users"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User interface{} `json:"user"`
}

// CreatedUserResponse carries the new user and a token issued for them.
type CreatedUserResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// DeletedUserResponse names the deleted user.
type DeletedUserResponse struct {
	Deleted string `json:"deleted"`
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UsersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UsersResponse{Users: users})
}

// GetUser godoc
// @Summary Get a user and their lists
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.GetUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// CreateUser godoc
// @Summary Create a user (admin)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} CreatedUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		return err
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedUserResponse{User: user, Token: token})
}

// UpdateUser godoc
// @Summary Partially update a user
// @Description Only admins may change is_admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.IsAdmin != nil {
		if err := auth.Evaluate(CurrentClaims(c), GateRequest(c), auth.Admin); err != nil {
			return err
		}
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), c.Param("username"), service.UserUpdate{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		IsAdmin:   req.IsAdmin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UserResponse{User: user})
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} DeletedUserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	username := c.Param("username")
	if err := h.svc.DeleteUser(c.Request().Context(), username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DeletedUserResponse{Deleted: username})
}
