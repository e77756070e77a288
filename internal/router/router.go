package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"packable/internal/auth"
	"packable/internal/handler"
	"packable/internal/service"
)

// Services are the domain services the HTTP layer is built on.
type Services struct {
	Auth  service.AuthService
	Users service.UserService
	Lists service.ListService
	Items service.ListItemService
}

// Register wires routes and middleware.
func Register(e *echo.Echo, jwtService *auth.JWTService, svc Services) {
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(Identify(jwtService))

	authHandler := handler.NewAuthHandler(svc.Auth)
	userHandler := handler.NewUserHandler(svc.Users, svc.Auth)
	listHandler := handler.NewListHandler(svc.Lists, svc.Items)
	itemHandler := handler.NewListItemHandler(svc.Items, svc.Lists)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth/token", authHandler.Token)
	e.POST("/auth/register", authHandler.Register)

	admin := Require(auth.Admin)
	loggedIn := Require(auth.LoggedIn)
	correctUser := Require(auth.CorrectUser)
	ownsList := Require(auth.Owner(listOwner(svc.Lists)))
	ownsItem := Require(auth.Owner(itemOwner(svc.Items)))

	users := e.Group("/users")
	users.GET("", userHandler.ListUsers, admin)
	users.POST("", userHandler.CreateUser, admin)
	users.GET("/:username", userHandler.GetUser, correctUser)
	users.PATCH("/:username", userHandler.UpdateUser, correctUser)
	users.DELETE("/:username", userHandler.DeleteUser, correctUser)

	lists := e.Group("/lists")
	lists.GET("", listHandler.ListLists, admin)
	lists.POST("", listHandler.CreateList, loggedIn)
	lists.GET("/:id", listHandler.GetList, ownsList)
	lists.PATCH("/:id", listHandler.UpdateList, ownsList)
	lists.DELETE("/:id", listHandler.DeleteList, ownsList)
	lists.GET("/:id/forcast", listHandler.Forecast, ownsList)
	lists.GET("/:id/items", listHandler.ListItems, ownsList)
	lists.POST("/:id/items", listHandler.AddItem, ownsList)

	items := e.Group("/items")
	items.GET("", itemHandler.ListItems, admin)
	items.POST("", itemHandler.CreateItem, loggedIn)
	items.GET("/:id", itemHandler.GetItem, ownsItem)
	items.PATCH("/:id", itemHandler.UpdateItem, ownsItem)
	items.DELETE("/:id", itemHandler.DeleteItem, ownsItem)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
