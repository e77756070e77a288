package router

import (
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"packable/internal/auth"
	"packable/internal/handler"
	"packable/internal/service"
)

// Identify verifies a bearer token when one is present and stores its claims on the
// context. Missing or invalid tokens leave the request anonymous; gates decide what
// anonymous callers may do.
func Identify(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  auth.ContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})
}

// Require runs gates against the caller before the route handler.
func Require(gates ...auth.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := auth.Evaluate(handler.CurrentClaims(c), handler.GateRequest(c), gates...); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// listOwner resolves the owner of the list named by the :id path parameter.
func listOwner(lists service.ListService) auth.OwnerFunc {
	return func(r auth.Request) (string, error) {
		id, err := handler.ParseID(r.Param("id"), "id")
		if err != nil {
			return "", err
		}
		return lists.Owner(r.Context(), id)
	}
}

// itemOwner resolves the owner of the list holding the item named by the :id path parameter.
func itemOwner(items service.ListItemService) auth.OwnerFunc {
	return func(r auth.Request) (string, error) {
		id, err := handler.ParseID(r.Param("id"), "id")
		if err != nil {
			return "", err
		}
		return items.Owner(r.Context(), id)
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
