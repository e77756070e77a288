package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"packable/internal/auth"
	"packable/internal/errors"
)

// CurrentClaims returns the verified claims of the caller, or nil for anonymous requests.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(auth.ContextKey).(*auth.Claims)
	return claims
}

type gateRequest struct {
	c echo.Context
}

func (r gateRequest) Param(name string) string {
	return r.c.Param(name)
}

func (r gateRequest) Context() context.Context {
	return r.c.Request().Context()
}

// GateRequest adapts an echo context to the request view used by auth gates.
func GateRequest(c echo.Context) auth.Request {
	return gateRequest{c: c}
}

// bind decodes the request body into req and runs struct validation.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return errors.Validation("%s", err.Error())
	}
	return nil
}

// ParseID parses a positive integer identifier named name.
func ParseID(raw, name string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.Validation("invalid %s: %q", name, raw)
	}
	return id, nil
}

// IDParam parses a positive integer path parameter.
func IDParam(c echo.Context, name string) (int, error) {
	return ParseID(c.Param(name), name)
}
