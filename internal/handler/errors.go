package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"packable/internal/errors"
)

// ErrorHandler is the terminal echo error handler. Every error leaves as
// {"error": {"message": ..., "status": ...}}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *errors.HTTPError
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		// Routing failures, body size limits and other framework errors.
		httpErr = errors.NewHTTPError(echoErr.Code, fmt.Sprint(echoErr.Message))
		if echoErr.Internal != nil {
			log.Debug().Err(echoErr.Internal).Int("status", echoErr.Code).Msg("echo error")
		}
	} else {
		httpErr = errors.MapErrorToHTTP(err)
	}

	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.StatusCode)
	} else {
		writeErr = c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if writeErr != nil {
		log.Error().Err(writeErr).Msg("write error response")
	}
}
