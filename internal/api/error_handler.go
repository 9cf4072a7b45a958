package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/api/middleware"
	"github.com/servicehub/portal/internal/api/view"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

// errorResponse is the JSON error envelope of the /api routes.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders JSON for /api routes and the error page everywhere else.
func NewHTTPErrorHandler(resolver *policy.Resolver, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if strings.HasPrefix(c.Request().URL.Path, "/api/") || c.Echo().Renderer == nil {
			_ = c.JSON(code, errorResponse{Error: msg})
			return
		}

		sess := middleware.SessionFrom(c)
		rerr := c.Render(code, view.ErrorTemplate, view.Page{
			Title:       http.StatusText(code),
			Session:     sess,
			Affordances: resolver.Affordances(sess.Role),
			Data:        view.ErrorData{Status: code, Message: msg},
		})
		if rerr != nil {
			log.Error().Err(rerr).Msg("failed to render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "please sign in"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusConflict, "confirmation required"
	case domain.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	}

	// Any other backend answer is a failed upstream call.
	var sc domain.UserFacing
	if errors.As(err, &sc) {
		return http.StatusBadGateway, sc.UserMessage()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
