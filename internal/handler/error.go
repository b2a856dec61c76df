package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/view"
)

// TriggerError handles GET /error/trigger-error. It deliberately raises a
// failure so the central error responder can be exercised end to end.
func TriggerError(c echo.Context) error {
	return errors.New("intentional error triggered for testing purposes")
}

// NewHTTPErrorHandler builds the central error responder. It logs the
// original cause and renders the status-coded error page. The user-safe
// detail carried by an *echo.HTTPError is shown for every status except
// 404, which always gets the generic missing-page text; plain errors are
// never echoed to the client.
func NewHTTPErrorHandler(cls *repository.ClassificationRepo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		detail := ""
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if s, ok := he.Message.(string); ok {
				detail = s
			}
		}
		log.Printf("error responder: %v (method=%s path=%s status=%d)",
			err, c.Request().Method, c.Request().URL.Path, code)

		title := "Server Error"
		message := "Oh no! There was a crash. Maybe try a different route?"
		if code == http.StatusNotFound {
			title = "404 Not Found"
			message = "Sorry, the page you requested does not exist."
		} else if detail != "" {
			message = detail
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		var nav []view.NavItem
		if list, lerr := cls.List(ctx); lerr == nil {
			// A broken database must not keep the error page itself from
			// rendering; the nav is just left empty.
			nav = view.Nav(list)
		}

		p := view.ErrorPage{
			Page:    view.Page{Title: title, Nav: nav},
			Status:  code,
			Message: message,
		}
		if rerr := c.Render(code, "errors/error", p); rerr != nil {
			log.Printf("error responder: render failed: %v", rerr)
			_ = c.String(code, message)
		}
	}
}
