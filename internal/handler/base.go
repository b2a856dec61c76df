package handler // handler contains the HTTP handlers behind every route

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/session"
	"github.com/csemotors/motors/internal/view"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

// BaseHandler serves the home page.
type BaseHandler struct {
	Classifications *repository.ClassificationRepo
	Flash           *session.Store
}

func NewBaseHandler(cls *repository.ClassificationRepo, flash *session.Store) *BaseHandler {
	return &BaseHandler{Classifications: cls, Flash: flash}
}

// Home handles GET / and renders the landing page with the classification
// navigation.
func (h *BaseHandler) Home(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	p := view.HomePage{Page: view.Page{
		Title:  "Home",
		Nav:    view.Nav(list),
		Notice: h.Flash.PopFlash(ctx, session.SessionID(c)),
	}}
	return c.Render(http.StatusOK, "index", p)
}
