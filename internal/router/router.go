// Package router defines how HTTP routes are registered for the site.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/csemotors/motors/internal/handler"
	"github.com/csemotors/motors/internal/middleware"
	"github.com/csemotors/motors/internal/session"
)

// RegisterRoutes registers routes that carry no page content: currently
// only the health check used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterBase registers the home page.
func RegisterBase(e *echo.Echo, b *handler.BaseHandler) {
	e.GET("/", b.Home)
}

// RegisterInventory registers the browse and management routes under /inv.
func RegisterInventory(e *echo.Echo, h *handler.InventoryHandler) {
	g := e.Group("/inv")
	// Management dashboard plus the add/edit/delete flows.
	g.GET("/", h.Management)
	g.POST("/add-classification", h.AddClassification)
	g.POST("/add-inventory", h.AddInventory)
	g.GET("/edit/:inventory_id", h.Edit)
	g.POST("/update", h.Update)
	g.GET("/delete/:inv_id", h.DeleteConfirm)
	g.POST("/delete", h.Delete)
	// Public browse views.
	g.GET("/type/:classification_id", h.BuildByClassification)
	g.GET("/detail/:inv_id", h.Detail)
	// Structured data payload for the management front end.
	g.GET("/getInventory/:classification_id", h.GetInventoryJSON)
}

// RegisterAccount registers registration, login and the protected account
// management page. Only /account/management requires a valid session
// cookie; the auth middleware redirects everyone else to the login form.
func RegisterAccount(e *echo.Echo, a *handler.AccountHandler, jwtSecret string, flash *session.Store) {
	g := e.Group("/account")
	g.GET("/login", a.LoginView)
	g.POST("/login", a.Login)
	g.GET("/registration", a.RegistrationView)
	g.POST("/registration", a.Register)
	g.GET("/logout", a.Logout)
	g.GET("/management", a.Management, middleware.Auth(jwtSecret, flash))
}

// RegisterError registers the deliberate-failure route used to exercise the
// central error responder.
func RegisterError(e *echo.Echo) {
	e.GET("/error/trigger-error", handler.TriggerError)
}
