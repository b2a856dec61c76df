package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/motors/internal/session"
	"github.com/csemotors/motors/internal/utils"
)

// TokenCookie is the name of the http-only cookie carrying the signed
// session token issued at login.
const TokenCookie = "jwt"

// Auth returns an Echo middleware that validates the session token cookie
// and injects the account claims into the request context. Because the
// surface is server-rendered, a missing or invalid token redirects to the
// login page with a one-time notice instead of answering 401 JSON.
// Handlers behind this middleware can read `c.Get("account_id")`,
// `c.Get("account_firstname")` and `c.Get("account_email")`.
func Auth(secret string, flash *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(TokenCookie)
			if err != nil || ck.Value == "" {
				return toLogin(c, flash)
			}
			claims, err := utils.ParseSessionToken(secret, ck.Value)
			if err != nil {
				return toLogin(c, flash)
			}
			c.Set("account_id", claims.AccountID)
			c.Set("account_firstname", claims.FirstName)
			c.Set("account_email", claims.Email)
			return next(c)
		}
	}
}

func toLogin(c echo.Context, flash *session.Store) error {
	flash.SetFlash(c.Request().Context(), session.SessionID(c), "Please log in.")
	return c.Redirect(http.StatusSeeOther, "/account/login")
}
