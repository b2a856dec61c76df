package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/motors/internal/config"
	"github.com/csemotors/motors/internal/middleware"
	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/session"
	"github.com/csemotors/motors/internal/utils"
	"github.com/csemotors/motors/internal/validation"
	"github.com/csemotors/motors/internal/view"
)

// credentialsMessage is shown both for an unknown email and a wrong
// password so a response never reveals whether an account exists.
const credentialsMessage = "Please check your credentials and try again."

// AccountHandler bundles dependencies for registration, login and the
// account management page.
type AccountHandler struct {
	Cfg             config.Config
	Accounts        *repository.AccountRepo
	Classifications *repository.ClassificationRepo
	Flash           *session.Store
}

func NewAccountHandler(cfg config.Config, accounts *repository.AccountRepo, cls *repository.ClassificationRepo, flash *session.Store) *AccountHandler {
	return &AccountHandler{Cfg: cfg, Accounts: accounts, Classifications: cls, Flash: flash}
}

func (h *AccountHandler) renderLogin(c echo.Context, ctx context.Context, status int,
	email, notice string, errs []validation.FieldError) error {
	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	p := view.LoginPage{
		Page:  view.Page{Title: "Login", Nav: view.Nav(list), Notice: notice, Errors: errs},
		Email: email,
	}
	return c.Render(status, "account/login", p)
}

func (h *AccountHandler) renderRegistration(c echo.Context, ctx context.Context, status int,
	form validation.RegistrationForm, notice string, errs []validation.FieldError) error {
	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	p := view.RegistrationPage{
		Page:      view.Page{Title: "Registration", Nav: view.Nav(list), Notice: notice, Errors: errs},
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}
	return c.Render(status, "account/registration", p)
}

// LoginView handles GET /account/login.
func (h *AccountHandler) LoginView(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	notice := h.Flash.PopFlash(ctx, session.SessionID(c))
	return h.renderLogin(c, ctx, http.StatusOK, "", notice, nil)
}

// RegistrationView handles GET /account/registration.
func (h *AccountHandler) RegistrationView(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	notice := h.Flash.PopFlash(ctx, session.SessionID(c))
	return h.renderRegistration(c, ctx, http.StatusOK, validation.RegistrationForm{}, notice, nil)
}

// Register handles POST /account/registration: validate, hash, insert, then
// redirect to login with a congratulatory notice. Failures re-render the
// form; the password is never echoed back.
func (h *AccountHandler) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	form := validation.RegistrationForm{
		FirstName: c.FormValue("account_firstname"),
		LastName:  c.FormValue("account_lastname"),
		Email:     c.FormValue("account_email"),
		Password:  c.FormValue("account_password"),
	}
	form.Trim()

	if errs := validation.Registration(form); len(errs) > 0 {
		return h.renderRegistration(c, ctx, http.StatusBadRequest, form, "", errs)
	}
	_, err := h.Accounts.Create(ctx, form.FirstName, form.LastName, form.Email, form.Password, h.Cfg.BcryptCost)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repository.ErrEmailExists) {
			status = http.StatusBadRequest
		} else {
			log.Printf("account: registration failed: %v", err)
		}
		return h.renderRegistration(c, ctx, status, form, "Sorry, the registration failed.", nil)
	}
	h.Flash.SetFlash(ctx, session.SessionID(c),
		fmt.Sprintf("Congratulations, you're registered %s. Please log in.", form.FirstName))
	return c.Redirect(http.StatusSeeOther, "/account/login")
}

// Login handles POST /account/login. An unknown email and a wrong password
// produce the same generic message. On success the password hash is
// stripped and the remaining account fields ride in a signed, expiring
// token set as an http-only cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	form := validation.LoginForm{
		Email:    c.FormValue("account_email"),
		Password: c.FormValue("account_password"),
	}
	form.Trim()

	if errs := validation.Login(form); len(errs) > 0 {
		return h.renderLogin(c, ctx, http.StatusBadRequest, form.Email, "", errs)
	}
	a, err := h.Accounts.GetByEmail(ctx, form.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return h.renderLogin(c, ctx, http.StatusBadRequest, form.Email, credentialsMessage, nil)
		}
		return err
	}
	if !utils.VerifyPassword(a.PasswordHash, form.Password) {
		return h.renderLogin(c, ctx, http.StatusBadRequest, form.Email, credentialsMessage, nil)
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, a.ID, a.FirstName, a.Email, h.Cfg.SessionTTLMin)
	if err != nil {
		log.Printf("account: issue session token failed: %v", err)
		return echo.NewHTTPError(http.StatusForbidden, "Access forbidden.")
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		Secure:   h.Cfg.Env != "dev", // plain http is fine for local development only
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/account/management")
}

// Management handles GET /account/management behind the auth middleware.
func (h *AccountHandler) Management(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	firstName, _ := c.Get("account_firstname").(string)
	p := view.AccountPage{
		Page: view.Page{
			Title:  "Account Management",
			Nav:    view.Nav(list),
			Notice: h.Flash.PopFlash(ctx, session.SessionID(c)),
		},
		FirstName: firstName,
	}
	return c.Render(http.StatusOK, "account/management", p)
}

// Logout handles GET /account/logout: the session cookie is expired and the
// browser sent home.
func (h *AccountHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()
	h.Flash.SetFlash(ctx, session.SessionID(c), "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}
