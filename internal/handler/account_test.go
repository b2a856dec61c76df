package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/motors/internal/middleware"
	"github.com/csemotors/motors/internal/utils"
)

var accountColumns = []string{
	"account_id", "account_firstname", "account_lastname", "account_email", "account_password",
}

var errDuplicateEmail = errors.New("Error 1062 (23000): Duplicate entry 'tony@starkent.com' for key 'account_email'")

func jwtCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.TokenCookie {
			return ck
		}
	}
	return nil
}

func TestRegisterValidationReRendersSticky(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery("SELECT classification_id, classification_name").
		WillReturnRows(classificationRows())

	c, rec := env.postForm("/account/registration", url.Values{
		"account_firstname": {"Tony"},
		"account_lastname":  {"Stark"},
		"account_email":     {"tony@starkent.com"},
		"account_password":  {"weak"},
	})
	require.NoError(t, env.acct.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Password does not meet requirements.")
	// Everything except the password comes back pre-filled.
	assert.Contains(t, body, `value="Tony"`)
	assert.Contains(t, body, `value="tony@starkent.com"`)
	assert.NotContains(t, body, "weak")
}

func TestRegisterSuccessRedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectExec("INSERT INTO account").
		WithArgs("Tony", "Stark", "tony@starkent.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))

	c, rec := env.postForm("/account/registration", url.Values{
		"account_firstname": {"Tony"},
		"account_lastname":  {"Stark"},
		"account_email":     {"tony@starkent.com"},
		"account_password":  {"I@mIr0nM4n-3000"},
	})
	require.NoError(t, env.acct.Register(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "Congratulations, you're registered Tony. Please log in.", env.popFlash(t, rec))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectExec("INSERT INTO account").
		WillReturnError(errDuplicateEmail)
	env.mock.ExpectQuery("SELECT classification_id, classification_name").
		WillReturnRows(classificationRows())

	c, rec := env.postForm("/account/registration", url.Values{
		"account_firstname": {"Tony"},
		"account_lastname":  {"Stark"},
		"account_email":     {"tony@starkent.com"},
		"account_password":  {"I@mIr0nM4n-3000"},
	})
	require.NoError(t, env.acct.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sorry, the registration failed.")
}

// Unknown email and wrong password must produce the same response body so a
// login attempt never reveals whether an account exists.
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)

	// Unknown email: the account lookup comes back empty.
	env.mock.ExpectQuery("SELECT account_id").
		WithArgs("ghost@starkent.com").
		WillReturnRows(sqlmock.NewRows(accountColumns))
	env.mock.ExpectQuery("SELECT classification_id, classification_name").
		WillReturnRows(classificationRows())

	c, recUnknown := env.postForm("/account/login", url.Values{
		"account_email":    {"ghost@starkent.com"},
		"account_password": {"whatever-password"},
	})
	require.NoError(t, env.acct.Login(c))

	// Known email, wrong password.
	hash, err := utils.HashPassword("the-real-password", bcrypt.MinCost)
	require.NoError(t, err)
	env.mock.ExpectQuery("SELECT account_id").
		WithArgs("ghost@starkent.com").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(4, "Tony", "Stark", "ghost@starkent.com", hash))
	env.mock.ExpectQuery("SELECT classification_id, classification_name").
		WillReturnRows(classificationRows())

	c, recWrong := env.postForm("/account/login", url.Values{
		"account_email":    {"ghost@starkent.com"},
		"account_password": {"whatever-password"},
	})
	require.NoError(t, env.acct.Login(c))

	assert.Equal(t, http.StatusBadRequest, recUnknown.Code)
	assert.Equal(t, http.StatusBadRequest, recWrong.Code)
	assert.Contains(t, recUnknown.Body.String(), credentialsMessage)
	assert.Equal(t, recUnknown.Body.String(), recWrong.Body.String())
	assert.Nil(t, jwtCookie(recUnknown))
	assert.Nil(t, jwtCookie(recWrong))
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)
	hash, err := utils.HashPassword("I@mIr0nM4n-3000", bcrypt.MinCost)
	require.NoError(t, err)
	env.mock.ExpectQuery("SELECT account_id").
		WithArgs("tony@starkent.com").
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(4, "Tony", "Stark", "tony@starkent.com", hash))

	c, rec := env.postForm("/account/login", url.Values{
		"account_email":    {"Tony@Starkent.com"}, // normalized before lookup
		"account_password": {"I@mIr0nM4n-3000"},
	})
	require.NoError(t, env.acct.Login(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account/management", rec.Header().Get(echo.HeaderLocation))

	ck := jwtCookie(rec)
	require.NotNil(t, ck, "expected session token cookie")
	assert.True(t, ck.HttpOnly)

	claims, err := utils.ParseSessionToken("handler-test-secret", ck.Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), claims.AccountID)
	assert.Equal(t, "Tony", claims.FirstName)
	assert.Equal(t, "tony@starkent.com", claims.Email)
}

func TestManagementGreetsAccount(t *testing.T) {
	env := newTestEnv(t)
	env.mock.ExpectQuery("SELECT classification_id, classification_name").
		WillReturnRows(classificationRows())

	c, rec := env.get("/account/management")
	c.Set("account_firstname", "Tony")
	require.NoError(t, env.acct.Management(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome Tony")
}

func TestLogoutExpiresCookie(t *testing.T) {
	env := newTestEnv(t)

	c, rec := env.get("/account/logout")
	require.NoError(t, env.acct.Logout(c))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	ck := jwtCookie(rec)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
	assert.Equal(t, "You have been logged out.", env.popFlash(t, rec))
}
