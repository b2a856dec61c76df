package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/motors/internal/config"
	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/session"
	"github.com/csemotors/motors/internal/view"
)

// testEnv wires handlers against a mocked database, a real template
// renderer and an in-process flash store, close to how main assembles them.
type testEnv struct {
	e     *echo.Echo
	mock  sqlmock.Sqlmock
	inv   *InventoryHandler
	acct  *AccountHandler
	flash *session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	e := echo.New()
	r, err := view.NewRenderer()
	require.NoError(t, err)
	e.Renderer = r

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	flash := session.NewStore(nil)
	cls := repository.NewClassificationRepo(db)
	cfg := config.Config{
		Env:           "dev",
		JWTSecret:     "handler-test-secret",
		SessionTTLMin: 60,
		BcryptCost:    bcrypt.MinCost,
	}
	return &testEnv{
		e:     e,
		mock:  mock,
		inv:   NewInventoryHandler(cls, repository.NewInventoryRepo(db), flash),
		acct:  NewAccountHandler(cfg, repository.NewAccountRepo(db), cls, flash),
		flash: flash,
	}
}

func (env *testEnv) get(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func (env *testEnv) postForm(target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

// popFlash reads back the flash a handler left for the session it minted.
func (env *testEnv) popFlash(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return env.flash.PopFlash(context.Background(), ck.Value)
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func classificationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"classification_id", "classification_name"}).
		AddRow(1, "SUV").
		AddRow(2, "Truck")
}
