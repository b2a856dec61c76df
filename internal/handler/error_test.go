package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/view"
)

// respond runs the central error responder against a fresh request and
// returns what the client would see.
func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	r, rerr := view.NewRenderer()
	require.NoError(t, rerr)
	e.Renderer = r

	db, mock, merr := sqlmock.New()
	require.NoError(t, merr)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectQuery("SELECT classification_id, classification_name").
		WillReturnRows(classificationRows())

	req := httptest.NewRequest(http.MethodGet, "/some/path", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(repository.NewClassificationRepo(db))(err, c)
	return rec
}

func TestErrorResponderNotFound(t *testing.T) {
	rec := respond(t, echo.NewHTTPError(http.StatusNotFound, "route detail that must not show"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	// 404 always gets the generic missing-page text, never the detail.
	assert.Contains(t, body, "404 Not Found")
	assert.Contains(t, body, "Sorry, the page you requested does not exist.")
	assert.NotContains(t, body, "route detail that must not show")
}

func TestErrorResponderShowsDetailForNon404(t *testing.T) {
	rec := respond(t, echo.NewHTTPError(http.StatusBadRequest, "Invalid vehicle id."))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid vehicle id.")
}

func TestErrorResponderHidesPlainErrors(t *testing.T) {
	rec := respond(t, errors.New("dial tcp 10.0.0.5:3306: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := rec.Body.String()
	// Internal causes are logged, never echoed to the client.
	assert.NotContains(t, body, "dial tcp")
	assert.Contains(t, body, "Oh no! There was a crash. Maybe try a different route?")
}

func TestTriggerErrorReturnsError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/error/trigger-error", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Error(t, TriggerError(c))
}
