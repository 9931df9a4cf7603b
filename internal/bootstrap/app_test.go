package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_InitializeMemoryStore(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ELASTIC_URL", "")
	t.Setenv("DATASTORE_PROJECT_ID", "")
	t.Setenv("EXPORT_CONFIG_PATH", "")

	app := NewApp()
	require.NoError(t, app.Initialize(context.Background()))
	defer app.Close()

	assert.Nil(t, app.DB)
	assert.Nil(t, app.Search)
	assert.Nil(t, app.Archive)
	require.NotNil(t, app.Repos.Employees)

	req := httptest.NewRequest(http.MethodPost, "/api/departments", strings.NewReader(`{"department_name":"Ops"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	app.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/employees/search?q=ops", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestApp_InitializeRejectsUnknownDriver(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "sqlite")

	err := NewApp().Initialize(context.Background())
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}

func TestApp_InitializeBadExportTemplate(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("EXPORT_CONFIG_PATH", "missing.yaml")

	err := NewApp().Initialize(context.Background())
	assert.ErrorContains(t, err, "export template")
}
