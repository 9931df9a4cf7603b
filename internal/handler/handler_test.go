package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/export"
	"github.com/locvowork/practiceapp/internal/repository"
	"github.com/locvowork/practiceapp/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	e   *echo.Echo
	svc *service.Services
}

func newTestServer(t *testing.T, opts ...service.Option) *testServer {
	t.Helper()
	svc := service.New(repository.NewMemoryStore().Set(), opts...)
	tmpl, err := export.LoadTemplate("")
	require.NoError(t, err)

	emp := NewEmployeeHandler(svc.Employees)
	cat := NewCatalogHandler(svc.Catalog)
	exp := NewExportHandler(svc.Employees, export.NewExporter(tmpl))

	e := echo.New()
	api := e.Group("/api")
	api.POST("/employees", emp.CreateHandler)
	api.GET("/employees", emp.ListHandler)
	api.GET("/employees/search", emp.SearchHandler)
	api.POST("/employees/reindex", emp.ReindexHandler)
	api.GET("/employees/:id", emp.GetHandler)
	api.PUT("/employees/:id", emp.UpdateHandler)
	api.DELETE("/employees/:id", emp.DeleteHandler)
	api.GET("/employees/:id/report", emp.ReportHandler)
	api.PUT("/employees/:id/jobs", emp.ReplaceJobsHandler)
	api.PUT("/employees/:id/jobs/:jobId", emp.AssignJobHandler)
	api.DELETE("/employees/:id/jobs/:jobId", emp.ReleaseJobHandler)
	api.PUT("/employees/:id/job-history/:historyId", emp.SetJobHistoryHandler)
	api.DELETE("/employees/:id/job-history", emp.ClearJobHistoryHandler)
	api.PUT("/employees/:id/manager/:managerId", emp.SetManagerHandler)
	api.DELETE("/employees/:id/manager", emp.ClearManagerHandler)
	api.PUT("/employees/:id/department/:departmentId", emp.SetDepartmentHandler)
	api.DELETE("/employees/:id/department", emp.ClearDepartmentHandler)

	api.POST("/departments", cat.CreateDepartmentHandler)
	api.GET("/departments", cat.ListDepartmentsHandler)
	api.GET("/departments/:id", cat.GetDepartmentHandler)
	api.PUT("/departments/:id", cat.UpdateDepartmentHandler)
	api.DELETE("/departments/:id", cat.DeleteDepartmentHandler)
	api.POST("/jobs", cat.CreateJobHandler)
	api.GET("/jobs", cat.ListJobsHandler)
	api.GET("/jobs/:id", cat.GetJobHandler)
	api.PUT("/jobs/:id", cat.UpdateJobHandler)
	api.DELETE("/jobs/:id", cat.DeleteJobHandler)
	api.POST("/job-histories", cat.CreateJobHistoryHandler)
	api.GET("/job-histories", cat.ListJobHistoriesHandler)
	api.GET("/job-histories/:id", cat.GetJobHistoryHandler)
	api.PUT("/job-histories/:id", cat.UpdateJobHistoryHandler)
	api.DELETE("/job-histories/:id", cat.DeleteJobHistoryHandler)

	api.POST("/tasks", cat.CreateTaskHandler)
	api.GET("/tasks", cat.ListTasksHandler)
	api.GET("/tasks/:id", cat.GetTaskHandler)
	api.PUT("/tasks/:id", cat.UpdateTaskHandler)
	api.DELETE("/tasks/:id", cat.DeleteTaskHandler)
	api.POST("/locations", cat.CreateLocationHandler)
	api.GET("/locations", cat.ListLocationsHandler)
	api.GET("/locations/:id", cat.GetLocationHandler)
	api.PUT("/locations/:id", cat.UpdateLocationHandler)
	api.DELETE("/locations/:id", cat.DeleteLocationHandler)
	api.POST("/countries", cat.CreateCountryHandler)
	api.GET("/countries", cat.ListCountriesHandler)
	api.GET("/countries/:id", cat.GetCountryHandler)
	api.PUT("/countries/:id", cat.UpdateCountryHandler)
	api.DELETE("/countries/:id", cat.DeleteCountryHandler)
	api.POST("/regions", cat.CreateRegionHandler)
	api.GET("/regions", cat.ListRegionsHandler)
	api.GET("/regions/:id", cat.GetRegionHandler)
	api.PUT("/regions/:id", cat.UpdateRegionHandler)
	api.DELETE("/regions/:id", cat.DeleteRegionHandler)

	api.GET("/export/roster", exp.RosterHandler)

	return &testServer{e: e, svc: svc}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// call performs the request, asserts the status and decodes data into out
// when out is non-nil.
func (s *testServer) call(t *testing.T, method, path, body string, status int, out interface{}) envelope {
	t.Helper()
	rec := s.do(method, path, body)
	require.Equal(t, status, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		// omitted fields must not keep values from an earlier call
		v := reflect.ValueOf(out).Elem()
		v.Set(reflect.Zero(v.Type()))
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

// stubIndex records bulk writes and answers every search with docs.
type stubIndex struct {
	mu      sync.Mutex
	docs    []database.EmployeeDoc
	indexed int
}

func (s *stubIndex) IndexEmployee(context.Context, database.EmployeeDoc) error { return nil }

func (s *stubIndex) BulkIndexEmployees(_ context.Context, docs []database.EmployeeDoc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.indexed += len(docs)
	return nil
}

func (s *stubIndex) DeleteEmployee(context.Context, int64) error { return nil }

func (s *stubIndex) SearchEmployeesByName(context.Context, string) ([]database.EmployeeDoc, error) {
	return s.docs, nil
}
