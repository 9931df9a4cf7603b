package database

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olivere/elastic/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/practiceapp/internal/domain"
)

func TestNewEmployeeDoc(t *testing.T) {
	manager := &domain.Employee{ID: domain.NewID(1)}
	e := (&domain.Employee{ID: domain.NewID(2), FirstName: "Ada", LastName: "Lovelace"}).
		WithManager(manager).
		WithDepartment(&domain.Department{ID: domain.NewID(3), DepartmentName: "R&D"}).
		WithJobs(&domain.Job{ID: domain.NewID(4), JobTitle: "Engineer"}, &domain.Job{ID: domain.NewID(5), JobTitle: "Lead"})

	doc, err := NewEmployeeDoc(e)
	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.ID)
	require.NotNil(t, doc.ManagerID)
	assert.Equal(t, int64(1), *doc.ManagerID)
	assert.Equal(t, "R&D", doc.DepartmentName)
	assert.Equal(t, []string{"Engineer", "Lead"}, doc.JobTitles)

	_, err = NewEmployeeDoc(&domain.Employee{})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestSearchEmployeesByName(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		buf := new(strings.Builder)
		_, _ = io.Copy(buf, r.Body)
		gotBody = buf.String()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"took":1,"hits":{"total":{"value":1,"relation":"eq"},"hits":[` +
			`{"_index":"employees","_id":"2","_source":{"id":2,"first_name":"Ada","last_name":"Lovelace","job_titles":["Engineer"]}}]}}`))
	}))
	defer srv.Close()

	es, err := NewElasticSearchClient(srv.URL, elastic.SetHealthcheck(false))
	require.NoError(t, err)

	docs, err := es.SearchEmployeesByName(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "/employees/_search", gotPath)
	assert.Contains(t, gotBody, `"multi_match"`)
	require.Len(t, docs, 1)
	assert.Equal(t, int64(2), docs[0].ID)
	assert.Equal(t, []string{"Engineer"}, docs[0].JobTitles)
}

func TestBulkIndexEmployees_Empty(t *testing.T) {
	es, err := NewElasticSearchClient("http://127.0.0.1:1", elastic.SetHealthcheck(false))
	require.NoError(t, err)
	assert.NoError(t, es.BulkIndexEmployees(context.Background(), nil))
}
