package database

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olivere/elastic/v7"

	"github.com/locvowork/practiceapp/internal/domain"
)

const employeeIndex = "employees"

// EmployeeDoc is the search projection of a domain.Employee.
type EmployeeDoc struct {
	ID             int64      `json:"id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email,omitempty"`
	HireDate       *time.Time `json:"hire_date,omitempty"`
	ManagerID      *int64     `json:"manager_id,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	JobTitles      []string   `json:"job_titles,omitempty"`
}

// NewEmployeeDoc flattens a persisted employee and its associations.
func NewEmployeeDoc(e *domain.Employee) (EmployeeDoc, error) {
	if e == nil || e.ID == nil {
		return EmployeeDoc{}, fmt.Errorf("cannot index a transient employee: %w", domain.ErrValidation)
	}
	doc := EmployeeDoc{
		ID:        *e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		HireDate:  e.HireDate,
	}
	if m := e.Manager(); m != nil && m.ID != nil {
		id := *m.ID
		doc.ManagerID = &id
	}
	if d := e.Department(); d != nil {
		doc.DepartmentName = d.DepartmentName
	}
	for _, job := range e.Jobs() {
		doc.JobTitles = append(doc.JobTitles, job.JobTitle)
	}
	return doc, nil
}

// ElasticSearchClient wraps olivere/elastic client.
type ElasticSearchClient struct {
	client *elastic.Client
}

// NewElasticSearchClient creates a new client for Elasticsearch 7.x. Sniffing
// is off so the client works behind Docker port mappings.
func NewElasticSearchClient(url string, opts ...elastic.ClientOptionFunc) (*ElasticSearchClient, error) {
	options := append([]elastic.ClientOptionFunc{
		elastic.SetURL(url),
		elastic.SetSniff(false),
	}, opts...)

	client, err := elastic.NewClient(options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return &ElasticSearchClient{client: client}, nil
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// IndexEmployee upserts one document and refreshes the index.
func (es *ElasticSearchClient) IndexEmployee(ctx context.Context, doc EmployeeDoc) error {
	_, err := es.client.Index().
		Index(employeeIndex).
		Id(docID(doc.ID)).
		BodyJson(doc).
		Refresh("true").
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index employee %d: %w", doc.ID, err)
	}
	return nil
}

// DeleteEmployee removes a document; a missing document is not an error.
func (es *ElasticSearchClient) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := es.client.Delete().
		Index(employeeIndex).
		Id(docID(id)).
		Refresh("true").
		Do(ctx)
	if err != nil && !elastic.IsNotFound(err) {
		return fmt.Errorf("failed to delete employee %d from index: %w", id, err)
	}
	return nil
}

// GetEmployee retrieves a document by employee id.
func (es *ElasticSearchClient) GetEmployee(ctx context.Context, id int64) (*EmployeeDoc, error) {
	result, err := es.client.Get().
		Index(employeeIndex).
		Id(docID(id)).
		Do(ctx)
	if elastic.IsNotFound(err) || (err == nil && !result.Found) {
		return nil, fmt.Errorf("employee document %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %d: %w", id, err)
	}

	var doc EmployeeDoc
	if err := json.Unmarshal(result.Source, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee %d: %w", id, err)
	}
	return &doc, nil
}

// SearchEmployeesByName performs a full-text match on names, department and
// job titles.
func (es *ElasticSearchClient) SearchEmployeesByName(ctx context.Context, name string) ([]EmployeeDoc, error) {
	query := elastic.NewMultiMatchQuery(name, "first_name", "last_name", "department_name", "job_titles")

	searchResult, err := es.client.Search().
		Index(employeeIndex).
		Query(query).
		Size(100).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return decodeHits(searchResult.Hits), nil
}

// BulkIndexEmployees indexes a batch of documents in one request.
func (es *ElasticSearchClient) BulkIndexEmployees(ctx context.Context, docs []EmployeeDoc) error {
	bulkRequest := es.client.Bulk()
	for _, doc := range docs {
		bulkRequest = bulkRequest.Add(elastic.NewBulkIndexRequest().
			Index(employeeIndex).
			Id(docID(doc.ID)).
			Doc(doc))
	}
	if bulkRequest.NumberOfActions() == 0 {
		return nil
	}

	bulkResponse, err := bulkRequest.Refresh("true").Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}
	if failed := bulkResponse.Failed(); len(failed) > 0 {
		return fmt.Errorf("bulk item %s failed: %s", failed[0].Id, failed[0].Error.Reason)
	}
	return nil
}

// ScrollAllEmployees reads every document of the index.
func (es *ElasticSearchClient) ScrollAllEmployees(ctx context.Context) ([]EmployeeDoc, error) {
	var all []EmployeeDoc

	scroll := es.client.Scroll(employeeIndex).
		Size(1000).
		KeepAlive("2m").
		Sort("_doc")
	defer scroll.Clear(context.Background())

	for {
		results, err := scroll.Do(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("scroll error: %w", err)
		}
		all = append(all, decodeHits(results.Hits)...)
	}
	return all, nil
}

func decodeHits(hits *elastic.SearchHits) []EmployeeDoc {
	if hits == nil {
		return nil
	}
	docs := make([]EmployeeDoc, 0, len(hits.Hits))
	for _, hit := range hits.Hits {
		var doc EmployeeDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}
