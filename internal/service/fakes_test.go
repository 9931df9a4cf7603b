package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/repository"
)

type fakeIndex struct {
	mu      sync.Mutex
	docs    map[int64]database.EmployeeDoc
	deleted []int64
	bulks   int
	failAll bool
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{docs: make(map[int64]database.EmployeeDoc)}
}

func (f *fakeIndex) IndexEmployee(_ context.Context, doc database.EmployeeDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[doc.ID] = doc
	return nil
}

func (f *fakeIndex) BulkIndexEmployees(_ context.Context, docs []database.EmployeeDoc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("index unavailable")
	}
	f.bulks++
	for _, doc := range docs {
		f.docs[doc.ID] = doc
	}
	return nil
}

func (f *fakeIndex) DeleteEmployee(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeIndex) SearchEmployeesByName(_ context.Context, name string) ([]database.EmployeeDoc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []database.EmployeeDoc
	for _, doc := range f.docs {
		if doc.FirstName == name || doc.LastName == name {
			out = append(out, doc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeIndex) doc(id int64) (database.EmployeeDoc, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	return doc, ok
}

type fakeArchive struct {
	snapshots []database.JobHistorySnapshot
}

func (f *fakeArchive) SaveSnapshot(_ context.Context, snap database.JobHistorySnapshot) error {
	f.snapshots = append(f.snapshots, snap)
	return nil
}

var testNow = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx     context.Context
	store   *repository.MemoryStore
	svc     *Services
	index   *fakeIndex
	archive *fakeArchive
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:     context.Background(),
		store:   repository.NewMemoryStore(),
		index:   newFakeIndex(),
		archive: &fakeArchive{},
	}
	f.svc = New(f.store.Set(), WithIndex(f.index), WithArchive(f.archive), WithClock(func() time.Time { return testNow }))
	return f
}

func (f *fixture) employee(t *testing.T, first string, in ...func(*EmployeeInput)) *EmployeeDTO {
	t.Helper()
	input := EmployeeInput{FirstName: first, LastName: "Test"}
	for _, fn := range in {
		fn(&input)
	}
	e, err := f.svc.Employees.Create(f.ctx, input)
	require.NoError(t, err)
	return e
}

func (f *fixture) job(t *testing.T, title string) *JobDTO {
	t.Helper()
	j, err := f.svc.Catalog.CreateJob(f.ctx, JobInput{JobTitle: title})
	require.NoError(t, err)
	return j
}

func (f *fixture) department(t *testing.T, name string) *DepartmentDTO {
	t.Helper()
	d, err := f.svc.Catalog.CreateDepartment(f.ctx, DepartmentInput{DepartmentName: name})
	require.NoError(t, err)
	return d
}

func (f *fixture) history(t *testing.T, in JobHistoryInput) *JobHistoryDTO {
	t.Helper()
	h, err := f.svc.Catalog.CreateJobHistory(f.ctx, in)
	require.NoError(t, err)
	return h
}

func jobIDs(jobs []JobDTO) []int64 {
	ids := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func int64p(v int64) *int64 { return &v }
