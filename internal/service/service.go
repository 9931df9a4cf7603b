package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/logger"
	"github.com/locvowork/practiceapp/internal/repository"
)

// ErrSearchDisabled is returned by search operations when no index is wired.
var ErrSearchDisabled = errors.New("search index is not configured")

// EmployeeIndex is the search side of the service, implemented by
// database.ElasticSearchClient.
type EmployeeIndex interface {
	IndexEmployee(ctx context.Context, doc database.EmployeeDoc) error
	BulkIndexEmployees(ctx context.Context, docs []database.EmployeeDoc) error
	DeleteEmployee(ctx context.Context, id int64) error
	SearchEmployeesByName(ctx context.Context, name string) ([]database.EmployeeDoc, error)
}

// HistoryArchive is implemented by database.DatastoreClient.
type HistoryArchive interface {
	SaveSnapshot(ctx context.Context, snap database.JobHistorySnapshot) error
}

type Option func(*core)

// WithIndex mirrors employee changes into a search index.
func WithIndex(index EmployeeIndex) Option {
	return func(c *core) { c.index = index }
}

// WithArchive snapshots job histories whenever one is attached.
func WithArchive(archive HistoryArchive) Option {
	return func(c *core) { c.archive = archive }
}

func WithClock(now func() time.Time) Option {
	return func(c *core) { c.now = now }
}

// core is shared by the services. The entity graph is not safe for
// concurrent use, so every read holds mu.RLock and every mutation mu.Lock.
type core struct {
	mu      sync.RWMutex
	repos   repository.Set
	index   EmployeeIndex
	archive HistoryArchive
	now     func() time.Time
}

type Services struct {
	Employees *EmployeeService
	Catalog   *CatalogService
}

func New(repos repository.Set, opts ...Option) *Services {
	c := &core{repos: repos, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return &Services{
		Employees: &EmployeeService{core: c},
		Catalog:   &CatalogService{core: c},
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, domain.ErrValidation)...)
}

// reference turns a missing referenced entity into a validation error so
// that only the addressed resource produces ErrNotFound.
func reference(kind string, id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return invalid("%s %d does not exist", kind, id)
	}
	return err
}

func (c *core) managerRef(ctx context.Context, id *int64) (*domain.Employee, error) {
	if id == nil {
		return nil, nil
	}
	e, err := c.repos.Employees.GetByID(ctx, *id)
	if err != nil {
		return nil, reference("manager", *id, err)
	}
	return e, nil
}

func (c *core) departmentRef(ctx context.Context, id *int64) (*domain.Department, error) {
	if id == nil {
		return nil, nil
	}
	d, err := c.repos.Departments.GetByID(ctx, *id)
	if err != nil {
		return nil, reference("department", *id, err)
	}
	return d, nil
}

func (c *core) jobRef(ctx context.Context, id *int64) (*domain.Job, error) {
	if id == nil {
		return nil, nil
	}
	j, err := c.repos.Jobs.GetByID(ctx, *id)
	if err != nil {
		return nil, reference("job", *id, err)
	}
	return j, nil
}

func (c *core) locationRef(ctx context.Context, id *int64) (*domain.Location, error) {
	if id == nil {
		return nil, nil
	}
	l, err := c.repos.Locations.GetByID(ctx, *id)
	if err != nil {
		return nil, reference("location", *id, err)
	}
	return l, nil
}

func (c *core) countryRef(ctx context.Context, id *int64) (*domain.Country, error) {
	if id == nil {
		return nil, nil
	}
	country, err := c.repos.Countries.GetByID(ctx, *id)
	if err != nil {
		return nil, reference("country", *id, err)
	}
	return country, nil
}

func (c *core) regionRef(ctx context.Context, id *int64) (*domain.Region, error) {
	if id == nil {
		return nil, nil
	}
	r, err := c.repos.Regions.GetByID(ctx, *id)
	if err != nil {
		return nil, reference("region", *id, err)
	}
	return r, nil
}

func (c *core) taskRefs(ctx context.Context, ids []int64) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		t, err := c.repos.Tasks.GetByID(ctx, id)
		if err != nil {
			return nil, reference("task", id, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// reindex refreshes the search documents of the given employees. Failures
// are logged; the index is rebuilt by Reindex.
func (c *core) reindex(ctx context.Context, ids ...int64) {
	if c.index == nil {
		return
	}
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		e, err := c.repos.Employees.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			err = c.index.DeleteEmployee(ctx, id)
		} else if err == nil {
			var doc database.EmployeeDoc
			if doc, err = database.NewEmployeeDoc(e); err == nil {
				err = c.index.IndexEmployee(ctx, doc)
			}
		}
		if err != nil {
			logger.WarnLog(ctx, "Failed to refresh search document of employee %d: %v", id, err)
		}
	}
}

func (c *core) archiveHistory(ctx context.Context, h *domain.JobHistory) {
	if c.archive == nil || h == nil || h.Employee() == nil {
		return
	}
	snap, err := database.NewJobHistorySnapshot(h, c.now())
	if err == nil {
		err = c.archive.SaveSnapshot(ctx, snap)
	}
	if err != nil {
		logger.WarnLog(ctx, "Failed to archive job history: %v", err)
	}
}

func ownerID(e *domain.Employee) []int64 {
	if e == nil || e.ID == nil {
		return nil
	}
	return []int64{*e.ID}
}
