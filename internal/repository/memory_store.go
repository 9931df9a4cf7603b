package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/locvowork/practiceapp/internal/domain"
)

// MemoryStore keeps one shared entity graph in process. It behaves as an
// identity map: every lookup of an id returns the same instance, so a
// mutation made through the domain mutators is visible to later reads. Deletes
// clear references the way ON DELETE SET NULL does in the Postgres schema.
//
// The mutex guards the store's maps only. Callers serialize mutation of the
// entities they get back.
type MemoryStore struct {
	mu          sync.RWMutex
	seq         int64
	employees   map[int64]*domain.Employee
	departments map[int64]*domain.Department
	jobs        map[int64]*domain.Job
	histories   map[int64]*domain.JobHistory
	tasks       map[int64]*domain.Task
	locations   map[int64]*domain.Location
	countries   map[int64]*domain.Country
	regions     map[int64]*domain.Region
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		employees:   make(map[int64]*domain.Employee),
		departments: make(map[int64]*domain.Department),
		jobs:        make(map[int64]*domain.Job),
		histories:   make(map[int64]*domain.JobHistory),
		tasks:       make(map[int64]*domain.Task),
		locations:   make(map[int64]*domain.Location),
		countries:   make(map[int64]*domain.Country),
		regions:     make(map[int64]*domain.Region),
	}
}

func (s *MemoryStore) Employees() domain.EmployeeRepository { return memoryEmployees{s} }

func (s *MemoryStore) Departments() domain.DepartmentRepository { return memoryDepartments{s} }

func (s *MemoryStore) Jobs() domain.JobRepository { return memoryJobs{s} }

func (s *MemoryStore) JobHistories() domain.JobHistoryRepository { return memoryJobHistories{s} }

func (s *MemoryStore) Tasks() domain.TaskRepository { return memoryTasks{s} }

func (s *MemoryStore) Locations() domain.LocationRepository { return memoryLocations{s} }

func (s *MemoryStore) Countries() domain.CountryRepository { return memoryCountries{s} }

func (s *MemoryStore) Regions() domain.RegionRepository { return memoryRegions{s} }

func (s *MemoryStore) next() int64 {
	s.seq++
	return s.seq
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func missing(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, domain.ErrNotFound)
}

type memoryEmployees struct{ s *MemoryStore }

func (r memoryEmployees) Create(_ context.Context, e *domain.Employee) error {
	if !e.IsNew() {
		return fmt.Errorf("employee %d already persisted: %w", *e.ID, domain.ErrConflict)
	}
	for _, job := range e.Jobs() {
		if _, err := requireID("job", job.ID); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.AssignID(r.s.next())
	r.s.employees[*e.ID] = e
	return nil
}

func (r memoryEmployees) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, missing("employee", id)
	}
	return e, nil
}

func (r memoryEmployees) Update(_ context.Context, e *domain.Employee) error {
	id, err := requireID("employee", e.ID)
	if err != nil {
		return err
	}
	for _, job := range e.Jobs() {
		if _, err := requireID("job", job.ID); err != nil {
			return err
		}
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.employees[id]; !ok {
		return missing("employee", id)
	}
	r.s.employees[id] = e
	return nil
}

func (r memoryEmployees) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok {
		return missing("employee", id)
	}
	delete(r.s.employees, id)
	e.SetJobs(nil)
	e.SetJobHistory(nil)
	for _, other := range r.s.employees {
		if other.Manager().Equal(e) {
			other.SetManager(nil)
		}
	}
	return nil
}

func (r memoryEmployees) List(_ context.Context, filter domain.EmployeeFilter) ([]*domain.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*domain.Employee
	skipped := 0
	for _, id := range sortedKeys(r.s.employees) {
		e := r.s.employees[id]
		if filter.DepartmentID != nil && !e.Department().Equal(&domain.Department{ID: filter.DepartmentID}) {
			continue
		}
		if filter.ManagerID != nil && !e.Manager().Equal(&domain.Employee{ID: filter.ManagerID}) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

type memoryDepartments struct{ s *MemoryStore }

func (r memoryDepartments) Create(_ context.Context, d *domain.Department) error {
	if !d.IsNew() {
		return fmt.Errorf("department %d already persisted: %w", *d.ID, domain.ErrConflict)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.AssignID(r.s.next())
	r.s.departments[*d.ID] = d
	return nil
}

func (r memoryDepartments) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.departments[id]
	if !ok {
		return nil, missing("department", id)
	}
	return d, nil
}

func (r memoryDepartments) Update(_ context.Context, d *domain.Department) error {
	id, err := requireID("department", d.ID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.departments[id]; !ok {
		return missing("department", id)
	}
	r.s.departments[id] = d
	return nil
}

func (r memoryDepartments) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.departments[id]
	if !ok {
		return missing("department", id)
	}
	delete(r.s.departments, id)
	for _, e := range r.s.employees {
		if e.Department().Equal(d) {
			e.SetDepartment(nil)
		}
	}
	for _, h := range r.s.histories {
		if h.Department().Equal(d) {
			h.SetDepartment(nil)
		}
	}
	return nil
}

func (r memoryDepartments) List(_ context.Context) ([]*domain.Department, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Department, 0, len(r.s.departments))
	for _, id := range sortedKeys(r.s.departments) {
		out = append(out, r.s.departments[id])
	}
	return out, nil
}

type memoryJobs struct{ s *MemoryStore }

func (r memoryJobs) Create(_ context.Context, j *domain.Job) error {
	if !j.IsNew() {
		return fmt.Errorf("job %d already persisted: %w", *j.ID, domain.ErrConflict)
	}
	if err := requireTaskIDs(j); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j.AssignID(r.s.next())
	r.s.jobs[*j.ID] = j
	return nil
}

func (r memoryJobs) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return nil, missing("job", id)
	}
	return j, nil
}

func (r memoryJobs) Update(_ context.Context, j *domain.Job) error {
	id, err := requireID("job", j.ID)
	if err != nil {
		return err
	}
	if err := requireTaskIDs(j); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.jobs[id]; !ok {
		return missing("job", id)
	}
	r.s.jobs[id] = j
	return nil
}

func (r memoryJobs) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	j, ok := r.s.jobs[id]
	if !ok {
		return missing("job", id)
	}
	delete(r.s.jobs, id)
	j.SetEmployee(nil)
	j.SetTasks(nil)
	for _, h := range r.s.histories {
		if h.Job().Equal(j) {
			h.SetJob(nil)
		}
	}
	return nil
}

func (r memoryJobs) List(_ context.Context) ([]*domain.Job, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Job, 0, len(r.s.jobs))
	for _, id := range sortedKeys(r.s.jobs) {
		out = append(out, r.s.jobs[id])
	}
	return out, nil
}

type memoryJobHistories struct{ s *MemoryStore }

func (r memoryJobHistories) Create(_ context.Context, h *domain.JobHistory) error {
	if !h.IsNew() {
		return fmt.Errorf("job history %d already persisted: %w", *h.ID, domain.ErrConflict)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.AssignID(r.s.next())
	r.s.histories[*h.ID] = h
	return nil
}

func (r memoryJobHistories) GetByID(_ context.Context, id int64) (*domain.JobHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	h, ok := r.s.histories[id]
	if !ok {
		return nil, missing("job history", id)
	}
	return h, nil
}

func (r memoryJobHistories) Update(_ context.Context, h *domain.JobHistory) error {
	id, err := requireID("job history", h.ID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.histories[id]; !ok {
		return missing("job history", id)
	}
	r.s.histories[id] = h
	return nil
}

func (r memoryJobHistories) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.histories[id]
	if !ok {
		return missing("job history", id)
	}
	delete(r.s.histories, id)
	h.SetEmployee(nil)
	return nil
}

func (r memoryJobHistories) List(_ context.Context) ([]*domain.JobHistory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.JobHistory, 0, len(r.s.histories))
	for _, id := range sortedKeys(r.s.histories) {
		out = append(out, r.s.histories[id])
	}
	return out, nil
}

func requireTaskIDs(j *domain.Job) error {
	for _, t := range j.Tasks() {
		if _, err := requireID("task", t.ID); err != nil {
			return err
		}
	}
	return nil
}

type memoryTasks struct{ s *MemoryStore }

func (r memoryTasks) Create(_ context.Context, t *domain.Task) error {
	if !t.IsNew() {
		return fmt.Errorf("task %d already persisted: %w", *t.ID, domain.ErrConflict)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.AssignID(r.s.next())
	r.s.tasks[*t.ID] = t
	return nil
}

func (r memoryTasks) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, missing("task", id)
	}
	return t, nil
}

func (r memoryTasks) Update(_ context.Context, t *domain.Task) error {
	id, err := requireID("task", t.ID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[id]; !ok {
		return missing("task", id)
	}
	r.s.tasks[id] = t
	return nil
}

func (r memoryTasks) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return missing("task", id)
	}
	delete(r.s.tasks, id)
	t.SetJobs(nil)
	return nil
}

func (r memoryTasks) List(_ context.Context) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Task, 0, len(r.s.tasks))
	for _, id := range sortedKeys(r.s.tasks) {
		out = append(out, r.s.tasks[id])
	}
	return out, nil
}

type memoryLocations struct{ s *MemoryStore }

func (r memoryLocations) Create(_ context.Context, l *domain.Location) error {
	if !l.IsNew() {
		return fmt.Errorf("location %d already persisted: %w", *l.ID, domain.ErrConflict)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.AssignID(r.s.next())
	r.s.locations[*l.ID] = l
	return nil
}

func (r memoryLocations) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, missing("location", id)
	}
	return l, nil
}

func (r memoryLocations) Update(_ context.Context, l *domain.Location) error {
	id, err := requireID("location", l.ID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[id]; !ok {
		return missing("location", id)
	}
	r.s.locations[id] = l
	return nil
}

func (r memoryLocations) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.locations[id]
	if !ok {
		return missing("location", id)
	}
	delete(r.s.locations, id)
	for _, d := range r.s.departments {
		if d.Location().Equal(l) {
			d.SetLocation(nil)
		}
	}
	return nil
}

func (r memoryLocations) List(_ context.Context) ([]*domain.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Location, 0, len(r.s.locations))
	for _, id := range sortedKeys(r.s.locations) {
		out = append(out, r.s.locations[id])
	}
	return out, nil
}

type memoryCountries struct{ s *MemoryStore }

func (r memoryCountries) Create(_ context.Context, c *domain.Country) error {
	if !c.IsNew() {
		return fmt.Errorf("country %d already persisted: %w", *c.ID, domain.ErrConflict)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.AssignID(r.s.next())
	r.s.countries[*c.ID] = c
	return nil
}

func (r memoryCountries) GetByID(_ context.Context, id int64) (*domain.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.countries[id]
	if !ok {
		return nil, missing("country", id)
	}
	return c, nil
}

func (r memoryCountries) Update(_ context.Context, c *domain.Country) error {
	id, err := requireID("country", c.ID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[id]; !ok {
		return missing("country", id)
	}
	r.s.countries[id] = c
	return nil
}

func (r memoryCountries) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.countries[id]
	if !ok {
		return missing("country", id)
	}
	delete(r.s.countries, id)
	for _, l := range r.s.locations {
		if l.Country().Equal(c) {
			l.SetCountry(nil)
		}
	}
	return nil
}

func (r memoryCountries) List(_ context.Context) ([]*domain.Country, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Country, 0, len(r.s.countries))
	for _, id := range sortedKeys(r.s.countries) {
		out = append(out, r.s.countries[id])
	}
	return out, nil
}

type memoryRegions struct{ s *MemoryStore }

func (r memoryRegions) Create(_ context.Context, region *domain.Region) error {
	if !region.IsNew() {
		return fmt.Errorf("region %d already persisted: %w", *region.ID, domain.ErrConflict)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	region.AssignID(r.s.next())
	r.s.regions[*region.ID] = region
	return nil
}

func (r memoryRegions) GetByID(_ context.Context, id int64) (*domain.Region, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	region, ok := r.s.regions[id]
	if !ok {
		return nil, missing("region", id)
	}
	return region, nil
}

func (r memoryRegions) Update(_ context.Context, region *domain.Region) error {
	id, err := requireID("region", region.ID)
	if err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.regions[id]; !ok {
		return missing("region", id)
	}
	r.s.regions[id] = region
	return nil
}

func (r memoryRegions) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	region, ok := r.s.regions[id]
	if !ok {
		return missing("region", id)
	}
	delete(r.s.regions, id)
	for _, c := range r.s.countries {
		if c.Region().Equal(region) {
			c.SetRegion(nil)
		}
	}
	return nil
}

func (r memoryRegions) List(_ context.Context) ([]*domain.Region, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*domain.Region, 0, len(r.s.regions))
	for _, id := range sortedKeys(r.s.regions) {
		out = append(out, r.s.regions[id])
	}
	return out, nil
}
