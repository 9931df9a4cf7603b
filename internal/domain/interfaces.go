package domain

import "context"

// EmployeeFilter defines criteria for listing employees
type EmployeeFilter struct {
	Limit        int
	Offset       int
	DepartmentID *int64
	ManagerID    *int64
}

// EmployeeRepository persists employees together with the associations they
// own: Update writes the jobs and job history back-references as well as the
// employee row. Loaded employees come back with their jobs and job history
// attached through the domain mutators.
type EmployeeRepository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter EmployeeFilter) ([]*Employee, error)
}

// DepartmentRepository.Update writes the department's location reference.
type DepartmentRepository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id int64) (*Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Department, error)
}

// JobRepository.Update writes the job's employee reference and replaces its
// task links with the job's current tasks.
type JobRepository interface {
	Create(ctx context.Context, j *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Update(ctx context.Context, j *Job) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Job, error)
}

// JobHistoryRepository.Update writes the history's employee, job and
// department references.
type JobHistoryRepository interface {
	Create(ctx context.Context, h *JobHistory) error
	GetByID(ctx context.Context, id int64) (*JobHistory, error)
	Update(ctx context.Context, h *JobHistory) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*JobHistory, error)
}

// TaskRepository loads tasks with shallow references to the jobs that
// include them. The job/task links are written by JobRepository.
type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id int64) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Task, error)
}

// LocationRepository.Update writes the location's country reference.
type LocationRepository interface {
	Create(ctx context.Context, l *Location) error
	GetByID(ctx context.Context, id int64) (*Location, error)
	Update(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Location, error)
}

// CountryRepository.Update writes the country's region reference.
type CountryRepository interface {
	Create(ctx context.Context, c *Country) error
	GetByID(ctx context.Context, id int64) (*Country, error)
	Update(ctx context.Context, c *Country) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Country, error)
}

type RegionRepository interface {
	Create(ctx context.Context, r *Region) error
	GetByID(ctx context.Context, id int64) (*Region, error)
	Update(ctx context.Context, r *Region) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Region, error)
}
