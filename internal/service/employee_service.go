package service

import (
	"context"
	"strings"
	"time"

	"github.com/locvowork/practiceapp/internal/database"
	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/logger"
)

// EmployeeInput carries the writable fields of an employee. Nil JobIDs
// leaves the jobs of an existing employee untouched; an empty slice releases
// them all. A nil JobHistoryID likewise leaves the job history as is.
type EmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	PhoneNumber   string
	HireDate      *time.Time
	Salary        *int64
	CommissionPct *int64
	ManagerID     *int64
	DepartmentID  *int64
	JobIDs        []int64
	JobHistoryID  *int64
}

func (in EmployeeInput) validate() error {
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return invalid("employee needs a first or last name")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		return invalid("invalid email %q", in.Email)
	}
	if in.Salary != nil && *in.Salary < 0 {
		return invalid("salary must not be negative")
	}
	if in.CommissionPct != nil && (*in.CommissionPct < 0 || *in.CommissionPct > 100) {
		return invalid("commission_pct must be between 0 and 100")
	}
	return nil
}

// EmployeeService composes the repositories with the association mutators of
// the domain model. Every mutation persists the owning employee, whose
// repository writes the back-references of its jobs and job history.
type EmployeeService struct {
	*core
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*EmployeeDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &domain.Employee{}
	touched, err := s.apply(ctx, e, in)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Employees.Create(ctx, e); err != nil {
		return nil, err
	}
	logger.InfoLog(ctx, "Created employee %d", *e.ID)

	s.archiveHistory(ctx, e.JobHistory())
	s.reindex(ctx, append(touched, *e.ID)...)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*EmployeeDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toEmployeeDTO(e)
	return &dto, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, in EmployeeInput) (*EmployeeDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := e.JobHistory()
	touched, err := s.apply(ctx, e, in)
	if err != nil {
		return nil, err
	}
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return nil, err
	}
	logger.InfoLog(ctx, "Updated employee %d", id)

	if h := e.JobHistory(); !h.Equal(previous) {
		s.archiveHistory(ctx, h)
	}
	s.reindex(ctx, append(touched, id)...)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

// apply copies in onto e and resolves its references. It returns the ids of
// other employees that lost a job or the job history to e.
func (s *EmployeeService) apply(ctx context.Context, e *domain.Employee, in EmployeeInput) ([]int64, error) {
	manager, err := s.managerRef(ctx, in.ManagerID)
	if err != nil {
		return nil, err
	}
	department, err := s.departmentRef(ctx, in.DepartmentID)
	if err != nil {
		return nil, err
	}

	var jobs []*domain.Job
	if in.JobIDs != nil {
		jobs = make([]*domain.Job, 0, len(in.JobIDs))
		for _, jid := range in.JobIDs {
			job, err := s.jobRef(ctx, &jid)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, job)
		}
	}

	var history *domain.JobHistory
	if in.JobHistoryID != nil {
		history, err = s.repos.JobHistories.GetByID(ctx, *in.JobHistoryID)
		if err != nil {
			return nil, reference("job history", *in.JobHistoryID, err)
		}
	}

	e.FirstName = in.FirstName
	e.LastName = in.LastName
	e.Email = in.Email
	e.PhoneNumber = in.PhoneNumber
	e.HireDate = in.HireDate
	e.Salary = in.Salary
	e.CommissionPct = in.CommissionPct
	e.SetManager(manager)
	e.SetDepartment(department)

	var touched []int64
	if in.JobIDs != nil {
		for _, job := range jobs {
			if owner := job.Employee(); owner != nil && !owner.Equal(e) {
				touched = append(touched, ownerID(owner)...)
			}
		}
		e.SetJobs(jobs)
	}
	if history != nil {
		if owner := history.Employee(); owner != nil && !owner.Equal(e) {
			touched = append(touched, ownerID(owner)...)
		}
		e.SetJobHistory(history)
	}
	return touched, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports, err := s.repos.Employees.List(ctx, domain.EmployeeFilter{ManagerID: &id})
	if err != nil {
		return err
	}
	if err := s.repos.Employees.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted employee %d", id)

	ids := []int64{id}
	for _, r := range reports {
		ids = append(ids, *r.ID)
	}
	s.reindex(ctx, ids...)
	return nil
}

func (s *EmployeeService) List(ctx context.Context, filter domain.EmployeeFilter) ([]EmployeeDTO, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, invalid("limit and offset must not be negative")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.repos.Employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toEmployeeDTOs(employees), nil
}

// AssignJob adds the job to the employee, moving it away from any previous
// employee.
func (s *EmployeeService) AssignJob(ctx context.Context, id, jobID int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := s.repos.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	var touched []int64
	if owner := job.Employee(); owner != nil && !owner.Equal(e) {
		touched = ownerID(owner)
	}

	e.AddJob(job)
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return nil, err
	}
	logger.InfoLog(ctx, "Assigned job %d to employee %d", jobID, id)

	s.reindex(ctx, append(touched, id)...)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

// ReleaseJob removes the job from the employee. Releasing a job the
// employee does not hold changes nothing.
func (s *EmployeeService) ReleaseJob(ctx context.Context, id, jobID int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.repos.Jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	var held *domain.Job
	for _, job := range e.Jobs() {
		if *job.ID == jobID {
			held = job
		}
	}
	if held != nil {
		e.RemoveJob(held)
		if err := s.repos.Employees.Update(ctx, e); err != nil {
			return nil, err
		}
		logger.InfoLog(ctx, "Released job %d from employee %d", jobID, id)
		s.reindex(ctx, id)
	}
	dto := toEmployeeDTO(e)
	return &dto, nil
}

// ReplaceJobs detaches every current job of the employee and attaches jobIDs.
func (s *EmployeeService) ReplaceJobs(ctx context.Context, id int64, jobIDs []int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	jobs := make([]*domain.Job, 0, len(jobIDs))
	var touched []int64
	for _, jid := range jobIDs {
		job, err := s.jobRef(ctx, &jid)
		if err != nil {
			return nil, err
		}
		if owner := job.Employee(); owner != nil && !owner.Equal(e) {
			touched = append(touched, ownerID(owner)...)
		}
		jobs = append(jobs, job)
	}

	e.SetJobs(jobs)
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return nil, err
	}
	s.reindex(ctx, append(touched, id)...)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

// SetJobHistory attaches the job history to the employee. The employee's
// previous job history is detached, and so is the history's previous
// employee.
func (s *EmployeeService) SetJobHistory(ctx context.Context, id, historyID int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	h, err := s.repos.JobHistories.GetByID(ctx, historyID)
	if err != nil {
		return nil, err
	}
	var touched []int64
	if owner := h.Employee(); owner != nil && !owner.Equal(e) {
		touched = ownerID(owner)
	}

	e.SetJobHistory(h)
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return nil, err
	}
	logger.InfoLog(ctx, "Attached job history %d to employee %d", historyID, id)

	s.archiveHistory(ctx, h)
	s.reindex(ctx, append(touched, id)...)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

func (s *EmployeeService) ClearJobHistory(ctx context.Context, id int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.JobHistory() != nil {
		e.SetJobHistory(nil)
		if err := s.repos.Employees.Update(ctx, e); err != nil {
			return nil, err
		}
		s.reindex(ctx, id)
	}
	dto := toEmployeeDTO(e)
	return &dto, nil
}

// SetManager points the employee at managerID, or clears the manager when
// managerID is nil. Self-management and cycles are accepted.
func (s *EmployeeService) SetManager(ctx context.Context, id int64, managerID *int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	manager, err := s.managerRef(ctx, managerID)
	if err != nil {
		return nil, err
	}
	e.SetManager(manager)
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return nil, err
	}
	s.reindex(ctx, id)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

func (s *EmployeeService) SetDepartment(ctx context.Context, id int64, departmentID *int64) (*EmployeeDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	department, err := s.departmentRef(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	e.SetDepartment(department)
	if err := s.repos.Employees.Update(ctx, e); err != nil {
		return nil, err
	}
	s.reindex(ctx, id)
	dto := toEmployeeDTO(e)
	return &dto, nil
}

// Search queries the employee index by name, department or job title.
func (s *EmployeeService) Search(ctx context.Context, query string) ([]database.EmployeeDoc, error) {
	if s.index == nil {
		return nil, ErrSearchDisabled
	}
	if strings.TrimSpace(query) == "" {
		return nil, invalid("search query is empty")
	}
	return s.index.SearchEmployeesByName(ctx, query)
}

// Roster lists every employee as a flat export row.
func (s *EmployeeService) Roster(ctx context.Context) ([]RosterRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.repos.Employees.List(ctx, domain.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	rows := make([]RosterRow, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, toRosterRow(e))
	}
	return rows, nil
}
