package service

import (
	"context"
	"strings"
	"time"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/logger"
)

// DepartmentInput replaces the department's fields; a nil LocationID leaves
// the department without a location.
type DepartmentInput struct {
	DepartmentName string
	LocationID     *int64
}

// JobInput replaces the job's own fields. TaskIDs replaces the job's tasks;
// nil keeps them on update.
type JobInput struct {
	JobTitle  string
	MinSalary *int64
	MaxSalary *int64
	TaskIDs   []int64
}

type JobHistoryInput struct {
	StartDate    *time.Time
	EndDate      *time.Time
	Language     string
	JobID        *int64
	DepartmentID *int64
}

func (in DepartmentInput) validate() error {
	if strings.TrimSpace(in.DepartmentName) == "" {
		return invalid("department_name is required")
	}
	return nil
}

func (in JobInput) validate() error {
	if strings.TrimSpace(in.JobTitle) == "" {
		return invalid("job_title is required")
	}
	if (in.MinSalary != nil && *in.MinSalary < 0) || (in.MaxSalary != nil && *in.MaxSalary < 0) {
		return invalid("salaries must not be negative")
	}
	if in.MinSalary != nil && in.MaxSalary != nil && *in.MinSalary > *in.MaxSalary {
		return invalid("min_salary %d exceeds max_salary %d", *in.MinSalary, *in.MaxSalary)
	}
	return nil
}

func (in JobHistoryInput) validate() (domain.Language, error) {
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return "", invalid("end_date is before start_date")
	}
	return domain.ParseLanguage(in.Language)
}

// CatalogService manages the entities employees refer to and the reference
// data behind them.
type CatalogService struct {
	*core
}

func (s *CatalogService) CreateDepartment(ctx context.Context, in DepartmentInput) (*DepartmentDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	location, err := s.locationRef(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	d := (&domain.Department{DepartmentName: strings.TrimSpace(in.DepartmentName)}).WithLocation(location)
	if err := s.repos.Departments.Create(ctx, d); err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(d)
	return &dto, nil
}

func (s *CatalogService) GetDepartment(ctx context.Context, id int64) (*DepartmentDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.repos.Departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDepartmentDTO(d)
	return &dto, nil
}

func (s *CatalogService) UpdateDepartment(ctx context.Context, id int64, in DepartmentInput) (*DepartmentDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.repos.Departments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	location, err := s.locationRef(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	d.DepartmentName = strings.TrimSpace(in.DepartmentName)
	d.SetLocation(location)
	if err := s.repos.Departments.Update(ctx, d); err != nil {
		return nil, err
	}
	s.reindexDepartment(ctx, id)
	dto := toDepartmentDTO(d)
	return &dto, nil
}

// DeleteDepartment removes the department; employees and job histories that
// referenced it keep no department.
func (s *CatalogService) DeleteDepartment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, err := s.repos.Employees.List(ctx, domain.EmployeeFilter{DepartmentID: &id})
	if err != nil {
		return err
	}
	if err := s.repos.Departments.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted department %d", id)

	ids := make([]int64, 0, len(members))
	for _, e := range members {
		ids = append(ids, *e.ID)
	}
	s.reindex(ctx, ids...)
	return nil
}

func (s *CatalogService) ListDepartments(ctx context.Context) ([]DepartmentDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	departments, err := s.repos.Departments.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DepartmentDTO, 0, len(departments))
	for _, d := range departments {
		out = append(out, toDepartmentDTO(d))
	}
	return out, nil
}

func (s *CatalogService) reindexDepartment(ctx context.Context, id int64) {
	if s.index == nil {
		return
	}
	members, err := s.repos.Employees.List(ctx, domain.EmployeeFilter{DepartmentID: &id})
	if err != nil {
		logger.WarnLog(ctx, "Failed to list members of department %d: %v", id, err)
		return
	}
	ids := make([]int64, 0, len(members))
	for _, e := range members {
		ids = append(ids, *e.ID)
	}
	s.reindex(ctx, ids...)
}

func (s *CatalogService) CreateJob(ctx context.Context, in JobInput) (*JobDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.taskRefs(ctx, in.TaskIDs)
	if err != nil {
		return nil, err
	}
	j := (&domain.Job{JobTitle: strings.TrimSpace(in.JobTitle), MinSalary: in.MinSalary, MaxSalary: in.MaxSalary}).
		WithTasks(tasks...)
	if err := s.repos.Jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	dto := toJobDTO(j)
	return &dto, nil
}

func (s *CatalogService) GetJob(ctx context.Context, id int64) (*JobDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, err := s.repos.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toJobDTO(j)
	return &dto, nil
}

// UpdateJob rewrites the job's own fields and, when TaskIDs is set, its
// tasks. Ownership changes go through EmployeeService.
func (s *CatalogService) UpdateJob(ctx context.Context, id int64, in JobInput) (*JobDTO, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.repos.Jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.TaskIDs != nil {
		tasks, err := s.taskRefs(ctx, in.TaskIDs)
		if err != nil {
			return nil, err
		}
		j.SetTasks(tasks)
	}
	j.JobTitle = strings.TrimSpace(in.JobTitle)
	j.MinSalary = in.MinSalary
	j.MaxSalary = in.MaxSalary
	if err := s.repos.Jobs.Update(ctx, j); err != nil {
		return nil, err
	}
	s.reindex(ctx, ownerID(j.Employee())...)
	dto := toJobDTO(j)
	return &dto, nil
}

func (s *CatalogService) DeleteJob(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, err := s.repos.Jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner := ownerID(j.Employee())
	if err := s.repos.Jobs.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted job %d", id)
	s.reindex(ctx, owner...)
	return nil
}

func (s *CatalogService) ListJobs(ctx context.Context) ([]JobDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs, err := s.repos.Jobs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]JobDTO, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobDTO(j))
	}
	return out, nil
}

func (s *CatalogService) CreateJobHistory(ctx context.Context, in JobHistoryInput) (*JobHistoryDTO, error) {
	lang, err := in.validate()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h := &domain.JobHistory{StartDate: in.StartDate, EndDate: in.EndDate, Language: lang}
	if err := s.resolveHistoryRefs(ctx, h, in); err != nil {
		return nil, err
	}
	if err := s.repos.JobHistories.Create(ctx, h); err != nil {
		return nil, err
	}
	dto := toJobHistoryDTO(h)
	return &dto, nil
}

func (s *CatalogService) GetJobHistory(ctx context.Context, id int64) (*JobHistoryDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, err := s.repos.JobHistories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toJobHistoryDTO(h)
	return &dto, nil
}

// UpdateJobHistory rewrites dates, language, job and department. The owning
// employee is changed through EmployeeService.SetJobHistory only.
func (s *CatalogService) UpdateJobHistory(ctx context.Context, id int64, in JobHistoryInput) (*JobHistoryDTO, error) {
	lang, err := in.validate()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.repos.JobHistories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.resolveHistoryRefs(ctx, h, in); err != nil {
		return nil, err
	}
	h.StartDate = in.StartDate
	h.EndDate = in.EndDate
	h.Language = lang
	if err := s.repos.JobHistories.Update(ctx, h); err != nil {
		return nil, err
	}
	s.archiveHistory(ctx, h)
	s.reindex(ctx, ownerID(h.Employee())...)
	dto := toJobHistoryDTO(h)
	return &dto, nil
}

func (s *CatalogService) resolveHistoryRefs(ctx context.Context, h *domain.JobHistory, in JobHistoryInput) error {
	job, err := s.jobRef(ctx, in.JobID)
	if err != nil {
		return err
	}
	department, err := s.departmentRef(ctx, in.DepartmentID)
	if err != nil {
		return err
	}
	h.SetJob(job)
	h.SetDepartment(department)
	return nil
}

func (s *CatalogService) DeleteJobHistory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, err := s.repos.JobHistories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	owner := ownerID(h.Employee())
	if err := s.repos.JobHistories.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoLog(ctx, "Deleted job history %d", id)
	s.reindex(ctx, owner...)
	return nil
}

func (s *CatalogService) ListJobHistories(ctx context.Context) ([]JobHistoryDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	histories, err := s.repos.JobHistories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]JobHistoryDTO, 0, len(histories))
	for _, h := range histories {
		out = append(out, toJobHistoryDTO(h))
	}
	return out, nil
}
