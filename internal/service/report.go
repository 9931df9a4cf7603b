package service

import (
	"context"
	"time"

	"github.com/locvowork/practiceapp/internal/domain"
)

// EmployeeReport summarises an employee's position in the organisation.
type EmployeeReport struct {
	EmployeeID     int64          `json:"employee_id"`
	FullName       string         `json:"full_name"`
	ManagerName    string         `json:"manager_name,omitempty"`
	DepartmentName string         `json:"department_name,omitempty"`
	DirectReports  []string       `json:"direct_reports"`
	Jobs           []JobDTO       `json:"jobs"`
	SalaryInRange  *bool          `json:"salary_in_range,omitempty"`
	JobHistory     *JobHistoryDTO `json:"job_history,omitempty"`
	TenureDays     *int           `json:"tenure_days,omitempty"`
}

func (s *EmployeeService) Report(ctx context.Context, id int64) (*EmployeeReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, err := s.repos.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	reports, err := s.repos.Employees.List(ctx, domain.EmployeeFilter{ManagerID: &id})
	if err != nil {
		return nil, err
	}

	dto := toEmployeeDTO(e)
	report := &EmployeeReport{
		EmployeeID:     id,
		FullName:       e.FullName(),
		DepartmentName: dto.DepartmentName,
		DirectReports:  make([]string, 0, len(reports)),
		Jobs:           dto.Jobs,
		JobHistory:     dto.JobHistory,
		SalaryInRange:  salaryInRange(e),
	}
	if m := e.Manager(); m != nil {
		report.ManagerName = m.FullName()
	}
	for _, r := range reports {
		report.DirectReports = append(report.DirectReports, r.FullName())
	}
	if e.HireDate != nil {
		days := int(s.now().Sub(*e.HireDate) / (24 * time.Hour))
		report.TenureDays = &days
	}
	return report, nil
}

// salaryInRange reports whether the salary lies within the band of at least
// one of the employee's jobs. It is nil when there is nothing to compare.
func salaryInRange(e *domain.Employee) *bool {
	if e.Salary == nil {
		return nil
	}
	var result *bool
	for _, job := range e.Jobs() {
		if job.MinSalary == nil && job.MaxSalary == nil {
			continue
		}
		in := (job.MinSalary == nil || *e.Salary >= *job.MinSalary) &&
			(job.MaxSalary == nil || *e.Salary <= *job.MaxSalary)
		if in {
			return &in
		}
		result = &in
	}
	return result
}
