package service

import (
	"strings"
	"time"

	"github.com/locvowork/practiceapp/internal/domain"
)

// EmployeeDTO is a detached view of an employee and the associations it owns.
type EmployeeDTO struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	PhoneNumber    string         `json:"phone_number"`
	HireDate       *time.Time     `json:"hire_date,omitempty"`
	Salary         *int64         `json:"salary,omitempty"`
	CommissionPct  *int64         `json:"commission_pct,omitempty"`
	ManagerID      *int64         `json:"manager_id,omitempty"`
	DepartmentID   *int64         `json:"department_id,omitempty"`
	DepartmentName string         `json:"department_name,omitempty"`
	Jobs           []JobDTO       `json:"jobs"`
	JobHistory     *JobHistoryDTO `json:"job_history,omitempty"`
}

type DepartmentDTO struct {
	ID             int64  `json:"id"`
	DepartmentName string `json:"department_name"`
	LocationID     *int64 `json:"location_id,omitempty"`
}

type JobDTO struct {
	ID         int64   `json:"id"`
	JobTitle   string  `json:"job_title"`
	MinSalary  *int64  `json:"min_salary,omitempty"`
	MaxSalary  *int64  `json:"max_salary,omitempty"`
	EmployeeID *int64  `json:"employee_id,omitempty"`
	TaskIDs    []int64 `json:"task_ids"`
}

type TaskDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	JobIDs      []int64 `json:"job_ids"`
}

type LocationDTO struct {
	ID            int64  `json:"id"`
	StreetAddress string `json:"street_address"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	CountryID     *int64 `json:"country_id,omitempty"`
}

type CountryDTO struct {
	ID          int64  `json:"id"`
	CountryName string `json:"country_name"`
	RegionID    *int64 `json:"region_id,omitempty"`
}

type RegionDTO struct {
	ID         int64  `json:"id"`
	RegionName string `json:"region_name"`
}

type JobHistoryDTO struct {
	ID           int64      `json:"id"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Language     string     `json:"language,omitempty"`
	JobID        *int64     `json:"job_id,omitempty"`
	DepartmentID *int64     `json:"department_id,omitempty"`
	EmployeeID   *int64     `json:"employee_id,omitempty"`
}

// RosterRow is one flattened line of the employee export.
type RosterRow struct {
	ID         int64
	FullName   string
	Email      string
	Department string
	Manager    string
	JobTitles  string
	Language   string
	HireDate   string
	Salary     int64
}

func cloneInt64(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func toEmployeeDTO(e *domain.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:            *e.ID,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Email:         e.Email,
		PhoneNumber:   e.PhoneNumber,
		HireDate:      e.HireDate,
		Salary:        cloneInt64(e.Salary),
		CommissionPct: cloneInt64(e.CommissionPct),
		Jobs:          make([]JobDTO, 0, len(e.Jobs())),
	}
	if m := e.Manager(); m != nil {
		dto.ManagerID = cloneInt64(m.ID)
	}
	if d := e.Department(); d != nil {
		dto.DepartmentID = cloneInt64(d.ID)
		dto.DepartmentName = d.DepartmentName
	}
	for _, job := range e.Jobs() {
		dto.Jobs = append(dto.Jobs, toJobDTO(job))
	}
	if h := e.JobHistory(); h != nil {
		hd := toJobHistoryDTO(h)
		dto.JobHistory = &hd
	}
	return dto
}

func toEmployeeDTOs(employees []*domain.Employee) []EmployeeDTO {
	out := make([]EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		out = append(out, toEmployeeDTO(e))
	}
	return out
}

func toDepartmentDTO(d *domain.Department) DepartmentDTO {
	dto := DepartmentDTO{ID: *d.ID, DepartmentName: d.DepartmentName}
	if l := d.Location(); l != nil {
		dto.LocationID = cloneInt64(l.ID)
	}
	return dto
}

func toJobDTO(j *domain.Job) JobDTO {
	dto := JobDTO{
		ID:        *j.ID,
		JobTitle:  j.JobTitle,
		MinSalary: cloneInt64(j.MinSalary),
		MaxSalary: cloneInt64(j.MaxSalary),
		TaskIDs:   make([]int64, 0, len(j.Tasks())),
	}
	if owner := j.Employee(); owner != nil {
		dto.EmployeeID = cloneInt64(owner.ID)
	}
	for _, t := range j.Tasks() {
		dto.TaskIDs = append(dto.TaskIDs, *t.ID)
	}
	return dto
}

func toTaskDTO(t *domain.Task) TaskDTO {
	dto := TaskDTO{
		ID:          *t.ID,
		Title:       t.Title,
		Description: t.Description,
		JobIDs:      make([]int64, 0, len(t.Jobs())),
	}
	for _, j := range t.Jobs() {
		if j.ID != nil {
			dto.JobIDs = append(dto.JobIDs, *j.ID)
		}
	}
	return dto
}

func toLocationDTO(l *domain.Location) LocationDTO {
	dto := LocationDTO{
		ID:            *l.ID,
		StreetAddress: l.StreetAddress,
		PostalCode:    l.PostalCode,
		City:          l.City,
		StateProvince: l.StateProvince,
	}
	if c := l.Country(); c != nil {
		dto.CountryID = cloneInt64(c.ID)
	}
	return dto
}

func toCountryDTO(c *domain.Country) CountryDTO {
	dto := CountryDTO{ID: *c.ID, CountryName: c.CountryName}
	if r := c.Region(); r != nil {
		dto.RegionID = cloneInt64(r.ID)
	}
	return dto
}

func toRegionDTO(r *domain.Region) RegionDTO {
	return RegionDTO{ID: *r.ID, RegionName: r.RegionName}
}

func toJobHistoryDTO(h *domain.JobHistory) JobHistoryDTO {
	dto := JobHistoryDTO{
		ID:        *h.ID,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
		Language:  string(h.Language),
	}
	if j := h.Job(); j != nil {
		dto.JobID = cloneInt64(j.ID)
	}
	if d := h.Department(); d != nil {
		dto.DepartmentID = cloneInt64(d.ID)
	}
	if e := h.Employee(); e != nil {
		dto.EmployeeID = cloneInt64(e.ID)
	}
	return dto
}

func toRosterRow(e *domain.Employee) RosterRow {
	row := RosterRow{ID: *e.ID, FullName: e.FullName(), Email: e.Email}
	if d := e.Department(); d != nil {
		row.Department = d.DepartmentName
	}
	if m := e.Manager(); m != nil {
		row.Manager = m.FullName()
	}
	titles := make([]string, 0, len(e.Jobs()))
	for _, job := range e.Jobs() {
		titles = append(titles, job.JobTitle)
	}
	row.JobTitles = strings.Join(titles, ", ")
	if h := e.JobHistory(); h != nil {
		row.Language = string(h.Language)
	}
	if e.HireDate != nil {
		row.HireDate = e.HireDate.Format("2006-01-02")
	}
	if e.Salary != nil {
		row.Salary = *e.Salary
	}
	return row
}
