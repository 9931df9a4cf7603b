package handler

import (
	"time"

	"github.com/locvowork/practiceapp/internal/service"
)

// EmployeeRequest is the body of employee create and update. Omitting
// job_ids or job_history_id on update leaves those associations unchanged.
type EmployeeRequest struct {
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phone_number"`
	HireDate      *time.Time `json:"hire_date"`
	Salary        *int64     `json:"salary"`
	CommissionPct *int64     `json:"commission_pct"`
	ManagerID     *int64     `json:"manager_id"`
	DepartmentID  *int64     `json:"department_id"`
	JobIDs        []int64    `json:"job_ids"`
	JobHistoryID  *int64     `json:"job_history_id"`
}

func (r EmployeeRequest) toInput() service.EmployeeInput {
	return service.EmployeeInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		PhoneNumber:   r.PhoneNumber,
		HireDate:      r.HireDate,
		Salary:        r.Salary,
		CommissionPct: r.CommissionPct,
		ManagerID:     r.ManagerID,
		DepartmentID:  r.DepartmentID,
		JobIDs:        r.JobIDs,
		JobHistoryID:  r.JobHistoryID,
	}
}

type JobIDsRequest struct {
	JobIDs []int64 `json:"job_ids"`
}

type DepartmentRequest struct {
	DepartmentName string `json:"department_name"`
	LocationID     *int64 `json:"location_id"`
}

func (r DepartmentRequest) toInput() service.DepartmentInput {
	return service.DepartmentInput{DepartmentName: r.DepartmentName, LocationID: r.LocationID}
}

// JobRequest is the body of job create and update. Omitting task_ids on
// update leaves the tasks unchanged; an empty list clears them.
type JobRequest struct {
	JobTitle  string  `json:"job_title"`
	MinSalary *int64  `json:"min_salary"`
	MaxSalary *int64  `json:"max_salary"`
	TaskIDs   []int64 `json:"task_ids"`
}

func (r JobRequest) toInput() service.JobInput {
	return service.JobInput{JobTitle: r.JobTitle, MinSalary: r.MinSalary, MaxSalary: r.MaxSalary, TaskIDs: r.TaskIDs}
}

type JobHistoryRequest struct {
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Language     string     `json:"language"`
	JobID        *int64     `json:"job_id"`
	DepartmentID *int64     `json:"department_id"`
}

func (r JobHistoryRequest) toInput() service.JobHistoryInput {
	return service.JobHistoryInput{
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Language:     r.Language,
		JobID:        r.JobID,
		DepartmentID: r.DepartmentID,
	}
}

type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LocationRequest struct {
	StreetAddress string `json:"street_address"`
	PostalCode    string `json:"postal_code"`
	City          string `json:"city"`
	StateProvince string `json:"state_province"`
	CountryID     *int64 `json:"country_id"`
}

func (r LocationRequest) toInput() service.LocationInput {
	return service.LocationInput{
		StreetAddress: r.StreetAddress,
		PostalCode:    r.PostalCode,
		City:          r.City,
		StateProvince: r.StateProvince,
		CountryID:     r.CountryID,
	}
}

type CountryRequest struct {
	CountryName string `json:"country_name"`
	RegionID    *int64 `json:"region_id"`
}

type RegionRequest struct {
	RegionName string `json:"region_name"`
}
