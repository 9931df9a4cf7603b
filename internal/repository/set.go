package repository

import (
	"database/sql"

	"github.com/locvowork/practiceapp/internal/domain"
)

// Set bundles one repository per aggregate over the same backing store.
type Set struct {
	Employees    domain.EmployeeRepository
	Departments  domain.DepartmentRepository
	Jobs         domain.JobRepository
	JobHistories domain.JobHistoryRepository
	Tasks        domain.TaskRepository
	Locations    domain.LocationRepository
	Countries    domain.CountryRepository
	Regions      domain.RegionRepository
}

func NewPostgresSet(db *sql.DB) Set {
	return Set{
		Employees:    NewEmployeeRepository(db),
		Departments:  NewDepartmentRepository(db),
		Jobs:         NewJobRepository(db),
		JobHistories: NewJobHistoryRepository(db),
		Tasks:        NewTaskRepository(db),
		Locations:    NewLocationRepository(db),
		Countries:    NewCountryRepository(db),
		Regions:      NewRegionRepository(db),
	}
}

func (s *MemoryStore) Set() Set {
	return Set{
		Employees:    s.Employees(),
		Departments:  s.Departments(),
		Jobs:         s.Jobs(),
		JobHistories: s.JobHistories(),
		Tasks:        s.Tasks(),
		Locations:    s.Locations(),
		Countries:    s.Countries(),
		Regions:      s.Regions(),
	}
}
