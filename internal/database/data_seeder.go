package database

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/locvowork/practiceapp/internal/domain"
	"github.com/locvowork/practiceapp/internal/logger"
	"github.com/locvowork/practiceapp/internal/repository"
)

type DataSeeder struct {
	repos   repository.Set
	archive *DatastoreClient
	rnd     *rand.Rand
}

// NewDataSeeder builds a seeder. archive may be nil, in which case no job
// history snapshots are written.
func NewDataSeeder(repos repository.Set, archive *DatastoreClient) *DataSeeder {
	return &DataSeeder{
		repos:   repos,
		archive: archive,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var (
	departmentNames = []string{"Engineering", "Finance", "Sales", "Marketing", "Operations", "Legal", "Support", "Research"}
	firstNames      = []string{"Ada", "Alan", "Grace", "Edsger", "Barbara", "Donald", "Margaret", "Ken", "Frances", "Dennis"}
	lastNames       = []string{"Lovelace", "Turing", "Hopper", "Dijkstra", "Liskov", "Knuth", "Hamilton", "Thompson", "Allen", "Ritchie"}
	jobTitles       = []string{"Engineer", "Analyst", "Accountant", "Manager", "Designer", "Recruiter", "Counsel", "Technician"}
	languages       = []domain.Language{domain.LanguageFrench, domain.LanguageEnglish, domain.LanguageSpanish}
	taskTitles      = []string{"Code review", "Budget planning", "Onboarding", "Incident triage", "Quarterly report"}
	places          = []struct{ region, country, city string }{
		{"Europe", "France", "Paris"},
		{"Europe", "Spain", "Madrid"},
		{"Americas", "Canada", "Toronto"},
		{"Asia", "Japan", "Osaka"},
	}
)

type SeedStats struct {
	Regions     int
	Countries   int
	Locations   int
	Tasks       int
	Departments int
	Employees   int
	Jobs        int
	Histories   int
	Snapshots   int
}

// SeedData creates the location reference data and a task pool, then
// departments at those locations, then employees reporting to earlier
// employees, each owning jobsPerEmployee jobs and one job history.
func (ds *DataSeeder) SeedData(ctx context.Context, numDepartments, numEmployees, jobsPerEmployee int) (SeedStats, error) {
	var stats SeedStats
	start := time.Now()
	logger.InfoLog(ctx, "Seeding %d departments, %d employees, %d jobs per employee", numDepartments, numEmployees, jobsPerEmployee)

	locations, err := ds.seedLocations(ctx, &stats)
	if err != nil {
		return stats, err
	}
	tasks := make([]*domain.Task, 0, len(taskTitles))
	for _, title := range taskTitles {
		t := &domain.Task{Title: title}
		if err := ds.repos.Tasks.Create(ctx, t); err != nil {
			return stats, fmt.Errorf("failed to create task: %w", err)
		}
		tasks = append(tasks, t)
	}
	stats.Tasks = len(tasks)

	departments := make([]*domain.Department, 0, numDepartments)
	for i := 0; i < numDepartments; i++ {
		d := (&domain.Department{DepartmentName: pick(ds.rnd, departmentNames) + fmt.Sprintf(" %d", i+1)}).
			WithLocation(pick(ds.rnd, locations))
		if err := ds.repos.Departments.Create(ctx, d); err != nil {
			return stats, fmt.Errorf("failed to create department: %w", err)
		}
		departments = append(departments, d)
	}
	stats.Departments = len(departments)

	employees := make([]*domain.Employee, 0, numEmployees)
	for i := 0; i < numEmployees; i++ {
		e, err := ds.seedEmployee(ctx, i, employees, departments, tasks, jobsPerEmployee, &stats)
		if err != nil {
			return stats, err
		}
		employees = append(employees, e)
	}
	stats.Employees = len(employees)

	logger.InfoLog(ctx, "Seeding done in %v: %+v", time.Since(start), stats)
	return stats, nil
}

// seedLocations creates one location per entry of places, sharing regions
// and countries by name.
func (ds *DataSeeder) seedLocations(ctx context.Context, stats *SeedStats) ([]*domain.Location, error) {
	regions := make(map[string]*domain.Region)
	countries := make(map[string]*domain.Country)
	locations := make([]*domain.Location, 0, len(places))
	for _, p := range places {
		region, ok := regions[p.region]
		if !ok {
			region = &domain.Region{RegionName: p.region}
			if err := ds.repos.Regions.Create(ctx, region); err != nil {
				return nil, fmt.Errorf("failed to create region: %w", err)
			}
			regions[p.region] = region
		}
		country, ok := countries[p.country]
		if !ok {
			country = (&domain.Country{CountryName: p.country}).WithRegion(region)
			if err := ds.repos.Countries.Create(ctx, country); err != nil {
				return nil, fmt.Errorf("failed to create country: %w", err)
			}
			countries[p.country] = country
		}
		l := (&domain.Location{City: p.city}).WithCountry(country)
		if err := ds.repos.Locations.Create(ctx, l); err != nil {
			return nil, fmt.Errorf("failed to create location: %w", err)
		}
		locations = append(locations, l)
	}
	stats.Regions = len(regions)
	stats.Countries = len(countries)
	stats.Locations = len(locations)
	return locations, nil
}

func (ds *DataSeeder) seedEmployee(ctx context.Context, n int, earlier []*domain.Employee, departments []*domain.Department, tasks []*domain.Task, jobsPerEmployee int, stats *SeedStats) (*domain.Employee, error) {
	hired := time.Date(2010+ds.rnd.Intn(14), time.Month(1+ds.rnd.Intn(12)), 1+ds.rnd.Intn(28), 0, 0, 0, 0, time.UTC)
	salary := int64(30000 + ds.rnd.Intn(90000))
	first, last := pick(ds.rnd, firstNames), pick(ds.rnd, lastNames)

	e := &domain.Employee{
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s.%d@example.com", first, last, n),
		HireDate:  &hired,
		Salary:    &salary,
	}
	if len(earlier) > 0 {
		e.SetManager(earlier[ds.rnd.Intn(len(earlier))])
	}
	var department *domain.Department
	if len(departments) > 0 {
		department = departments[ds.rnd.Intn(len(departments))]
		e.SetDepartment(department)
	}

	for j := 0; j < jobsPerEmployee; j++ {
		minSalary := int64(20000 + ds.rnd.Intn(20000))
		maxSalary := minSalary + int64(10000+ds.rnd.Intn(50000))
		job := &domain.Job{JobTitle: pick(ds.rnd, jobTitles), MinSalary: &minSalary, MaxSalary: &maxSalary}
		if len(tasks) > 0 {
			job.AddTask(pick(ds.rnd, tasks))
		}
		if err := ds.repos.Jobs.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to create job: %w", err)
		}
		e.AddJob(job)
		stats.Jobs++
	}

	if err := ds.repos.Employees.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	history := &domain.JobHistory{StartDate: &hired, Language: languages[ds.rnd.Intn(len(languages))]}
	if jobs := e.Jobs(); len(jobs) > 0 {
		history.SetJob(jobs[0])
	}
	history.SetDepartment(department)
	if err := ds.repos.JobHistories.Create(ctx, history); err != nil {
		return nil, fmt.Errorf("failed to create job history: %w", err)
	}
	e.SetJobHistory(history)
	if err := ds.repos.Employees.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to attach job history: %w", err)
	}
	stats.Histories++

	if ds.archive != nil {
		snap, err := NewJobHistorySnapshot(history, time.Now())
		if err != nil {
			return nil, err
		}
		if err := ds.archive.SaveSnapshot(ctx, snap); err != nil {
			return nil, err
		}
		stats.Snapshots++
	}
	return e, nil
}

// ClearData deletes every seeded row, owners first so the remaining rows
// never point at a deleted one.
func (ds *DataSeeder) ClearData(ctx context.Context) error {
	logger.WarnLog(ctx, "Clearing all data")

	employees, err := ds.repos.Employees.List(ctx, domain.EmployeeFilter{})
	if err != nil {
		return err
	}
	for _, e := range employees {
		if err := ds.repos.Employees.Delete(ctx, *e.ID); err != nil {
			return fmt.Errorf("failed to delete employee %d: %w", *e.ID, err)
		}
	}

	histories, err := ds.repos.JobHistories.List(ctx)
	if err != nil {
		return err
	}
	for _, h := range histories {
		if err := ds.repos.JobHistories.Delete(ctx, *h.ID); err != nil {
			return fmt.Errorf("failed to delete job history %d: %w", *h.ID, err)
		}
	}

	jobs, err := ds.repos.Jobs.List(ctx)
	if err != nil {
		return err
	}
	for _, j := range jobs {
		if err := ds.repos.Jobs.Delete(ctx, *j.ID); err != nil {
			return fmt.Errorf("failed to delete job %d: %w", *j.ID, err)
		}
	}

	departments, err := ds.repos.Departments.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range departments {
		if err := ds.repos.Departments.Delete(ctx, *d.ID); err != nil {
			return fmt.Errorf("failed to delete department %d: %w", *d.ID, err)
		}
	}

	tasks, err := ds.repos.Tasks.List(ctx)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := ds.repos.Tasks.Delete(ctx, *t.ID); err != nil {
			return fmt.Errorf("failed to delete task %d: %w", *t.ID, err)
		}
	}

	locations, err := ds.repos.Locations.List(ctx)
	if err != nil {
		return err
	}
	for _, l := range locations {
		if err := ds.repos.Locations.Delete(ctx, *l.ID); err != nil {
			return fmt.Errorf("failed to delete location %d: %w", *l.ID, err)
		}
	}

	countries, err := ds.repos.Countries.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range countries {
		if err := ds.repos.Countries.Delete(ctx, *c.ID); err != nil {
			return fmt.Errorf("failed to delete country %d: %w", *c.ID, err)
		}
	}

	regions, err := ds.repos.Regions.List(ctx)
	if err != nil {
		return err
	}
	for _, r := range regions {
		if err := ds.repos.Regions.Delete(ctx, *r.ID); err != nil {
			return fmt.Errorf("failed to delete region %d: %w", *r.ID, err)
		}
	}

	if ds.archive != nil {
		if err := ds.archive.DeleteAll(ctx); err != nil {
			return fmt.Errorf("failed to clear snapshots: %w", err)
		}
	}
	logger.InfoLog(ctx, "Cleared %d employees, %d job histories, %d jobs, %d departments, %d tasks, %d locations",
		len(employees), len(histories), len(jobs), len(departments), len(tasks), len(locations))
	return nil
}

// Presets
type SeedPreset string

const (
	PresetSmall  SeedPreset = "small"
	PresetMedium SeedPreset = "medium"
	PresetLarge  SeedPreset = "large"
)

// GetPresetConfig returns configuration for a preset
func GetPresetConfig(preset SeedPreset) (numDepartments, numEmployees, jobsPerEmployee int) {
	switch preset {
	case PresetSmall:
		return 3, 20, 1
	case PresetLarge:
		return 8, 1000, 3
	default:
		return 5, 200, 2
	}
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.Intn(len(items))]
}
