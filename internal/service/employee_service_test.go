package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/practiceapp/internal/domain"
)

func TestEmployeeService_CreateWithAssociations(t *testing.T) {
	f := newFixture(t)
	dept := f.department(t, "Engineering")
	job := f.job(t, "Engineer")
	history := f.history(t, JobHistoryInput{Language: "english", JobID: &job.ID})
	manager := f.employee(t, "Grace")

	e, err := f.svc.Employees.Create(f.ctx, EmployeeInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		ManagerID:    &manager.ID,
		DepartmentID: &dept.ID,
		JobIDs:       []int64{job.ID},
		JobHistoryID: &history.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, &manager.ID, e.ManagerID)
	assert.Equal(t, "Engineering", e.DepartmentName)
	require.Len(t, e.Jobs, 1)
	assert.Equal(t, &e.ID, e.Jobs[0].EmployeeID)
	require.NotNil(t, e.JobHistory)
	assert.Equal(t, &e.ID, e.JobHistory.EmployeeID)
	assert.Equal(t, "ENGLISH", e.JobHistory.Language)

	stored, err := f.svc.Catalog.GetJob(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, &e.ID, stored.EmployeeID)

	doc, ok := f.index.doc(e.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"Engineer"}, doc.JobTitles)
	assert.Equal(t, "Engineering", doc.DepartmentName)

	require.Len(t, f.archive.snapshots, 1)
	assert.Equal(t, history.ID, f.archive.snapshots[0].HistoryID)
	assert.Equal(t, e.ID, f.archive.snapshots[0].EmployeeID)
	assert.Equal(t, testNow, f.archive.snapshots[0].ArchivedAt)
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]EmployeeInput{
		"no name":          {},
		"bad email":        {FirstName: "A", Email: "nope"},
		"negative salary":  {FirstName: "A", Salary: int64p(-1)},
		"commission > 100": {FirstName: "A", CommissionPct: int64p(101)},
		"missing manager":  {FirstName: "A", ManagerID: int64p(404)},
		"missing job":      {FirstName: "A", JobIDs: []int64{404}},
		"missing history":  {FirstName: "A", JobHistoryID: int64p(404)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Employees.Create(f.ctx, in)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
			assert.False(t, errors.Is(err, domain.ErrNotFound))
		})
	}
	all, err := f.svc.Employees.List(f.ctx, domain.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmployeeService_NotFound(t *testing.T) {
	f := newFixture(t)
	e := f.employee(t, "Ada")

	_, err := f.svc.Employees.Get(f.ctx, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.Employees.AssignJob(f.ctx, e.ID, 999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	_, err = f.svc.Employees.SetJobHistory(f.ctx, 999, 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(f.svc.Employees.Delete(f.ctx, 999), domain.ErrNotFound))
}

func TestEmployeeService_AssignJobMovesBetweenEmployees(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, "Analyst")
	first := f.employee(t, "First", func(in *EmployeeInput) { in.JobIDs = []int64{job.ID} })
	second := f.employee(t, "Second")

	got, err := f.svc.Employees.AssignJob(f.ctx, second.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{job.ID}, jobIDs(got.Jobs))

	reloaded, err := f.svc.Employees.Get(f.ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Jobs)

	doc, ok := f.index.doc(first.ID)
	require.True(t, ok)
	assert.Empty(t, doc.JobTitles, "previous owner is reindexed")

	again, err := f.svc.Employees.AssignJob(f.ctx, second.ID, job.ID)
	require.NoError(t, err)
	assert.Len(t, again.Jobs, 1)
}

func TestEmployeeService_ReleaseJob(t *testing.T) {
	f := newFixture(t)
	kept := f.job(t, "Kept")
	released := f.job(t, "Released")
	other := f.job(t, "Other")
	e := f.employee(t, "Ada", func(in *EmployeeInput) { in.JobIDs = []int64{kept.ID, released.ID} })

	got, err := f.svc.Employees.ReleaseJob(f.ctx, e.ID, released.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{kept.ID}, jobIDs(got.Jobs))

	job, err := f.svc.Catalog.GetJob(f.ctx, released.ID)
	require.NoError(t, err)
	assert.Nil(t, job.EmployeeID)

	got, err = f.svc.Employees.ReleaseJob(f.ctx, e.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{kept.ID}, jobIDs(got.Jobs))
}

func TestEmployeeService_ReplaceJobs(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.job(t, "A"), f.job(t, "B"), f.job(t, "C")
	e := f.employee(t, "Ada", func(in *EmployeeInput) { in.JobIDs = []int64{a.ID, b.ID} })

	got, err := f.svc.Employees.ReplaceJobs(f.ctx, e.ID, []int64{b.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, c.ID}, jobIDs(got.Jobs))

	dropped, err := f.svc.Catalog.GetJob(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, dropped.EmployeeID)

	got, err = f.svc.Employees.ReplaceJobs(f.ctx, e.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, got.Jobs)
}

func TestEmployeeService_UpdateKeepsJobsWhenOmitted(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, "Engineer")
	e := f.employee(t, "Ada", func(in *EmployeeInput) { in.JobIDs = []int64{job.ID} })

	got, err := f.svc.Employees.Update(f.ctx, e.ID, EmployeeInput{FirstName: "Augusta", LastName: "King"})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", got.FirstName)
	assert.Equal(t, []int64{job.ID}, jobIDs(got.Jobs))

	got, err = f.svc.Employees.Update(f.ctx, e.ID, EmployeeInput{FirstName: "Augusta", JobIDs: []int64{}})
	require.NoError(t, err)
	assert.Empty(t, got.Jobs)
}

func TestEmployeeService_JobHistoryMovesAndClears(t *testing.T) {
	f := newFixture(t)
	h := f.history(t, JobHistoryInput{Language: "FRENCH"})
	first := f.employee(t, "First")
	second := f.employee(t, "Second")

	_, err := f.svc.Employees.SetJobHistory(f.ctx, first.ID, h.ID)
	require.NoError(t, err)
	got, err := f.svc.Employees.SetJobHistory(f.ctx, second.ID, h.ID)
	require.NoError(t, err)
	require.NotNil(t, got.JobHistory)
	assert.Equal(t, &second.ID, got.JobHistory.EmployeeID)

	reloaded, err := f.svc.Employees.Get(f.ctx, first.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.JobHistory)
	require.Len(t, f.archive.snapshots, 2)
	assert.Equal(t, second.ID, f.archive.snapshots[1].EmployeeID)

	got, err = f.svc.Employees.ClearJobHistory(f.ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, got.JobHistory)
	history, err := f.svc.Catalog.GetJobHistory(f.ctx, h.ID)
	require.NoError(t, err)
	assert.Nil(t, history.EmployeeID)
}

func TestEmployeeService_ReplaceJobHistory(t *testing.T) {
	f := newFixture(t)
	old := f.history(t, JobHistoryInput{})
	next := f.history(t, JobHistoryInput{})
	e := f.employee(t, "Ada", func(in *EmployeeInput) { in.JobHistoryID = &old.ID })

	_, err := f.svc.Employees.SetJobHistory(f.ctx, e.ID, next.ID)
	require.NoError(t, err)

	detached, err := f.svc.Catalog.GetJobHistory(f.ctx, old.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.EmployeeID)
}

func TestEmployeeService_ManagerIsUnguarded(t *testing.T) {
	f := newFixture(t)
	a := f.employee(t, "A")
	b := f.employee(t, "B")

	got, err := f.svc.Employees.SetManager(f.ctx, a.ID, &b.ID)
	require.NoError(t, err)
	assert.Equal(t, &b.ID, got.ManagerID)

	got, err = f.svc.Employees.SetManager(f.ctx, b.ID, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, &a.ID, got.ManagerID, "cycles are accepted")

	got, err = f.svc.Employees.SetManager(f.ctx, a.ID, &a.ID)
	require.NoError(t, err)
	assert.Equal(t, &a.ID, got.ManagerID, "self-management is accepted")

	got, err = f.svc.Employees.SetManager(f.ctx, a.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)

	_, err = f.svc.Employees.SetManager(f.ctx, a.ID, int64p(999))
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEmployeeService_SetDepartment(t *testing.T) {
	f := newFixture(t)
	dept := f.department(t, "Sales")
	e := f.employee(t, "Ada")

	got, err := f.svc.Employees.SetDepartment(f.ctx, e.ID, &dept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sales", got.DepartmentName)

	got, err = f.svc.Employees.SetDepartment(f.ctx, e.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.DepartmentID)
}

func TestEmployeeService_DeleteDetachesReports(t *testing.T) {
	f := newFixture(t)
	job := f.job(t, "Boss")
	boss := f.employee(t, "Boss", func(in *EmployeeInput) { in.JobIDs = []int64{job.ID} })
	report := f.employee(t, "Report", func(in *EmployeeInput) { in.ManagerID = &boss.ID })

	require.NoError(t, f.svc.Employees.Delete(f.ctx, boss.ID))

	got, err := f.svc.Employees.Get(f.ctx, report.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ManagerID)

	freed, err := f.svc.Catalog.GetJob(f.ctx, job.ID)
	require.NoError(t, err)
	assert.Nil(t, freed.EmployeeID)

	_, ok := f.index.doc(boss.ID)
	assert.False(t, ok)
	assert.Contains(t, f.index.deleted, boss.ID)
}

func TestEmployeeService_ListFiltersAndPaging(t *testing.T) {
	f := newFixture(t)
	boss := f.employee(t, "Boss")
	for _, name := range []string{"A", "B", "C"} {
		f.employee(t, name, func(in *EmployeeInput) { in.ManagerID = &boss.ID })
	}

	got, err := f.svc.Employees.List(f.ctx, domain.EmployeeFilter{ManagerID: &boss.ID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].FirstName)

	_, err = f.svc.Employees.List(f.ctx, domain.EmployeeFilter{Limit: -1})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestEmployeeService_Report(t *testing.T) {
	f := newFixture(t)
	job, err := f.svc.Catalog.CreateJob(f.ctx, JobInput{JobTitle: "Engineer", MinSalary: int64p(50), MaxSalary: int64p(100)})
	require.NoError(t, err)
	hired := testNow.Add(-10 * 24 * time.Hour)
	boss := f.employee(t, "Boss")
	e := f.employee(t, "Ada", func(in *EmployeeInput) {
		in.ManagerID = &boss.ID
		in.JobIDs = []int64{job.ID}
		in.Salary = int64p(75)
		in.HireDate = &hired
	})
	f.employee(t, "Report", func(in *EmployeeInput) { in.ManagerID = &e.ID })

	report, err := f.svc.Employees.Report(f.ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Test", report.FullName)
	assert.Equal(t, "Boss Test", report.ManagerName)
	assert.Equal(t, []string{"Report Test"}, report.DirectReports)
	require.NotNil(t, report.SalaryInRange)
	assert.True(t, *report.SalaryInRange)
	require.NotNil(t, report.TenureDays)
	assert.Equal(t, 10, *report.TenureDays)

	bossReport, err := f.svc.Employees.Report(f.ctx, boss.ID)
	require.NoError(t, err)
	assert.Nil(t, bossReport.SalaryInRange)
	assert.Nil(t, bossReport.TenureDays)
}

func TestSalaryInRange(t *testing.T) {
	e := (&domain.Employee{Salary: int64p(200)}).
		AddJob(&domain.Job{ID: domain.NewID(1), MaxSalary: int64p(100)})
	require.NotNil(t, salaryInRange(e))
	assert.False(t, *salaryInRange(e))

	e.AddJob(&domain.Job{ID: domain.NewID(2), MinSalary: int64p(150)})
	assert.True(t, *salaryInRange(e))
}

func TestEmployeeService_SearchAndReindex(t *testing.T) {
	f := newFixture(t)
	f.employee(t, "Ada")
	f.employee(t, "Alan")

	docs, err := f.svc.Employees.Search(f.ctx, "Ada")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Ada", docs[0].FirstName)

	_, err = f.svc.Employees.Search(f.ctx, "  ")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	n, err := f.svc.Employees.Reindex(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 1, f.index.bulks)

	f.index.failAll = true
	_, err = f.svc.Employees.Reindex(f.ctx)
	assert.Error(t, err)
}

func TestEmployeeService_SearchDisabled(t *testing.T) {
	f := newFixture(t)
	svc := New(f.store.Set())

	_, err := svc.Employees.Search(f.ctx, "Ada")
	assert.ErrorIs(t, err, ErrSearchDisabled)
	_, err = svc.Employees.Reindex(f.ctx)
	assert.ErrorIs(t, err, ErrSearchDisabled)

	_, err = svc.Employees.Create(f.ctx, EmployeeInput{FirstName: "NoIndex"})
	assert.NoError(t, err)
}

func TestEmployeeService_Roster(t *testing.T) {
	f := newFixture(t)
	dept := f.department(t, "Ops")
	a, b := f.job(t, "Operator"), f.job(t, "Planner")
	hired := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	boss := f.employee(t, "Boss")
	f.employee(t, "Ada", func(in *EmployeeInput) {
		in.ManagerID = &boss.ID
		in.DepartmentID = &dept.ID
		in.JobIDs = []int64{a.ID, b.ID}
		in.HireDate = &hired
		in.Salary = int64p(42)
	})

	rows, err := f.svc.Employees.Roster(f.ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, RosterRow{
		ID:         rows[1].ID,
		FullName:   "Ada Test",
		Department: "Ops",
		Manager:    "Boss Test",
		JobTitles:  "Operator, Planner",
		HireDate:   "2021-03-04",
		Salary:     42,
	}, rows[1])
}
