package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employeeSample1() *Employee {
	return &Employee{ID: NewID(1), FirstName: "Ada", LastName: "Lovelace"}
}

func employeeSample2() *Employee {
	return &Employee{ID: NewID(2), FirstName: "Alan", LastName: "Turing"}
}

func TestEmployee_Equal(t *testing.T) {
	e1 := employeeSample1()
	e2 := &Employee{}
	assert.False(t, e1.Equal(e2))

	e2.ID = NewID(*e1.ID)
	assert.True(t, e1.Equal(e2), "same id, different attributes")
	assert.True(t, e2.Equal(e1))
	assert.Equal(t, e1.HashCode(), e2.HashCode())

	assert.False(t, e1.Equal(employeeSample2()))
}

func TestEmployee_EqualTransient(t *testing.T) {
	a := &Employee{FirstName: "x"}
	b := &Employee{FirstName: "x"}

	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))

	var missing *Employee
	assert.False(t, missing.Equal(a))

	b.ID = NewID(7)
	assert.False(t, a.Equal(b))
	assert.False(t, b.Equal(a))
}

func TestEmployee_HashStableAcrossAssignID(t *testing.T) {
	e := &Employee{}
	before := e.HashCode()
	e.AssignID(42)
	assert.Equal(t, before, e.HashCode())
	assert.False(t, e.IsNew())

	e.AssignID(43)
	assert.Equal(t, int64(42), *e.ID)
}

func TestEmployee_Jobs(t *testing.T) {
	employee := employeeSample1()
	job := &Job{ID: NewID(10), JobTitle: "Engineer"}

	employee.AddJob(job)
	assert.Equal(t, []*Job{job}, employee.Jobs())
	assert.Same(t, employee, job.Employee())

	employee.RemoveJob(job)
	assert.False(t, employee.HasJob(job))
	assert.Nil(t, job.Employee())

	employee.SetJobs([]*Job{job})
	assert.Equal(t, []*Job{job}, employee.Jobs())
	assert.Same(t, employee, job.Employee())

	employee.SetJobs(nil)
	assert.Empty(t, employee.Jobs())
	assert.Nil(t, job.Employee())
}

func TestEmployee_AddJobIsIdempotent(t *testing.T) {
	employee := employeeSample1()
	job := &Job{ID: NewID(10)}
	sameJob := &Job{ID: NewID(10)}

	employee.AddJob(job).AddJob(job).AddJob(sameJob)
	assert.Len(t, employee.Jobs(), 1)
	assert.Same(t, job, employee.Jobs()[0])
}

func TestEmployee_AddJobKeepsPriorJobs(t *testing.T) {
	employee := employeeSample1()
	first := &Job{JobTitle: "first"}
	second := &Job{JobTitle: "second"}

	employee.AddJob(first).AddJob(second)
	assert.Equal(t, []*Job{first, second}, employee.Jobs())
	assert.Same(t, employee, first.Employee())
	assert.Same(t, employee, second.Employee())
}

func TestEmployee_RemoveJobLeavesReassignedReference(t *testing.T) {
	e1 := employeeSample1()
	e2 := employeeSample2()
	job := &Job{ID: NewID(3)}

	e1.AddJob(job)
	e2.AddJob(job)
	assert.False(t, e1.HasJob(job), "job moves to its new employee")
	assert.True(t, e2.HasJob(job))

	e1.RemoveJob(job)
	assert.Same(t, e2, job.Employee())
	assert.True(t, e2.HasJob(job))
}

func TestEmployee_AddJobMovingCopyClearsStoredMember(t *testing.T) {
	e1 := employeeSample1()
	e2 := employeeSample2()
	job := &Job{ID: NewID(3)}
	jobCopy := &Job{ID: NewID(3)}

	e1.AddJob(job)
	e1.AddJob(jobCopy)
	e2.AddJob(jobCopy)

	assert.False(t, e1.HasJob(job))
	assert.Nil(t, job.Employee(), "evicted member no longer points at its old employee")
	assert.Same(t, e2, jobCopy.Employee())
	assert.Equal(t, []*Job{jobCopy}, e2.Jobs())
}

func TestEmployee_SetJobsDetachesThenAttaches(t *testing.T) {
	employee := employeeSample1()
	kept := &Job{ID: NewID(1)}
	dropped := &Job{ID: NewID(2)}
	added := &Job{ID: NewID(3)}

	employee.WithJobs(kept, dropped)
	employee.SetJobs([]*Job{kept, added})

	assert.Equal(t, []*Job{kept, added}, employee.Jobs())
	assert.Same(t, employee, kept.Employee())
	assert.Same(t, employee, added.Employee())
	assert.Nil(t, dropped.Employee())
}

func TestEmployee_NilJobIsNoop(t *testing.T) {
	employee := employeeSample1()
	require.NotPanics(t, func() {
		employee.AddJob(nil).RemoveJob(nil)
		employee.SetJobs([]*Job{nil})
	})
	assert.Empty(t, employee.Jobs())
}

func TestEmployee_Manager(t *testing.T) {
	employee := employeeSample1()
	manager := employeeSample2()

	employee.SetManager(manager)
	assert.Same(t, manager, employee.Manager())
	assert.Nil(t, manager.Manager())

	employee.WithManager(nil)
	assert.Nil(t, employee.Manager())
	assert.Nil(t, manager.Manager())
	assert.Empty(t, manager.Jobs())
}

func TestEmployee_ManagerAllowsCycles(t *testing.T) {
	a := employeeSample1()
	b := employeeSample2()

	a.SetManager(b)
	b.SetManager(a)
	a.WithManager(a)
	assert.Same(t, a, a.Manager())
	assert.Same(t, a, b.Manager())
}

func TestEmployee_Department(t *testing.T) {
	employee := employeeSample1()
	department := &Department{ID: NewID(5), DepartmentName: "R&D"}

	employee.SetDepartment(department)
	assert.Same(t, department, employee.Department())

	employee.WithDepartment(nil)
	assert.Nil(t, employee.Department())
}

func TestEmployee_JobHistory(t *testing.T) {
	employee := employeeSample1()
	history := &JobHistory{ID: NewID(9), Language: LanguageEnglish}

	employee.SetJobHistory(history)
	assert.Same(t, history, employee.JobHistory())
	assert.Same(t, employee, history.Employee())

	employee.WithJobHistory(nil)
	assert.Nil(t, employee.JobHistory())
	assert.Nil(t, history.Employee())
}

func TestEmployee_JobHistoryReplace(t *testing.T) {
	employee := employeeSample1()
	old := &JobHistory{ID: NewID(1)}
	next := &JobHistory{ID: NewID(2)}

	employee.SetJobHistory(old)
	employee.SetJobHistory(next)

	assert.Nil(t, old.Employee())
	assert.Same(t, employee, next.Employee())
	assert.Same(t, next, employee.JobHistory())
}

func TestEmployee_JobHistoryMovesBetweenEmployees(t *testing.T) {
	e1 := employeeSample1()
	e2 := employeeSample2()
	history := &JobHistory{ID: NewID(1)}

	e1.SetJobHistory(history)
	e2.SetJobHistory(history)

	assert.Nil(t, e1.JobHistory())
	assert.Same(t, history, e2.JobHistory())
	assert.Same(t, e2, history.Employee())
}

func TestEmployee_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", employeeSample1().FullName())
	assert.Equal(t, "Ada", (&Employee{FirstName: "Ada"}).FullName())
	assert.Equal(t, "Lovelace", (&Employee{LastName: "Lovelace"}).FullName())
}
