package domain

import "time"

// Employee is the owning side of its jobs and job history associations.
type Employee struct {
	ID            *int64
	FirstName     string
	LastName      string
	Email         string
	PhoneNumber   string
	HireDate      *time.Time
	Salary        *int64
	CommissionPct *int64

	manager    *Employee
	department *Department
	jobHistory *JobHistory
	jobs       EntitySet[*Job]
}

func (e *Employee) IsNew() bool { return e.ID == nil }

// AssignID moves a transient employee to the persisted state. Repositories
// call it once; later calls keep the first identifier.
func (e *Employee) AssignID(id int64) {
	if e.ID == nil {
		e.ID = NewID(id)
	}
}

// Equal reports whether both employees carry the same non-nil identifier,
// or are the same instance.
func (e *Employee) Equal(other *Employee) bool {
	if e == nil || other == nil {
		return false
	}
	return e == other || sameID(e.ID, other.ID)
}

func (e *Employee) HashCode() int { return employeeHash }

func (e *Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Manager has no reciprocal collection and no cycle guard.
func (e *Employee) Manager() *Employee { return e.manager }

func (e *Employee) SetManager(manager *Employee) { e.manager = manager }

func (e *Employee) WithManager(manager *Employee) *Employee {
	e.SetManager(manager)
	return e
}

func (e *Employee) Department() *Department { return e.department }

func (e *Employee) SetDepartment(department *Department) { e.department = department }

func (e *Employee) WithDepartment(department *Department) *Employee {
	e.SetDepartment(department)
	return e
}

func (e *Employee) JobHistory() *JobHistory { return e.jobHistory }

// SetJobHistory attaches history and points its employee back here. The
// previously attached history loses its employee, and an employee that
// previously held history loses it.
func (e *Employee) SetJobHistory(history *JobHistory) {
	if e.jobHistory != nil && e.jobHistory != history {
		e.jobHistory.employee = nil
	}
	if history != nil {
		if prev := history.employee; prev != nil && prev != e && prev.jobHistory == history {
			prev.jobHistory = nil
		}
		history.employee = e
	}
	e.jobHistory = history
}

func (e *Employee) WithJobHistory(history *JobHistory) *Employee {
	e.SetJobHistory(history)
	return e
}

// Jobs returns the owned jobs in insertion order.
func (e *Employee) Jobs() []*Job { return e.jobs.Items() }

func (e *Employee) HasJob(job *Job) bool {
	return job != nil && e.jobs.Contains(job)
}

// AddJob inserts job and points it back at e. A job held by another
// employee moves here. Adding an equal job twice is a no-op.
func (e *Employee) AddJob(job *Job) *Employee {
	if job == nil {
		return e
	}
	if prev := job.employee; prev != nil && prev != e {
		if member, ok := prev.jobs.Remove(job); ok && member != job && member.employee == prev {
			member.employee = nil
		}
	}
	e.jobs.Add(job)
	job.employee = e
	return e
}

// RemoveJob drops job from the set. The job's employee is cleared only if it
// still points at e.
func (e *Employee) RemoveJob(job *Job) *Employee {
	if job == nil {
		return e
	}
	if member, ok := e.jobs.Remove(job); ok && member != job && member.employee == e {
		member.employee = nil
	}
	if job.employee == e {
		job.employee = nil
	}
	return e
}

// SetJobs detaches every current job, then attaches every job in jobs.
func (e *Employee) SetJobs(jobs []*Job) {
	for _, job := range e.jobs.Items() {
		job.employee = nil
	}
	e.jobs.Clear()
	for _, job := range jobs {
		e.AddJob(job)
	}
}

func (e *Employee) WithJobs(jobs ...*Job) *Employee {
	e.SetJobs(jobs)
	return e
}
