package domain

// Job belongs to at most one employee and owns its task associations.
type Job struct {
	ID        *int64
	JobTitle  string
	MinSalary *int64
	MaxSalary *int64

	employee *Employee
	tasks    EntitySet[*Task]
}

func (j *Job) IsNew() bool { return j.ID == nil }

func (j *Job) AssignID(id int64) {
	if j.ID == nil {
		j.ID = NewID(id)
	}
}

func (j *Job) Equal(other *Job) bool {
	if j == nil || other == nil {
		return false
	}
	return j == other || sameID(j.ID, other.ID)
}

func (j *Job) HashCode() int { return jobHash }

// Employee is the back-reference maintained by Employee.AddJob, RemoveJob
// and SetJobs.
func (j *Job) Employee() *Employee { return j.employee }

// SetEmployee moves the job into employee's jobs, or out of its current
// employee's jobs when employee is nil.
func (j *Job) SetEmployee(employee *Employee) {
	if employee == nil {
		if j.employee != nil {
			j.employee.RemoveJob(j)
		}
		return
	}
	employee.AddJob(j)
}

func (j *Job) WithEmployee(employee *Employee) *Job {
	j.SetEmployee(employee)
	return j
}

func (j *Job) Tasks() []*Task { return j.tasks.Items() }

func (j *Job) HasTask(task *Task) bool {
	return task != nil && j.tasks.Contains(task)
}

// AddTask links job and task on both sides.
func (j *Job) AddTask(task *Task) *Job {
	if task == nil {
		return j
	}
	j.tasks.Add(task)
	task.jobs.Add(j)
	return j
}

// RemoveTask unlinks job and task on both sides.
func (j *Job) RemoveTask(task *Task) *Job {
	if task == nil {
		return j
	}
	if member, ok := j.tasks.Remove(task); ok {
		member.jobs.Remove(j)
	}
	task.jobs.Remove(j)
	return j
}

// SetTasks unlinks every current task, then links every task in tasks.
func (j *Job) SetTasks(tasks []*Task) {
	for _, task := range j.tasks.Items() {
		task.jobs.Remove(j)
	}
	j.tasks.Clear()
	for _, task := range tasks {
		j.AddTask(task)
	}
}

func (j *Job) WithTasks(tasks ...*Task) *Job {
	j.SetTasks(tasks)
	return j
}
