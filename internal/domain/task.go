package domain

// Task is the non-owning side of the job/task association; its mutators
// delegate to the job so both sides stay linked.
type Task struct {
	ID          *int64
	Title       string
	Description string

	jobs EntitySet[*Job]
}

func (t *Task) IsNew() bool { return t.ID == nil }

func (t *Task) AssignID(id int64) {
	if t.ID == nil {
		t.ID = NewID(id)
	}
}

func (t *Task) Equal(other *Task) bool {
	if t == nil || other == nil {
		return false
	}
	return t == other || sameID(t.ID, other.ID)
}

func (t *Task) HashCode() int { return taskHash }

func (t *Task) Jobs() []*Job { return t.jobs.Items() }

func (t *Task) AddJob(job *Job) *Task {
	if job != nil {
		job.AddTask(t)
	}
	return t
}

func (t *Task) RemoveJob(job *Job) *Task {
	if job != nil {
		job.RemoveTask(t)
	}
	return t
}

func (t *Task) SetJobs(jobs []*Job) {
	for _, job := range t.jobs.Items() {
		job.RemoveTask(t)
	}
	t.jobs.Clear()
	for _, job := range jobs {
		t.AddJob(job)
	}
}
