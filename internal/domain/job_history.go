package domain

import (
	"fmt"
	"strings"
	"time"
)

type Language string

const (
	LanguageFrench  Language = "FRENCH"
	LanguageEnglish Language = "ENGLISH"
	LanguageSpanish Language = "SPANISH"
)

// ParseLanguage accepts the enum names case-insensitively. An empty string
// parses to the empty Language.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToUpper(strings.TrimSpace(s))); l {
	case "", LanguageFrench, LanguageEnglish, LanguageSpanish:
		return l, nil
	}
	return "", fmt.Errorf("%w: unknown language %q", ErrValidation, s)
}

// JobHistory records a period of an employee's work. Its employee is kept in
// sync by Employee.SetJobHistory.
type JobHistory struct {
	ID        *int64
	StartDate *time.Time
	EndDate   *time.Time
	Language  Language

	job        *Job
	department *Department
	employee   *Employee
}

func (h *JobHistory) IsNew() bool { return h.ID == nil }

func (h *JobHistory) AssignID(id int64) {
	if h.ID == nil {
		h.ID = NewID(id)
	}
}

func (h *JobHistory) Equal(other *JobHistory) bool {
	if h == nil || other == nil {
		return false
	}
	return h == other || sameID(h.ID, other.ID)
}

func (h *JobHistory) HashCode() int { return jobHistoryHash }

func (h *JobHistory) Job() *Job { return h.job }

func (h *JobHistory) SetJob(job *Job) { h.job = job }

func (h *JobHistory) WithJob(job *Job) *JobHistory {
	h.SetJob(job)
	return h
}

func (h *JobHistory) Department() *Department { return h.department }

func (h *JobHistory) SetDepartment(department *Department) { h.department = department }

func (h *JobHistory) WithDepartment(department *Department) *JobHistory {
	h.SetDepartment(department)
	return h
}

func (h *JobHistory) Employee() *Employee { return h.employee }

// SetEmployee routes through the employee side so both ends stay linked.
func (h *JobHistory) SetEmployee(employee *Employee) {
	if employee == nil {
		if h.employee != nil && h.employee.jobHistory == h {
			h.employee.SetJobHistory(nil)
		}
		h.employee = nil
		return
	}
	employee.SetJobHistory(h)
}

func (h *JobHistory) WithEmployee(employee *Employee) *JobHistory {
	h.SetEmployee(employee)
	return h
}
