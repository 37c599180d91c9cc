package domain

import "strings"

// TaskFilter narrows a task listing. Zero-valued fields match every task.
type TaskFilter struct {
	EmployeeID    *int64
	Status        *TaskStatus
	TitleContains string
}

// IsEmpty reports whether the filter has no criteria.
func (f TaskFilter) IsEmpty() bool {
	return f.EmployeeID == nil && f.Status == nil && strings.TrimSpace(f.TitleContains) == ""
}

// Matches reports whether the task satisfies every criterion of the filter.
func (f TaskFilter) Matches(t Task) bool {
	if f.EmployeeID != nil && t.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if text := strings.TrimSpace(f.TitleContains); text != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(text)) {
			return false
		}
	}
	return true
}
