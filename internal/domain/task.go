package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for task dates on input and storage.
const DateLayout = "2006-01-02"

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pendente"
	TaskStatusInProgress TaskStatus = "Em Andamento"
	TaskStatusCompleted  TaskStatus = "Concluída"
)

// TaskStatuses returns every known status in workflow order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted}
}

// ParseTaskStatus accepts either the stored status value or an English alias
// (pending, in-progress, completed), ignoring case and surrounding spaces.
func ParseTaskStatus(s string) (TaskStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch normalized {
	case "pending", strings.ToLower(string(TaskStatusPending)):
		return TaskStatusPending, nil
	case "in-progress", "in_progress", "inprogress", strings.ToLower(string(TaskStatusInProgress)):
		return TaskStatusInProgress, nil
	case "completed", "done", strings.ToLower(string(TaskStatusCompleted)):
		return TaskStatusCompleted, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsCompleted reports whether the task is done.
func (s TaskStatus) IsCompleted() bool {
	return s == TaskStatusCompleted
}

// IsOpen reports whether the task still counts as pending work.
// In-progress tasks are open.
func (s TaskStatus) IsOpen() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress
}

// Task is a unit of work assigned to an employee.
type Task struct {
	ID          int64      `json:"id"`
	EmployeeID  int64      `json:"employeeId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	Hours       float64    `json:"hours"`
	Status      TaskStatus `json:"status"`
}

// TaskInput holds the fields of a task that has not been assigned an id yet.
type TaskInput struct {
	EmployeeID  int64      `json:"employeeId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        time.Time  `json:"date"`
	Hours       float64    `json:"hours"`
	Status      TaskStatus `json:"status"`
}

// WithID builds the Task record for the given id.
func (in TaskInput) WithID(id int64) Task {
	return Task{
		ID:          id,
		EmployeeID:  in.EmployeeID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		Hours:       in.Hours,
		Status:      in.Status,
	}
}

// Input returns the task without its id.
func (t Task) Input() TaskInput {
	return TaskInput{
		EmployeeID:  t.EmployeeID,
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Hours:       t.Hours,
		Status:      t.Status,
	}
}

// IsValid checks if the task has the fields every view relies on.
func (t Task) IsValid() bool {
	return strings.TrimSpace(t.Title) != "" && t.Status.IsValid() && !t.Date.IsZero()
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// CalendarDate returns midnight UTC of t's calendar day in t's own location.
// Task dates are stored and compared in this form.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a calendar date in DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
}
