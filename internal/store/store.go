// Package store holds the shared in-memory record collections every view reads from.
package store

import (
	"strconv"
	"sync"

	"infoco/internal/domain"
	"infoco/internal/errors"
)

// Store owns the employee, task and finance collections.
// Readers get deep-copied snapshots, never the backing slices.
type Store struct {
	mu   sync.RWMutex
	data domain.Dataset

	nextEmployeeID int64
	nextTaskID     int64
	nextFinanceID  int64
}

// New creates an empty store
func New() *Store {
	return NewWithDataset(domain.Dataset{})
}

// NewWithDataset creates a store seeded with the given records
func NewWithDataset(ds domain.Dataset) *Store {
	s := &Store{}
	s.Restore(ds)
	return s
}

// Snapshot returns a copy of every collection
func (s *Store) Snapshot() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Restore replaces every collection. Id counters never move backwards.
func (s *Store) Restore(ds domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = ds.Clone()
	s.nextEmployeeID = nextID(s.nextEmployeeID, s.data.Employees, employeeID)
	s.nextTaskID = nextID(s.nextTaskID, s.data.Tasks, taskID)
	s.nextFinanceID = nextID(s.nextFinanceID, s.data.FinanceData, financeID)
}

// AddEmployee appends a new employee with a fresh id
func (s *Store) AddEmployee(in domain.EmployeeInput) (domain.Employee, domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee := in.WithID(s.nextEmployeeID)
	s.nextEmployeeID++
	s.data.Employees = append(s.data.Employees, employee)
	return employee, s.data.Clone()
}

// UpdateEmployee replaces the employee with the same id
func (s *Store) UpdateEmployee(employee domain.Employee) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !replaceByID(s.data.Employees, employee, employeeID) {
		return domain.Dataset{}, notFound("employee", employee.ID)
	}
	return s.data.Clone(), nil
}

// DeleteEmployee removes the employee with the given id. Tasks that reference it are kept.
func (s *Store) DeleteEmployee(id int64) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employees, ok := removeByID(s.data.Employees, id, employeeID)
	if !ok {
		return domain.Dataset{}, notFound("employee", id)
	}
	s.data.Employees = employees
	return s.data.Clone(), nil
}

// AddTask appends a new task with a fresh id
func (s *Store) AddTask(in domain.TaskInput) (domain.Task, domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := in.WithID(s.nextTaskID)
	s.nextTaskID++
	s.data.Tasks = append(s.data.Tasks, task)
	return task, s.data.Clone()
}

// UpdateTask replaces the task with the same id
func (s *Store) UpdateTask(task domain.Task) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !replaceByID(s.data.Tasks, task, taskID) {
		return domain.Dataset{}, notFound("task", task.ID)
	}
	return s.data.Clone(), nil
}

// DeleteTask removes the task with the given id
func (s *Store) DeleteTask(id int64) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, ok := removeByID(s.data.Tasks, id, taskID)
	if !ok {
		return domain.Dataset{}, notFound("task", id)
	}
	s.data.Tasks = tasks
	return s.data.Clone(), nil
}

// AddFinance appends a new municipality finance record with a fresh id
func (s *Store) AddFinance(in domain.FinanceInput) (domain.FinanceData, domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	finance := in.WithID(s.nextFinanceID)
	s.nextFinanceID++
	s.data.FinanceData = append(s.data.FinanceData, finance)
	return finance, s.data.Clone()
}

// UpdateFinance replaces the finance record with the same id
func (s *Store) UpdateFinance(finance domain.FinanceData) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !replaceByID(s.data.FinanceData, finance, financeID) {
		return domain.Dataset{}, notFound("municipality", finance.ID)
	}
	return s.data.Clone(), nil
}

// DeleteFinance removes the finance record with the given id
func (s *Store) DeleteFinance(id int64) (domain.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, ok := removeByID(s.data.FinanceData, id, financeID)
	if !ok {
		return domain.Dataset{}, notFound("municipality", id)
	}
	s.data.FinanceData = records
	return s.data.Clone(), nil
}

func employeeID(e domain.Employee) int64   { return e.ID }
func taskID(t domain.Task) int64           { return t.ID }
func financeID(f domain.FinanceData) int64 { return f.ID }

// nextID returns the larger of current and one past the highest id in items
func nextID[T any](current int64, items []T, id func(T) int64) int64 {
	next := current
	if next < 1 {
		next = 1
	}
	for _, item := range items {
		if id(item) >= next {
			next = id(item) + 1
		}
	}
	return next
}

func replaceByID[T any](items []T, record T, id func(T) int64) bool {
	for i := range items {
		if id(items[i]) == id(record) {
			items[i] = record
			return true
		}
	}
	return false
}

// removeByID returns a new slice without the matching record
func removeByID[T any](items []T, target int64, id func(T) int64) ([]T, bool) {
	for i := range items {
		if id(items[i]) == target {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

func notFound(resource string, id int64) error {
	return errors.NewNotFoundError(resource, strconv.FormatInt(id, 10))
}
