package domain

import (
	"infoco/internal/repository/sqlite"
)

// EmployeeMapper handles conversion between domain and database Employee models.
type EmployeeMapper struct{}

// ToDatabase converts a domain Employee to a database Employee.
func (m *EmployeeMapper) ToDatabase(e Employee) sqlite.Employee {
	return sqlite.Employee{
		ID:         e.ID,
		Name:       e.Name,
		Role:       e.Role,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
	}
}

// FromDatabase converts a database Employee to a domain Employee.
func (m *EmployeeMapper) FromDatabase(e sqlite.Employee) Employee {
	return Employee{
		ID:         e.ID,
		Name:       e.Name,
		Role:       e.Role,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
	}
}

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(t Task) sqlite.Task {
	return sqlite.Task{
		ID:          t.ID,
		EmployeeID:  t.EmployeeID,
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Hours:       t.Hours,
		Status:      string(t.Status),
	}
}

// FromDatabase converts a database Task to a domain Task.
// Unknown stored statuses are kept verbatim so they surface in validation.
func (m *TaskMapper) FromDatabase(t sqlite.Task) Task {
	status := TaskStatus(t.Status)
	if parsed, err := ParseTaskStatus(t.Status); err == nil {
		status = parsed
	}
	return Task{
		ID:          t.ID,
		EmployeeID:  t.EmployeeID,
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Hours:       t.Hours,
		Status:      status,
	}
}

// FinanceMapper handles conversion between domain FinanceData and database Finance models.
type FinanceMapper struct{}

// ToDatabase converts a domain FinanceData to a database Finance.
func (m *FinanceMapper) ToDatabase(f FinanceData) sqlite.Finance {
	return sqlite.Finance{
		ID:           f.ID,
		Municipality: f.Municipality,
		Paid:         f.Paid,
		Pending:      f.Pending,
	}
}

// FromDatabase converts a database Finance to a domain FinanceData.
func (m *FinanceMapper) FromDatabase(f sqlite.Finance) FinanceData {
	return FinanceData{
		ID:           f.ID,
		Municipality: f.Municipality,
		Paid:         f.Paid,
		Pending:      f.Pending,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Employee *EmployeeMapper
	Task     *TaskMapper
	Finance  *FinanceMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Employee: &EmployeeMapper{},
		Task:     &TaskMapper{},
		Finance:  &FinanceMapper{},
	}
}

// DatasetFromDatabase assembles a Dataset from the rows of every table.
func (m *Mapper) DatasetFromDatabase(employees []*sqlite.Employee, tasks []*sqlite.Task, finance []*sqlite.Finance) Dataset {
	ds := Dataset{
		Employees:   make([]Employee, 0, len(employees)),
		Tasks:       make([]Task, 0, len(tasks)),
		FinanceData: make([]FinanceData, 0, len(finance)),
	}
	for _, e := range employees {
		ds.Employees = append(ds.Employees, m.Employee.FromDatabase(*e))
	}
	for _, t := range tasks {
		ds.Tasks = append(ds.Tasks, m.Task.FromDatabase(*t))
	}
	for _, f := range finance {
		ds.FinanceData = append(ds.FinanceData, m.Finance.FromDatabase(*f))
	}
	return ds
}

// DatasetToDatabase splits a Dataset into rows for every table.
func (m *Mapper) DatasetToDatabase(ds Dataset) ([]*sqlite.Employee, []*sqlite.Task, []*sqlite.Finance) {
	employees := make([]*sqlite.Employee, 0, len(ds.Employees))
	for _, e := range ds.Employees {
		row := m.Employee.ToDatabase(e)
		employees = append(employees, &row)
	}
	tasks := make([]*sqlite.Task, 0, len(ds.Tasks))
	for _, t := range ds.Tasks {
		row := m.Task.ToDatabase(t)
		tasks = append(tasks, &row)
	}
	finance := make([]*sqlite.Finance, 0, len(ds.FinanceData))
	for _, f := range ds.FinanceData {
		row := m.Finance.ToDatabase(f)
		finance = append(finance, &row)
	}
	return employees, tasks, finance
}
