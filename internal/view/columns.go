package view

import (
	"infoco/internal/domain"
	"infoco/internal/format"
	"infoco/internal/services"
)

func employeeID(e domain.Employee) int64   { return e.ID }
func taskID(t domain.Task) int64           { return t.ID }
func financeID(f domain.FinanceData) int64 { return f.ID }

// EmployeeColumns lists the employee table columns
func EmployeeColumns() []Column[domain.Employee] {
	return []Column[domain.Employee]{
		{Key: "id", Header: "ID", Class: ClassRight},
		{Key: "name", Header: "Name", Class: ClassBold},
		{Key: "role", Header: "Role"},
		{Key: "department", Header: "Department"},
		{Key: "email", Header: "Email"},
		{Key: "phone", Header: "Phone"},
	}
}

// TaskColumns lists the task table columns, resolving assignees against employees
func TaskColumns(employees []domain.Employee, dateLayout string) []Column[domain.Task] {
	return []Column[domain.Task]{
		{Key: "id", Header: "ID", Class: ClassRight},
		{Key: "title", Header: "Title", Class: ClassBold},
		{Key: "employeeId", Header: "Employee", Render: func(t domain.Task) string {
			return format.EmployeeName(t.EmployeeID, employees)
		}},
		{Key: "date", Header: "Date", Render: func(t domain.Task) string {
			return format.DateWithLayout(t.Date, dateLayout)
		}},
		{Key: "hours", Header: "Hours", Class: ClassRight},
		{Key: "status", Header: "Status"},
	}
}

// FinanceColumns lists the municipality finance table columns
func FinanceColumns() []Column[domain.FinanceData] {
	return []Column[domain.FinanceData]{
		{Key: "id", Header: "ID", Class: ClassRight},
		{Key: "municipality", Header: "Municipality", Class: ClassBold},
		{Key: "paid", Header: "Paid", Class: ClassRight},
		{Key: "pending", Header: "Pending", Class: ClassRight},
		{Key: "total", Header: "Total", Class: ClassRight, Render: func(f domain.FinanceData) string {
			return format.Currency(f.Total())
		}},
	}
}

// RecentTaskColumns lists the dashboard's recent-task columns
func RecentTaskColumns(dateLayout string) []Column[services.TaskRow] {
	return []Column[services.TaskRow]{
		{Key: "title", Header: "Task", Class: ClassBold, Render: func(r services.TaskRow) string { return r.Task.Title }},
		{Key: "employee", Header: "Employee", Render: func(r services.TaskRow) string { return r.EmployeeName }},
		{Key: "date", Header: "Date", Render: func(r services.TaskRow) string { return format.DateWithLayout(r.Task.Date, dateLayout) }},
		{Key: "status", Header: "Status", Render: func(r services.TaskRow) string { return string(r.Task.Status) }},
	}
}

// NewEmployeeTable builds the employee table
func NewEmployeeTable(employees []domain.Employee, emptyMessage string) *Table[domain.Employee] {
	return &Table[domain.Employee]{
		Columns:      EmployeeColumns(),
		Rows:         employees,
		EmptyMessage: emptyMessage,
		ID:           employeeID,
	}
}

// NewTaskTable builds the task table
func NewTaskTable(tasks []domain.Task, employees []domain.Employee, dateLayout, emptyMessage string) *Table[domain.Task] {
	return &Table[domain.Task]{
		Columns:      TaskColumns(employees, dateLayout),
		Rows:         tasks,
		EmptyMessage: emptyMessage,
		ID:           taskID,
	}
}

// NewFinanceTable builds the municipality finance table
func NewFinanceTable(records []domain.FinanceData, emptyMessage string) *Table[domain.FinanceData] {
	return &Table[domain.FinanceData]{
		Columns:      FinanceColumns(),
		Rows:         records,
		EmptyMessage: emptyMessage,
		ID:           financeID,
	}
}

// NewRecentTaskTable builds the dashboard's recent-task table
func NewRecentTaskTable(rows []services.TaskRow, dateLayout string) *Table[services.TaskRow] {
	return &Table[services.TaskRow]{
		Columns:      RecentTaskColumns(dateLayout),
		Rows:         rows,
		EmptyMessage: "No recent tasks.",
	}
}

