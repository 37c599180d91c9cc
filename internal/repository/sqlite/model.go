package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a row of the employees table
type Employee struct {
	ID         int64
	Name       string
	Role       string
	Department string
	Email      string
	Phone      string
}

// Task is a row of the tasks table
type Task struct {
	ID          int64
	EmployeeID  int64
	Title       string
	Description string
	Date        time.Time
	Hours       float64
	Status      string
}

// Finance is a row of the finance_data table.
// Amounts are stored as decimal strings to keep cents exact.
type Finance struct {
	ID           int64
	Municipality string
	Paid         decimal.Decimal
	Pending      decimal.Decimal
}
