package domain

import "strings"

// Employee represents a staff member that tasks are assigned to.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// EmployeeInput holds the fields of an employee that has not been assigned an id yet.
type EmployeeInput struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// WithID builds the Employee record for the given id.
func (in EmployeeInput) WithID(id int64) Employee {
	return Employee{
		ID:         id,
		Name:       in.Name,
		Role:       in.Role,
		Department: in.Department,
		Email:      in.Email,
		Phone:      in.Phone,
	}
}

// Input returns the employee without its id.
func (e Employee) Input() EmployeeInput {
	return EmployeeInput{
		Name:       e.Name,
		Role:       e.Role,
		Department: e.Department,
		Email:      e.Email,
		Phone:      e.Phone,
	}
}

// IsValid checks if the employee has a name.
func (e Employee) IsValid() bool {
	return strings.TrimSpace(e.Name) != ""
}

// String returns the employee name for display purposes.
func (e Employee) String() string {
	return e.Name
}
