package cli

import (
	"context"

	"infoco/internal/domain"
	"infoco/internal/view"
)

// EmployeeCommand handles the employee add and update commands
type EmployeeCommand struct {
	app *App
}

// EmployeeChanges holds the fields given on the command line; nil fields keep their value
type EmployeeChanges struct {
	Name       *string
	Role       *string
	Department *string
	Email      *string
	Phone      *string
}

// IsEmpty reports whether no field was given
func (ch EmployeeChanges) IsEmpty() bool {
	return ch.Name == nil && ch.Role == nil && ch.Department == nil && ch.Email == nil && ch.Phone == nil
}

func (ch EmployeeChanges) apply(e domain.Employee) domain.Employee {
	setString(&e.Name, ch.Name)
	setString(&e.Role, ch.Role)
	setString(&e.Department, ch.Department)
	setString(&e.Email, ch.Email)
	setString(&e.Phone, ch.Phone)
	return e
}

// NewEmployeeCommand creates a new employee command handler
func NewEmployeeCommand(app *App) *EmployeeCommand {
	return &EmployeeCommand{app: app}
}

// Add creates an employee
func (c *EmployeeCommand) Add(ctx context.Context, in domain.EmployeeInput) error {
	employee, err := c.app.service.CreateEmployee(ctx, in)
	if err != nil {
		return err
	}
	c.app.printf("Added employee #%d: %s\n", employee.ID, employee.Name)
	return nil
}

// Update edits the employee named by args[0], or one picked from the list.
// Without changes the fields are prompted for, keeping the current value on empty input.
func (c *EmployeeCommand) Update(ctx context.Context, args []string, changes EmployeeChanges) error {
	employees, err := c.app.service.ListEmployees(ctx)
	if err != nil {
		return err
	}

	table := view.NewEmployeeTable(employees, c.app.emptyMessage())
	table.OnEdit = func(current domain.Employee) error {
		edited := changes.apply(current)
		if changes.IsEmpty() {
			prompted, err := c.promptEmployee(current)
			if err != nil {
				return err
			}
			edited = prompted
		}

		updated, err := c.app.service.UpdateEmployee(ctx, edited)
		if err != nil {
			return err
		}
		c.app.printf("Updated employee #%d: %s\n", updated.ID, updated.Name)
		return nil
	}

	row, err := selectRow(c.app, table, args, "employee", "update")
	if err != nil || row == 0 {
		return err
	}
	return table.Edit(row)
}

func (c *EmployeeCommand) promptEmployee(current domain.Employee) (domain.Employee, error) {
	edited := current
	fields := []struct {
		label string
		value *string
	}{
		{"Name", &edited.Name},
		{"Role", &edited.Role},
		{"Department", &edited.Department},
		{"Email", &edited.Email},
		{"Phone", &edited.Phone},
	}
	for _, field := range fields {
		value, err := c.app.promptField(field.label, *field.value)
		if err != nil {
			return domain.Employee{}, err
		}
		*field.value = value
	}
	return edited, nil
}

func setString(dst *string, value *string) {
	if value != nil {
		*dst = *value
	}
}
