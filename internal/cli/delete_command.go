package cli

import (
	"context"

	"infoco/internal/domain"
	"infoco/internal/view"
)

// DeleteCommand handles the delete commands of every collection
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Employee deletes the employee named by args[0], or one picked from the list.
// Tasks assigned to the employee are kept.
func (c *DeleteCommand) Employee(ctx context.Context, args []string, yes bool) error {
	employees, err := c.app.service.ListEmployees(ctx)
	if err != nil {
		return err
	}
	table := view.NewEmployeeTable(employees, c.app.emptyMessage())
	table.OnDelete = func(id int64) error {
		return c.app.service.DeleteEmployee(ctx, id)
	}
	return deleteFrom(c.app, table, args, "employee", domain.Employee.String, yes)
}

// Task deletes the task named by args[0], or one picked from the list
func (c *DeleteCommand) Task(ctx context.Context, args []string, yes bool) error {
	ds := c.app.service.Snapshot(ctx)
	table := view.NewTaskTable(ds.Tasks, ds.Employees, c.app.dateLayout(), c.app.emptyMessage())
	table.OnDelete = func(id int64) error {
		return c.app.service.DeleteTask(ctx, id)
	}
	return deleteFrom(c.app, table, args, "task", domain.Task.String, yes)
}

// Municipality deletes the municipality named by args[0], or one picked from the list
func (c *DeleteCommand) Municipality(ctx context.Context, args []string, yes bool) error {
	records, err := c.app.service.ListFinance(ctx)
	if err != nil {
		return err
	}
	table := view.NewFinanceTable(records, c.app.emptyMessage())
	table.OnDelete = func(id int64) error {
		return c.app.service.DeleteFinance(ctx, id)
	}
	return deleteFrom(c.app, table, args, "municipality", domain.FinanceData.String, yes)
}

func deleteFrom[T any](app *App, table *view.Table[T], args []string, resource string, name func(T) string, yes bool) error {
	row, err := selectRow(app, table, args, resource, "delete")
	if err != nil || row == 0 {
		return err
	}

	label := name(table.Rows[row-1])
	ok, err := confirmDelete(app, resource, label, yes)
	if err != nil || !ok {
		return err
	}

	if err := table.Delete(row); err != nil {
		return err
	}
	app.printf("Deleted %s: %s\n", resource, label)
	return nil
}
