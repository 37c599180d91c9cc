package cli

import (
	"context"
	"strconv"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/services"
	"infoco/internal/view"
)

// ListCommand handles the list commands of every collection
type ListCommand struct {
	app *App
}

// TaskListOptions narrows and orders a task listing. Empty fields are ignored.
type TaskListOptions struct {
	EmployeeID string
	Status     string
	Search     string
	Sort       string
}

// filter builds the search filter from the raw flag values
func (o TaskListOptions) filter() (domain.TaskFilter, error) {
	filter := domain.TaskFilter{TitleContains: o.Search}
	if o.EmployeeID != "" {
		id, err := strconv.ParseInt(o.EmployeeID, 10, 64)
		if err != nil {
			return filter, errors.NewInvalidInputError("employee", o.EmployeeID, "must be an integer")
		}
		filter.EmployeeID = &id
	}
	if o.Status != "" {
		status, err := domain.ParseTaskStatus(o.Status)
		if err != nil {
			return filter, errors.NewInvalidInputError("status", o.Status, "must be pending, in-progress or completed")
		}
		filter.Status = &status
	}
	return filter, nil
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Employees prints the employee table
func (c *ListCommand) Employees(ctx context.Context) error {
	employees, err := c.app.service.ListEmployees(ctx)
	if err != nil {
		return err
	}
	return view.NewEmployeeTable(employees, c.app.emptyMessage()).Render(c.app.out)
}

// Tasks prints the task table after filtering and sorting
func (c *ListCommand) Tasks(ctx context.Context, opts TaskListOptions) error {
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	rows, err := c.app.service.SearchTasks(ctx, filter, services.SortOrder(opts.Sort))
	if err != nil {
		return err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, row.Task)
	}
	employees, err := c.app.service.ListEmployees(ctx)
	if err != nil {
		return err
	}
	return view.NewTaskTable(tasks, employees, c.app.dateLayout(), c.app.emptyMessage()).Render(c.app.out)
}

// Municipalities prints the finance table followed by the totals cards
func (c *ListCommand) Municipalities(ctx context.Context) error {
	records, err := c.app.service.ListFinance(ctx)
	if err != nil {
		return err
	}
	if err := view.NewFinanceTable(records, c.app.emptyMessage()).Render(c.app.out); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	summary, err := c.app.service.GetFinanceTotals(ctx)
	if err != nil {
		return err
	}
	c.app.println(view.RenderCards(view.FinanceCards(*summary)))
	return nil
}
