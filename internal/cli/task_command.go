package cli

import (
	"context"
	"strconv"
	"time"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/view"
)

// TaskCommand handles the task add and update commands
type TaskCommand struct {
	app *App
}

// TaskChanges holds the fields given on the command line; nil fields keep their value
type TaskChanges struct {
	EmployeeID  *int64
	Title       *string
	Description *string
	Date        *string
	Hours       *float64
	Status      *string
}

// IsEmpty reports whether no field was given
func (ch TaskChanges) IsEmpty() bool {
	return ch.EmployeeID == nil && ch.Title == nil && ch.Description == nil &&
		ch.Date == nil && ch.Hours == nil && ch.Status == nil
}

func (ch TaskChanges) apply(t domain.Task) (domain.Task, error) {
	if ch.EmployeeID != nil {
		t.EmployeeID = *ch.EmployeeID
	}
	setString(&t.Title, ch.Title)
	setString(&t.Description, ch.Description)
	if ch.Date != nil {
		date, err := parseDateFlag(*ch.Date)
		if err != nil {
			return domain.Task{}, err
		}
		t.Date = date
	}
	if ch.Hours != nil {
		t.Hours = *ch.Hours
	}
	if ch.Status != nil {
		t.Status = domain.TaskStatus(*ch.Status)
	}
	return t, nil
}

// NewTaskCommand creates a new task command handler
func NewTaskCommand(app *App) *TaskCommand {
	return &TaskCommand{app: app}
}

// Add creates a task. The date defaults to today and the status to pending.
func (c *TaskCommand) Add(ctx context.Context, fields TaskChanges) error {
	draft, err := fields.apply(domain.Task{Date: today()})
	if err != nil {
		return err
	}

	task, err := c.app.service.CreateTask(ctx, draft.Input())
	if err != nil {
		return err
	}
	c.app.printf("Added task #%d: %s (%s)\n", task.ID, task.Title, task.Status)
	return nil
}

// Update edits the task named by args[0], or one picked from the list.
// Without changes the fields are prompted for, keeping the current value on empty input.
func (c *TaskCommand) Update(ctx context.Context, args []string, changes TaskChanges) error {
	ds := c.app.service.Snapshot(ctx)

	table := view.NewTaskTable(ds.Tasks, ds.Employees, c.app.dateLayout(), c.app.emptyMessage())
	table.OnEdit = func(current domain.Task) error {
		edited, err := changes.apply(current)
		if err != nil {
			return err
		}
		if changes.IsEmpty() {
			if edited, err = c.promptTask(current); err != nil {
				return err
			}
		}

		updated, err := c.app.service.UpdateTask(ctx, edited)
		if err != nil {
			return err
		}
		c.app.printf("Updated task #%d: %s (%s)\n", updated.ID, updated.Title, updated.Status)
		return nil
	}

	row, err := selectRow(c.app, table, args, "task", "update")
	if err != nil || row == 0 {
		return err
	}
	return table.Edit(row)
}

func (c *TaskCommand) promptTask(current domain.Task) (domain.Task, error) {
	edited := current
	var err error

	if edited.Title, err = c.app.promptField("Title", current.Title); err != nil {
		return domain.Task{}, err
	}
	if edited.Description, err = c.app.promptField("Description", current.Description); err != nil {
		return domain.Task{}, err
	}

	employee, err := c.app.promptField("Employee id", strconv.FormatInt(current.EmployeeID, 10))
	if err != nil {
		return domain.Task{}, err
	}
	if edited.EmployeeID, err = strconv.ParseInt(employee, 10, 64); err != nil {
		return domain.Task{}, errors.NewInvalidInputError("employee", employee, "must be an integer")
	}

	date, err := c.app.promptField("Date (YYYY-MM-DD)", current.Date.Format(domain.DateLayout))
	if err != nil {
		return domain.Task{}, err
	}
	if edited.Date, err = parseDateFlag(date); err != nil {
		return domain.Task{}, err
	}

	hours, err := c.app.promptField("Hours", strconv.FormatFloat(current.Hours, 'f', -1, 64))
	if err != nil {
		return domain.Task{}, err
	}
	if edited.Hours, err = strconv.ParseFloat(hours, 64); err != nil {
		return domain.Task{}, errors.NewInvalidInputError("hours", hours, "must be a number")
	}

	status, err := c.app.promptField("Status", string(current.Status))
	if err != nil {
		return domain.Task{}, err
	}
	edited.Status = domain.TaskStatus(status)

	return edited, nil
}

func parseDateFlag(value string) (time.Time, error) {
	date, err := domain.ParseDate(value)
	if err != nil {
		return date, errors.NewInvalidInputError("date", value, "must be YYYY-MM-DD")
	}
	return date, nil
}
