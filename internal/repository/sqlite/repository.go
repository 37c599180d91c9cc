package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"infoco/internal/errors"
	"infoco/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for persisting the record collections
type Repository interface {
	// Employees
	UpsertEmployee(ctx context.Context, employee *Employee) error
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	// Tasks
	UpsertTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// Finance data
	UpsertFinance(ctx context.Context, finance *Finance) error
	GetFinance(ctx context.Context, id int64) (*Finance, error)
	ListFinance(ctx context.Context) ([]*Finance, error)
	DeleteFinance(ctx context.Context, id int64) error

	// ReplaceAll swaps every table's contents in one transaction
	ReplaceAll(ctx context.Context, employees []*Employee, tasks []*Task, finance []*Finance) error

	// Utility
	Close() error
}

// Options bounds the time spent on database calls. Zero values disable the bound.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions creates a new SQLite repository with call timeouts
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.QueryTimeout)
	}
	return context.WithCancel(ctx)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout > 0 {
		return context.WithTimeout(ctx, r.opts.WriteTimeout)
	}
	return context.WithCancel(ctx)
}

const (
	upsertEmployeeQuery = `
	INSERT INTO employees (id, name, role, department, email, phone)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		name = excluded.name,
		role = excluded.role,
		department = excluded.department,
		email = excluded.email,
		phone = excluded.phone`

	upsertTaskQuery = `
	INSERT INTO tasks (id, employee_id, title, description, task_date, hours, status)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		employee_id = excluded.employee_id,
		title = excluded.title,
		description = excluded.description,
		task_date = excluded.task_date,
		hours = excluded.hours,
		status = excluded.status`

	upsertFinanceQuery = `
	INSERT INTO finance_data (id, municipality, paid, pending)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		municipality = excluded.municipality,
		paid = excluded.paid,
		pending = excluded.pending`
)

// UpsertEmployee inserts the employee or replaces the row with the same id
func (r *SQLiteRepository) UpsertEmployee(ctx context.Context, employee *Employee) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	return upsertEmployee(ctx, r.db, employee)
}

func upsertEmployee(ctx context.Context, db querier, e *Employee) error {
	if e.ID <= 0 {
		return errors.NewInvalidInputError("employee id", e.ID, "must be a positive integer")
	}
	return Execute(ctx, db, "upsert employee", upsertEmployeeQuery,
		e.ID, e.Name, e.Role, e.Department, e.Email, e.Phone)
}

// GetEmployee retrieves an employee by ID
func (r *SQLiteRepository) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, name, role, department, email, phone
	FROM employees
	WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanEmployee, "employee", fmt.Sprintf("%d", id), id)
}

// ListEmployees retrieves all employees in insertion order
func (r *SQLiteRepository) ListEmployees(ctx context.Context) ([]*Employee, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, name, role, department, email, phone
	FROM employees
	ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanEmployees, "employees")
}

// DeleteEmployee deletes an employee by ID. Tasks referencing it are kept.
func (r *SQLiteRepository) DeleteEmployee(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM employees WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "employee", fmt.Sprintf("%d", id), id)
}

// UpsertTask inserts the task or replaces the row with the same id
func (r *SQLiteRepository) UpsertTask(ctx context.Context, task *Task) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	return upsertTask(ctx, r.db, task)
}

func upsertTask(ctx context.Context, db querier, t *Task) error {
	if t.ID <= 0 {
		return errors.NewInvalidInputError("task id", t.ID, "must be a positive integer")
	}
	return Execute(ctx, db, "upsert task", upsertTaskQuery,
		t.ID, t.EmployeeID, t.Title, t.Description, FormatDateForDB(t.Date), t.Hours, t.Status)
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, employee_id, title, description, task_date, hours, status
	FROM tasks
	WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", fmt.Sprintf("%d", id), id)
}

// ListTasks retrieves all tasks in insertion order
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `
	SELECT id, employee_id, title, description, task_date, hours, status
	FROM tasks
	ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// DeleteTask deletes a task by ID
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", fmt.Sprintf("%d", id), id)
}

// UpsertFinance inserts the record or replaces the row with the same id
func (r *SQLiteRepository) UpsertFinance(ctx context.Context, finance *Finance) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()
	return upsertFinance(ctx, r.db, finance)
}

func upsertFinance(ctx context.Context, db querier, f *Finance) error {
	if f.ID <= 0 {
		return errors.NewInvalidInputError("municipality id", f.ID, "must be a positive integer")
	}
	return Execute(ctx, db, "upsert municipality", upsertFinanceQuery,
		f.ID, f.Municipality, FormatDecimalForDB(f.Paid), FormatDecimalForDB(f.Pending))
}

// GetFinance retrieves a finance record by ID
func (r *SQLiteRepository) GetFinance(ctx context.Context, id int64) (*Finance, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT id, municipality, paid, pending FROM finance_data WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanFinance, "municipality", fmt.Sprintf("%d", id), id)
}

// ListFinance retrieves all finance records in insertion order
func (r *SQLiteRepository) ListFinance(ctx context.Context) ([]*Finance, error) {
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT id, municipality, paid, pending FROM finance_data ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanFinances, "municipalities")
}

// DeleteFinance deletes a finance record by ID
func (r *SQLiteRepository) DeleteFinance(ctx context.Context, id int64) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM finance_data WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "municipality", fmt.Sprintf("%d", id), id)
}

// ReplaceAll swaps the contents of every table in a single transaction
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, employees []*Employee, tasks []*Task, finance []*Finance) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"employees", "tasks", "finance_data"} {
		if err := Execute(ctx, tx, "clear "+table, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	for _, e := range employees {
		if err := upsertEmployee(ctx, tx, e); err != nil {
			return err
		}
	}
	for _, t := range tasks {
		if err := upsertTask(ctx, tx, t); err != nil {
			return err
		}
	}
	for _, f := range finance {
		if err := upsertFinance(ctx, tx, f); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit transaction", err)
	}
	return nil
}
