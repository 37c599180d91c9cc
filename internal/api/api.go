package api

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/repository/sqlite"
	"infoco/internal/services"
	"infoco/internal/store"
	"infoco/internal/validation"
)

// API defines the record operations behind every tab of the dashboard.
type API interface {
	// Load replaces the in-memory records with the persisted ones
	Load(ctx context.Context) error

	// Employee operations
	CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	// Task operations
	CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// Municipality finance operations
	CreateFinance(ctx context.Context, in domain.FinanceInput) (*domain.FinanceData, error)
	GetFinance(ctx context.Context, id int64) (*domain.FinanceData, error)
	ListFinance(ctx context.Context) ([]domain.FinanceData, error)
	UpdateFinance(ctx context.Context, finance domain.FinanceData) (*domain.FinanceData, error)
	DeleteFinance(ctx context.Context, id int64) error
}

// Analyzer answers a question about a dataset
type Analyzer interface {
	Analyze(ctx context.Context, question string, ds domain.Dataset) (string, error)
}

// Dependencies wires the facade. Only Store is required; a nil Repo keeps records in memory.
type Dependencies struct {
	Store     *store.Store
	Repo      sqlite.Repository
	Validator *validation.Validator
	Services  *services.ServiceContainer
	Analyzer  Analyzer
	Logger    *log.Logger
}

type apiImpl struct {
	mu sync.Mutex // serializes mutation and write-through

	store    *store.Store
	repo     sqlite.Repository
	mapper   *domain.Mapper
	services *services.ServiceContainer
	analyzer Analyzer
	logger   *log.Logger

	validator         *validation.Validator
	employeeValidator *validation.EmployeeValidator
	taskValidator     *validation.TaskValidator
	financeValidator  *validation.FinanceValidator
}

// New creates the facade used by the CLI and HTTP surfaces.
func New(deps Dependencies) Service {
	if deps.Store == nil {
		deps.Store = store.New()
	}
	if deps.Validator == nil {
		deps.Validator = validation.NewValidator()
	}
	if deps.Services == nil {
		deps.Services = services.NewServiceContainer()
	}
	if deps.Logger == nil {
		deps.Logger = log.StandardLogger()
	}

	return &apiImpl{
		store:             deps.Store,
		repo:              deps.Repo,
		mapper:            domain.NewMapper(),
		services:          deps.Services,
		analyzer:          deps.Analyzer,
		logger:            deps.Logger,
		validator:         deps.Validator,
		employeeValidator: validation.NewEmployeeValidator(deps.Validator),
		taskValidator:     validation.NewTaskValidator(deps.Validator),
		financeValidator:  validation.NewFinanceValidator(deps.Validator),
	}
}

func (a *apiImpl) Load(ctx context.Context) error {
	if a.repo == nil {
		return nil
	}

	employees, err := a.repo.ListEmployees(ctx)
	if err != nil {
		return err
	}
	tasks, err := a.repo.ListTasks(ctx)
	if err != nil {
		return err
	}
	finance, err := a.repo.ListFinance(ctx)
	if err != nil {
		return err
	}

	ds := a.mapper.DatasetFromDatabase(employees, tasks, finance)
	a.store.Restore(ds)
	a.logger.WithFields(log.Fields{
		"employees":      len(ds.Employees),
		"tasks":          len(ds.Tasks),
		"municipalities": len(ds.FinanceData),
	}).Debug("records loaded")
	return nil
}

// Employee operations

func (a *apiImpl) CreateEmployee(ctx context.Context, in domain.EmployeeInput) (*domain.Employee, error) {
	cleaned, err := a.employeeValidator.ValidateEmployeeInput(in)
	if err != nil {
		return nil, invalid("invalid employee", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	employee, _ := a.store.AddEmployee(cleaned)
	if err := a.persist(previous, func() error {
		row := a.mapper.Employee.ToDatabase(employee)
		return a.repo.UpsertEmployee(ctx, &row)
	}); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (a *apiImpl) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	if err := validation.ValidateID(a.validator, "id", id); err != nil {
		return nil, invalid("invalid employee id", err)
	}
	employee, ok := a.store.Snapshot().FindEmployee(id)
	if !ok {
		return nil, notFound("employee", id)
	}
	return &employee, nil
}

func (a *apiImpl) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return a.store.Snapshot().Employees, nil
}

func (a *apiImpl) UpdateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	cleaned, err := a.employeeValidator.ValidateEmployee(employee)
	if err != nil {
		return nil, invalid("invalid employee", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	if _, err := a.store.UpdateEmployee(cleaned); err != nil {
		return nil, err
	}
	if err := a.persist(previous, func() error {
		row := a.mapper.Employee.ToDatabase(cleaned)
		return a.repo.UpsertEmployee(ctx, &row)
	}); err != nil {
		return nil, err
	}
	return &cleaned, nil
}

func (a *apiImpl) DeleteEmployee(ctx context.Context, id int64) error {
	if err := validation.ValidateID(a.validator, "id", id); err != nil {
		return invalid("invalid employee id", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	if _, err := a.store.DeleteEmployee(id); err != nil {
		return err
	}
	return a.persist(previous, func() error {
		return a.repo.DeleteEmployee(ctx, id)
	})
}

// Task operations

func (a *apiImpl) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	cleaned, err := a.taskValidator.ValidateTaskInput(in)
	if err != nil {
		return nil, invalid("invalid task", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	task, _ := a.store.AddTask(cleaned)
	if err := a.persist(previous, func() error {
		row := a.mapper.Task.ToDatabase(task)
		return a.repo.UpsertTask(ctx, &row)
	}); err != nil {
		return nil, err
	}
	return &task, nil
}

func (a *apiImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := a.taskValidator.ValidateID(id); err != nil {
		return nil, invalid("invalid task id", err)
	}
	task, ok := a.store.Snapshot().FindTask(id)
	if !ok {
		return nil, notFound("task", id)
	}
	return &task, nil
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return a.store.Snapshot().Tasks, nil
}

func (a *apiImpl) UpdateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	cleaned, err := a.taskValidator.ValidateTask(task)
	if err != nil {
		return nil, invalid("invalid task", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	if _, err := a.store.UpdateTask(cleaned); err != nil {
		return nil, err
	}
	if err := a.persist(previous, func() error {
		row := a.mapper.Task.ToDatabase(cleaned)
		return a.repo.UpsertTask(ctx, &row)
	}); err != nil {
		return nil, err
	}
	return &cleaned, nil
}

func (a *apiImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := a.taskValidator.ValidateID(id); err != nil {
		return invalid("invalid task id", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	if _, err := a.store.DeleteTask(id); err != nil {
		return err
	}
	return a.persist(previous, func() error {
		return a.repo.DeleteTask(ctx, id)
	})
}

// Municipality finance operations

func (a *apiImpl) CreateFinance(ctx context.Context, in domain.FinanceInput) (*domain.FinanceData, error) {
	cleaned, err := a.financeValidator.ValidateFinanceInput(in)
	if err != nil {
		return nil, invalid("invalid municipality", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	finance, _ := a.store.AddFinance(cleaned)
	if err := a.persist(previous, func() error {
		row := a.mapper.Finance.ToDatabase(finance)
		return a.repo.UpsertFinance(ctx, &row)
	}); err != nil {
		return nil, err
	}
	return &finance, nil
}

func (a *apiImpl) GetFinance(ctx context.Context, id int64) (*domain.FinanceData, error) {
	if err := validation.ValidateID(a.validator, "id", id); err != nil {
		return nil, invalid("invalid municipality id", err)
	}
	finance, ok := a.store.Snapshot().FindFinance(id)
	if !ok {
		return nil, notFound("municipality", id)
	}
	return &finance, nil
}

func (a *apiImpl) ListFinance(ctx context.Context) ([]domain.FinanceData, error) {
	return a.store.Snapshot().FinanceData, nil
}

func (a *apiImpl) UpdateFinance(ctx context.Context, finance domain.FinanceData) (*domain.FinanceData, error) {
	cleaned, err := a.financeValidator.ValidateFinance(finance)
	if err != nil {
		return nil, invalid("invalid municipality", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	if _, err := a.store.UpdateFinance(cleaned); err != nil {
		return nil, err
	}
	if err := a.persist(previous, func() error {
		row := a.mapper.Finance.ToDatabase(cleaned)
		return a.repo.UpsertFinance(ctx, &row)
	}); err != nil {
		return nil, err
	}
	return &cleaned, nil
}

func (a *apiImpl) DeleteFinance(ctx context.Context, id int64) error {
	if err := validation.ValidateID(a.validator, "id", id); err != nil {
		return invalid("invalid municipality id", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	if _, err := a.store.DeleteFinance(id); err != nil {
		return err
	}
	return a.persist(previous, func() error {
		return a.repo.DeleteFinance(ctx, id)
	})
}

// persist runs write against the repository and puts previous back into the store if it fails.
// Callers hold a.mu.
func (a *apiImpl) persist(previous domain.Dataset, write func() error) error {
	if a.repo == nil {
		return nil
	}
	if err := write(); err != nil {
		a.store.Restore(previous)
		a.logger.WithError(err).Warn("write-through failed, in-memory change reverted")
		return err
	}
	return nil
}

// invalid wraps field errors so callers see the field messages and can still reach them with errors.As
func invalid(message string, err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return errors.NewValidationError(message, err)
}

func notFound(resource string, id int64) error {
	return errors.NewNotFoundError(resource, fmt.Sprintf("%d", id))
}
