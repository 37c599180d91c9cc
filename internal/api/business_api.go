package api

import (
	"context"

	"infoco/internal/ai"
	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/services"
	"infoco/internal/validation"
)

const aiNotConfiguredMessage = "AI analysis is not configured. Set GEMINI_API_KEY to enable it."

// BusinessAPI defines the read models and whole-dataset workflows
type BusinessAPI interface {
	// ========== Dataset ==========

	// Snapshot returns a copy of every collection
	Snapshot(ctx context.Context) domain.Dataset

	// Import validates every record of ds and replaces all collections with it
	Import(ctx context.Context, ds domain.Dataset) error

	// ========== Dashboard and Analytics ==========

	// GetDashboardData returns the stat cards and the limit most recent tasks
	GetDashboardData(ctx context.Context, limit int) (*services.DashboardData, error)

	// SearchTasks filters and orders the tasks, pairing each with its assignee's name
	SearchTasks(ctx context.Context, filter domain.TaskFilter, order services.SortOrder) ([]services.TaskRow, error)

	// GetFinanceTotals sums the municipality finance records
	GetFinanceTotals(ctx context.Context) (*services.FinanceSummary, error)

	// ========== AI ==========

	// Analyze answers a free-form question about the current records
	Analyze(ctx context.Context, question string) (string, error)
}

// Service is the complete facade
type Service interface {
	API
	BusinessAPI
}

// ========== Dataset ==========

func (a *apiImpl) Snapshot(ctx context.Context) domain.Dataset {
	return a.store.Snapshot()
}

func (a *apiImpl) Import(ctx context.Context, ds domain.Dataset) error {
	cleaned, err := a.validateDataset(ds)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.store.Snapshot()
	a.store.Restore(cleaned)
	return a.persist(previous, func() error {
		employees, tasks, finance := a.mapper.DatasetToDatabase(cleaned)
		return a.repo.ReplaceAll(ctx, employees, tasks, finance)
	})
}

func (a *apiImpl) validateDataset(ds domain.Dataset) (domain.Dataset, error) {
	cleaned := domain.Dataset{
		Employees:   make([]domain.Employee, 0, len(ds.Employees)),
		Tasks:       make([]domain.Task, 0, len(ds.Tasks)),
		FinanceData: make([]domain.FinanceData, 0, len(ds.FinanceData)),
	}

	seen := make(map[int64]bool)
	for _, e := range ds.Employees {
		employee, err := a.employeeValidator.ValidateEmployee(e)
		if err != nil {
			return domain.Dataset{}, invalid("invalid employee", err)
		}
		if seen[employee.ID] {
			return domain.Dataset{}, duplicateID("employee", employee.ID)
		}
		seen[employee.ID] = true
		cleaned.Employees = append(cleaned.Employees, employee)
	}

	seen = make(map[int64]bool)
	for _, t := range ds.Tasks {
		task, err := a.taskValidator.ValidateTask(t)
		if err != nil {
			return domain.Dataset{}, invalid("invalid task", err)
		}
		if seen[task.ID] {
			return domain.Dataset{}, duplicateID("task", task.ID)
		}
		seen[task.ID] = true
		cleaned.Tasks = append(cleaned.Tasks, task)
	}

	seen = make(map[int64]bool)
	for _, f := range ds.FinanceData {
		finance, err := a.financeValidator.ValidateFinance(f)
		if err != nil {
			return domain.Dataset{}, invalid("invalid municipality", err)
		}
		if seen[finance.ID] {
			return domain.Dataset{}, duplicateID("municipality", finance.ID)
		}
		seen[finance.ID] = true
		cleaned.FinanceData = append(cleaned.FinanceData, finance)
	}

	return cleaned, nil
}

func duplicateID(resource string, id int64) error {
	return errors.NewInvalidInputError(resource+" id", id, "appears more than once")
}

// ========== Dashboard and Analytics ==========

func (a *apiImpl) GetDashboardData(ctx context.Context, limit int) (*services.DashboardData, error) {
	data := a.services.DashboardService.BuildDashboard(a.store.Snapshot(), limit)
	return &data, nil
}

func (a *apiImpl) SearchTasks(ctx context.Context, filter domain.TaskFilter, order services.SortOrder) ([]services.TaskRow, error) {
	parsed, ok := services.ParseSortOrder(string(order))
	if !ok {
		return nil, errors.NewInvalidInputError("sort", order, "must be one of recent_first, oldest_first, title, hours")
	}

	ds := a.store.Snapshot()
	search := a.services.SearchService
	tasks := search.SortTasks(search.FilterTasks(ds.Tasks, filter), parsed)
	return search.TaskRows(tasks, ds.Employees), nil
}

func (a *apiImpl) GetFinanceTotals(ctx context.Context) (*services.FinanceSummary, error) {
	summary := a.services.DashboardService.FinanceTotals(a.store.Snapshot().FinanceData)
	return &summary, nil
}

// ========== AI ==========

func (a *apiImpl) Analyze(ctx context.Context, question string) (string, error) {
	if _, err := a.validator.ValidateQuestion(question); err != nil {
		return "", invalid("invalid question", err)
	}
	if a.analyzer == nil {
		return "", errors.NewExternalServiceError("ai", ai.CodeUnavailable, aiNotConfiguredMessage, nil)
	}

	answer, err := a.analyzer.Analyze(ctx, question, a.store.Snapshot())
	if err != nil {
		if validation.IsValidationError(err) {
			return "", invalid("invalid question", err)
		}
		return "", err
	}
	return answer, nil
}
