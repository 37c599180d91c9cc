package services

import (
	"github.com/shopspring/decimal"

	"infoco/internal/domain"
)

// DefaultRecentTasksLimit is the number of tasks shown in the dashboard's recent list
const DefaultRecentTasksLimit = 5

// TaskRow is a task paired with the display name of its assignee
type TaskRow struct {
	Task         domain.Task `json:"task"`
	EmployeeName string      `json:"employeeName"`
}

// DashboardData holds the dashboard stat cards and recent-task list
type DashboardData struct {
	ActiveEmployees int       `json:"activeEmployees"`
	TotalTasks      int       `json:"totalTasks"`
	CompletedTasks  int       `json:"completedTasks"`
	PendingTasks    int       `json:"pendingTasks"`
	RecentTasks     []TaskRow `json:"recentTasks"`
}

// FinanceSummary totals the municipality finance records
type FinanceSummary struct {
	Municipalities int             `json:"municipalities"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalPending   decimal.Decimal `json:"totalPending"`
	Total          decimal.Decimal `json:"total"`
}

// SortOrder defines how task results should be sorted
type SortOrder string

const (
	SortByRecentFirst SortOrder = "recent_first" // Newest task date first
	SortByOldestFirst SortOrder = "oldest_first"
	SortByTitle       SortOrder = "title"
	SortByHours       SortOrder = "hours" // Most hours first
	SortByInsertion   SortOrder = ""      // Keep collection order
)

// ParseSortOrder maps a flag or query value to a SortOrder
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortByRecentFirst, SortByOldestFirst, SortByTitle, SortByHours, SortByInsertion:
		return SortOrder(s), true
	case "recent":
		return SortByRecentFirst, true
	case "oldest":
		return SortByOldestFirst, true
	}
	return "", false
}

// DashboardService computes the dashboard aggregates. Results are recomputed on every call.
type DashboardService interface {
	CountCompleted(tasks []domain.Task) int
	CountPending(tasks []domain.Task) int
	RecentTasks(tasks []domain.Task, limit int) []domain.Task
	BuildDashboard(ds domain.Dataset, limit int) DashboardData
	FinanceTotals(records []domain.FinanceData) FinanceSummary
}

// SearchService handles filtering and ordering of task lists
type SearchService interface {
	FilterTasks(tasks []domain.Task, filter domain.TaskFilter) []domain.Task
	SortTasks(tasks []domain.Task, order SortOrder) []domain.Task
	TaskRows(tasks []domain.Task, employees []domain.Employee) []TaskRow
}

// ServiceContainer manages all services
type ServiceContainer struct {
	DashboardService DashboardService
	SearchService    SearchService
}

// NewServiceContainer creates the default service implementations
func NewServiceContainer() *ServiceContainer {
	return &ServiceContainer{
		DashboardService: NewDashboardService(),
		SearchService:    NewSearchService(),
	}
}
