package services

import (
	"sort"

	"github.com/shopspring/decimal"

	"infoco/internal/domain"
	"infoco/internal/format"
)

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct{}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService() DashboardService {
	return &dashboardServiceImpl{}
}

// CountCompleted counts tasks whose status is completed
func (d *dashboardServiceImpl) CountCompleted(tasks []domain.Task) int {
	count := 0
	for _, task := range tasks {
		if task.Status.IsCompleted() {
			count++
		}
	}
	return count
}

// CountPending counts tasks that are pending or in progress
func (d *dashboardServiceImpl) CountPending(tasks []domain.Task) int {
	count := 0
	for _, task := range tasks {
		if task.Status.IsOpen() {
			count++
		}
	}
	return count
}

// RecentTasks returns up to limit tasks ordered by date, newest first.
// Tasks sharing a date keep their collection order. The input is not modified.
func (d *dashboardServiceImpl) RecentTasks(tasks []domain.Task, limit int) []domain.Task {
	if limit <= 0 {
		limit = DefaultRecentTasksLimit
	}

	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// BuildDashboard derives the stat cards and recent tasks from a snapshot
func (d *dashboardServiceImpl) BuildDashboard(ds domain.Dataset, limit int) DashboardData {
	recent := d.RecentTasks(ds.Tasks, limit)
	rows := make([]TaskRow, 0, len(recent))
	for _, task := range recent {
		rows = append(rows, TaskRow{
			Task:         task,
			EmployeeName: format.EmployeeName(task.EmployeeID, ds.Employees),
		})
	}

	return DashboardData{
		ActiveEmployees: len(ds.Employees),
		TotalTasks:      len(ds.Tasks),
		CompletedTasks:  d.CountCompleted(ds.Tasks),
		PendingTasks:    d.CountPending(ds.Tasks),
		RecentTasks:     rows,
	}
}

// FinanceTotals sums the paid and pending amounts across municipalities
func (d *dashboardServiceImpl) FinanceTotals(records []domain.FinanceData) FinanceSummary {
	summary := FinanceSummary{
		Municipalities: len(records),
		TotalPaid:      decimal.Zero,
		TotalPending:   decimal.Zero,
	}
	for _, record := range records {
		summary.TotalPaid = summary.TotalPaid.Add(record.Paid)
		summary.TotalPending = summary.TotalPending.Add(record.Pending)
	}
	summary.Total = summary.TotalPaid.Add(summary.TotalPending)
	return summary
}
