package services

import (
	"sort"
	"strings"

	"infoco/internal/domain"
	"infoco/internal/format"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct{}

// NewSearchService creates a new SearchService instance
func NewSearchService() SearchService {
	return &searchServiceImpl{}
}

// FilterTasks returns the tasks matching every criterion of filter, in collection order
func (s *searchServiceImpl) FilterTasks(tasks []domain.Task, filter domain.TaskFilter) []domain.Task {
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if filter.Matches(task) {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

// SortTasks returns a sorted copy of tasks
func (s *searchServiceImpl) SortTasks(tasks []domain.Task, order SortOrder) []domain.Task {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	switch order {
	case SortByRecentFirst:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.After(sorted[j].Date)
		})
	case SortByOldestFirst:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	case SortByHours:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Hours > sorted[j].Hours
		})
	}

	return sorted
}

// TaskRows pairs each task with its assignee's name
func (s *searchServiceImpl) TaskRows(tasks []domain.Task, employees []domain.Employee) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, TaskRow{
			Task:         task,
			EmployeeName: format.EmployeeName(task.EmployeeID, employees),
		})
	}
	return rows
}
