package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infoco/internal/domain"
)

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, EmployeeID: 1, Title: "Conciliação bancária", Date: day(5), Hours: 2, Status: domain.TaskStatusPending},
		{ID: 2, EmployeeID: 2, Title: "Auditoria", Date: day(1), Hours: 6, Status: domain.TaskStatusCompleted},
		{ID: 3, EmployeeID: 1, Title: "balanço anual", Date: day(9), Hours: 4, Status: domain.TaskStatusInProgress},
	}
}

func TestSearchService_FilterTasks(t *testing.T) {
	svc := NewSearchService()
	employeeOne := int64(1)
	completed := domain.TaskStatusCompleted

	tests := []struct {
		name     string
		filter   domain.TaskFilter
		expected []int64
	}{
		{"should keep everything for empty filter", domain.TaskFilter{}, []int64{1, 2, 3}},
		{"should filter by employee", domain.TaskFilter{EmployeeID: &employeeOne}, []int64{1, 3}},
		{"should filter by status", domain.TaskFilter{Status: &completed}, []int64{2}},
		{"should match title case-insensitively", domain.TaskFilter{TitleContains: "BAL"}, []int64{3}},
		{"should combine criteria", domain.TaskFilter{EmployeeID: &employeeOne, Status: &completed}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.FilterTasks(sampleTasks(), tt.filter)
			ids := make([]int64, 0, len(result))
			for _, task := range result {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestSearchService_SortTasks(t *testing.T) {
	svc := NewSearchService()

	tests := []struct {
		name     string
		order    SortOrder
		expected []int64
	}{
		{"recent first", SortByRecentFirst, []int64{3, 1, 2}},
		{"oldest first", SortByOldestFirst, []int64{2, 1, 3}},
		{"title", SortByTitle, []int64{2, 3, 1}},
		{"hours", SortByHours, []int64{2, 3, 1}},
		{"insertion", SortByInsertion, []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := sampleTasks()
			result := svc.SortTasks(tasks, tt.order)

			require.Len(t, result, len(tt.expected))
			for i, id := range tt.expected {
				assert.Equal(t, id, result[i].ID)
			}
			assert.Equal(t, int64(1), tasks[0].ID, "input must not be reordered")
		})
	}
}

func TestSearchService_TaskRows(t *testing.T) {
	svc := NewSearchService()
	employees := []domain.Employee{{ID: 1, Name: "Ana"}}

	rows := svc.TaskRows(sampleTasks(), employees)

	require.Len(t, rows, 3)
	assert.Equal(t, "Ana", rows[0].EmployeeName)
	assert.Equal(t, "Unknown", rows[1].EmployeeName)
}

func TestParseSortOrder(t *testing.T) {
	order, ok := ParseSortOrder("recent")
	assert.True(t, ok)
	assert.Equal(t, SortByRecentFirst, order)

	order, ok = ParseSortOrder("hours")
	assert.True(t, ok)
	assert.Equal(t, SortByHours, order)

	_, ok = ParseSortOrder("random")
	assert.False(t, ok)
}
