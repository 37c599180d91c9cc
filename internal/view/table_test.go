package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/services"
)

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: 1, Name: "Ana Souza", Role: "Analista", Email: "ana@infoco.com.br"},
		{ID: 2, Name: "Bruno Lima", Role: "Gerente"},
	}
}

func TestTable_RendersRowsInOrder(t *testing.T) {
	tbl := NewEmployeeTable(sampleEmployees(), "")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	out := buf.String()

	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "ana@infoco.com.br")
	assert.Less(t, strings.Index(out, "Ana Souza"), strings.Index(out, "Bruno Lima"))
	assert.NotContains(t, out, rowNumberHeader+" ")
}

func TestTable_EmptyMessage(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{"custom message", "Nenhum funcionário cadastrado.", "Nenhum funcionário cadastrado."},
		{"default message", "", DefaultEmptyMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewEmployeeTable(nil, tt.message)
			assert.Equal(t, tt.expected, tbl.String())
		})
	}
}

func TestTable_KeyLookup(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	task := domain.Task{ID: 3, Title: "Fechamento", Date: date, Hours: 2.5, Status: domain.TaskStatusCompleted}
	finance := domain.FinanceData{Municipality: "CAMPINAS", Paid: decimal.RequireFromString("1234.5")}

	taskTable := &Table[domain.Task]{}
	financeTable := &Table[domain.FinanceData]{}

	assert.Equal(t, "Fechamento", taskTable.Cell(task, Column[domain.Task]{Key: "title"}))
	assert.Equal(t, "02/05/2024", taskTable.Cell(task, Column[domain.Task]{Key: "date"}))
	assert.Equal(t, "2,5", taskTable.Cell(task, Column[domain.Task]{Key: "hours"}))
	assert.Equal(t, "Concluída", taskTable.Cell(task, Column[domain.Task]{Key: "status"}))
	assert.Equal(t, "3", taskTable.Cell(task, Column[domain.Task]{Key: "ID"}))
	assert.Equal(t, "", taskTable.Cell(task, Column[domain.Task]{Key: "missing"}))
	assert.Equal(t, "R$ 1.234,50", financeTable.Cell(finance, Column[domain.FinanceData]{Key: "paid"}))
}

func TestTable_RenderFunctionWins(t *testing.T) {
	tbl := NewTaskTable(
		[]domain.Task{{ID: 1, EmployeeID: 2, Title: "Auditoria"}, {ID: 2, EmployeeID: 7, Title: "Orçamento"}},
		sampleEmployees(), "", "",
	)

	out := tbl.String()
	assert.Contains(t, out, "Bruno Lima")
	assert.Contains(t, out, "Unknown")
}

func TestTable_Actions(t *testing.T) {
	var edited domain.Employee
	var deleted int64

	tbl := NewEmployeeTable(sampleEmployees(), "")
	tbl.OnEdit = func(e domain.Employee) error {
		edited = e
		return nil
	}
	tbl.OnDelete = func(id int64) error {
		deleted = id
		return nil
	}

	assert.True(t, tbl.HasActions())
	assert.Contains(t, tbl.String(), rowNumberHeader)

	require.NoError(t, tbl.Edit(2))
	assert.Equal(t, "Bruno Lima", edited.Name)

	require.NoError(t, tbl.Delete(1))
	assert.Equal(t, int64(1), deleted)

	err := tbl.Delete(3)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	err = tbl.Edit(0)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestTable_NoActions(t *testing.T) {
	tbl := NewEmployeeTable(sampleEmployees(), "")

	assert.False(t, tbl.HasActions())
	assert.True(t, errors.IsErrorType(tbl.Edit(1), errors.ErrorTypeInvalidInput))
	assert.True(t, errors.IsErrorType(tbl.Delete(1), errors.ErrorTypeInvalidInput))
}

func TestFinanceTable_Total(t *testing.T) {
	tbl := NewFinanceTable([]domain.FinanceData{
		{ID: 1, Municipality: "SANTOS", Paid: decimal.NewFromInt(1000), Pending: decimal.RequireFromString("234.56")},
	}, "")

	out := tbl.String()
	assert.Contains(t, out, "SANTOS")
	assert.Contains(t, out, "R$ 1.234,56")
}

func TestRenderDashboard(t *testing.T) {
	data := services.DashboardData{
		ActiveEmployees: 2,
		TotalTasks:      4,
		CompletedTasks:  1,
		PendingTasks:    3,
		RecentTasks: []services.TaskRow{
			{Task: domain.Task{Title: "Auditoria", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Status: domain.TaskStatusPending}, EmployeeName: "Ana"},
		},
	}

	out := RenderDashboard(data, "")
	for _, want := range []string{"Active employees", "Total tasks", "Completed", "Pending", "Auditoria", "Ana", "02/05/2024"} {
		assert.Contains(t, out, want)
	}

	empty := RenderDashboard(services.DashboardData{}, "")
	assert.Contains(t, empty, "No recent tasks.")
}

func TestMarkdownRenderer(t *testing.T) {
	renderer, err := NewMarkdownRenderer(80)
	require.NoError(t, err)

	out := renderer.Render("**Ana** has *two* tasks:\n\n- Auditoria\n- Orçamento")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Auditoria")
	assert.Contains(t, out, "Orçamento")

	var nilRenderer *MarkdownRenderer
	assert.Equal(t, "plain", nilRenderer.Render("plain"))
}
