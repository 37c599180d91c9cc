package store

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infoco/internal/domain"
	"infoco/internal/errors"
)

func seededStore() *Store {
	return NewWithDataset(domain.Dataset{
		Employees: []domain.Employee{
			{ID: 1, Name: "Ana Souza", Role: "Analista"},
			{ID: 2, Name: "Bruno Lima", Role: "Gerente"},
		},
		Tasks: []domain.Task{
			{ID: 1, EmployeeID: 1, Title: "Fechamento", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Status: domain.TaskStatusPending},
		},
		FinanceData: []domain.FinanceData{
			{ID: 1, Municipality: "CAMPINAS", Paid: decimal.NewFromInt(100), Pending: decimal.NewFromInt(50)},
		},
	})
}

func TestAddEmployee(t *testing.T) {
	s := seededStore()

	employee, ds := s.AddEmployee(domain.EmployeeInput{Name: "Carla Dias", Role: "Contadora"})

	assert.Equal(t, int64(3), employee.ID)
	assert.Len(t, ds.Employees, 3)
	found, ok := ds.FindEmployee(employee.ID)
	require.True(t, ok)
	assert.Equal(t, "Carla Dias", found.Name)
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := New()

	ids := map[int64]bool{}
	for i := 0; i < 10; i++ {
		task, _ := s.AddTask(domain.TaskInput{Title: "t", Status: domain.TaskStatusPending})
		assert.False(t, ids[task.ID], "id %d reused", task.ID)
		ids[task.ID] = true
	}
	assert.Len(t, s.Snapshot().Tasks, 10)
}

func TestAddFinance(t *testing.T) {
	s := seededStore()

	record, ds := s.AddFinance(domain.FinanceInput{Municipality: "SANTOS", Paid: decimal.NewFromInt(10)})

	assert.Equal(t, int64(2), record.ID)
	assert.Len(t, ds.FinanceData, 2)
	assert.Equal(t, "SANTOS", ds.FinanceData[1].Municipality)
}

func TestUpdateChangesOnlyTarget(t *testing.T) {
	s := seededStore()

	ds, err := s.UpdateEmployee(domain.Employee{ID: 2, Name: "Bruno Lima", Role: "Diretor"})
	require.NoError(t, err)

	assert.Equal(t, "Diretor", ds.Employees[1].Role)
	assert.Equal(t, domain.Employee{ID: 1, Name: "Ana Souza", Role: "Analista"}, ds.Employees[0])
}

func TestUpdateTaskAndFinance(t *testing.T) {
	s := seededStore()

	task := s.Snapshot().Tasks[0]
	task.Status = domain.TaskStatusCompleted
	ds, err := s.UpdateTask(task)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, ds.Tasks[0].Status)

	finance := s.Snapshot().FinanceData[0]
	finance.Pending = decimal.Zero
	ds, err = s.UpdateFinance(finance)
	require.NoError(t, err)
	assert.True(t, ds.FinanceData[0].Pending.IsZero())
}

func TestUpdateMissingID(t *testing.T) {
	s := seededStore()
	before := s.Snapshot()

	_, err := s.UpdateEmployee(domain.Employee{ID: 99, Name: "Ghost"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = s.UpdateTask(domain.Task{ID: 99})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = s.UpdateFinance(domain.FinanceData{ID: 99})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	assert.Equal(t, before, s.Snapshot())
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	s := seededStore()

	ds, err := s.DeleteEmployee(1)
	require.NoError(t, err)
	require.Len(t, ds.Employees, 1)
	assert.Equal(t, int64(2), ds.Employees[0].ID)

	// no cascade
	assert.Len(t, ds.Tasks, 1)

	_, err = s.DeleteEmployee(1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestDeleteTaskAndFinance(t *testing.T) {
	s := seededStore()

	ds, err := s.DeleteTask(1)
	require.NoError(t, err)
	assert.Empty(t, ds.Tasks)

	ds, err = s.DeleteFinance(1)
	require.NoError(t, err)
	assert.Empty(t, ds.FinanceData)

	_, err = s.DeleteTask(1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	_, err = s.DeleteFinance(1)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSnapshotIsACopy(t *testing.T) {
	s := seededStore()

	snap := s.Snapshot()
	snap.Employees[0].Name = "Changed"
	snap.Tasks = append(snap.Tasks, domain.Task{ID: 50})

	fresh := s.Snapshot()
	assert.Equal(t, "Ana Souza", fresh.Employees[0].Name)
	assert.Len(t, fresh.Tasks, 1)
}

func TestDeletedSnapshotUnaffected(t *testing.T) {
	s := seededStore()
	before := s.Snapshot()

	_, err := s.DeleteEmployee(1)
	require.NoError(t, err)

	assert.Len(t, before.Employees, 2)
	assert.Equal(t, "Ana Souza", before.Employees[0].Name)
}

func TestRestoreKeepsCountersMonotonic(t *testing.T) {
	s := seededStore()
	s.AddEmployee(domain.EmployeeInput{Name: "Carla"})

	s.Restore(domain.Dataset{})
	assert.Empty(t, s.Snapshot().Employees)

	employee, _ := s.AddEmployee(domain.EmployeeInput{Name: "Davi"})
	assert.Equal(t, int64(4), employee.ID)
}

func TestConcurrentAdds(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddEmployee(domain.EmployeeInput{Name: "Worker"})
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	ds := s.Snapshot()
	assert.Len(t, ds.Employees, 50)
	seen := map[int64]bool{}
	for _, e := range ds.Employees {
		seen[e.ID] = true
	}
	assert.Len(t, seen, 50)
}
