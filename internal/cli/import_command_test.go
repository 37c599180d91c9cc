package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infoco/internal/domain"
	apperrors "infoco/internal/errors"
	"infoco/internal/validation"
)

// exportTestDataset writes the test dataset as a JSON export and returns the file path
func exportTestDataset(t *testing.T) string {
	t.Helper()
	source, _ := setupTestApp(t, testDataset(), "")
	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, NewExportCommand(source).Execute(context.Background(), ExportOptions{Format: ExportJSON, Output: path}))
	return path
}

func TestImportCommand_Execute(t *testing.T) {
	ctx := context.Background()
	path := exportTestDataset(t)

	t.Run("replaces every collection", func(t *testing.T) {
		app, out := setupTestApp(t, domain.Dataset{}, "")
		require.NoError(t, NewImportCommand(app).Execute(ctx, path, true))
		assert.Equal(t, "Imported 2 employees, 3 tasks and 2 municipalities\n", out.String())

		ds := app.service.Snapshot(ctx)
		assert.Equal(t, testDataset().Employees, ds.Employees)
		assert.Len(t, ds.Tasks, 3)
		assert.Len(t, ds.FinanceData, 2)

		// new records continue after the imported ids
		employee, err := app.service.CreateEmployee(ctx, domain.EmployeeInput{Name: "Carla Dias"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), employee.ID)
	})

	t.Run("asks before replacing", func(t *testing.T) {
		app, out := setupTestApp(t, domain.Dataset{}, "n\n")
		require.NoError(t, NewImportCommand(app).Execute(ctx, path, false))
		assert.Contains(t, out.String(), "Replace 0 employees, 0 tasks and 0 municipalities? [y/N]: ")
		assert.Contains(t, out.String(), "Import cancelled.")
		assert.Empty(t, app.service.Snapshot(ctx).Employees)
	})

	t.Run("reads from the input stream", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		app, _ := setupTestApp(t, domain.Dataset{}, string(data))
		require.NoError(t, NewImportCommand(app).Execute(ctx, "-", true))
		assert.Len(t, app.service.Snapshot(ctx).Tasks, 3)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		app, _ := setupTestApp(t, testDataset(), "{not json")
		err := NewImportCommand(app).Execute(ctx, "-", true)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
		assert.Len(t, app.service.Snapshot(ctx).Tasks, 3)
	})

	t.Run("rejects invalid records and keeps the current ones", func(t *testing.T) {
		invalid := `{"employees":[{"id":1,"name":""}],"tasks":[],"financeData":[]}`
		app, _ := setupTestApp(t, testDataset(), invalid)
		err := NewImportCommand(app).Execute(ctx, "-", true)
		assert.True(t, validation.IsValidationError(err))
		assert.Len(t, app.service.Snapshot(ctx).Employees, 2)
	})

	t.Run("missing file", func(t *testing.T) {
		app, out := setupTestApp(t, testDataset(), "")
		err := NewImportCommand(app).Execute(ctx, filepath.Join(t.TempDir(), "missing.json"), true)
		assert.Error(t, err)
		assert.Empty(t, out.String())
	})
}
