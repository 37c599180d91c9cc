package cli

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "infoco/internal/errors"
	"infoco/internal/validation"
)

func TestMunicipalityCommand_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the name and defaults amounts to zero", func(t *testing.T) {
		app, out := setupTestApp(t, testDataset(), "")
		err := NewMunicipalityCommand(app).Add(ctx, FinanceChanges{Municipality: strPtr(" sorocaba "), Paid: strPtr("120.25")})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Added municipality #3: SOROCABA")

		record, err := app.service.GetFinance(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "SOROCABA", record.Municipality)
		assert.True(t, record.Paid.Equal(decimal.RequireFromString("120.25")))
		assert.True(t, record.Pending.IsZero())
	})

	t.Run("rejects a non-numeric amount", func(t *testing.T) {
		app, _ := setupTestApp(t, testDataset(), "")
		err := NewMunicipalityCommand(app).Add(ctx, FinanceChanges{Municipality: strPtr("Sorocaba"), Pending: strPtr("a lot")})
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		app, _ := setupTestApp(t, testDataset(), "")
		err := NewMunicipalityCommand(app).Add(ctx, FinanceChanges{Municipality: strPtr("Sorocaba"), Paid: strPtr("-1")})
		assert.True(t, validation.IsValidationError(err))
	})
}

func TestMunicipalityCommand_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies flag changes to the given id", func(t *testing.T) {
		app, out := setupTestApp(t, testDataset(), "")
		err := NewMunicipalityCommand(app).Update(ctx, []string{"2"}, FinanceChanges{Pending: strPtr("75.10")})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Updated municipality #2: SANTOS")

		record, err := app.service.GetFinance(ctx, 2)
		require.NoError(t, err)
		assert.True(t, record.Pending.Equal(decimal.RequireFromString("75.10")))
		assert.True(t, record.Paid.Equal(decimal.RequireFromString("300")))
	})

	t.Run("prompts for the row and every field", func(t *testing.T) {
		app, _ := setupTestApp(t, testDataset(), "1\ncampinas sp\n\n0\n")
		err := NewMunicipalityCommand(app).Update(ctx, nil, FinanceChanges{})
		require.NoError(t, err)

		record, err := app.service.GetFinance(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "CAMPINAS SP", record.Municipality)
		assert.True(t, record.Paid.Equal(decimal.RequireFromString("1500.50")))
		assert.True(t, record.Pending.IsZero())
	})
}
