package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"infoco/internal/domain"
	"infoco/internal/errors"
)

// ImportCommand handles the import command
type ImportCommand struct {
	app *App
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app}
}

// Execute replaces every collection with the dataset read from path, or from
// the input stream when path is "-". The JSON layout is the one written by
// export --format json.
func (c *ImportCommand) Execute(ctx context.Context, path string, yes bool) error {
	data, err := c.read(path)
	if err != nil {
		return err
	}

	var ds domain.Dataset
	if err := sonic.ConfigStd.Unmarshal(data, &ds); err != nil {
		return errors.NewInvalidInputError("file", path, "not a valid dataset: "+err.Error())
	}

	if !yes {
		current := c.app.service.Snapshot(ctx)
		ok, err := c.app.confirm(fmt.Sprintf("Replace %d employees, %d tasks and %d municipalities?",
			len(current.Employees), len(current.Tasks), len(current.FinanceData)))
		if err != nil {
			return err
		}
		if !ok {
			c.app.println("Import cancelled.")
			return nil
		}
	}

	if err := c.app.service.Import(ctx, ds); err != nil {
		return err
	}
	c.app.printf("Imported %d employees, %d tasks and %d municipalities\n",
		len(ds.Employees), len(ds.Tasks), len(ds.FinanceData))
	return nil
}

func (c *ImportCommand) read(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(c.app.in)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
