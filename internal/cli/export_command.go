package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/bytedance/sonic"

	"infoco/internal/domain"
	"infoco/internal/errors"
)

// Export formats
const (
	ExportCSV  = "csv"
	ExportJSON = "json"
)

// Export collections
const (
	CollectionEmployees      = "employees"
	CollectionTasks          = "tasks"
	CollectionMunicipalities = "municipalities"
	CollectionAll            = "all"
)

// ExportOptions selects what the export command writes and where
type ExportOptions struct {
	Format     string
	Collection string
	Output     string
}

// ExportCommand handles the export command
type ExportCommand struct {
	app *App
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app}
}

// Execute writes the selected collection to stdout, or to opts.Output when set
func (c *ExportCommand) Execute(ctx context.Context, opts ExportOptions) (err error) {
	if opts.Format == "" {
		opts.Format = ExportCSV
	}
	if opts.Collection == "" {
		opts.Collection = CollectionAll
		if opts.Format == ExportCSV {
			opts.Collection = CollectionTasks
		}
	}

	switch opts.Collection {
	case CollectionEmployees, CollectionTasks, CollectionMunicipalities, CollectionAll:
	default:
		return errors.NewInvalidInputError("collection", opts.Collection, "must be employees, tasks, municipalities or all")
	}
	switch opts.Format {
	case ExportJSON:
	case ExportCSV:
		if opts.Collection == CollectionAll {
			return errors.NewInvalidInputError("collection", opts.Collection, "csv exports one collection at a time")
		}
	default:
		return errors.NewInvalidInputError("format", opts.Format, "must be csv or json")
	}

	w := c.app.out
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.Output, err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	ds := c.app.service.Snapshot(ctx)
	if opts.Format == ExportJSON {
		err = writeJSON(w, ds, opts.Collection)
	} else {
		err = writeCSV(w, ds, opts.Collection)
	}
	if err != nil {
		return err
	}

	if opts.Output != "" {
		c.app.logger.WithField("path", opts.Output).Info("export written")
	}
	return nil
}

func writeJSON(w io.Writer, ds domain.Dataset, collection string) error {
	var payload interface{}
	switch collection {
	case CollectionEmployees:
		payload = ds.Employees
	case CollectionTasks:
		payload = ds.Tasks
	case CollectionMunicipalities:
		payload = ds.FinanceData
	default:
		payload = ds
	}

	data, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeCSV(w io.Writer, ds domain.Dataset, collection string) error {
	var records [][]string
	switch collection {
	case CollectionEmployees:
		records = append(records, []string{"ID", "Name", "Role", "Department", "Email", "Phone"})
		for _, e := range ds.Employees {
			records = append(records, []string{strconv.FormatInt(e.ID, 10), e.Name, e.Role, e.Department, e.Email, e.Phone})
		}
	case CollectionTasks:
		records = append(records, []string{"ID", "Employee ID", "Title", "Description", "Date", "Hours", "Status"})
		for _, t := range ds.Tasks {
			records = append(records, []string{
				strconv.FormatInt(t.ID, 10),
				strconv.FormatInt(t.EmployeeID, 10),
				t.Title,
				t.Description,
				t.Date.Format(domain.DateLayout),
				strconv.FormatFloat(t.Hours, 'f', 2, 64),
				string(t.Status),
			})
		}
	case CollectionMunicipalities:
		records = append(records, []string{"ID", "Municipality", "Paid", "Pending", "Total"})
		for _, f := range ds.FinanceData {
			records = append(records, []string{
				strconv.FormatInt(f.ID, 10),
				f.Municipality,
				f.Paid.StringFixed(2),
				f.Pending.StringFixed(2),
				f.Total().StringFixed(2),
			})
		}
	default:
		return errors.NewInvalidInputError("collection", collection, "csv exports one collection at a time")
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
