package cli

import (
	"strconv"
	"strings"

	"infoco/internal/errors"
	"infoco/internal/view"
)

// selectRow resolves the 1-based table row to act on. An id argument picks the row holding
// that record; otherwise the table is shown with row numbers and the user picks one.
// It returns 0 when there is nothing to pick or the user quits.
func selectRow[T any](app *App, table *view.Table[T], args []string, resource, verb string) (int, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
		if err != nil {
			return 0, errors.NewInvalidInputError("id", args[0], "must be an integer")
		}
		for i, record := range table.Rows {
			if table.ID(record) == id {
				return i + 1, nil
			}
		}
		return 0, errors.NewNotFoundError(resource, args[0])
	}

	if len(table.Rows) == 0 {
		app.println(table.String())
		return 0, nil
	}

	app.printf("Select the %s to %s:\n", resource, verb)
	if err := table.Render(app.out); err != nil {
		return 0, err
	}

	input, err := app.prompt("Enter number to " + verb + ", or 'q' to quit: ")
	if err != nil {
		return 0, err
	}
	if input == "" || strings.EqualFold(input, "q") {
		app.printf("%s cancelled.\n", capitalize(verb))
		return 0, nil
	}

	row, err := strconv.Atoi(input)
	if err != nil || row < 1 || row > len(table.Rows) {
		return 0, errors.NewInvalidInputError("selection", input, "invalid selection")
	}
	return row, nil
}

// confirmDelete asks before a record is removed unless skip is set
func confirmDelete(app *App, resource, name string, skip bool) (bool, error) {
	if skip {
		return true, nil
	}
	ok, err := app.confirm("Delete " + resource + " \"" + name + "\"? This cannot be undone.")
	if err != nil {
		return false, err
	}
	if !ok {
		app.println("Delete cancelled.")
	}
	return ok, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
