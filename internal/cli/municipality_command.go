package cli

import (
	"context"

	"github.com/shopspring/decimal"

	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/format"
	"infoco/internal/view"
)

// MunicipalityCommand handles the municipality add and update commands
type MunicipalityCommand struct {
	app *App
}

// FinanceChanges holds the fields given on the command line; nil fields keep their value.
// Amounts are kept as text so they are parsed without float rounding.
type FinanceChanges struct {
	Municipality *string
	Paid         *string
	Pending      *string
}

// IsEmpty reports whether no field was given
func (ch FinanceChanges) IsEmpty() bool {
	return ch.Municipality == nil && ch.Paid == nil && ch.Pending == nil
}

func (ch FinanceChanges) apply(f domain.FinanceData) (domain.FinanceData, error) {
	setString(&f.Municipality, ch.Municipality)
	if ch.Paid != nil {
		paid, err := parseAmount("paid", *ch.Paid)
		if err != nil {
			return domain.FinanceData{}, err
		}
		f.Paid = paid
	}
	if ch.Pending != nil {
		pending, err := parseAmount("pending", *ch.Pending)
		if err != nil {
			return domain.FinanceData{}, err
		}
		f.Pending = pending
	}
	return f, nil
}

// NewMunicipalityCommand creates a new municipality command handler
func NewMunicipalityCommand(app *App) *MunicipalityCommand {
	return &MunicipalityCommand{app: app}
}

// Add creates a municipality finance record. Missing amounts default to zero.
func (c *MunicipalityCommand) Add(ctx context.Context, fields FinanceChanges) error {
	draft, err := fields.apply(domain.FinanceData{})
	if err != nil {
		return err
	}

	record, err := c.app.service.CreateFinance(ctx, draft.Input())
	if err != nil {
		return err
	}
	c.app.printf("Added municipality #%d: %s (total %s)\n", record.ID, record.Municipality, format.Currency(record.Total()))
	return nil
}

// Update edits the municipality named by args[0], or one picked from the list
func (c *MunicipalityCommand) Update(ctx context.Context, args []string, changes FinanceChanges) error {
	records, err := c.app.service.ListFinance(ctx)
	if err != nil {
		return err
	}

	table := view.NewFinanceTable(records, c.app.emptyMessage())
	table.OnEdit = func(current domain.FinanceData) error {
		edited, err := changes.apply(current)
		if err != nil {
			return err
		}
		if changes.IsEmpty() {
			if edited, err = c.promptFinance(current); err != nil {
				return err
			}
		}

		updated, err := c.app.service.UpdateFinance(ctx, edited)
		if err != nil {
			return err
		}
		c.app.printf("Updated municipality #%d: %s (total %s)\n", updated.ID, updated.Municipality, format.Currency(updated.Total()))
		return nil
	}

	row, err := selectRow(c.app, table, args, "municipality", "update")
	if err != nil || row == 0 {
		return err
	}
	return table.Edit(row)
}

func (c *MunicipalityCommand) promptFinance(current domain.FinanceData) (domain.FinanceData, error) {
	name, err := c.app.promptField("Municipality", current.Municipality)
	if err != nil {
		return domain.FinanceData{}, err
	}
	paid, err := c.app.promptField("Paid", current.Paid.String())
	if err != nil {
		return domain.FinanceData{}, err
	}
	pending, err := c.app.promptField("Pending", current.Pending.String())
	if err != nil {
		return domain.FinanceData{}, err
	}
	return FinanceChanges{Municipality: &name, Paid: &paid, Pending: &pending}.apply(current)
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.NewInvalidInputError(field, value, "must be a number")
	}
	return amount, nil
}
