package cli

import (
	"context"

	"infoco/internal/view"
)

// DashboardCommand handles the dashboard command
type DashboardCommand struct {
	app *App
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{app: app}
}

// Execute prints the stat cards, the recent tasks and the finance totals
func (c *DashboardCommand) Execute(ctx context.Context) error {
	data, err := c.app.service.GetDashboardData(ctx, c.app.recentTasksLimit())
	if err != nil {
		return err
	}
	c.app.println(view.RenderDashboard(*data, c.app.dateLayout()))

	summary, err := c.app.service.GetFinanceTotals(ctx)
	if err != nil {
		return err
	}
	if summary.Municipalities == 0 {
		return nil
	}
	c.app.println()
	c.app.println("Finance")
	c.app.println(view.RenderCards(view.FinanceCards(*summary)))
	return nil
}
