package view

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"infoco/internal/format"
	"infoco/internal/services"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2).
			MarginRight(1)
	cardLabelStyle = lipgloss.NewStyle().Faint(true)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

// Card is one dashboard statistic
type Card struct {
	Label string
	Value string
}

// DashboardCards returns the stat cards shown on the dashboard
func DashboardCards(data services.DashboardData) []Card {
	return []Card{
		{Label: "Active employees", Value: strconv.Itoa(data.ActiveEmployees)},
		{Label: "Total tasks", Value: strconv.Itoa(data.TotalTasks)},
		{Label: "Completed", Value: strconv.Itoa(data.CompletedTasks)},
		{Label: "Pending", Value: strconv.Itoa(data.PendingTasks)},
	}
}

// FinanceCards returns the totals shown under the municipality table
func FinanceCards(summary services.FinanceSummary) []Card {
	return []Card{
		{Label: "Total paid", Value: format.Currency(summary.TotalPaid)},
		{Label: "Total pending", Value: format.Currency(summary.TotalPending)},
		{Label: "Total", Value: format.Currency(summary.Total)},
	}
}

// RenderCards lays cards out side by side
func RenderCards(cards []Card) string {
	boxes := make([]string, 0, len(cards))
	for _, card := range cards {
		body := lipgloss.JoinVertical(lipgloss.Left,
			cardLabelStyle.Render(card.Label),
			cardValueStyle.Render(card.Value),
		)
		boxes = append(boxes, cardStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// RenderDashboard renders the stat cards followed by the recent-task table
func RenderDashboard(data services.DashboardData, dateLayout string) string {
	cards := RenderCards(DashboardCards(data))
	recent := NewRecentTaskTable(data.RecentTasks, dateLayout).String()
	return lipgloss.JoinVertical(lipgloss.Left, cards, "", "Recent tasks", recent)
}
