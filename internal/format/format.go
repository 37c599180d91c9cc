// Package format renders dates, money and names the way the dashboard shows them.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"infoco/internal/domain"
)

// DateLayout is the day/month/year layout used for display
const DateLayout = "02/01/2006"

// UnknownEmployee is shown for tasks whose employee no longer exists
const UnknownEmployee = "Unknown"

const currencySymbol = "R$"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Date formats t as dd/mm/yyyy. The zero time renders as an empty string.
func Date(t time.Time) string {
	return DateWithLayout(t, DateLayout)
}

// DateWithLayout formats t with a configured layout
func DateWithLayout(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayout
	}
	return t.Format(layout)
}

// Currency formats an amount as Brazilian reais, e.g. "R$ 1.234,56"
func Currency(amount decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(currency.BRL)
	fixed := amount.StringFixed(int32(scale))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = printer.Sprintf("%d", n)
	}
	if frac != "" {
		whole += "," + frac
	}
	return sign + currencySymbol + " " + whole
}

// Hours formats worked hours with a decimal comma, e.g. "3,5"
func Hours(h float64) string {
	return printer.Sprintf("%.1f", h)
}

// EmployeeName returns the name of the employee with id, or UnknownEmployee
func EmployeeName(id int64, employees []domain.Employee) string {
	for _, e := range employees {
		if e.ID == id {
			return e.Name
		}
	}
	return UnknownEmployee
}
