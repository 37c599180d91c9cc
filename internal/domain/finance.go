package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FinanceData is the payment position of one municipality.
type FinanceData struct {
	ID           int64           `json:"id"`
	Municipality string          `json:"municipality"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
}

// FinanceInput holds the fields of a finance record that has not been assigned an id yet.
type FinanceInput struct {
	Municipality string          `json:"municipality"`
	Paid         decimal.Decimal `json:"paid"`
	Pending      decimal.Decimal `json:"pending"`
}

// WithID builds the FinanceData record for the given id.
func (in FinanceInput) WithID(id int64) FinanceData {
	return FinanceData{
		ID:           id,
		Municipality: in.Municipality,
		Paid:         in.Paid,
		Pending:      in.Pending,
	}
}

// Input returns the record without its id.
func (f FinanceData) Input() FinanceInput {
	return FinanceInput{
		Municipality: f.Municipality,
		Paid:         f.Paid,
		Pending:      f.Pending,
	}
}

// Total returns paid plus pending.
func (f FinanceData) Total() decimal.Decimal {
	return f.Paid.Add(f.Pending)
}

// String returns the municipality name for display purposes.
func (f FinanceData) String() string {
	return f.Municipality
}

// NormalizeMunicipality trims and upper-cases a municipality name.
func NormalizeMunicipality(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
