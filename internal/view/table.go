// Package view renders record collections as terminal tables.
package view

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"infoco/internal/errors"
	"infoco/internal/format"
)

// Column classes understood by Table
const (
	ClassRight = "right"
	ClassBold  = "bold"
)

// DefaultEmptyMessage is printed when a table has no rows
const DefaultEmptyMessage = "No records found."

const rowNumberHeader = "#"

// Column describes one table column. A nil Render looks the value up by Key,
// matching a JSON tag or a field name.
type Column[T any] struct {
	Key    string
	Header string
	Render func(T) string
	Class  string
}

// Table renders one row per record, in input order.
// When OnEdit or OnDelete is set a row-number column is shown and Edit and Delete
// accept those numbers.
type Table[T any] struct {
	Columns      []Column[T]
	Rows         []T
	EmptyMessage string

	ID       func(T) int64
	OnEdit   func(T) error
	OnDelete func(id int64) error
}

// HasActions reports whether rows can be selected for edit or delete
func (t *Table[T]) HasActions() bool {
	return t.OnEdit != nil || t.OnDelete != nil
}

// Render writes the table, or the empty message when there are no rows
func (t *Table[T]) Render(w io.Writer) error {
	_, err := io.WriteString(w, t.String()+"\n")
	return err
}

// String returns the rendered table
func (t *Table[T]) String() string {
	if len(t.Rows) == 0 {
		if t.EmptyMessage != "" {
			return t.EmptyMessage
		}
		return DefaultEmptyMessage
	}

	actions := t.HasActions()
	headers := make([]string, 0, len(t.Columns)+1)
	classes := make([]string, 0, len(t.Columns)+1)
	if actions {
		headers = append(headers, rowNumberHeader)
		classes = append(classes, ClassRight)
	}
	for _, col := range t.Columns {
		headers = append(headers, col.Header)
		classes = append(classes, col.Class)
	}

	rows := make([][]string, 0, len(t.Rows))
	for i, record := range t.Rows {
		row := make([]string, 0, len(headers))
		if actions {
			row = append(row, strconv.Itoa(i+1))
		}
		for _, col := range t.Columns {
			row = append(row, t.Cell(record, col))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			if col < len(classes) {
				style = applyClass(style, classes[col])
			}
			return style
		}).
		String()
}

// Cell returns the text shown for record in col
func (t *Table[T]) Cell(record T, col Column[T]) string {
	if col.Render != nil {
		return col.Render(record)
	}
	return lookup(record, col.Key)
}

// Edit invokes OnEdit with the record shown at the 1-based row number
func (t *Table[T]) Edit(row int) error {
	if t.OnEdit == nil {
		return errors.NewInvalidInputError("row", row, "this table has no edit action")
	}
	record, err := t.recordAt(row)
	if err != nil {
		return err
	}
	return t.OnEdit(record)
}

// Delete invokes OnDelete with the id of the record shown at the 1-based row number
func (t *Table[T]) Delete(row int) error {
	if t.OnDelete == nil || t.ID == nil {
		return errors.NewInvalidInputError("row", row, "this table has no delete action")
	}
	record, err := t.recordAt(row)
	if err != nil {
		return err
	}
	return t.OnDelete(t.ID(record))
}

func (t *Table[T]) recordAt(row int) (T, error) {
	var zero T
	if row < 1 || row > len(t.Rows) {
		return zero, errors.NewInvalidInputError("row", row, fmt.Sprintf("must be between 1 and %d", len(t.Rows)))
	}
	return t.Rows[row-1], nil
}

func applyClass(style lipgloss.Style, class string) lipgloss.Style {
	for _, c := range strings.Fields(class) {
		switch c {
		case ClassRight:
			style = style.Align(lipgloss.Right)
		case ClassBold:
			style = style.Bold(true)
		}
	}
	return style
}

// lookup finds the field of record named key, by JSON tag first
func lookup(record any, key string) string {
	v := reflect.ValueOf(record)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return ""
	}

	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == key || (tag == "" && strings.EqualFold(field.Name, key)) || field.Name == key {
			return display(v.Field(i).Interface())
		}
	}
	return ""
}

func display(value any) string {
	switch v := value.(type) {
	case time.Time:
		return format.Date(v)
	case decimal.Decimal:
		return format.Currency(v)
	case float64:
		return format.Hours(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
