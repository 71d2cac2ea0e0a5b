package frame

import (
	"fmt"
	"strconv"

	"github.com/okapi-data/okapi/internal/config"
	"github.com/okapi-data/okapi/internal/errors"
	"github.com/okapi-data/okapi/internal/render"
)

// Records exports one record per visible row, in view order. Absent cells
// are nil.
func (f *Frame) Records() []Record {
	records := make([]Record, len(f.index))
	for i, pos := range f.index {
		records[i] = f.record(pos)
	}
	return records
}

// Grid exports one value sequence per visible row, columns in frame column
// order.
func (f *Frame) Grid() [][]any {
	grid := make([][]any, len(f.index))
	for i, pos := range f.index {
		row := make([]any, len(f.order))
		for j, name := range f.order {
			row[j] = f.columns[name].At(pos)
		}
		grid[i] = row
	}
	return grid
}

// Values exports the visible values of one column in view order.
func (f *Frame) Values(column string) ([]any, error) {
	s, exists := f.columns[column]
	if !exists {
		return nil, errors.NewColumnNotFoundError("Values", column)
	}

	values := make([]any, len(f.index))
	for i, pos := range f.index {
		values[i] = s.At(pos)
	}
	return values, nil
}

// Render produces a human-readable table of the visible rows. Numeric
// formatting and row truncation follow the global configuration.
func (f *Frame) Render(title string) string {
	cfg := config.GetGlobalConfig()

	grid := f.Grid()
	cells := make([][]string, len(grid))
	for i, row := range grid {
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = formatCell(v, cfg.DisplayPrecision)
		}
	}

	return render.Table(f.Names(), cells, title, cfg.DisplayMaxRows)
}

func formatCell(v any, precision int) string {
	switch c := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(c, 'g', precision, 64)
	case bool:
		return strconv.FormatBool(c)
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}
