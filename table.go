package dcf

import (
	"iter"
	"slices"

	"github.com/karlp-asrs/nus-apartment/date"
)

// TotalColumn is the name of the computed total column appended by Combine.
const TotalColumn = "total"

// Table is a dated table of amounts: one row per date, one column per cash
// flow category, plus a computed Total column (always last). Rows are in
// chronological order. A Table is immutable; annualizing returns a new one.
type Table struct {
	columns []string
	dates   []date.Date
	cells   [][]float64 // cells[row][col], aligned with dates and columns
}

// Combine builds a table from any number of named series of possibly
// different lengths and date sets. Rows are the sorted union of all dates;
// a category missing a date contributes zero. The Total column is the
// row-wise sum of the category columns and therefore does not depend on the
// order the series are supplied in.
func Combine(flows ...*CashFlow) *Table {
	t := &Table{}
	histories := make([]date.History[float64], 0, len(flows))
	for _, f := range flows {
		t.columns = append(t.columns, f.name)
		histories = append(histories, f.hist)
	}
	t.columns = append(t.columns, TotalColumn)

	for on := range date.Iterate(histories...) {
		row := make([]float64, len(flows)+1)
		var total float64
		for i, f := range flows {
			v, _ := f.Amount(on) // zero when absent
			row[i] = v
			total += v
		}
		row[len(flows)] = total
		t.dates = append(t.dates, on)
		t.cells = append(t.cells, row)
	}
	return t
}

// Columns returns the column names, Total last.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.dates) }

// Rows returns an iterator over all date/row pairs in chronological order.
// The yielded slice must not be modified.
func (t *Table) Rows() iter.Seq2[date.Date, []float64] {
	return func(yield func(date.Date, []float64) bool) {
		for i, on := range t.dates {
			if !yield(on, t.cells[i]) {
				return
			}
		}
	}
}

// Column returns the values of the named column in row order, or false when
// the column does not exist.
func (t *Table) Column(name string) ([]float64, bool) {
	j := slices.Index(t.columns, name)
	if j < 0 {
		return nil, false
	}
	out := make([]float64, len(t.cells))
	for i, row := range t.cells {
		out[i] = row[j]
	}
	return out, true
}

// Total returns the Total column in row order.
func (t *Table) Total() []float64 {
	out, _ := t.Column(TotalColumn)
	return out
}

// years returns the inclusive calendar-year span of the table.
func (t *Table) years() (first, last int) {
	if len(t.dates) == 0 {
		return 0, -1
	}
	return t.dates[0].Year(), t.dates[len(t.dates)-1].Year()
}

// AnnualizeFlow collapses the table to one row per calendar year spanned by
// the input, each column (Total included) summed within the year. A spanned
// year with no rows yields a zero row. The result is truncated to maxYears
// rows when maxYears is positive.
//
// Summing is only meaningful for flow quantities; use AnnualizeStock for
// balances.
func (t *Table) AnnualizeFlow(maxYears int) *Table {
	out := &Table{columns: slices.Clone(t.columns)}
	first, last := t.years()
	for y := first; y <= last; y++ {
		row := make([]float64, len(t.columns))
		for i, on := range t.dates {
			if on.Year() != y {
				continue
			}
			for j, v := range t.cells[i] {
				row[j] += v
			}
		}
		out.dates = append(out.dates, date.New(y, 12, 31))
		out.cells = append(out.cells, row)
	}
	return out.truncate(maxYears)
}

// AnnualizeStock collapses the table to one row per calendar year spanned by
// the input, each column carrying the value of the chronologically last row
// within that year. A spanned year with no rows carries the previous year's
// closing values forward. The result is truncated to maxYears rows when
// maxYears is positive.
func (t *Table) AnnualizeStock(maxYears int) *Table {
	out := &Table{columns: slices.Clone(t.columns)}
	first, last := t.years()
	prev := make([]float64, len(t.columns))
	for y := first; y <= last; y++ {
		row := prev
		for i, on := range t.dates {
			if on.Year() == y {
				row = t.cells[i] // rows are chronological, the last one in the year wins
			}
		}
		out.dates = append(out.dates, date.New(y, 12, 31))
		out.cells = append(out.cells, slices.Clone(row))
		prev = row
	}
	return out.truncate(maxYears)
}

// truncate keeps the first n rows when n is positive.
func (t *Table) truncate(n int) *Table {
	if n > 0 && len(t.dates) > n {
		t.dates = t.dates[:n]
		t.cells = t.cells[:n]
	}
	return t
}
