package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a named column does not exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrLengthMismatch is returned when a column does not match the row count.
	ErrLengthMismatch = errors.New("column length does not match row count")
	// ErrUnsupportedFormat indicates no reader or writer handles the file type.
	ErrUnsupportedFormat = errors.New("unrecognized file type")
)

// missingTokens are compared case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {}, "nat": {},
}

// IsMissing reports whether a cell holds no value.
func IsMissing(s string) bool {
	v := strings.TrimSpace(s)
	if v == "" {
		return true
	}
	_, ok := missingTokens[strings.ToLower(v)]
	return ok
}

// Table is an ordered collection of named, row-aligned string columns.
type Table struct {
	Name  string
	names []string
	index map[string]int
	cols  [][]string
	rows  int
}

// New creates an empty table with the given column names. A blank name
// becomes "Unnamed: <position>" and a repeated name gets a ".1", ".2", ...
// suffix, so every header cell keeps its own column.
func New(columns []string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for j, c := range columns {
		if strings.TrimSpace(c) == "" {
			c = fmt.Sprintf("Unnamed: %d", j)
		}
		name := c
		for k := 1; ; k++ {
			if _, dup := t.index[name]; !dup {
				break
			}
			name = fmt.Sprintf("%s.%d", c, k)
		}
		t.index[name] = len(t.names)
		t.names = append(t.names, name)
		t.cols = append(t.cols, nil)
	}
	return t
}

// FromRecords builds a table from a header and row records. Short rows are
// padded with empty cells; extra cells are dropped.
func FromRecords(header []string, rows [][]string) *Table {
	t := New(header)
	for _, r := range rows {
		t.AppendRow(r)
	}
	return t
}

// AppendRow adds a row, aligning cells to the table's columns by position.
func (t *Table) AppendRow(rec []string) {
	for j := range t.cols {
		v := ""
		if j < len(rec) {
			v = rec[j]
		}
		t.cols[j] = append(t.cols[j], v)
	}
	t.rows++
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Has reports whether the column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	out := make([]string, t.rows)
	copy(out, t.cols[j])
	return out, nil
}

// SetColumn replaces the named column, or appends it when absent.
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != t.rows && !(len(t.names) == 0 && t.rows == 0) {
		return fmt.Errorf("%w: %q has %d values, table has %d rows", ErrLengthMismatch, name, len(values), t.rows)
	}
	cp := make([]string, len(values))
	copy(cp, values)
	if j, ok := t.index[name]; ok {
		t.cols[j] = cp
		return nil
	}
	if t.index == nil {
		t.index = map[string]int{}
	}
	t.index[name] = len(t.names)
	t.names = append(t.names, name)
	t.cols = append(t.cols, cp)
	t.rows = len(values)
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.cols))
	for j := range t.cols {
		out[j] = t.cols[j][i]
	}
	return out
}

// Records returns all rows in order.
func (t *Table) Records() [][]string {
	out := make([][]string, t.rows)
	for i := range out {
		out[i] = t.Row(i)
	}
	return out
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(row []string) bool) *Table {
	out := New(t.names)
	out.Name = t.Name
	for i := 0; i < t.rows; i++ {
		r := t.Row(i)
		if keep(r) {
			out.AppendRow(r)
		}
	}
	return out
}

// Unique returns the distinct non-missing values of a column in ascending order.
func (t *Table) Unique(name string) ([]string, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if IsMissing(v) {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	out := New(t.names)
	out.Name = t.Name
	out.rows = t.rows
	for j := range t.cols {
		out.cols[j] = make([]string, len(t.cols[j]))
		copy(out.cols[j], t.cols[j])
	}
	return out
}
