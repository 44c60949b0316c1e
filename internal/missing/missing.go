// Package missing reports and repairs missing cells in a table.
package missing

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/dalign/internal/table"
)

var (
	// ErrUnknownMethod is returned for an unrecognized fill or impute method name.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrNoData is returned when a column has no values to derive a statistic from.
	ErrNoData = errors.New("no values to impute from")
)

// ColumnMissing is the missing-cell count of one column.
type ColumnMissing struct {
	Column string
	Count  int
	// Ratio is Count divided by the number of rows.
	Ratio float64
}

// Report lists the columns that have at least one missing cell, in table order.
func Report(t *table.Table) []ColumnMissing {
	var out []ColumnMissing
	rows := t.Len()
	for _, name := range t.Columns() {
		vals, _ := t.Column(name)
		n := 0
		for _, v := range vals {
			if table.IsMissing(v) {
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, ColumnMissing{Column: name, Count: n, Ratio: float64(n) / float64(rows)})
	}
	return out
}

// FillMethod selects how Handle treats missing cells.
type FillMethod int

const (
	// Drop removes every row holding a missing cell.
	Drop FillMethod = iota
	// Forward replaces a missing cell with the last value above it.
	Forward
	// Backward replaces a missing cell with the next value below it.
	Backward
)

func (m FillMethod) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "drop"
	}
}

// ParseFillMethod maps drop|forward|backward (and ffill/bfill) to a FillMethod.
func ParseFillMethod(s string) (FillMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "drop":
		return Drop, nil
	case "forward", "ffill":
		return Forward, nil
	case "backward", "bfill":
		return Backward, nil
	default:
		return 0, fmt.Errorf("%w: %s (use drop|forward|backward)", ErrUnknownMethod, s)
	}
}

// Handle returns a new table with missing cells handled by method. Rows are
// assumed to be in a meaningful order for Forward and Backward; leading (or
// trailing) gaps with nothing to copy from stay missing.
func Handle(t *table.Table, method FillMethod) (*table.Table, error) {
	switch method {
	case Drop:
		return t.Filter(func(row []string) bool {
			for _, v := range row {
				if table.IsMissing(v) {
					return false
				}
			}
			return true
		}), nil
	case Forward, Backward:
		out := t.Clone()
		for _, name := range out.Columns() {
			vals, _ := out.Column(name)
			if method == Forward {
				fillForward(vals)
			} else {
				fillBackward(vals)
			}
			if err := out.SetColumn(name, vals); err != nil {
				return nil, err
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, method)
	}
}

func fillForward(vals []string) {
	last, ok := "", false
	for i, v := range vals {
		if !table.IsMissing(v) {
			last, ok = v, true
			continue
		}
		if ok {
			vals[i] = last
		}
	}
}

func fillBackward(vals []string) {
	next, ok := "", false
	for i := len(vals) - 1; i >= 0; i-- {
		if !table.IsMissing(vals[i]) {
			next, ok = vals[i], true
			continue
		}
		if ok {
			vals[i] = next
		}
	}
}

// ImputeMethod selects the statistic used to fill a column.
type ImputeMethod int

const (
	Mean ImputeMethod = iota
	Median
	Mode
)

func (m ImputeMethod) String() string {
	switch m {
	case Median:
		return "median"
	case Mode:
		return "mode"
	default:
		return "mean"
	}
}

// ParseImputeMethod maps mean|median|mode to an ImputeMethod; "mood" is
// accepted as a spelling of mode.
func ParseImputeMethod(s string) (ImputeMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean":
		return Mean, nil
	case "median":
		return Median, nil
	case "mode", "mood":
		return Mode, nil
	default:
		return 0, fmt.Errorf("%w: %s (use mean|median|mode)", ErrUnknownMethod, s)
	}
}

// Impute returns the column with every missing cell replaced by the column's
// mean, median or mode. Mean and median use the cells that parse as numbers.
func Impute(t *table.Table, column string, method ImputeMethod) ([]string, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	fill, ok := statistic(vals, method)
	if !ok {
		return nil, fmt.Errorf("%w: column %q (%s)", ErrNoData, column, method)
	}
	for i, v := range vals {
		if table.IsMissing(v) {
			vals[i] = fill
		}
	}
	return vals, nil
}

// RollingImpute fills each missing cell with the statistic of the non-missing
// cells above it. A missing cell with nothing above it stays missing.
func RollingImpute(t *table.Table, column string, method ImputeMethod) ([]string, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vals))
	copy(out, vals)
	for i, v := range vals {
		if !table.IsMissing(v) {
			continue
		}
		if fill, ok := statistic(vals[:i], method); ok {
			out[i] = fill
		}
	}
	return out, nil
}

func statistic(vals []string, method ImputeMethod) (string, bool) {
	if method == Mode {
		return mode(vals)
	}
	var nums []float64
	for _, v := range vals {
		if f, ok := table.ParseFloat(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return "", false
	}
	if method == Median {
		sort.Float64s(nums)
		mid := len(nums) / 2
		if len(nums)%2 == 1 {
			return table.FormatFloat(nums[mid]), true
		}
		return table.FormatFloat((nums[mid-1] + nums[mid]) / 2), true
	}
	var sum float64
	for _, x := range nums {
		sum += x
	}
	return table.FormatFloat(sum / float64(len(nums))), true
}

// mode returns the most frequent non-missing value; ties go to the lexically smallest.
func mode(vals []string) (string, bool) {
	counts := map[string]int{}
	for _, v := range vals {
		if !table.IsMissing(v) {
			counts[v]++
		}
	}
	best, n := "", 0
	for v, c := range counts {
		if c > n || (c == n && v < best) {
			best, n = v, c
		}
	}
	return best, n > 0
}
