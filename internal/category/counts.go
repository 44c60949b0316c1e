package category

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/dalign/internal/table"
)

// Order selects how value counts are sorted.
type Order int

const (
	ByFrequency Order = iota
	ByAlphabet
)

func (o Order) String() string {
	if o == ByAlphabet {
		return "alphabetic"
	}
	return "frequency"
}

// ParseOrder maps "frequency" or "alphabetic" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "frequency", "freq":
		return ByFrequency, nil
	case "alphabetic", "alpha", "alphabetical":
		return ByAlphabet, nil
	default:
		return 0, fmt.Errorf("unknown order: %s (use frequency|alphabetic)", s)
	}
}

// Count is one category and the number of rows holding it.
type Count struct {
	Value string
	Count int
}

// ValueCounts counts the non-missing values of a column, sorts them and returns
// the [start, end) window of the sorted list, clamped to its bounds.
// Frequency ties are broken alphabetically so output is deterministic.
func ValueCounts(t *table.Table, column string, order Order, ascending bool, start, end int) ([]Count, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidColumn, err)
	}
	m := map[string]int{}
	for _, v := range vals {
		if table.IsMissing(v) {
			continue
		}
		m[v]++
	}
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Value: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == ByFrequency && a.Count != b.Count {
			if ascending {
				return a.Count < b.Count
			}
			return a.Count > b.Count
		}
		if order == ByAlphabet && !ascending {
			return a.Value > b.Value
		}
		return a.Value < b.Value
	})
	if start < 0 {
		start = 0
	}
	if end <= 0 || end > len(out) {
		end = len(out)
	}
	if start >= end {
		return nil, nil
	}
	return out[start:end], nil
}

// TypeCount is the number of distinct categories in a non-numeric column.
type TypeCount struct {
	Column string
	Types  int
}

// TypeCounts reports, for every non-numeric column, how many distinct values it
// holds. Missing cells count as one distinct value.
func TypeCounts(t *table.Table) []TypeCount {
	var out []TypeCount
	for _, name := range t.Columns() {
		vals, _ := t.Column(name)
		if table.IsNumeric(vals) {
			continue
		}
		uniq, _ := t.Unique(name)
		n := len(uniq)
		for _, v := range vals {
			if table.IsMissing(v) {
				n++
				break
			}
		}
		out = append(out, TypeCount{Column: name, Types: n})
	}
	return out
}
