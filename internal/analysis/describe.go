package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/dalign/internal/table"
	"github.com/go-gota/gota/series"
)

// DefaultDeviation is the number of standard deviations beyond which
// Outliers reports a value.
const DefaultDeviation = 2.0

var (
	// ErrNotNumeric is returned when a numeric column holds non-numeric cells.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrNoValues is returned when a numeric column has no values at all.
	ErrNoValues = errors.New("column has no values")
)

// NumericSummary holds the describe() statistics of one numeric column.
// Std is the sample standard deviation and is NaN for fewer than two values.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
	Range  float64
}

// Describe summarizes every column whose non-missing cells are all numbers.
// Columns without any value are skipped.
func Describe(t *table.Table) []NumericSummary {
	var out []NumericSummary
	for _, name := range t.Columns() {
		vals, _ := t.Column(name)
		if !table.IsNumeric(vals) {
			continue
		}
		nums := floats(vals)
		if len(nums) == 0 {
			continue
		}
		sort.Float64s(nums)
		ser := series.New(nums, series.Float, name)
		s := NumericSummary{
			Column: name,
			Count:  ser.Len(),
			Mean:   ser.Mean(),
			Std:    math.NaN(),
			Min:    ser.Min(),
			Q25:    quantile(nums, 0.25),
			Median: quantile(nums, 0.5),
			Q75:    quantile(nums, 0.75),
			Max:    ser.Max(),
		}
		s.Range = s.Max - s.Min
		if s.Count > 1 {
			s.Std = ser.StdDev()
		}
		out = append(out, s)
	}
	return out
}

// OutlierRow is one row flagged by Outliers.
type OutlierRow struct {
	Index int
	Value float64
}

// OutlierReport describes a numeric column and its rows lying more than
// Deviation population standard deviations from the mean.
type OutlierReport struct {
	Column    string
	Deviation float64
	Max       float64
	Min       float64
	Range     float64
	Mean      float64
	Std       float64
	Rows      []OutlierRow
}

// Outliers flags the rows of column where |x - mean| > deviation·σ. A
// deviation <= 0 uses DefaultDeviation.
func Outliers(t *table.Table, column string, deviation float64) (*OutlierReport, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if !table.IsNumeric(vals) {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, column)
	}
	nums := floats(vals)
	if len(nums) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoValues, column)
	}
	if deviation <= 0 {
		deviation = DefaultDeviation
	}
	ser := series.New(nums, series.Float, column)
	rep := &OutlierReport{Column: column, Deviation: deviation, Min: ser.Min(), Max: ser.Max(), Mean: ser.Mean()}
	rep.Range = rep.Max - rep.Min
	// population deviation; series.StdDev is the sample one
	rep.Std = math.Sqrt(sumSquares(nums, rep.Mean) / float64(len(nums)))
	limit := deviation * rep.Std
	for i, v := range vals {
		x, ok := table.ParseFloat(v)
		if ok && math.Abs(x-rep.Mean) > limit {
			rep.Rows = append(rep.Rows, OutlierRow{Index: i, Value: x})
		}
	}
	return rep, nil
}

func floats(vals []string) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if x, ok := table.ParseFloat(v); ok {
			out = append(out, x)
		}
	}
	return out
}

func sumSquares(nums []float64, mean float64) float64 {
	var ss float64
	for _, x := range nums {
		d := x - mean
		ss += d * d
	}
	return ss
}
