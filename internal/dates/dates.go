// Package dates parses date columns and buckets them by calendar unit.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/dalign/internal/table"
)

// DateLayout is the layout Normalize writes.
const DateLayout = "2006-01-02"

var (
	// ErrUnknownUnit is returned by ParseUnit for an unrecognized unit name.
	ErrUnknownUnit = errors.New("unknown time unit")
	// ErrInvalidDate is returned when a range bound cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

var dateRe = regexp.MustCompile(`\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])`)

var layouts = []string{
	time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04",
	DateLayout, "2006/01/02", "02/01/2006", "01/02/2006", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// TrimDate returns the first yyyy-mm-dd substring of s.
func TrimDate(s string) (string, bool) {
	m := dateRe.FindString(s)
	return m, m != ""
}

// Parse reads s with the common date and timestamp layouts, falling back to
// the first yyyy-mm-dd found inside s. Times without a zone are UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	if d, ok := TrimDate(s); ok {
		if t, err := time.Parse(DateLayout, d); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseColumn parses every cell of column. ok[i] is false for missing or
// unparseable cells.
func ParseColumn(t *table.Table, column string) ([]time.Time, []bool, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, nil, err
	}
	times := make([]time.Time, len(vals))
	ok := make([]bool, len(vals))
	for i, v := range vals {
		if table.IsMissing(v) {
			continue
		}
		times[i], ok[i] = Parse(v)
	}
	return times, ok, nil
}

// Normalize rewrites column as yyyy-mm-dd dates and returns how many
// non-missing cells could not be parsed; those cells become empty.
func Normalize(t *table.Table, column string) (int, error) {
	vals, err := t.Column(column)
	if err != nil {
		return 0, err
	}
	bad := 0
	for i, v := range vals {
		if table.IsMissing(v) {
			vals[i] = ""
			continue
		}
		if d, ok := TrimDate(v); ok {
			if _, err := time.Parse(DateLayout, d); err == nil {
				vals[i] = d
				continue
			}
		}
		if tm, ok := Parse(v); ok {
			vals[i] = tm.Format(DateLayout)
			continue
		}
		vals[i] = ""
		bad++
	}
	return bad, t.SetColumn(column, vals)
}

// Unit is a calendar field a timestamp can be bucketed by.
type Unit int

const (
	Year Unit = iota
	Month
	Day
	Hour
	Minute
	// DayOfWeek counts from Monday = 0.
	DayOfWeek
	// DayOfYear counts from January 1 = 1.
	DayOfYear
)

var unitNames = []string{"year", "month", "day", "hour", "minute", "day_of_week", "day_of_year"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("unit(%d)", int(u))
	}
	return unitNames[u]
}

// ParseUnit accepts the unit names with '_' or '-' separators.
func ParseUnit(s string) (Unit, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for i, n := range unitNames {
		if key == n {
			return Unit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q (use %s)", ErrUnknownUnit, s, strings.Join(unitNames, "|"))
}

// Of extracts the unit value of tm.
func (u Unit) Of(tm time.Time) int {
	switch u {
	case Year:
		return tm.Year()
	case Month:
		return int(tm.Month())
	case Hour:
		return tm.Hour()
	case Minute:
		return tm.Minute()
	case DayOfWeek:
		return (int(tm.Weekday()) + 6) % 7
	case DayOfYear:
		return tm.YearDay()
	default:
		return tm.Day()
	}
}

// Bucket is one unit value with its row count and, for AggregateAlong, the
// mean of the aggregated column.
type Bucket struct {
	Key   int
	Count int
	Mean  float64
}

// Distribution counts the parsed cells of column per unit value, ordered by key.
func Distribution(t *table.Table, column string, unit Unit) ([]Bucket, error) {
	times, ok, err := ParseColumn(t, column)
	if err != nil {
		return nil, err
	}
	counts := map[int]int{}
	for i, tm := range times {
		if ok[i] {
			counts[unit.Of(tm)]++
		}
	}
	out := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, Bucket{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// AggregateAlong groups the rows whose timeCol lies within [start, end] by
// unit and averages the numeric valueCol per group. Rows with an unparseable
// time or a non-numeric value are skipped.
func AggregateAlong(t *table.Table, valueCol, timeCol, start, end string, unit Unit) ([]Bucket, error) {
	from, ok := Parse(start)
	if !ok {
		return nil, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
	}
	to, ok := Parse(end)
	if !ok {
		return nil, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDate, end, start)
	}
	vals, err := t.Column(valueCol)
	if err != nil {
		return nil, err
	}
	times, parsed, err := ParseColumn(t, timeCol)
	if err != nil {
		return nil, err
	}
	type acc struct {
		n   int
		sum float64
	}
	groups := map[int]*acc{}
	for i, tm := range times {
		if !parsed[i] || tm.Before(from) || tm.After(to) {
			continue
		}
		x, ok := table.ParseFloat(vals[i])
		if !ok {
			continue
		}
		k := unit.Of(tm)
		a := groups[k]
		if a == nil {
			a = &acc{}
			groups[k] = a
		}
		a.n++
		a.sum += x
	}
	out := make([]Bucket, 0, len(groups))
	for k, a := range groups {
		out = append(out, Bucket{Key: k, Count: a.n, Mean: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
