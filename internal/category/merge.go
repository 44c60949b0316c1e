// Package category cleans categorical columns: text normalization, merging of
// near-duplicate spellings, value counts and composite keys.
package category

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/KaramelBytes/dalign/internal/table"
)

var (
	// ErrInvalidColumn is returned when the target column is absent.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrInvalidThreshold is returned for a similarity threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("invalid similarity threshold")
)

// DefaultThreshold is the cosine similarity at or above which neighbours merge.
const DefaultThreshold = 0.4

// Options controls MergeSimilar.
type Options struct {
	// Threshold in [0, 1]; adjacent categories with similarity >= Threshold merge.
	Threshold float64
	// ExtraStopWords are removed in addition to the English list.
	ExtraStopWords []string
	// ResolveChains follows replacement chains (a->b, b->c) to their final
	// target when rewriting rows. Off by default: rows move exactly one hop.
	ResolveChains bool
}

// DefaultOptions returns Options using DefaultThreshold.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Result is the outcome of a merge.
type Result struct {
	// Column holds the normalized, merged values in row order.
	Column []string
	// Replacements maps a spelling to the spelling it was merged into.
	Replacements map[string]string
	// Categories are the distinct normalized values before merging, sorted.
	Categories []string
}

// MergeSimilar normalizes the named column and merges near-duplicate
// categories, writing the result back into t. The column is overwritten with
// normalized text even when nothing merges; original spellings do not survive.
// On error t is left untouched.
func MergeSimilar(t *table.Table, column string, opt Options) (*Result, error) {
	if err := validateThreshold(opt.Threshold); err != nil {
		return nil, err
	}
	vals, err := t.Column(column)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidColumn, err)
	}
	res, err := MergeValues(vals, opt)
	if err != nil {
		return nil, err
	}
	if err := t.SetColumn(column, res.Column); err != nil {
		return nil, err
	}
	return res, nil
}

// MergeValues is the copy-returning form of MergeSimilar; values is not modified.
//
// Distinct normalized values are sorted and only lexical neighbours are
// compared, in one left-to-right pass. When a pair is similar enough, the
// longer spelling (by character count) is replaced by the shorter; on a tie the
// earlier one wins. The working list is updated as the scan goes, so position
// i+1 is compared using whatever value it already merged into. Two similar
// spellings separated by an unrelated value are never compared.
func MergeValues(values []string, opt Options) (*Result, error) {
	if err := validateThreshold(opt.Threshold); err != nil {
		return nil, err
	}
	cleaner := defaultCleaner
	if len(opt.ExtraStopWords) > 0 {
		cleaner = NewCleaner(opt.ExtraStopWords)
	}

	col := make([]string, len(values))
	present := make([]bool, len(values))
	seen := map[string]struct{}{}
	var cats []string
	for i, v := range values {
		if table.IsMissing(v) {
			col[i] = v
			continue
		}
		present[i] = true
		col[i] = cleaner.Clean(v)
		if _, ok := seen[col[i]]; !ok {
			seen[col[i]] = struct{}{}
			cats = append(cats, col[i])
		}
	}
	sort.Strings(cats)

	res := &Result{Column: col, Replacements: map[string]string{}, Categories: cats}
	if len(cats) < 2 {
		return res, nil
	}

	vecs := Vectorize(cats)
	work := make([]string, len(cats))
	copy(work, cats)
	for i := 0; i < len(work)-1; i++ {
		if Cosine(vecs[i], vecs[i+1]) < opt.Threshold {
			continue
		}
		if utf8.RuneCountInString(work[i]) <= utf8.RuneCountInString(work[i+1]) {
			res.Replacements[work[i+1]] = work[i]
			work[i+1] = work[i]
		} else {
			res.Replacements[work[i]] = work[i+1]
			work[i] = work[i+1]
		}
	}

	for i, v := range col {
		if !present[i] {
			continue
		}
		if opt.ResolveChains {
			col[i] = resolve(res.Replacements, v)
		} else if to, ok := res.Replacements[v]; ok {
			col[i] = to
		}
	}
	return res, nil
}

// resolve follows replacements to their final target, stopping on a cycle.
func resolve(repl map[string]string, v string) string {
	visited := map[string]bool{v: true}
	for {
		to, ok := repl[v]
		if !ok || visited[to] {
			return v
		}
		visited[to] = true
		v = to
	}
}

func validateThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("%w: %v (must be within [0, 1])", ErrInvalidThreshold, t)
	}
	return nil
}
