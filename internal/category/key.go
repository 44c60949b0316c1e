package category

import (
	"fmt"

	"github.com/KaramelBytes/dalign/internal/table"
)

// DefaultKeySeparator joins the two halves of a composite key.
const DefaultKeySeparator = ":"

// CompositeKey writes keyName = col1 + sep + col2 into t and returns the new
// column. A row missing either part gets an empty key cell.
func CompositeKey(t *table.Table, col1, col2, keyName, sep string) ([]string, error) {
	if keyName == "" {
		return nil, fmt.Errorf("composite key name is required")
	}
	a, err := t.Column(col1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidColumn, err)
	}
	b, err := t.Column(col2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidColumn, err)
	}
	keys := make([]string, len(a))
	for i := range a {
		if table.IsMissing(a[i]) || table.IsMissing(b[i]) {
			continue
		}
		keys[i] = a[i] + sep + b[i]
	}
	if err := t.SetColumn(keyName, keys); err != nil {
		return nil, err
	}
	return keys, nil
}
