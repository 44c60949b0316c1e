package table

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/dalign/internal/utils"
)

// WriteOptions tunes format-specific writing.
type WriteOptions struct {
	Delimiter   rune
	SQLiteTable string
}

// WriteFile writes the table in the format implied by the path extension.
// CSV/TSV and JSON are written atomically; SQLite replaces one table in place.
func WriteFile(path string, t *Table, opt WriteOptions) error {
	switch {
	case hasExt(path, ".csv", ".tsv"):
		b, err := encodeCSV(t, delimiterFor(path, opt.Delimiter))
		if err != nil {
			return err
		}
		return utils.SafeWriteFile(path, b)
	case hasExt(path, ".json"):
		b, err := EncodeJSON(t)
		if err != nil {
			return err
		}
		return utils.SafeWriteFile(path, b)
	case hasExt(path, ".db", ".sqlite", ".sqlite3"):
		name := opt.SQLiteTable
		if name == "" {
			name = "data"
		}
		return WriteSQLite(path, name, t)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Print writes the table as CSV to w.
func Print(w io.Writer, t *Table) error {
	return WriteCSV(w, t, ',')
}
