package table

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ReadOptions tunes format-specific reading.
type ReadOptions struct {
	// Delimiter for CSV. If 0, '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// Orient selects the JSON layout: records (default), columns, index, split, values.
	Orient string
	// SheetName selects an XLSX sheet by name; SheetIndex is 1-based and used when SheetName is empty.
	SheetName  string
	SheetIndex int
	// SQLiteTable names the table to load; empty picks the first user table.
	SQLiteTable string
}

// Reader loads a table from a file of a particular format.
type Reader interface {
	CanRead(path string) bool
	Read(path string, opt ReadOptions) (*Table, error)
}

var readers []Reader

// RegisterReader adds a reader implementation to the registry.
func RegisterReader(r Reader) {
	readers = append(readers, r)
}

// ReadFile selects a reader by file extension and loads the table.
func ReadFile(path string, opt ReadOptions) (*Table, error) {
	for _, r := range readers {
		if r.CanRead(path) {
			t, err := r.Read(path, opt)
			if err != nil {
				return nil, err
			}
			if t.Name == "" {
				t.Name = filepath.Base(path)
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
}

func hasExt(path string, exts ...string) bool {
	name := strings.ToLower(path)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

func init() {
	RegisterReader(csvFormat{})
	RegisterReader(jsonFormat{})
	RegisterReader(xlsxFormat{})
	RegisterReader(sqliteFormat{})
}
