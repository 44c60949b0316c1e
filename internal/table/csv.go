package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

type csvFormat struct{}

func (csvFormat) CanRead(path string) bool { return hasExt(path, ".csv", ".tsv") }

func (csvFormat) Read(path string, opt ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, delimiterFor(path, opt.Delimiter))
}

func delimiterFor(path string, d rune) rune {
	if d != 0 {
		return d
	}
	if hasExt(path, ".tsv") {
		return '\t'
	}
	return ','
}

// ReadCSV reads a header row followed by data rows.
func ReadCSV(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New(nil), nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	t := New(header)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", t.Len()+1, err)
		}
		t.AppendRow(rec)
	}
	return t, nil
}

// WriteCSV serializes the table with a header row.
func WriteCSV(w io.Writer, t *Table, delim rune) error {
	cw := csv.NewWriter(w)
	if delim != 0 {
		cw.Comma = delim
	}
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range t.Records() {
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeCSV(t *Table, delim rune) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t, delim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
