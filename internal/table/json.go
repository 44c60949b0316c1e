package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type jsonFormat struct{}

func (jsonFormat) CanRead(path string) bool { return hasExt(path, ".json") }

func (jsonFormat) Read(path string, opt ReadOptions) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	return ParseJSON(b, opt.Orient)
}

// ParseJSON decodes a table laid out in one of the orients:
//
//	records : [{column -> value}, ...]
//	columns : {column -> {index -> value}}
//	index   : {index -> {column -> value}}
//	split   : {"columns": [...], "index": [...], "data": [[...], ...]}
//	values  : [[...], ...]
func ParseJSON(data []byte, orient string) (*Table, error) {
	switch strings.ToLower(strings.TrimSpace(orient)) {
	case "", "records":
		return parseRecords(data)
	case "columns":
		return parseColumns(data)
	case "index":
		return parseIndex(data)
	case "split":
		return parseSplit(data)
	case "values":
		return parseValues(data)
	default:
		return nil, fmt.Errorf("unsupported json orient: %s", orient)
	}
}

// ValidOrient reports whether ParseJSON understands orient.
func ValidOrient(orient string) bool {
	switch strings.ToLower(strings.TrimSpace(orient)) {
	case "", "records", "columns", "index", "split", "values":
		return true
	}
	return false
}

func parseRecords(data []byte) (*Table, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	var header []string
	seen := map[string]bool{}
	objs := make([]map[string]json.RawMessage, 0, len(rows))
	for i, raw := range rows {
		keys, m, err := orderedObject(raw)
		if err != nil {
			return nil, fmt.Errorf("parse record %d: %w", i+1, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				header = append(header, k)
			}
		}
		objs = append(objs, m)
	}
	t := New(header)
	for _, m := range objs {
		rec := make([]string, len(header))
		for j, h := range header {
			rec[j] = cellText(m[h])
		}
		t.AppendRow(rec)
	}
	return t, nil
}

func parseColumns(data []byte) (*Table, error) {
	header, cols, err := orderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("parse columns: %w", err)
	}
	var index []string
	seen := map[string]bool{}
	byCol := make(map[string]map[string]json.RawMessage, len(header))
	for _, h := range header {
		keys, m, err := orderedObject(cols[h])
		if err != nil {
			return nil, fmt.Errorf("parse column %q: %w", h, err)
		}
		for _, k := range keys {
			if !seen[k] {
				seen[k] = true
				index = append(index, k)
			}
		}
		byCol[h] = m
	}
	t := New(header)
	for _, idx := range index {
		rec := make([]string, len(header))
		for j, h := range header {
			rec[j] = cellText(byCol[h][idx])
		}
		t.AppendRow(rec)
	}
	return t, nil
}

func parseIndex(data []byte) (*Table, error) {
	index, rows, err := orderedObject(data)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	list := make([]json.RawMessage, 0, len(index))
	for _, k := range index {
		list = append(list, rows[k])
	}
	b, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return parseRecords(b)
}

func parseSplit(data []byte) (*Table, error) {
	var s struct {
		Columns []string            `json:"columns"`
		Data    [][]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse split: %w", err)
	}
	t := New(s.Columns)
	for _, row := range s.Data {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = cellText(c)
		}
		t.AppendRow(rec)
	}
	return t, nil
}

func parseValues(data []byte) (*Table, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	header := make([]string, width)
	for j := range header {
		header[j] = strconv.Itoa(j)
	}
	t := New(header)
	for _, row := range rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = cellText(c)
		}
		t.AppendRow(rec)
	}
	return t, nil
}

// orderedObject decodes a JSON object and keeps its key order.
func orderedObject(raw json.RawMessage) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	m := map[string]json.RawMessage{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key %v", kt)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, err
		}
		if _, dup := m[key]; !dup {
			keys = append(keys, key)
		}
		m[key] = v
	}
	return keys, m, nil
}

func cellText(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if s[0] == '"' {
		var out string
		if err := json.Unmarshal(raw, &out); err == nil {
			return out
		}
	}
	return s
}

// EncodeJSON renders the table in records orient; missing cells become null.
func EncodeJSON(t *Table) ([]byte, error) {
	cols := t.Columns()
	var buf bytes.Buffer
	buf.WriteString("[")
	for i := 0; i < t.Len(); i++ {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  {")
		row := t.Row(i)
		for j, c := range cols {
			if j > 0 {
				buf.WriteString(", ")
			}
			k, err := json.Marshal(c)
			if err != nil {
				return nil, err
			}
			buf.Write(k)
			buf.WriteString(": ")
			if IsMissing(row[j]) {
				buf.WriteString("null")
				continue
			}
			v, err := json.Marshal(row[j])
			if err != nil {
				return nil, err
			}
			buf.Write(v)
		}
		buf.WriteString("}")
	}
	if t.Len() > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")
	return buf.Bytes(), nil
}
