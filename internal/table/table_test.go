package table

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleTable() *Table {
	return FromRecords(
		[]string{"city", "pop"},
		[][]string{{"New York", "8"}, {"Boston"}, {"NA", "1"}},
	)
}

func TestFromRecordsPadsShortRows(t *testing.T) {
	tb := sampleTable()
	if tb.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tb.Len())
	}
	if got := tb.Row(1); !reflect.DeepEqual(got, []string{"Boston", ""}) {
		t.Fatalf("row 1 = %#v", got)
	}
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "  ", "NA", "n/a", "NaN", "null", "None", "NaT"} {
		if !IsMissing(s) {
			t.Errorf("IsMissing(%q) = false", s)
		}
	}
	for _, s := range []string{"0", "nano", "none of them", "-"} {
		if IsMissing(s) {
			t.Errorf("IsMissing(%q) = true", s)
		}
	}
}

func TestColumnAndSetColumn(t *testing.T) {
	tb := sampleTable()
	if _, err := tb.Column("nope"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("expected ErrColumnNotFound, got %v", err)
	}
	col, _ := tb.Column("city")
	col[0] = "changed"
	if again, _ := tb.Column("city"); again[0] != "New York" {
		t.Fatalf("Column must return a copy")
	}
	if err := tb.SetColumn("city", []string{"a"}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	if err := tb.SetColumn("key", []string{"x", "y", "z"}); err != nil {
		t.Fatalf("append column: %v", err)
	}
	if cols := tb.Columns(); !reflect.DeepEqual(cols, []string{"city", "pop", "key"}) {
		t.Fatalf("columns = %#v", cols)
	}
}

func TestSetColumnOnEmptyTable(t *testing.T) {
	tb := New(nil)
	if err := tb.SetColumn("a", []string{"1", "2"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tb.Len() != 2 {
		t.Fatalf("rows = %d, want 2", tb.Len())
	}
}

func TestUniqueSortsAndSkipsMissing(t *testing.T) {
	tb := FromRecords([]string{"c"}, [][]string{{"b"}, {"a"}, {""}, {"b"}, {"NaN"}})
	got, err := tb.Unique("c")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unique = %#v", got)
	}
}

func TestFilterAndClone(t *testing.T) {
	tb := sampleTable()
	cp := tb.Clone()
	_ = cp.SetColumn("city", []string{"x", "y", "z"})
	if c, _ := tb.Column("city"); c[0] != "New York" {
		t.Fatalf("clone shares storage")
	}
	kept := tb.Filter(func(r []string) bool { return !IsMissing(r[1]) })
	if kept.Len() != 2 {
		t.Fatalf("filtered rows = %d, want 2", kept.Len())
	}
}

func TestReadCSVAndTSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "a.csv")
	tsvPath := filepath.Join(dir, "a.tsv")
	if err := os.WriteFile(csvPath, []byte("name,kind\nApple, fruit\n\"Banana, ripe\",fruit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tsvPath, []byte("name\tkind\nApple\tfruit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tb, err := ReadFile(csvPath, ReadOptions{})
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if tb.Name != "a.csv" || tb.Len() != 2 {
		t.Fatalf("name=%q rows=%d", tb.Name, tb.Len())
	}
	if got := tb.Row(1); !reflect.DeepEqual(got, []string{"Banana, ripe", "fruit"}) {
		t.Fatalf("row 1 = %#v", got)
	}
	if got := tb.Row(0); got[1] != "fruit" {
		t.Fatalf("leading space not trimmed: %#v", got)
	}
	tt, err := ReadFile(tsvPath, ReadOptions{})
	if err != nil {
		t.Fatalf("read tsv: %v", err)
	}
	if got := tt.Row(0); !reflect.DeepEqual(got, []string{"Apple", "fruit"}) {
		t.Fatalf("tsv row = %#v", got)
	}
}

func TestReadCSVDuplicateAndBlankHeaders(t *testing.T) {
	tb, err := ReadCSV(strings.NewReader("id,name,name,city,,\n1,a,b,paris,x,y\n"), ',')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []string{"id", "name", "name.1", "city", "Unnamed: 4", "Unnamed: 5"}
	if got := tb.Columns(); !reflect.DeepEqual(got, want) {
		t.Fatalf("columns = %#v, want %#v", got, want)
	}
	for col, v := range map[string]string{"name": "a", "name.1": "b", "city": "paris", "Unnamed: 5": "y"} {
		got, err := tb.Column(col)
		if err != nil || !reflect.DeepEqual(got, []string{v}) {
			t.Fatalf("column %q = %v (%v), want [%s]", col, got, err, v)
		}
	}

	// a suffixed name that collides with a real column keeps counting
	tb = New([]string{"a", "a.1", "a"})
	if got := tb.Columns(); !reflect.DeepEqual(got, []string{"a", "a.1", "a.2"}) {
		t.Fatalf("columns = %#v", got)
	}
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "data.parquet"), ReadOptions{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseJSONOrients(t *testing.T) {
	want := [][]string{{"apple", "3"}, {"pear", ""}}
	cases := map[string]string{
		"records": `[{"name":"apple","n":3},{"name":"pear","n":null}]`,
		"columns": `{"name":{"0":"apple","1":"pear"},"n":{"0":3,"1":null}}`,
		"index":   `{"0":{"name":"apple","n":3},"1":{"name":"pear","n":null}}`,
		"split":   `{"columns":["name","n"],"index":[0,1],"data":[["apple",3],["pear",null]]}`,
	}
	for orient, body := range cases {
		tb, err := ParseJSON([]byte(body), orient)
		if err != nil {
			t.Fatalf("%s: %v", orient, err)
		}
		if cols := tb.Columns(); !reflect.DeepEqual(cols, []string{"name", "n"}) {
			t.Fatalf("%s: columns = %#v", orient, cols)
		}
		if got := tb.Records(); !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: records = %#v", orient, got)
		}
	}
	tb, err := ParseJSON([]byte(`[["a",true],["b",false]]`), "values")
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if cols := tb.Columns(); !reflect.DeepEqual(cols, []string{"0", "1"}) {
		t.Fatalf("values columns = %#v", cols)
	}
	if got := tb.Row(0); !reflect.DeepEqual(got, []string{"a", "true"}) {
		t.Fatalf("values row = %#v", got)
	}
	if _, err := ParseJSON([]byte(`[]`), "table"); err == nil {
		t.Fatalf("expected unsupported orient error")
	}
}

func TestEncodeJSONRecords(t *testing.T) {
	b, err := EncodeJSON(sampleTable())
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	if !strings.Contains(s, `{"city": "New York", "pop": "8"}`) {
		t.Fatalf("missing first record: %s", s)
	}
	if !strings.Contains(s, `{"city": null, "pop": "1"}`) {
		t.Fatalf("missing cell should be null: %s", s)
	}
	back, err := ParseJSON(b, "records")
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.Len() != 3 {
		t.Fatalf("rows = %d", back.Len())
	}
}

func TestWriteFileCSVAndSQLite(t *testing.T) {
	dir := t.TempDir()
	tb := sampleTable()

	out := filepath.Join(dir, "out", "clean.csv")
	if err := WriteFile(out, tb, WriteOptions{}); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	b, _ := os.ReadFile(out)
	if !strings.HasPrefix(string(b), "city,pop\nNew York,8\n") {
		t.Fatalf("csv output = %q", b)
	}

	db := filepath.Join(dir, "clean.db")
	if err := WriteFile(db, tb, WriteOptions{SQLiteTable: "cities"}); err != nil {
		t.Fatalf("write sqlite: %v", err)
	}
	back, err := ReadFile(db, ReadOptions{})
	if err != nil {
		t.Fatalf("read sqlite: %v", err)
	}
	if back.Name != "clean.db:cities" {
		t.Fatalf("name = %q", back.Name)
	}
	if got := back.Records(); !reflect.DeepEqual(got, [][]string{{"New York", "8"}, {"Boston", ""}, {"", "1"}}) {
		t.Fatalf("sqlite records = %#v", got)
	}
	if err := WriteFile(filepath.Join(dir, "x.parquet"), tb, WriteOptions{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
