package category

import (
	"math"
	"reflect"
	"testing"

	"github.com/KaramelBytes/dalign/internal/table"
)

func TestCleanString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello, World!", "hello world"},
		{"The Big Apple", "big apple"},
		{"  New   York\tCity ", "new york city"},
		{"Don't stop", "dont stop"},
		{"ÜBER café", "über café"},
		{"the of and", ""},
		{"U.S.A.", "usa"},
		{"", ""},
	}
	for _, c := range cases {
		if got := CleanString(c.in); got != c.want {
			t.Errorf("CleanString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStopWordsList(t *testing.T) {
	if len(englishStopWords) != 179 {
		t.Fatalf("stop words = %d, want 179", len(englishStopWords))
	}
	c := NewCleaner([]string{" Inc "})
	if got := c.Clean("Acme Inc."); got != "acme" {
		t.Fatalf("extra stop word not applied: %q", got)
	}
	if got := CleanString("Acme Inc."); got != "acme inc" {
		t.Fatalf("extra stop words leaked into the default cleaner: %q", got)
	}
}

func TestVectorizeBagOfWords(t *testing.T) {
	vecs := Vectorize([]string{"york new", "new york", "a b", "new new"})
	if !reflect.DeepEqual(vecs[0], vecs[1]) {
		t.Fatalf("token order changed the vector: %v vs %v", vecs[0], vecs[1])
	}
	// single-character tokens are not part of the vocabulary
	for _, x := range vecs[2] {
		if x != 0 {
			t.Fatalf("expected zero vector for single-letter tokens, got %v", vecs[2])
		}
	}
	// vocabulary is sorted: [new york]
	if !reflect.DeepEqual(vecs[3], []int{2, 0}) {
		t.Fatalf("counts = %v, want [2 0]", vecs[3])
	}
}

func TestCombiningMarks(t *testing.T) {
	if got := CleanString("Cafe\u0301 Noir"); got != "caf\u00e9 noir" {
		t.Fatalf("decomposed input = %q, want composed", got)
	}
	// marks are not word characters for the vectorizer
	if got := Tokens("ab\u0301cd"); !reflect.DeepEqual(got, []string{"ab", "cd"}) {
		t.Fatalf("tokens = %#v", got)
	}
}

func TestVectorizeEmptyVocabulary(t *testing.T) {
	vecs := Vectorize([]string{"a", "b"})
	if len(vecs) != 2 || len(vecs[0]) != 0 {
		t.Fatalf("vecs = %v", vecs)
	}
	if s := Cosine(vecs[0], vecs[1]); s != 0 {
		t.Fatalf("cosine of empty vectors = %v", s)
	}
}

func TestCosine(t *testing.T) {
	if s := Cosine([]int{1, 2, 0}, []int{1, 2, 0}); math.Abs(s-1) > 1e-12 {
		t.Fatalf("identical = %v", s)
	}
	if s := Cosine([]int{1, 0}, []int{0, 1}); s != 0 {
		t.Fatalf("orthogonal = %v", s)
	}
	if s := Cosine([]int{0, 0}, []int{3, 1}); s != 0 {
		t.Fatalf("zero vector = %v", s)
	}
	if s := Cosine([]int{1, 0, 1}, []int{0, 1, 1}); s != 0.5 {
		t.Fatalf("half = %v, want exactly 0.5", s)
	}
}

func TestValueCounts(t *testing.T) {
	tb := table.FromRecords([]string{"fruit"}, [][]string{
		{"pear"}, {"apple"}, {"pear"}, {""}, {"fig"}, {"apple"}, {"pear"},
	})
	got, err := ValueCounts(tb, "fruit", ByFrequency, false, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []Count{{"pear", 3}, {"apple", 2}, {"fig", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("desc frequency = %#v", got)
	}
	got, _ = ValueCounts(tb, "fruit", ByFrequency, true, 0, 2)
	if want := []Count{{"fig", 1}, {"apple", 2}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("asc frequency window = %#v", got)
	}
	got, _ = ValueCounts(tb, "fruit", ByAlphabet, true, 1, 0)
	if want := []Count{{"fig", 1}, {"pear", 3}}; !reflect.DeepEqual(got, want) {
		t.Fatalf("alphabetic from 1 = %#v", got)
	}
	got, _ = ValueCounts(tb, "fruit", ByAlphabet, false, 5, 10)
	if len(got) != 0 {
		t.Fatalf("window past end = %#v", got)
	}
	if _, err := ValueCounts(tb, "nope", ByFrequency, true, 0, 10); err == nil {
		t.Fatalf("expected error for missing column")
	}
}

func TestParseOrder(t *testing.T) {
	if o, err := ParseOrder("alphabetic"); err != nil || o != ByAlphabet {
		t.Fatalf("alphabetic = %v, %v", o, err)
	}
	if o, err := ParseOrder(""); err != nil || o != ByFrequency {
		t.Fatalf("default = %v, %v", o, err)
	}
	if _, err := ParseOrder("random"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTypeCounts(t *testing.T) {
	tb := table.FromRecords([]string{"name", "age", "city"}, [][]string{
		{"a", "1", "x"}, {"b", "2", ""}, {"a", "NA", "y"},
	})
	got := TypeCounts(tb)
	want := []TypeCount{{"name", 2}, {"city", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("type counts = %#v, want %#v", got, want)
	}
}

func TestCompositeKey(t *testing.T) {
	tb := table.FromRecords([]string{"state", "city"}, [][]string{
		{"NY", "Albany"}, {"CA", ""}, {"TX", "Austin"},
	})
	keys, err := CompositeKey(tb, "state", "city", "key", DefaultKeySeparator)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"NY:Albany", "", "TX:Austin"}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("keys = %#v", keys)
	}
	if got, _ := tb.Column("key"); !reflect.DeepEqual(got, keys) {
		t.Fatalf("key column not stored: %#v", got)
	}
	if _, err := CompositeKey(tb, "state", "zip", "k2", "-"); err == nil {
		t.Fatalf("expected error for missing column")
	}
}
