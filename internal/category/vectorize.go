package category

import (
	"math"
	"regexp"
	"sort"
)

// tokenRe matches words of two or more letters, digits or underscores.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokens splits a phrase into vocabulary tokens.
func Tokens(phrase string) []string {
	return tokenRe.FindAllString(phrase, -1)
}

// Vectorize builds one vocabulary over all phrases and returns a bag-of-words
// count vector per phrase, aligned with the input. The vocabulary is sorted, so
// columns are stable across calls. An empty vocabulary yields zero-length vectors.
func Vectorize(phrases []string) [][]int {
	vocab := map[string]int{}
	toks := make([][]string, len(phrases))
	for i, p := range phrases {
		toks[i] = Tokens(p)
		for _, tk := range toks[i] {
			vocab[tk] = 0
		}
	}
	words := make([]string, 0, len(vocab))
	for w := range vocab {
		words = append(words, w)
	}
	sort.Strings(words)
	for i, w := range words {
		vocab[w] = i
	}
	out := make([][]int, len(phrases))
	for i := range phrases {
		v := make([]int, len(words))
		for _, tk := range toks[i] {
			v[vocab[tk]]++
		}
		out[i] = v
	}
	return out
}

// Cosine returns the cosine similarity of two count vectors, or 0 when either
// vector is all zeros.
func Cosine(a, b []int) float64 {
	var dot, na, nb int
	for i := range a {
		if i >= len(b) {
			break
		}
		dot += a[i] * b[i]
	}
	for _, x := range a {
		na += x * x
	}
	for _, x := range b {
		nb += x * x
	}
	if na == 0 || nb == 0 {
		return 0
	}
	// sqrt of the integer product stays exact for perfect squares.
	return float64(dot) / math.Sqrt(float64(na)*float64(nb))
}
