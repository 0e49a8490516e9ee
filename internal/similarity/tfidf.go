package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"MovieMatch/internal/catalog"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases text and returns its vocabulary tokens, stop words
// excluded, in order of appearance.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if catalog.IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// term is one non-zero component of a sparse vector.
type term struct {
	index  int
	weight float64
}

// vector is an L2-normalized sparse vector sorted by term index.
type vector []term

// vectorize computes smoothed TF-IDF vectors over the vocabulary of all
// documents. The vocabulary is sorted so term indices are deterministic.
func vectorize(docs []string) ([]vector, []string) {
	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	vocab := make([]string, 0, len(df))
	for tok := range df {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)
	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, tok := range vocab {
		index[tok] = i
		idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}

	vectors := make([]vector, len(docs))
	for i, tokens := range tokenized {
		counts := make(map[int]float64, len(tokens))
		for _, tok := range tokens {
			counts[index[tok]]++
		}
		v := make(vector, 0, len(counts))
		var norm float64
		for idx, count := range counts {
			w := count * idf[idx]
			v = append(v, term{index: idx, weight: w})
			norm += w * w
		}
		sort.Slice(v, func(a, b int) bool { return v[a].index < v[b].index })
		if norm > 0 {
			inv := 1 / math.Sqrt(norm)
			for k := range v {
				v[k].weight *= inv
			}
		}
		vectors[i] = v
	}
	return vectors, vocab
}

// dot multiplies two sorted sparse vectors.
func dot(a, b vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].index == b[j].index:
			sum += a[i].weight * b[j].weight
			i++
			j++
		case a[i].index < b[j].index:
			i++
		default:
			j++
		}
	}
	return sum
}
