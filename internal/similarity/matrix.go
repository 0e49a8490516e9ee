package similarity

// Matrix holds pairwise cosine similarities between catalog positions. It is
// immutable once built and safe for concurrent reads.
type Matrix struct {
	n      int
	scores []float64
	vocab  []string
	empty  []bool
}

// Build computes the full similarity matrix for the given genre texts, one per
// catalog position. Rows of documents without vocabulary terms are all zero,
// including their diagonal.
func Build(docs []string) *Matrix {
	vectors, vocab := vectorize(docs)
	n := len(docs)
	m := &Matrix{
		n:      n,
		scores: make([]float64, n*n),
		vocab:  vocab,
		empty:  make([]bool, n),
	}
	for i := 0; i < n; i++ {
		if len(vectors[i]) == 0 {
			m.empty[i] = true
			continue
		}
		m.scores[i*n+i] = 1
		for j := i + 1; j < n; j++ {
			s := clamp(dot(vectors[i], vectors[j]))
			m.scores[i*n+j] = s
			m.scores[j*n+i] = s
		}
	}
	return m
}

// Size returns the number of rows (and columns).
func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return m.n
}

// At returns the similarity between positions i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.scores[i*m.n+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.scores[i*m.n:(i+1)*m.n])
	return row
}

// Vocabulary returns the sorted vocabulary the vectors were built over.
func (m *Matrix) Vocabulary() []string {
	return append([]string(nil), m.vocab...)
}

// Empty reports whether position i has no vocabulary terms.
func (m *Matrix) Empty(i int) bool {
	return m.empty[i]
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
