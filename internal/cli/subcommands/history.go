package subcommands

// queryHistory keeps the most recent queries submitted in the window so they
// can be recalled with the arrow keys.
type queryHistory struct {
	queries    []string
	maxQueries int
	// cursor indexes queries while browsing; len(queries) means "not browsing".
	cursor int
}

func newQueryHistory(maxQueries int) *queryHistory {
	if maxQueries <= 0 {
		maxQueries = 20
	}
	return &queryHistory{
		queries:    make([]string, 0, maxQueries),
		maxQueries: maxQueries,
	}
}

// Add records q and resets browsing. Empty queries and immediate repeats are skipped.
func (h *queryHistory) Add(q string) {
	defer h.reset()
	if q == "" {
		return
	}
	if n := len(h.queries); n > 0 && h.queries[n-1] == q {
		return
	}

	h.queries = append(h.queries, q)
	if len(h.queries) > h.maxQueries {
		h.queries = h.queries[len(h.queries)-h.maxQueries:]
	}
}

// Prev steps back to an older query. It reports false when there is none.
func (h *queryHistory) Prev() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.queries[h.cursor], true
}

// Next steps forward. Moving past the newest query yields "" and ends browsing.
func (h *queryHistory) Next() (string, bool) {
	if h.cursor >= len(h.queries) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.queries) {
		return "", true
	}
	return h.queries[h.cursor], true
}

func (h *queryHistory) Len() int {
	return len(h.queries)
}

func (h *queryHistory) reset() {
	h.cursor = len(h.queries)
}
