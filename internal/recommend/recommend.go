package recommend

import (
	"errors"
	"sort"
	"strings"

	"MovieMatch/internal/catalog"
	"MovieMatch/internal/similarity"

	"github.com/agnivade/levenshtein"
)

// DefaultLimit is the number of titles returned per query.
const DefaultLimit = 10

// ErrTitleNotFound reports a query title absent from the catalog.
var ErrTitleNotFound = errors.New("movie not found in the database")

// Result is one ranked recommendation.
type Result struct {
	Position int     `json:"position"`
	Title    string  `json:"title"`
	Score    float64 `json:"score"`
}

// Recommender answers title queries from a catalog and its precomputed
// similarity matrix. Both are shared read-only.
type Recommender struct {
	catalog *catalog.Catalog
	matrix  *similarity.Matrix
	limit   int
}

// New returns a recommender. A non-positive limit selects DefaultLimit.
func New(cat *catalog.Catalog, matrix *similarity.Matrix, limit int) *Recommender {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Recommender{catalog: cat, matrix: matrix, limit: limit}
}

// Build builds the similarity matrix for cat and wraps both in a recommender.
func Build(cat *catalog.Catalog, limit int) *Recommender {
	return New(cat, similarity.Build(cat.Genres()), limit)
}

// Catalog returns the catalog the recommender reads from.
func (r *Recommender) Catalog() *catalog.Catalog { return r.catalog }

// Limit returns the maximum number of results per query.
func (r *Recommender) Limit() int { return r.limit }

// Recommend returns up to Limit titles most similar to title, best first. The
// title must match a catalog title exactly; otherwise the result is empty.
func (r *Recommender) Recommend(title string) []string {
	ranked, ok := r.Ranked(title)
	if !ok {
		return []string{}
	}
	titles := make([]string, len(ranked))
	for i, res := range ranked {
		titles[i] = res.Title
	}
	return titles
}

// Ranked is Recommend with positions and scores. The boolean is false when
// title is not in the catalog.
//
// The query resolves to the first entry carrying that title. Its own position
// is never returned; other entries with the same title are ordinary
// candidates. Equal scores keep catalog order.
func (r *Recommender) Ranked(title string) ([]Result, bool) {
	idx, ok := r.catalog.Position(title)
	if !ok {
		return nil, false
	}

	row := r.matrix.Row(idx)
	candidates := make([]Result, 0, len(row)-1)
	for pos, score := range row {
		if pos == idx {
			continue
		}
		candidates = append(candidates, Result{Position: pos, Score: score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > r.limit {
		candidates = candidates[:r.limit]
	}
	for i := range candidates {
		candidates[i].Title = r.catalog.Entry(candidates[i].Position).Title
	}
	return candidates, true
}

// Suggest returns up to n distinct catalog titles closest to query by
// case-insensitive edit distance. It only feeds not-found messages.
func (r *Recommender) Suggest(query string, n int) []string {
	if n <= 0 || r.catalog.Len() == 0 {
		return nil
	}
	type candidate struct {
		title string
		dist  int
		pos   int
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	seen := make(map[string]struct{}, r.catalog.Len())
	candidates := make([]candidate, 0, r.catalog.Len())
	for pos, title := range r.catalog.Titles() {
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		candidates = append(candidates, candidate{
			title: title,
			dist:  levenshtein.ComputeDistance(needle, strings.ToLower(title)),
			pos:   pos,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	// Suggestions further away than the query itself is long are noise.
	maxDist := len([]rune(needle))
	if maxDist < 3 {
		maxDist = 3
	}
	out := make([]string, 0, n)
	for _, c := range candidates {
		if len(out) == n || c.dist > maxDist {
			break
		}
		out = append(out, c.title)
	}
	return out
}
