package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/v1/recommendations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/recommendations?title=Alien", http.NoBody)
	r.ServeHTTP(httptest.NewRecorder(), req)

	got := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/v1/recommendations", "404"))
	if got < 1 {
		t.Errorf("http_requests_total = %f, want >= 1", got)
	}
}

func TestObserveQuery(t *testing.T) {
	before := testutil.ToFloat64(QueriesTotal.WithLabelValues("cli", "not_found"))
	ObserveQuery("cli", false)
	ObserveQuery("cli", true)
	if got := testutil.ToFloat64(QueriesTotal.WithLabelValues("cli", "not_found")); got != before+1 {
		t.Errorf("not_found = %f, want %f", got, before+1)
	}
}

func TestObserveIndex(t *testing.T) {
	ObserveIndex(120, 18, 250*time.Millisecond)
	if got := testutil.ToFloat64(CatalogEntries); got != 120 {
		t.Errorf("catalog_entries = %f", got)
	}
	if got := testutil.ToFloat64(VocabularySize); got != 18 {
		t.Errorf("vocabulary_terms = %f", got)
	}
	if got := testutil.ToFloat64(IndexBuildSeconds); got != 0.25 {
		t.Errorf("index_build_seconds = %f", got)
	}

	const want = `# HELP moviematch_index_build_seconds Time spent building the similarity matrix
# TYPE moviematch_index_build_seconds gauge
moviematch_index_build_seconds 0.25
`
	if err := testutil.CollectAndCompare(IndexBuildSeconds, strings.NewReader(want)); err != nil {
		t.Errorf("index_build_seconds: %v", err)
	}
}
