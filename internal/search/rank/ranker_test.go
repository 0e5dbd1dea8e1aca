package rank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DJ-no1/floatchat-backend/internal/domains"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
)

func testRanker() *Ranker {
	policy := domains.New(
		[]string{"incois.gov.in", "argo.ucsd.edu", "doi.org"},
		nil,
		24,
	)
	r := New(policy)
	r.now = func() time.Time {
		return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	return r
}

func sources(results []web.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Source)
	}
	return out
}

func TestRankOrdersByDomainPriority(t *testing.T) {
	r := testRanker()

	results := []web.Result{
		{Rank: 1, Source: "unknown.example"},
		{Rank: 2, Source: "argo.ucsd.edu"},
		{Rank: 3, Source: "incois.gov.in"},
	}

	ranked := r.Rank(results)
	assert.Equal(t, []string{"incois.gov.in", "argo.ucsd.edu", "unknown.example"}, sources(ranked))
}

func TestRankBreaksPriorityTiesByRecency(t *testing.T) {
	r := testRanker()

	results := []web.Result{
		{Rank: 1, Source: "doi.org", Published: "2019-05-01"},
		{Rank: 2, Source: "doi.org", Published: "2026-01-15"},
		{Rank: 3, Source: "doi.org", Published: "2025-08-01"},
		{Rank: 4, Source: "doi.org"}, // no date: neutral, same bucket as 2025
	}

	ranked := r.Rank(results)
	require.Len(t, ranked, 4)
	assert.Equal(t, "2026-01-15", ranked[0].Published)
	// 2025 and the undated result share the neutral bucket; backend rank
	// breaks the tie.
	assert.Equal(t, "2025-08-01", ranked[1].Published)
	assert.Equal(t, 4, ranked[2].Rank)
	assert.Equal(t, "2019-05-01", ranked[3].Published)
}

func TestRankBreaksRemainingTiesByBackendRank(t *testing.T) {
	r := testRanker()

	results := []web.Result{
		{Rank: 3, Source: "incois.gov.in", Published: "2026"},
		{Rank: 1, Source: "incois.gov.in", Published: "2026"},
		{Rank: 2, Source: "incois.gov.in", Published: "2026"},
	}

	ranked := r.Rank(results)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankIsDeterministicAcrossInputOrder(t *testing.T) {
	r := testRanker()

	a := []web.Result{
		{Rank: 1, Source: "unknown.example", Published: "2026"},
		{Rank: 2, Source: "incois.gov.in"},
		{Rank: 3, Source: "argo.ucsd.edu", Published: "2020"},
	}
	b := []web.Result{a[2], a[0], a[1]}

	assert.Equal(t, r.Rank(a), r.Rank(b))
}

func TestRankNeverDropsResults(t *testing.T) {
	r := testRanker()

	results := []web.Result{
		{Rank: 1, Source: "spammy.example"},
		{Rank: 2, Source: "another.example"},
	}

	assert.Len(t, r.Rank(results), 2)
	assert.Empty(t, r.Rank(nil))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	r := testRanker()

	results := []web.Result{
		{Rank: 1, Source: "unknown.example"},
		{Rank: 2, Source: "incois.gov.in"},
	}

	r.Rank(results)
	assert.Equal(t, "unknown.example", results[0].Source)
}

func TestRecencyBuckets(t *testing.T) {
	tests := []struct {
		name   string
		result web.Result
		want   int
	}{
		{"current year", web.Result{Published: "2026-01-01"}, -1},
		{"future year", web.Result{Published: "2027"}, -1},
		{"previous year", web.Result{Published: "2025-12-31"}, 0},
		{"two years back", web.Result{Published: "2024"}, 1},
		{"ancient", web.Result{Published: "2001"}, 1},
		{"missing date is neutral, never best", web.Result{}, 0},
		{"unparseable date is neutral", web.Result{Published: "last spring"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recencyBucket(tt.result, 2026))
		})
	}
}
