// Package rank orders search results by source-domain priority, recency,
// and original backend position.
package rank

import (
	"sort"
	"time"

	"github.com/DJ-no1/floatchat-backend/internal/domains"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
)

// Ranker reorders results into a stable total order. It never drops a
// result — deny-list filtering already happened upstream, and truncation to
// the caller's cap happens downstream, after ranking.
type Ranker struct {
	policy *domains.Policy
	now    func() time.Time
}

func New(policy *domains.Policy) *Ranker {
	return &Ranker{
		policy: policy,
		now:    time.Now,
	}
}

// Rank sorts results ascending by (domain priority index, recency bucket,
// original backend rank). The final component makes ties deterministic
// regardless of input order.
func (r *Ranker) Rank(results []web.Result) []web.Result {
	ranked := make([]web.Result, len(results))
	copy(ranked, results)

	currentYear := r.now().Year()

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := r.policy.PriorityIndex(ranked[i].Source), r.policy.PriorityIndex(ranked[j].Source)
		if pi != pj {
			return pi < pj
		}

		ri, rj := recencyBucket(ranked[i], currentYear), recencyBucket(ranked[j], currentYear)
		if ri != rj {
			return ri < rj
		}

		return ranked[i].Rank < ranked[j].Rank
	})

	return ranked
}

// recencyBucket collapses a result's free-text date into a coarse score:
// current calendar year or newer is best (-1), the previous year is neutral
// (0), anything older is worst (+1). A missing or unparseable date lands in
// the neutral bucket — never the best one.
func recencyBucket(result web.Result, currentYear int) int {
	year := result.Year()
	switch {
	case year == 0:
		return 0
	case year >= currentYear:
		return -1
	case year == currentYear-1:
		return 0
	default:
		return 1
	}
}
