package styleprof

import (
	"sort"

	"github.com/corey/stylo/internal/ports"
)

// observeLabel folds one observed label into a categorical counter and
// re-derives the retained counts through the active pruning policy.
// Callers must not invoke this for absent labels: Total counts observations
// only, never non-observations.
func observeLabel(prior ports.CategoryCounter, label string, cfg Config) ports.CategoryCounter {
	counts := make(map[string]int, len(prior.Counts)+1)
	for k, v := range prior.Counts {
		counts[k] = v
	}
	counts[label]++
	return ports.CategoryCounter{
		Counts: prune(counts, cfg),
		Total:  prior.Total + 1,
	}
}

// prune applies the configured policy to a frequency table and returns the
// retained subset. Labels are ranked by count descending; equal counts break
// lexicographically ascending by label, so the pruning boundary is
// deterministic.
//
// top-k: keep the first K ranked pairs.
//
// coverage: accumulate counts in rank order and keep a pair only while the
// running cumulative ratio (against the sum of this table, not the all-time
// total) stays strictly below the threshold. The pair that would push the
// ratio to or past the threshold is excluded along with everything after it.
// Worked example at threshold 0.95: {A:50 B:30 C:15 D:5} yields ratio 0.50
// after A (keep), 0.80 after B (keep), 0.95 after C (not < 0.95: stop, C
// excluded), retaining {A, B}. The boundary pair is dropped even though it
// would complete the coverage target.
func prune(counts map[string]int, cfg Config) map[string]int {
	type pair struct {
		label string
		count int
	}
	ranked := make([]pair, 0, len(counts))
	var tableTotal int
	for label, count := range counts {
		ranked = append(ranked, pair{label, count})
		tableTotal += count
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].label < ranked[j].label
	})

	kept := make(map[string]int)
	switch cfg.Policy {
	case PolicyCoverage:
		running := 0
		for _, p := range ranked {
			running += p.count
			if float64(running)/float64(tableTotal) >= cfg.CoverageThreshold {
				break
			}
			kept[p.label] = p.count
		}
	default: // PolicyTopK
		for i, p := range ranked {
			if i >= cfg.TopK {
				break
			}
			kept[p.label] = p.count
		}
	}
	return kept
}
