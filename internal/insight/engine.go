package insight

import (
	"github.com/loverescue/coachcore/internal/assessment"
)

// Generate evaluates every rule in catalog order and returns one insight per
// matching rule. The result is never nil; no match is an empty slice.
func Generate(results assessment.Results) []Insight {
	out := make([]Insight, 0, 4)
	for i := range catalog {
		r := &catalog[i]
		if !results.Has(r.Requires...) {
			continue
		}
		if !evaluate(r, results) {
			continue
		}
		out = append(out, r.Template)
	}
	return out
}

// evaluate runs one predicate. A panicking predicate counts as no match so a
// single bad record cannot take the other rules down with it.
func evaluate(r *Rule, results assessment.Results) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return r.Match(results)
}
