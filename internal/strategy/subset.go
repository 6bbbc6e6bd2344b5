package strategy

import (
	"sort"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// pickSet draws a subset of the candidate values: deduplicated, sorted,
// never empty and always containing the `always` values. Shrinking moves
// toward the single smallest candidate.
func pickSet(candidates []int, always []int) gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(candidates)-1)).Map(func(picked []int) []int {
		seen := make(map[int]bool, len(always)+len(picked))
		out := make([]int, 0, len(always)+len(picked))
		for _, v := range always {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		for _, i := range picked {
			v := candidates[i]
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
		if len(out) == 0 {
			out = append(out, candidates[0])
		}
		sort.Ints(out)
		return out
	})
}

// deferred breaks construction cycles for self-referential types: the
// placeholder is registered before the real generator is built and resolved
// on first sample. Until the target is set it yields a typed empty value, so
// probe draws during construction cannot hit a nil generator.
type deferred struct {
	empty  interface{}
	target gopter.Gen
}

func (d *deferred) gen(params *gopter.GenParameters) *gopter.GenResult {
	if d.target == nil {
		return gopter.NewGenResult(d.empty, gopter.NoShrinker)
	}
	return d.target(params)
}

// descend charges one level of the engine's size budget to a recursive
// sub-generator, so nesting depth stays under the caller's control.
func descend(g gopter.Gen) gopter.Gen {
	return func(params *gopter.GenParameters) *gopter.GenResult {
		size := params.MaxSize - 1
		if size < 0 {
			size = 0
		}
		next := *params
		next.MaxSize = size
		return g(&next)
	}
}

