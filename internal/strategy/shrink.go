package strategy

import (
	"reflect"

	"github.com/leanovate/gopter"
)

// translate is a type-changing Map that keeps the source shrinker. gopter's
// Gen.Map eagerly samples its source to learn the result type and only
// carries a shrinker when source and result types match; translate instead
// takes the result type explicitly and a down/up pair: down maps a drawn
// value into the result type, up recovers the source value from a result so
// shrink candidates restart from the current counterexample.
func translate(g gopter.Gen, resultType reflect.Type, down, up func(interface{}) interface{}) gopter.Gen {
	return func(params *gopter.GenParameters) *gopter.GenResult {
		r := g(params)
		value, ok := r.Retrieve()
		if !ok {
			return gopter.NewEmptyResult(resultType)
		}
		shrinker := r.Shrinker
		result := gopter.NewGenResult(down(value), gopter.NoShrinker)
		result.ResultType = resultType
		if shrinker != nil {
			result.Shrinker = func(v interface{}) gopter.Shrink {
				inner := shrinker(up(v))
				return func() (interface{}, bool) {
					candidate, ok := inner()
					if !ok {
						return nil, false
					}
					return down(candidate), true
				}
			}
		}
		return result
	}
}

// combine is the shrinker-carrying counterpart of gopter.CombineGens: it
// draws every generator and builds one result value, shrinking one component
// at a time while holding the others fixed.
func combine(gens []gopter.Gen, resultType reflect.Type, down func([]interface{}) interface{}, up func(interface{}) []interface{}) gopter.Gen {
	return func(params *gopter.GenParameters) *gopter.GenResult {
		values := make([]interface{}, len(gens))
		shrinkers := make([]gopter.Shrinker, len(gens))
		for i, g := range gens {
			r := g(params)
			value, ok := r.Retrieve()
			if !ok {
				return gopter.NewEmptyResult(resultType)
			}
			values[i] = value
			shrinkers[i] = r.Shrinker
		}
		result := gopter.NewGenResult(down(values), func(v interface{}) gopter.Shrink {
			parts := up(v)
			shrinks := make([]gopter.Shrink, 0, len(parts))
			for i := range parts {
				if i >= len(shrinkers) || shrinkers[i] == nil {
					continue
				}
				at := i
				inner := shrinkers[at](parts[at])
				shrinks = append(shrinks, func() (interface{}, bool) {
					candidate, ok := inner()
					if !ok {
						return nil, false
					}
					next := make([]interface{}, len(parts))
					copy(next, parts)
					next[at] = candidate
					return down(next), true
				})
			}
			return gopter.ConcatShrinks(shrinks...)
		})
		result.ResultType = resultType
		return result
	}
}
