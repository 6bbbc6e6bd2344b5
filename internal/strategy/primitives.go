package strategy

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	language "github.com/cemkavuklu/hypothesis-graphql/internal/language"
)

var null = &language.Value{Kind: language.NullValue, Raw: "null"}

// maybeNull alternates the value generator with a constant null literal.
// A zero size budget collapses to null, terminating recursive input types.
func maybeNull(g gopter.Gen, nullable bool) gopter.Gen {
	if !nullable {
		return g
	}
	nullOnly := gen.Const(null)
	weighted := gen.Weighted([]gen.WeightedGen{
		{Weight: 3, Gen: g},
		{Weight: 1, Gen: nullOnly},
	})
	return func(params *gopter.GenParameters) *gopter.GenResult {
		if params.MaxSize <= 0 {
			return nullOnly(params)
		}
		return weighted(params)
	}
}

// Int generates IntValue literals over the full 32-bit signed range.
func Int(nullable bool) gopter.Gen { return maybeNull(intValues(), nullable) }

// Float generates finite, non-NaN FloatValue literals.
func Float(nullable bool) gopter.Gen { return maybeNull(floatValues(), nullable) }

// String generates StringValue literals without unpaired surrogates.
func String(nullable bool) gopter.Gen { return maybeNull(stringValues(), nullable) }

// ID alternates between String-shaped and Int-shaped literals; both are
// valid ID representations.
func ID(nullable bool) gopter.Gen { return maybeNull(idValues(), nullable) }

// Boolean generates true/false literals.
func Boolean(nullable bool) gopter.Gen { return maybeNull(booleanValues(), nullable) }

// Enum generates members of the given enum definition.
func Enum(def *language.Definition, nullable bool) gopter.Gen {
	return maybeNull(enumValues(def), nullable)
}

func scalarValues(name string) (gopter.Gen, error) {
	switch name {
	case "Int":
		return intValues(), nil
	case "Float":
		return floatValues(), nil
	case "String":
		return stringValues(), nil
	case "ID":
		return idValues(), nil
	case "Boolean":
		return booleanValues(), nil
	}
	return nil, &UnsupportedScalarError{Name: name}
}

func intValues() gopter.Gen {
	return translate(gen.Int32Range(-1<<31, 1<<31-1), valueType,
		func(v interface{}) interface{} {
			return &language.Value{Kind: language.IntValue, Raw: strconv.FormatInt(int64(v.(int32)), 10)}
		},
		func(v interface{}) interface{} {
			n, _ := strconv.ParseInt(v.(*language.Value).Raw, 10, 32)
			return int32(n)
		})
}

func floatValues() gopter.Gen {
	return translate(gen.Float64(), valueType,
		func(v interface{}) interface{} {
			return &language.Value{Kind: language.FloatValue, Raw: formatFloat(v.(float64))}
		},
		func(v interface{}) interface{} {
			f, _ := strconv.ParseFloat(v.(*language.Value).Raw, 64)
			return f
		})
}

// formatFloat keeps the literal FloatValue-shaped: a bare integer literal
// would lex as IntValue.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// stringRune covers the Basic Multilingual Plane minus surrogates. Control
// characters are excluded as well: the only escapes the GraphQL grammar
// accepts are \" \\ \/ \b \f \n \r \t and \uXXXX, and the printer quotes
// other control characters with escapes outside that set.
func stringRune() gopter.Gen {
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 8, Gen: gen.RuneRange(0x0020, 0x007e)},
		{Weight: 1, Gen: gen.RuneRange(0x00a0, 0xd7ff)},
		{Weight: 1, Gen: gen.RuneRange(0xe000, 0xffff)},
	})
}

func stringValues() gopter.Gen {
	return translate(gen.SliceOf(stringRune(), reflect.TypeOf(rune(0))), valueType,
		func(v interface{}) interface{} {
			return &language.Value{Kind: language.StringValue, Raw: string(v.([]rune))}
		},
		func(v interface{}) interface{} {
			return []rune(v.(*language.Value).Raw)
		})
}

func idValues() gopter.Gen {
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 1, Gen: stringValues()},
		{Weight: 1, Gen: intValues()},
	})
}

func booleanValues() gopter.Gen {
	return translate(gen.Bool(), valueType,
		func(v interface{}) interface{} {
			return &language.Value{Kind: language.BooleanValue, Raw: strconv.FormatBool(v.(bool))}
		},
		func(v interface{}) interface{} {
			return v.(*language.Value).Raw == "true"
		})
}

// enumValues indexes into the declared members so that shrinking settles on
// the first declared member.
func enumValues(def *language.Definition) gopter.Gen {
	names := make([]string, len(def.EnumValues))
	for i, v := range def.EnumValues {
		names[i] = v.Name
	}
	return translate(gen.IntRange(0, len(names)-1), valueType,
		func(v interface{}) interface{} {
			return &language.Value{Kind: language.EnumValue, Raw: names[v.(int)]}
		},
		func(v interface{}) interface{} {
			raw := v.(*language.Value).Raw
			for i, name := range names {
				if name == raw {
					return i
				}
			}
			return 0
		})
}
