package strategy

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/stretchr/testify/require"

	language "github.com/cemkavuklu/hypothesis-graphql/internal/language"
)

func drawValue(t *testing.T, g gopter.Gen, params *gopter.GenParameters) *language.Value {
	t.Helper()
	value, ok := g(params).Retrieve()
	require.True(t, ok, "generator produced no value")
	v, ok := value.(*language.Value)
	require.True(t, ok, "generator produced %T, want *language.Value", value)
	return v
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{1.5, "1.5"},
		{0.25, "0.25"},
		{-0.125, "-0.125"},
		{1e21, "1e+21"},
		{-2.5e-7, "-2.5e-07"},
	}
	for _, tt := range tests {
		got := formatFloat(tt.in)
		require.Equal(t, tt.want, got)

		parsed, err := strconv.ParseFloat(got, 64)
		require.NoError(t, err)
		require.Equal(t, tt.in, parsed)
	}
}

func TestIntLiterals(t *testing.T) {
	params := gopter.DefaultGenParameters()
	g := Int(false)
	for i := 0; i < 200; i++ {
		v := drawValue(t, g, params)
		require.Equal(t, language.IntValue, v.Kind)

		n, err := strconv.ParseInt(v.Raw, 10, 64)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, int64(math.MinInt32))
		require.LessOrEqual(t, n, int64(math.MaxInt32))
	}
}

func TestFloatLiterals(t *testing.T) {
	params := gopter.DefaultGenParameters()
	g := Float(false)
	for i := 0; i < 200; i++ {
		v := drawValue(t, g, params)
		require.Equal(t, language.FloatValue, v.Kind)
		require.True(t, strings.ContainsAny(v.Raw, ".eE"), "literal %q would lex as an Int", v.Raw)

		f, err := strconv.ParseFloat(v.Raw, 64)
		require.NoError(t, err)
		require.False(t, math.IsNaN(f))
		require.False(t, math.IsInf(f, 0))
	}
}

func TestStringLiterals(t *testing.T) {
	allowed := func(r rune) bool {
		switch {
		case r >= 0x0020 && r <= 0x007e:
			return true
		case r >= 0x00a0 && r <= 0xd7ff:
			return true
		case r >= 0xe000 && r <= 0xffff:
			return true
		}
		return false
	}

	params := gopter.DefaultGenParameters()
	g := String(false)
	for i := 0; i < 200; i++ {
		v := drawValue(t, g, params)
		require.Equal(t, language.StringValue, v.Kind)
		for _, r := range v.Raw {
			require.True(t, allowed(r), "rune %U outside the printable alphabet", r)
		}
	}
}

func TestIDLiterals(t *testing.T) {
	params := gopter.DefaultGenParameters()
	g := ID(false)
	seen := map[language.ValueKind]bool{}
	for i := 0; i < 300; i++ {
		v := drawValue(t, g, params)
		require.Contains(t, []language.ValueKind{language.IntValue, language.StringValue}, v.Kind)
		seen[v.Kind] = true
	}
	require.True(t, seen[language.IntValue], "no Int-shaped ID drawn")
	require.True(t, seen[language.StringValue], "no String-shaped ID drawn")
}

func TestBooleanLiterals(t *testing.T) {
	params := gopter.DefaultGenParameters()
	g := Boolean(false)
	for i := 0; i < 50; i++ {
		v := drawValue(t, g, params)
		require.Equal(t, language.BooleanValue, v.Kind)
		require.Contains(t, []string{"true", "false"}, v.Raw)
	}
}

func TestEnumLiterals(t *testing.T) {
	schema, err := language.LoadSchema(`
		enum Color { RED GREEN BLUE }
		type Query { color: Color }
	`)
	require.NoError(t, err)

	params := gopter.DefaultGenParameters()
	g := Enum(schema.Types["Color"], false)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		v := drawValue(t, g, params)
		require.Equal(t, language.EnumValue, v.Kind)
		require.Contains(t, []string{"RED", "GREEN", "BLUE"}, v.Raw)
		seen[v.Raw] = true
	}
	require.Len(t, seen, 3, "all declared members should be drawn")
}

func TestNullableLiteralsMixInNulls(t *testing.T) {
	params := gopter.DefaultGenParameters()
	g := Int(true)
	seen := map[language.ValueKind]bool{}
	for i := 0; i < 300; i++ {
		v := drawValue(t, g, params)
		require.Contains(t, []language.ValueKind{language.IntValue, language.NullValue}, v.Kind)
		seen[v.Kind] = true
	}
	require.True(t, seen[language.IntValue])
	require.True(t, seen[language.NullValue])
}

func TestExhaustedBudgetCollapsesToNull(t *testing.T) {
	params := gopter.DefaultGenParameters()
	params.MaxSize = 0
	g := String(true)
	for i := 0; i < 50; i++ {
		v := drawValue(t, g, params)
		require.Equal(t, language.NullValue, v.Kind)
	}
}
