// Package nodes exposes the field-level value generators for callers that
// compose their own strategies instead of drawing whole documents. Every
// generator produces *ast.Value literal nodes.
package nodes

import (
	"github.com/leanovate/gopter"
	"github.com/vektah/gqlparser/v2/ast"

	strategy "github.com/cemkavuklu/hypothesis-graphql/internal/strategy"
)

func Int(nullable bool) gopter.Gen { return strategy.Int(nullable) }

func Float(nullable bool) gopter.Gen { return strategy.Float(nullable) }

func String(nullable bool) gopter.Gen { return strategy.String(nullable) }

func ID(nullable bool) gopter.Gen { return strategy.ID(nullable) }

func Boolean(nullable bool) gopter.Gen { return strategy.Boolean(nullable) }

// Enum generates members of the given enum definition.
func Enum(def *ast.Definition, nullable bool) gopter.Gen {
	return strategy.Enum(def, nullable)
}

// Values generates literals for any input type reference in the schema:
// scalars, enums, lists and input objects, with nullability taken from the
// reference's own wrapping. Unsupported scalars fail here, not at sampling.
func Values(schema *ast.Schema, t *ast.Type) (gopter.Gen, error) {
	return strategy.NewBuilder(schema).Values(t)
}
