// Package hypothesisgraphql generates random, schema-valid GraphQL operation
// documents for property-based tests. Generators are gopter strategies: they
// compose with the rest of a test's generators and shrink toward minimal
// documents. Schema parsing, printing and validation are delegated to
// gqlparser.
package hypothesisgraphql

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	language "github.com/cemkavuklu/hypothesis-graphql/internal/language"
	strategy "github.com/cemkavuklu/hypothesis-graphql/internal/strategy"
)

// Source identifies a schema either by SDL source text or by an already
// parsed schema.
type Source struct {
	text   string
	schema *language.Schema
}

// SDL wraps schema source text. Parsing goes through the schema cache, so
// repeated generator construction over the same text parses once.
func SDL(text string) Source { return Source{text: text} }

// Parsed wraps an already built schema; it is used as-is.
func Parsed(schema *language.Schema) Source { return Source{schema: schema} }

type config struct {
	fields    []string
	hasFields bool
	cache     *Cache
}

// Option configures generator construction.
type Option func(*config)

// Fields restricts root-level generation to the given field names. The set
// must be non-empty and every name must exist on the root type.
func Fields(names ...string) Option {
	return func(c *config) {
		c.fields = names
		c.hasFields = true
	}
}

// WithCache parses SDL sources through the given cache instead of the
// process-wide one.
func WithCache(cache *Cache) Option {
	return func(c *config) { c.cache = cache }
}

// Queries builds a generator whose samples are printed query documents over
// a subset of the schema's Query fields.
func Queries(source Source, opts ...Option) (gopter.Gen, error) {
	return operation(source, language.Query, opts)
}

// Mutations is the Queries counterpart for the Mutation root.
func Mutations(source Source, opts ...Option) (gopter.Gen, error) {
	return operation(source, language.Mutation, opts)
}

// FromSchema builds a generator over whichever of the query and mutation
// roots the schema defines, alternating between them when both exist.
// Field restrictions are per-root and therefore not accepted here.
func FromSchema(source Source, opts ...Option) (gopter.Gen, error) {
	cfg := newConfig(opts)
	if cfg.hasFields {
		return nil, &ConfigurationError{Message: "Fields cannot be combined with FromSchema"}
	}
	schema, err := resolveSource(source, cfg)
	if err != nil {
		return nil, err
	}
	var gens []gopter.Gen
	for _, op := range []language.Operation{language.Query, language.Mutation} {
		if rootType(schema, op) == nil {
			continue
		}
		g, err := operation(Parsed(schema), op, nil)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	switch len(gens) {
	case 0:
		return nil, &ConfigurationError{Message: "neither Query nor Mutation type is defined in the schema"}
	case 1:
		return gens[0], nil
	default:
		return gen.OneGenOf(gens...), nil
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func resolveSource(source Source, cfg *config) (*language.Schema, error) {
	if source.schema != nil {
		return source.schema, nil
	}
	cache := cfg.cache
	if cache == nil {
		cache = processCache
	}
	return cache.Load(source.text)
}

func rootType(schema *language.Schema, op language.Operation) *language.Definition {
	if op == language.Mutation {
		return schema.Mutation
	}
	return schema.Query
}

func operation(source Source, op language.Operation, opts []Option) (gopter.Gen, error) {
	cfg := newConfig(opts)
	schema, err := resolveSource(source, cfg)
	if err != nil {
		return nil, err
	}

	root := rootType(schema, op)
	if root == nil {
		name := "Query"
		if op == language.Mutation {
			name = "Mutation"
		}
		return nil, &ConfigurationError{Message: fmt.Sprintf("%s type is not defined in the schema", name)}
	}

	var allowed map[string]bool
	if cfg.hasFields {
		if len(cfg.fields) == 0 {
			return nil, &ConfigurationError{Message: "Fields must not be empty"}
		}
		allowed = make(map[string]bool, len(cfg.fields))
		var unknown []string
		for _, name := range cfg.fields {
			if root.Fields.ForName(name) == nil {
				unknown = append(unknown, name)
				continue
			}
			allowed[name] = true
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return nil, &ConfigurationError{Message: "unknown fields: " + strings.Join(unknown, ", ")}
		}
	}

	selections, err := strategy.NewBuilder(schema).SelectionSet(root, allowed)
	if err != nil {
		return nil, err
	}
	return strategy.Document(op, selections), nil
}
