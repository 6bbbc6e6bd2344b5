// Package strategy builds gopter generators whose samples are schema-valid
// GraphQL AST fragments: literal values, selection sets and whole operation
// documents. Generators are pure descriptions; all schema-shape errors
// (unsupported scalars, impossible arguments) surface while a generator is
// built, never while it is sampled.
package strategy

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	language "github.com/cemkavuklu/hypothesis-graphql/internal/language"
)

var (
	selectionSetType = reflect.TypeOf(language.SelectionSet{})
	fieldNodeType    = reflect.TypeOf((*language.Field)(nil))
	fragmentNodeType = reflect.TypeOf((*language.InlineFragment)(nil))
	argumentNodeType = reflect.TypeOf((*language.Argument)(nil))
	argumentListType = reflect.TypeOf(language.ArgumentList(nil))
	stringType       = reflect.TypeOf("")
)

// Builder constructs generators over one schema. Selection-set and input
// object generators are memoized per type name, which both shares structure
// and terminates construction on self-referential type graphs.
type Builder struct {
	schema     *language.Schema
	selections map[string]*deferred
	inputs     map[string]*deferred
}

func NewBuilder(schema *language.Schema) *Builder {
	return &Builder{
		schema:     schema,
		selections: make(map[string]*deferred),
		inputs:     make(map[string]*deferred),
	}
}

// SelectionSet builds a generator of non-empty selection sets over the given
// composite type. A non-nil allowed set restricts candidate fields; it is
// only meaningful at the document root and is not memoized.
func (b *Builder) SelectionSet(def *language.Definition, allowed map[string]bool) (gopter.Gen, error) {
	if allowed != nil {
		return b.buildSelectionSet(def, allowed)
	}
	if d, ok := b.selections[def.Name]; ok {
		return d.gen, nil
	}
	d := &deferred{empty: language.SelectionSet{}}
	b.selections[def.Name] = d
	g, err := b.buildSelectionSet(def, nil)
	if err != nil {
		delete(b.selections, def.Name)
		return nil, err
	}
	d.target = g
	return d.gen, nil
}

func (b *Builder) buildSelectionSet(def *language.Definition, allowed map[string]bool) (gopter.Gen, error) {
	switch def.Kind {
	case language.Object:
		return b.fieldSelections(def, allowed)
	case language.Interface:
		// Selecting through per-implementor inline fragments keeps the
		// document valid when implementors declare the same field name
		// with conflicting result types.
		if members := b.schema.PossibleTypes[def.Name]; len(members) > 0 {
			return b.fragmentSelections(members)
		}
		return b.fieldSelections(def, allowed)
	case language.Union:
		return b.fragmentSelections(b.schema.PossibleTypes[def.Name])
	default:
		return nil, fmt.Errorf("type %s (%s) has no selections", def.Name, def.Kind)
	}
}

// fieldSelections draws a non-empty subset of the type's fields, sorted by
// name, and combines one Field node generator per drawn field. When the size
// budget runs out the subset is drawn from leaf fields only, so cyclic
// output graphs stop growing.
func (b *Builder) fieldSelections(def *language.Definition, allowed map[string]bool) (gopter.Gen, error) {
	fields := make([]*language.FieldDefinition, 0, len(def.Fields))
	for _, f := range def.Fields {
		if strings.HasPrefix(f.Name, "__") {
			continue
		}
		if allowed != nil && !allowed[f.Name] {
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("type %s has no selectable fields", def.Name)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	nodes := make([]gopter.Gen, len(fields))
	all := make([]int, len(fields))
	var leaves []int
	for i, f := range fields {
		node, leaf, err := b.fieldNode(def, f)
		if err != nil {
			return nil, err
		}
		nodes[i] = node
		all[i] = i
		if leaf {
			leaves = append(leaves, i)
		}
	}

	pick := pickSet(all, nil)
	if len(leaves) > 0 && len(leaves) < len(fields) {
		full, leafOnly := pick, pickSet(leaves, nil)
		pick = func(params *gopter.GenParameters) *gopter.GenResult {
			if params.MaxSize <= 0 {
				return leafOnly(params)
			}
			return full(params)
		}
	}

	return pick.FlatMap(func(v interface{}) gopter.Gen {
		idxs := v.([]int)
		gens := make([]gopter.Gen, len(idxs))
		for i, ix := range idxs {
			gens[i] = nodes[ix]
		}
		return combine(gens, selectionSetType,
			func(vals []interface{}) interface{} {
				set := make(language.SelectionSet, len(vals))
				for i, f := range vals {
					set[i] = f.(*language.Field)
				}
				return set
			},
			func(v interface{}) []interface{} {
				set := v.(language.SelectionSet)
				vals := make([]interface{}, len(set))
				for i, sel := range set {
					vals[i] = sel
				}
				return vals
			})
	}, selectionSetType), nil
}

// fieldNode builds the generator for a single Field node. The second result
// reports whether the field is a leaf selection.
func (b *Builder) fieldNode(parent *language.Definition, f *language.FieldDefinition) (gopter.Gen, bool, error) {
	args, err := b.arguments(parent, f)
	if err != nil {
		return nil, false, err
	}

	leafDef := b.schema.Types[leafName(f.Type)]
	if leafDef == nil {
		return nil, false, fmt.Errorf("undefined type %s", leafName(f.Type))
	}
	var nested gopter.Gen
	switch leafDef.Kind {
	case language.Object, language.Interface, language.Union:
		sel, err := b.SelectionSet(leafDef, nil)
		if err != nil {
			return nil, false, err
		}
		nested = descend(sel)
	}

	name := f.Name
	if nested == nil {
		return translate(args, fieldNodeType,
			func(v interface{}) interface{} {
				return &language.Field{Name: name, Arguments: v.(language.ArgumentList)}
			},
			func(v interface{}) interface{} {
				return v.(*language.Field).Arguments
			}), true, nil
	}
	return combine([]gopter.Gen{args, nested}, fieldNodeType,
		func(vals []interface{}) interface{} {
			return &language.Field{
				Name:         name,
				Arguments:    vals[0].(language.ArgumentList),
				SelectionSet: vals[1].(language.SelectionSet),
			}
		},
		func(v interface{}) []interface{} {
			field := v.(*language.Field)
			return []interface{}{field.Arguments, field.SelectionSet}
		}), false, nil
}

// arguments builds the generator for a field's argument list. Every declared
// argument is emitted, except optional arguments whose leaf type is an
// unsupported scalar: those are omitted entirely rather than rendered as a
// null literal. The same failure on a required argument makes the whole
// field, and any document containing it, unconstructible.
func (b *Builder) arguments(parent *language.Definition, f *language.FieldDefinition) (gopter.Gen, error) {
	gens := make([]gopter.Gen, 0, len(f.Arguments))
	for _, arg := range f.Arguments {
		value, err := b.Values(arg.Type)
		if err != nil {
			var scalarErr *UnsupportedScalarError
			if errors.As(err, &scalarErr) {
				if !arg.Type.NonNull {
					continue
				}
				return nil, &UnsupportedArgumentTypeError{
					Field:    parent.Name + "." + f.Name,
					Argument: arg.Name,
					Scalar:   scalarErr.Name,
				}
			}
			return nil, err
		}
		name := arg.Name
		gens = append(gens, translate(value, argumentNodeType,
			func(v interface{}) interface{} {
				return &language.Argument{Name: name, Value: v.(*language.Value)}
			},
			func(v interface{}) interface{} {
				return v.(*language.Argument).Value
			}))
	}
	if len(gens) == 0 {
		return gen.Const(language.ArgumentList(nil)), nil
	}
	return combine(gens, argumentListType,
		func(vals []interface{}) interface{} {
			list := make(language.ArgumentList, len(vals))
			for i, a := range vals {
				list[i] = a.(*language.Argument)
			}
			return list
		},
		func(v interface{}) []interface{} {
			list := v.(language.ArgumentList)
			vals := make([]interface{}, len(list))
			for i, a := range list {
				vals[i] = a
			}
			return vals
		}), nil
}

// fragmentSelections draws a non-empty, duplicate-free subset of the member
// object types and emits one inline fragment per drawn member. When members
// declare the same field name with different types, sibling fragments would
// break the response-shape merge rule, so the draw collapses to a single
// fragment.
func (b *Builder) fragmentSelections(members []*language.Definition) (gopter.Gen, error) {
	members = append([]*language.Definition(nil), members...)
	sort.Slice(members, func(i, j int) bool { return members[i].Name < members[j].Name })

	sels := make([]gopter.Gen, len(members))
	all := make([]int, len(members))
	for i, m := range members {
		sel, err := b.SelectionSet(m, nil)
		if err != nil {
			return nil, err
		}
		sels[i] = descend(sel)
		all[i] = i
	}

	fragment := func(ix int) gopter.Gen {
		cond := members[ix].Name
		return translate(sels[ix], fragmentNodeType,
			func(v interface{}) interface{} {
				return &language.InlineFragment{TypeCondition: cond, SelectionSet: v.(language.SelectionSet)}
			},
			func(v interface{}) interface{} {
				return v.(*language.InlineFragment).SelectionSet
			})
	}

	if memberFieldsConflict(members) {
		return gen.IntRange(0, len(members)-1).FlatMap(func(v interface{}) gopter.Gen {
			return translate(fragment(v.(int)), selectionSetType,
				func(v interface{}) interface{} {
					return language.SelectionSet{v.(*language.InlineFragment)}
				},
				func(v interface{}) interface{} {
					return v.(language.SelectionSet)[0]
				})
		}, selectionSetType), nil
	}

	return pickSet(all, nil).FlatMap(func(v interface{}) gopter.Gen {
		idxs := v.([]int)
		gens := make([]gopter.Gen, len(idxs))
		for i, ix := range idxs {
			gens[i] = fragment(ix)
		}
		return combine(gens, selectionSetType,
			func(vals []interface{}) interface{} {
				set := make(language.SelectionSet, len(vals))
				for i, frag := range vals {
					set[i] = frag.(*language.InlineFragment)
				}
				return set
			},
			func(v interface{}) []interface{} {
				set := v.(language.SelectionSet)
				vals := make([]interface{}, len(set))
				for i, sel := range set {
					vals[i] = sel
				}
				return vals
			})
	}, selectionSetType), nil
}

// memberFieldsConflict reports whether two member types share a field name
// with differing type references. Equal references always merge; anything
// else is treated as a conflict, conservatively.
func memberFieldsConflict(members []*language.Definition) bool {
	seen := make(map[string]string)
	for _, m := range members {
		for _, f := range m.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			ref := f.Type.String()
			if prev, ok := seen[f.Name]; ok && prev != ref {
				return true
			}
			seen[f.Name] = ref
		}
	}
	return false
}

// Document wraps a selection-set generator into a single anonymous operation
// definition and prints each sample. Shrinking re-parses the printed
// document to recover the selection set the underlying shrinkers work on.
func Document(op language.Operation, selections gopter.Gen) gopter.Gen {
	return translate(selections, stringType,
		func(v interface{}) interface{} {
			doc := &language.QueryDocument{
				Operations: language.OperationList{{Operation: op, SelectionSet: v.(language.SelectionSet)}},
			}
			return language.FormatQueryDocument(doc)
		},
		func(v interface{}) interface{} {
			doc, err := language.ParseQuery(v.(string))
			if err != nil || len(doc.Operations) == 0 {
				return language.SelectionSet(nil)
			}
			return doc.Operations[0].SelectionSet
		})
}

func leafName(t *language.Type) string {
	for t.NamedType == "" {
		t = t.Elem
	}
	return t.NamedType
}
