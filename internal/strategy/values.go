package strategy

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	language "github.com/cemkavuklu/hypothesis-graphql/internal/language"
)

var (
	valueType      = reflect.TypeOf((*language.Value)(nil))
	childValueType = reflect.TypeOf((*language.ChildValue)(nil))
)

// Values builds a generator of literal value nodes for the given input type
// reference. Wrapping is unwrapped recursively; a NonNull level makes the
// remainder of that level non-nullable. Unsupported scalars fail here, at
// construction time.
func (b *Builder) Values(t *language.Type) (gopter.Gen, error) {
	nullable := !t.NonNull
	if t.NamedType == "" {
		elem, err := b.Values(t.Elem)
		if err != nil {
			return nil, err
		}
		list := translate(gen.SliceOf(elem, valueType), valueType,
			func(v interface{}) interface{} {
				vals := v.([]*language.Value)
				children := make(language.ChildValueList, len(vals))
				for i, val := range vals {
					children[i] = &language.ChildValue{Value: val}
				}
				return &language.Value{Kind: language.ListValue, Children: children}
			},
			func(v interface{}) interface{} {
				node := v.(*language.Value)
				vals := make([]*language.Value, len(node.Children))
				for i, child := range node.Children {
					vals[i] = child.Value
				}
				return vals
			})
		return maybeNull(list, nullable), nil
	}
	def := b.schema.Types[t.NamedType]
	if def == nil {
		return nil, fmt.Errorf("undefined type %s", t.NamedType)
	}
	switch def.Kind {
	case language.Scalar:
		g, err := scalarValues(def.Name)
		if err != nil {
			return nil, err
		}
		return maybeNull(g, nullable), nil
	case language.Enum:
		return maybeNull(enumValues(def), nullable), nil
	case language.InputObject:
		g, err := b.inputObject(def)
		if err != nil {
			return nil, err
		}
		return maybeNull(g, nullable), nil
	default:
		return nil, fmt.Errorf("type %s (%s) cannot be used as an input", def.Name, def.Kind)
	}
}

// inputObject generates ObjectValue literals for an input object type.
// Fields are sorted by name; required fields are always present so the
// literal coerces, optional fields join a drawn subset. Optional fields
// whose own leaf type is an unsupported scalar are dropped from the
// candidates, mirroring how optional arguments are omitted.
func (b *Builder) inputObject(def *language.Definition) (gopter.Gen, error) {
	if d, ok := b.inputs[def.Name]; ok {
		return descend(d.gen), nil
	}
	d := &deferred{empty: null}
	b.inputs[def.Name] = d

	sorted := append([]*language.FieldDefinition(nil), def.Fields...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	type inputField struct {
		name  string
		value gopter.Gen
	}
	var fields []inputField
	var required []int
	var unsupported error
	for _, f := range sorted {
		value, err := b.Values(f.Type)
		if err != nil {
			var scalarErr *UnsupportedScalarError
			if errors.As(err, &scalarErr) && !f.Type.NonNull {
				if unsupported == nil {
					unsupported = err
				}
				continue
			}
			delete(b.inputs, def.Name)
			return nil, err
		}
		if f.Type.NonNull {
			required = append(required, len(fields))
		}
		fields = append(fields, inputField{name: f.Name, value: value})
	}
	if len(fields) == 0 {
		delete(b.inputs, def.Name)
		if unsupported != nil {
			return nil, unsupported
		}
		return nil, fmt.Errorf("input type %s has no usable fields", def.Name)
	}

	all := make([]int, len(fields))
	for i := range all {
		all[i] = i
	}
	inner := pickSet(all, required).FlatMap(func(v interface{}) gopter.Gen {
		idxs := v.([]int)
		gens := make([]gopter.Gen, len(idxs))
		for i, ix := range idxs {
			name := fields[ix].name
			gens[i] = translate(fields[ix].value, childValueType,
				func(v interface{}) interface{} {
					return &language.ChildValue{Name: name, Value: v.(*language.Value)}
				},
				func(v interface{}) interface{} {
					return v.(*language.ChildValue).Value
				})
		}
		return combine(gens, valueType,
			func(vals []interface{}) interface{} {
				children := make(language.ChildValueList, len(vals))
				for i, cv := range vals {
					children[i] = cv.(*language.ChildValue)
				}
				return &language.Value{Kind: language.ObjectValue, Children: children}
			},
			func(v interface{}) []interface{} {
				node := v.(*language.Value)
				vals := make([]interface{}, len(node.Children))
				for i, child := range node.Children {
					vals[i] = child
				}
				return vals
			})
	}, valueType)
	d.target = inner
	return inner, nil
}
