// Package language is a thin facade over gqlparser: loading schemas,
// parsing operation documents, printing and validating them.
package language

import (
	"bytes"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// LoadSchema builds a validated schema from SDL source text.
func LoadSchema(source string) (*Schema, error) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: source})
	if err != nil {
		return nil, err
	}
	return schema, nil
}

// ParseQuery parses an executable document without validating it.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FormatQueryDocument renders a query document back to its textual form.
func FormatQueryDocument(doc *QueryDocument) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatQueryDocument(doc)
	return buf.String()
}

// ValidateQuery checks an executable document against a schema.
func ValidateQuery(schema *Schema, doc *QueryDocument) error {
	if errs := validator.Validate(schema, doc); len(errs) > 0 {
		return errs
	}
	return nil
}
