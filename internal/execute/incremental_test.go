package execute

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/kadenrun/gqlengine/internal/graphql"
)

func parseStreamedFieldNode(t *testing.T, initialCount string) []*ast.Field {
	schemaDoc, gErr := parser.ParseSchemas(validator.Prelude, &ast.Source{
		Name:  "stream.graphqls",
		Input: `type Query { items: [Int!]! }`,
	})
	require.Nil(t, gErr)
	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	require.Nil(t, gErr)
	graphql.RegisterIncrementalDirectives(schema)

	document, gErr := parser.ParseQuery(&ast.Source{
		Name:  "stream.graphql",
		Input: `query { items @stream(initialCount: ` + initialCount + `) }`,
	})
	require.Nil(t, gErr)
	require.Empty(t, validator.Validate(schema, document))

	return []*ast.Field{document.Operations[0].SelectionSet[0].(*ast.Field)}
}

func TestExtractStreamDirective_NegativeInitialCount_IsAnError(t *testing.T) {
	fieldNodes := parseStreamedFieldNode(t, "-1")

	_, ok, err := extractStreamDirective(fieldNodes, nil)
	require.True(t, ok)
	require.Error(t, err)
}

func TestExtractStreamDirective_NonNegativeInitialCount_NoError(t *testing.T) {
	fieldNodes := parseStreamedFieldNode(t, "2")

	initialCount, ok, err := extractStreamDirective(fieldNodes, nil)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, 2, initialCount)
}

func TestExtractStreamDirective_NoDirective_NotApplicable(t *testing.T) {
	schemaDoc, gErr := parser.ParseSchemas(validator.Prelude, &ast.Source{
		Name:  "plain.graphqls",
		Input: `type Query { items: [Int!]! }`,
	})
	require.Nil(t, gErr)
	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	require.Nil(t, gErr)

	document, gErr := parser.ParseQuery(&ast.Source{Name: "plain.graphql", Input: `query { items }`})
	require.Nil(t, gErr)
	require.Empty(t, validator.Validate(schema, document))

	fieldNodes := []*ast.Field{document.Operations[0].SelectionSet[0].(*ast.Field)}
	_, ok, err := extractStreamDirective(fieldNodes, nil)
	require.False(t, ok)
	require.NoError(t, err)
}
