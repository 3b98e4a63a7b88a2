package execute

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func intScalar() *ast.Definition {
	return &ast.Definition{Kind: ast.Scalar, Name: "Int"}
}

func TestCoerceValue_Scalar(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"Int": intScalar()}}

	v, err := coerceValue(schema, float64(42), &ast.Type{NamedType: "Int"}, intScalar())
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestCoerceValue_ScalarTypeMismatch(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"Int": intScalar()}}

	_, err := coerceValue(schema, "not an int", &ast.Type{NamedType: "Int"}, intScalar())
	require.Error(t, err)
}

func TestCoerceValue_NonNullRejectsNull(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"Int": intScalar()}}

	_, err := coerceValue(schema, nil, &ast.Type{NamedType: "Int", NonNull: true}, intScalar())
	require.Error(t, err)
}

func TestCoerceValue_ListOfScalars(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"Int": intScalar()}}
	listType := &ast.Type{Elem: &ast.Type{NamedType: "Int"}}

	v, err := coerceValue(schema, []interface{}{float64(1), float64(2), float64(3)}, listType, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{1, 2, 3}, v)
}

func TestCoerceValue_BareValueCoercedToSingletonList(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"Int": intScalar()}}
	listType := &ast.Type{Elem: &ast.Type{NamedType: "Int"}}

	v, err := coerceValue(schema, float64(7), listType, nil)
	require.NoError(t, err)
	require.Equal(t, []interface{}{7}, v)
}

func TestCoerceVariableValues_MissingRequiredVariable(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"String": {Kind: ast.Scalar, Name: "String"}}}
	operation := &ast.OperationDefinition{
		VariableDefinitions: ast.VariableDefinitionList{
			{Variable: "name", Type: &ast.Type{NamedType: "String", NonNull: true}},
		},
	}

	_, errs := coerceVariableValues(schema, operation, map[string]interface{}{})
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, `"$name"`)
}

func TestCoerceVariableValues_DefaultValueFillsMissing(t *testing.T) {
	schema := &ast.Schema{Types: map[string]*ast.Definition{"Int": intScalar()}}
	operation := &ast.OperationDefinition{
		VariableDefinitions: ast.VariableDefinitionList{
			{
				Variable:     "limit",
				Type:         &ast.Type{NamedType: "Int"},
				DefaultValue: &ast.Value{Raw: "10", Kind: ast.IntValue},
			},
		},
	}

	coerced, errs := coerceVariableValues(schema, operation, map[string]interface{}{})
	require.Empty(t, errs)
	require.Equal(t, int64(10), coerced["limit"])
}
