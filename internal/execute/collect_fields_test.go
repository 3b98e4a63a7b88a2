package execute

import (
	"testing"

	"github.com/kadenrun/gqlengine/internal/graphql"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func bookType() *ast.Definition {
	return &ast.Definition{Kind: ast.Object, Name: "Book"}
}

func TestCollectFields_SkipDirective(t *testing.T) {
	execCtx := &ExecutionContext{VariableValues: map[string]interface{}{}}
	typ := bookType()

	selectionSet := ast.SelectionSet{
		&ast.Field{Name: "title"},
		&ast.Field{
			Name: "id",
			Directives: ast.DirectiveList{
				{Name: "skip", Definition: graphql.GraphQLSkipDirective, Arguments: ast.ArgumentList{
					{Name: "if", Value: &ast.Value{Kind: ast.BooleanValue, Raw: "true"}},
				}},
			},
		},
	}

	fields, deferred := CollectFields(execCtx, typ, selectionSet)
	require.Empty(t, deferred)
	require.Equal(t, []string{"title"}, fields.ResponseNames())
}

func TestCollectFields_Alias(t *testing.T) {
	execCtx := &ExecutionContext{VariableValues: map[string]interface{}{}}
	typ := bookType()

	selectionSet := ast.SelectionSet{
		&ast.Field{Name: "title", Alias: "bookTitle"},
	}

	fields, _ := CollectFields(execCtx, typ, selectionSet)
	require.Equal(t, []string{"bookTitle"}, fields.ResponseNames())
	require.Len(t, fields.Get("bookTitle"), 1)
}

func TestCollectFields_InlineFragmentTypeConditionMismatch(t *testing.T) {
	execCtx := &ExecutionContext{
		VariableValues: map[string]interface{}{},
		Schema: &ast.Schema{
			Types: map[string]*ast.Definition{
				"Book":   bookType(),
				"Author": {Kind: ast.Object, Name: "Author"},
			},
		},
	}
	typ := execCtx.Schema.Types["Book"]

	selectionSet := ast.SelectionSet{
		&ast.InlineFragment{
			TypeCondition: "Author",
			SelectionSet:  ast.SelectionSet{&ast.Field{Name: "name"}},
		},
	}

	fields, deferred := CollectFields(execCtx, typ, selectionSet)
	require.Empty(t, deferred)
	require.Empty(t, fields.ResponseNames())
}

func TestCollectFields_DeferredInlineFragmentIsExtracted(t *testing.T) {
	execCtx := &ExecutionContext{
		VariableValues: map[string]interface{}{},
		Schema: &ast.Schema{
			Types: map[string]*ast.Definition{"Book": bookType()},
		},
	}
	typ := execCtx.Schema.Types["Book"]

	selectionSet := ast.SelectionSet{
		&ast.Field{Name: "id"},
		&ast.InlineFragment{
			TypeCondition: "Book",
			Directives: ast.DirectiveList{
				{Name: "defer", Definition: graphql.GraphQLDeferDirective, Arguments: ast.ArgumentList{
					{Name: "label", Value: &ast.Value{Kind: ast.StringValue, Raw: "detail"}},
				}},
			},
			SelectionSet: ast.SelectionSet{&ast.Field{Name: "title"}},
		},
	}

	fields, deferred := CollectFields(execCtx, typ, selectionSet)
	require.Equal(t, []string{"id"}, fields.ResponseNames())
	require.Len(t, deferred, 1)
	require.Equal(t, "detail", deferred[0].Label)
	require.Equal(t, []string{"title"}, deferred[0].Fields.ResponseNames())
}
