package execute

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/kadenrun/gqlengine/internal/graphql"
)

// TestRegisterDeferredFragment_NestedDeferWaitsForParent exercises the one
// property accidental goroutine scheduling cannot be trusted to produce on
// its own: a nested @defer's payload must never be observed settling
// before its parent's. The parent fragment's own field is made slow and
// the nested fragment's field fast, which is exactly the ordering that
// would expose a missing happens-before edge between the two — without one,
// the fast nested payload would very likely settle first.
func TestRegisterDeferredFragment_NestedDeferWaitsForParent(t *testing.T) {
	schemaDoc, gErr := parser.ParseSchemas(validator.Prelude, &ast.Source{
		Name: "nested_defer.graphqls",
		Input: `
			type Query { book: Book }
			type Book { id: ID! title: String! author: String! }
		`,
	})
	require.Nil(t, gErr)
	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	require.Nil(t, gErr)
	graphql.RegisterIncrementalDirectives(schema)

	document, gErr := parser.ParseQuery(&ast.Source{
		Name: "nested_defer.graphql",
		Input: `
			query {
				book {
					id
					... @defer(label: "outer") {
						title
						... @defer(label: "inner") {
							author
						}
					}
				}
			}
		`,
	})
	require.Nil(t, gErr)
	require.Empty(t, validator.Validate(schema, document))

	resolver := func(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error) {
		switch {
		case info.ParentType.Name == "Query" && info.FieldName == "book":
			return map[string]interface{}{"id": "b1"}, nil
		case info.FieldName == "title":
			time.Sleep(30 * time.Millisecond)
			return "Dune", nil
		case info.FieldName == "author":
			return "Frank Herbert", nil
		}
		return nil, nil
	}

	result, subsequent, err := Execute(context.Background(), &ExecutionArgs{
		Schema:        schema,
		Document:      document,
		FieldResolver: resolver,
	})
	require.NoError(t, err)
	require.NotNil(t, subsequent)
	require.True(t, result.HasNext)

	var labels []string
	for {
		payload, hasNext := subsequent.Next()
		if payload != nil {
			labels = append(labels, payload.Label)
		}
		if !hasNext {
			break
		}
	}

	require.Equal(t, []string{"outer", "inner"}, labels)
}
