package execute

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// TestExecuteFieldsSerially_MutationRootFieldsRunInDocumentOrder exercises
// the one path nothing else in this package reaches: a mutation operation's
// root fields must be dispatched one at a time, in document order, rather
// than concurrently the way a query's or subscription's root fields are
// (executeFields). A resolver that tracks how many of its own kind are
// in flight at once catches a regression to the concurrent path directly,
// rather than relying on timing alone.
func TestExecuteFieldsSerially_MutationRootFieldsRunInDocumentOrder(t *testing.T) {
	schemaDoc, gErr := parser.ParseSchemas(validator.Prelude, &ast.Source{
		Name: "mutation.graphqls",
		Input: `
			type Mutation {
				first: Int!
				second: Int!
				third: Int!
			}
			type Query {
				noop: Int
			}
		`,
	})
	require.Nil(t, gErr)
	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	require.Nil(t, gErr)

	document, gErr := parser.ParseQuery(&ast.Source{
		Name:  "mutation.graphql",
		Input: `mutation { first second third }`,
	})
	require.Nil(t, gErr)
	require.Empty(t, validator.Validate(schema, document))

	var mu sync.Mutex
	var order []string
	var inFlight int32
	var maxInFlight int32

	resolver := func(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			max := atomic.LoadInt32(&maxInFlight)
			if n <= max || atomic.CompareAndSwapInt32(&maxInFlight, max, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)

		mu.Lock()
		order = append(order, info.FieldName)
		mu.Unlock()
		return 1, nil
	}

	result, err := ExecuteSync(context.Background(), &ExecutionArgs{
		Schema:        schema,
		Document:      document,
		FieldResolver: resolver,
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	require.Equal(t, []string{"first", "second", "third"}, order)
	require.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}
