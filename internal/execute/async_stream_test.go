package execute

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/kadenrun/gqlengine/internal/graphql"
)

// sliceAsyncIterator is a minimal AsyncIterator over an in-memory slice, for
// exercising the streamed-AsyncIterator driver without needing a real
// channel-backed producer.
type sliceAsyncIterator struct {
	items  []interface{}
	index  int
	closed int32
}

func (it *sliceAsyncIterator) Next(ctx context.Context) (interface{}, bool, error) {
	if it.index >= len(it.items) {
		return nil, true, nil
	}
	v := it.items[it.index]
	it.index++
	return v, false, nil
}

func (it *sliceAsyncIterator) Close(ctx context.Context) error {
	atomic.AddInt32(&it.closed, 1)
	return nil
}

func buildStreamingSchemaAndDocument(t *testing.T, query string) (*ast.Schema, *ast.QueryDocument) {
	schemaDoc, gErr := parser.ParseSchemas(validator.Prelude, &ast.Source{
		Name:  "stream.graphqls",
		Input: `type Query { items: [Int!]! }`,
	})
	require.Nil(t, gErr)
	schema, gErr := validator.ValidateSchemaDocument(schemaDoc)
	require.Nil(t, gErr)
	graphql.RegisterIncrementalDirectives(schema)

	document, gErr := parser.ParseQuery(&ast.Source{Name: "stream.graphql", Input: query})
	require.Nil(t, gErr)
	require.Empty(t, validator.Validate(schema, document))

	return schema, document
}

func TestCompleteStreamedAsyncIteratorValue_DeliversEveryItemInOrder(t *testing.T) {
	schema, document := buildStreamingSchemaAndDocument(t, `query { items @stream(initialCount: 1) }`)

	iter := &sliceAsyncIterator{items: []interface{}{1, 2, 3, 4}}
	resolver := func(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error) {
		return iter, nil
	}

	result, err := ExecuteSync(context.Background(), &ExecutionArgs{
		Schema:        schema,
		Document:      document,
		FieldResolver: resolver,
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	v, ok := result.Data.Get("items")
	require.True(t, ok)
	require.Equal(t, []interface{}{1, 2, 3, 4}, v)
	require.Equal(t, int32(1), atomic.LoadInt32(&iter.closed), "a cleanly exhausted iterator is closed exactly once")
}

func TestCompleteStreamedAsyncIteratorValue_ErrorSurfacesAsFinalPayload(t *testing.T) {
	schema, document := buildStreamingSchemaAndDocument(t, `query { items @stream(initialCount: 0) }`)

	iter := &erroringAsyncIterator{sliceAsyncIterator: sliceAsyncIterator{items: []interface{}{1}}, failAt: 1}
	resolver := func(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error) {
		return iter, nil
	}

	result, err := ExecuteSync(context.Background(), &ExecutionArgs{
		Schema:        schema,
		Document:      document,
		FieldResolver: resolver,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors)
}

// erroringAsyncIterator fails on its second pull, after already having
// delivered one real item, so the error lands on the asyncStreamRecord's
// background driver rather than the synchronous initial pull.
type erroringAsyncIterator struct {
	sliceAsyncIterator
	failAt int
	pulls  int
}

func (it *erroringAsyncIterator) Next(ctx context.Context) (interface{}, bool, error) {
	it.pulls++
	if it.pulls > it.failAt {
		return nil, false, fmt.Errorf("boom")
	}
	return it.sliceAsyncIterator.Next(ctx)
}

func TestSubsequentIterator_Return_CancelsPendingAsyncIterator(t *testing.T) {
	schema, document := buildStreamingSchemaAndDocument(t, `query { items @stream(initialCount: 0) }`)

	iter := &blockingAsyncIterator{pulled: make(chan struct{}, 1), block: make(chan struct{})}
	resolver := func(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error) {
		return iter, nil
	}

	result, subsequent, err := Execute(context.Background(), &ExecutionArgs{
		Schema:        schema,
		Document:      document,
		FieldResolver: resolver,
	})
	require.NoError(t, err)
	require.True(t, result.HasNext)
	require.NotNil(t, subsequent)

	<-iter.pulled // wait for the background driver to have registered its first pull

	subsequent.Return()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&iter.closed) == 1
	}, time.Second, time.Millisecond, "Return must ask the pending AsyncIterator to close exactly once")
}

// blockingAsyncIterator never completes its first pull on its own, so the
// only way TestSubsequentIterator_Return_CancelsPendingAsyncIterator's
// asyncStreamRecord ever settles is through Close unblocking it.
type blockingAsyncIterator struct {
	pulled chan struct{}
	closed int32
	block  chan struct{}
}

func (it *blockingAsyncIterator) Next(ctx context.Context) (interface{}, bool, error) {
	select {
	case it.pulled <- struct{}{}:
	default:
	}
	<-it.block
	return nil, true, nil
}

func (it *blockingAsyncIterator) Close(ctx context.Context) error {
	atomic.AddInt32(&it.closed, 1)
	select {
	case <-it.block:
	default:
		close(it.block)
	}
	return nil
}
