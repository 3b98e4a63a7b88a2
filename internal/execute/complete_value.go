package execute

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/kadenrun/gqlengine/internal/future"
	"github.com/kadenrun/gqlengine/internal/utils"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// AsyncIterator is the Go stand-in for a JavaScript asynchronous iterable
// resolver result: a pull-based sequence a resolver can return instead of a
// materialized slice, so that list items can be produced (and, under
// @stream, delivered) one at a time. Modeled on sql.Rows and the pull
// method a grpc.ClientStream exposes: call Next until it reports done or an
// error, and always Close when finished with it.
type AsyncIterator interface {
	Next(ctx context.Context) (value interface{}, done bool, err error)
	Close(ctx context.Context) error
}

// completeValue implements the "Value Completion" section: propagate
// Non-Null violations, pass through null, fan out list items, serialize
// leaves, resolve abstract types to a concrete object type, and recurse
// into sub-selections for objects. A non-nil returned error has already
// been appended to execCtx's error log; it signals to the caller that this
// value's slot (and, if returnType is Non-Null, the caller's own slot) must
// become null.
func completeValue(ctx context.Context, execCtx *ExecutionContext, returnType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, result interface{}) (interface{}, *gqlerror.Error) {
	if err, ok := result.(error); ok && err != nil {
		gErr := locatedError(err, fieldNodes, path)
		execCtx.AppendError(gErr)
		return nil, gErr
	}

	if f, ok := future.IsFuture(result); ok {
		v, err := f.Await()
		if err != nil {
			gErr := locatedError(err, fieldNodes, path)
			execCtx.AppendError(gErr)
			return nil, gErr
		}
		result = v
	}

	if returnType.NonNull {
		inner := *returnType
		inner.NonNull = false
		completed, err := completeValue(ctx, execCtx, &inner, fieldNodes, info, path, result)
		if err != nil {
			return nil, err
		}
		if completed == nil {
			gErr := gqlerror.ErrorPathf(path.AstPath(), "cannot return null for non-nullable field %s.%s", path.Typename(), path.FieldName())
			execCtx.AppendError(gErr)
			return nil, gErr
		}
		return completed, nil
	}

	if result == nil {
		return nil, nil
	}

	if returnType.Elem != nil {
		return completeListValue(ctx, execCtx, returnType, fieldNodes, info, path, result)
	}

	typeDef := execCtx.Schema.Types[returnType.NamedType]
	if typeDef == nil {
		gErr := gqlerror.ErrorPathf(path.AstPath(), `unknown type "%s" for field "%s"`, returnType.NamedType, path.FieldName())
		execCtx.AppendError(gErr)
		return nil, gErr
	}

	switch {
	case utils.IsLeafType(typeDef):
		v, cErr := serializeLeafValue(typeDef, result)
		if cErr != nil {
			gErr := locatedError(cErr, fieldNodes, path)
			execCtx.AppendError(gErr)
			return nil, gErr
		}
		return v, nil

	case utils.IsAbstractType(typeDef):
		return completeAbstractValue(ctx, execCtx, typeDef, fieldNodes, info, path, result)

	case utils.IsObjectType(typeDef):
		return completeObjectValue(ctx, execCtx, typeDef, fieldNodes, path, result)

	default:
		gErr := gqlerror.ErrorPathf(path.AstPath(), "cannot complete value of unexpected output type: %s", returnType.String())
		execCtx.AppendError(gErr)
		return nil, gErr
	}
}

// completeListValue completes each item of a synchronous slice
// concurrently, one goroutine per item, mirroring how the driver already
// runs sibling fields concurrently; items beyond an active @stream
// directive's initialCount are peeled off into registerStreamedTail
// instead. A resolver that returned an AsyncIterator is handled separately:
// completeAsyncIteratorValue drains it fully when no @stream is active,
// and completeStreamedAsyncIteratorValue (incremental.go's
// asyncStreamRecord) drives it incrementally when one is.
func completeListValue(ctx context.Context, execCtx *ExecutionContext, returnType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, result interface{}) (interface{}, *gqlerror.Error) {
	itemType := returnType.Elem

	streamAt, streaming, streamErr := extractStreamDirective(fieldNodes, execCtx.VariableValues)
	if streamErr != nil {
		gErr := locatedError(streamErr, fieldNodes, path)
		execCtx.AppendError(gErr)
		if iter, ok := result.(AsyncIterator); ok {
			iter.Close(ctx)
		}
		return nil, gErr
	}

	if iter, ok := result.(AsyncIterator); ok {
		if streaming {
			return completeStreamedAsyncIteratorValue(ctx, execCtx, itemType, fieldNodes, info, path, iter, streamAt)
		}
		return completeAsyncIteratorValue(ctx, execCtx, itemType, fieldNodes, info, path, iter)
	}

	if !utils.IsSlice(result) {
		gErr := gqlerror.ErrorPathf(path.AstPath(), `expected iterable, but did not find one for field "%s"`, path.FieldName())
		execCtx.AppendError(gErr)
		return nil, gErr
	}

	rv := reflect.ValueOf(result)
	n := rv.Len()

	if streaming && streamAt < n {
		initial, tail := splitForStream(rv, streamAt)
		completedInitial, err := completeListItemsSync(ctx, execCtx, itemType, fieldNodes, info, path, initial)
		if err != nil {
			return nil, err
		}
		registerStreamedTail(ctx, execCtx, itemType, fieldNodes, info, path, streamAt, tail)
		return completedInitial, nil
	}

	items := make([]interface{}, n)
	for i := 0; i < n; i++ {
		items[i] = rv.Index(i).Interface()
	}
	return completeListItemsSync(ctx, execCtx, itemType, fieldNodes, info, path, items)
}

func splitForStream(rv reflect.Value, at int) ([]interface{}, []interface{}) {
	initial := make([]interface{}, at)
	for i := 0; i < at; i++ {
		initial[i] = rv.Index(i).Interface()
	}
	tail := make([]interface{}, rv.Len()-at)
	for i := at; i < rv.Len(); i++ {
		tail[i-at] = rv.Index(i).Interface()
	}
	return initial, tail
}

// completeListItemsSync completes each item against itemType, absorbing a
// per-item error into a null slot when itemType is nullable and propagating
// it as the whole list's error only when itemType is Non-Null — the same
// absorb-or-bubble decision executeField makes for a top-level field, now
// applied item by item rather than once for the whole list.
func completeListItemsSync(ctx context.Context, execCtx *ExecutionContext, itemType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, items []interface{}) (interface{}, *gqlerror.Error) {
	out := make([]interface{}, len(items))
	var firstErr *gqlerror.Error
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		i, item := i, item
		go func() {
			defer wg.Done()
			itemPath := path.WithIndex(i)
			completed, err := completeValue(ctx, execCtx, itemType, fieldNodes, info, itemPath, item)
			if err != nil {
				if itemType.NonNull {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
				return
			}
			out[i] = completed
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// completeAsyncIteratorValue drains a non-streamed AsyncIterator fully
// before returning, since only the @stream code path is allowed to observe
// partial results; a resolver returning an AsyncIterator for a field with
// no active @stream directive simply gets fully materialized here.
func completeAsyncIteratorValue(ctx context.Context, execCtx *ExecutionContext, itemType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, iter AsyncIterator) (interface{}, *gqlerror.Error) {
	defer iter.Close(ctx)

	var items []interface{}
	index := 0
	for {
		value, done, err := iter.Next(ctx)
		if err != nil {
			gErr := locatedError(err, fieldNodes, path.WithIndex(index))
			execCtx.AppendError(gErr)
			return nil, gErr
		}
		if done {
			break
		}
		items = append(items, value)
		index++
	}
	return completeListItemsSync(ctx, execCtx, itemType, fieldNodes, info, path, items)
}

// completeStreamedAsyncIteratorValue implements the list-completion branch
// for a resolver that returned an AsyncIterator under an active @stream
// directive: it pulls initialCount items synchronously for the initial
// payload the same way the materialized-slice path does, then hands the
// rest to an asyncStreamRecord that polls iter for one item at a time in
// the background, since the source's remaining length isn't known up
// front the way a materialized list's tail is.
func completeStreamedAsyncIteratorValue(ctx context.Context, execCtx *ExecutionContext, itemType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, iter AsyncIterator, initialCount int) (interface{}, *gqlerror.Error) {
	var initial []interface{}
	for len(initial) < initialCount {
		value, done, err := iter.Next(ctx)
		if err != nil {
			gErr := locatedError(err, fieldNodes, path.WithIndex(len(initial)))
			execCtx.AppendError(gErr)
			iter.Close(ctx)
			return nil, gErr
		}
		if done {
			break
		}
		initial = append(initial, value)
	}

	completedInitial, err := completeListItemsSync(ctx, execCtx, itemType, fieldNodes, info, path, initial)
	if err != nil {
		iter.Close(ctx)
		return nil, err
	}

	rec := newAsyncStreamRecord(ctx, execCtx, itemType, fieldNodes, info, path, iter, len(initial))
	execCtx.addSource(rec)
	return completedInitial, nil
}

// completeAbstractValue resolves the runtime object type for an interface
// or union value and completes the value as that concrete object type.
func completeAbstractValue(ctx context.Context, execCtx *ExecutionContext, returnType *ast.Definition, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, result interface{}) (interface{}, *gqlerror.Error) {
	runtimeTypeName, err := execCtx.TypeResolver(ctx, result, info, returnType)
	if err != nil {
		gErr := locatedError(err, fieldNodes, path)
		execCtx.AppendError(gErr)
		return nil, gErr
	}

	runtimeType, gErr := ensureValidRuntimeType(execCtx.Schema, runtimeTypeName, returnType, fieldNodes, path)
	if gErr != nil {
		execCtx.AppendError(gErr)
		return nil, gErr
	}

	return completeObjectValue(ctx, execCtx, runtimeType, fieldNodes, path, result)
}

func ensureValidRuntimeType(schema *ast.Schema, runtimeTypeName string, returnType *ast.Definition, fieldNodes []*ast.Field, path *Path) (*ast.Definition, *gqlerror.Error) {
	if runtimeTypeName == "" {
		return nil, gqlerror.ErrorPathf(path.AstPath(), `abstract type "%s" must resolve to an object type at runtime for field "%s"`, returnType.Name, path.FieldName())
	}
	runtimeType, ok := schema.Types[runtimeTypeName]
	if !ok {
		return nil, gqlerror.ErrorPathf(path.AstPath(), `abstract type "%s" was resolved to a type "%s" that does not exist inside the schema`, returnType.Name, runtimeTypeName)
	}
	if runtimeType.Kind != ast.Object {
		return nil, gqlerror.ErrorPathf(path.AstPath(), `abstract type "%s" was resolved to a non-object type "%s"`, returnType.Name, runtimeTypeName)
	}
	if !utils.IsTypeDefSubTypeOf(schema, runtimeType, returnType) {
		return nil, gqlerror.ErrorPathf(path.AstPath(), `runtime object type "%s" is not a possible type for "%s"`, runtimeType.Name, returnType.Name)
	}
	return runtimeType, nil
}

// completeObjectValue collects and executes the sub-selection set against
// the concrete object type, folding in any @defer'd fragments as
// registered incremental payloads rather than fields of the immediate
// result.
func completeObjectValue(ctx context.Context, execCtx *ExecutionContext, returnType *ast.Definition, fieldNodes []*ast.Field, path *Path, result interface{}) (interface{}, *gqlerror.Error) {
	mergedSelectionSet := mergeSelectionSets(fieldNodes)
	subFields, deferred := execCtx.memoizedCollect(returnType, fieldNodes, mergedSelectionSet)

	objectValue, gErr := executeFields(ctx, execCtx, returnType, result, path, subFields)
	if gErr != nil {
		return nil, gErr
	}

	for _, frag := range deferred {
		registerDeferredFragment(ctx, execCtx, returnType, result, path, frag)
	}

	return objectValue, nil
}

// mergeSelectionSets flattens the selection sets of every field node that
// share a response name, which is necessary once fragments have introduced
// more than one field node for what will become a single sub-object.
func mergeSelectionSets(fieldNodes []*ast.Field) ast.SelectionSet {
	var merged ast.SelectionSet
	for _, node := range fieldNodes {
		merged = append(merged, node.SelectionSet...)
	}
	return merged
}

// serializeLeafValue coerces a resolver's raw result into the shape the
// GraphQL response format requires for a Scalar or Enum type.
func serializeLeafValue(typeDef *ast.Definition, result interface{}) (interface{}, error) {
	if typeDef.Kind == ast.Enum {
		s, ok := result.(string)
		if !ok {
			if str, ok := result.(fmt.Stringer); ok {
				s = str.String()
			} else {
				return nil, fmt.Errorf("enum %s cannot serialize value: %v (%T)", typeDef.Name, result, result)
			}
		}
		for _, v := range typeDef.EnumValues {
			if v.Name == s {
				return s, nil
			}
		}
		return nil, fmt.Errorf("enum %s does not contain value: %s", typeDef.Name, s)
	}

	switch typeDef.Name {
	case "Int":
		return coerceToInt(result)
	case "Float":
		return coerceToFloat(result)
	case "String":
		return coerceToString(result)
	case "Boolean":
		return coerceToBoolean(result)
	case "ID":
		return coerceToID(result)
	default:
		return result, nil
	}
}
