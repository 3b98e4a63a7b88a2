// Package execute implements the "Executing Requests" section of the
// GraphQL specification: given a validated document and a root value, walk
// the selection set, dispatch each field to a resolver, complete the
// result against its declared type, and assemble a response — serially
// for mutation root fields, concurrently for everything else — while
// honoring @defer and @stream by peeling the marked fragments and list
// tails off into a SubsequentIterator instead of blocking the initial
// response on them.
package execute

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/go-logr/logr"
	gqlgraphql "github.com/kadenrun/gqlengine/internal/graphql"
	"github.com/kadenrun/gqlengine/internal/log"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Execute runs one operation to completion. The returned ExecutionResult is
// always the initial payload; when the operation used @defer or @stream,
// the returned SubsequentIterator yields the rest — callers that don't
// care about incremental delivery can simply ignore a non-nil iterator and
// the deferred work still completes on its own goroutines (though nothing
// reads it if they do, so see ExecuteSync for a caller that wants to wait
// on it).
//
// A non-nil error here means the arguments themselves were unusable (a
// missing schema or document). An unknown operation or a variables object
// that could not be coerced comes back as a result with Errors set and no
// data key; once execution starts, every error encountered is folded into
// the result's Errors list: a request only ever resolves to errors through
// the response, never a rejection.
func Execute(ctx context.Context, args *ExecutionArgs) (*ExecutionResult, *SubsequentIterator, error) {
	logger := log.FromContext(ctx)

	if err := assertValidExecutionArguments(args.Schema, args.Document, args.VariableValues); err != nil {
		logger.Error(err, "invalid execution arguments")
		return nil, nil, err
	}

	execCtx, gErrs := buildExecutionContext(args)
	if len(gErrs) != 0 {
		logger.Error(gErrs[0], "failed to build execution context", "errorCount", len(gErrs))
		return requestErrorResult(gErrs), nil, nil
	}

	data, _ := executeOperation(ctx, execCtx, execCtx.Operation, execCtx.RootValue)

	iterator := execCtx.attachIterator()

	om, _ := data.(*OrderedMap)
	result := &ExecutionResult{
		Data:    om,
		Errors:  execCtx.Errors(),
		HasNext: iterator != nil,
	}
	return result, iterator, nil
}

// ExecuteSync runs Execute and then drains any incremental payloads into a
// single merged result, for callers (tests, a non-streaming transport)
// that have no use for partial delivery and would rather block until the
// whole response — defers and streams included — is ready.
func ExecuteSync(ctx context.Context, args *ExecutionArgs) (*ExecutionResult, error) {
	result, iterator, err := Execute(ctx, args)
	if err != nil {
		return nil, err
	}
	if iterator == nil {
		return result, nil
	}

	for {
		payload, hasNext := iterator.Next()
		if payload != nil {
			mergeIncrementalPayload(result, payload)
		}
		if !hasNext {
			break
		}
	}
	result.HasNext = false
	return result, nil
}

// mergeIncrementalPayload folds a deferred/streamed payload back into the
// initial result in place, for ExecuteSync's non-incremental callers. A
// @defer patch's path addresses the object the deferred fragment's fields
// belong to, not a fresh value to replace it with, so when the slot
// already holds an *OrderedMap its keys are merged in rather than
// overwritten; a @stream patch's path addresses a single list item, which
// has nothing to merge into and is set directly.
func mergeIncrementalPayload(result *ExecutionResult, payload *IncrementalPayload) {
	result.Errors = append(result.Errors, payload.Errors...)

	if result.Data == nil {
		return
	}
	container, key := navigateToContainer(result.Data, payload.Path)
	if container == nil {
		return
	}

	switch c := container.(type) {
	case *OrderedMap:
		name, ok := key.(string)
		if !ok {
			return
		}
		if existing, ok := c.Get(name); ok {
			if existingMap, ok := existing.(*OrderedMap); ok {
				if patchMap, ok := payload.Data.(*OrderedMap); ok {
					mergeOrderedMapInto(existingMap, patchMap)
					return
				}
			}
		}
		c.Set(name, payload.Data)

	case []interface{}:
		idx, ok := key.(int)
		if !ok || idx < 0 {
			return
		}
		if idx == len(c) {
			// A @stream patch addressing the index immediately past the
			// initial prefix: the list as assembled at that path is only
			// as long as initialCount, so grow it and write the grown
			// slice back into whatever slot holds it.
			grown := append(c, payload.Data)
			setContainerSlot(result.Data, payload.Path[:len(payload.Path)-1], grown)
			return
		}
		if idx >= len(c) {
			return
		}
		if existingMap, ok := c[idx].(*OrderedMap); ok {
			if patchMap, ok := payload.Data.(*OrderedMap); ok {
				mergeOrderedMapInto(existingMap, patchMap)
				return
			}
		}
		c[idx] = payload.Data
	}
}

// mergeOrderedMapInto copies src's entries into dst, in src's key order,
// overwriting any key dst already has.
func mergeOrderedMapInto(dst, src *OrderedMap) {
	for _, k := range src.Keys() {
		v, _ := src.Get(k)
		dst.Set(k, v)
	}
}

// setContainerSlot writes value into the slot addressed by parentPath,
// the same navigation navigateToContainer performs one level shallower
// than the slot that needed to grow.
func setContainerSlot(root *OrderedMap, parentPath []interface{}, value interface{}) {
	container, key := navigateToContainer(root, parentPath)
	if container == nil {
		return
	}
	switch c := container.(type) {
	case *OrderedMap:
		if name, ok := key.(string); ok {
			c.Set(name, value)
		}
	case []interface{}:
		if idx, ok := key.(int); ok && idx >= 0 && idx < len(c) {
			c[idx] = value
		}
	}
}

// navigateToContainer walks path (all but its last segment) from data and
// returns the container the last segment addresses, plus that last
// segment, so the caller can assign into it.
func navigateToContainer(data *OrderedMap, path []interface{}) (interface{}, interface{}) {
	if len(path) == 0 {
		return nil, nil
	}
	var current interface{} = data
	for _, seg := range path[:len(path)-1] {
		switch c := current.(type) {
		case *OrderedMap:
			v, ok := c.Get(seg.(string))
			if !ok {
				return nil, nil
			}
			current = v
		case []interface{}:
			idx, ok := seg.(int)
			if !ok || idx >= len(c) {
				return nil, nil
			}
			current = c[idx]
		default:
			return nil, nil
		}
	}
	return current, path[len(path)-1]
}

// executeOperation implements the "Executing operations" section: pick the
// root type for the operation kind, collect its top-level fields, and run
// them serially for a mutation or concurrently otherwise.
func executeOperation(ctx context.Context, execCtx *ExecutionContext, operation *ast.OperationDefinition, rootValue interface{}) (interface{}, *gqlerror.Error) {
	var typ *ast.Definition
	var rootErr *gqlerror.Error
	switch operation.Operation {
	case ast.Query:
		typ = execCtx.Schema.Query
		if typ == nil {
			rootErr = gqlerror.ErrorPosf(operation.Position, "schema does not define the required query root type")
		}
	case ast.Mutation:
		typ = execCtx.Schema.Mutation
		if typ == nil {
			rootErr = gqlerror.ErrorPosf(operation.Position, "schema is not configured for mutations")
		}
	case ast.Subscription:
		typ = execCtx.Schema.Subscription
		if typ == nil {
			rootErr = gqlerror.ErrorPosf(operation.Position, "schema is not configured for subscriptions")
		}
	default:
		rootErr = gqlerror.ErrorPosf(operation.Position, "can only have query, mutation and subscription operations")
	}
	if rootErr != nil {
		execCtx.AppendError(rootErr)
		return nil, rootErr
	}

	rootPath := (*Path)(nil)
	fields, deferred := execCtx.memoizedCollect(typ, rootFieldNodesFor(operation), operation.SelectionSet)

	var data interface{}
	var gErr *gqlerror.Error
	if operation.Operation == ast.Mutation {
		data, gErr = executeFieldsSerially(ctx, execCtx, typ, rootValue, rootPath, fields)
	} else {
		data, gErr = executeFields(ctx, execCtx, typ, rootValue, rootPath, fields)
	}

	for _, frag := range deferred {
		registerDeferredFragment(ctx, execCtx, typ, rootValue, rootPath, frag)
	}

	return data, gErr
}

// rootFieldNodesFor synthesizes a single-element field-node slice to key
// the top-level memoization cache entry by, since the operation itself has
// no enclosing *ast.Field the way every other selection set does.
func rootFieldNodesFor(operation *ast.OperationDefinition) []*ast.Field {
	return []*ast.Field{{Position: operation.Position}}
}

// executeFieldsSerially implements "Executing selection sets" for fields
// that must run in document order, one at a time: mutation root fields,
// so that side effects are observed in the order the client wrote them.
func executeFieldsSerially(ctx context.Context, execCtx *ExecutionContext, parentType *ast.Definition, sourceValue interface{}, path *Path, fields *GroupedFieldSet) (interface{}, *gqlerror.Error) {
	result := newOrderedMap(fields.Len())
	for _, responseName := range fields.ResponseNames() {
		fieldNodes := fields.Get(responseName)
		fieldPath := path.WithField(responseName, parentType.Name)

		value, err := executeField(ctx, execCtx, parentType, sourceValue, fieldNodes, fieldPath)
		if err != nil {
			return nil, err
		}
		result.Set(responseName, value)
	}
	return result, nil
}

// executeFields implements "Executing selection sets" for fields that may
// run concurrently: one goroutine per field, mirroring how a Promise.all
// over each field's resolution would behave in the reference algorithm.
func executeFields(ctx context.Context, execCtx *ExecutionContext, parentType *ast.Definition, sourceValue interface{}, path *Path, fields *GroupedFieldSet) (interface{}, *gqlerror.Error) {
	names := fields.ResponseNames()
	values := make([]interface{}, len(names))
	var firstErr atomic.Value // *gqlerror.Error

	var wg sync.WaitGroup
	wg.Add(len(names))
	for i, responseName := range names {
		i, responseName := i, responseName
		go func() {
			defer wg.Done()
			fieldNodes := fields.Get(responseName)
			fieldPath := path.WithField(responseName, parentType.Name)

			value, err := executeField(ctx, execCtx, parentType, sourceValue, fieldNodes, fieldPath)
			if err != nil {
				firstErr.CompareAndSwap(nil, err)
				return
			}
			values[i] = value
		}()
	}
	wg.Wait()

	if e, ok := firstErr.Load().(*gqlerror.Error); ok && e != nil {
		return nil, e
	}

	result := newOrderedMap(len(names))
	for i, name := range names {
		result.Set(name, values[i])
	}
	return result, nil
}

// callFieldResolver invokes the configured FieldResolver with a recover
// guard around it, so a panicking resolver fails only the field it belongs
// to instead of taking down the whole request; the recovered value is
// logged at the default level and turned into the same kind of error a
// resolver returning one directly would have produced.
func callFieldResolver(ctx context.Context, execCtx *ExecutionContext, logger logr.Logger, source interface{}, args map[string]interface{}, info *ResolveInfo) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(nil, "field resolver panicked", "parentType", info.ParentType.Name, "field", info.FieldName, "path", info.Path.AsList(), "recovered", r)
			err = gqlerror.Errorf("field resolver panicked: %v", r)
		}
	}()
	return execCtx.FieldResolver(ctx, source, args, info)
}

// executeField implements "Executing field": dispatch to the resolver,
// then complete the result against the field's declared type. The
// returned error is non-nil only when the field's own type is Non-Null and
// it ended up null, signaling that the object containing it must itself
// become null.
func executeField(ctx context.Context, execCtx *ExecutionContext, parentType *ast.Definition, source interface{}, fieldNodes []*ast.Field, path *Path) (interface{}, *gqlerror.Error) {
	fieldNode := fieldNodes[0]
	fieldDef := findFieldDef(execCtx.Schema, parentType, fieldNode.Name)
	if fieldDef == nil {
		return nil, nil
	}

	info := &ResolveInfo{
		FieldName:      fieldDef.Name,
		FieldNodes:     fieldNodes,
		ReturnType:     fieldDef.Type,
		ParentType:     parentType,
		Path:           path,
		Schema:         execCtx.Schema,
		Fragments:      execCtx.Fragments,
		RootValue:      execCtx.RootValue,
		Operation:      execCtx.Operation,
		VariableValues: execCtx.VariableValues,
	}

	args := coerceArgumentValues(execCtx, fieldDef, fieldNode, path)

	logger := log.FromContext(ctx)

	var result interface{}
	var err error
	switch fieldDef {
	case typenameMetaFieldDef:
		result = parentType.Name
	case schemaMetaFieldDef:
		result = gqlgraphql.SchemaIntrospectionValue(execCtx.Schema)
	case typeMetaFieldDef:
		name, _ := args["name"].(string)
		if v := gqlgraphql.TypeIntrospectionValue(execCtx.Schema, name); v != nil {
			result = v
		}
	default:
		logger.V(1).Info("dispatching field resolver", "parentType", parentType.Name, "field", fieldDef.Name, "path", path.AsList())
		result, err = callFieldResolver(ctx, execCtx, logger, source, args, info)
	}
	if err != nil {
		gErr := locatedError(err, fieldNodes, path)
		logger.Error(err, "field resolver failed", "parentType", parentType.Name, "field", fieldDef.Name, "path", path.AsList())
		execCtx.AppendError(gErr)
		if fieldDef.Type.NonNull {
			return nil, gErr
		}
		return nil, nil
	}

	completed, cErr := completeValue(ctx, execCtx, fieldDef.Type, fieldNodes, info, path, result)
	if cErr != nil {
		if fieldDef.Type.NonNull {
			return nil, cErr
		}
		return nil, nil
	}
	return completed, nil
}
