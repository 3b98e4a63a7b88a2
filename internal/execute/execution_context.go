package execute

import (
	"context"
	"sync"

	"github.com/kadenrun/gqlengine/internal/incremental"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// FieldResolver resolves a single field's value. args have already been
// coerced against the field's argument definitions; info is a read-only
// snapshot of the current invocation. A returned error is treated as a
// located field error at info.Path (see §4.5 of the design). A resolver
// that wants to hand work off to another goroutine without blocking the
// caller may return a *future.Future instead of a plain value; the
// completer awaits it transparently.
type FieldResolver func(ctx context.Context, source interface{}, args map[string]interface{}, info *ResolveInfo) (interface{}, error)

// TypeResolver determines the concrete object-type name a value should be
// completed as, for an interface or union return type. Returning "" (with
// a nil error) signals "could not resolve" and is turned into a located
// error by the caller.
type TypeResolver func(ctx context.Context, value interface{}, info *ResolveInfo, abstractType *ast.Definition) (string, error)

var _ FieldResolver = defaultFieldResolver
var _ TypeResolver = defaultTypeResolver

// ExecutionArgs is the input to Execute / ExecuteSync.
type ExecutionArgs struct {
	Schema        *ast.Schema        // required
	Document      *ast.QueryDocument // required
	RootValue     interface{}        // optional
	ContextValue  interface{}        // optional, opaque, threaded to every resolver
	VariableValues map[string]interface{} // optional
	OperationName string                  // optional; required if the document has >1 operation

	FieldResolver          FieldResolver // optional override
	TypeResolver           TypeResolver  // optional override
	SubscribeFieldResolver FieldResolver // optional; unused by Execute itself (see SPEC_FULL.md §1)
}

// ExecutionContext is shared, read-only configuration for one operation
// plus a per-payload error log. The initial response and every @defer or
// @stream payload each get their own ExecutionContext value (see fork),
// so that a resolver error raised while resolving a deferred fragment is
// attributed to that fragment's own IncrementalPayload.Errors rather than
// the initial response. Everything these forks share — the field-nodes
// memoization cache and the registry of pending incremental sources —
// lives behind the shared *root pointer instead of being copied.
type ExecutionContext struct {
	Schema         *ast.Schema
	Fragments      ast.FragmentDefinitionList
	RootValue      interface{}
	ContextValue   interface{}
	Operation      *ast.OperationDefinition
	VariableValues map[string]interface{}
	FieldResolver  FieldResolver
	TypeResolver   TypeResolver

	root *ExecutionContext // nil on the true root; every fork points back to it

	errMu  sync.Mutex
	errors gqlerror.List

	memo *memoCache

	subsequentMu       sync.Mutex
	subsequentPayloads []incremental.Source
	iterator           *incremental.Iterator
}

type memoCache struct {
	mu   sync.Mutex
	data map[memoKey]memoEntry
}

type memoKey struct {
	returnType *ast.Definition
	firstNode  *ast.Field
}

type memoEntry struct {
	fields   *GroupedFieldSet
	deferred []*DeferredFragment
}

// rootCtx returns the ExecutionContext that owns the shared memoization
// cache and incremental-payload registry: ec itself if ec is the true
// root, or the root it was forked from otherwise.
func (ec *ExecutionContext) rootCtx() *ExecutionContext {
	if ec.root != nil {
		return ec.root
	}
	return ec
}

// fork returns a new ExecutionContext that shares ec's configuration and
// memoization cache but logs errors into its own private list, for use by
// an incrementally-delivered fragment's own goroutine.
func (ec *ExecutionContext) fork() *ExecutionContext {
	return &ExecutionContext{
		Schema:         ec.Schema,
		Fragments:      ec.Fragments,
		RootValue:      ec.RootValue,
		ContextValue:   ec.ContextValue,
		Operation:      ec.Operation,
		VariableValues: ec.VariableValues,
		FieldResolver:  ec.FieldResolver,
		TypeResolver:   ec.TypeResolver,
		root:           ec.rootCtx(),
		memo:           ec.rootCtx().memo,
	}
}

// AppendError adds err to this context's own error log exactly once. Safe
// for concurrent use.
func (ec *ExecutionContext) AppendError(err *gqlerror.Error) {
	ec.errMu.Lock()
	defer ec.errMu.Unlock()
	ec.errors = append(ec.errors, err)
}

// Errors returns a snapshot of this context's own error log.
func (ec *ExecutionContext) Errors() gqlerror.List {
	ec.errMu.Lock()
	defer ec.errMu.Unlock()
	out := make(gqlerror.List, len(ec.errors))
	copy(out, ec.errors)
	return out
}

// addSource registers a pending incremental payload source. Before the
// initial response has finished building (and attachIterator has run),
// sources are buffered; afterward they are handed straight to the live
// SubsequentIterator.
func (ec *ExecutionContext) addSource(s incremental.Source) {
	root := ec.rootCtx()
	root.subsequentMu.Lock()
	defer root.subsequentMu.Unlock()
	if root.iterator != nil {
		root.iterator.Add(s)
		return
	}
	root.subsequentPayloads = append(root.subsequentPayloads, s)
}

// attachIterator constructs the SubsequentIterator from whatever sources
// registered during the initial, synchronous execution pass, and arranges
// for every source registered afterward to flow into it directly. Returns
// nil if no @defer or @stream directive ever registered a source: an
// Iterator with nothing pending and nothing that will ever Add to it would
// otherwise block its first Next call forever, since nothing would ever
// close its "a source was added" channel.
func (ec *ExecutionContext) attachIterator() *SubsequentIterator {
	root := ec.rootCtx()
	root.subsequentMu.Lock()
	defer root.subsequentMu.Unlock()

	if len(root.subsequentPayloads) == 0 {
		it := incremental.NewIterator(nil)
		it.Close()
		root.iterator = it
		return nil
	}

	it := incremental.NewIterator(root.subsequentPayloads)
	root.subsequentPayloads = nil
	root.iterator = it
	return &SubsequentIterator{inner: it}
}

// memoizedCollect returns a cached (GroupedFieldSet, []*DeferredFragment)
// for the triple (execution, return type, field-nodes identity), computing
// and storing it on first use. List execution re-enters this with
// identical arguments once per element, which is what makes the
// memoization pay for itself.
func (ec *ExecutionContext) memoizedCollect(typ *ast.Definition, fieldNodes []*ast.Field, selectionSet ast.SelectionSet) (*GroupedFieldSet, []*DeferredFragment) {
	cache := ec.rootCtx().memo
	key := memoKey{returnType: typ, firstNode: fieldNodes[0]}

	cache.mu.Lock()
	if entry, ok := cache.data[key]; ok {
		cache.mu.Unlock()
		return entry.fields, entry.deferred
	}
	cache.mu.Unlock()

	fields, deferred := CollectFields(ec, typ, selectionSet)

	cache.mu.Lock()
	cache.data[key] = memoEntry{fields: fields, deferred: deferred}
	cache.mu.Unlock()

	return fields, deferred
}

// assertValidExecutionArguments performs the essential, cheap-to-check
// checks for caller misuse ("programmer errors"): these are returned as a
// plain Go error rather than panicking, since panicking across a public Go
// API is not idiomatic even where the source this was ported from throws.
func assertValidExecutionArguments(schema *ast.Schema, document *ast.QueryDocument, rawVariableValues map[string]interface{}) error {
	if document == nil {
		return gqlerror.Errorf("must provide document")
	}
	if schema == nil {
		return gqlerror.Errorf("must provide schema")
	}
	if rawVariableValues != nil {
		// rawVariableValues is already map[string]interface{} by the Go type
		// system; the JS "must be an Object" assertion has no analogue to add.
		_ = rawVariableValues
	}
	return nil
}

func buildExecutionContext(args *ExecutionArgs) (*ExecutionContext, gqlerror.List) {
	operation, err := getOperation(args.Document, args.OperationName)
	if err != nil {
		return nil, gqlerror.List{err}
	}

	coercedVariableValues, gErrs := coerceVariableValues(args.Schema, operation, args.VariableValues)
	if len(gErrs) != 0 {
		return nil, gErrs
	}

	fieldResolver := args.FieldResolver
	if fieldResolver == nil {
		fieldResolver = defaultFieldResolver
	}
	typeResolver := args.TypeResolver
	if typeResolver == nil {
		typeResolver = defaultTypeResolver
	}

	return &ExecutionContext{
		Schema:         args.Schema,
		Fragments:      args.Document.Fragments,
		RootValue:      args.RootValue,
		ContextValue:   args.ContextValue,
		Operation:      operation,
		VariableValues: coercedVariableValues,
		FieldResolver:  fieldResolver,
		TypeResolver:   typeResolver,
		memo:           &memoCache{data: make(map[memoKey]memoEntry)},
	}, nil
}

func getOperation(document *ast.QueryDocument, operationName string) (*ast.OperationDefinition, *gqlerror.Error) {
	if operationName == "" {
		if len(document.Operations) != 1 {
			return nil, gqlerror.Errorf("must provide operation name if query contains multiple operations")
		}
		return document.Operations[0], nil
	}
	operation := document.Operations.ForName(operationName)
	if operation == nil {
		return nil, gqlerror.Errorf(`unknown operation named "%s"`, operationName)
	}
	return operation, nil
}
