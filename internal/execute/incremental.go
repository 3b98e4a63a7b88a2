package execute

import (
	"context"
	"fmt"
	"sync"

	"github.com/kadenrun/gqlengine/internal/incremental"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// IncrementalPayload is one subsequent chunk of an incrementally delivered
// response — the wire shape of an ExecutionPatchResult. Data holds the
// *OrderedMap produced by a @defer'd fragment, or the single completed item
// value produced by one @stream'd list index; a stream payload carries
// exactly one item, never a batch.
type IncrementalPayload struct {
	Label  string        `json:"label,omitempty"`
	Path   []interface{} `json:"path"`
	Data   interface{}   `json:"data,omitempty"`
	Errors gqlerror.List `json:"errors,omitempty"`
}

// SubsequentIterator delivers a request's IncrementalPayloads in settlement
// order, in the manner of the AsyncIterable<ExecutionPatchResult> the
// reference algorithm returns to its transport layer. Execute returns nil
// for this when the operation triggered no @defer or @stream directive.
type SubsequentIterator struct {
	inner *incremental.Iterator
}

// Next blocks until another payload is ready. hasNext reports whether a
// further call could still yield more; once it is false, the caller has
// drained the response and should send its own terminal {hasNext:false}.
func (it *SubsequentIterator) Next() (payload *IncrementalPayload, hasNext bool) {
	p, more := it.inner.Next()
	if p == nil {
		return nil, more
	}
	return p.(*IncrementalPayload), more
}

// Return cancels delivery: every pending record's underlying async
// iterator (if any) is asked to return, and the iterator itself is marked
// done, so a later Next call returns immediately with hasNext false
// instead of blocking on work the caller no longer wants.
func (it *SubsequentIterator) Return() {
	it.inner.Cancel()
}

// Throw cancels delivery the same way Return does; callers that have an
// error to report should fold it into their own response separately, since
// nothing downstream of this iterator is waiting to receive it.
func (it *SubsequentIterator) Throw(err error) {
	it.inner.Cancel()
}

type deferRecord struct {
	label string
	path  *Path
	ready chan struct{}
	data  *OrderedMap
	errs  gqlerror.List
}

func (r *deferRecord) Ready() <-chan struct{} { return r.ready }

func (r *deferRecord) Payload() (interface{}, bool) {
	return &IncrementalPayload{Label: r.label, Path: r.path.AsList(), Data: r.data, Errors: r.errs}, false
}

// registerDeferredFragment spawns the goroutine that resolves one @defer'd
// fragment's own fields and registers the resulting patch as a pending
// subsequent payload. The fragment's fields run against a forked
// ExecutionContext so that errors raised while resolving it land in its own
// IncrementalPayload.Errors instead of the initial response's error list,
// matching the "Handling Field Errors" section's per-payload error scoping.
func registerDeferredFragment(ctx context.Context, execCtx *ExecutionContext, parentType *ast.Definition, result interface{}, path *Path, frag *DeferredFragment) {
	registerDeferredFragmentAfter(ctx, execCtx, parentType, result, path, frag, nil)
}

// registerDeferredFragmentAfter is registerDeferredFragment's real
// implementation, threading through the ready channel of whichever record
// this fragment is nested inside (nil for a top-level @defer). A nested
// fragment's own field resolution still runs concurrently with its
// parent's — only the signal that its payload is ready waits on the
// parent's own signal — which is what turns "the parent usually wins the
// race" into a genuine happens-before edge: a nested record can never
// close its ready channel before the channel it waits on does.
func registerDeferredFragmentAfter(ctx context.Context, execCtx *ExecutionContext, parentType *ast.Definition, result interface{}, path *Path, frag *DeferredFragment, after <-chan struct{}) {
	rec := &deferRecord{label: frag.Label, path: path, ready: make(chan struct{})}
	execCtx.addSource(rec)
	for _, nested := range frag.Nested {
		registerDeferredFragmentAfter(ctx, execCtx, parentType, result, path, nested, rec.ready)
	}

	go func() {
		forked := execCtx.fork()
		data, _ := executeFields(ctx, forked, parentType, result, path, frag.Fields)
		rec.data, _ = data.(*OrderedMap)
		rec.errs = forked.Errors()

		if after != nil {
			<-after
		}
		close(rec.ready)
	}()
}

type streamRecord struct {
	path  *Path
	ready chan struct{}
	item  interface{}
	errs  gqlerror.List
}

func (r *streamRecord) Ready() <-chan struct{} { return r.ready }

func (r *streamRecord) Payload() (interface{}, bool) {
	return &IncrementalPayload{Path: r.path.AsList(), Data: r.item, Errors: r.errs}, false
}

// extractStreamDirective reports the configured initialCount (the number
// of leading items to deliver in the initial payload) when @stream is
// present and active on fieldNodes, and whether it applies at all. A
// negative initialCount is a validation failure rather than a value to
// clamp: the caller is expected to turn the returned error into a located
// field error the same way an argument-coercion failure is.
func extractStreamDirective(fieldNodes []*ast.Field, variableValues map[string]interface{}) (initialCount int, ok bool, err error) {
	for _, node := range fieldNodes {
		d := node.Directives.ForName("stream")
		if d == nil {
			continue
		}
		args := d.ArgumentMap(variableValues)
		if v, present := args["if"].(bool); present && !v {
			continue
		}
		initialCount = 0
		if v, present := args["initialCount"]; present {
			switch n := v.(type) {
			case int:
				initialCount = n
			case int64:
				initialCount = int(n)
			case float64:
				initialCount = int(n)
			}
		}
		if initialCount < 0 {
			return 0, true, fmt.Errorf(`"initialCount" on "@stream" must be a non-negative integer, got %d`, initialCount)
		}
		return initialCount, true, nil
	}
	return 0, false, nil
}

// registerStreamedTail completes each item beyond initialCount as its own
// subsequent payload, one streamRecord per item, registered with the
// iterator up front but signalled ready only in index order: record n+1's
// ready channel is not closed until record n's has been, so the yielder
// always delivers them in list order even though unrelated payloads may
// interleave between them.
func registerStreamedTail(ctx context.Context, execCtx *ExecutionContext, itemType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, startIndex int, tail []interface{}) {
	records := make([]*streamRecord, len(tail))
	for i := range tail {
		records[i] = &streamRecord{path: path.WithIndex(startIndex + i), ready: make(chan struct{})}
		execCtx.addSource(records[i])
	}

	go func() {
		for i, item := range tail {
			rec := records[i]
			itemPath := path.WithIndex(startIndex + i)
			forked := execCtx.fork()
			completed, err := completeValue(ctx, forked, itemType, fieldNodes, info, itemPath, item)
			if err == nil {
				rec.item = completed
			}
			rec.errs = forked.Errors()
			close(rec.ready)
		}
	}()
}

// asyncStreamRecord drives one @stream'd list field whose resolver
// returned an AsyncIterator instead of a materialized slice. Unlike
// registerStreamedTail, the source's length isn't known up front, so one
// streamRecord per item doesn't apply; instead a single record re-arms
// itself after each delivered item, using the same more=true mechanism
// incremental.Source documents for a source that can be consulted more
// than once. Payload and pull never run concurrently with each other (the
// Iterator only calls Payload after pull's close(ready) has fired, and
// pull is only started by Payload or the constructor), so the two share
// state with no lock, the same way deferRecord and streamRecord rely on
// close(ready) alone for their own synchronization.
type asyncStreamRecord struct {
	ctx        context.Context
	execCtx    *ExecutionContext
	itemType   *ast.Type
	fieldNodes []*ast.Field
	info       *ResolveInfo
	path       *Path
	iter       AsyncIterator
	index      int

	ready    chan struct{}
	payload  *IncrementalPayload
	terminal bool

	closeOnce sync.Once
}

func newAsyncStreamRecord(ctx context.Context, execCtx *ExecutionContext, itemType *ast.Type, fieldNodes []*ast.Field, info *ResolveInfo, path *Path, iter AsyncIterator, startIndex int) *asyncStreamRecord {
	r := &asyncStreamRecord{
		ctx:        ctx,
		execCtx:    execCtx,
		itemType:   itemType,
		fieldNodes: fieldNodes,
		info:       info,
		path:       path,
		iter:       iter,
		index:      startIndex,
		ready:      make(chan struct{}),
	}
	go r.pull()
	return r
}

// pull fetches exactly one item from the async iterator and leaves the
// result (or the terminal state) ready for Payload to pick up. A clean
// exhaustion (done with no error) leaves payload nil: Payload reports that
// round as having no further data, which the Iterator treats as a silent
// retirement rather than an empty patch — the isCompletedIterator case. An
// error, by contrast, still needs to reach the client, so it is delivered
// as a genuine final payload with no data and a located error.
func (r *asyncStreamRecord) pull() {
	value, done, err := r.iter.Next(r.ctx)
	switch {
	case err != nil:
		forked := r.execCtx.fork()
		forked.AppendError(locatedError(err, r.fieldNodes, r.path.WithIndex(r.index)))
		r.payload = &IncrementalPayload{Path: r.path.WithIndex(r.index).AsList(), Errors: forked.Errors()}
		r.terminal = true
		r.closeIter()
	case done:
		r.payload = nil
		r.terminal = true
		r.closeIter()
	default:
		forked := r.execCtx.fork()
		itemPath := r.path.WithIndex(r.index)
		completed, cErr := completeValue(r.ctx, forked, r.itemType, r.fieldNodes, r.info, itemPath, value)
		if cErr != nil {
			completed = nil
		}
		r.payload = &IncrementalPayload{Path: itemPath.AsList(), Data: completed, Errors: forked.Errors()}
	}
	close(r.ready)
}

func (r *asyncStreamRecord) Ready() <-chan struct{} { return r.ready }

// Payload hands back whatever pull just produced and, unless the iterator
// has reached its terminal state, re-arms itself: a fresh ready channel and
// a new pull for the next index, reported to the caller as more=true so
// the Iterator keeps polling this same source instead of expecting a
// distinct one per item.
func (r *asyncStreamRecord) Payload() (interface{}, bool) {
	payload := r.payload
	if r.terminal {
		return payload, false
	}
	r.index++
	r.ready = make(chan struct{})
	go r.pull()
	return payload, true
}

// Cancel satisfies incremental.Cancelable: asking the record's iterator to
// return is exactly what fulfills the cancellation contract for a source
// backed by an AsyncIterator, so Cancel and the terminal branches of pull
// both go through closeIter, which closes the iterator at most once even
// when a Cancel-unblocked pull then reaches its own terminal branch.
func (r *asyncStreamRecord) Cancel() {
	r.closeIter()
}

func (r *asyncStreamRecord) closeIter() {
	r.closeOnce.Do(func() { _ = r.iter.Close(r.ctx) })
}
