// Package future provides the Go stand-in for the "PromiseOrValue" pattern
// used throughout the execution core. A resolver or TypeResolver
// ordinarily just blocks the goroutine that invoked it —
// the execution driver already runs sibling fields on their own goroutines,
// so blocking costs nothing. Future exists for the rarer case where a
// resolver wants to hand off work to another goroutine of its own without
// stalling the caller; the completer awaits it transparently wherever a
// resolver result is consumed.
package future

// Future wraps a value that becomes available asynchronously. The zero
// value is not usable; construct one with New.
type Future struct {
	done chan struct{}
	val  interface{}
	err  error
}

// New starts fn on a new goroutine and returns a Future that resolves to
// its result.
func New(fn func() (interface{}, error)) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn()
	}()
	return f
}

// Resolved returns a Future that is already complete, useful for adapting
// synchronous code paths to a uniform interface.
func Resolved(val interface{}, err error) *Future {
	f := &Future{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

// Await blocks until the future settles and returns its value or error.
func (f *Future) Await() (interface{}, error) {
	<-f.done
	return f.val, f.err
}

// Done exposes the readiness channel, e.g. for use in a select alongside
// context cancellation.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsFuture reports whether v is a *Future, the signal the completer uses to
// decide whether to await before proceeding.
func IsFuture(v interface{}) (*Future, bool) {
	f, ok := v.(*Future)
	return f, ok
}
