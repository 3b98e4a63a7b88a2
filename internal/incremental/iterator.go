// Package incremental provides the generic scheduling primitive behind
// @defer and @stream: a dynamically-sized set of pending payload sources,
// each of which becomes ready independently, delivered to the caller in
// the order they settle. This is the direct Go analogue of racing a set of
// Promises with Promise.race and re-racing the survivors after each
// settlement, built with reflect.Select since the set of channels to wait
// on changes at runtime as new deferred/streamed fragments register
// themselves mid-execution.
package incremental

import (
	"reflect"
	"sync"
)

// Source is one pending subsequent payload. Ready is closed when Payload
// becomes safe to call. If Payload reports more == true, the source is
// re-registered and Ready is consulted again for its next payload (this is
// how a single @stream field delivers more than one subsequent chunk);
// more == false retires the source after this call.
type Source interface {
	Ready() <-chan struct{}
	Payload() (payload interface{}, more bool)
}

// Cancelable is implemented by a Source whose supply of future payloads
// comes from something that can be asked to stop early, such as an
// AsyncIterator backing a @stream field. Cancel calls Cancel on every
// pending Source that implements it.
type Cancelable interface {
	Cancel()
}

// Iterator delivers payloads from a growing set of Sources in settlement
// order. The zero value is not usable; construct with NewIterator.
type Iterator struct {
	mu      sync.Mutex
	sources []Source
	added   chan struct{}
	closed  bool
}

// NewIterator returns an Iterator seeded with the given initial sources.
// Additional sources may be registered with Add for as long as the
// iterator has not been closed.
func NewIterator(initial []Source) *Iterator {
	it := &Iterator{
		sources: append([]Source(nil), initial...),
		added:   make(chan struct{}),
	}
	return it
}

// Add registers a new pending source. Safe to call concurrently with Next.
func (it *Iterator) Add(s Source) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed {
		return
	}
	it.sources = append(it.sources, s)
	close(it.added)
	it.added = make(chan struct{})
}

// Next blocks until some pending source becomes ready and returns its
// payload; when several are ready at once, the one registered earliest is
// delivered first. The second return value is false once every source registered
// so far has settled and no further sources are pending, meaning the
// caller has drained the whole incremental response.
func (it *Iterator) Next() (interface{}, bool) {
	for {
		it.mu.Lock()
		if len(it.sources) == 0 {
			addedCh := it.added
			it.mu.Unlock()
			if it.closed {
				return nil, false
			}
			<-addedCh
			continue
		}
		cases := make([]reflect.SelectCase, len(it.sources)+1)
		for i, s := range it.sources {
			cases[i] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(s.Ready())}
		}
		cases[len(it.sources)] = reflect.SelectCase{Dir: reflect.SelectRecv, Chan: reflect.ValueOf(it.added)}
		sourcesSnapshot := it.sources
		it.mu.Unlock()

		chosen, _, _ := reflect.Select(cases)
		if chosen == len(sourcesSnapshot) {
			// a new source arrived while we were waiting; re-snapshot and retry
			continue
		}

		fired := sourcesSnapshot[chosen]
		for _, s := range sourcesSnapshot[:chosen] {
			ready := false
			select {
			case <-s.Ready():
				ready = true
			default:
			}
			if ready {
				fired = s
				break
			}
		}
		it.mu.Lock()
		idx := indexOf(it.sources, fired)
		if idx >= 0 {
			it.sources = append(it.sources[:idx], it.sources[idx+1:]...)
		}
		it.mu.Unlock()

		payload, more := fired.Payload()
		if more {
			it.mu.Lock()
			it.sources = append(it.sources, fired)
			it.mu.Unlock()
		}
		return payload, it.hasPending()
	}
}

func (it *Iterator) hasPending() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return len(it.sources) > 0
}

func indexOf(sources []Source, target Source) int {
	for i, s := range sources {
		if s == target {
			return i
		}
	}
	return -1
}

// Close marks the iterator as done accepting new sources; a Next call
// blocked on an empty source set returns immediately with (nil, false).
func (it *Iterator) Close() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed {
		return
	}
	it.closed = true
	close(it.added)
}

// Cancel asks every currently pending Source to stop producing further
// payloads: each one that implements Cancelable has its Cancel method
// called exactly once, and the iterator itself is closed, so a Next call
// already blocked waiting on one of them returns once that source reacts
// to the cancellation instead of hanging on work nothing will read anymore.
func (it *Iterator) Cancel() {
	it.mu.Lock()
	pending := it.sources
	it.sources = nil
	alreadyClosed := it.closed
	it.closed = true
	it.mu.Unlock()

	for _, s := range pending {
		if c, ok := s.(Cancelable); ok {
			c.Cancel()
		}
	}

	if !alreadyClosed {
		close(it.added)
	}
}
