package incremental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ready   chan struct{}
	payload interface{}
	more    bool
}

func newFakeSource(payload interface{}) *fakeSource {
	return &fakeSource{ready: make(chan struct{}), payload: payload}
}

func (s *fakeSource) Ready() <-chan struct{} { return s.ready }
func (s *fakeSource) fire()                  { close(s.ready) }
func (s *fakeSource) Payload() (interface{}, bool) {
	return s.payload, s.more
}

func TestIterator_DeliversInSettlementOrder(t *testing.T) {
	a := newFakeSource("a")
	b := newFakeSource("b")
	it := NewIterator([]Source{a, b})

	b.fire()
	payload, hasNext := it.Next()
	require.Equal(t, "b", payload)
	require.True(t, hasNext)

	a.fire()
	payload, hasNext = it.Next()
	require.Equal(t, "a", payload)
	require.False(t, hasNext)
}

func TestIterator_AddAfterConstruction(t *testing.T) {
	it := NewIterator(nil)

	added := newFakeSource("late")
	go func() {
		time.Sleep(10 * time.Millisecond)
		it.Add(added)
		added.fire()
	}()

	payload, hasNext := it.Next()
	require.Equal(t, "late", payload)
	require.False(t, hasNext)
}

func TestIterator_SourceThatReRegistersDeliversTwice(t *testing.T) {
	s := newFakeSource("first")
	s.more = true
	it := NewIterator([]Source{s})

	s.fire()
	payload, hasNext := it.Next()
	require.Equal(t, "first", payload)
	require.True(t, hasNext)

	s.more = false
	s.ready = make(chan struct{})
	s.fire()
	payload, hasNext = it.Next()
	require.Equal(t, "first", payload)
	require.False(t, hasNext)
}

func TestIterator_CloseUnblocksEmptyWait(t *testing.T) {
	it := NewIterator(nil)

	done := make(chan struct{})
	go func() {
		payload, hasNext := it.Next()
		require.Nil(t, payload)
		require.False(t, hasNext)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	it.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Next did not unblock after Close")
	}
}
