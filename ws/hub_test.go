package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thinkful-ei22/dan-noteful-4/domain"
)

type fakeConn struct {
	events  []Event
	failing bool
	closed  bool
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.failing {
		return errors.New("write failed")
	}
	ev, ok := v.(Event)
	if !ok {
		return errors.New("unexpected payload")
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func TestBroadcastScopedToUser(t *testing.T) {
	h := NewHub(zerolog.Nop())

	alice := &fakeConn{}
	aliceSecond := &fakeConn{}
	bob := &fakeConn{}
	h.register(alice, "u1")
	h.register(aliceSecond, "u1")
	h.register(bob, "u2")

	h.Broadcast("u1", Event{Type: "note_created", Note: &domain.Note{ID: "n1", Title: "t"}})

	require.Len(t, alice.events, 1)
	assert.Equal(t, "note_created", alice.events[0].Type)
	assert.Equal(t, "n1", alice.events[0].Note.ID)
	require.Len(t, aliceSecond.events, 1)
	assert.Empty(t, bob.events)
}

func TestBroadcastDropsFailedWriters(t *testing.T) {
	h := NewHub(zerolog.Nop())

	healthy := &fakeConn{}
	broken := &fakeConn{failing: true}
	h.register(healthy, "u1")
	h.register(broken, "u1")

	h.Broadcast("u1", Event{Type: "note_deleted", ID: "n1"})

	assert.True(t, broken.closed)
	require.Len(t, healthy.events, 1)

	// The dropped connection is gone; the next broadcast reaches only the
	// surviving client.
	h.Broadcast("u1", Event{Type: "note_deleted", ID: "n2"})
	assert.Len(t, healthy.events, 2)

	h.mu.RLock()
	_, stillThere := h.clients[broken]
	h.mu.RUnlock()
	assert.False(t, stillThere)
}

// serialConn refuses reentrant writes, like the real connection: it flags
// any WriteJSON call that starts while another is in flight.
type serialConn struct {
	inFlight int32
	overlaps int32
	writes   int64
}

func (c *serialConn) WriteJSON(v any) error {
	if !atomic.CompareAndSwapInt32(&c.inFlight, 0, 1) {
		atomic.AddInt32(&c.overlaps, 1)
		return nil
	}
	time.Sleep(100 * time.Microsecond)
	atomic.AddInt64(&c.writes, 1)
	atomic.StoreInt32(&c.inFlight, 0)
	return nil
}

func (c *serialConn) Close() error { return nil }

func TestBroadcastSerializesWritesPerConnection(t *testing.T) {
	h := NewHub(zerolog.Nop())

	c := &serialConn{}
	h.register(c, "u1")

	const goroutines, perGoroutine = 8, 25

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				h.Broadcast("u1", Event{Type: "note_updated", Note: &domain.Note{ID: "n1"}})
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&c.overlaps))
	assert.EqualValues(t, goroutines*perGoroutine, atomic.LoadInt64(&c.writes))
}

func TestUnregisterIdempotent(t *testing.T) {
	h := NewHub(zerolog.Nop())

	c := &fakeConn{}
	h.register(c, "u1")
	h.unregister(c)
	h.unregister(c)

	assert.True(t, c.closed)
	h.Broadcast("u1", Event{Type: "note_created"})
	assert.Empty(t, c.events)
}
