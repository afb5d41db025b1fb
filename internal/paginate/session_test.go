package paginate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// blockingPager holds every fetch until release is closed.
type blockingPager struct {
	calls   atomic.Int32
	release chan struct{}
}

func newBlockingPager() *blockingPager {
	return &blockingPager{release: make(chan struct{})}
}

func (p *blockingPager) FetchNext(ctx context.Context, parentID, cursor string) (Page, error) {
	p.calls.Add(1)
	<-p.release
	return Page{NextCursor: "next"}, nil
}

func TestSession_DebounceCollapsesRequests(t *testing.T) {
	pager := newBlockingPager()
	close(pager.release)

	var delivered atomic.Int32
	s := NewSession(pager, 20*time.Millisecond, func(Result) { delivered.Add(1) })

	for i := 0; i < 5; i++ {
		s.Request("T", "")
	}

	require.Eventually(t, func() bool { return delivered.Load() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, int32(1), pager.calls.Load())
}

func TestSession_SingleInFlightSlot(t *testing.T) {
	pager := newBlockingPager()

	var delivered atomic.Int32
	s := NewSession(pager, time.Millisecond, func(Result) { delivered.Add(1) })

	s.Request("T", "")
	require.Eventually(t, func() bool { return s.InFlight() }, time.Second, time.Millisecond)

	// A second window fires while the first fetch is blocked; it must not
	// start another fetch.
	s.Request("T", "2")
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(1), pager.calls.Load())

	close(pager.release)
	require.Eventually(t, func() bool { return delivered.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestSession_RefocusDiscardsInFlightResult(t *testing.T) {
	pager := newBlockingPager()

	var delivered atomic.Int32
	s := NewSession(pager, time.Millisecond, func(Result) { delivered.Add(1) })

	s.Request("T", "")
	require.Eventually(t, func() bool { return s.InFlight() }, time.Second, time.Millisecond)

	s.Refocus()
	close(pager.release)

	require.Eventually(t, func() bool { return !s.InFlight() }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, int32(0), delivered.Load())
}

func TestSession_RefocusCancelsPendingTrigger(t *testing.T) {
	pager := newBlockingPager()
	close(pager.release)

	var delivered atomic.Int32
	s := NewSession(pager, 30*time.Millisecond, func(Result) { delivered.Add(1) })

	s.Request("T", "")
	s.Refocus()

	time.Sleep(80 * time.Millisecond)
	require.Equal(t, int32(0), pager.calls.Load())
	require.Equal(t, int32(0), delivered.Load())
}

func TestSession_DeliversPageAndGeneration(t *testing.T) {
	pager := NewStorePager(fanoutFixture(), 2)

	results := make(chan Result, 1)
	s := NewSession(pager, time.Millisecond, func(r Result) { results <- r })

	s.Request("T", "2")

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		require.Equal(t, "T", r.ParentID)
		require.Equal(t, []string{"k3", "k4"}, pageIDs(r.Page))
		require.Equal(t, "4", r.Page.NextCursor)
		require.Equal(t, s.Generation(), r.Generation)
	case <-time.After(time.Second):
		t.Fatal("no page delivered")
	}
}
