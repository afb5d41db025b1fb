package paginate

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/strandtui/strand/internal/log"
	"github.com/strandtui/strand/internal/watch"
)

// Result is delivered to the session callback when a fetch resolves.
type Result struct {
	ParentID   string
	Cursor     string
	Page       Page
	Generation uint64
	Err        error
}

// Session owns pagination for one thread view. Requests are debounced, at
// most one fetch is in flight at a time, and results belonging to an earlier
// focus generation are dropped instead of delivered.
type Session struct {
	pager    Pager
	debounce *watch.Debouncer
	deliver  func(Result)
	tracer   trace.Tracer

	mu         sync.Mutex
	inflight   bool
	generation atomic.Uint64
}

// NewSession creates a pagination session. deliver runs on a fetch goroutine;
// callers marshal results back onto their own loop.
func NewSession(pager Pager, debounceDur time.Duration, deliver func(Result)) *Session {
	return &Session{
		pager:    pager,
		debounce: watch.NewDebouncer(debounceDur),
		deliver:  deliver,
		tracer:   otel.Tracer("strand/paginate"),
	}
}

// Request schedules a fetch for parentID at cursor after the debounce window.
// Repeated requests within the window collapse into the last one.
func (s *Session) Request(parentID, cursor string) {
	s.debounce.Trigger(func() { s.fetch(parentID, cursor) })
}

// Refocus invalidates the session's outstanding work: any pending trigger is
// cancelled and an in-flight fetch, if one resolves later, is discarded.
func (s *Session) Refocus() {
	s.generation.Add(1)
	s.debounce.Cancel()
}

// Generation returns the current focus generation.
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// InFlight reports whether a fetch is currently running.
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

func (s *Session) fetch(parentID, cursor string) {
	s.mu.Lock()
	if s.inflight {
		s.mu.Unlock()
		log.Debug(log.CatFetch, "fetch slot busy, dropping request", "parent", parentID)
		return
	}
	s.inflight = true
	s.mu.Unlock()

	gen := s.generation.Load()

	go func() {
		ctx, span := s.tracer.Start(context.Background(), "paginate.fetch")
		span.SetAttributes(
			attribute.String("thread.parent_id", parentID),
			attribute.String("thread.cursor", cursor),
		)

		page, err := s.pager.FetchNext(ctx, parentID, cursor)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int("thread.page_size", len(page.Children)))
		}
		span.End()

		s.mu.Lock()
		s.inflight = false
		s.mu.Unlock()

		if s.generation.Load() != gen {
			log.Debug(log.CatFetch, "discarding stale page", "parent", parentID, "cursor", cursor)
			return
		}

		s.deliver(Result{
			ParentID:   parentID,
			Cursor:     cursor,
			Page:       page,
			Generation: gen,
			Err:        err,
		})
	}()
}
