package store

import (
	"fmt"
	"sync"

	"github.com/strandtui/strand/internal/log"
	"github.com/strandtui/strand/internal/thread"
)

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	mu       sync.RWMutex
	messages map[string]*Message
	entries  map[string]thread.Entry
	parents  map[string]string
	children map[string][]string
	version  int64

	// Cached snapshot, rebuilt lazily after mutations.
	snap        thread.Relations
	snapVersion int64
}

// NewMemoryStore creates an empty in-memory relation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages:    make(map[string]*Message),
		entries:     make(map[string]thread.Entry),
		parents:     make(map[string]string),
		children:    make(map[string][]string),
		version:     1,
		snapVersion: -1,
	}
}

// Seed bulk-loads messages (typically from a fixture) as one snapshot bump.
// Reply lists keep their stored order; a message's own replies list wins
// over inference from InReplyTo back-pointers.
func (s *MemoryStore) Seed(msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range msgs {
		msg := msgs[i]
		s.messages[msg.ID] = &msg
		s.entries[msg.ID] = thread.Classify(msg.ID)
		if msg.InReplyTo != "" {
			s.parents[msg.ID] = msg.InReplyTo
		}
		if len(msg.Replies) > 0 {
			s.children[msg.ID] = append([]string(nil), msg.Replies...)
		}
	}

	// Infer missing children lists from reply-to back-pointers so sparse
	// fixtures still produce a walkable graph.
	for i := range msgs {
		msg := msgs[i]
		if msg.InReplyTo == "" {
			continue
		}
		if !containsID(s.children[msg.InReplyTo], msg.ID) {
			s.children[msg.InReplyTo] = append(s.children[msg.InReplyTo], msg.ID)
		}
	}

	s.version++
	log.Debug(log.CatStore, "seeded store", "messages", len(msgs), "version", s.version)
}

// Snapshot returns an immutable view of the current relation tables.
// The snapshot is cached until the next mutation.
func (s *MemoryStore) Snapshot() thread.Relations {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapVersion == s.version {
		return s.snap
	}

	parents := make(map[string]string, len(s.parents))
	for id, parent := range s.parents {
		parents[id] = parent
	}
	children := make(map[string][]string, len(s.children))
	for id, kids := range s.children {
		children[id] = append([]string(nil), kids...)
	}

	s.snap = thread.NewRelations(s.version, parents, children)
	s.snapVersion = s.version
	return s.snap
}

// Message retrieves display metadata for an id.
func (s *MemoryStore) Message(id string) (*Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, exists := s.messages[id]
	if !exists {
		return nil, fmt.Errorf("message not found: %s", id)
	}

	out := *msg
	out.Replies = append([]string(nil), msg.Replies...)
	return &out, nil
}

// Entry returns the classified entry for an id, if known.
func (s *MemoryStore) Entry(id string) (thread.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[id]
	return entry, ok
}

// Has reports whether the store knows the id.
func (s *MemoryStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.messages[id]
	return ok
}

// ApplyPage appends fetched descendants in feed order. Each message is wired
// under its own reply-to parent, defaulting to parentID for messages that
// carry none (direct children). Already-known edges are skipped, so replayed
// or overlapping pages are harmless.
func (s *MemoryStore) ApplyPage(parentID string, children []Message) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[parentID]; !exists {
		return s.version, fmt.Errorf("message not found: %s", parentID)
	}

	appended := 0
	for i := range children {
		child := children[i]
		if child.InReplyTo == "" {
			child.InReplyTo = parentID
		}
		if !containsID(s.children[child.InReplyTo], child.ID) {
			s.children[child.InReplyTo] = append(s.children[child.InReplyTo], child.ID)
			appended++
		}
		if _, known := s.messages[child.ID]; !known {
			stored := child
			s.messages[child.ID] = &stored
			s.entries[child.ID] = thread.Classify(child.ID)
		}
		s.parents[child.ID] = child.InReplyTo
	}

	s.version++
	log.Debug(log.CatStore, "applied page", "parent", parentID, "appended", appended, "version", s.version)
	return s.version, nil
}

// Add inserts a single message and wires it under its reply-to parent.
func (s *MemoryStore) Add(msg Message) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.messages[msg.ID]; exists {
		return s.version, fmt.Errorf("message already exists: %s", msg.ID)
	}

	stored := msg
	s.messages[msg.ID] = &stored
	s.entries[msg.ID] = thread.Classify(msg.ID)
	if msg.InReplyTo != "" {
		s.parents[msg.ID] = msg.InReplyTo
		if !containsID(s.children[msg.InReplyTo], msg.ID) {
			s.children[msg.InReplyTo] = append(s.children[msg.InReplyTo], msg.ID)
		}
	}

	s.version++
	return s.version, nil
}

// Messages returns a copy of every stored message. Order is unspecified.
func (s *MemoryStore) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := make([]Message, 0, len(s.messages))
	for _, msg := range s.messages {
		copied := *msg
		copied.Replies = append([]string(nil), msg.Replies...)
		msgs = append(msgs, copied)
	}
	return msgs
}

// Version returns the current snapshot version.
func (s *MemoryStore) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

var _ Store = (*MemoryStore)(nil)
