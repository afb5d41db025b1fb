// Package store provides the relation store: the mutable holder of the
// reply graph and message metadata that the thread resolvers read through
// immutable snapshots.
package store

import (
	"time"

	"github.com/strandtui/strand/internal/thread"
)

// Message is the displayable record behind one thread entry.
type Message struct {
	ID         string    `json:"id" yaml:"id"`
	Author     string    `json:"author" yaml:"author"`
	Body       string    `json:"body" yaml:"body"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	InReplyTo  string    `json:"in_reply_to,omitempty" yaml:"in_reply_to,omitempty"`
	Replies    []string  `json:"replies,omitempty" yaml:"replies,omitempty"`
	ReplyCount int       `json:"reply_count,omitempty" yaml:"reply_count,omitempty"`
}

// Store is the relation store consumed by the thread resolvers and the UI.
// Reads reflect the latest snapshot at call time; every mutation produces a
// new snapshot version, so resolvers rerun from scratch against a stable
// picture and never observe a half-applied update.
type Store interface {
	// Snapshot returns an immutable view of the current relation tables.
	Snapshot() thread.Relations

	// Message retrieves display metadata for an id.
	Message(id string) (*Message, error)

	// Entry returns the classified entry for an id, if known.
	Entry(id string) (thread.Entry, bool)

	// Has reports whether the store knows the id at all.
	Has(id string) bool

	// ApplyPage appends fetched children under parentID in feed order.
	// Already-known children are skipped (duplicate-tolerant). Returns the
	// new snapshot version.
	ApplyPage(parentID string, children []Message) (int64, error)

	// Add inserts a single message (used for optimistic local replies).
	// Returns the new snapshot version.
	Add(msg Message) (int64, error)
}
