// Package thread implements reconstruction of a linear, navigable view of a
// reply thread from flat parent/children relation tables: the ancestor chain
// back to the root, the pre-order flattened descendant tree, the assembled
// render sequence, and focus navigation over it.
package thread

import "strings"

// EntryKind distinguishes how a sequence entry should be rendered.
type EntryKind int

const (
	// KindNormal is a resolved message with content.
	KindNormal EntryKind = iota
	// KindTombstone is a reply known to exist whose content is withheld or
	// deleted.
	KindTombstone
	// KindPending is a locally-submitted reply awaiting confirmation.
	KindPending
)

// String returns the kind as a display string.
func (k EntryKind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindTombstone:
		return "tombstone"
	case KindPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Entry is a sequence member tagged with its kind. Classification happens
// once at ingestion; downstream code never re-parses id patterns.
type Entry struct {
	Kind EntryKind
	ID   string
}

// Reserved id conventions used by upstream feeds. These survive only at the
// ingestion boundary; everything past Classify works with Entry.Kind.
const (
	// PendingIDPrefix marks an optimistically-inserted local reply.
	PendingIDPrefix = "pending-"
	// TombstoneIDSuffix marks a withheld or deleted reply.
	TombstoneIDSuffix = "~del"
)

// Classify tags a raw feed id with its entry kind.
func Classify(id string) Entry {
	switch {
	case strings.HasPrefix(id, PendingIDPrefix):
		return Entry{Kind: KindPending, ID: id}
	case strings.HasSuffix(id, TombstoneIDSuffix):
		return Entry{Kind: KindTombstone, ID: id}
	default:
		return Entry{Kind: KindNormal, ID: id}
	}
}
