// Package paginate fetches a focused message's reply children in pages and
// applies them to the relation store. Fetches run through a debounced session
// with a single in-flight slot, so scrolling past the load-more row several
// times produces one request, and responses that arrive after a refocus are
// discarded.
package paginate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/strandtui/strand/internal/store"
	"github.com/strandtui/strand/internal/thread"
)

// DefaultPageSize is the number of direct children fetched per page.
const DefaultPageSize = 20

// Page is one batch of fetched descendants. Children holds the paged direct
// children and their subtrees in feed order; NextCursor is empty when the
// parent's children are exhausted.
type Page struct {
	Children   []store.Message
	NextCursor string
}

// Pager fetches the next page of children for a parent message.
type Pager interface {
	FetchNext(ctx context.Context, parentID, cursor string) (Page, error)
}

// StorePager serves pages from a fully-known message set. It stands in for a
// remote feed when viewing fixtures: the viewer's store starts with a seed
// window and the rest of the thread arrives through FetchNext.
type StorePager struct {
	src      *store.MemoryStore
	pageSize int
}

// NewStorePager builds a pager over the complete message set.
func NewStorePager(msgs []store.Message, pageSize int) *StorePager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	src := store.NewMemoryStore()
	src.Seed(msgs)
	return &StorePager{src: src, pageSize: pageSize}
}

// FetchNext returns the next window of parentID's direct children, each with
// its full subtree, in feed order. The cursor is an offset into the parent's
// children list; an empty cursor starts from the beginning.
func (p *StorePager) FetchNext(ctx context.Context, parentID, cursor string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	offset := 0
	if cursor != "" {
		parsed, err := strconv.Atoi(cursor)
		if err != nil || parsed < 0 {
			return Page{}, fmt.Errorf("bad page cursor %q", cursor)
		}
		offset = parsed
	}

	rel := p.src.Snapshot()
	kids := rel.ChildrenOf(parentID)
	if offset >= len(kids) {
		return Page{}, nil
	}

	end := offset + p.pageSize
	if end > len(kids) {
		end = len(kids)
	}

	var page Page
	for _, kidID := range kids[offset:end] {
		// ResolveDescendants excludes its start, so the kid itself goes first.
		ids := append([]string{kidID}, thread.ResolveDescendants(kidID, rel)...)
		for _, id := range ids {
			msg, err := p.src.Message(id)
			if err != nil {
				continue
			}
			page.Children = append(page.Children, *msg)
		}
	}
	if end < len(kids) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

// SeedWindow splits a complete message set into the initial store contents
// for a view focused on focusID. The seed keeps everything except the
// subtrees of the focused message's direct children beyond the first
// pageSize; the returned cursor resumes where the seed stops, or is empty
// when the whole thread fits in one window.
func SeedWindow(msgs []store.Message, focusID string, pageSize int) ([]store.Message, string) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	full := store.NewMemoryStore()
	full.Seed(msgs)
	rel := full.Snapshot()

	kids := rel.ChildrenOf(focusID)
	if len(kids) <= pageSize {
		return msgs, ""
	}

	excluded := make(map[string]bool)
	for _, kidID := range kids[pageSize:] {
		excluded[kidID] = true
		for _, id := range thread.ResolveDescendants(kidID, rel) {
			excluded[id] = true
		}
	}

	seed := make([]store.Message, 0, len(msgs)-len(excluded))
	for i := range msgs {
		msg := msgs[i]
		if excluded[msg.ID] {
			continue
		}
		if msg.ID == focusID && len(msg.Replies) > pageSize {
			msg.Replies = append([]string(nil), msg.Replies[:pageSize]...)
		}
		seed = append(seed, msg)
	}
	return seed, strconv.Itoa(pageSize)
}

var _ Pager = (*StorePager)(nil)
