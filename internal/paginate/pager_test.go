package paginate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/strandtui/strand/internal/store"
)

func fanoutFixture() []store.Message {
	return []store.Message{
		{ID: "T", Author: "tess", Body: "root", Replies: []string{"k1", "k2", "k3", "k4", "k5"}, ReplyCount: 5},
		{ID: "k1", Author: "a", InReplyTo: "T"},
		{ID: "k2", Author: "b", InReplyTo: "T", Replies: []string{"k2a"}, ReplyCount: 1},
		{ID: "k2a", Author: "c", InReplyTo: "k2"},
		{ID: "k3", Author: "d", InReplyTo: "T"},
		{ID: "k4", Author: "e", InReplyTo: "T"},
		{ID: "k5", Author: "f", InReplyTo: "T"},
	}
}

func pageIDs(p Page) []string {
	ids := make([]string, 0, len(p.Children))
	for _, msg := range p.Children {
		ids = append(ids, msg.ID)
	}
	return ids
}

func TestStorePager_PagesInFeedOrderWithSubtrees(t *testing.T) {
	p := NewStorePager(fanoutFixture(), 2)
	ctx := context.Background()

	first, err := p.FetchNext(ctx, "T", "")
	require.NoError(t, err)
	require.Equal(t, []string{"k1", "k2", "k2a"}, pageIDs(first))
	require.Equal(t, "2", first.NextCursor)

	second, err := p.FetchNext(ctx, "T", first.NextCursor)
	require.NoError(t, err)
	require.Equal(t, []string{"k3", "k4"}, pageIDs(second))
	require.Equal(t, "4", second.NextCursor)

	last, err := p.FetchNext(ctx, "T", second.NextCursor)
	require.NoError(t, err)
	require.Equal(t, []string{"k5"}, pageIDs(last))
	require.Empty(t, last.NextCursor)
}

func TestStorePager_CursorPastEndIsEmpty(t *testing.T) {
	p := NewStorePager(fanoutFixture(), 2)

	page, err := p.FetchNext(context.Background(), "T", "9")
	require.NoError(t, err)
	require.Empty(t, page.Children)
	require.Empty(t, page.NextCursor)
}

func TestStorePager_BadCursor(t *testing.T) {
	p := NewStorePager(fanoutFixture(), 2)

	_, err := p.FetchNext(context.Background(), "T", "not-a-cursor")
	require.Error(t, err)
}

func TestStorePager_LeafHasNoPages(t *testing.T) {
	p := NewStorePager(fanoutFixture(), 2)

	page, err := p.FetchNext(context.Background(), "k1", "")
	require.NoError(t, err)
	require.Empty(t, page.Children)
}

func TestSeedWindow_TrimsBeyondFirstPage(t *testing.T) {
	seed, cursor := SeedWindow(fanoutFixture(), "T", 2)
	require.Equal(t, "2", cursor)

	s := store.NewMemoryStore()
	s.Seed(seed)

	require.Equal(t, []string{"k1", "k2"}, s.Snapshot().ChildrenOf("T"))
	require.True(t, s.Has("k2a"))
	require.False(t, s.Has("k3"))
	require.False(t, s.Has("k5"))

	// The root keeps its full reply count so the load-more row can show
	// how much is left.
	msg, err := s.Message("T")
	require.NoError(t, err)
	require.Equal(t, 5, msg.ReplyCount)
}

func TestSeedWindow_SeedOmitsTrimmedChildren(t *testing.T) {
	// Leaf children beyond the window must be absent from the seed slice
	// itself; their reply-to back-pointers would otherwise re-wire them
	// under the focus at seed time.
	seed, _ := SeedWindow(fanoutFixture(), "T", 2)

	ids := make(map[string]bool, len(seed))
	for _, msg := range seed {
		ids[msg.ID] = true
	}
	require.False(t, ids["k3"])
	require.False(t, ids["k4"])
	require.False(t, ids["k5"])
	require.True(t, ids["k2a"])
}

func TestStorePager_LeafOnlyPageCarriesChildren(t *testing.T) {
	// A page of childless replies is the children themselves.
	p := NewStorePager(fanoutFixture(), 2)

	page, err := p.FetchNext(context.Background(), "T", "2")
	require.NoError(t, err)
	require.Equal(t, []string{"k3", "k4"}, pageIDs(page))
}

func TestSeedWindow_SmallThreadPassesThrough(t *testing.T) {
	msgs := fanoutFixture()
	seed, cursor := SeedWindow(msgs, "T", 10)
	require.Empty(t, cursor)
	require.Len(t, seed, len(msgs))
}

func TestSeedWindow_UnfocusedBranchesKept(t *testing.T) {
	// Trimming applies to the focused message's children only.
	seed, cursor := SeedWindow(fanoutFixture(), "k2", 2)
	require.Empty(t, cursor)
	require.Len(t, seed, len(fanoutFixture()))
}
