package threadview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/strandtui/strand/internal/store"
)

func threadMessages() []store.Message {
	return []store.Message{
		{ID: "A", Author: "ann", Body: "thread root"},
		{ID: "B", Author: "ben", Body: "first reply", InReplyTo: "A"},
		{ID: "C", Author: "cam", Body: "second reply", InReplyTo: "B"},
		{ID: "focus", Author: "dee", Body: "the interesting one", InReplyTo: "C",
			Replies: []string{"D", "E"}, ReplyCount: 2},
		{ID: "D", Author: "eve", Body: "agree", InReplyTo: "focus", Replies: []string{"F"}, ReplyCount: 1},
		{ID: "F", Author: "fin", Body: "nested", InReplyTo: "D"},
		{ID: "E", Author: "gus", Body: "disagree", InReplyTo: "focus"},
	}
}

func threadStore(msgs []store.Message) *store.MemoryStore {
	s := store.NewMemoryStore()
	s.Seed(msgs)
	return s
}

func TestBuildRows_KindsFollowSequenceSegments(t *testing.T) {
	st := threadStore(threadMessages())
	v := assembleFor(t, st, "focus")

	rows := buildRows(v, st)
	require.Len(t, rows, 7)

	require.Equal(t, RowAncestor, rows[0].Kind)
	require.Equal(t, "A", rows[0].ID)
	require.Equal(t, RowFocused, rows[3].Kind)
	require.Equal(t, "focus", rows[3].ID)
	require.Equal(t, RowReply, rows[4].Kind)
	require.Equal(t, []string{"D", "F", "E"}, []string{rows[4].ID, rows[5].ID, rows[6].ID})
}

func TestBuildRows_ReplyDepthIndentsNesting(t *testing.T) {
	st := threadStore(threadMessages())
	v := assembleFor(t, st, "focus")

	rows := buildRows(v, st)
	require.Equal(t, 0, rows[4].Depth) // D, direct child
	require.Equal(t, 1, rows[5].Depth) // F, nested under D
	require.Equal(t, 0, rows[6].Depth) // E, direct child
}

func TestBuildRows_LoadMoreWhenRepliesRemain(t *testing.T) {
	msgs := threadMessages()
	// Advertise more replies than the store knows about.
	msgs[3].ReplyCount = 6
	st := threadStore(msgs)
	v := assembleFor(t, st, "focus")

	rows := buildRows(v, st)
	require.Equal(t, RowLoadMore, rows[len(rows)-1].Kind)
	require.Equal(t, 4, remainingReplies("focus", st))
	require.Equal(t, "2", nextCursor("focus", st))
}

func TestBuildRows_NoLoadMoreWhenComplete(t *testing.T) {
	st := threadStore(threadMessages())
	v := assembleFor(t, st, "focus")

	rows := buildRows(v, st)
	for _, row := range rows {
		require.NotEqual(t, RowLoadMore, row.Kind)
	}
}

func TestRowZoneID_RoundTrip(t *testing.T) {
	id, ok := parseRowZoneID(rowZoneID("abc-123"))
	require.True(t, ok)
	require.Equal(t, "abc-123", id)

	_, ok = parseRowZoneID("other:abc")
	require.False(t, ok)
}

func TestRelTime(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"seconds", now.Add(-30 * time.Second), "now"},
		{"minutes", now.Add(-5 * time.Minute), "5m"},
		{"hours", now.Add(-3 * time.Hour), "3h"},
		{"days", now.Add(-49 * time.Hour), "2d"},
		{"old", now.Add(-90 * 24 * time.Hour), "May 27 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, relTime(tt.ts, now))
		})
	}
}

func TestSnippet(t *testing.T) {
	require.Equal(t, "one line", snippet("one line"))
	require.Equal(t, "first", snippet("first\nsecond\nthird"))
	require.Equal(t, "", snippet(""))
}
