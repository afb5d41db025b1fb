package threadview

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/strandtui/strand/internal/store"
	"github.com/strandtui/strand/internal/thread"
)

// RowKind distinguishes how a row is rendered and what interacting with it
// does.
type RowKind int

const (
	// RowAncestor is part of the chain above the focused message.
	RowAncestor RowKind = iota
	// RowFocused is the message the view is centered on.
	RowFocused
	// RowReply is a descendant below the focus.
	RowReply
	// RowLoadMore is the trailing affordance that fetches the next page of
	// the focused message's replies.
	RowLoadMore
)

// Row is one selectable line group in the thread view.
type Row struct {
	ID    string
	Kind  RowKind
	Depth int // indent level for replies, relative to the focus
}

// loadMoreID is the synthetic row id for the fetch-more affordance. Real
// message ids from feeds never collide with it because of the colon.
const loadMoreID = "row:load-more"

// Zone ID format: msg:{id}. One zone per row makes click-to-refocus a map
// lookup.
func rowZoneID(id string) string {
	return "msg:" + id
}

func parseRowZoneID(zoneID string) (string, bool) {
	id, ok := strings.CutPrefix(zoneID, "msg:")
	return id, ok
}

// buildRows maps an assembled view onto renderable rows. Row index i < the
// load-more row equals sequence index i, which is what lets MoveFocus output
// be used as a row selection directly.
func buildRows(v thread.View, st store.Store) []Row {
	rel := st.Snapshot()
	rows := make([]Row, 0, v.Len()+1)

	for i, id := range v.Sequence {
		row := Row{ID: id}
		switch {
		case i < v.FocusIndex():
			row.Kind = RowAncestor
		case i == v.FocusIndex():
			row.Kind = RowFocused
		default:
			row.Kind = RowReply
			row.Depth = replyDepth(id, v.FocusedID, rel, v.Len())
		}
		rows = append(rows, row)
	}

	if remainingReplies(v.FocusedID, st) > 0 {
		rows = append(rows, Row{ID: loadMoreID, Kind: RowLoadMore})
	}
	return rows
}

// replyDepth is the parent-chain distance from id up to the focus, used for
// indentation. Bounded by the sequence length so malformed chains cannot
// spin.
func replyDepth(id, focusedID string, rel thread.Relations, bound int) int {
	depth := 0
	current := id
	for steps := 0; steps <= bound; steps++ {
		parent, ok := rel.ParentOf(current)
		if !ok || parent == focusedID {
			return depth
		}
		depth++
		current = parent
	}
	return depth
}

// remainingReplies is how many direct children of id the store has not seen
// yet, per the id's advertised reply count.
func remainingReplies(id string, st store.Store) int {
	msg, err := st.Message(id)
	if err != nil {
		return 0
	}
	known := len(st.Snapshot().ChildrenOf(id))
	if msg.ReplyCount <= known {
		return 0
	}
	return msg.ReplyCount - known
}

// nextCursor is the fetch offset for the next page of id's replies: the
// number of children already known.
func nextCursor(id string, st store.Store) string {
	return strconv.Itoa(len(st.Snapshot().ChildrenOf(id)))
}

// relTime formats a timestamp the way feed clients do: compact and relative
// for recent messages, a date for old ones.
func relTime(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	d := now.Sub(ts)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return ts.Format("Jan 2 2006")
	}
}

// snippet is the first line of a body, for one-line rows.
func snippet(body string) string {
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		return body[:i]
	}
	return body
}
