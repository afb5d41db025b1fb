package thread

// Direction controls focus movement through the assembled sequence.
type Direction string

const (
	// DirectionUp moves toward the thread root.
	DirectionUp Direction = "up"
	// DirectionDown moves toward the newest reply.
	DirectionDown Direction = "down"
)

// String returns the direction as a string.
func (d Direction) String() string {
	return string(d)
}

// MoveFocus translates a move request anchored at anchorID into a linear
// index into v.Sequence. The sequence interleaves three segments (ancestors,
// the focused slot, descendants) while requests are expressed against
// message identity, so each segment needs its own offset arithmetic:
//
//   - anchored at the focused message: Up lands on the last ancestor,
//     Down on the first descendant;
//   - anchored at ancestor i: Up is i-1, Down is i+1 (i+1 may be the
//     focused slot itself);
//   - anchored at descendant j (sequence position len(ancestors)+1+j):
//     Up is len(ancestors)+j, Down is len(ancestors)+j+2 — the +2 skips
//     over the focused slot sitting between the segments.
//
// The arithmetic preserves the round-trip property: Down followed by Up from
// the resulting row returns to the starting index.
//
// The second return is false when the move would leave the sequence or when
// anchorID is not in the current view (a stale id from a superseded
// snapshot); both are no-ops, never errors.
func MoveFocus(anchorID string, dir Direction, v View) (int, bool) {
	target := -1

	switch {
	case anchorID == v.FocusedID:
		if dir == DirectionUp {
			target = len(v.Ancestors) - 1
		} else {
			target = len(v.Ancestors) + 1
		}
	default:
		if i := indexOf(v.Ancestors, anchorID); i >= 0 {
			if dir == DirectionUp {
				target = i - 1
			} else {
				target = i + 1
			}
		} else if j := indexOf(v.Descendants, anchorID); j >= 0 {
			if dir == DirectionUp {
				target = len(v.Ancestors) + j
			} else {
				target = len(v.Ancestors) + j + 2
			}
		} else {
			return 0, false
		}
	}

	if target < 0 || target >= len(v.Sequence) {
		return 0, false
	}
	return target, true
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}
