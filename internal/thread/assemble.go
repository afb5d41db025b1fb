package thread

// View is the assembled, render-ordered picture of one thread snapshot:
// ancestors above the focused message, descendants below, and the merged
// sequence the viewport indexes into. Index 0..len(Sequence)-1 is stable
// until the focus or the underlying relations change.
type View struct {
	FocusedID   string
	Ancestors   []string
	Descendants []string
	Sequence    []string
	Version     int64
}

// FocusIndex is the linear index of the focused message in Sequence.
func (v View) FocusIndex() int {
	return len(v.Ancestors)
}

// Len is the length of the assembled sequence.
func (v View) Len() int {
	return len(v.Sequence)
}

// Assemble resolves the ancestor chain and descendant tree of focusedID
// against one relation snapshot and merges them into a single disjoint
// sequence.
//
// Ancestors are resolved first and take priority: an id that shows up in
// both walks (possible with racing or partial data) stays an ancestor and is
// dropped from the descendants. This trimming order is a fixed contract; it
// keeps behavior deterministic on malformed input.
//
// Views are always rebuilt from scratch, never patched incrementally. Both
// resolvers are linear in thread size, so a full recompute per focus change
// or store mutation is cheap enough and immune to staleness bugs.
func Assemble(focusedID string, rel Relations) View {
	parentID, _ := rel.ParentOf(focusedID)

	rawAncestors := ResolveAncestors(parentID, rel)
	rawDescendants := ResolveDescendants(focusedID, rel)

	// The focused id occupies its own slot; strip it from both walks so it
	// cannot appear twice in the sequence.
	ancestors := make([]string, 0, len(rawAncestors))
	inAncestors := make(map[string]bool, len(rawAncestors))
	for _, id := range rawAncestors {
		if id == focusedID {
			continue
		}
		ancestors = append(ancestors, id)
		inAncestors[id] = true
	}

	descendants := make([]string, 0, len(rawDescendants))
	for _, id := range rawDescendants {
		if id == focusedID || inAncestors[id] {
			continue
		}
		descendants = append(descendants, id)
	}

	sequence := make([]string, 0, len(ancestors)+1+len(descendants))
	sequence = append(sequence, ancestors...)
	sequence = append(sequence, focusedID)
	sequence = append(sequence, descendants...)

	return View{
		FocusedID:   focusedID,
		Ancestors:   ancestors,
		Descendants: descendants,
		Sequence:    sequence,
		Version:     rel.Version(),
	}
}
