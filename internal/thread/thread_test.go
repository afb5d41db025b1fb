package thread

// Shared test fixtures for the resolution and navigation tests.

// rel builds a snapshot from literal tables.
func rel(parents map[string]string, children map[string][]string) Relations {
	return NewRelations(1, parents, children)
}

// linearChain is A -> B -> C -> focus (A oldest), focus has no replies.
func linearChain() Relations {
	return rel(
		map[string]string{"B": "A", "C": "B", "focus": "C"},
		map[string][]string{"A": {"B"}, "B": {"C"}, "C": {"focus"}},
	)
}

// workedExample is the worked example from the thread view design:
// parentOf = {B:A, C:B, focus:C}, childrenOf = {focus:[D,E], D:[F]}.
func workedExample() Relations {
	return rel(
		map[string]string{"B": "A", "C": "B", "focus": "C"},
		map[string][]string{"focus": {"D", "E"}, "D": {"F"}},
	)
}
