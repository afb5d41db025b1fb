package thread

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDescendants_PreOrder(t *testing.T) {
	// childrenOf(F) = [X, Y], childrenOf(X) = [Z] => [X, Z, Y]
	r := rel(nil, map[string][]string{"F": {"X", "Y"}, "X": {"Z"}})

	flat := ResolveDescendants("F", r)
	require.Equal(t, []string{"X", "Z", "Y"}, flat)
}

func TestResolveDescendants_NoChildren(t *testing.T) {
	r := rel(nil, nil)
	require.Empty(t, ResolveDescendants("F", r))
}

func TestResolveDescendants_ExcludesSelf(t *testing.T) {
	r := rel(nil, map[string][]string{"F": {"A", "B"}})

	flat := ResolveDescendants("F", r)
	require.NotContains(t, flat, "F")
	require.Equal(t, []string{"A", "B"}, flat)
}

func TestResolveDescendants_DeepNesting(t *testing.T) {
	r := rel(nil, map[string][]string{
		"F": {"A", "D"},
		"A": {"B"},
		"B": {"C"},
		"D": {"E"},
	})

	flat := ResolveDescendants("F", r)
	// A's entire subtree before sibling D's subtree.
	require.Equal(t, []string{"A", "B", "C", "D", "E"}, flat)
}

func TestResolveDescendants_SiblingsBeforeNephews(t *testing.T) {
	// Siblings are emitted in stored order, each with its full subtree
	// before the next sibling begins.
	r := rel(nil, map[string][]string{
		"F": {"X", "Y", "Z"},
		"X": {"X1", "X2"},
		"Y": {"Y1"},
	})

	flat := ResolveDescendants("F", r)
	require.Equal(t, []string{"X", "X1", "X2", "Y", "Y1", "Z"}, flat)
}

func TestResolveDescendants_SelfCycleStops(t *testing.T) {
	// F lists itself as a reply: the second pop of F halts the walk.
	r := rel(nil, map[string][]string{"F": {"A", "F", "B"}})

	flat := ResolveDescendants("F", r)
	require.Equal(t, []string{"A"}, flat)
}

func TestResolveDescendants_ChildCycleStops(t *testing.T) {
	// A and B reply to each other; the walk stops at the first repeat
	// rather than looping.
	r := rel(nil, map[string][]string{"F": {"A"}, "A": {"B"}, "B": {"A"}})

	flat := ResolveDescendants("F", r)
	require.Equal(t, []string{"A", "B"}, flat)
}

func TestResolveDescendants_DuplicateChildTruncates(t *testing.T) {
	// Malformed feed with a duplicated child id: the conservative policy
	// truncates the whole walk at the repeat.
	r := rel(nil, map[string][]string{"F": {"A", "A", "B"}})

	flat := ResolveDescendants("F", r)
	require.Equal(t, []string{"A"}, flat)
}

func TestResolveDescendants_NoDuplicatesEver(t *testing.T) {
	r := rel(nil, map[string][]string{
		"F": {"A", "B"},
		"A": {"C"},
		"B": {"C"}, // C reachable twice
	})

	flat := ResolveDescendants("F", r)
	seen := make(map[string]bool)
	for _, id := range flat {
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
