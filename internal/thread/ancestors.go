package thread

import (
	"github.com/strandtui/strand/internal/log"
)

// ResolveAncestors walks the reply-to relation from parentID up to the
// thread root and returns the chain root-first, nearest ancestor last.
// parentID is the parent of the focused message; pass "" when the focused
// message is a root, which yields an empty chain.
//
// The walk is bounded by a seen-set: a parent pointer that loops back into
// the chain terminates the walk instead of recursing forever. Truncation is
// silent at the API level (the render must never fail on corrupt data).
func ResolveAncestors(parentID string, rel Relations) []string {
	var chain []string
	seen := make(map[string]bool)

	current := parentID
	for current != "" {
		if seen[current] {
			log.Warn(log.CatThread, "ancestor chain truncated on cycle", "id", current)
			break
		}
		seen[current] = true
		chain = append(chain, current)

		next, ok := rel.ParentOf(current)
		if !ok {
			break
		}
		current = next
	}

	// The walk ran child-to-parent; flip to root-first order.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
