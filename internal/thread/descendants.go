package thread

import (
	"github.com/strandtui/strand/internal/log"
)

// ResolveDescendants returns every direct and transitive reply of startID,
// flattened in pre-order: a parent immediately followed by its whole
// subtree, siblings in their stored display order. startID itself is
// excluded.
//
// The traversal is iterative over an explicit work list. When a popped id
// has already been visited (or startID resurfaces), the entire traversal
// stops: corrupt relation data gets a truncated result instead of an
// unbounded loop. That can cut short a legitimately reachable fan-out, which
// is the deliberate conservative trade-off.
func ResolveDescendants(startID string, rel Relations) []string {
	queue := []string{startID}
	seen := make(map[string]bool)
	var flat []string
	startEmitted := false

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if id == startID {
			if startEmitted {
				log.Warn(log.CatThread, "descendant walk truncated on cycle", "id", id)
				break
			}
			startEmitted = true
		} else {
			if seen[id] {
				log.Warn(log.CatThread, "descendant walk truncated on repeat", "id", id)
				break
			}
			seen[id] = true
			flat = append(flat, id)
		}

		children := rel.ChildrenOf(id)
		if len(children) == 0 {
			continue
		}
		// Push this node's children ahead of already-queued later siblings
		// so the descent is depth-first: each subtree is exhausted before
		// the next sibling subtree begins.
		next := make([]string, 0, len(children)+len(queue))
		next = append(next, children...)
		queue = append(next, queue...)
	}

	return flat
}
