package thread

// Relations is an immutable snapshot of the reply graph: the reply-to
// relation and the ordered direct replies of each message. Stores hand out a
// fresh snapshot after every mutation, so a Relations value never changes
// underneath a caller (copy-on-write at the store boundary).
//
// Both tables are untrusted: the parent relation may be cyclic or
// self-referential and children lists may contain duplicates. The resolvers
// guard against both rather than assuming clean input.
type Relations struct {
	version  int64
	parents  map[string]string
	children map[string][]string
}

// NewRelations builds a snapshot over the given tables. Ownership of the
// maps transfers to the snapshot; callers must not mutate them afterwards.
func NewRelations(version int64, parents map[string]string, children map[string][]string) Relations {
	if parents == nil {
		parents = make(map[string]string)
	}
	if children == nil {
		children = make(map[string][]string)
	}
	return Relations{version: version, parents: parents, children: children}
}

// Version identifies this snapshot. Versions increase monotonically as the
// backing store mutates.
func (r Relations) Version() int64 {
	return r.version
}

// ParentOf returns the reply-to target of id, if any.
func (r Relations) ParentOf(id string) (string, bool) {
	parent, ok := r.parents[id]
	return parent, ok
}

// ChildrenOf returns the ordered direct replies of id. The returned slice is
// shared with the snapshot and must not be mutated.
func (r Relations) ChildrenOf(id string) []string {
	return r.children[id]
}
