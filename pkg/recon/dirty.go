package recon

// DirtySet builds a TreeNodeDirtyIDs set from node identifiers.
func DirtySet(ids ...uint64) map[uint64]struct{} {
	set := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ContainsDirtyID reports whether the subtree rooted at n contains a
// node whose identifier is in the dirty set. The reuse decision hinges
// on this: a subtree with any dirty node anywhere inside it cannot be
// attached as-is, while a dirty identifier from a different branch has
// no effect here.
func (n *TreeNode) ContainsDirtyID(ids map[uint64]struct{}) bool {
	if n == nil || len(ids) == 0 {
		return false
	}
	if _, ok := ids[n.id]; ok {
		return true
	}
	for _, child := range n.children {
		if child.ContainsDirtyID(ids) {
			return true
		}
	}
	return false
}
