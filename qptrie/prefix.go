package qptrie

import "iter"

// anyLeaf returns an arbitrary leaf beneath n, following the first child
// at every branch. Used to validate a prefix match against a concrete key
// once descent has located a candidate subtree (see findSubtree).
func anyLeaf[K Keyer, V any](n node[K, V]) *leafNode[K, V] {
	for {
		switch c := n.(type) {
		case *leafNode[K, V]:
			return c
		case *branchNode[K, V]:
			n = c.children[0]
		}
	}
}

func countLeaves[K Keyer, V any](n node[K, V]) int {
	switch c := n.(type) {
	case *leafNode[K, V]:
		return 1
	case *branchNode[K, V]:
		total := 0
		for _, child := range c.children {
			total += countLeaves[K, V](child)
		}
		return total
	}
	return 0
}

func bytesHasPrefix(b, p []byte) bool {
	if len(b) < len(p) {
		return false
	}
	for i := range p {
		if b[i] != p[i] {
			return false
		}
	}
	return true
}

// findSubtree locates the subtree whose leaves all share p as a byte
// prefix. It descends following nybble comparisons against p, stopping
// at the first node whose choice index is at or past 2*len(p), or at a
// leaf — then verifies the match by checking an arbitrary leaf of that
// subtree, since branch decisions only ever examine the single nybble at
// their own choice index.
func findSubtree[K Keyer, V any](root node[K, V], p []byte) (node[K, V], bool) {
	if root == nil {
		return nil, false
	}

	choiceLen := 2 * len(p)
	cur := root

	for {
		br, ok := cur.(*branchNode[K, V])
		if !ok || br.choice >= choiceLen {
			break
		}

		b := bitFor(nibbleAt(p, br.choice))
		if !present(br.bitmap, b) {
			return nil, false
		}
		cur = br.children[slotIndex(br.bitmap, b)]
	}

	lf := anyLeaf[K, V](cur)
	if !bytesHasPrefix(lf.key.Bytes(), p) {
		return nil, false
	}

	return cur, true
}

// IterPrefix returns a sequence over exactly the entries whose key has p
// as a byte prefix, in lexicographic order.
func (t *Trie[K, V]) IterPrefix(p []byte) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		sub, ok := findSubtree[K, V](t.root, p)
		if !ok {
			return
		}
		iterateSubtree[K, V](sub, yield)
	}
}

// IterPrefixMut is the mutable counterpart of IterPrefix.
func (t *Trie[K, V]) IterPrefixMut(p []byte) MutSeq[K, V] {
	return func(yield func(K, *V) bool) {
		sub, ok := findSubtree[K, V](t.root, p)
		if !ok {
			return
		}
		iterateSubtreeMut[K, V](sub, yield)
	}
}

// LongestCommonPrefix descends as Get would and returns the first c/2
// bytes of q (capped at len(q)), where c is the choice index of the
// deepest branch the descent reaches, or 0 when the root is a leaf or the
// trie is empty. Since c is a nybble index, the result is rounded down to
// a whole byte. The returned bytes are not compared with any stored key,
// and nybbles past that deepest branch are not examined.
func (t *Trie[K, V]) LongestCommonPrefix(q K) []byte {
	qb := q.Bytes()
	cur := t.root
	deepestChoice := 0

	for {
		br, ok := cur.(*branchNode[K, V])
		if !ok {
			break
		}

		deepestChoice = br.choice

		b := bitFor(nibbleAt(qb, br.choice))
		if !present(br.bitmap, b) {
			break
		}
		cur = br.children[slotIndex(br.bitmap, b)]
	}

	nBytes := deepestChoice / 2
	if nBytes > len(qb) {
		nBytes = len(qb)
	}

	return qb[:nBytes]
}

// RemovePrefix removes every entry whose key has p as a byte prefix,
// returning the count removed. The whole matching subtree is detached in
// one operation rather than leaf by leaf.
func (t *Trie[K, V]) RemovePrefix(p []byte) int {
	if t.root == nil {
		return 0
	}

	choiceLen := 2 * len(p)

	if br, ok := t.root.(*branchNode[K, V]); ok && br.choice < choiceLen {
		removed := removePrefixFrom[K, V](br, p, choiceLen)
		if removed > 0 && len(br.children) == 1 {
			t.root = br.children[0]
		}
		t.size -= removed
		return removed
	}

	lf := anyLeaf[K, V](t.root)
	if !bytesHasPrefix(lf.key.Bytes(), p) {
		return 0
	}

	removed := countLeaves[K, V](t.root)
	t.root = nil
	t.size -= removed
	return removed
}

// removePrefixFrom assumes br.choice < choiceLen and detaches the
// subtree matching p from beneath br, collapsing br's child if that
// child's own fan-out drops to one.
func removePrefixFrom[K Keyer, V any](br *branchNode[K, V], p []byte, choiceLen int) int {
	b := bitFor(nibbleAt(p, br.choice))
	if !present(br.bitmap, b) {
		return 0
	}

	idx := slotIndex(br.bitmap, b)
	child := br.children[idx]

	if childBranch, ok := child.(*branchNode[K, V]); ok && childBranch.choice < choiceLen {
		removed := removePrefixFrom[K, V](childBranch, p, choiceLen)
		if removed > 0 && len(childBranch.children) == 1 {
			br.children[idx] = childBranch.children[0]
		}
		return removed
	}

	lf := anyLeaf[K, V](child)
	if !bytesHasPrefix(lf.key.Bytes(), p) {
		return 0
	}

	removed := countLeaves[K, V](child)
	br.bitmap, br.children = removeChild[K, V](br.bitmap, br.children, b)
	return removed
}
