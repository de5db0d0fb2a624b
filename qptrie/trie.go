package qptrie

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// config carries the advisory, constructor-time settings an Option can
// adjust. Following the functional-options idiom used throughout
// optakt-flow-dps (ral/options.go, service/mapper/options.go), New takes
// a variadic Option list rather than a config struct directly.
type config struct {
	capacityHint int
}

// Option configures a Trie at construction time.
type Option func(*config)

// WithCapacityHint advises the trie that it will end up holding roughly n
// entries. The hint is advisory only: it is never validated, and New does
// not use it for any allocation, so a trie built with or without it
// behaves identically.
func WithCapacityHint(n int) Option {
	return func(c *config) { c.capacityHint = n }
}

// Trie is an in-memory, ordered key→value map keyed by byte strings. The
// zero value is an empty trie, the same as what New returns. A Trie has a
// single owner: concurrent readers may share it freely so long as no
// mutator is active, but the trie itself does no locking.
type Trie[K Keyer, V any] struct {
	root node[K, V]
	size int
}

// New returns an empty Trie, optionally configured with Option values.
func New[K Keyer, V any](opts ...Option) *Trie[K, V] {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Trie[K, V]{}
}

// Count returns the number of entries in the trie.
func (t *Trie[K, V]) Count() int { return t.size }

// IsEmpty reports whether the trie holds no entries.
func (t *Trie[K, V]) IsEmpty() bool { return t.size == 0 }

// Get returns the value stored for key, if any.
func (t *Trie[K, V]) Get(key K) (V, bool) {
	kb := key.Bytes()
	cur := t.root

	for cur != nil {
		switch c := cur.(type) {
		case *leafNode[K, V]:
			if keysEqual(c.key, key) {
				return c.val, true
			}
			var zero V
			return zero, false

		case *branchNode[K, V]:
			b := bitFor(nibbleAt(kb, c.choice))
			if !present(c.bitmap, b) {
				var zero V
				return zero, false
			}
			cur = c.children[slotIndex(c.bitmap, b)]
		}
	}

	var zero V
	return zero, false
}

// Contains reports whether key is present in the trie.
func (t *Trie[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// At returns the value for key, panicking if the key is absent. It is the
// indexed-access operation of §6, emulated as a method since Go has no
// user-definable index operator.
func (t *Trie[K, V]) At(key K) V {
	v, ok := t.Get(key)
	invariant(ok, fmt.Sprintf("At: key %q not present", key.Bytes()))
	return v
}

// Insert stores val under key, returning the prior value (if any). It
// locates the split point with two descents (see insertInto) and
// rewrites the subtree there in place; no parent pointers are kept.
func (t *Trie[K, V]) Insert(key K, val V) (V, bool) {
	kb := key.Bytes()

	if t.root == nil {
		t.root = newLeaf[K, V](key, val)
		t.size++
		var zero V
		return zero, false
	}

	old, replaced := insertInto[K, V](&t.root, key, kb, val)
	if !replaced {
		t.size++
	}

	return old, replaced
}

// descendLeaf walks from n toward a leaf, following the child whose bit
// matches kb's nybble at each branch's choice when that child exists,
// and an arbitrary child (the first one) otherwise. The leaf it reaches
// is not necessarily the closest match for kb — only the best one
// reachable by trusting kb's own bits wherever the tree lets it. Callers
// use it purely to get *a* leaf to compute the true critical nybble
// against (see insertInto, Entry): since every branch this walk
// actually follows via a present bit agrees with kb at that position,
// the first place kb and the reached leaf differ is never earlier than
// any branch genuinely discriminating along the way — exactly what a
// second, corrective descent (stopping once a branch's own choice
// passes that critical nybble) needs to splice in the new key at the
// right depth instead of nesting it under the wrong branch.
func descendLeaf[K Keyer, V any](n node[K, V], kb []byte) *leafNode[K, V] {
	for {
		switch c := n.(type) {
		case *leafNode[K, V]:
			return c
		case *branchNode[K, V]:
			b := bitFor(nibbleAt(kb, c.choice))
			if present(c.bitmap, b) {
				n = c.children[slotIndex(c.bitmap, b)]
			} else {
				n = c.children[0]
			}
		}
	}
}

// insertInto rewrites *slot to hold key -> val, returning the prior
// value if key was already present. It runs two passes: descendLeaf
// finds some existing leaf to measure against, then a second descent
// from *slot stops at the first point whose own discriminating choice
// would come at or after the critical nybble between key and that leaf
// — that point may be a leaf, an existing branch whose own choice
// already equals the critical nybble (the new key becomes a direct
// sibling there, no new branch needed), or a deeper branch that must
// become the child of a brand-new branch spliced in above it.
func insertInto[K Keyer, V any](slot *node[K, V], key K, kb []byte, val V) (V, bool) {
	existing := descendLeaf[K, V](*slot, kb)
	if keysEqual(existing.key, key) {
		old := existing.val
		existing.val = val
		return old, true
	}

	cstar := criticalNybble(kb, existing.key.Bytes())
	cur := slot

	for {
		branch, ok := (*cur).(*branchNode[K, V])
		if !ok || branch.choice > cstar {
			break
		}

		b := bitFor(nibbleAt(kb, branch.choice))
		if !present(branch.bitmap, b) {
			branch.bitmap, branch.children = insertChild[K, V](branch.bitmap, branch.children, b, node[K, V](newLeaf[K, V](key, val)))
			var zero V
			return zero, false
		}

		cur = &branch.children[slotIndex(branch.bitmap, b)]
	}

	probe := anyLeaf[K, V](*cur)
	*cur = spliceLeafAndNode[K, V](cstar, newLeaf[K, V](key, val), *cur, probe.key.Bytes())

	var zero V
	return zero, false
}

// spliceLeafAndNode builds the branch that discriminates newLf from the
// existing subtree old at nybble index choice. old is kept unchanged as
// one whole child, whether it is itself a leaf or a branch; probeKey is
// the byte view of any key already inside old, used only to decide
// which side of the new branch old belongs on.
func spliceLeafAndNode[K Keyer, V any](choice int, newLf *leafNode[K, V], old node[K, V], probeKey []byte) *branchNode[K, V] {
	b1 := bitFor(nibbleAt(newLf.key.Bytes(), choice))
	b2 := bitFor(nibbleAt(probeKey, choice))
	invariant(b1 != b2, "spliceLeafAndNode: nodes do not diverge at the computed choice")

	br := newBranch[K, V](choice)
	br.bitmap = (uint32(1) << b1) | (uint32(1) << b2)

	if b1 < b2 {
		br.children = []node[K, V]{node[K, V](newLf), old}
	} else {
		br.children = []node[K, V]{old, node[K, V](newLf)}
	}

	return br
}

// Remove deletes key from the trie, returning its prior value (if any).
// A branch whose fan-out drops to one collapses into its sole remaining
// child.
func (t *Trie[K, V]) Remove(key K) (V, bool) {
	kb := key.Bytes()

	if t.root == nil {
		var zero V
		return zero, false
	}

	if lf, ok := t.root.(*leafNode[K, V]); ok {
		if keysEqual(lf.key, key) {
			old := lf.val
			t.root = nil
			t.size--
			return old, true
		}
		var zero V
		return zero, false
	}

	old, removed := removeFrom[K, V](&t.root, kb, key)
	if removed {
		t.size--
	}

	return old, removed
}

// removeFrom assumes *slot holds a branch (the root-leaf case is handled
// by the caller) and removes key from beneath it, collapsing fan-out-1
// branches as it unwinds.
func removeFrom[K Keyer, V any](slot *node[K, V], kb []byte, key K) (V, bool) {
	br := (*slot).(*branchNode[K, V])
	b := bitFor(nibbleAt(kb, br.choice))

	if !present(br.bitmap, b) {
		var zero V
		return zero, false
	}

	idx := slotIndex(br.bitmap, b)
	child := br.children[idx]

	if lf, ok := child.(*leafNode[K, V]); ok {
		if !keysEqual(lf.key, key) {
			var zero V
			return zero, false
		}

		old := lf.val
		br.bitmap, br.children = removeChild[K, V](br.bitmap, br.children, b)
		if len(br.children) == 1 {
			*slot = br.children[0]
		}
		return old, true
	}

	return removeFrom[K, V](&br.children[idx], kb, key)
}

// Extend inserts every pair from pairs, in order, equivalent to calling
// Insert repeatedly.
func (t *Trie[K, V]) Extend(pairs iter.Seq2[K, V]) {
	for k, v := range pairs {
		t.Insert(k, v)
	}
}

// Clone returns a deep structural copy of t; mutating one does not affect
// the other.
func (t *Trie[K, V]) Clone() *Trie[K, V] {
	clone := &Trie[K, V]{size: t.size}
	if t.root != nil {
		clone.root = cloneNode[K, V](t.root)
	}
	return clone
}

func cloneNode[K Keyer, V any](n node[K, V]) node[K, V] {
	switch c := n.(type) {
	case *leafNode[K, V]:
		return &leafNode[K, V]{key: c.key, val: c.val}

	case *branchNode[K, V]:
		children := make([]node[K, V], len(c.children))
		for i, child := range c.children {
			children[i] = cloneNode[K, V](child)
		}
		return &branchNode[K, V]{choice: c.choice, bitmap: c.bitmap, children: children}
	}

	return nil
}

// String renders a one-line summary, in the spirit of the teacher's
// Twig.String().
func (t *Trie[K, V]) String() string {
	return fmt.Sprintf("<qptrie|%d entries>", t.size)
}

// Dump writes an indented tree representation of t to w, for debugging.
func (t *Trie[K, V]) Dump(w io.Writer) {
	if t.root == nil {
		fmt.Fprintln(w, "<empty>")
		return
	}
	dumpNode[K, V](w, t.root, 0)
}

func dumpNode[K Keyer, V any](w io.Writer, n node[K, V], depth int) {
	indent := strings.Repeat("  ", depth)

	switch c := n.(type) {
	case *leafNode[K, V]:
		fmt.Fprintf(w, "%sleaf %q = %v\n", indent, c.key.Bytes(), c.val)

	case *branchNode[K, V]:
		fmt.Fprintf(w, "%sbranch choice=%d fanout=%d\n", indent, c.choice, len(c.children))
		for _, child := range c.children {
			dumpNode[K, V](w, child, depth+1)
		}
	}
}
