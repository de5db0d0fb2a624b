package qptrie

// Entry is the result of looking up a key: either Occupied (an existing
// leaf matches it) or Vacant (the location where a new leaf would be
// inserted). It borrows the trie exclusively for its lifetime — do not
// mutate the trie through any other handle while an Entry from it is in
// use.
type Entry[K Keyer, V any] struct {
	t        *Trie[K, V]
	key      K
	occupied *leafNode[K, V]             // non-nil iff Occupied
	install  func(val V) *leafNode[K, V] // set iff Vacant; completes the insertion
}

// Entry looks up key once and returns a handle describing the outcome,
// remembering the insertion path so Set/OrInsert on a Vacant entry never
// redescends. A Vacant entry's path is found the same two-pass way as
// Insert (see insertInto in trie.go): a first descent locates some
// existing leaf to measure key against, then a second descent finds the
// exact point — an existing branch taking key as a direct new sibling,
// or a shallower point above an existing branch/leaf that must become
// the child of a brand-new branch — and install closes over that point.
func (t *Trie[K, V]) Entry(key K) *Entry[K, V] {
	kb := key.Bytes()

	if t.root == nil {
		return &Entry[K, V]{t: t, key: key, install: func(val V) *leafNode[K, V] {
			lf := newLeaf[K, V](key, val)
			t.root = lf
			t.size++
			return lf
		}}
	}

	existing := descendLeaf[K, V](t.root, kb)
	if keysEqual(existing.key, key) {
		return &Entry[K, V]{t: t, key: key, occupied: existing}
	}

	cstar := criticalNybble(kb, existing.key.Bytes())
	slot := &t.root

	for {
		branch, ok := (*slot).(*branchNode[K, V])
		if !ok || branch.choice > cstar {
			break
		}

		b := bitFor(nibbleAt(kb, branch.choice))
		if !present(branch.bitmap, b) {
			br := branch
			bit := b

			return &Entry[K, V]{t: t, key: key, install: func(val V) *leafNode[K, V] {
				lf := newLeaf[K, V](key, val)
				br.bitmap, br.children = insertChild[K, V](br.bitmap, br.children, bit, node[K, V](lf))
				t.size++
				return lf
			}}
		}

		slot = &branch.children[slotIndex(branch.bitmap, b)]
	}

	target := slot
	old := *slot
	probeBytes := anyLeaf[K, V](old).key.Bytes()

	return &Entry[K, V]{t: t, key: key, install: func(val V) *leafNode[K, V] {
		lf := newLeaf[K, V](key, val)
		*target = spliceLeafAndNode[K, V](cstar, lf, old, probeBytes)
		t.size++
		return lf
	}}
}

// Occupied reports whether the entry refers to an existing leaf.
func (e *Entry[K, V]) Occupied() bool { return e.occupied != nil }

// Get returns the entry's current value, if Occupied.
func (e *Entry[K, V]) Get() (V, bool) {
	if e.occupied != nil {
		return e.occupied.val, true
	}
	var zero V
	return zero, false
}

// Set installs val, replacing the existing value if Occupied or
// completing the remembered insertion if Vacant. After Set the entry
// refers to the (now-present) leaf.
func (e *Entry[K, V]) Set(val V) {
	if e.occupied != nil {
		e.occupied.val = val
		return
	}

	e.occupied = e.install(val)
	e.install = nil
}

// OrInsert returns the entry's current value if Occupied, otherwise
// installs val and returns it.
func (e *Entry[K, V]) OrInsert(val V) V {
	if e.occupied != nil {
		return e.occupied.val
	}
	e.Set(val)
	return val
}

// Remove deletes the entry's key from the trie, returning its prior
// value. It is a no-op returning (zero, false) on a Vacant entry.
func (e *Entry[K, V]) Remove() (V, bool) {
	if e.occupied == nil {
		var zero V
		return zero, false
	}
	return e.t.Remove(e.key)
}
