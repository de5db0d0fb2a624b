package qptrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIndex(t *testing.T) {
	t.Parallel()

	// bits 1, 3, 5 set
	bitmap := uint32(1<<1 | 1<<3 | 1<<5)

	assert.Equal(t, 0, slotIndex(bitmap, 1))
	assert.Equal(t, 1, slotIndex(bitmap, 3))
	assert.Equal(t, 2, slotIndex(bitmap, 5))
}

func TestPresent(t *testing.T) {
	t.Parallel()

	bitmap := uint32(1 << 4)

	assert.True(t, present(bitmap, 4))
	assert.False(t, present(bitmap, 3))
	assert.False(t, present(bitmap, 5))
}

func TestInsertRemoveChild(t *testing.T) {
	t.Parallel()

	var (
		bitmap   uint32
		children []node[Bytes, int]
	)

	bitmap, children = insertChild[Bytes, int](bitmap, children, 5, node[Bytes, int](newLeaf[Bytes, int](Bytes("a"), 1)))
	bitmap, children = insertChild[Bytes, int](bitmap, children, 2, node[Bytes, int](newLeaf[Bytes, int](Bytes("b"), 2)))
	bitmap, children = insertChild[Bytes, int](bitmap, children, 9, node[Bytes, int](newLeaf[Bytes, int](Bytes("c"), 3)))

	require.Len(t, children, 3)
	// must stay ordered ascending by bit: 2, 5, 9
	assert.Equal(t, "b", string(children[0].(*leafNode[Bytes, int]).key))
	assert.Equal(t, "a", string(children[1].(*leafNode[Bytes, int]).key))
	assert.Equal(t, "c", string(children[2].(*leafNode[Bytes, int]).key))

	bitmap, children = removeChild[Bytes, int](bitmap, children, 5)

	require.Len(t, children, 2)
	assert.Equal(t, "b", string(children[0].(*leafNode[Bytes, int]).key))
	assert.Equal(t, "c", string(children[1].(*leafNode[Bytes, int]).key))
	assert.False(t, present(bitmap, 5))
}
