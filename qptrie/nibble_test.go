package qptrie

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNibbleAt(t *testing.T) {
	t.Parallel()

	b := []byte{0xAB, 0xCD} // 1010_1011 1100_1101

	for _, tcase := range []*struct {
		Index  int
		Expect int
	}{
		{0, 0xA},
		{1, 0xB},
		{2, 0xC},
		{3, 0xD},
		{4, sentinel},
		{5, sentinel},
		{-0, 0xA},
	} {
		tcase := tcase
		t.Run(fmt.Sprintf("%d", tcase.Index), func(t *testing.T) {
			assert.Equal(t, tcase.Expect, nibbleAt(b, tcase.Index))
		})
	}
}

func TestNibbleAt_EmptyKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sentinel, nibbleAt(nil, 0))
	assert.Equal(t, sentinel, nibbleAt([]byte{}, 3))
}

func TestCriticalNybble(t *testing.T) {
	t.Parallel()

	for _, tcase := range []*struct {
		Name   string
		A, B   []byte
		Expect int
	}{
		{"differ in high nibble of byte 0", []byte{0x10}, []byte{0x20}, 0},
		{"differ in low nibble of byte 0", []byte{0x11}, []byte{0x12}, 1},
		{"differ in byte 1 low nibble", []byte("aa"), []byte("ab"), 3},
		{"b is a strict prefix of a", []byte("ab"), []byte("a"), 2},
		{"a is a strict prefix of b", []byte("a"), []byte("ab"), 2},
		{"empty a is a strict prefix of b", []byte(""), []byte("x"), 0},
		{"foobar vs foobaz", []byte("foobar"), []byte("foobaz"), 11},
	} {
		tcase := tcase
		t.Run(tcase.Name, func(t *testing.T) {
			assert.Equal(t, tcase.Expect, criticalNybble(tcase.A, tcase.B))
		})
	}
}

func TestBitFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(0), bitFor(sentinel))
	assert.Equal(t, uint(1), bitFor(0))
	assert.Equal(t, uint(16), bitFor(15))

	// the sentinel must sort before every real nybble
	for n := 0; n <= 15; n++ {
		assert.Less(t, bitFor(sentinel), bitFor(n))
	}
}
