package qptrie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes_Bytes(t *testing.T) {
	t.Parallel()

	b := Bytes("hello")
	assert.Equal(t, []byte("hello"), b.Bytes())
}

func TestStr_Bytes(t *testing.T) {
	t.Parallel()

	s := Str("hello")
	assert.Equal(t, []byte("hello"), s.Bytes())
}

func TestKeysEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, keysEqual(Bytes("abc"), Bytes("abc")))
	assert.False(t, keysEqual(Bytes("abc"), Bytes("abd")))
	assert.False(t, keysEqual(Bytes("ab"), Bytes("abc")))
	assert.True(t, keysEqual(Str("x"), Str("x")))
}
