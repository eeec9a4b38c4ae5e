package resp2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeScenarios(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		f, n, err := Decode([]byte(":48293\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 8, n)
		assert.True(t, Equal(Integer(48293), f))
	})

	t.Run("bulk string", func(t *testing.T) {
		f, n, err := Decode([]byte("$3\r\nfoo\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 9, n)
		assert.True(t, Equal(BulkString([]byte("foo")), f))
	})

	t.Run("array with null element", func(t *testing.T) {
		in := []byte("*3\r\n$3\r\nFoo\r\n$-1\r\n$3\r\nBar\r\n")
		f, n, err := Decode(in)
		require.NoError(t, err)
		assert.Equal(t, len(in), n)
		want := Array([]Frame{BulkString([]byte("Foo")), Null(), BulkString([]byte("Bar"))})
		assert.True(t, Equal(want, f))
	})

	t.Run("simple string", func(t *testing.T) {
		f, n, err := Decode([]byte("+OK\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.True(t, Equal(SimpleString("OK"), f))
	})

	t.Run("error", func(t *testing.T) {
		f, n, err := Decode([]byte("-ERR unknown command\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 22, n)
		assert.True(t, f.IsError())
		assert.Equal(t, "ERR unknown command", f.Str)
	})

	t.Run("null array", func(t *testing.T) {
		f, n, err := Decode([]byte("*-1\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.True(t, f.IsNull())
	})
}

func TestDecodeIncomplete(t *testing.T) {
	full := []byte("*3\r\n$3\r\nFoo\r\n$-1\r\n$3\r\nBar\r\n")
	for k := 0; k < len(full); k++ {
		f, n, err := Decode(full[:k])
		assert.NoError(t, err, "k=%d", k)
		assert.Equal(t, 0, n, "k=%d", k)
		assert.Equal(t, Frame{}, f, "k=%d", k)
	}
}

func TestDecodeJunkPrefixIsImmediateError(t *testing.T) {
	_, n, err := Decode([]byte("X garbage\r\n"))
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestDecodeIntegerOutOfRange(t *testing.T) {
	_, _, err := Decode([]byte(":99999999999999999999999\r\n"))
	assert.Error(t, err)
}

func TestDecodeBulkStringBadTerminator(t *testing.T) {
	_, _, err := Decode([]byte("$3\r\nfooXX"))
	assert.Error(t, err)
}

func TestDecodeBulkStringNegativeLengthBelowMinusOne(t *testing.T) {
	_, _, err := Decode([]byte("$-2\r\n"))
	assert.Error(t, err)
}

func TestDecodeEmptyInput(t *testing.T) {
	f, n, err := Decode(nil)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, Frame{}, f)
}
