package resp2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundtrip(t *testing.T) {
	frames := []Frame{
		SimpleString("OK"),
		Error("ERR boom"),
		Integer(48293),
		Integer(-17),
		Integer(0),
		BulkString([]byte("foo")),
		BulkString([]byte("")),
		Null(),
		Array([]Frame{BulkString([]byte("Foo")), Null(), BulkString([]byte("Bar"))}),
		Array(nil),
	}

	for _, f := range frames {
		buf, n, err := Encode(nil, f)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, EncodeLen(f), n)

		got, m, err := Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, n, m)
		assert.True(t, Equal(f, got), "frame=%+v got=%+v", f, got)
	}
}

func TestEncodeLenMatchesEncode(t *testing.T) {
	f := Array([]Frame{
		BulkString([]byte("GET")),
		BulkString([]byte("some-very-long-key-name-to-pad-digits")),
		Integer(123456789),
	})

	want := EncodeLen(f)
	buf, n, err := Encode(make([]byte, 0, 4), f)
	require.NoError(t, err)
	assert.Equal(t, want, n)
	assert.Equal(t, want, len(buf))
}

func TestEncodeAppendsToExistingBuffer(t *testing.T) {
	buf := []byte("prefix")
	out, n, err := Encode(buf, SimpleString("OK"))
	require.NoError(t, err)
	assert.Equal(t, "prefix+OK\r\n", string(out))
	assert.Equal(t, 5, n)
}

func TestEncodeConcreteScenarios(t *testing.T) {
	buf, n, err := Encode(nil, Integer(48293))
	require.NoError(t, err)
	assert.Equal(t, ":48293\r\n", string(buf))
	assert.Equal(t, 8, n)

	buf, n, err = Encode(nil, BulkString([]byte("foo")))
	require.NoError(t, err)
	assert.Equal(t, "$3\r\nfoo\r\n", string(buf))
	assert.Equal(t, 9, n)
}
