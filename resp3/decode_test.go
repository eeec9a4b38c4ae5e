package resp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinefabric/resp-go/resptype"
)

func TestDecodeCompleteScalars(t *testing.T) {
	t.Run("simple string", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte("+OK\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
		assert.True(t, Equal(SimpleString("OK"), f))
	})

	t.Run("double", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte(",3.14\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 7, n)
		assert.Equal(t, 3.14, f.Float)
	})

	t.Run("double infinities", func(t *testing.T) {
		f, _, err := DecodeComplete([]byte(",inf\r\n"))
		require.NoError(t, err)
		assert.True(t, f.Float > 0 && f.Float*2 == f.Float)

		f, _, err = DecodeComplete([]byte(",-inf\r\n"))
		require.NoError(t, err)
		assert.True(t, f.Float < 0 && f.Float*2 == f.Float)
	})

	t.Run("double rejects nan", func(t *testing.T) {
		_, _, err := DecodeComplete([]byte(",nan\r\n"))
		assert.Error(t, err)
	})

	t.Run("boolean", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte("#t\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.True(t, f.Bool)

		f, _, err = DecodeComplete([]byte("#f\r\n"))
		require.NoError(t, err)
		assert.False(t, f.Bool)

		_, _, err = DecodeComplete([]byte("#x\r\n"))
		assert.Error(t, err)
	})

	t.Run("big number", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte("(3492890328409238509324850943850943825024385\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 46, n)
		assert.Equal(t, "3492890328409238509324850943850943825024385", string(f.Bytes))
	})

	t.Run("null", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte("_\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.True(t, f.IsNull())
	})

	t.Run("verbatim string", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte("=15\r\nmkd:Some string\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 22, n)
		assert.Equal(t, "mkd", f.VerbatimFormat)
		assert.Equal(t, "Some string", string(f.Bytes))
	})

	t.Run("blob error", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte("!21\r\nSYNTAX invalid syntax\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 28, n)
		assert.True(t, f.IsError())
		assert.Equal(t, "SYNTAX invalid syntax", string(f.Bytes))
	})

	t.Run("number", func(t *testing.T) {
		f, n, err := DecodeComplete([]byte(":48293\r\n"))
		require.NoError(t, err)
		assert.Equal(t, 8, n)
		assert.Equal(t, int64(48293), f.Int)
	})
}

func TestDecodeMapAndSet(t *testing.T) {
	in := []byte("%2\r\n+first\r\n:1\r\n+second\r\n:2\r\n")
	f, n, err := DecodeComplete(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	require.Equal(t, 2, f.MapVal.Len())
	assert.Equal(t, "first", string(f.MapVal.Entries()[0].Key.Bytes))
	assert.Equal(t, int64(1), f.MapVal.Entries()[0].Value.Int)

	in = []byte("~3\r\n+a\r\n+b\r\n+c\r\n")
	f, n, err = DecodeComplete(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	assert.Equal(t, 3, f.SetVal.Len())
}

func TestDecodeMapDedupesRepeatedKey(t *testing.T) {
	in := []byte("%2\r\n+k\r\n:1\r\n+k\r\n:2\r\n")
	f, n, err := DecodeComplete(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	require.Equal(t, 1, f.MapVal.Len())
	assert.Equal(t, "k", string(f.MapVal.Entries()[0].Key.Bytes))
	assert.Equal(t, int64(2), f.MapVal.Entries()[0].Value.Int)
}

func TestDecodePush(t *testing.T) {
	in := []byte(">4\r\n+pubsub\r\n+message\r\n+channel\r\n+payload\r\n")
	f, n, err := DecodeComplete(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	assert.True(t, f.IsPubSubMessage())
	assert.False(t, f.IsPatternPubSubMessage())
}

func TestDecodeAttributeAttachesToFollowingFrame(t *testing.T) {
	in := []byte("|1\r\n+ttl\r\n:10\r\n$5\r\nhello\r\n")
	f, n, err := DecodeComplete(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	assert.Equal(t, resptype.KindBulkString, f.Kind)
	require.NotNil(t, f.Attrs)
	require.Equal(t, 1, f.Attrs.Len())
	assert.Equal(t, "ttl", string(f.Attrs.Entries()[0].Key.Bytes))
	assert.Equal(t, int64(10), f.Attrs.Entries()[0].Value.Int)
}

func TestDecodeAttributeCannotTargetAttributelessKind(t *testing.T) {
	in := []byte("|1\r\n+ttl\r\n:10\r\n_\r\n")
	_, _, err := DecodeComplete(in)
	assert.Error(t, err)
}

func TestDecodeStreamingBlobHeader(t *testing.T) {
	df, n, err := Decode([]byte("$?\r\n;4\r\nHell\r\n;0\r\n"))
	require.NoError(t, err)
	require.True(t, df.IsStreaming())
	assert.Equal(t, resptype.KindBulkString, df.Streaming.Kind)
	assert.Equal(t, 4, n)
}

func TestDecodeCompleteRejectsStreamingHeader(t *testing.T) {
	_, _, err := DecodeComplete([]byte("$?\r\n;0\r\n"))
	assert.Error(t, err)
}

func TestDecodeNestedStreamedBlobResolvesWithinFixedArray(t *testing.T) {
	in := []byte("*1\r\n$?\r\n;4\r\nHell\r\n;6\r\no worl\r\n;1\r\nd\r\n;0\r\n")
	f, n, err := DecodeComplete(in)
	require.NoError(t, err)
	assert.Equal(t, len(in), n)
	require.Len(t, f.Elems, 1)
	assert.Equal(t, "Hello world", string(f.Elems[0].Bytes))
}

func TestDecodeIncompleteNeverPartiallyAdvances(t *testing.T) {
	full := []byte("*2\r\n$3\r\nfoo\r\n:7\r\n")
	for k := 0; k < len(full); k++ {
		df, n, err := Decode(full[:k])
		assert.NoError(t, err, "k=%d", k)
		assert.Equal(t, 0, n, "k=%d", k)
		assert.Equal(t, DecodedFrame{}, df, "k=%d", k)
	}
}

func TestDecodeHelloMinimal(t *testing.T) {
	f, n, err := DecodeComplete([]byte("HELLO 3\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	require.NotNil(t, f.HelloVal)
	assert.Equal(t, resptype.Version3, f.HelloVal.Version)
	assert.Nil(t, f.HelloVal.Auth)
}

func TestDecodeHelloWithAuth(t *testing.T) {
	f, _, err := DecodeComplete([]byte("HELLO 3 AUTH default s3cret\r\n"))
	require.NoError(t, err)
	require.NotNil(t, f.HelloVal.Auth)
	assert.Equal(t, "default", f.HelloVal.Auth.Username)
	assert.Equal(t, "s3cret", f.HelloVal.Auth.Password)
}

func TestDecodeHelloRejectsBadVersion(t *testing.T) {
	_, _, err := DecodeComplete([]byte("HELLO 7\r\n"))
	assert.Error(t, err)
}

func TestDecodeJunkPrefixIsImmediateError(t *testing.T) {
	_, _, err := DecodeComplete([]byte("X garbage\r\n"))
	assert.Error(t, err)
}
