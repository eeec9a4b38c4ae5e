package resp3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machinefabric/resp-go/resptype"
)

func TestStreamedFrameMapPairsUp(t *testing.T) {
	sf := NewStreamedFrame(resptype.KindMap)
	require.NoError(t, sf.AddFrame(SimpleString("a")))
	require.NoError(t, sf.AddFrame(Number(1)))
	require.NoError(t, sf.AddFrame(SimpleString("b")))
	require.NoError(t, sf.AddFrame(Number(2)))
	require.NoError(t, sf.AddFrame(EndStream()))
	require.True(t, sf.IsFinished())

	f, err := sf.IntoFrame()
	require.NoError(t, err)
	require.Equal(t, 2, f.MapVal.Len())
	assert.Equal(t, "a", string(f.MapVal.Entries()[0].Key.Bytes))
	assert.Equal(t, int64(2), f.MapVal.Entries()[1].Value.Int)
}

func TestStreamedFrameMapOddElementCountErrors(t *testing.T) {
	sf := NewStreamedFrame(resptype.KindMap)
	require.NoError(t, sf.AddFrame(SimpleString("a")))
	require.NoError(t, sf.AddFrame(EndStream()))

	_, err := sf.IntoFrame()
	assert.Error(t, err)
}

func TestStreamedFrameBlobRejectsNonChunkFrames(t *testing.T) {
	sf := NewStreamedFrame(resptype.KindBulkString)
	err := sf.AddFrame(Number(1))
	assert.Error(t, err)
}

func TestStreamedFrameIntoFrameBeforeFinishErrors(t *testing.T) {
	sf := NewStreamedFrame(resptype.KindArray)
	_, err := sf.IntoFrame()
	assert.Error(t, err)
}

func TestStreamedFrameAttachesAttributes(t *testing.T) {
	sf := NewStreamedFrame(resptype.KindArray)
	sf.SetAttributes(NewFrameMap([]MapEntry{{Key: SimpleString("k"), Value: Number(1)}}))
	require.NoError(t, sf.AddFrame(Number(1)))
	require.NoError(t, sf.AddFrame(EndStream()))

	f, err := sf.IntoFrame()
	require.NoError(t, err)
	require.NotNil(t, f.Attrs)
	assert.Equal(t, 1, f.Attrs.Len())
}

func TestDecodeRejectsAttributeBetweenBlobStreamChunks(t *testing.T) {
	// A streamed blob string nested inside a fixed-length array forces the
	// decoder through its nested-stream reassembly path, where the
	// between-chunks restriction is enforced.
	in := []byte("*1\r\n$?\r\n;4\r\nHell\r\n|1\r\n+k\r\n+v\r\n;0\r\n")
	_, _, err := DecodeComplete(in)
	assert.Error(t, err)
}
