package resp3

import "github.com/machinefabric/resp-go/resptype"

// StreamedFrame assembles the frames and chunks that follow a streamed
// header (one announced with "?" in place of a length) into a single
// complete Frame. Callers feed it every frame Decode produces at that
// position, in order, until AddFrame reports IsFinished.
//
// For a streamed BlobString, each unit must be a ChunkedString frame; their
// payloads are concatenated in arrival order into one growing buffer. For a
// streamed Array, Set, Map, or Push, each unit is a regular element frame;
// Map additionally requires an even number of elements, paired up in the
// order they arrived. In every case, a KindEndStream frame finishes the
// stream.
type StreamedFrame struct {
	kind     resptype.FrameKind
	attrs    *FrameMap
	elems    []Frame
	blob     []byte
	finished bool
}

// NewStreamedFrame starts assembling a stream of the given kind (one of
// KindArray, KindSet, KindMap, or KindBulkString).
func NewStreamedFrame(kind resptype.FrameKind) *StreamedFrame {
	return &StreamedFrame{kind: kind}
}

// SetAttributes attaches the attribute map that preceded the stream header,
// if any, to the frame IntoFrame eventually produces.
func (s *StreamedFrame) SetAttributes(attrs *FrameMap) {
	s.attrs = attrs
}

// IsFinished reports whether a KindEndStream frame has been added.
func (s *StreamedFrame) IsFinished() bool {
	return s.finished
}

// AddFrame feeds the next frame observed at the stream's position. It
// returns an error if the stream has already finished, or if f's kind
// doesn't belong in a stream of this kind.
func (s *StreamedFrame) AddFrame(f Frame) error {
	if s.finished {
		return resptype.NewDecodeError("stream.add_frame", "stream already finished")
	}
	if f.Kind == resptype.KindEndStream {
		s.finished = true
		return nil
	}

	if s.kind == resptype.KindBulkString {
		if f.Kind != resptype.KindChunkedString {
			return resptype.NewDecodeError("stream.add_frame", "blob string stream expects chunked string frames")
		}
		s.blob = append(s.blob, f.Bytes...)
		return nil
	}

	s.elems = append(s.elems, f)
	return nil
}

// IntoFrame produces the assembled frame. It errors if the stream has not
// yet seen its end-of-stream marker, or if a Map stream received an odd
// number of elements.
func (s *StreamedFrame) IntoFrame() (Frame, error) {
	if !s.finished {
		return Frame{}, resptype.NewDecodeError("stream.into_frame", "stream not finished")
	}

	var f Frame
	switch s.kind {
	case resptype.KindBulkString:
		f = BlobString(s.blob)
	case resptype.KindArray:
		f = Array(s.elems)
	case resptype.KindPush:
		f = Push(s.elems)
	case resptype.KindSet:
		f = SetFrame(NewFrameSet(s.elems))
	case resptype.KindMap:
		if len(s.elems)%2 != 0 {
			return Frame{}, resptype.NewDecodeError("stream.into_frame", "map stream received an odd number of elements")
		}
		pairs := make([]MapEntry, 0, len(s.elems)/2)
		for i := 0; i < len(s.elems); i += 2 {
			pairs = append(pairs, MapEntry{Key: s.elems[i], Value: s.elems[i+1]})
		}
		f = MapFrame(NewFrameMap(pairs))
	default:
		return Frame{}, resptype.NewDecodeError("stream.into_frame", "unsupported stream kind "+s.kind.String())
	}

	if s.attrs != nil {
		f.Attrs = s.attrs
	}
	return f, nil
}
