// Package resp3 implements the RESP3 protocol: a strict superset of RESP2
// that adds typed scalars (Number, Double, BigNumber, Boolean, Null),
// typed aggregates (Map, Set, Push), verbatim strings, out-of-band
// streaming of chunked blobs and unbounded aggregates, and attribute
// metadata attached to the frame that follows it on the wire.
package resp3

import "github.com/machinefabric/resp-go/resptype"

// Frame is a single RESP3 protocol value. Which fields are meaningful is
// determined by Kind, following the same "one struct, several typed fields"
// shape resp2.Frame uses:
//
//   - KindSimpleString, KindError (SimpleError), KindBlobError, KindBigNumber,
//     KindChunkedString: Bytes holds the payload.
//   - KindVerbatimString: VerbatimFormat ("txt" or "mkd") and Bytes (the
//     payload, excluding the format tag and its ':' separator).
//   - KindNumber: Int.
//   - KindDouble: Float.
//   - KindBoolean: Bool.
//   - KindArray, KindPush: Elems.
//   - KindMap: MapVal.
//   - KindSet: SetVal.
//   - KindHello: HelloVal.
//   - KindNull, KindEndStream: no field is meaningful.
//
// Every kind except Null, ChunkedString, EndStream, Hello, and Attribute may
// carry a non-nil Attrs, the RESP3 attribute map decoded from a preceding
// '|' frame (spec §3.1, §3.4 invariant 3: Attribute frames are merged into
// Attrs and never surface as their own top-level Frame).
type Frame struct {
	Kind           resptype.FrameKind
	Bytes          []byte
	VerbatimFormat string
	Int            int64
	Float          float64
	Bool           bool
	Elems          []Frame
	MapVal         *FrameMap
	SetVal         *FrameSet
	HelloVal       *Hello
	Attrs          *FrameMap
}

// Hello is the decoded payload of a RESP3 HELLO handshake frame.
type Hello struct {
	Version resptype.Version
	Auth    *resptype.AuthCredentials
}

// MapEntry is one key/value pair of a Map frame or an attribute map.
type MapEntry struct {
	Key   Frame
	Value Frame
}

func SimpleString(s string) Frame { return Frame{Kind: resptype.KindSimpleString, Bytes: []byte(s)} }
func SimpleError(s string) Frame  { return Frame{Kind: resptype.KindError, Bytes: []byte(s)} }
func BlobString(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{Kind: resptype.KindBulkString, Bytes: b}
}
func BlobError(b []byte) Frame { return Frame{Kind: resptype.KindBlobError, Bytes: b} }

// VerbatimString builds a VerbatimString frame. format must be "txt" or "mkd".
func VerbatimString(format string, data []byte) Frame {
	return Frame{Kind: resptype.KindVerbatimString, VerbatimFormat: format, Bytes: data}
}

func Number(n int64) Frame     { return Frame{Kind: resptype.KindNumber, Int: n} }
func Double(f float64) Frame   { return Frame{Kind: resptype.KindDouble, Float: f} }
func BigNumber(d []byte) Frame { return Frame{Kind: resptype.KindBigNumber, Bytes: d} }
func Boolean(b bool) Frame     { return Frame{Kind: resptype.KindBoolean, Bool: b} }
func Null() Frame              { return Frame{Kind: resptype.KindNull} }

func Array(elems []Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Kind: resptype.KindArray, Elems: elems}
}

func Push(elems []Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Kind: resptype.KindPush, Elems: elems}
}

func MapFrame(m *FrameMap) Frame { return Frame{Kind: resptype.KindMap, MapVal: m} }
func SetFrame(s *FrameSet) Frame { return Frame{Kind: resptype.KindSet, SetVal: s} }

func HelloFrame(version resptype.Version, auth *resptype.AuthCredentials) Frame {
	return Frame{Kind: resptype.KindHello, HelloVal: &Hello{Version: version, Auth: auth}}
}

func ChunkedString(b []byte) Frame { return Frame{Kind: resptype.KindChunkedString, Bytes: b} }
func EndStream() Frame             { return Frame{Kind: resptype.KindEndStream} }

// WithAttributes returns a copy of f with its attribute map set to attrs.
// It panics if f's kind cannot carry attributes; callers should only reach
// for it on frames where resptype.FrameKind.AllowsAttributes is true.
func WithAttributes(f Frame, attrs *FrameMap) Frame {
	if !f.Kind.AllowsAttributes() {
		panic("resp3: " + f.Kind.String() + " frames cannot carry attributes")
	}
	f.Attrs = attrs
	return f
}

// Equal reports whether a and b are the same frame value, including
// attributes, recursively through aggregates.
func Equal(a, b Frame) bool {
	if a.Kind != b.Kind {
		return false
	}
	if !attrsEqual(a.Attrs, b.Attrs) {
		return false
	}

	switch a.Kind {
	case resptype.KindSimpleString, resptype.KindError, resptype.KindBlobError,
		resptype.KindBigNumber, resptype.KindChunkedString:
		return string(a.Bytes) == string(b.Bytes)
	case resptype.KindVerbatimString:
		return a.VerbatimFormat == b.VerbatimFormat && string(a.Bytes) == string(b.Bytes)
	case resptype.KindNumber:
		return a.Int == b.Int
	case resptype.KindDouble:
		return a.Float == b.Float
	case resptype.KindBoolean:
		return a.Bool == b.Bool
	case resptype.KindNull, resptype.KindEndStream:
		return true
	case resptype.KindArray, resptype.KindPush:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case resptype.KindMap:
		return mapEqual(a.MapVal, b.MapVal)
	case resptype.KindSet:
		return setEqual(a.SetVal, b.SetVal)
	case resptype.KindHello:
		return helloEqual(a.HelloVal, b.HelloVal)
	default:
		return false
	}
}

func attrsEqual(a, b *FrameMap) bool {
	return mapEqual(a, b)
}

// mapEqual compares two Map frames (or attribute maps) as mathematical maps,
// per spec §3.4 invariant 1: entries are matched by key/value equality, not
// by slice position, since neither the wire protocol nor the hashmap-tagged
// FrameMap variant (framemap_hashmap.go) makes any ordering guarantee.
func mapEqual(a, b *FrameMap) bool {
	if a.Len() != b.Len() {
		return false
	}
	ae, be := a.Entries(), b.Entries()
	used := make([]bool, len(be))
	for _, x := range ae {
		found := false
		for i, y := range be {
			if used[i] {
				continue
			}
			if Equal(x.Key, y.Key) && Equal(x.Value, y.Value) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// setEqual compares two Set frames by content, per spec §3.4 invariant 2:
// matching is by frame equality regardless of slice position, for the same
// reason mapEqual ignores position (frameset_hashmap.go's unordered variant).
func setEqual(a, b *FrameSet) bool {
	if a.Len() != b.Len() {
		return false
	}
	ae, be := a.Elems(), b.Elems()
	used := make([]bool, len(be))
	for _, x := range ae {
		found := false
		for i, y := range be {
			if used[i] {
				continue
			}
			if Equal(x, y) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func helloEqual(a, b *Hello) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	if a.Version != b.Version {
		return false
	}
	if (a.Auth == nil) != (b.Auth == nil) {
		return false
	}
	if a.Auth == nil {
		return true
	}
	return *a.Auth == *b.Auth
}
