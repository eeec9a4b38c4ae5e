// Package resp2 implements the original Redis serialization protocol: the
// five wire types (SimpleString, Error, Integer, BulkString, Array) plus the
// synthetic Null frame used for nullable bulk strings and arrays.
package resp2

import "github.com/machinefabric/resp-go/resptype"

// Frame is a single RESP2 protocol value. Which fields are meaningful is
// determined by Kind:
//
//   - KindSimpleString, KindError: Str holds the text.
//   - KindInteger: Int holds the value.
//   - KindBulkString: Bulk holds the payload (always non-nil, possibly empty).
//   - KindArray: Elems holds the children (always non-nil, possibly empty).
//   - KindNull: no field is meaningful; it stands for a null bulk string or
//     a null array, which are wire-distinct but semantically identical.
type Frame struct {
	Kind  resptype.FrameKind
	Str   string
	Int   int64
	Bulk  []byte
	Elems []Frame
}

// SimpleString builds a SimpleString frame.
func SimpleString(s string) Frame {
	return Frame{Kind: resptype.KindSimpleString, Str: s}
}

// Error builds an Error frame.
func Error(s string) Frame {
	return Frame{Kind: resptype.KindError, Str: s}
}

// Integer builds an Integer frame.
func Integer(n int64) Frame {
	return Frame{Kind: resptype.KindInteger, Int: n}
}

// BulkString builds a non-null BulkString frame. A nil b is treated the same
// as an empty one; use Null() for the wire-level null bulk string.
func BulkString(b []byte) Frame {
	if b == nil {
		b = []byte{}
	}
	return Frame{Kind: resptype.KindBulkString, Bulk: b}
}

// Array builds a non-null Array frame. A nil elems is treated the same as an
// empty one; use Null() for the wire-level null array.
func Array(elems []Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Kind: resptype.KindArray, Elems: elems}
}

// Null builds the synthetic Null frame.
func Null() Frame {
	return Frame{Kind: resptype.KindNull}
}

// IsError reports whether f is an Error frame.
func (f Frame) IsError() bool {
	return f.Kind == resptype.KindError
}

// IsNull reports whether f is the synthetic Null frame.
func (f Frame) IsNull() bool {
	return f.Kind == resptype.KindNull
}

// Equal reports whether a and b are the same frame value, recursively for
// arrays.
func Equal(a, b Frame) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case resptype.KindSimpleString, resptype.KindError:
		return a.Str == b.Str
	case resptype.KindInteger:
		return a.Int == b.Int
	case resptype.KindBulkString:
		return string(a.Bulk) == string(b.Bulk)
	case resptype.KindArray:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case resptype.KindNull:
		return true
	default:
		return false
	}
}
