package resptype

import "fmt"

// FrameKind discriminates the variants defined across RESP2 and RESP3.
// RESP2 frames use only the first six kinds; RESP3 is a strict superset.
type FrameKind uint8

const (
	KindSimpleString FrameKind = iota
	KindError
	KindInteger
	KindBulkString
	KindArray
	KindNull

	KindBlobError
	KindVerbatimString
	KindNumber
	KindDouble
	KindBigNumber
	KindBoolean
	KindMap
	KindSet
	KindPush
	KindHello
	KindChunkedString
	KindEndStream
	KindAttribute
)

// String returns the kind's name, matching the grammar names in spec §3.1.
func (k FrameKind) String() string {
	switch k {
	case KindSimpleString:
		return "SimpleString"
	case KindError:
		return "Error"
	case KindInteger:
		return "Integer"
	case KindBulkString:
		return "BulkString"
	case KindArray:
		return "Array"
	case KindNull:
		return "Null"
	case KindBlobError:
		return "BlobError"
	case KindVerbatimString:
		return "VerbatimString"
	case KindNumber:
		return "Number"
	case KindDouble:
		return "Double"
	case KindBigNumber:
		return "BigNumber"
	case KindBoolean:
		return "Boolean"
	case KindMap:
		return "Map"
	case KindSet:
		return "Set"
	case KindPush:
		return "Push"
	case KindHello:
		return "Hello"
	case KindChunkedString:
		return "ChunkedString"
	case KindEndStream:
		return "EndStream"
	case KindAttribute:
		return "Attribute"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// PrefixByte returns the single-byte wire prefix for kinds that have one,
// and ok == false for Hello, which is the textual "HELLO" handshake token
// rather than a type-tag byte, and for unknown kinds. Null reports RESP3's
// '_'; RESP2 has no null prefix byte and writes Null as "$-1".
func (k FrameKind) PrefixByte() (b byte, ok bool) {
	switch k {
	case KindSimpleString:
		return '+', true
	case KindError:
		return '-', true
	case KindInteger, KindNumber:
		return ':', true
	case KindBulkString:
		return '$', true
	case KindArray:
		return '*', true
	case KindBlobError:
		return '!', true
	case KindVerbatimString:
		return '=', true
	case KindDouble:
		return ',', true
	case KindBigNumber:
		return '(', true
	case KindBoolean:
		return '#', true
	case KindNull:
		return '_', true
	case KindMap:
		return '%', true
	case KindSet:
		return '~', true
	case KindPush:
		return '>', true
	case KindChunkedString:
		return ';', true
	case KindEndStream:
		return '.', true
	case KindAttribute:
		return '|', true
	default:
		return 0, false
	}
}

// AllowsAttributes reports whether a frame of this kind may carry a RESP3
// attribute map. Null, ChunkedString, EndStream, Hello, and Attribute itself
// never do (spec §3.1).
func (k FrameKind) AllowsAttributes() bool {
	switch k {
	case KindNull, KindChunkedString, KindEndStream, KindHello, KindAttribute:
		return false
	default:
		return true
	}
}
